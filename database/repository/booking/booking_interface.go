package bookingRepo

import "blissdrive/models"

// BookingRepository defines persistence operations for confirmed bookings.
// It also serves as the availability source for the slot generator: a slot is
// taken when an existing booking for the same date (and companion, if set)
// already claims its ID.
type BookingRepository interface {
	Create(booking *models.Booking) error
	UpdateStatus(id, status string) error
	Delete(id string) error
	GetByID(id string) (*models.Booking, error)
	GetByStudent(studentID string) ([]models.Booking, error)
	GetAll() ([]models.Booking, error)
	// BookedSlotIDs returns the slot IDs already claimed on the given date,
	// optionally narrowed to one companion. Cancelled bookings do not count.
	BookedSlotIDs(date, companionID string) (map[string]bool, error)
}
