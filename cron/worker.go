package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"blissdrive/config"
	studentRepo "blissdrive/database/repository/student"
	"blissdrive/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const TypeLessonReminder = "lesson:reminder"

// ReminderPayload is the task body for a scheduled lesson reminder.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	StudentID string `json:"studentId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	}
}

// ReminderClient enqueues lesson reminders. It satisfies the booking
// package's ReminderScheduler interface.
type ReminderClient struct {
	client *asynq.Client
}

func NewReminderClient() *ReminderClient {
	return &ReminderClient{client: asynq.NewClient(redisOpts())}
}

// Schedule enqueues a reminder ahead of the lesson start. Lessons closer than
// the configured lead time get the reminder immediately.
func (r *ReminderClient) Schedule(booking models.Booking) error {
	startOfDay, err := time.ParseInLocation("2006-01-02", booking.Date, time.Local)
	if err != nil {
		return fmt.Errorf("invalid booking date %q: %w", booking.Date, err)
	}
	lessonStart := startOfDay.Add(time.Duration(booking.Start) * time.Minute)

	payload, err := json.Marshal(ReminderPayload{
		BookingID: booking.ID,
		StudentID: booking.StudentID,
		Date:      booking.Date,
		StartTime: fmt.Sprintf("%02d:%02d", booking.Start/60, booking.Start%60),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal reminder payload: %w", err)
	}

	fireAt := lessonStart.Add(-time.Duration(config.AppConfig.ReminderLeadHours) * time.Hour)
	if fireAt.Before(time.Now()) {
		fireAt = time.Now()
	}

	task := asynq.NewTask(TypeLessonReminder, payload)
	if _, err := r.client.Enqueue(task, asynq.ProcessAt(fireAt)); err != nil {
		return fmt.Errorf("failed to enqueue lesson reminder: %w", err)
	}
	return nil
}

// InitReminderWorker runs the async worker in background.
func InitReminderWorker(students studentRepo.StudentRepository) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeLessonReminder, handleReminderTask(students))

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(students studentRepo.StudentRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		log.Printf("[ReminderHandler] reminding student %s about lesson %s at %s %s",
			p.StudentID, p.BookingID, p.Date, p.StartTime)

		stu, err := students.GetByID(p.StudentID)
		if err != nil {
			log.Printf("[ReminderHandler] failed to load student: %v", err)
			return err
		}

		stu.Notifications = append(stu.Notifications, models.Notification{
			ID:      uuid.New().String(),
			Type:    "lesson_reminder",
			Message: fmt.Sprintf("Your driving lesson starts at %s on %s.", p.StartTime, p.Date),
			Data: map[string]interface{}{
				"bookingId": p.BookingID,
				"date":      p.Date,
				"startTime": p.StartTime,
			},
			CreatedAt: time.Now(),
		})
		if err := students.Update(stu); err != nil {
			log.Printf("[ReminderHandler] failed to store notification: %v", err)
			return err
		}
		return nil
	}
}
