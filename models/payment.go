package models

import "time"

// PaymentRequest carries the frozen session figures to the payment handler.
type PaymentRequest struct {
	SessionID      string
	StudentID      string
	ElapsedSeconds int64
	Amount         float64
	HourlyRate     float64
	Method         string // "cash" or "card"
	Currency       string
	Description    string
	Metadata       map[string]string
}

// Invoice records the outcome of a processed payment.
type Invoice struct {
	InvoiceID string    `bson:"invoice_id" json:"invoiceId"`
	SessionID string    `bson:"session_id" json:"sessionId"`
	StudentID string    `bson:"student_id" json:"studentId"`
	Amount    float64   `bson:"amount" json:"amount"`
	Currency  string    `bson:"currency" json:"currency"`
	Method    string    `bson:"method" json:"method"`
	Status    string    `bson:"status" json:"status"` // "pending", "paid", "failed"
	PaymentID string    `bson:"payment_id,omitempty" json:"paymentId,omitempty"`
	Error     string    `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
