package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	invoiceRepo "blissdrive/database/repository/invoice"
	"blissdrive/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// PaymentHandler processes the frozen session figures. The engine never moves
// money itself; a failed call leaves the session in AwaitingPayment.
type PaymentHandler interface {
	ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error)
}

// UnifiedPaymentHandler processes card payments through Stripe and records
// cash payments as pending for in-person settlement.
type UnifiedPaymentHandler struct {
	logger   *zap.Logger
	invoices invoiceRepo.InvoiceRepository
}

func NewPaymentHandler(logger *zap.Logger, invoices invoiceRepo.InvoiceRepository) *UnifiedPaymentHandler {
	return &UnifiedPaymentHandler{
		logger:   logger,
		invoices: invoices,
	}
}

// ProcessPayment validates and routes the payment by method.
func (h *UnifiedPaymentHandler) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	if err := validateRequest(req); err != nil {
		return nil, fmt.Errorf("invalid payment request: %w", err)
	}

	inv := &models.Invoice{
		InvoiceID: uuid.New().String(),
		SessionID: req.SessionID,
		StudentID: req.StudentID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Method:    req.Method,
		Status:    "pending",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	switch req.Method {
	case "card":
		return h.processCardPayment(ctx, req, inv)
	case "cash":
		return h.processCashPayment(req, inv)
	default:
		return nil, fmt.Errorf("unsupported payment method: %s", req.Method)
	}
}

func (h *UnifiedPaymentHandler) processCardPayment(ctx context.Context, req models.PaymentRequest, inv *models.Invoice) (*models.Invoice, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(int64(math.Round(req.Amount * 100))),
		Currency:    stripe.String(req.Currency),
		Description: stripe.String(req.Description),
		Confirm:     stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx
	params.AddMetadata("sessionId", req.SessionID)
	params.AddMetadata("elapsedSeconds", fmt.Sprintf("%d", req.ElapsedSeconds))

	pi, err := paymentintent.New(params)
	if err != nil {
		inv.Status = "failed"
		inv.Error = err.Error()
		inv.UpdatedAt = time.Now()
		h.recordInvoice(inv)
		return nil, fmt.Errorf("card payment failed: %w", err)
	}

	inv.PaymentID = pi.ID
	inv.Status = "paid"
	inv.UpdatedAt = time.Now()
	h.recordInvoice(inv)

	h.logger.Info("Card payment successful",
		zap.String("invoice", inv.InvoiceID), zap.String("paymentIntent", pi.ID))
	return inv, nil
}

// Cash payments remain "pending" until settled in person with the companion.
func (h *UnifiedPaymentHandler) processCashPayment(req models.PaymentRequest, inv *models.Invoice) (*models.Invoice, error) {
	inv.UpdatedAt = time.Now()
	h.recordInvoice(inv)

	h.logger.Info("Cash payment recorded",
		zap.String("invoice", inv.InvoiceID), zap.Float64("amount", req.Amount))
	return inv, nil
}

func (h *UnifiedPaymentHandler) recordInvoice(inv *models.Invoice) {
	if h.invoices == nil {
		return
	}
	if err := h.invoices.Create(inv); err != nil {
		h.logger.Error("failed to persist invoice",
			zap.String("invoice", inv.InvoiceID), zap.Error(err))
	}
}

func validateRequest(req models.PaymentRequest) error {
	if req.Amount <= 0 {
		return errors.New("invalid payment amount")
	}
	if req.StudentID == "" {
		return errors.New("missing student ID")
	}
	if req.SessionID == "" {
		return errors.New("missing session ID")
	}
	if req.Method != "card" && req.Method != "cash" {
		return errors.New("unsupported method")
	}
	return nil
}
