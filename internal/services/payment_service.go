package services

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kodipay/kodipay-server/internal/models"
	"github.com/kodipay/kodipay-server/internal/repositories"
	"github.com/kodipay/kodipay-server/internal/utils"
	"github.com/kodipay/kodipay-server/internal/utils/mpesa"
)

// ---------------------------------------------------------------------
// PaymentService interface
// ---------------------------------------------------------------------

// StkPusher is the slice of the Daraja client the service needs. Narrowed
// for test fakes.
type StkPusher interface {
	STKPush(ctx context.Context, phoneNumber string, amount float64, accountReference, description string) (*mpesa.STKPushResponse, error)
}

type PaymentService interface {
	ListByTenant(ctx context.Context, requesterID uuid.UUID, requesterRole models.RoleType, tenantID uuid.UUID) ([]*models.Payment, error)

	// SubmitLeasePayment records an out-of-band payment (cash, bank) against
	// a lease and decrements its balance.
	SubmitLeasePayment(ctx context.Context, requesterID uuid.UUID, leaseID uuid.UUID, amount float64, method, transactionID string) (*models.Payment, error)

	// InitiateCharge starts an STK push for a bill and records the pending
	// charge so the asynchronous callback can be correlated.
	InitiateCharge(ctx context.Context, requesterID uuid.UUID, billID uuid.UUID, phoneNumber string) (*mpesa.STKPushResponse, error)

	// HandleCallback settles a pending charge from the provider callback.
	// It is idempotent: replays of the same receipt are acknowledged without
	// creating duplicate payments.
	HandleCallback(ctx context.Context, cb *mpesa.StkCallback) error
}

// ---------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------

type paymentService struct {
	payments repositories.PaymentRepository
	charges  repositories.MpesaChargeRepository
	bills    repositories.BillRepository
	leases   repositories.LeaseRepository
	daraja   StkPusher
}

func NewPaymentService(
	payments repositories.PaymentRepository,
	charges repositories.MpesaChargeRepository,
	bills repositories.BillRepository,
	leases repositories.LeaseRepository,
	daraja StkPusher,
) PaymentService {
	return &paymentService{
		payments: payments,
		charges:  charges,
		bills:    bills,
		leases:   leases,
		daraja:   daraja,
	}
}

func (s *paymentService) ListByTenant(
	ctx context.Context,
	requesterID uuid.UUID,
	requesterRole models.RoleType,
	tenantID uuid.UUID,
) ([]*models.Payment, error) {

	// Tenants may only read their own history; landlords may read any.
	if requesterRole != models.RoleLandlord && requesterID != tenantID {
		return nil, utils.NewAppError(http.StatusForbidden, utils.ErrCodeForbidden,
			"Unauthorized", nil)
	}
	return s.payments.ListByTenantID(ctx, tenantID)
}

func (s *paymentService) SubmitLeasePayment(
	ctx context.Context,
	requesterID uuid.UUID,
	leaseID uuid.UUID,
	amount float64,
	method, transactionID string,
) (*models.Payment, error) {

	if amount <= 0 {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation,
			"Payment amount must be positive", nil)
	}

	lease, err := s.leases.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Lease not found", nil)
	}
	if lease.TenantID != requesterID {
		return nil, utils.NewAppError(http.StatusForbidden, utils.ErrCodeForbidden,
			"Unauthorized", nil)
	}

	// Re-check the balance inside the mutate so a concurrent payment cannot
	// drive it negative.
	err = s.leases.UpdateWithRetry(ctx, leaseID, func(l *models.Lease) error {
		if amount > l.Balance {
			return utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation,
				"Payment exceeds outstanding balance", nil)
		}
		l.Balance -= amount
		return nil
	})
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		ID:            uuid.New(),
		TenantID:      requesterID,
		LeaseID:       &leaseID,
		Amount:        amount,
		Method:        method,
		TransactionID: transactionID,
		PaymentDate:   time.Now().UTC(),
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) InitiateCharge(
	ctx context.Context,
	requesterID uuid.UUID,
	billID uuid.UUID,
	phoneNumber string,
) (*mpesa.STKPushResponse, error) {

	bill, err := s.bills.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Bill not found", nil)
	}
	if bill.TenantID != requesterID {
		return nil, utils.NewAppError(http.StatusForbidden, utils.ErrCodeForbidden,
			"Unauthorized", nil)
	}
	if bill.Status == models.BillStatusPaid || bill.Status == models.BillStatusCancelled {
		return nil, utils.NewAppError(http.StatusConflict, utils.ErrCodeConflict,
			"Bill is not payable", nil)
	}

	resp, err := s.daraja.STKPush(ctx, phoneNumber, bill.Amount, billID.String(), bill.Description)
	if err != nil {
		return nil, utils.NewAppError(http.StatusBadGateway, utils.ErrCodeUpstreamFailure,
			"Payment provider request failed", err)
	}

	charge := &models.MpesaCharge{
		CheckoutRequestID: resp.CheckoutRequestID,
		BillID:            billID,
		PhoneNumber:       phoneNumber,
		Amount:            bill.Amount,
		Status:            models.ChargeStatusPending,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.charges.Create(ctx, charge); err != nil {
		return nil, err
	}

	utils.Logger.WithField("checkoutRequestId", resp.CheckoutRequestID).
		Info("STK push initiated")
	return resp, nil
}

func (s *paymentService) HandleCallback(ctx context.Context, cb *mpesa.StkCallback) error {
	charge, err := s.charges.GetByCheckoutRequestID(ctx, cb.CheckoutRequestID)
	if err != nil {
		return err
	}
	if charge == nil {
		return utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Unknown checkout request", nil)
	}

	if !cb.Succeeded() {
		utils.Logger.WithFields(map[string]any{
			"checkoutRequestId": cb.CheckoutRequestID,
			"resultCode":        cb.ResultCode,
		}).Warn(cb.ResultDesc)
		return s.charges.SetStatus(ctx, cb.CheckoutRequestID, models.ChargeStatusFailed)
	}

	receipt := cb.ReceiptNumber()
	if receipt != "" {
		exists, err := s.payments.ExistsByTransactionID(ctx, receipt)
		if err != nil {
			return err
		}
		if exists {
			// Replayed callback. Already settled.
			return nil
		}
	}

	amount := cb.Amount()
	if amount == 0 {
		amount = charge.Amount
	}

	payment := &models.Payment{
		ID:            uuid.New(),
		TenantID:      uuid.Nil, // filled from the bill below
		BillID:        &charge.BillID,
		Amount:        amount,
		Method:        "mpesa",
		TransactionID: receipt,
		PaymentDate:   time.Now().UTC(),
	}

	bill, err := s.bills.GetByID(ctx, charge.BillID)
	if err != nil {
		return err
	}
	if bill != nil {
		payment.TenantID = bill.TenantID
	}

	if err := s.payments.Create(ctx, payment); err != nil {
		return err
	}
	if _, err := s.bills.SetStatus(ctx, charge.BillID, models.BillStatusPaid); err != nil {
		return err
	}
	return s.charges.SetStatus(ctx, cb.CheckoutRequestID, models.ChargeStatusCompleted)
}
