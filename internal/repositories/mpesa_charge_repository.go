package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"

	"github.com/kodipay/kodipay-server/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type MpesaChargeRepository interface {
	Create(ctx context.Context, c *models.MpesaCharge) error
	GetByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*models.MpesaCharge, error)
	SetStatus(ctx context.Context, checkoutRequestID string, status models.ChargeStatusType) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type mpesaChargeRepo struct{ db DB }

func NewMpesaChargeRepository(db DB) MpesaChargeRepository { return &mpesaChargeRepo{db: db} }

func (r *mpesaChargeRepo) Create(ctx context.Context, c *models.MpesaCharge) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO mpesa_charges (
            checkout_request_id, bill_id, phone_number, amount, status, created_at
        ) VALUES ($1,$2,$3,$4,$5, NOW())
    `, c.CheckoutRequestID, c.BillID, c.PhoneNumber, c.Amount, c.Status)
	return err
}

func (r *mpesaChargeRepo) GetByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*models.MpesaCharge, error) {
	row := r.db.QueryRow(ctx, `
        SELECT checkout_request_id, bill_id, phone_number, amount, status, created_at
        FROM mpesa_charges
        WHERE checkout_request_id=$1
    `, checkoutRequestID)

	var c models.MpesaCharge
	err := row.Scan(
		&c.CheckoutRequestID,
		&c.BillID,
		&c.PhoneNumber,
		&c.Amount,
		&c.Status,
		&c.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *mpesaChargeRepo) SetStatus(ctx context.Context, checkoutRequestID string, status models.ChargeStatusType) error {
	_, err := r.db.Exec(ctx, `
        UPDATE mpesa_charges SET status=$1 WHERE checkout_request_id=$2
    `, status, checkoutRequestID)
	return err
}
