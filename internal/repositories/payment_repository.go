package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/kodipay/kodipay-server/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PaymentRepository interface {
	Create(ctx context.Context, p *models.Payment) error

	ListByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*models.Payment, error)
	// ExistsByTransactionID supports idempotent provider callbacks: repeated
	// callbacks for the same receipt must not create duplicate records.
	ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type paymentRepo struct{ db DB }

func NewPaymentRepository(db DB) PaymentRepository { return &paymentRepo{db: db} }

func (r *paymentRepo) Create(ctx context.Context, p *models.Payment) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO payments (
            id, tenant_id, bill_id, lease_id, amount, method, transaction_id, payment_date
        ) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW())
    `, p.ID, p.TenantID, p.BillID, p.LeaseID, p.Amount, p.Method, nullableString(p.TransactionID))
	return err
}

func (r *paymentRepo) ListByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*models.Payment, error) {
	rows, err := r.db.Query(ctx, baseSelectPayment()+" WHERE tenant_id=$1 ORDER BY payment_date DESC", tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *paymentRepo) ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM payments WHERE transaction_id=$1)`,
		transactionID,
	).Scan(&exists)
	return exists, err
}

// nullableString keeps the unique index on transaction_id usable: empty
// strings become NULLs, which do not collide with each other.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func baseSelectPayment() string {
	return `
        SELECT id, tenant_id, bill_id, lease_id, amount, method,
               COALESCE(transaction_id, ''), payment_date
        FROM payments
    `
}

func scanPayment(row pgx.Row) (*models.Payment, error) {
	var p models.Payment
	err := row.Scan(
		&p.ID,
		&p.TenantID,
		&p.BillID,
		&p.LeaseID,
		&p.Amount,
		&p.Method,
		&p.TransactionID,
		&p.PaymentDate,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
