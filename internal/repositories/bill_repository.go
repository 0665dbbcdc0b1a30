package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/kodipay/kodipay-server/internal/models"
)

// BillFilter narrows the filtered listing. Nil/empty fields are skipped.
type BillFilter struct {
	LandlordID *uuid.UUID
	Status     models.BillStatusType
	Type       models.BillType
	StartDate  *time.Time
	EndDate    *time.Time
	TenantName string
}

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type BillRepository interface {
	Create(ctx context.Context, b *models.Bill) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Bill, error)
	ListByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*models.Bill, error)
	ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Bill, error)
	ListFiltered(ctx context.Context, f BillFilter) ([]*models.Bill, error)

	SetStatus(ctx context.Context, id uuid.UUID, status models.BillStatusType) (*models.Bill, error)
	// MarkOverdue flips pending bills whose due date has passed. Returns the
	// number of bills updated.
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type billRepo struct{ db DB }

func NewBillRepository(db DB) BillRepository { return &billRepo{db: db} }

func (r *billRepo) Create(ctx context.Context, b *models.Bill) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO bills (
            id, tenant_id, property_id, amount, description, due_date, status, type,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW(), NOW())
    `, b.ID, b.TenantID, b.PropertyID, b.Amount, b.Description, b.DueDate, b.Status, b.Type)
	return err
}

func (r *billRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Bill, error) {
	row := r.db.QueryRow(ctx, baseSelectBill()+" WHERE b.id=$1", id)
	return scanBill(row)
}

func (r *billRepo) ListByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*models.Bill, error) {
	rows, err := r.db.Query(ctx, baseSelectBill()+" WHERE b.tenant_id=$1 ORDER BY b.due_date DESC", tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBills(rows)
}

func (r *billRepo) ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Bill, error) {
	rows, err := r.db.Query(ctx, baseSelectBill()+`
        JOIN properties p ON p.id = b.property_id
        WHERE p.landlord_id=$1
        ORDER BY b.due_date DESC
    `, landlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBills(rows)
}

func (r *billRepo) ListFiltered(ctx context.Context, f BillFilter) ([]*models.Bill, error) {
	sql := baseSelectBill() + `
        JOIN properties p ON p.id = b.property_id
        JOIN users u ON u.id = b.tenant_id
        WHERE 1=1
    `
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.LandlordID != nil {
		sql += " AND p.landlord_id=" + arg(*f.LandlordID)
	}
	if f.Status != "" {
		sql += " AND b.status=" + arg(f.Status)
	}
	if f.Type != "" {
		sql += " AND b.type=" + arg(f.Type)
	}
	if f.StartDate != nil {
		sql += " AND b.due_date >= " + arg(*f.StartDate)
	}
	if f.EndDate != nil {
		sql += " AND b.due_date <= " + arg(*f.EndDate)
	}
	if f.TenantName != "" {
		sql += " AND (u.first_name || ' ' || u.last_name) ILIKE " + arg("%"+f.TenantName+"%")
	}
	sql += " ORDER BY b.due_date DESC"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBills(rows)
}

func (r *billRepo) SetStatus(ctx context.Context, id uuid.UUID, status models.BillStatusType) (*models.Bill, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE bills SET status=$1, updated_at=NOW() WHERE id=$2
    `, status, id)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}
	return r.GetByID(ctx, id)
}

func (r *billRepo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE bills SET status=$1, updated_at=NOW()
        WHERE status=$2 AND due_date < $3
    `, models.BillStatusOverdue, models.BillStatusPending, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func baseSelectBill() string {
	return `
        SELECT
            b.id, b.tenant_id, b.property_id, b.amount, b.description,
            b.due_date, b.status, b.type, b.created_at, b.updated_at
        FROM bills b
    `
}

func scanBill(row pgx.Row) (*models.Bill, error) {
	var b models.Bill
	err := row.Scan(
		&b.ID,
		&b.TenantID,
		&b.PropertyID,
		&b.Amount,
		&b.Description,
		&b.DueDate,
		&b.Status,
		&b.Type,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func scanBills(rows pgx.Rows) ([]*models.Bill, error) {
	var out []*models.Bill
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
