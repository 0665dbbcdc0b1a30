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

type ComplaintRepository interface {
	Create(ctx context.Context, c *models.Complaint) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Complaint, error)
	ListByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*models.Complaint, error)
	// ListByLandlordID returns complaints against any property the landlord owns.
	ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Complaint, error)

	Update(ctx context.Context, c *models.Complaint) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type complaintRepo struct{ db DB }

func NewComplaintRepository(db DB) ComplaintRepository { return &complaintRepo{db: db} }

func (r *complaintRepo) Create(ctx context.Context, c *models.Complaint) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO complaints (
            id, tenant_id, property_id, title, description, status,
            submitted_at, resolved_at, resolution_notes
        ) VALUES ($1,$2,$3,$4,$5,$6, NOW(), $7, $8)
    `, c.ID, c.TenantID, c.PropertyID, c.Title, c.Description, c.Status, c.ResolvedAt, c.ResolutionNotes)
	return err
}

func (r *complaintRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Complaint, error) {
	row := r.db.QueryRow(ctx, baseSelectComplaint()+" WHERE c.id=$1", id)
	return scanComplaint(row)
}

func (r *complaintRepo) ListByTenantID(ctx context.Context, tenantID uuid.UUID) ([]*models.Complaint, error) {
	rows, err := r.db.Query(ctx, baseSelectComplaint()+" WHERE c.tenant_id=$1 ORDER BY c.submitted_at DESC", tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func (r *complaintRepo) ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Complaint, error) {
	rows, err := r.db.Query(ctx, baseSelectComplaint()+`
        JOIN properties p ON p.id = c.property_id
        WHERE p.landlord_id=$1
        ORDER BY c.submitted_at DESC
    `, landlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanComplaints(rows)
}

func (r *complaintRepo) Update(ctx context.Context, c *models.Complaint) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE complaints SET
            title=$1, description=$2, status=$3, resolved_at=$4, resolution_notes=$5
        WHERE id=$6
    `, c.Title, c.Description, c.Status, c.ResolvedAt, c.ResolutionNotes, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *complaintRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM complaints WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectComplaint() string {
	return `
        SELECT c.id, c.tenant_id, c.property_id, c.title, c.description, c.status,
               c.submitted_at, c.resolved_at, COALESCE(c.resolution_notes, '')
        FROM complaints c
    `
}

func scanComplaint(row pgx.Row) (*models.Complaint, error) {
	var c models.Complaint
	err := row.Scan(
		&c.ID,
		&c.TenantID,
		&c.PropertyID,
		&c.Title,
		&c.Description,
		&c.Status,
		&c.SubmittedAt,
		&c.ResolvedAt,
		&c.ResolutionNotes,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func scanComplaints(rows pgx.Rows) ([]*models.Complaint, error) {
	var out []*models.Complaint
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
