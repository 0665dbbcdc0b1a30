package repositories

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/kodipay/kodipay-server/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error)
	ListIDsByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]uuid.UUID, error)

	// FindByRoomID resolves the aggregate containing an embedded room uuid.
	FindByRoomID(ctx context.Context, roomID uuid.UUID) (*models.Property, error)
	// FindByOccupant resolves the landlord's property whose tree currently
	// holds the tenant, if any.
	FindByOccupant(ctx context.Context, landlordID, tenantID uuid.UUID) (*models.Property, error)

	Update(ctx context.Context, p *models.Property) error
	UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyRepo struct {
	*BaseVersionedRepo[*models.Property]
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	r := &propertyRepo{db: db}
	selectStmt := baseSelectProperty() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanProperty)
	return r
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	floors, err := json.Marshal(p.Floors)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
        INSERT INTO properties (
            id, landlord_id, name, address, rent_amount, description, floors,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7, NOW(), NOW(), 1)
    `,
		p.ID,
		p.LandlordID,
		p.Name,
		p.Address,
		p.RentAmount,
		p.Description,
		floors,
	)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *propertyRepo) ListByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, baseSelectProperty()+" WHERE landlord_id=$1 ORDER BY created_at", landlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

func (r *propertyRepo) ListIDsByLandlordID(ctx context.Context, landlordID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM properties WHERE landlord_id=$1`, landlordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// roomContainment builds the JSONB containment argument matching any floor
// whose rooms array has an element with the given field value.
func roomContainment(field, value string) []byte {
	b, _ := json.Marshal([]map[string]any{
		{"rooms": []map[string]any{{field: value}}},
	})
	return b
}

func (r *propertyRepo) FindByRoomID(ctx context.Context, roomID uuid.UUID) (*models.Property, error) {
	row := r.db.QueryRow(ctx,
		baseSelectProperty()+" WHERE floors @> $1::jsonb LIMIT 1",
		roomContainment("id", roomID.String()),
	)
	return scanProperty(row)
}

func (r *propertyRepo) FindByOccupant(ctx context.Context, landlordID, tenantID uuid.UUID) (*models.Property, error) {
	row := r.db.QueryRow(ctx,
		baseSelectProperty()+" WHERE landlord_id=$1 AND floors @> $2::jsonb LIMIT 1",
		landlordID,
		roomContainment("tenantId", tenantID.String()),
	)
	return scanProperty(row)
}

func (r *propertyRepo) Update(ctx context.Context, p *models.Property) error {
	_, err := r.update(ctx, p, false, 0)
	return err
}

func (r *propertyRepo) UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, p, true, expected)
}

func (r *propertyRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *propertyRepo) update(ctx context.Context, p *models.Property, check bool, expected int64) (pgconn.CommandTag, error) {
	floors, err := json.Marshal(p.Floors)
	if err != nil {
		return nil, err
	}

	sql := `
        UPDATE properties SET
            name=$1, address=$2, rent_amount=$3, description=$4, floors=$5,
            updated_at=NOW()
    `
	args := []any{p.Name, p.Address, p.RentAmount, p.Description, floors}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$6 AND row_version=$7`
		args = append(args, p.ID, expected)
	} else {
		sql += ` WHERE id=$6`
		args = append(args, p.ID)
	}

	return r.db.Exec(ctx, sql, args...)
}

func (r *propertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectProperty() string {
	return `
        SELECT
            id, landlord_id, name, address, rent_amount, description, floors,
            created_at, updated_at, row_version
        FROM properties
    `
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var (
		p      models.Property
		floors []byte
	)
	err := row.Scan(
		&p.ID,
		&p.LandlordID,
		&p.Name,
		&p.Address,
		&p.RentAmount,
		&p.Description,
		&floors,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if len(floors) > 0 {
		if err := json.Unmarshal(floors, &p.Floors); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func scanProperties(rows pgx.Rows) ([]*models.Property, error) {
	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
