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

type TenantRepository interface {
	Create(ctx context.Context, t *models.Tenant) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Tenant, error)
	GetByPhone(ctx context.Context, phone string) (*models.Tenant, error)

	// UpsertOccupancy writes the projection row for a user taking a room.
	UpsertOccupancy(ctx context.Context, u *models.User, propertyID, roomID uuid.UUID) error
	// ClearOccupancyByUser empties the property/room references when the
	// user's room is released.
	ClearOccupancyByUser(ctx context.Context, userID uuid.UUID) error

	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type tenantRepo struct{ db DB }

func NewTenantRepository(db DB) TenantRepository { return &tenantRepo{db: db} }

func (r *tenantRepo) Create(ctx context.Context, t *models.Tenant) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO tenants (
            id, user_id, name, phone, email, national_id, property_id, room_id, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8, NOW())
    `, t.ID, t.UserID, t.Name, t.Phone, t.Email, t.NationalID, t.PropertyID, t.RoomID)
	return err
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	row := r.db.QueryRow(ctx, baseSelectTenant()+" WHERE id=$1", id)
	return scanTenant(row)
}

func (r *tenantRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Tenant, error) {
	row := r.db.QueryRow(ctx, baseSelectTenant()+" WHERE user_id=$1", userID)
	return scanTenant(row)
}

func (r *tenantRepo) GetByPhone(ctx context.Context, phone string) (*models.Tenant, error) {
	row := r.db.QueryRow(ctx, baseSelectTenant()+" WHERE phone=$1 LIMIT 1", phone)
	return scanTenant(row)
}

func (r *tenantRepo) UpsertOccupancy(ctx context.Context, u *models.User, propertyID, roomID uuid.UUID) error {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	_, err := r.db.Exec(ctx, `
        INSERT INTO tenants (id, user_id, name, phone, property_id, room_id, created_at)
        VALUES ($1,$2,$3,$4,$5,$6, NOW())
        ON CONFLICT (user_id) DO UPDATE
            SET property_id=EXCLUDED.property_id, room_id=EXCLUDED.room_id
    `, uuid.New(), u.ID, name, u.PhoneNumber, propertyID, roomID)
	return err
}

func (r *tenantRepo) ClearOccupancyByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
        UPDATE tenants SET property_id=NULL, room_id=NULL WHERE user_id=$1
    `, userID)
	return err
}

func (r *tenantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tenants WHERE id=$1`, id)
	return err
}

func baseSelectTenant() string {
	return `
        SELECT id, user_id, name, phone, email, national_id, property_id, room_id, created_at
        FROM tenants
    `
}

func scanTenant(row pgx.Row) (*models.Tenant, error) {
	var t models.Tenant
	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Name,
		&t.Phone,
		&t.Email,
		&t.NationalID,
		&t.PropertyID,
		&t.RoomID,
		&t.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}
