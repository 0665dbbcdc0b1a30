package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/kodipay/kodipay-server/internal/models"
	"github.com/kodipay/kodipay-server/internal/repositories"
)

// In-memory repository fakes. Reads hand back deep copies so tests observe
// the same aliasing rules as real database rows.

/* ------------------------------------------------------------------
   properties
------------------------------------------------------------------ */

type fakePropertyRepo struct {
	byID map[uuid.UUID]*models.Property
	// mutateCalls counts UpdateWithRetry mutate invocations, for
	// contention assertions.
	mutateCalls int
	// conflicts makes the first N mutate attempts fail as if another
	// writer bumped the row version.
	conflicts int
	// beforeWrite runs once at the start of UpdateWithRetry, standing in for
	// a concurrent writer that commits between a caller's pre-checks and its
	// write loop.
	beforeWrite func()
}

func newFakePropertyRepo(props ...*models.Property) *fakePropertyRepo {
	r := &fakePropertyRepo{byID: make(map[uuid.UUID]*models.Property)}
	for _, p := range props {
		r.byID[p.ID] = copyProperty(p)
	}
	return r
}

func copyProperty(p *models.Property) *models.Property {
	if p == nil {
		return nil
	}
	raw, _ := json.Marshal(p)
	var out models.Property
	_ = json.Unmarshal(raw, &out)
	out.RowVersion = p.RowVersion
	return &out
}

func (r *fakePropertyRepo) Create(_ context.Context, p *models.Property) error {
	r.byID[p.ID] = copyProperty(p)
	return nil
}

func (r *fakePropertyRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Property, error) {
	return copyProperty(r.byID[id]), nil
}

func (r *fakePropertyRepo) ListByLandlordID(_ context.Context, landlordID uuid.UUID) ([]*models.Property, error) {
	var out []*models.Property
	for _, p := range r.byID {
		if p.LandlordID == landlordID {
			out = append(out, copyProperty(p))
		}
	}
	return out, nil
}

func (r *fakePropertyRepo) ListIDsByLandlordID(_ context.Context, landlordID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, p := range r.byID {
		if p.LandlordID == landlordID {
			out = append(out, p.ID)
		}
	}
	return out, nil
}

func (r *fakePropertyRepo) FindByRoomID(_ context.Context, roomID uuid.UUID) (*models.Property, error) {
	for _, p := range r.byID {
		if room, _ := p.FindRoomByID(roomID); room != nil {
			return copyProperty(p), nil
		}
	}
	return nil, nil
}

func (r *fakePropertyRepo) FindByOccupant(_ context.Context, landlordID, tenantID uuid.UUID) (*models.Property, error) {
	for _, p := range r.byID {
		if p.LandlordID != landlordID {
			continue
		}
		if room := p.FindRoomByTenant(tenantID); room != nil {
			return copyProperty(p), nil
		}
	}
	return nil, nil
}

func (r *fakePropertyRepo) Update(_ context.Context, p *models.Property) error {
	r.byID[p.ID] = copyProperty(p)
	return nil
}

func (r *fakePropertyRepo) UpdateIfVersion(_ context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error) {
	stored, ok := r.byID[p.ID]
	if !ok || stored.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	next := copyProperty(p)
	next.RowVersion = expected + 1
	r.byID[p.ID] = next
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (r *fakePropertyRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error {
	if r.beforeWrite != nil {
		r.beforeWrite()
		r.beforeWrite = nil
	}
	return repositories.WithRetry(ctx, 3, id.String(),
		func(ctx context.Context, _ string) (*models.Property, error) {
			p, _ := r.GetByID(ctx, id)
			if p != nil && r.conflicts > 0 {
				// Hand out a stale version to force a CAS miss.
				r.conflicts--
				p.RowVersion--
			}
			return p, nil
		},
		r.UpdateIfVersion,
		func(p *models.Property) error {
			r.mutateCalls++
			return mutate(p)
		},
	)
}

func (r *fakePropertyRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

/* ------------------------------------------------------------------
   users
------------------------------------------------------------------ */

type fakeUserRepo struct {
	byID map[uuid.UUID]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{byID: make(map[uuid.UUID]*models.User)}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	return r.byID[id], nil
}

func (r *fakeUserRepo) GetByPhone(_ context.Context, phoneNumber string) (*models.User, error) {
	for _, u := range r.byID {
		if u.PhoneNumber == phoneNumber {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role models.RoleType) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.byID {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *models.User) error {
	r.byID[u.ID] = u
	return nil
}

func (r *fakeUserRepo) UpdateIfVersion(_ context.Context, u *models.User, expected int64) (pgconn.CommandTag, error) {
	stored, ok := r.byID[u.ID]
	if !ok || stored.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	u.RowVersion = expected + 1
	r.byID[u.ID] = u
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (r *fakeUserRepo) UpdateWithRetry(_ context.Context, id uuid.UUID, mutate func(*models.User) error) error {
	u, ok := r.byID[id]
	if !ok {
		return nil
	}
	return mutate(u)
}

/* ------------------------------------------------------------------
   tenant projections
------------------------------------------------------------------ */

type fakeTenantRepo struct {
	byID    map[uuid.UUID]*models.Tenant
	byUser  map[uuid.UUID]*models.Tenant
	upserts int
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{
		byID:   make(map[uuid.UUID]*models.Tenant),
		byUser: make(map[uuid.UUID]*models.Tenant),
	}
}

func (r *fakeTenantRepo) Create(_ context.Context, t *models.Tenant) error {
	r.byID[t.ID] = t
	if t.UserID != nil {
		r.byUser[*t.UserID] = t
	}
	return nil
}

func (r *fakeTenantRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Tenant, error) {
	return r.byID[id], nil
}

func (r *fakeTenantRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*models.Tenant, error) {
	return r.byUser[userID], nil
}

func (r *fakeTenantRepo) GetByPhone(_ context.Context, phone string) (*models.Tenant, error) {
	for _, t := range r.byID {
		if t.Phone == phone {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTenantRepo) UpsertOccupancy(_ context.Context, u *models.User, propertyID, roomID uuid.UUID) error {
	r.upserts++
	t, ok := r.byUser[u.ID]
	if !ok {
		id := u.ID
		t = &models.Tenant{
			ID:        uuid.New(),
			UserID:    &id,
			Name:      u.FirstName + " " + u.LastName,
			Phone:     u.PhoneNumber,
			CreatedAt: time.Now(),
		}
		r.byID[t.ID] = t
		r.byUser[u.ID] = t
	}
	t.PropertyID = &propertyID
	t.RoomID = &roomID
	return nil
}

func (r *fakeTenantRepo) ClearOccupancyByUser(_ context.Context, userID uuid.UUID) error {
	if t, ok := r.byUser[userID]; ok {
		t.PropertyID = nil
		t.RoomID = nil
	}
	return nil
}

func (r *fakeTenantRepo) Delete(_ context.Context, id uuid.UUID) error {
	if t, ok := r.byID[id]; ok {
		delete(r.byID, id)
		if t.UserID != nil {
			delete(r.byUser, *t.UserID)
		}
	}
	return nil
}

/* ------------------------------------------------------------------
   notifier
------------------------------------------------------------------ */

type recordingNotifier struct {
	landlords []uuid.UUID
	tenants   []uuid.UUID
	contents  []string
}

func (n *recordingNotifier) NotifyAssignment(_ context.Context, landlordID, tenantID uuid.UUID, content string) {
	n.landlords = append(n.landlords, landlordID)
	n.tenants = append(n.tenants, tenantID)
	n.contents = append(n.contents, content)
}
