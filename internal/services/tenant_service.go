package services

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kodipay/kodipay-server/internal/models"
	"github.com/kodipay/kodipay-server/internal/repositories"
	"github.com/kodipay/kodipay-server/internal/utils"
)

// ---------------------------------------------------------------------
// TenantService interface
// ---------------------------------------------------------------------

type TenantService interface {
	// CreateProfile records a tenant's contact details, optionally linked to
	// a registered user account by phone match.
	CreateProfile(ctx context.Context, name, phone, email, nationalID string) (*models.Tenant, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	// GetMostRecentLease resolves the profile to its user account and returns
	// the newest lease held by that user.
	GetMostRecentLease(ctx context.Context, tenantID uuid.UUID) (*models.Lease, error)
	// AssignNewToRoom creates a profile for an unregistered-by-profile tenant
	// and places them into the room in one call. The phone must belong to a
	// registered tenant account; the profile is rolled back if the room
	// assignment fails.
	AssignNewToRoom(ctx context.Context, roomID, requesterID uuid.UUID, name, phone, email, nationalID string) (*models.Property, error)
}

// ---------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------

type tenantService struct {
	tenants   repositories.TenantRepository
	users     repositories.UserRepository
	leases    repositories.LeaseRepository
	occupancy OccupancyService
}

func NewTenantService(
	tenants repositories.TenantRepository,
	users repositories.UserRepository,
	leases repositories.LeaseRepository,
	occupancy OccupancyService,
) TenantService {
	return &tenantService{tenants: tenants, users: users, leases: leases, occupancy: occupancy}
}

func (s *tenantService) CreateProfile(
	ctx context.Context,
	name, phone, email, nationalID string,
) (*models.Tenant, error) {

	existing, err := s.tenants.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.NewAppError(http.StatusConflict, utils.ErrCodePhoneExists,
			"A tenant with this phone number already exists", nil)
	}

	tenant := &models.Tenant{
		ID:         uuid.New(),
		Name:       name,
		Phone:      phone,
		Email:      email,
		NationalID: nationalID,
		CreatedAt:  time.Now().UTC(),
	}

	// Link to an existing account when the phone matches a registered tenant.
	user, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if user != nil && user.Role == models.RoleTenant {
		tenant.UserID = &user.ID
	}

	if err := s.tenants.Create(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) AssignNewToRoom(
	ctx context.Context,
	roomID, requesterID uuid.UUID,
	name, phone, email, nationalID string,
) (*models.Property, error) {

	// The consolidated assignment path needs a registered account; check
	// before creating anything so there is nothing to roll back on this error.
	user, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Role != models.RoleTenant {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeInvalidTenant,
			"Phone number does not belong to a registered tenant", nil)
	}

	tenant, err := s.CreateProfile(ctx, name, phone, email, nationalID)
	if err != nil {
		return nil, err
	}

	property, err := s.occupancy.AssignTenantToRoom(ctx, roomID, user.ID, requesterID)
	if err != nil {
		if delErr := s.tenants.Delete(ctx, tenant.ID); delErr != nil {
			utils.Logger.WithError(delErr).Warnf("Failed to roll back tenant profile %s", tenant.ID)
		}
		return nil, err
	}
	return property, nil
}

func (s *tenantService) Get(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	tenant, err := s.tenants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Tenant not found", nil)
	}
	return tenant, nil
}

func (s *tenantService) GetMostRecentLease(ctx context.Context, tenantID uuid.UUID) (*models.Lease, error) {
	tenant, err := s.Get(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant.UserID == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Tenant has no linked account", nil)
	}
	lease, err := s.leases.GetMostRecentByTenantID(ctx, *tenant.UserID)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"No lease found for tenant", nil)
	}
	return lease, nil
}
