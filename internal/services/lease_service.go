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
// LeaseService interface
// ---------------------------------------------------------------------

type LeaseService interface {
	Create(ctx context.Context, requesterID uuid.UUID, tenantID, propertyID uuid.UUID, startDate, endDate time.Time, rentAmount float64) (*models.Lease, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error)
	List(ctx context.Context) ([]*models.Lease, error)
	ListByTenant(ctx context.Context, requesterID uuid.UUID, requesterRole models.RoleType, tenantID uuid.UUID) ([]*models.Lease, error)
	Update(ctx context.Context, requesterID uuid.UUID, id uuid.UUID, mutate func(*models.Lease) error) (*models.Lease, error)
	Delete(ctx context.Context, requesterID uuid.UUID, id uuid.UUID) error
}

// ---------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------

type leaseService struct {
	leases repositories.LeaseRepository
	props  repositories.PropertyRepository
	users  repositories.UserRepository
}

func NewLeaseService(
	leases repositories.LeaseRepository,
	props repositories.PropertyRepository,
	users repositories.UserRepository,
) LeaseService {
	return &leaseService{leases: leases, props: props, users: users}
}

func (s *leaseService) Create(
	ctx context.Context,
	requesterID uuid.UUID,
	tenantID, propertyID uuid.UUID,
	startDate, endDate time.Time,
	rentAmount float64,
) (*models.Lease, error) {

	if !endDate.After(startDate) {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation,
			"Lease end date must be after start date", nil)
	}

	tenant, err := s.users.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil || tenant.Role != models.RoleTenant {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeInvalidTenant,
			"Invalid tenant", nil)
	}

	property, err := s.props.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Property not found", nil)
	}
	if property.LandlordID != requesterID {
		return nil, utils.NewAppError(http.StatusForbidden, utils.ErrCodeForbidden,
			"Unauthorized", nil)
	}

	lease := &models.Lease{
		ID:         uuid.New(),
		TenantID:   tenantID,
		PropertyID: propertyID,
		StartDate:  startDate,
		EndDate:    endDate,
		RentAmount: rentAmount,
		// A new lease starts with the full rent outstanding.
		Balance:   rentAmount,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.leases.Create(ctx, lease); err != nil {
		return nil, err
	}
	return lease, nil
}

func (s *leaseService) GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	lease, err := s.leases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lease == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Lease not found", nil)
	}
	return lease, nil
}

func (s *leaseService) List(ctx context.Context) ([]*models.Lease, error) {
	return s.leases.List(ctx)
}

func (s *leaseService) ListByTenant(
	ctx context.Context,
	requesterID uuid.UUID,
	requesterRole models.RoleType,
	tenantID uuid.UUID,
) ([]*models.Lease, error) {

	// Tenants may only read their own leases; landlords may read any.
	if requesterRole != models.RoleLandlord && requesterID != tenantID {
		return nil, utils.NewAppError(http.StatusForbidden, utils.ErrCodeForbidden,
			"Unauthorized", nil)
	}
	return s.leases.ListByTenantID(ctx, tenantID)
}

func (s *leaseService) Update(
	ctx context.Context,
	requesterID uuid.UUID,
	id uuid.UUID,
	mutate func(*models.Lease) error,
) (*models.Lease, error) {

	if err := s.authorize(ctx, requesterID, id); err != nil {
		return nil, err
	}
	if err := s.leases.UpdateWithRetry(ctx, id, mutate); err != nil {
		return nil, err
	}
	return s.leases.GetByID(ctx, id)
}

func (s *leaseService) Delete(ctx context.Context, requesterID uuid.UUID, id uuid.UUID) error {
	if err := s.authorize(ctx, requesterID, id); err != nil {
		return err
	}
	return s.leases.Delete(ctx, id)
}

// authorize checks that the requester owns the property the lease is tied to.
func (s *leaseService) authorize(ctx context.Context, requesterID, leaseID uuid.UUID) error {
	lease, err := s.leases.GetByID(ctx, leaseID)
	if err != nil {
		return err
	}
	if lease == nil {
		return utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Lease not found", nil)
	}
	property, err := s.props.GetByID(ctx, lease.PropertyID)
	if err != nil {
		return err
	}
	if property == nil || property.LandlordID != requesterID {
		return utils.NewAppError(http.StatusForbidden, utils.ErrCodeForbidden,
			"Unauthorized", nil)
	}
	return nil
}
