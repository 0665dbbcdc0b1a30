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
// BillService interface
// ---------------------------------------------------------------------

type BillService interface {
	Create(ctx context.Context, requesterID uuid.UUID, tenantID, propertyID uuid.UUID, amount float64, description string, dueDate time.Time, billType models.BillType) (*models.Bill, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Bill, error)
	ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.Bill, error)
	ListFiltered(ctx context.Context, f repositories.BillFilter) ([]*models.Bill, error)
	MarkPaid(ctx context.Context, billID uuid.UUID) (*models.Bill, error)
}

// ---------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------

type billService struct {
	bills repositories.BillRepository
	props repositories.PropertyRepository
	users repositories.UserRepository
}

func NewBillService(
	bills repositories.BillRepository,
	props repositories.PropertyRepository,
	users repositories.UserRepository,
) BillService {
	return &billService{bills: bills, props: props, users: users}
}

func (s *billService) Create(
	ctx context.Context,
	requesterID uuid.UUID,
	tenantID, propertyID uuid.UUID,
	amount float64,
	description string,
	dueDate time.Time,
	billType models.BillType,
) (*models.Bill, error) {

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

	bill := &models.Bill{
		ID:          uuid.New(),
		TenantID:    tenantID,
		PropertyID:  propertyID,
		Amount:      amount,
		Description: description,
		DueDate:     dueDate,
		Status:      models.BillStatusPending,
		Type:        billType,
	}
	if err := s.bills.Create(ctx, bill); err != nil {
		return nil, err
	}
	return bill, nil
}

func (s *billService) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Bill, error) {
	return s.bills.ListByTenantID(ctx, tenantID)
}

func (s *billService) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.Bill, error) {
	return s.bills.ListByLandlordID(ctx, landlordID)
}

func (s *billService) ListFiltered(ctx context.Context, f repositories.BillFilter) ([]*models.Bill, error) {
	return s.bills.ListFiltered(ctx, f)
}

func (s *billService) MarkPaid(ctx context.Context, billID uuid.UUID) (*models.Bill, error) {
	bill, err := s.bills.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Bill not found", nil)
	}
	return s.bills.SetStatus(ctx, billID, models.BillStatusPaid)
}
