package services

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/kodipay/kodipay-server/internal/models"
	"github.com/kodipay/kodipay-server/internal/repositories"
	"github.com/kodipay/kodipay-server/internal/utils"
)

// PropertyView decorates a property with the occupancy rollup landlord
// dashboards show.
type PropertyView struct {
	*models.Property
	OccupiedRooms int `json:"occupiedRooms"`
}

// ---------------------------------------------------------------------
// PropertyService interface
// ---------------------------------------------------------------------

type PropertyService interface {
	Create(ctx context.Context, landlordID uuid.UUID, name, address string, rentAmount float64, description string, floors []models.Floor) (*models.Property, error)
	ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*PropertyView, error)
	Delete(ctx context.Context, propertyID, requesterID uuid.UUID) error
}

// ---------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------

type propertyService struct {
	props repositories.PropertyRepository
}

func NewPropertyService(props repositories.PropertyRepository) PropertyService {
	return &propertyService{props: props}
}

func (s *propertyService) Create(
	ctx context.Context,
	landlordID uuid.UUID,
	name, address string,
	rentAmount float64,
	description string,
	floors []models.Floor,
) (*models.Property, error) {

	property := &models.Property{
		ID:          uuid.New(),
		LandlordID:  landlordID,
		Name:        name,
		Address:     address,
		RentAmount:  rentAmount,
		Description: description,
		Floors:      models.NormalizeFloors(floors),
	}
	if err := s.props.Create(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *propertyService) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*PropertyView, error) {
	properties, err := s.props.ListByLandlordID(ctx, landlordID)
	if err != nil {
		return nil, err
	}

	views := make([]*PropertyView, 0, len(properties))
	for _, p := range properties {
		views = append(views, &PropertyView{Property: p, OccupiedRooms: p.OccupiedRooms()})
	}
	return views, nil
}

func (s *propertyService) Delete(ctx context.Context, propertyID, requesterID uuid.UUID) error {
	property, err := s.props.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if property == nil {
		return utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound, "Property not found", nil)
	}
	if property.LandlordID != requesterID {
		return utils.NewAppError(http.StatusForbidden, utils.ErrCodeForbidden, "Unauthorized", nil)
	}
	return s.props.Delete(ctx, propertyID)
}
