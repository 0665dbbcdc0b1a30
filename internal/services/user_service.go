package services

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/kodipay/kodipay-server/internal/models"
	"github.com/kodipay/kodipay-server/internal/repositories"
	"github.com/kodipay/kodipay-server/internal/utils"
)

// ---------------------------------------------------------------------
// UserService interface
// ---------------------------------------------------------------------

// UserUpdate carries the mutable profile fields. Nil pointers mean
// "leave unchanged".
type UserUpdate struct {
	FirstName   *string
	LastName    *string
	Apartment   *string
	HouseNumber *string
	MpesaNumber *string
}

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// ListTenants returns all tenant accounts. Landlord only.
	ListTenants(ctx context.Context, requesterRole models.RoleType) ([]*models.User, error)
	// Update applies profile changes. Users edit themselves; landlords may
	// edit tenant records they manage.
	Update(ctx context.Context, requesterID uuid.UUID, requesterRole models.RoleType, id uuid.UUID, upd UserUpdate) (*models.User, error)
}

// ---------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------

type userService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"User not found", nil)
	}
	return user, nil
}

func (s *userService) ListTenants(ctx context.Context, requesterRole models.RoleType) ([]*models.User, error) {
	if requesterRole != models.RoleLandlord {
		return nil, utils.NewAppError(http.StatusForbidden, utils.ErrCodeForbidden,
			"Unauthorized", nil)
	}
	return s.users.ListByRole(ctx, models.RoleTenant)
}

func (s *userService) Update(
	ctx context.Context,
	requesterID uuid.UUID,
	requesterRole models.RoleType,
	id uuid.UUID,
	upd UserUpdate,
) (*models.User, error) {

	if requesterID != id && requesterRole != models.RoleLandlord {
		return nil, utils.NewAppError(http.StatusForbidden, utils.ErrCodeForbidden,
			"Unauthorized", nil)
	}

	if err := s.users.UpdateWithRetry(ctx, id, func(u *models.User) error {
		if upd.FirstName != nil {
			u.FirstName = *upd.FirstName
		}
		if upd.LastName != nil {
			u.LastName = *upd.LastName
		}
		if upd.Apartment != nil {
			u.Apartment = *upd.Apartment
		}
		if upd.HouseNumber != nil {
			u.HouseNumber = *upd.HouseNumber
		}
		if upd.MpesaNumber != nil {
			u.MpesaNumber = *upd.MpesaNumber
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}
