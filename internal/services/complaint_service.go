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
// ComplaintService interface
// ---------------------------------------------------------------------

type ComplaintService interface {
	Create(ctx context.Context, tenantID, propertyID uuid.UUID, title, description string) (*models.Complaint, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Complaint, error)
	ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.Complaint, error)

	// Amend lets the filing tenant edit a complaint that is still pending.
	Amend(ctx context.Context, requesterID uuid.UUID, id uuid.UUID, title, description string) (*models.Complaint, error)
	// Resolve lets the property's landlord close a complaint with notes.
	Resolve(ctx context.Context, requesterID uuid.UUID, id uuid.UUID, notes string) (*models.Complaint, error)
	Delete(ctx context.Context, requesterID uuid.UUID, id uuid.UUID) error
}

// ---------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------

type complaintService struct {
	complaints repositories.ComplaintRepository
	props      repositories.PropertyRepository
}

func NewComplaintService(
	complaints repositories.ComplaintRepository,
	props repositories.PropertyRepository,
) ComplaintService {
	return &complaintService{complaints: complaints, props: props}
}

func (s *complaintService) Create(
	ctx context.Context,
	tenantID, propertyID uuid.UUID,
	title, description string,
) (*models.Complaint, error) {

	property, err := s.props.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Property not found", nil)
	}

	complaint := &models.Complaint{
		ID:          uuid.New(),
		TenantID:    tenantID,
		PropertyID:  propertyID,
		Title:       title,
		Description: description,
		Status:      models.ComplaintStatusPending,
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

func (s *complaintService) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Complaint, error) {
	return s.complaints.ListByTenantID(ctx, tenantID)
}

func (s *complaintService) ListByLandlord(ctx context.Context, landlordID uuid.UUID) ([]*models.Complaint, error) {
	return s.complaints.ListByLandlordID(ctx, landlordID)
}

func (s *complaintService) Amend(
	ctx context.Context,
	requesterID uuid.UUID,
	id uuid.UUID,
	title, description string,
) (*models.Complaint, error) {

	complaint, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if complaint.TenantID != requesterID {
		return nil, utils.NewAppError(http.StatusForbidden, utils.ErrCodeForbidden,
			"Unauthorized", nil)
	}
	if complaint.Status != models.ComplaintStatusPending {
		return nil, utils.NewAppError(http.StatusConflict, utils.ErrCodeConflict,
			"Resolved complaints cannot be edited", nil)
	}

	if title != "" {
		complaint.Title = title
	}
	if description != "" {
		complaint.Description = description
	}
	if err := s.complaints.Update(ctx, complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

func (s *complaintService) Resolve(
	ctx context.Context,
	requesterID uuid.UUID,
	id uuid.UUID,
	notes string,
) (*models.Complaint, error) {

	complaint, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.requireLandlord(ctx, requesterID, complaint.PropertyID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	complaint.Status = models.ComplaintStatusResolved
	complaint.ResolvedAt = &now
	complaint.ResolutionNotes = notes
	if err := s.complaints.Update(ctx, complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

func (s *complaintService) Delete(ctx context.Context, requesterID uuid.UUID, id uuid.UUID) error {
	complaint, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	// The filing tenant or the property's landlord may delete.
	if complaint.TenantID != requesterID {
		if err := s.requireLandlord(ctx, requesterID, complaint.PropertyID); err != nil {
			return err
		}
	}
	return s.complaints.Delete(ctx, id)
}

func (s *complaintService) load(ctx context.Context, id uuid.UUID) (*models.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Complaint not found", nil)
	}
	return complaint, nil
}

func (s *complaintService) requireLandlord(ctx context.Context, requesterID, propertyID uuid.UUID) error {
	property, err := s.props.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if property == nil || property.LandlordID != requesterID {
		return utils.NewAppError(http.StatusForbidden, utils.ErrCodeForbidden,
			"Unauthorized", nil)
	}
	return nil
}
