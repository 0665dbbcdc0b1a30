package services

import (
	"context"
	"time"

	"github.com/kodipay/kodipay-server/internal/repositories"
	"github.com/kodipay/kodipay-server/internal/utils"
)

// BillOverdueService runs from the nightly cron and flips pending bills
// past their due date to overdue.
type BillOverdueService struct {
	bills repositories.BillRepository
	now   func() time.Time
}

func NewBillOverdueService(bills repositories.BillRepository) *BillOverdueService {
	return &BillOverdueService{bills: bills, now: time.Now}
}

func (s *BillOverdueService) SweepDaily(ctx context.Context) error {
	n, err := s.bills.MarkOverdue(ctx, s.now().UTC())
	if err != nil {
		return err
	}
	if n > 0 {
		utils.Logger.Infof("Marked %d bills overdue", n)
	}
	return nil
}
