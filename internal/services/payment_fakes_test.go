package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/kodipay/kodipay-server/internal/models"
	"github.com/kodipay/kodipay-server/internal/repositories"
	"github.com/kodipay/kodipay-server/internal/utils/mpesa"
)

/* ------------------------------------------------------------------
   bills
------------------------------------------------------------------ */

type fakeBillRepo struct {
	byID map[uuid.UUID]*models.Bill
}

func newFakeBillRepo(bills ...*models.Bill) *fakeBillRepo {
	r := &fakeBillRepo{byID: make(map[uuid.UUID]*models.Bill)}
	for _, b := range bills {
		r.byID[b.ID] = b
	}
	return r
}

func (r *fakeBillRepo) Create(_ context.Context, b *models.Bill) error {
	r.byID[b.ID] = b
	return nil
}

func (r *fakeBillRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Bill, error) {
	return r.byID[id], nil
}

func (r *fakeBillRepo) ListByTenantID(_ context.Context, tenantID uuid.UUID) ([]*models.Bill, error) {
	var out []*models.Bill
	for _, b := range r.byID {
		if b.TenantID == tenantID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBillRepo) ListByLandlordID(context.Context, uuid.UUID) ([]*models.Bill, error) {
	return nil, nil
}

func (r *fakeBillRepo) ListFiltered(context.Context, repositories.BillFilter) ([]*models.Bill, error) {
	return nil, nil
}

func (r *fakeBillRepo) SetStatus(_ context.Context, id uuid.UUID, status models.BillStatusType) (*models.Bill, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	b.Status = status
	return b, nil
}

func (r *fakeBillRepo) MarkOverdue(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, b := range r.byID {
		if b.Status == models.BillStatusPending && b.DueDate.Before(now) {
			b.Status = models.BillStatusOverdue
			n++
		}
	}
	return n, nil
}

/* ------------------------------------------------------------------
   payments
------------------------------------------------------------------ */

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments []*models.Payment
}

func (r *fakePaymentRepo) Create(_ context.Context, p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments = append(r.payments, p)
	return nil
}

func (r *fakePaymentRepo) ListByTenantID(_ context.Context, tenantID uuid.UUID) ([]*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Payment
	for _, p := range r.payments {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) ExistsByTransactionID(_ context.Context, transactionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.TransactionID == transactionID {
			return true, nil
		}
	}
	return false, nil
}

/* ------------------------------------------------------------------
   mpesa charges
------------------------------------------------------------------ */

type fakeChargeRepo struct {
	byCheckout map[string]*models.MpesaCharge
}

func newFakeChargeRepo() *fakeChargeRepo {
	return &fakeChargeRepo{byCheckout: make(map[string]*models.MpesaCharge)}
}

func (r *fakeChargeRepo) Create(_ context.Context, c *models.MpesaCharge) error {
	r.byCheckout[c.CheckoutRequestID] = c
	return nil
}

func (r *fakeChargeRepo) GetByCheckoutRequestID(_ context.Context, checkoutRequestID string) (*models.MpesaCharge, error) {
	return r.byCheckout[checkoutRequestID], nil
}

func (r *fakeChargeRepo) SetStatus(_ context.Context, checkoutRequestID string, status models.ChargeStatusType) error {
	if c, ok := r.byCheckout[checkoutRequestID]; ok {
		c.Status = status
	}
	return nil
}

/* ------------------------------------------------------------------
   leases
------------------------------------------------------------------ */

type fakeLeaseRepo struct {
	byID map[uuid.UUID]*models.Lease
}

func newFakeLeaseRepo(leases ...*models.Lease) *fakeLeaseRepo {
	r := &fakeLeaseRepo{byID: make(map[uuid.UUID]*models.Lease)}
	for _, l := range leases {
		r.byID[l.ID] = l
	}
	return r
}

func (r *fakeLeaseRepo) Create(_ context.Context, l *models.Lease) error {
	r.byID[l.ID] = l
	return nil
}

func (r *fakeLeaseRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Lease, error) {
	return r.byID[id], nil
}

func (r *fakeLeaseRepo) List(context.Context) ([]*models.Lease, error) {
	var out []*models.Lease
	for _, l := range r.byID {
		out = append(out, l)
	}
	return out, nil
}

func (r *fakeLeaseRepo) ListByTenantID(_ context.Context, tenantID uuid.UUID) ([]*models.Lease, error) {
	var out []*models.Lease
	for _, l := range r.byID {
		if l.TenantID == tenantID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeLeaseRepo) GetMostRecentByTenantID(_ context.Context, tenantID uuid.UUID) (*models.Lease, error) {
	var newest *models.Lease
	for _, l := range r.byID {
		if l.TenantID != tenantID {
			continue
		}
		if newest == nil || l.CreatedAt.After(newest.CreatedAt) {
			newest = l
		}
	}
	return newest, nil
}

func (r *fakeLeaseRepo) UpdateIfVersion(_ context.Context, l *models.Lease, expected int64) (pgconn.CommandTag, error) {
	stored, ok := r.byID[l.ID]
	if !ok || stored.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	l.RowVersion = expected + 1
	r.byID[l.ID] = l
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (r *fakeLeaseRepo) UpdateWithRetry(_ context.Context, id uuid.UUID, mutate func(*models.Lease) error) error {
	l, ok := r.byID[id]
	if !ok {
		return pgx.ErrNoRows
	}
	return mutate(l)
}

func (r *fakeLeaseRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

/* ------------------------------------------------------------------
   daraja
------------------------------------------------------------------ */

type fakeStkPusher struct {
	calls     int
	lastPhone string
	lastRef   string
	err       error
}

func (f *fakeStkPusher) STKPush(_ context.Context, phoneNumber string, amount float64, accountReference, description string) (*mpesa.STKPushResponse, error) {
	f.calls++
	f.lastPhone = phoneNumber
	f.lastRef = accountReference
	if f.err != nil {
		return nil, f.err
	}
	return &mpesa.STKPushResponse{
		MerchantRequestID:   "merchant-1",
		CheckoutRequestID:   "ws_CO_test_1",
		ResponseCode:        "0",
		ResponseDescription: "Success. Request accepted for processing",
		CustomerMessage:     "Success. Request accepted for processing",
	}, nil
}
