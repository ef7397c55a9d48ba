package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"amrmarket/backend/internal/domain"
	"amrmarket/backend/internal/notify"
	"amrmarket/backend/internal/store"
	"amrmarket/backend/internal/store/memory"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return New(memory.NewSeeded(), notify.NewBroadcast(), nil)
}

func TestProvisionReceiveSellLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, domain.ProductCreateRequest{
		Category:     "GROCERIES",
		Name:         "ATTA-10KG",
		Brand:        "Aashirvaad",
		MRPCents:     52000,
		InitialStock: 0,
	})
	require.NoError(t, err)

	rec, err := svc.GetStock(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, 0, rec.Quantity)

	order, err := svc.CreatePurchaseOrder(ctx, domain.PurchaseOrderCreateRequest{
		SupplierID:       "sup-agarwal",
		Category:         "GROCERIES",
		ProductName:      "ATTA-10KG",
		PriceCents:       41000,
		QuantityRequired: 50,
	})
	require.NoError(t, err)
	require.Equal(t, 50, order.PendingQuantity)

	entry, err := svc.RecordItemEntry(ctx, domain.ItemEntryCreateRequest{
		OrderID:          order.ID,
		ReceivedQuantity: 50,
	})
	require.NoError(t, err)
	require.Equal(t, 0, entry.PendingQuantity)

	rec, err = svc.GetStock(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, 50, rec.Quantity)

	resp, err := svc.CreateBill(ctx, domain.BillCreateRequest{
		ProductID:  product.ID,
		CustomerID: "cust-walkin",
		EmployeeID: "emp-counter-1",
		Quantity:   20,
	})
	require.NoError(t, err)
	require.True(t, resp.StockAdjusted)
	require.Equal(t, int64(52000*20), resp.Bill.TotalCents)

	rec, err = svc.GetStock(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, 30, rec.Quantity)

	_, err = svc.CreateBill(ctx, domain.BillCreateRequest{
		ProductID:  product.ID,
		CustomerID: "cust-walkin",
		Quantity:   50,
	})
	require.ErrorIs(t, err, store.ErrInsufficientStock)

	// Rejected sale leaves stock and the bill ledger untouched.
	rec, err = svc.GetStock(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, 30, rec.Quantity)

	bills, err := svc.ListBills(ctx)
	require.NoError(t, err)
	require.Len(t, bills, 1)
}

func TestCreateProductRejectsUnknownCategory(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateProduct(context.Background(), domain.ProductCreateRequest{
		Category: "ELECTRONICS",
		Name:     "TOASTER",
		Brand:    "Prestige",
		MRPCents: 150000,
	})
	require.ErrorIs(t, err, store.ErrInvalidInput)
}

func TestDuplicatePurchaseOrderRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	req := domain.PurchaseOrderCreateRequest{
		SupplierID:       "sup-agarwal",
		Category:         "GROCERIES",
		ProductName:      "SUGAR-1KG",
		PriceCents:       4000,
		QuantityRequired: 100,
	}
	_, err := svc.CreatePurchaseOrder(ctx, req)
	require.NoError(t, err)

	_, err = svc.CreatePurchaseOrder(ctx, req)
	require.ErrorIs(t, err, store.ErrDuplicateOrder)

	// Same product from a different supplier is a separate line.
	req.SupplierID = "sup-fresh"
	_, err = svc.CreatePurchaseOrder(ctx, req)
	require.NoError(t, err)
}

func TestPartialAndOverReceipt(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	order, err := svc.CreatePurchaseOrder(ctx, domain.PurchaseOrderCreateRequest{
		SupplierID:       "sup-agarwal",
		Category:         "GROCERIES",
		ProductName:      "RICE-5KG",
		PriceCents:       38000,
		QuantityRequired: 60,
	})
	require.NoError(t, err)

	entry, err := svc.RecordItemEntry(ctx, domain.ItemEntryCreateRequest{
		OrderID:          order.ID,
		ReceivedQuantity: 40,
	})
	require.NoError(t, err)
	require.Equal(t, 20, entry.PendingQuantity)

	// Over-receipt clamps pending at zero but the full amount is stocked.
	entry, err = svc.RecordItemEntry(ctx, domain.ItemEntryCreateRequest{
		OrderID:          order.ID,
		ReceivedQuantity: 35,
	})
	require.NoError(t, err)
	require.Equal(t, 0, entry.PendingQuantity)

	rec, err := svc.GetStockByProductName(ctx, "RICE-5KG")
	require.NoError(t, err)
	require.Equal(t, 40+40+35, rec.Quantity)
}

func TestReceiptForUnprovisionedProductSeedsStock(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	order, err := svc.CreatePurchaseOrder(ctx, domain.PurchaseOrderCreateRequest{
		SupplierID:       "sup-fresh",
		Category:         "PRODUCE",
		ProductName:      "MANGO-KG",
		PriceCents:       9000,
		QuantityRequired: 25,
	})
	require.NoError(t, err)

	_, err = svc.GetStockByProductName(ctx, "MANGO-KG")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.RecordItemEntry(ctx, domain.ItemEntryCreateRequest{
		OrderID:          order.ID,
		ReceivedQuantity: 25,
	})
	require.NoError(t, err)

	rec, err := svc.GetStockByProductName(ctx, "MANGO-KG")
	require.NoError(t, err)
	require.Equal(t, 25, rec.Quantity)
	require.Equal(t, "PRODUCE", rec.Category)
}

func TestAdjustStockDeltaInverse(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	before, err := svc.GetStock(ctx, "prod-rice-5kg")
	require.NoError(t, err)

	_, err = svc.AdjustStock(ctx, "prod-rice-5kg", 17)
	require.NoError(t, err)
	after, err := svc.AdjustStock(ctx, "prod-rice-5kg", -17)
	require.NoError(t, err)
	require.Equal(t, before.Quantity, after.Quantity)

	_, err = svc.AdjustStock(ctx, "prod-rice-5kg", 0)
	require.ErrorIs(t, err, store.ErrInvalidInput)

	_, err = svc.AdjustStock(ctx, "prod-rice-5kg", -(after.Quantity + 1))
	require.ErrorIs(t, err, store.ErrInsufficientStock)
}

// missingStockRepo hides the stock record for one product, modeling the
// legacy gap of a product that was never provisioned with stock.
type missingStockRepo struct {
	store.Repository
	productID string
}

func (r *missingStockRepo) ApplyStockDelta(ctx context.Context, productID string, delta int) (*domain.StockRecord, error) {
	if productID == r.productID {
		return nil, store.ErrNotFound
	}
	return r.Repository.ApplyStockDelta(ctx, productID, delta)
}

func TestBillWithoutStockRecordCommitsUnadjusted(t *testing.T) {
	repo := &missingStockRepo{Repository: memory.NewSeeded(), productID: "prod-rice-5kg"}
	svc := New(repo, notify.NewBroadcast(), nil)
	ctx := context.Background()

	resp, err := svc.CreateBill(ctx, domain.BillCreateRequest{
		ProductID:  "prod-rice-5kg",
		CustomerID: "cust-walkin",
		Quantity:   2,
	})
	require.NoError(t, err)
	require.False(t, resp.StockAdjusted)
	require.Equal(t, 2, resp.Bill.Quantity)

	bills, err := svc.ListBills(ctx)
	require.NoError(t, err)
	require.Len(t, bills, 1)
}

// failingBillRepo rejects bill persistence so the compensating stock
// increment can be observed.
type failingBillRepo struct {
	store.Repository
}

func (r *failingBillRepo) CreateBill(_ context.Context, _ domain.Bill) (*domain.Bill, error) {
	return nil, errors.New("bill storage unavailable")
}

func TestBillPersistFailureCompensatesStock(t *testing.T) {
	repo := &failingBillRepo{Repository: memory.NewSeeded()}
	svc := New(repo, notify.NewBroadcast(), nil)
	ctx := context.Background()

	before, err := svc.GetStock(ctx, "prod-rice-5kg")
	require.NoError(t, err)

	_, err = svc.CreateBill(ctx, domain.BillCreateRequest{
		ProductID:  "prod-rice-5kg",
		CustomerID: "cust-walkin",
		Quantity:   3,
	})
	require.Error(t, err)

	after, err := svc.GetStock(ctx, "prod-rice-5kg")
	require.NoError(t, err)
	require.Equal(t, before.Quantity, after.Quantity)
}

func TestBillValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateBill(ctx, domain.BillCreateRequest{
		CustomerID: "cust-walkin",
		Quantity:   1,
	})
	require.ErrorIs(t, err, store.ErrInvalidInput)

	_, err = svc.CreateBill(ctx, domain.BillCreateRequest{
		ProductID: "prod-rice-5kg",
		Quantity:  1,
	})
	require.ErrorIs(t, err, store.ErrInvalidInput)

	_, err = svc.CreateBill(ctx, domain.BillCreateRequest{
		ProductID:  "prod-missing",
		CustomerID: "cust-walkin",
		Quantity:   1,
	})
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = svc.CreateBill(ctx, domain.BillCreateRequest{
		ProductID:  "prod-rice-5kg",
		CustomerID: "cust-missing",
		Quantity:   1,
	})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestChangeSignalsOnStockMutations(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	ch, cancel := svc.SubscribeChanges()
	defer cancel()

	drain := func() bool {
		select {
		case <-ch:
			return true
		default:
			return false
		}
	}

	_, err := svc.AdjustStock(ctx, "prod-rice-5kg", 5)
	require.NoError(t, err)
	require.True(t, drain(), "stock adjustment should signal")

	_, err = svc.CreateProduct(ctx, domain.ProductCreateRequest{
		Category:     "SNACKS",
		Name:         "NAMKEEN-MIX",
		Brand:        "Haldiram",
		MRPCents:     5500,
		InitialStock: 10,
	})
	require.NoError(t, err)
	require.True(t, drain(), "provisioning should signal")

	_, err = svc.ListStocks(ctx)
	require.NoError(t, err)
	require.False(t, drain(), "reads should not signal")
}

func TestPurchaseOrderUpdatePreservesReceivedProgress(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	order, err := svc.CreatePurchaseOrder(ctx, domain.PurchaseOrderCreateRequest{
		SupplierID:       "sup-agarwal",
		Category:         "HOUSEHOLDS",
		ProductName:      "DETERGENT-1KG",
		PriceCents:       12000,
		QuantityRequired: 40,
	})
	require.NoError(t, err)

	_, err = svc.RecordItemEntry(ctx, domain.ItemEntryCreateRequest{
		OrderID:          order.ID,
		ReceivedQuantity: 15,
	})
	require.NoError(t, err)

	newQty := 60
	updated, err := svc.UpdatePurchaseOrder(ctx, order.ID, domain.PurchaseOrderUpdateRequest{
		QuantityRequired: &newQty,
	})
	require.NoError(t, err)
	require.Equal(t, 60, updated.QuantityRequired)
	require.Equal(t, 45, updated.PendingQuantity)
}
