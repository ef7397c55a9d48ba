package store

import (
	"context"
	"errors"

	"amrmarket/backend/internal/domain"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrDuplicateOrder    = errors.New("duplicate purchase order")
	ErrInvalidInput      = errors.New("invalid input")
)

// Repository is the record-oriented data store behind the reconciliation
// core. Implementations must make ApplyStockDelta's guard-and-write a
// single indivisible step and CreateProductWithStock all-or-nothing.
type Repository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (*domain.Product, error)
	CreateProductWithStock(ctx context.Context, product domain.Product, initialQty int) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListStocks(ctx context.Context) ([]domain.StockRecord, error)
	GetStock(ctx context.Context, productID string) (*domain.StockRecord, error)
	GetStockByProductName(ctx context.Context, name string) (*domain.StockRecord, error)
	CreateStock(ctx context.Context, record domain.StockRecord) (*domain.StockRecord, error)
	ApplyStockDelta(ctx context.Context, productID string, delta int) (*domain.StockRecord, error)

	CreatePurchaseOrder(ctx context.Context, line domain.PurchaseOrderLine) (*domain.PurchaseOrderLine, error)
	GetPurchaseOrder(ctx context.Context, id string) (*domain.PurchaseOrderLine, error)
	ListPurchaseOrders(ctx context.Context) ([]domain.PurchaseOrderLine, error)
	UpdatePurchaseOrder(ctx context.Context, line domain.PurchaseOrderLine) (*domain.PurchaseOrderLine, error)
	SetPendingQuantity(ctx context.Context, orderID string, pending int) error
	DeletePurchaseOrder(ctx context.Context, id string) error

	CreateItemEntry(ctx context.Context, entry domain.ItemEntry) (*domain.ItemEntry, error)
	ListItemEntries(ctx context.Context) ([]domain.ItemEntry, error)

	CreateBill(ctx context.Context, bill domain.Bill) (*domain.Bill, error)
	ListBills(ctx context.Context) ([]domain.Bill, error)

	CreateSupplier(ctx context.Context, supplier domain.Supplier) (*domain.Supplier, error)
	GetSupplierByID(ctx context.Context, id string) (*domain.Supplier, error)
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error

	CreateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, id string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error

	CreateEmployee(ctx context.Context, employee domain.Employee) (*domain.Employee, error)
	GetEmployeeByID(ctx context.Context, id string) (*domain.Employee, error)
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	DeleteEmployee(ctx context.Context, id string) error
}
