package domain

import "time"

// Categories is the fixed set of product categories the store sells.
// Values are stored upper-cased and validated on every write.
var Categories = []string{
	"SNACKS",
	"PRODUCE",
	"FROZEN",
	"GROCERIES",
	"HOUSEHOLDS",
	"PERSONAL CARE",
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

type Product struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand"`
	MRPCents  int64     `json:"mrp_cents"`
	CreatedAt time.Time `json:"created_at"`
}

type ProductCreateRequest struct {
	Category     string `json:"category" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Brand        string `json:"brand" validate:"required"`
	MRPCents     int64  `json:"mrp_cents" validate:"gt=0"`
	InitialStock int    `json:"initial_stock" validate:"gte=0"`
}

type ProductUpdateRequest struct {
	Category *string `json:"category,omitempty"`
	Name     *string `json:"name,omitempty"`
	Brand    *string `json:"brand,omitempty"`
	MRPCents *int64  `json:"mrp_cents,omitempty"`
}

// StockRecord is the authoritative quantity-on-hand for one product.
// Exactly one record exists per provisioned product and Quantity never
// goes negative. Category, name and brand are denormalized display
// fields; ProductID is the key.
type StockRecord struct {
	ProductID   string    `json:"product_id"`
	Category    string    `json:"category"`
	ProductName string    `json:"product_name"`
	BrandName   string    `json:"brand_name"`
	Quantity    int       `json:"quantity"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PurchaseOrderLine tracks one ordered product from one supplier.
// PendingQuantity starts at QuantityRequired and only moves toward zero
// as item entries are recorded against the line.
type PurchaseOrderLine struct {
	ID               string    `json:"id"`
	SupplierID       string    `json:"supplier_id"`
	SupplierName     string    `json:"supplier_name"`
	Category         string    `json:"category"`
	ProductName      string    `json:"product_name"`
	PriceCents       int64     `json:"price_cents"`
	QuantityRequired int       `json:"quantity_required"`
	PendingQuantity  int       `json:"pending_quantity"`
	CreatedAt        time.Time `json:"created_at"`
}

type PurchaseOrderCreateRequest struct {
	SupplierID       string `json:"supplier_id" validate:"required"`
	Category         string `json:"category" validate:"required"`
	ProductName      string `json:"product_name" validate:"required"`
	PriceCents       int64  `json:"price_cents" validate:"gt=0"`
	QuantityRequired int    `json:"quantity_required" validate:"gt=0"`
}

type PurchaseOrderUpdateRequest struct {
	PriceCents       *int64 `json:"price_cents,omitempty"`
	QuantityRequired *int   `json:"quantity_required,omitempty"`
}

// ItemEntry is a goods receipt against a purchase-order line. Order data
// is denormalized at receipt time so the entry stays readable after the
// line changes or is deleted.
type ItemEntry struct {
	ID               string    `json:"id"`
	OrderID          string    `json:"order_id"`
	SupplierID       string    `json:"supplier_id"`
	SupplierName     string    `json:"supplier_name"`
	ProductName      string    `json:"product_name"`
	Category         string    `json:"category"`
	ReceivedQuantity int       `json:"received_quantity"`
	ReceivedDate     time.Time `json:"received_date"`
	OrderedQuantity  int       `json:"ordered_quantity"`
	PendingQuantity  int       `json:"pending_quantity"`
}

type ItemEntryCreateRequest struct {
	OrderID          string `json:"order_id" validate:"required"`
	ReceivedQuantity int    `json:"received_quantity" validate:"gt=0"`
	ReceivedDate     string `json:"received_date,omitempty"`
}

// Bill is an append-only sale record; it is never mutated after creation.
type Bill struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Category    string    `json:"category"`
	PriceCents  int64     `json:"price_cents"`
	Quantity    int       `json:"quantity"`
	TotalCents  int64     `json:"total_cents"`
	BillDate    time.Time `json:"bill_date"`
	CustomerID  string    `json:"customer_id"`
	EmployeeID  string    `json:"employee_id,omitempty"`
}

type BillCreateRequest struct {
	ProductID  string `json:"product_id" validate:"required"`
	CustomerID string `json:"customer_id" validate:"required"`
	EmployeeID string `json:"employee_id,omitempty"`
	Quantity   int    `json:"quantity" validate:"gt=0"`
}

// BillResponse reports the committed bill and whether stock was actually
// adjusted. StockAdjusted is false when the product has no stock record:
// the sale stands but the quantity is untracked.
type BillResponse struct {
	Bill          Bill `json:"bill"`
	StockAdjusted bool `json:"stock_adjusted"`
}

type Supplier struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	CompanyName string    `json:"company_name,omitempty"`
	Mobile      string    `json:"mobile"`
	Email       string    `json:"email,omitempty"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type SupplierCreateRequest struct {
	Name        string `json:"name" validate:"required"`
	CompanyName string `json:"company_name,omitempty"`
	Mobile      string `json:"mobile" validate:"required"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Category    string `json:"category,omitempty"`
}

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Mobile    string    `json:"mobile"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	Pincode   string    `json:"pincode,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CustomerCreateRequest struct {
	Name    string `json:"name" validate:"required"`
	Mobile  string `json:"mobile" validate:"required"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Pincode string `json:"pincode,omitempty"`
}

type Employee struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Mobile      string    `json:"mobile"`
	Email       string    `json:"email,omitempty"`
	Designation string    `json:"designation,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type EmployeeCreateRequest struct {
	Name        string `json:"name" validate:"required"`
	Mobile      string `json:"mobile" validate:"required"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Designation string `json:"designation,omitempty"`
}
