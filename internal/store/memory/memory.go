package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"amrmarket/backend/internal/domain"
	"amrmarket/backend/internal/store"
	"amrmarket/backend/internal/xid"
)

type Store struct {
	mu               sync.RWMutex
	productsByID     map[string]domain.Product
	stockByProductID map[string]domain.StockRecord
	ordersByID       map[string]domain.PurchaseOrderLine
	itemEntries      []domain.ItemEntry
	bills            []domain.Bill
	suppliersByID    map[string]domain.Supplier
	customersByID    map[string]domain.Customer
	employeesByID    map[string]domain.Employee
}

func New() *Store {
	return &Store{
		productsByID:     make(map[string]domain.Product),
		stockByProductID: make(map[string]domain.StockRecord),
		ordersByID:       make(map[string]domain.PurchaseOrderLine),
		itemEntries:      make([]domain.ItemEntry, 0, 64),
		bills:            make([]domain.Bill, 0, 64),
		suppliersByID:    make(map[string]domain.Supplier),
		customersByID:    make(map[string]domain.Customer),
		employeesByID:    make(map[string]domain.Employee),
	}
}

// NewSeeded returns a store preloaded with demo data for dev mode and
// tests. Every seeded product has a matching stock record.
func NewSeeded() *Store {
	s := New()
	now := time.Now().UTC()

	products := []domain.Product{
		{ID: "prod-rice-5kg", Category: "GROCERIES", Name: "RICE-5KG", Brand: "Annapurna", MRPCents: 42000},
		{ID: "prod-sugar-1kg", Category: "GROCERIES", Name: "SUGAR-1KG", Brand: "Madhur", MRPCents: 5200},
		{ID: "prod-chips-salt", Category: "SNACKS", Name: "CHIPS-SALTED", Brand: "Lays", MRPCents: 2000},
		{ID: "prod-peas-frozen", Category: "FROZEN", Name: "GREEN-PEAS-500G", Brand: "Safal", MRPCents: 7500},
		{ID: "prod-soap-bath", Category: "PERSONAL CARE", Name: "BATH-SOAP", Brand: "Cinthol", MRPCents: 4500},
		{ID: "prod-detergent", Category: "HOUSEHOLDS", Name: "DETERGENT-1KG", Brand: "Surf", MRPCents: 14000},
		{ID: "prod-banana", Category: "PRODUCE", Name: "BANANA-DOZEN", Brand: "", MRPCents: 6000},
	}
	initial := map[string]int{
		"prod-rice-5kg":    40,
		"prod-sugar-1kg":   80,
		"prod-chips-salt":  150,
		"prod-peas-frozen": 60,
		"prod-soap-bath":   90,
		"prod-detergent":   35,
		"prod-banana":      25,
	}
	for _, p := range products {
		p.CreatedAt = now
		s.productsByID[p.ID] = p
		s.stockByProductID[p.ID] = domain.StockRecord{
			ProductID:   p.ID,
			Category:    p.Category,
			ProductName: p.Name,
			BrandName:   p.Brand,
			Quantity:    initial[p.ID],
			UpdatedAt:   now,
		}
	}

	for _, sup := range []domain.Supplier{
		{ID: "sup-agarwal", Name: "Agarwal Traders", CompanyName: "Agarwal Trading Co", Mobile: "9800000001", Category: "GROCERIES"},
		{ID: "sup-fresh", Name: "Fresh Farms", CompanyName: "Fresh Farms Pvt Ltd", Mobile: "9800000002", Category: "PRODUCE"},
	} {
		sup.CreatedAt = now
		s.suppliersByID[sup.ID] = sup
	}

	s.customersByID["cust-walkin"] = domain.Customer{
		ID: "cust-walkin", Name: "Walk In", Mobile: "0000000000", CreatedAt: now,
	}
	s.employeesByID["emp-counter-1"] = domain.Employee{
		ID: "emp-counter-1", Name: "Counter One", Mobile: "9800000009", Designation: "CASHIER", CreatedAt: now,
	}

	return s
}

func (s *Store) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]domain.Product, 0, len(s.productsByID))
	for _, p := range s.productsByID {
		products = append(products, p)
	}
	slices.SortFunc(products, func(a, b domain.Product) int {
		if a.Category == b.Category {
			return strings.Compare(a.Name, b.Name)
		}
		return strings.Compare(a.Category, b.Category)
	})
	return products, nil
}

func (s *Store) GetProductByID(_ context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	product, exists := s.productsByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copied := product
	return &copied, nil
}

// CreateProductWithStock inserts the product and its stock record under a
// single lock acquisition, so the pair is all-or-nothing.
func (s *Store) CreateProductWithStock(_ context.Context, product domain.Product, initialQty int) (*domain.Product, error) {
	if product.ID == "" || product.Name == "" || !domain.IsValidCategory(product.Category) || initialQty < 0 {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.productsByID[product.ID]; exists {
		return nil, store.ErrInvalidInput
	}
	if _, exists := s.stockByProductID[product.ID]; exists {
		return nil, store.ErrInvalidInput
	}

	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now().UTC()
	}
	s.productsByID[product.ID] = product
	s.stockByProductID[product.ID] = domain.StockRecord{
		ProductID:   product.ID,
		Category:    product.Category,
		ProductName: product.Name,
		BrandName:   product.Brand,
		Quantity:    initialQty,
		UpdatedAt:   product.CreatedAt,
	}

	created := product
	return &created, nil
}

func (s *Store) UpdateProduct(_ context.Context, product domain.Product) (*domain.Product, error) {
	if product.ID == "" || product.Name == "" || !domain.IsValidCategory(product.Category) {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.productsByID[product.ID]
	if !exists {
		return nil, store.ErrNotFound
	}
	product.CreatedAt = existing.CreatedAt
	s.productsByID[product.ID] = product

	// Keep the denormalized display fields on the stock record in sync.
	if rec, ok := s.stockByProductID[product.ID]; ok {
		rec.Category = product.Category
		rec.ProductName = product.Name
		rec.BrandName = product.Brand
		rec.UpdatedAt = time.Now().UTC()
		s.stockByProductID[product.ID] = rec
	}

	updated := product
	return &updated, nil
}

// DeleteProduct removes the product and cascades to its stock record.
func (s *Store) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.productsByID[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.productsByID, id)
	delete(s.stockByProductID, id)
	return nil
}

func (s *Store) ListStocks(_ context.Context) ([]domain.StockRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.StockRecord, 0, len(s.stockByProductID))
	for _, rec := range s.stockByProductID {
		records = append(records, rec)
	}
	slices.SortFunc(records, func(a, b domain.StockRecord) int {
		if a.Category == b.Category {
			return strings.Compare(a.ProductName, b.ProductName)
		}
		return strings.Compare(a.Category, b.Category)
	})
	return records, nil
}

func (s *Store) GetStock(_ context.Context, productID string) (*domain.StockRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, exists := s.stockByProductID[productID]
	if !exists {
		return nil, store.ErrNotFound
	}
	copied := rec
	return &copied, nil
}

// GetStockByProductName is the compatibility shim for flows that carry a
// denormalized product name instead of an identity. Matching is exact and
// case-sensitive.
func (s *Store) GetStockByProductName(_ context.Context, name string) (*domain.StockRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.stockByProductID {
		if rec.ProductName == name {
			copied := rec
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) CreateStock(_ context.Context, record domain.StockRecord) (*domain.StockRecord, error) {
	if record.ProductID == "" || record.ProductName == "" || record.Quantity < 0 {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.stockByProductID[record.ProductID]; exists {
		return nil, store.ErrInvalidInput
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = time.Now().UTC()
	}
	s.stockByProductID[record.ProductID] = record

	created := record
	return &created, nil
}

// ApplyStockDelta performs the guard and the write under one lock
// acquisition: concurrent deltas for the same product serialize here and
// cannot base their guard on a stale read.
func (s *Store) ApplyStockDelta(_ context.Context, productID string, delta int) (*domain.StockRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, exists := s.stockByProductID[productID]
	if !exists {
		return nil, store.ErrNotFound
	}
	next := rec.Quantity + delta
	if next < 0 {
		return nil, store.ErrInsufficientStock
	}
	rec.Quantity = next
	rec.UpdatedAt = time.Now().UTC()
	s.stockByProductID[productID] = rec

	updated := rec
	return &updated, nil
}

// CreatePurchaseOrder rejects a second line for the same supplier and
// product name while any existing line is present, under the same lock
// that inserts the new line.
func (s *Store) CreatePurchaseOrder(_ context.Context, line domain.PurchaseOrderLine) (*domain.PurchaseOrderLine, error) {
	if line.ID == "" || line.SupplierID == "" || line.ProductName == "" || line.QuantityRequired < 1 {
		return nil, store.ErrInvalidInput
	}
	if line.PendingQuantity < 0 || line.PendingQuantity > line.QuantityRequired {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.ordersByID {
		if existing.SupplierID == line.SupplierID && existing.ProductName == line.ProductName {
			return nil, store.ErrDuplicateOrder
		}
	}
	if line.CreatedAt.IsZero() {
		line.CreatedAt = time.Now().UTC()
	}
	s.ordersByID[line.ID] = line

	created := line
	return &created, nil
}

func (s *Store) GetPurchaseOrder(_ context.Context, id string) (*domain.PurchaseOrderLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	line, exists := s.ordersByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copied := line
	return &copied, nil
}

func (s *Store) ListPurchaseOrders(_ context.Context) ([]domain.PurchaseOrderLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]domain.PurchaseOrderLine, 0, len(s.ordersByID))
	for _, line := range s.ordersByID {
		lines = append(lines, line)
	}
	slices.SortFunc(lines, func(a, b domain.PurchaseOrderLine) int {
		if a.CreatedAt.Equal(b.CreatedAt) {
			return strings.Compare(a.ID, b.ID)
		}
		if a.CreatedAt.Before(b.CreatedAt) {
			return -1
		}
		return 1
	})
	return lines, nil
}

func (s *Store) UpdatePurchaseOrder(_ context.Context, line domain.PurchaseOrderLine) (*domain.PurchaseOrderLine, error) {
	if line.ID == "" || line.QuantityRequired < 1 {
		return nil, store.ErrInvalidInput
	}
	if line.PendingQuantity < 0 || line.PendingQuantity > line.QuantityRequired {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.ordersByID[line.ID]
	if !exists {
		return nil, store.ErrNotFound
	}
	line.CreatedAt = existing.CreatedAt
	s.ordersByID[line.ID] = line

	updated := line
	return &updated, nil
}

func (s *Store) SetPendingQuantity(_ context.Context, orderID string, pending int) error {
	if pending < 0 {
		return store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	line, exists := s.ordersByID[orderID]
	if !exists {
		return store.ErrNotFound
	}
	if pending > line.QuantityRequired {
		return store.ErrInvalidInput
	}
	line.PendingQuantity = pending
	s.ordersByID[orderID] = line
	return nil
}

func (s *Store) DeletePurchaseOrder(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ordersByID[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.ordersByID, id)
	return nil
}

func (s *Store) CreateItemEntry(_ context.Context, entry domain.ItemEntry) (*domain.ItemEntry, error) {
	if entry.OrderID == "" || entry.ProductName == "" || entry.ReceivedQuantity < 1 {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = xid.New("entry")
	}
	if entry.ReceivedDate.IsZero() {
		entry.ReceivedDate = time.Now().UTC()
	}
	s.itemEntries = append(s.itemEntries, entry)

	created := entry
	return &created, nil
}

func (s *Store) ListItemEntries(_ context.Context) ([]domain.ItemEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]domain.ItemEntry, len(s.itemEntries))
	copy(entries, s.itemEntries)
	return entries, nil
}

func (s *Store) CreateBill(_ context.Context, bill domain.Bill) (*domain.Bill, error) {
	if bill.ProductID == "" || bill.CustomerID == "" || bill.Quantity < 1 {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if bill.ID == "" {
		bill.ID = xid.New("bill")
	}
	if bill.BillDate.IsZero() {
		bill.BillDate = time.Now().UTC()
	}
	s.bills = append(s.bills, bill)

	created := bill
	return &created, nil
}

func (s *Store) ListBills(_ context.Context) ([]domain.Bill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bills := make([]domain.Bill, len(s.bills))
	copy(bills, s.bills)
	return bills, nil
}

func (s *Store) CreateSupplier(_ context.Context, supplier domain.Supplier) (*domain.Supplier, error) {
	if supplier.ID == "" || supplier.Name == "" {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.suppliersByID[supplier.ID]; exists {
		return nil, store.ErrInvalidInput
	}
	if supplier.CreatedAt.IsZero() {
		supplier.CreatedAt = time.Now().UTC()
	}
	s.suppliersByID[supplier.ID] = supplier

	created := supplier
	return &created, nil
}

func (s *Store) GetSupplierByID(_ context.Context, id string) (*domain.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	supplier, exists := s.suppliersByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copied := supplier
	return &copied, nil
}

func (s *Store) ListSuppliers(_ context.Context) ([]domain.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	suppliers := make([]domain.Supplier, 0, len(s.suppliersByID))
	for _, sup := range s.suppliersByID {
		suppliers = append(suppliers, sup)
	}
	slices.SortFunc(suppliers, func(a, b domain.Supplier) int {
		return strings.Compare(a.Name, b.Name)
	})
	return suppliers, nil
}

func (s *Store) DeleteSupplier(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.suppliersByID[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.suppliersByID, id)
	return nil
}

func (s *Store) CreateCustomer(_ context.Context, customer domain.Customer) (*domain.Customer, error) {
	if customer.ID == "" || customer.Name == "" {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.customersByID[customer.ID]; exists {
		return nil, store.ErrInvalidInput
	}
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = time.Now().UTC()
	}
	s.customersByID[customer.ID] = customer

	created := customer
	return &created, nil
}

func (s *Store) GetCustomerByID(_ context.Context, id string) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customer, exists := s.customersByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copied := customer
	return &copied, nil
}

func (s *Store) ListCustomers(_ context.Context) ([]domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	customers := make([]domain.Customer, 0, len(s.customersByID))
	for _, c := range s.customersByID {
		customers = append(customers, c)
	}
	slices.SortFunc(customers, func(a, b domain.Customer) int {
		return strings.Compare(a.Name, b.Name)
	})
	return customers, nil
}

func (s *Store) DeleteCustomer(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.customersByID[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.customersByID, id)
	return nil
}

func (s *Store) CreateEmployee(_ context.Context, employee domain.Employee) (*domain.Employee, error) {
	if employee.ID == "" || employee.Name == "" {
		return nil, store.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.employeesByID[employee.ID]; exists {
		return nil, store.ErrInvalidInput
	}
	if employee.CreatedAt.IsZero() {
		employee.CreatedAt = time.Now().UTC()
	}
	s.employeesByID[employee.ID] = employee

	created := employee
	return &created, nil
}

func (s *Store) GetEmployeeByID(_ context.Context, id string) (*domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employee, exists := s.employeesByID[id]
	if !exists {
		return nil, store.ErrNotFound
	}
	copied := employee
	return &copied, nil
}

func (s *Store) ListEmployees(_ context.Context) ([]domain.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	employees := make([]domain.Employee, 0, len(s.employeesByID))
	for _, e := range s.employeesByID {
		employees = append(employees, e)
	}
	slices.SortFunc(employees, func(a, b domain.Employee) int {
		return strings.Compare(a.Name, b.Name)
	})
	return employees, nil
}

func (s *Store) DeleteEmployee(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.employeesByID[id]; !exists {
		return store.ErrNotFound
	}
	delete(s.employeesByID, id)
	return nil
}
