package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"amrmarket/backend/internal/domain"
	"amrmarket/backend/internal/store"
	"amrmarket/backend/internal/xid"
)

type Store struct {
	db *sql.DB
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxIdleConns(8)
	db.SetMaxOpenConns(30)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 6*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, category, name, brand, mrp_cents, created_at
		FROM products
		ORDER BY category, name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]domain.Product, 0, 128)
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Category, &p.Name, &p.Brand, &p.MRPCents, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (s *Store) GetProductByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := s.db.QueryRowContext(ctx, `
		SELECT id, category, name, brand, mrp_cents, created_at
		FROM products
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Category, &p.Name, &p.Brand, &p.MRPCents, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// CreateProductWithStock inserts the product and its stock record inside
// one transaction, so a failed second insert leaves no orphaned product.
func (s *Store) CreateProductWithStock(ctx context.Context, product domain.Product, initialQty int) (*domain.Product, error) {
	if product.ID == "" || product.Name == "" || !domain.IsValidCategory(product.Category) || initialQty < 0 {
		return nil, store.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO products (id, category, name, brand, mrp_cents, created_at)
		VALUES ($1,$2,$3,$4,$5,now())
	`, product.ID, product.Category, product.Name, product.Brand, product.MRPCents)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrInvalidInput
		}
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO stock_records (product_id, category, product_name, brand_name, qty, updated_at)
		VALUES ($1,$2,$3,$4,$5,now())
	`, product.ID, product.Category, product.Name, product.Brand, initialQty)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrInvalidInput
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	created := product
	created.CreatedAt = time.Now().UTC()
	return &created, nil
}

func (s *Store) UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	if product.ID == "" || product.Name == "" || !domain.IsValidCategory(product.Category) {
		return nil, store.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE products
		SET category = $2, name = $3, brand = $4, mrp_cents = $5
		WHERE id = $1
	`, product.ID, product.Category, product.Name, product.Brand, product.MRPCents)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}

	// Denormalized display fields on the stock record follow the product.
	_, err = tx.ExecContext(ctx, `
		UPDATE stock_records
		SET category = $2, product_name = $3, brand_name = $4, updated_at = now()
		WHERE product_id = $1
	`, product.ID, product.Category, product.Name, product.Brand)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	updated := product
	return &updated, nil
}

// DeleteProduct removes the product and cascades to its stock record.
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM stock_records WHERE product_id = $1`, id)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) ListStocks(ctx context.Context) ([]domain.StockRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product_id, category, product_name, brand_name, qty, updated_at
		FROM stock_records
		ORDER BY category, product_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.StockRecord, 0, 128)
	for rows.Next() {
		var rec domain.StockRecord
		if err := rows.Scan(&rec.ProductID, &rec.Category, &rec.ProductName, &rec.BrandName, &rec.Quantity, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (s *Store) GetStock(ctx context.Context, productID string) (*domain.StockRecord, error) {
	return s.getStockWhere(ctx, `product_id = $1`, productID)
}

// GetStockByProductName resolves stock for flows that only carry the
// denormalized product name. Exact, case-sensitive match.
func (s *Store) GetStockByProductName(ctx context.Context, name string) (*domain.StockRecord, error) {
	return s.getStockWhere(ctx, `product_name = $1`, name)
}

func (s *Store) getStockWhere(ctx context.Context, predicate string, arg string) (*domain.StockRecord, error) {
	var rec domain.StockRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT product_id, category, product_name, brand_name, qty, updated_at
		FROM stock_records
		WHERE `+predicate, arg).Scan(&rec.ProductID, &rec.Category, &rec.ProductName, &rec.BrandName, &rec.Quantity, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (s *Store) CreateStock(ctx context.Context, record domain.StockRecord) (*domain.StockRecord, error) {
	if record.ProductID == "" || record.ProductName == "" || record.Quantity < 0 {
		return nil, store.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stock_records (product_id, category, product_name, brand_name, qty, updated_at)
		VALUES ($1,$2,$3,$4,$5,now())
	`, record.ProductID, record.Category, record.ProductName, record.BrandName, record.Quantity)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrInvalidInput
		}
		return nil, err
	}

	created := record
	created.UpdatedAt = time.Now().UTC()
	return &created, nil
}

// ApplyStockDelta is a single conditional UPDATE: the non-negative guard
// and the write happen in one statement, so two concurrent deltas cannot
// both pass the guard on a stale read.
func (s *Store) ApplyStockDelta(ctx context.Context, productID string, delta int) (*domain.StockRecord, error) {
	var rec domain.StockRecord
	err := s.db.QueryRowContext(ctx, `
		UPDATE stock_records
		SET qty = qty + $2, updated_at = now()
		WHERE product_id = $1 AND qty + $2 >= 0
		RETURNING product_id, category, product_name, brand_name, qty, updated_at
	`, productID, delta).Scan(&rec.ProductID, &rec.Category, &rec.ProductName, &rec.BrandName, &rec.Quantity, &rec.UpdatedAt)
	if err == nil {
		return &rec, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	// No row updated: distinguish a missing record from a guard rejection.
	var exists bool
	if err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM stock_records WHERE product_id = $1)
	`, productID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, store.ErrNotFound
	}
	return nil, store.ErrInsufficientStock
}

// CreatePurchaseOrder checks the supplier+product duplicate guard and
// inserts within one transaction. A partial unique index on
// (supplier_id, product_name) backs the guard; a unique violation maps to
// ErrDuplicateOrder as well.
func (s *Store) CreatePurchaseOrder(ctx context.Context, line domain.PurchaseOrderLine) (*domain.PurchaseOrderLine, error) {
	if line.ID == "" || line.SupplierID == "" || line.ProductName == "" || line.QuantityRequired < 1 {
		return nil, store.ErrInvalidInput
	}
	if line.PendingQuantity < 0 || line.PendingQuantity > line.QuantityRequired {
		return nil, store.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var exists bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM purchase_orders
			WHERE supplier_id = $1 AND product_name = $2
		)
	`, line.SupplierID, line.ProductName).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, store.ErrDuplicateOrder
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO purchase_orders (
			id, supplier_id, supplier_name, category, product_name,
			price_cents, qty_required, qty_pending, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,now())
	`, line.ID, line.SupplierID, line.SupplierName, line.Category, line.ProductName,
		line.PriceCents, line.QuantityRequired, line.PendingQuantity)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrDuplicateOrder
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	created := line
	created.CreatedAt = time.Now().UTC()
	return &created, nil
}

func (s *Store) GetPurchaseOrder(ctx context.Context, id string) (*domain.PurchaseOrderLine, error) {
	var line domain.PurchaseOrderLine
	err := s.db.QueryRowContext(ctx, `
		SELECT id, supplier_id, supplier_name, category, product_name,
		       price_cents, qty_required, qty_pending, created_at
		FROM purchase_orders
		WHERE id = $1
	`, id).Scan(&line.ID, &line.SupplierID, &line.SupplierName, &line.Category, &line.ProductName,
		&line.PriceCents, &line.QuantityRequired, &line.PendingQuantity, &line.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &line, nil
}

func (s *Store) ListPurchaseOrders(ctx context.Context) ([]domain.PurchaseOrderLine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, supplier_id, supplier_name, category, product_name,
		       price_cents, qty_required, qty_pending, created_at
		FROM purchase_orders
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]domain.PurchaseOrderLine, 0, 64)
	for rows.Next() {
		var line domain.PurchaseOrderLine
		if err := rows.Scan(&line.ID, &line.SupplierID, &line.SupplierName, &line.Category, &line.ProductName,
			&line.PriceCents, &line.QuantityRequired, &line.PendingQuantity, &line.CreatedAt); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

func (s *Store) UpdatePurchaseOrder(ctx context.Context, line domain.PurchaseOrderLine) (*domain.PurchaseOrderLine, error) {
	if line.ID == "" || line.QuantityRequired < 1 {
		return nil, store.ErrInvalidInput
	}
	if line.PendingQuantity < 0 || line.PendingQuantity > line.QuantityRequired {
		return nil, store.ErrInvalidInput
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE purchase_orders
		SET price_cents = $2, qty_required = $3, qty_pending = $4
		WHERE id = $1
	`, line.ID, line.PriceCents, line.QuantityRequired, line.PendingQuantity)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}

	updated := line
	return &updated, nil
}

func (s *Store) SetPendingQuantity(ctx context.Context, orderID string, pending int) error {
	if pending < 0 {
		return store.ErrInvalidInput
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE purchase_orders
		SET qty_pending = $2
		WHERE id = $1 AND qty_required >= $2
	`, orderID, pending)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) DeletePurchaseOrder(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM purchase_orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CreateItemEntry(ctx context.Context, entry domain.ItemEntry) (*domain.ItemEntry, error) {
	if entry.OrderID == "" || entry.ProductName == "" || entry.ReceivedQuantity < 1 {
		return nil, store.ErrInvalidInput
	}
	if entry.ID == "" {
		entry.ID = xid.New("entry")
	}
	if entry.ReceivedDate.IsZero() {
		entry.ReceivedDate = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO item_entries (
			id, order_id, supplier_id, supplier_name, product_name, category,
			qty_received, received_date, qty_ordered, qty_pending
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, entry.ID, entry.OrderID, entry.SupplierID, entry.SupplierName, entry.ProductName, entry.Category,
		entry.ReceivedQuantity, entry.ReceivedDate, entry.OrderedQuantity, entry.PendingQuantity)
	if err != nil {
		return nil, err
	}

	created := entry
	return &created, nil
}

func (s *Store) ListItemEntries(ctx context.Context) ([]domain.ItemEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, order_id, supplier_id, supplier_name, product_name, category,
		       qty_received, received_date, qty_ordered, qty_pending
		FROM item_entries
		ORDER BY received_date, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.ItemEntry, 0, 64)
	for rows.Next() {
		var e domain.ItemEntry
		if err := rows.Scan(&e.ID, &e.OrderID, &e.SupplierID, &e.SupplierName, &e.ProductName, &e.Category,
			&e.ReceivedQuantity, &e.ReceivedDate, &e.OrderedQuantity, &e.PendingQuantity); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (s *Store) CreateBill(ctx context.Context, bill domain.Bill) (*domain.Bill, error) {
	if bill.ProductID == "" || bill.CustomerID == "" || bill.Quantity < 1 {
		return nil, store.ErrInvalidInput
	}
	if bill.ID == "" {
		bill.ID = xid.New("bill")
	}
	if bill.BillDate.IsZero() {
		bill.BillDate = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bills (
			id, product_id, product_name, category, price_cents,
			qty, total_cents, bill_date, customer_id, employee_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, bill.ID, bill.ProductID, bill.ProductName, bill.Category, bill.PriceCents,
		bill.Quantity, bill.TotalCents, bill.BillDate, bill.CustomerID, nullIfEmpty(bill.EmployeeID))
	if err != nil {
		return nil, err
	}

	created := bill
	return &created, nil
}

func (s *Store) ListBills(ctx context.Context) ([]domain.Bill, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product_id, product_name, category, price_cents,
		       qty, total_cents, bill_date, customer_id, COALESCE(employee_id, '')
		FROM bills
		ORDER BY bill_date, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := make([]domain.Bill, 0, 64)
	for rows.Next() {
		var b domain.Bill
		if err := rows.Scan(&b.ID, &b.ProductID, &b.ProductName, &b.Category, &b.PriceCents,
			&b.Quantity, &b.TotalCents, &b.BillDate, &b.CustomerID, &b.EmployeeID); err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bills, nil
}

func (s *Store) CreateSupplier(ctx context.Context, supplier domain.Supplier) (*domain.Supplier, error) {
	if supplier.ID == "" || supplier.Name == "" {
		return nil, store.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO suppliers (id, name, company_name, mobile, email, category, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,now())
	`, supplier.ID, supplier.Name, supplier.CompanyName, supplier.Mobile, supplier.Email, supplier.Category)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrInvalidInput
		}
		return nil, err
	}

	created := supplier
	created.CreatedAt = time.Now().UTC()
	return &created, nil
}

func (s *Store) GetSupplierByID(ctx context.Context, id string) (*domain.Supplier, error) {
	var sup domain.Supplier
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, company_name, mobile, email, category, created_at
		FROM suppliers
		WHERE id = $1
	`, id).Scan(&sup.ID, &sup.Name, &sup.CompanyName, &sup.Mobile, &sup.Email, &sup.Category, &sup.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &sup, nil
}

func (s *Store) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, company_name, mobile, email, category, created_at
		FROM suppliers
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	suppliers := make([]domain.Supplier, 0, 32)
	for rows.Next() {
		var sup domain.Supplier
		if err := rows.Scan(&sup.ID, &sup.Name, &sup.CompanyName, &sup.Mobile, &sup.Email, &sup.Category, &sup.CreatedAt); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, sup)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return suppliers, nil
}

func (s *Store) DeleteSupplier(ctx context.Context, id string) error {
	return s.deleteByID(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
}

func (s *Store) CreateCustomer(ctx context.Context, customer domain.Customer) (*domain.Customer, error) {
	if customer.ID == "" || customer.Name == "" {
		return nil, store.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO customers (id, name, mobile, address, city, pincode, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,now())
	`, customer.ID, customer.Name, customer.Mobile, customer.Address, customer.City, customer.Pincode)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrInvalidInput
		}
		return nil, err
	}

	created := customer
	created.CreatedAt = time.Now().UTC()
	return &created, nil
}

func (s *Store) GetCustomerByID(ctx context.Context, id string) (*domain.Customer, error) {
	var c domain.Customer
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, mobile, address, city, pincode, created_at
		FROM customers
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Mobile, &c.Address, &c.City, &c.Pincode, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (s *Store) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, mobile, address, city, pincode, created_at
		FROM customers
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0, 64)
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Mobile, &c.Address, &c.City, &c.Pincode, &c.CreatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return customers, nil
}

func (s *Store) DeleteCustomer(ctx context.Context, id string) error {
	return s.deleteByID(ctx, `DELETE FROM customers WHERE id = $1`, id)
}

func (s *Store) CreateEmployee(ctx context.Context, employee domain.Employee) (*domain.Employee, error) {
	if employee.ID == "" || employee.Name == "" {
		return nil, store.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, name, mobile, email, designation, created_at)
		VALUES ($1,$2,$3,$4,$5,now())
	`, employee.ID, employee.Name, employee.Mobile, employee.Email, employee.Designation)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, store.ErrInvalidInput
		}
		return nil, err
	}

	created := employee
	created.CreatedAt = time.Now().UTC()
	return &created, nil
}

func (s *Store) GetEmployeeByID(ctx context.Context, id string) (*domain.Employee, error) {
	var e domain.Employee
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, mobile, email, designation, created_at
		FROM employees
		WHERE id = $1
	`, id).Scan(&e.ID, &e.Name, &e.Mobile, &e.Email, &e.Designation, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, mobile, email, designation, created_at
		FROM employees
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0, 32)
	for rows.Next() {
		var e domain.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Mobile, &e.Email, &e.Designation, &e.CreatedAt); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	return s.deleteByID(ctx, `DELETE FROM employees WHERE id = $1`, id)
}

func (s *Store) deleteByID(ctx context.Context, query string, id string) error {
	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func nullIfEmpty(val string) any {
	if val == "" {
		return nil
	}
	return val
}
