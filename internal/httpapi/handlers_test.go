package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"amrmarket/backend/internal/domain"
	"amrmarket/backend/internal/notify"
	"amrmarket/backend/internal/service"
	"amrmarket/backend/internal/store/memory"
)

// newTestAPI builds a full API over the in-memory store so handler tests
// exercise the complete request path.
func newTestAPI(t *testing.T) *API {
	t.Helper()

	repo := memory.NewSeeded()
	svc := service.New(repo, notify.NewBroadcast(), nil)
	return New(svc, "*", nil)
}

func doJSON(t *testing.T, handler http.Handler, method string, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	api := newTestAPI(t)
	rec := doJSON(t, api.Handler(), http.MethodGet, "/healthz", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("expected status ok, got %q", body["status"])
	}
}

func TestCreateProductProvisionsStock(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/products", domain.ProductCreateRequest{
		Category:     "SNACKS",
		Name:         "BISCUIT-PACK",
		Brand:        "Parle",
		MRPCents:     1500,
		InitialStock: 12,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var product domain.Product
	if err := json.NewDecoder(rec.Body).Decode(&product); err != nil {
		t.Fatalf("decode product: %v", err)
	}
	if product.ID == "" {
		t.Fatal("expected generated product id")
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/stock/"+product.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var stock domain.StockRecord
	if err := json.NewDecoder(rec.Body).Decode(&stock); err != nil {
		t.Fatalf("decode stock: %v", err)
	}
	if stock.Quantity != 12 {
		t.Fatalf("expected quantity 12, got %d", stock.Quantity)
	}
}

func TestCreateProductRejectsUnknownCategory(t *testing.T) {
	api := newTestAPI(t)

	rec := doJSON(t, api.Handler(), http.MethodPost, "/api/v1/products", domain.ProductCreateRequest{
		Category:     "ELECTRONICS",
		Name:         "KETTLE",
		Brand:        "Philips",
		MRPCents:     99900,
		InitialStock: 1,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestCreateProductRejectsUnknownFields(t *testing.T) {
	api := newTestAPI(t)

	rec := doJSON(t, api.Handler(), http.MethodPost, "/api/v1/products", map[string]any{
		"category":  "SNACKS",
		"name":      "BISCUIT",
		"brand":     "Parle",
		"mrp_cents": 1500,
		"bogus":     true,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}
}

func TestStockByNameLookup(t *testing.T) {
	api := newTestAPI(t)

	rec := doJSON(t, api.Handler(), http.MethodGet, "/api/v1/stock/by-name?name=RICE-5KG", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var stock domain.StockRecord
	if err := json.NewDecoder(rec.Body).Decode(&stock); err != nil {
		t.Fatalf("decode stock: %v", err)
	}
	if stock.ProductID != "prod-rice-5kg" {
		t.Fatalf("expected prod-rice-5kg, got %q", stock.ProductID)
	}

	rec = doJSON(t, api.Handler(), http.MethodGet, "/api/v1/stock/by-name?name=NOPE", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestStockAdjustEndpoint(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/stock/prod-rice-5kg/adjust", stockAdjustRequest{Delta: 10})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var stock domain.StockRecord
	if err := json.NewDecoder(rec.Body).Decode(&stock); err != nil {
		t.Fatalf("decode stock: %v", err)
	}
	if stock.Quantity != 50 {
		t.Fatalf("expected quantity 50, got %d", stock.Quantity)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/stock/prod-rice-5kg/adjust", stockAdjustRequest{Delta: -1000})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on underflow, got %d (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestPurchaseOrderAndReceiptFlow(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/purchase-orders", domain.PurchaseOrderCreateRequest{
		SupplierID:       "sup-agarwal",
		Category:         "GROCERIES",
		ProductName:      "RICE-5KG",
		PriceCents:       38000,
		QuantityRequired: 60,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var order domain.PurchaseOrderLine
	if err := json.NewDecoder(rec.Body).Decode(&order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if order.PendingQuantity != 60 {
		t.Fatalf("expected pending 60, got %d", order.PendingQuantity)
	}

	// Duplicate supplier+product pair conflicts.
	rec = doJSON(t, handler, http.MethodPost, "/api/v1/purchase-orders", domain.PurchaseOrderCreateRequest{
		SupplierID:       "sup-agarwal",
		Category:         "GROCERIES",
		ProductName:      "RICE-5KG",
		PriceCents:       40000,
		QuantityRequired: 10,
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate order, got %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/item-entries", domain.ItemEntryCreateRequest{
		OrderID:          order.ID,
		ReceivedQuantity: 25,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var entry domain.ItemEntry
	if err := json.NewDecoder(rec.Body).Decode(&entry); err != nil {
		t.Fatalf("decode entry: %v", err)
	}
	if entry.PendingQuantity != 35 {
		t.Fatalf("expected pending 35, got %d", entry.PendingQuantity)
	}

	rec = doJSON(t, handler, http.MethodGet, "/api/v1/stock/prod-rice-5kg", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var stock domain.StockRecord
	if err := json.NewDecoder(rec.Body).Decode(&stock); err != nil {
		t.Fatalf("decode stock: %v", err)
	}
	if stock.Quantity != 65 {
		t.Fatalf("expected quantity 65 after receipt, got %d", stock.Quantity)
	}
}

func TestBillingDeductsStock(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/billing", domain.BillCreateRequest{
		ProductID:  "prod-rice-5kg",
		CustomerID: "cust-walkin",
		Quantity:   5,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var resp domain.BillResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode bill response: %v", err)
	}
	if !resp.StockAdjusted {
		t.Fatal("expected stock_adjusted true")
	}
	if resp.Bill.TotalCents != 42000*5 {
		t.Fatalf("unexpected total %d", resp.Bill.TotalCents)
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/billing", domain.BillCreateRequest{
		ProductID:  "prod-rice-5kg",
		CustomerID: "cust-walkin",
		Quantity:   1000,
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for insufficient stock, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, handler, http.MethodPost, "/api/v1/billing", domain.BillCreateRequest{
		ProductID:  "prod-missing",
		CustomerID: "cust-walkin",
		Quantity:   1,
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing product, got %d", rec.Code)
	}
}

func TestPartnerEndpoints(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()

	rec := doJSON(t, handler, http.MethodPost, "/api/v1/customers", domain.CustomerCreateRequest{
		Name:   "Asha Rao",
		Mobile: "9800001234",
		City:   "Pune",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	var customer domain.Customer
	if err := json.NewDecoder(rec.Body).Decode(&customer); err != nil {
		t.Fatalf("decode customer: %v", err)
	}

	rec = doJSON(t, handler, http.MethodDelete, "/api/v1/customers/"+customer.ID, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = doJSON(t, handler, http.MethodDelete, "/api/v1/customers/"+customer.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()

	rec := doJSON(t, handler, http.MethodDelete, "/api/v1/billing", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestOptionsPreflight(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/products", nil)
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if origin := rec.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Fatalf("unexpected allow origin %q", origin)
	}
}
