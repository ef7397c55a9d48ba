package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"amrmarket/backend/internal/domain"
	"amrmarket/backend/internal/store"
	"amrmarket/backend/internal/xid"
)

func (s *Service) ListPurchaseOrders(ctx context.Context) ([]domain.PurchaseOrderLine, error) {
	return s.repo.ListPurchaseOrders(ctx)
}

func (s *Service) GetPurchaseOrder(ctx context.Context, id string) (domain.PurchaseOrderLine, error) {
	line, err := s.repo.GetPurchaseOrder(ctx, id)
	if err != nil {
		return domain.PurchaseOrderLine{}, err
	}
	return *line, nil
}

// CreatePurchaseOrder opens a fulfillment line against a supplier. One
// open line per supplier+product pair; the store rejects duplicates.
func (s *Service) CreatePurchaseOrder(ctx context.Context, req domain.PurchaseOrderCreateRequest) (domain.PurchaseOrderLine, error) {
	if err := s.validate.Struct(req); err != nil {
		return domain.PurchaseOrderLine{}, store.ErrInvalidInput
	}

	req.Category = strings.ToUpper(strings.TrimSpace(req.Category))
	req.ProductName = strings.TrimSpace(req.ProductName)

	if req.ProductName == "" || !domain.IsValidCategory(req.Category) {
		return domain.PurchaseOrderLine{}, store.ErrInvalidInput
	}

	supplier, err := s.repo.GetSupplierByID(ctx, req.SupplierID)
	if err != nil {
		return domain.PurchaseOrderLine{}, err
	}

	line := domain.PurchaseOrderLine{
		ID:               xid.New("po"),
		SupplierID:       supplier.ID,
		SupplierName:     supplier.Name,
		Category:         req.Category,
		ProductName:      req.ProductName,
		PriceCents:       req.PriceCents,
		QuantityRequired: req.QuantityRequired,
		PendingQuantity:  req.QuantityRequired,
	}

	created, err := s.repo.CreatePurchaseOrder(ctx, line)
	if err != nil {
		return domain.PurchaseOrderLine{}, err
	}

	s.logger.Info("purchase order created",
		zap.String("order_id", created.ID),
		zap.String("supplier_id", created.SupplierID),
		zap.String("product_name", created.ProductName),
		zap.Int("quantity_required", created.QuantityRequired))

	return *created, nil
}

func (s *Service) UpdatePurchaseOrder(ctx context.Context, id string, req domain.PurchaseOrderUpdateRequest) (domain.PurchaseOrderLine, error) {
	existing, err := s.repo.GetPurchaseOrder(ctx, id)
	if err != nil {
		return domain.PurchaseOrderLine{}, err
	}

	updated := *existing
	if req.PriceCents != nil {
		if *req.PriceCents < 1 {
			return domain.PurchaseOrderLine{}, store.ErrInvalidInput
		}
		updated.PriceCents = *req.PriceCents
	}
	if req.QuantityRequired != nil {
		if *req.QuantityRequired < 1 {
			return domain.PurchaseOrderLine{}, store.ErrInvalidInput
		}
		received := existing.QuantityRequired - existing.PendingQuantity
		updated.QuantityRequired = *req.QuantityRequired
		updated.PendingQuantity = *req.QuantityRequired - received
		if updated.PendingQuantity < 0 {
			updated.PendingQuantity = 0
		}
	}

	saved, err := s.repo.UpdatePurchaseOrder(ctx, updated)
	if err != nil {
		return domain.PurchaseOrderLine{}, err
	}
	return *saved, nil
}

func (s *Service) DeletePurchaseOrder(ctx context.Context, id string) error {
	return s.repo.DeletePurchaseOrder(ctx, id)
}

func (s *Service) ListItemEntries(ctx context.Context) ([]domain.ItemEntry, error) {
	return s.repo.ListItemEntries(ctx)
}

// RecordItemEntry books a goods receipt against a purchase-order line:
// the line's pending quantity drops by the received amount (clamped at
// zero on over-receipt) and the full received amount lands in stock.
// Stock resolves by product name; a product never provisioned gets a
// placeholder record seeded with this receipt.
func (s *Service) RecordItemEntry(ctx context.Context, req domain.ItemEntryCreateRequest) (domain.ItemEntry, error) {
	if err := s.validate.Struct(req); err != nil {
		return domain.ItemEntry{}, store.ErrInvalidInput
	}

	order, err := s.repo.GetPurchaseOrder(ctx, req.OrderID)
	if err != nil {
		return domain.ItemEntry{}, err
	}

	receivedDate := time.Now().UTC()
	if req.ReceivedDate != "" {
		parsed, err := time.Parse("2006-01-02", req.ReceivedDate)
		if err != nil {
			return domain.ItemEntry{}, store.ErrInvalidInput
		}
		receivedDate = parsed
	}

	pending := order.PendingQuantity - req.ReceivedQuantity
	if pending < 0 {
		pending = 0
	}
	if err := s.repo.SetPendingQuantity(ctx, order.ID, pending); err != nil {
		return domain.ItemEntry{}, err
	}

	entry := domain.ItemEntry{
		ID:               xid.New("entry"),
		OrderID:          order.ID,
		SupplierID:       order.SupplierID,
		SupplierName:     order.SupplierName,
		ProductName:      order.ProductName,
		Category:         order.Category,
		ReceivedQuantity: req.ReceivedQuantity,
		ReceivedDate:     receivedDate,
		OrderedQuantity:  order.QuantityRequired,
		PendingQuantity:  pending,
	}

	created, err := s.repo.CreateItemEntry(ctx, entry)
	if err != nil {
		return domain.ItemEntry{}, err
	}

	if err := s.receiveIntoStock(ctx, order, req.ReceivedQuantity); err != nil {
		return domain.ItemEntry{}, err
	}

	s.logger.Info("item entry recorded",
		zap.String("entry_id", created.ID),
		zap.String("order_id", order.ID),
		zap.String("product_name", order.ProductName),
		zap.Int("received", req.ReceivedQuantity),
		zap.Int("pending", pending))
	s.notifyChanged(ctx)

	return *created, nil
}

func (s *Service) receiveIntoStock(ctx context.Context, order *domain.PurchaseOrderLine, qty int) error {
	rec, err := s.repo.GetStockByProductName(ctx, order.ProductName)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		// Received goods for a product that was never provisioned.
		// Seed a record so the quantity is not lost; the product
		// catalog entry can follow later.
		_, err := s.repo.CreateStock(ctx, domain.StockRecord{
			ProductID:   xid.New("prod"),
			Category:    order.Category,
			ProductName: order.ProductName,
			Quantity:    qty,
		})
		return err
	}

	_, err = s.repo.ApplyStockDelta(ctx, rec.ProductID, qty)
	return err
}
