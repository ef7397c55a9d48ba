package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"amrmarket/backend/internal/domain"
	"amrmarket/backend/internal/store"
	"amrmarket/backend/internal/xid"
)

func (s *Service) ListBills(ctx context.Context) ([]domain.Bill, error) {
	return s.repo.ListBills(ctx)
}

// CreateBill commits a sale and deducts the sold quantity from stock.
// The deduction happens before the bill is persisted: an insufficient
// balance rejects the sale outright instead of leaving a committed bill
// next to untouched stock. If persisting the bill then fails, the
// deduction is compensated.
//
// A product with no stock record is still sellable; the bill commits
// and StockAdjusted reports false so the caller can flag the gap.
func (s *Service) CreateBill(ctx context.Context, req domain.BillCreateRequest) (domain.BillResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return domain.BillResponse{}, store.ErrInvalidInput
	}

	product, err := s.repo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return domain.BillResponse{}, err
	}
	customer, err := s.repo.GetCustomerByID(ctx, req.CustomerID)
	if err != nil {
		return domain.BillResponse{}, err
	}
	if req.EmployeeID != "" {
		if _, err := s.repo.GetEmployeeByID(ctx, req.EmployeeID); err != nil {
			return domain.BillResponse{}, err
		}
	}

	stockAdjusted := false
	_, err = s.repo.ApplyStockDelta(ctx, product.ID, -req.Quantity)
	switch {
	case err == nil:
		stockAdjusted = true
	case errors.Is(err, store.ErrNotFound):
		s.logger.Warn("billing product without stock record",
			zap.String("product_id", product.ID),
			zap.String("product_name", product.Name))
	default:
		return domain.BillResponse{}, err
	}

	bill := domain.Bill{
		ID:          xid.New("bill"),
		ProductID:   product.ID,
		ProductName: product.Name,
		Category:    product.Category,
		PriceCents:  product.MRPCents,
		Quantity:    req.Quantity,
		TotalCents:  product.MRPCents * int64(req.Quantity),
		CustomerID:  customer.ID,
		EmployeeID:  req.EmployeeID,
	}

	created, err := s.repo.CreateBill(ctx, bill)
	if err != nil {
		if stockAdjusted {
			if _, compErr := s.repo.ApplyStockDelta(ctx, product.ID, req.Quantity); compErr != nil {
				s.logger.Error("compensating stock increment failed",
					zap.String("product_id", product.ID),
					zap.Int("quantity", req.Quantity),
					zap.Error(compErr))
			}
		}
		return domain.BillResponse{}, err
	}

	s.logger.Info("bill committed",
		zap.String("bill_id", created.ID),
		zap.String("product_id", product.ID),
		zap.Int("quantity", req.Quantity),
		zap.Int64("total_cents", created.TotalCents),
		zap.Bool("stock_adjusted", stockAdjusted))
	if stockAdjusted {
		s.notifyChanged(ctx)
	}

	return domain.BillResponse{Bill: *created, StockAdjusted: stockAdjusted}, nil
}
