package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"amrmarket/backend/internal/domain"
	"amrmarket/backend/internal/notify"
	"amrmarket/backend/internal/store"
	"amrmarket/backend/internal/xid"
)

type Service struct {
	repo     store.Repository
	notifier notify.Notifier
	logger   *zap.Logger
	validate *validator.Validate
}

func New(repo store.Repository, notifier notify.Notifier, logger *zap.Logger) *Service {
	if notifier == nil {
		notifier = notify.NoopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		validate: validator.New(),
	}
}

// SubscribeChanges exposes the stock change stream to transports.
func (s *Service) SubscribeChanges() (<-chan struct{}, func()) {
	return s.notifier.Subscribe()
}

func (s *Service) notifyChanged(ctx context.Context) {
	if err := s.notifier.Publish(ctx); err != nil {
		s.logger.Warn("publish change signal", zap.Error(err))
	}
}

func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	return *product, nil
}

// CreateProduct provisions a product together with its stock record.
// The two are created as one unit; a product without a stock record
// would be unsellable and untrackable.
func (s *Service) CreateProduct(ctx context.Context, req domain.ProductCreateRequest) (domain.Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return domain.Product{}, store.ErrInvalidInput
	}

	req.Category = strings.ToUpper(strings.TrimSpace(req.Category))
	req.Name = strings.TrimSpace(req.Name)
	req.Brand = strings.TrimSpace(req.Brand)

	if req.Name == "" || req.Brand == "" || !domain.IsValidCategory(req.Category) {
		return domain.Product{}, store.ErrInvalidInput
	}

	product := domain.Product{
		ID:       xid.New("prod"),
		Category: req.Category,
		Name:     req.Name,
		Brand:    req.Brand,
		MRPCents: req.MRPCents,
	}

	created, err := s.repo.CreateProductWithStock(ctx, product, req.InitialStock)
	if err != nil {
		return domain.Product{}, err
	}

	s.logger.Info("product provisioned",
		zap.String("product_id", created.ID),
		zap.String("name", created.Name),
		zap.Int("initial_stock", req.InitialStock))
	s.notifyChanged(ctx)

	return *created, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id string, req domain.ProductUpdateRequest) (domain.Product, error) {
	existing, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}

	updated := *existing
	if req.Category != nil {
		category := strings.ToUpper(strings.TrimSpace(*req.Category))
		if !domain.IsValidCategory(category) {
			return domain.Product{}, store.ErrInvalidInput
		}
		updated.Category = category
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.Product{}, store.ErrInvalidInput
		}
		updated.Name = name
	}
	if req.Brand != nil {
		brand := strings.TrimSpace(*req.Brand)
		if brand == "" {
			return domain.Product{}, store.ErrInvalidInput
		}
		updated.Brand = brand
	}
	if req.MRPCents != nil {
		if *req.MRPCents < 1 {
			return domain.Product{}, store.ErrInvalidInput
		}
		updated.MRPCents = *req.MRPCents
	}

	saved, err := s.repo.UpdateProduct(ctx, updated)
	if err != nil {
		return domain.Product{}, err
	}

	s.notifyChanged(ctx)
	return *saved, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.logger.Info("product deleted", zap.String("product_id", id))
	s.notifyChanged(ctx)
	return nil
}

func (s *Service) ListStocks(ctx context.Context) ([]domain.StockRecord, error) {
	return s.repo.ListStocks(ctx)
}

func (s *Service) GetStock(ctx context.Context, productID string) (domain.StockRecord, error) {
	rec, err := s.repo.GetStock(ctx, productID)
	if err != nil {
		return domain.StockRecord{}, err
	}
	return *rec, nil
}

// GetStockByProductName resolves stock through the denormalized product
// name. Kept for callers that predate ID-keyed lookups.
func (s *Service) GetStockByProductName(ctx context.Context, name string) (domain.StockRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.StockRecord{}, store.ErrInvalidInput
	}

	rec, err := s.repo.GetStockByProductName(ctx, name)
	if err != nil {
		return domain.StockRecord{}, err
	}
	return *rec, nil
}

// AdjustStock applies a signed quantity delta. The store enforces the
// non-negative invariant atomically.
func (s *Service) AdjustStock(ctx context.Context, productID string, delta int) (domain.StockRecord, error) {
	if delta == 0 {
		return domain.StockRecord{}, store.ErrInvalidInput
	}

	rec, err := s.repo.ApplyStockDelta(ctx, productID, delta)
	if err != nil {
		return domain.StockRecord{}, err
	}

	s.logger.Info("stock adjusted",
		zap.String("product_id", productID),
		zap.Int("delta", delta),
		zap.Int("quantity", rec.Quantity))
	s.notifyChanged(ctx)

	return *rec, nil
}
