package service

import (
	"context"
	"strings"

	"amrmarket/backend/internal/domain"
	"amrmarket/backend/internal/store"
	"amrmarket/backend/internal/xid"
)

func (s *Service) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	return s.repo.ListSuppliers(ctx)
}

func (s *Service) CreateSupplier(ctx context.Context, req domain.SupplierCreateRequest) (domain.Supplier, error) {
	if err := s.validate.Struct(req); err != nil {
		return domain.Supplier{}, store.ErrInvalidInput
	}

	supplier := domain.Supplier{
		ID:          xid.New("sup"),
		Name:        strings.TrimSpace(req.Name),
		CompanyName: strings.TrimSpace(req.CompanyName),
		Mobile:      strings.TrimSpace(req.Mobile),
		Email:       strings.TrimSpace(req.Email),
		Category:    strings.ToUpper(strings.TrimSpace(req.Category)),
	}
	if supplier.Name == "" || supplier.Mobile == "" {
		return domain.Supplier{}, store.ErrInvalidInput
	}
	if supplier.Category != "" && !domain.IsValidCategory(supplier.Category) {
		return domain.Supplier{}, store.ErrInvalidInput
	}

	created, err := s.repo.CreateSupplier(ctx, supplier)
	if err != nil {
		return domain.Supplier{}, err
	}
	return *created, nil
}

func (s *Service) DeleteSupplier(ctx context.Context, id string) error {
	return s.repo.DeleteSupplier(ctx, id)
}

func (s *Service) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.repo.ListCustomers(ctx)
}

func (s *Service) CreateCustomer(ctx context.Context, req domain.CustomerCreateRequest) (domain.Customer, error) {
	if err := s.validate.Struct(req); err != nil {
		return domain.Customer{}, store.ErrInvalidInput
	}

	customer := domain.Customer{
		ID:      xid.New("cust"),
		Name:    strings.TrimSpace(req.Name),
		Mobile:  strings.TrimSpace(req.Mobile),
		Address: strings.TrimSpace(req.Address),
		City:    strings.TrimSpace(req.City),
		Pincode: strings.TrimSpace(req.Pincode),
	}
	if customer.Name == "" || customer.Mobile == "" {
		return domain.Customer{}, store.ErrInvalidInput
	}

	created, err := s.repo.CreateCustomer(ctx, customer)
	if err != nil {
		return domain.Customer{}, err
	}
	return *created, nil
}

func (s *Service) DeleteCustomer(ctx context.Context, id string) error {
	return s.repo.DeleteCustomer(ctx, id)
}

func (s *Service) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	return s.repo.ListEmployees(ctx)
}

func (s *Service) CreateEmployee(ctx context.Context, req domain.EmployeeCreateRequest) (domain.Employee, error) {
	if err := s.validate.Struct(req); err != nil {
		return domain.Employee{}, store.ErrInvalidInput
	}

	employee := domain.Employee{
		ID:          xid.New("emp"),
		Name:        strings.TrimSpace(req.Name),
		Mobile:      strings.TrimSpace(req.Mobile),
		Email:       strings.TrimSpace(req.Email),
		Designation: strings.TrimSpace(req.Designation),
	}
	if employee.Name == "" || employee.Mobile == "" {
		return domain.Employee{}, store.ErrInvalidInput
	}

	created, err := s.repo.CreateEmployee(ctx, employee)
	if err != nil {
		return domain.Employee{}, err
	}
	return *created, nil
}

func (s *Service) DeleteEmployee(ctx context.Context, id string) error {
	return s.repo.DeleteEmployee(ctx, id)
}
