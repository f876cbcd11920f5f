package v1

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/duynhne/customer-service/config"
	"github.com/duynhne/customer-service/internal/core/domain"
	"github.com/duynhne/customer-service/middleware"
)

// Domain-level metrics, separate from the HTTP middleware metrics.
var (
	customersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "customers_created_total",
		Help: "Total number of customers created",
	})
	customersDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "customers_deleted_total",
		Help: "Total number of customers deleted",
	})
	addressesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "addresses_created_total",
		Help: "Total number of addresses created, including bulk inserts at customer creation",
	})
	addressesSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "addresses_skipped_total",
		Help: "Addresses dropped from bulk customer creation because they failed validation",
	})
)

// CustomerService implements the business logic for customer and address
// management on top of the repository interfaces.
type CustomerService struct {
	customers  domain.CustomerRepository
	addresses  domain.AddressRepository
	pagination config.PaginationConfig
}

// NewCustomerService creates a new customer service
func NewCustomerService(customers domain.CustomerRepository, addresses domain.AddressRepository, pagination config.PaginationConfig) *CustomerService {
	return &CustomerService{
		customers:  customers,
		addresses:  addresses,
		pagination: pagination,
	}
}

// CreateCustomer validates the customer payload, drops invalid addresses
// from the bulk list, and inserts the rest atomically. Invalid addresses
// are skipped silently rather than failing the request; that is the
// documented contract of the endpoint, not an accident.
func (s *CustomerService) CreateCustomer(ctx context.Context, req domain.CreateCustomerRequest) (int64, error) {
	ctx, span := middleware.StartSpan(ctx, "customer.create", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int("addresses.supplied", len(req.Addresses)),
	))
	defer span.End()

	if !req.CustomerPayload.Valid() {
		span.SetAttributes(attribute.Bool("request.valid", false))
		return 0, domain.ErrInvalidCustomer
	}

	valid := make([]domain.AddressPayload, 0, len(req.Addresses))
	for _, addr := range req.Addresses {
		if addr.Valid() {
			valid = append(valid, addr)
		} else {
			addressesSkippedTotal.Inc()
		}
	}
	span.SetAttributes(attribute.Int("addresses.valid", len(valid)))

	customerID, err := s.customers.CreateCustomer(ctx, req.CustomerPayload, valid)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("create customer: %w", err)
	}

	customersCreatedTotal.Inc()
	addressesCreatedTotal.Add(float64(len(valid)))
	span.SetAttributes(attribute.Int64("customer.id", customerID))
	span.AddEvent("customer.created")

	return customerID, nil
}

// ListCustomers normalizes the raw query parameters into a bounded,
// request-scoped configuration and returns the matching page with its
// pagination metadata.
func (s *CustomerService) ListCustomers(ctx context.Context, city, state, pinCode, search, sortField, sortOrder string, page, limit int) (*domain.CustomerPage, error) {
	params := domain.NewListParams(city, state, pinCode, search, sortField, sortOrder,
		page, limit, s.pagination.DefaultLimit, s.pagination.MaxLimit)

	ctx, span := middleware.StartSpan(ctx, "customer.list", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.String("sort.field", params.SortField),
		attribute.String("sort.order", params.SortOrder),
		attribute.Int("page", params.Page),
		attribute.Int("limit", params.Limit),
	))
	defer span.End()

	customers, total, err := s.customers.ListCustomers(ctx, params)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list customers: %w", err)
	}

	// pages = ceil(total/limit); a page past the end yields an empty data
	// slice with unchanged metadata.
	pages := (total + int64(params.Limit) - 1) / int64(params.Limit)

	span.SetAttributes(attribute.Int64("customers.total", total))
	return &domain.CustomerPage{
		Customers: customers,
		Pagination: domain.Pagination{
			Total: total,
			Page:  params.Page,
			Pages: pages,
			Limit: params.Limit,
		},
	}, nil
}

// GetCustomer retrieves a customer together with all of its addresses.
func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*domain.CustomerDetail, error) {
	ctx, span := middleware.StartSpan(ctx, "customer.get", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("customer.id", id),
	))
	defer span.End()

	customer, err := s.customers.GetCustomer(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("get customer %d: %w", id, err)
	}

	addresses, err := s.addresses.ListAddressesByCustomer(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("get customer %d addresses: %w", id, err)
	}

	return &domain.CustomerDetail{Customer: *customer, Addresses: addresses}, nil
}

// UpdateCustomer validates and applies the mutable customer fields.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id int64, payload domain.CustomerPayload) error {
	ctx, span := middleware.StartSpan(ctx, "customer.update", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("customer.id", id),
	))
	defer span.End()

	if !payload.Valid() {
		span.SetAttributes(attribute.Bool("request.valid", false))
		return domain.ErrInvalidCustomer
	}

	updated, err := s.customers.UpdateCustomer(ctx, id, payload)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("update customer %d: %w", id, err)
	}
	if !updated {
		return domain.ErrCustomerNotFound
	}
	return nil
}

// DeleteCustomer removes a customer; owned addresses go with it via the
// storage-level cascade.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id int64) error {
	ctx, span := middleware.StartSpan(ctx, "customer.delete", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("customer.id", id),
	))
	defer span.End()

	deleted, err := s.customers.DeleteCustomer(ctx, id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete customer %d: %w", id, err)
	}
	if !deleted {
		return domain.ErrCustomerNotFound
	}

	customersDeletedTotal.Inc()
	return nil
}

// AddAddress validates and attaches a new address to a customer.
func (s *CustomerService) AddAddress(ctx context.Context, customerID int64, payload domain.AddressPayload) (int64, error) {
	ctx, span := middleware.StartSpan(ctx, "address.create", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("customer.id", customerID),
	))
	defer span.End()

	if !payload.Valid() {
		span.SetAttributes(attribute.Bool("request.valid", false))
		return 0, domain.ErrInvalidAddress
	}

	addressID, err := s.addresses.CreateAddress(ctx, customerID, payload)
	if err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("add address for customer %d: %w", customerID, err)
	}

	addressesCreatedTotal.Inc()
	span.SetAttributes(attribute.Int64("address.id", addressID))
	return addressID, nil
}

// ListAddresses returns all addresses owned by a customer. An unknown
// customer yields an empty list, not an error.
func (s *CustomerService) ListAddresses(ctx context.Context, customerID int64) ([]domain.Address, error) {
	ctx, span := middleware.StartSpan(ctx, "address.list", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("customer.id", customerID),
	))
	defer span.End()

	addresses, err := s.addresses.ListAddressesByCustomer(ctx, customerID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("list addresses for customer %d: %w", customerID, err)
	}
	return addresses, nil
}

// UpdateAddress validates and applies the mutable address fields.
func (s *CustomerService) UpdateAddress(ctx context.Context, id int64, payload domain.AddressPayload) error {
	ctx, span := middleware.StartSpan(ctx, "address.update", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("address.id", id),
	))
	defer span.End()

	if !payload.Valid() {
		span.SetAttributes(attribute.Bool("request.valid", false))
		return domain.ErrInvalidAddress
	}

	updated, err := s.addresses.UpdateAddress(ctx, id, payload)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("update address %d: %w", id, err)
	}
	if !updated {
		return domain.ErrAddressNotFound
	}
	return nil
}

// DeleteAddress removes a single address.
func (s *CustomerService) DeleteAddress(ctx context.Context, id int64) error {
	ctx, span := middleware.StartSpan(ctx, "address.delete", trace.WithAttributes(
		attribute.String("layer", "logic"),
		attribute.Int64("address.id", id),
	))
	defer span.End()

	deleted, err := s.addresses.DeleteAddress(ctx, id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("delete address %d: %w", id, err)
	}
	if !deleted {
		return domain.ErrAddressNotFound
	}
	return nil
}
