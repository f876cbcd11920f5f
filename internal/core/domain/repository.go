package domain

import "context"

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	// CreateCustomer inserts a customer plus the given addresses in one
	// transaction and returns the new customer id.
	CreateCustomer(ctx context.Context, customer CustomerPayload, addresses []AddressPayload) (int64, error)
	ListCustomers(ctx context.Context, params ListParams) ([]Customer, int64, error)
	GetCustomer(ctx context.Context, id int64) (*Customer, error)
	// UpdateCustomer returns false when no row matched the id.
	UpdateCustomer(ctx context.Context, id int64, customer CustomerPayload) (bool, error)
	// DeleteCustomer returns false when no row matched the id. Address rows
	// are removed by the storage-level cascade.
	DeleteCustomer(ctx context.Context, id int64) (bool, error)
}

// AddressRepository defines the interface for address data access
type AddressRepository interface {
	CreateAddress(ctx context.Context, customerID int64, address AddressPayload) (int64, error)
	ListAddressesByCustomer(ctx context.Context, customerID int64) ([]Address, error)
	UpdateAddress(ctx context.Context, id int64, address AddressPayload) (bool, error)
	DeleteAddress(ctx context.Context, id int64) (bool, error)
}
