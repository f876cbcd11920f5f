package psql

import (
	"context"
	"errors"
	"fmt"

	database "github.com/duynhne/customer-service/internal/core"
	"github.com/duynhne/customer-service/internal/core/domain"
)

// AddressRepository implements domain.AddressRepository using PostgreSQL
type AddressRepository struct{}

// NewAddressRepository creates a new PostgreSQL address repository
func NewAddressRepository() *AddressRepository {
	return &AddressRepository{}
}

// CreateAddress inserts an address for an existing customer. A dangling
// customer id trips the foreign key and comes back as a plain storage error.
func (r *AddressRepository) CreateAddress(ctx context.Context, customerID int64, address domain.AddressPayload) (int64, error) {
	db := database.GetPool()
	if db == nil {
		return 0, errors.New("database connection not available")
	}

	query := `INSERT INTO addresses (customer_id, address_details, city, state, pin_code) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var addressID int64
	err := db.QueryRow(ctx, query, customerID, address.AddressDetails, address.City, address.State, address.PinCode).Scan(&addressID)
	if err != nil {
		return 0, fmt.Errorf("insert address: %w", err)
	}
	return addressID, nil
}

// ListAddressesByCustomer returns all addresses owned by a customer.
// An unknown customer id yields an empty slice, not an error.
func (r *AddressRepository) ListAddressesByCustomer(ctx context.Context, customerID int64) ([]domain.Address, error) {
	db := database.GetPool()
	if db == nil {
		return nil, errors.New("database connection not available")
	}

	query := `SELECT id, customer_id, address_details, city, state, pin_code FROM addresses WHERE customer_id = $1 ORDER BY id`
	rows, err := db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("query addresses: %w", err)
	}
	defer rows.Close()

	addresses := []domain.Address{}
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(&a.ID, &a.CustomerID, &a.AddressDetails, &a.City, &a.State, &a.PinCode); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addresses = append(addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate addresses: %w", err)
	}

	return addresses, nil
}

// UpdateAddress updates the mutable address fields.
// Returns true if updated, false if not found
func (r *AddressRepository) UpdateAddress(ctx context.Context, id int64, address domain.AddressPayload) (bool, error) {
	db := database.GetPool()
	if db == nil {
		return false, errors.New("database connection not available")
	}

	query := `UPDATE addresses SET address_details = $1, city = $2, state = $3, pin_code = $4 WHERE id = $5`
	result, err := db.Exec(ctx, query, address.AddressDetails, address.City, address.State, address.PinCode, id)
	if err != nil {
		return false, fmt.Errorf("update address: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// DeleteAddress removes a single address row.
// Returns true if deleted, false if not found
func (r *AddressRepository) DeleteAddress(ctx context.Context, id int64) (bool, error) {
	db := database.GetPool()
	if db == nil {
		return false, errors.New("database connection not available")
	}

	result, err := db.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete address: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
