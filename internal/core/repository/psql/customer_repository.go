package psql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	database "github.com/duynhne/customer-service/internal/core"
	"github.com/duynhne/customer-service/internal/core/domain"
)

// CustomerRepository implements domain.CustomerRepository using PostgreSQL
type CustomerRepository struct{}

// NewCustomerRepository creates a new PostgreSQL customer repository
func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{}
}

// uniqueViolation is the PostgreSQL SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// CreateCustomer inserts a customer and its addresses in a single
// transaction. The customer row and every supplied address commit or roll
// back together, so a mid-batch failure never leaves a customer with a
// partial address set. Callers are expected to have filtered out invalid
// addresses already.
func (r *CustomerRepository) CreateCustomer(ctx context.Context, customer domain.CustomerPayload, addresses []domain.AddressPayload) (int64, error) {
	db := database.GetPool()
	if db == nil {
		return 0, errors.New("database connection not available")
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var customerID int64
	query := `INSERT INTO customers (first_name, last_name, phone_number) VALUES ($1, $2, $3) RETURNING id`
	err = tx.QueryRow(ctx, query, customer.FirstName, customer.LastName, customer.PhoneNumber).Scan(&customerID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("insert customer: %w", domain.ErrDuplicatePhone)
		}
		return 0, fmt.Errorf("insert customer: %w", err)
	}

	insertAddr := `INSERT INTO addresses (customer_id, address_details, city, state, pin_code) VALUES ($1, $2, $3, $4, $5)`
	for _, addr := range addresses {
		if _, err := tx.Exec(ctx, insertAddr, customerID, addr.AddressDetails, addr.City, addr.State, addr.PinCode); err != nil {
			return 0, fmt.Errorf("insert address: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit customer creation: %w", err)
	}
	return customerID, nil
}

// ListCustomers returns one page of customers matching params plus the
// total match count. The count query shares the predicate and bound args
// with the page query so the pagination metadata is always consistent.
func (r *CustomerRepository) ListCustomers(ctx context.Context, params domain.ListParams) ([]domain.Customer, int64, error) {
	db := database.GetPool()
	if db == nil {
		return nil, 0, errors.New("database connection not available")
	}

	q := buildListQuery(params)

	var total int64
	if err := db.QueryRow(ctx, q.countSQL, q.filterArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	rows, err := db.Query(ctx, q.pageSQL, q.pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.PhoneNumber); err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate customers: %w", err)
	}

	return customers, total, nil
}

// GetCustomer retrieves a customer by ID
func (r *CustomerRepository) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	db := database.GetPool()
	if db == nil {
		return nil, errors.New("database connection not available")
	}

	var c domain.Customer
	query := `SELECT id, first_name, last_name, phone_number FROM customers WHERE id = $1`
	err := db.QueryRow(ctx, query, id).Scan(&c.ID, &c.FirstName, &c.LastName, &c.PhoneNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("query customer: %w", err)
	}

	return &c, nil
}

// UpdateCustomer updates the mutable customer fields.
// Returns true if updated, false if not found
func (r *CustomerRepository) UpdateCustomer(ctx context.Context, id int64, customer domain.CustomerPayload) (bool, error) {
	db := database.GetPool()
	if db == nil {
		return false, errors.New("database connection not available")
	}

	query := `UPDATE customers SET first_name = $1, last_name = $2, phone_number = $3 WHERE id = $4`
	result, err := db.Exec(ctx, query, customer.FirstName, customer.LastName, customer.PhoneNumber, id)
	if err != nil {
		if isUniqueViolation(err) {
			return false, fmt.Errorf("update customer: %w", domain.ErrDuplicatePhone)
		}
		return false, fmt.Errorf("update customer: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// DeleteCustomer removes a customer row. Address rows go with it via the
// ON DELETE CASCADE foreign key.
// Returns true if deleted, false if not found
func (r *CustomerRepository) DeleteCustomer(ctx context.Context, id int64) (bool, error) {
	db := database.GetPool()
	if db == nil {
		return false, errors.New("database connection not available")
	}

	result, err := db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete customer: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
