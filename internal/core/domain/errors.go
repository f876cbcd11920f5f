package domain

import "errors"

// Sentinel errors for customer and address operations.
var (
	// ErrCustomerNotFound indicates the requested customer does not exist.
	// HTTP Status: 404 Not Found
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrAddressNotFound indicates the requested address does not exist.
	// HTTP Status: 404 Not Found
	ErrAddressNotFound = errors.New("address not found")

	// ErrInvalidCustomer indicates a customer payload with missing or blank
	// required fields. HTTP Status: 400 Bad Request
	ErrInvalidCustomer = errors.New("invalid customer data")

	// ErrInvalidAddress indicates an address payload with missing or blank
	// required fields. HTTP Status: 400 Bad Request
	ErrInvalidAddress = errors.New("invalid address data")

	// ErrDuplicatePhone indicates a phone_number uniqueness violation.
	// Surfaced as a storage failure (500), not a structured conflict.
	ErrDuplicatePhone = errors.New("phone_number already exists")
)
