package domain

import "strings"

// Customer is the primary entity, identified by a unique phone number.
type Customer struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

// Address is a postal address owned by exactly one customer. Deleting the
// customer cascades to its addresses.
type Address struct {
	ID             int64  `json:"id"`
	CustomerID     int64  `json:"customer_id"`
	AddressDetails string `json:"address_details"`
	City           string `json:"city"`
	State          string `json:"state"`
	PinCode        string `json:"pin_code"`
}

// CustomerPayload carries the mutable customer fields for create/update requests.
type CustomerPayload struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

// Valid reports whether all required fields are non-empty after trimming.
func (p CustomerPayload) Valid() bool {
	return strings.TrimSpace(p.FirstName) != "" &&
		strings.TrimSpace(p.LastName) != "" &&
		strings.TrimSpace(p.PhoneNumber) != ""
}

// AddressPayload carries the mutable address fields for create/update requests.
type AddressPayload struct {
	AddressDetails string `json:"address_details"`
	City           string `json:"city"`
	State          string `json:"state"`
	PinCode        string `json:"pin_code"`
}

// Valid reports whether all required fields are non-empty after trimming.
func (p AddressPayload) Valid() bool {
	return strings.TrimSpace(p.AddressDetails) != "" &&
		strings.TrimSpace(p.City) != "" &&
		strings.TrimSpace(p.State) != "" &&
		strings.TrimSpace(p.PinCode) != ""
}

// CreateCustomerRequest is the POST /api/customers body. Addresses are
// optional; each one is validated independently and invalid entries are
// skipped rather than failing the whole request.
type CreateCustomerRequest struct {
	CustomerPayload
	Addresses []AddressPayload `json:"addresses"`
}

// Sort columns accepted by the list endpoint. Anything else falls back to "id".
var listSortFields = map[string]bool{
	"id":           true,
	"first_name":   true,
	"last_name":    true,
	"phone_number": true,
}

// ListParams is the request-scoped configuration for the customer list
// endpoint. It is built once per request via NewListParams and never
// mutated afterwards.
type ListParams struct {
	City      string
	State     string
	PinCode   string
	Search    string
	SortField string
	SortOrder string
	Page      int
	Limit     int
}

// NewListParams normalizes raw query parameters into bounded, safe values:
// the sort field is forced onto the allow-list, the order onto ASC/DESC,
// page to >= 1 and limit into [1, maxLimit].
func NewListParams(city, state, pinCode, search, sortField, sortOrder string, page, limit, defaultLimit, maxLimit int) ListParams {
	if !listSortFields[sortField] {
		sortField = "id"
	}
	if strings.EqualFold(sortOrder, "DESC") {
		sortOrder = "DESC"
	} else {
		sortOrder = "ASC"
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return ListParams{
		City:      city,
		State:     state,
		PinCode:   pinCode,
		Search:    search,
		SortField: sortField,
		SortOrder: sortOrder,
		Page:      page,
		Limit:     limit,
	}
}

// Offset returns the row offset for the current page.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination is the metadata block returned alongside a customer page.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int64 `json:"pages"`
	Limit int   `json:"limit"`
}

// CustomerPage is one page of the customer list plus its metadata.
type CustomerPage struct {
	Customers  []Customer
	Pagination Pagination
}

// CustomerDetail is a customer together with all of its addresses.
type CustomerDetail struct {
	Customer  Customer  `json:"customer"`
	Addresses []Address `json:"addresses"`
}
