package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/duynhne/customer-service/config"
	"github.com/duynhne/customer-service/internal/core/domain"
	logicv1 "github.com/duynhne/customer-service/internal/logic/v1"
	v1 "github.com/duynhne/customer-service/internal/web/v1"
)

// --- Mock Repositories ---

type mockCustomerRepo struct {
	createID    int64
	createErr   error
	customers   []domain.Customer
	total       int64
	customer    *domain.Customer
	getErr      error
	updateFound bool
	deleteFound bool
}

func (m *mockCustomerRepo) CreateCustomer(ctx context.Context, customer domain.CustomerPayload, addresses []domain.AddressPayload) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	return m.createID, nil
}

func (m *mockCustomerRepo) ListCustomers(ctx context.Context, params domain.ListParams) ([]domain.Customer, int64, error) {
	return m.customers, m.total, nil
}

func (m *mockCustomerRepo) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.customer, nil
}

func (m *mockCustomerRepo) UpdateCustomer(ctx context.Context, id int64, customer domain.CustomerPayload) (bool, error) {
	return m.updateFound, nil
}

func (m *mockCustomerRepo) DeleteCustomer(ctx context.Context, id int64) (bool, error) {
	return m.deleteFound, nil
}

type mockAddressRepo struct {
	createID    int64
	addresses   []domain.Address
	updateFound bool
	deleteFound bool
}

func (m *mockAddressRepo) CreateAddress(ctx context.Context, customerID int64, address domain.AddressPayload) (int64, error) {
	return m.createID, nil
}

func (m *mockAddressRepo) ListAddressesByCustomer(ctx context.Context, customerID int64) ([]domain.Address, error) {
	return m.addresses, nil
}

func (m *mockAddressRepo) UpdateAddress(ctx context.Context, id int64, address domain.AddressPayload) (bool, error) {
	return m.updateFound, nil
}

func (m *mockAddressRepo) DeleteAddress(ctx context.Context, id int64) (bool, error) {
	return m.deleteFound, nil
}

// --- Harness ---

func newRouter(customers *mockCustomerRepo, addresses *mockAddressRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := logicv1.NewCustomerService(customers, addresses, config.PaginationConfig{DefaultLimit: 10, MaxLimit: 100})
	handler := v1.NewCustomerHandler(service)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/customers", handler.CreateCustomer)
	api.GET("/customers", handler.ListCustomers)
	api.GET("/customers/:id", handler.GetCustomer)
	api.PUT("/customers/:id", handler.UpdateCustomer)
	api.DELETE("/customers/:id", handler.DeleteCustomer)
	api.POST("/customers/:id/addresses", handler.AddAddress)
	api.GET("/customers/:id/addresses", handler.ListAddresses)
	api.PUT("/addresses/:addressId", handler.UpdateAddress)
	api.DELETE("/addresses/:addressId", handler.DeleteAddress)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response %q: %v", w.Body.String(), err)
	}
	return w, resp
}

// --- Tests ---

func TestCreateCustomerWithAddresses(t *testing.T) {
	r := newRouter(&mockCustomerRepo{createID: 1}, &mockAddressRepo{})

	w, resp := doJSON(t, r, http.MethodPost, "/api/customers", map[string]any{
		"first_name":   "Ann",
		"last_name":    "Lee",
		"phone_number": "5551234567",
		"addresses": []map[string]any{
			{"address_details": "1 Main St", "city": "Springfield", "state": "IL", "pin_code": "62704"},
		},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", w.Code, w.Body.String())
	}
	if resp["message"] != "Customer and addresses created" {
		t.Errorf("got message %q", resp["message"])
	}
	if resp["customerId"] != float64(1) {
		t.Errorf("got customerId %v, want 1", resp["customerId"])
	}
}

func TestCreateCustomerWithoutAddresses(t *testing.T) {
	r := newRouter(&mockCustomerRepo{createID: 2}, &mockAddressRepo{})

	w, resp := doJSON(t, r, http.MethodPost, "/api/customers", map[string]any{
		"first_name":   "Bob",
		"last_name":    "Ray",
		"phone_number": "5559876543",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
	if resp["message"] != "Customer created" {
		t.Errorf("got message %q", resp["message"])
	}
}

func TestCreateCustomerInvalidPayload(t *testing.T) {
	r := newRouter(&mockCustomerRepo{}, &mockAddressRepo{})

	w, resp := doJSON(t, r, http.MethodPost, "/api/customers", map[string]any{
		"first_name": "Ann",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}
	if resp["error"] != "Invalid customer data" {
		t.Errorf("got error %q", resp["error"])
	}
}

func TestCreateCustomerDuplicatePhone(t *testing.T) {
	r := newRouter(&mockCustomerRepo{createErr: domain.ErrDuplicatePhone}, &mockAddressRepo{})

	w, resp := doJSON(t, r, http.MethodPost, "/api/customers", map[string]any{
		"first_name":   "Ann",
		"last_name":    "Lee",
		"phone_number": "5551234567",
	})

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want 500", w.Code)
	}
	if resp["error"] == nil || resp["error"] == "" {
		t.Error("expected storage error message in response")
	}
}

func TestListCustomersResponseShape(t *testing.T) {
	r := newRouter(&mockCustomerRepo{
		customers: []domain.Customer{{ID: 1, FirstName: "Ann", LastName: "Lee", PhoneNumber: "5551234567"}},
		total:     21,
	}, &mockAddressRepo{})

	w, resp := doJSON(t, r, http.MethodGet, "/api/customers?page=1&limit=10", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
	if resp["message"] != "success" {
		t.Errorf("got message %q", resp["message"])
	}
	data, ok := resp["data"].([]any)
	if !ok || len(data) != 1 {
		t.Fatalf("unexpected data: %v", resp["data"])
	}
	pagination, ok := resp["pagination"].(map[string]any)
	if !ok {
		t.Fatalf("missing pagination: %v", resp)
	}
	if pagination["total"] != float64(21) || pagination["pages"] != float64(3) ||
		pagination["page"] != float64(1) || pagination["limit"] != float64(10) {
		t.Errorf("unexpected pagination: %v", pagination)
	}
}

func TestListCustomersEmptyPage(t *testing.T) {
	r := newRouter(&mockCustomerRepo{customers: []domain.Customer{}, total: 5}, &mockAddressRepo{})

	w, resp := doJSON(t, r, http.MethodGet, "/api/customers?page=99&limit=10", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
	data, ok := resp["data"].([]any)
	if !ok {
		t.Fatalf("data must be an array even when empty, got %T", resp["data"])
	}
	if len(data) != 0 {
		t.Errorf("expected empty page, got %v", data)
	}
	pagination := resp["pagination"].(map[string]any)
	if pagination["total"] != float64(5) {
		t.Errorf("metadata must be unchanged past the last page: %v", pagination)
	}
}

func TestGetCustomerWithAddresses(t *testing.T) {
	r := newRouter(&mockCustomerRepo{
		customer: &domain.Customer{ID: 1, FirstName: "Ann", LastName: "Lee", PhoneNumber: "5551234567"},
	}, &mockAddressRepo{
		addresses: []domain.Address{{ID: 1, CustomerID: 1, AddressDetails: "1 Main St", City: "Springfield", State: "IL", PinCode: "62704"}},
	})

	w, resp := doJSON(t, r, http.MethodGet, "/api/customers/1", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
	data := resp["data"].(map[string]any)
	customer := data["customer"].(map[string]any)
	if customer["first_name"] != "Ann" || customer["phone_number"] != "5551234567" {
		t.Errorf("unexpected customer: %v", customer)
	}
	addresses := data["addresses"].([]any)
	if len(addresses) != 1 {
		t.Fatalf("got %d addresses, want 1", len(addresses))
	}
	addr := addresses[0].(map[string]any)
	if addr["city"] != "Springfield" || addr["customer_id"] != float64(1) {
		t.Errorf("unexpected address: %v", addr)
	}
}

func TestGetCustomerNotFound(t *testing.T) {
	r := newRouter(&mockCustomerRepo{getErr: domain.ErrCustomerNotFound}, &mockAddressRepo{})

	w, resp := doJSON(t, r, http.MethodGet, "/api/customers/999", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", w.Code)
	}
	if resp["error"] != "Customer not found" {
		t.Errorf("got error %q", resp["error"])
	}
}

func TestGetCustomerNonNumericID(t *testing.T) {
	r := newRouter(&mockCustomerRepo{}, &mockAddressRepo{})

	w, resp := doJSON(t, r, http.MethodGet, "/api/customers/abc", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", w.Code)
	}
	if resp["error"] != "Customer not found" {
		t.Errorf("got error %q", resp["error"])
	}
}

func TestUpdateCustomerInvalidPayload(t *testing.T) {
	r := newRouter(&mockCustomerRepo{updateFound: true}, &mockAddressRepo{})

	w, resp := doJSON(t, r, http.MethodPut, "/api/customers/1", map[string]any{
		"first_name":   "",
		"last_name":    "Lee",
		"phone_number": "5551234567",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}
	if resp["error"] != "Invalid customer data" {
		t.Errorf("got error %q", resp["error"])
	}
}

func TestUpdateCustomerOK(t *testing.T) {
	r := newRouter(&mockCustomerRepo{updateFound: true}, &mockAddressRepo{})

	w, resp := doJSON(t, r, http.MethodPut, "/api/customers/1", map[string]any{
		"first_name":   "Ann",
		"last_name":    "Lee",
		"phone_number": "5551234567",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
	if resp["message"] != "Customer updated" {
		t.Errorf("got message %q", resp["message"])
	}
}

func TestDeleteCustomerNotFound(t *testing.T) {
	r := newRouter(&mockCustomerRepo{deleteFound: false}, &mockAddressRepo{})

	w, resp := doJSON(t, r, http.MethodDelete, "/api/customers/999", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", w.Code)
	}
	if resp["error"] != "Customer not found" {
		t.Errorf("got error %q", resp["error"])
	}
}

func TestDeleteCustomerOK(t *testing.T) {
	r := newRouter(&mockCustomerRepo{deleteFound: true}, &mockAddressRepo{})

	w, resp := doJSON(t, r, http.MethodDelete, "/api/customers/1", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
	if resp["message"] != "Customer deleted" {
		t.Errorf("got message %q", resp["message"])
	}
}

func TestAddAddress(t *testing.T) {
	r := newRouter(&mockCustomerRepo{}, &mockAddressRepo{createID: 5})

	w, resp := doJSON(t, r, http.MethodPost, "/api/customers/1/addresses", map[string]any{
		"address_details": "1 Main St",
		"city":            "Springfield",
		"state":           "IL",
		"pin_code":        "62704",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
	if resp["message"] != "Address added" {
		t.Errorf("got message %q", resp["message"])
	}
	if resp["addressId"] != float64(5) {
		t.Errorf("got addressId %v, want 5", resp["addressId"])
	}
}

func TestAddAddressInvalidPayload(t *testing.T) {
	r := newRouter(&mockCustomerRepo{}, &mockAddressRepo{})

	w, resp := doJSON(t, r, http.MethodPost, "/api/customers/1/addresses", map[string]any{
		"city": "Springfield",
	})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}
	if resp["error"] != "Invalid address data" {
		t.Errorf("got error %q", resp["error"])
	}
}

func TestListAddressesEmpty(t *testing.T) {
	r := newRouter(&mockCustomerRepo{}, &mockAddressRepo{addresses: []domain.Address{}})

	w, resp := doJSON(t, r, http.MethodGet, "/api/customers/1/addresses", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
	data, ok := resp["data"].([]any)
	if !ok {
		t.Fatalf("data must be an array, got %T", resp["data"])
	}
	if len(data) != 0 {
		t.Errorf("expected empty list, got %v", data)
	}
}

func TestUpdateAddressNotFound(t *testing.T) {
	r := newRouter(&mockCustomerRepo{}, &mockAddressRepo{updateFound: false})

	w, resp := doJSON(t, r, http.MethodPut, "/api/addresses/999", map[string]any{
		"address_details": "1 Main St",
		"city":            "Springfield",
		"state":           "IL",
		"pin_code":        "62704",
	})

	if w.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", w.Code)
	}
	if resp["error"] != "Address not found" {
		t.Errorf("got error %q", resp["error"])
	}
}

func TestDeleteAddressOK(t *testing.T) {
	r := newRouter(&mockCustomerRepo{}, &mockAddressRepo{deleteFound: true})

	w, resp := doJSON(t, r, http.MethodDelete, "/api/addresses/5", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}
	if resp["message"] != "Address deleted" {
		t.Errorf("got message %q", resp["message"])
	}
}
