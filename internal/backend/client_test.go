package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]Product{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticToken("abc123"))
	_, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth)
}

func TestNoTokenNoHeader(t *testing.T) {
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		json.NewEncoder(w).Encode([]Product{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticToken(""))
	_, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	assert.False(t, hasAuth)
}

func TestUnauthorizedMapsToSessionExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.ListSales(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestErrorBodyDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"message": "stock insuficiente"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.CreateSale(context.Background(), SaleRequest{})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "stock insuficiente", apiErr.Message)
}

func TestCustomerNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "no existe"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.GetCustomer(context.Background(), 7654321)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestGetCustomer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clientes/7654321", r.URL.Path)
		json.NewEncoder(w).Encode(Customer{CI: 7654321, Name: "Carlos Mamani"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	customer, err := client.GetCustomer(context.Background(), 7654321)
	require.NoError(t, err)
	assert.Equal(t, "Carlos Mamani", customer.Name)
}

func TestCreateSaleWireFormat(t *testing.T) {
	var got map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/ventas", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(Sale{ID: 9, Total: decimal.NewFromInt(100)})
	}))
	defer srv.Close()

	ci := int64(7654321)
	req := SaleRequest{
		CustomerCI: &ci,
		Lines: []SaleLine{
			{ProductID: 1, Quantity: 2, UnitPrice: decimal.NewFromInt(50)},
		},
	}
	client := NewClient(srv.URL, nil)
	sale, err := client.CreateSale(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(9), sale.ID)

	// Spanish field names on the wire.
	assert.Contains(t, got, "ci")
	assert.Contains(t, got, "detalle")
}

func TestUpdateStockBody(t *testing.T) {
	var got map[string]int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/inventario/11", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	require.NoError(t, client.UpdateStock(context.Background(), 11, 6))
	assert.Equal(t, map[string]int{"stock_actual": 6}, got)
}

func TestExportReturnsRawBytes(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(pdf)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	got, err := client.ExportSaleDetails(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, pdf, got)
}

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "mostrador", creds.Username)
		json.NewEncoder(w).Encode(LoginResponse{
			AccessToken: "jwt-token",
			User:        User{ID: 2, Username: "mostrador", Role: RoleVendor},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	res, err := client.Login(context.Background(), Credentials{Username: "mostrador", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-token", res.AccessToken)
	assert.Equal(t, RoleVendor, res.User.Role)
}
