package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nimko_store/internal/models"
)

func TestRelayClientDisabledWithoutURL(t *testing.T) {
	client := NewRelayClient("", "", "")
	assert.False(t, client.Enabled())
}

func TestSubmitOrderPostsPayloadWithBasicAuth(t *testing.T) {
	var received models.Order
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "bridge", user)
		assert.Equal(t, "hunter2", pass)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(RelayResponse{
			Success:   true,
			Message:   "appended",
			RowID:     "42",
			Timestamp: "2026-08-30T12:00:00Z",
		})
	}))
	defer server.Close()

	client := NewRelayClient(server.URL, "bridge", "hunter2")
	require.True(t, client.Enabled())

	order := &models.Order{
		OrderID:     "ORD-1",
		Name:        "Ali Khan",
		Phone:       "03001234567",
		Email:       "ali@example.com",
		Address:     "House 12",
		City:        "Karachi",
		Cart:        []models.CartItem{{ProductID: "1", Name: "Nimko", Price: 1399, Quantity: 2}},
		TotalAmount: 2798,
		Status:      models.OrderPending,
	}

	resp, err := client.SubmitOrder(order)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "42", resp.RowID)
	assert.Equal(t, "ORD-1", received.OrderID)
	assert.Equal(t, 2798.0, received.TotalAmount)
}

func TestSubmitOrderRejectsGarbageResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewRelayClient(server.URL, "", "")
	_, err := client.SubmitOrder(&models.Order{OrderID: "ORD-1"})
	assert.Error(t, err)
}
