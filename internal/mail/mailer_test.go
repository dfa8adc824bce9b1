package mail_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saucerburger/pos-service/internal/mail"
	"github.com/saucerburger/pos-service/internal/menu"
	"github.com/saucerburger/pos-service/internal/order"
)

func backupOrders() []order.Order {
	return []order.Order{{
		ID:          "1",
		OrderNumber: 1001,
		Timestamp:   time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC),
		Items: []order.LineItem{{
			MenuItem: menu.Item{ID: "m1", Name: "Beef Burger", Price: 12, Category: menu.CategoryMains},
			Quantity: 1,
		}},
		TotalPrice:  12,
		Status:      order.StatusCompleted,
		PaymentMode: order.PaymentCash,
	}}
}

func TestClientSendBackup(t *testing.T) {
	var got struct {
		Orders []order.Order `json:"orders"`
		Email  string        `json:"email"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := mail.NewClient(srv.URL).SendBackup(context.Background(), backupOrders(), "owner@saucerburger.ge")
	require.NoError(t, err)
	assert.Equal(t, "owner@saucerburger.ge", got.Email)
	require.Len(t, got.Orders, 1)
	assert.Equal(t, 1001, got.Orders[0].OrderNumber)
}

func TestClientSendBackupEndpointFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := mail.NewClient(srv.URL).SendBackup(context.Background(), backupOrders(), "owner@saucerburger.ge")
	assert.ErrorIs(t, err, mail.ErrRemoteBackup)
}

func TestClientSendBackupUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	err := mail.NewClient(srv.URL).SendBackup(context.Background(), backupOrders(), "owner@saucerburger.ge")
	assert.ErrorIs(t, err, mail.ErrRemoteBackup)
}

func TestNoopAlwaysSucceeds(t *testing.T) {
	assert.NoError(t, mail.Noop{}.SendBackup(context.Background(), backupOrders(), ""))
}
