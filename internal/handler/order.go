package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/saucerburger/pos-service/internal/menu"
	"github.com/saucerburger/pos-service/internal/order"
	"github.com/saucerburger/pos-service/internal/version"
)

// OrderHandler handles menu lookup and the order lifecycle.
type OrderHandler struct {
	catalog *menu.Catalog
	svc     order.Service
	gate    version.Gate
}

func NewOrderHandler(catalog *menu.Catalog, svc order.Service, gate version.Gate) *OrderHandler {
	return &OrderHandler{catalog: catalog, svc: svc, gate: gate}
}

// GetMenu returns the catalog with its modifier option lists.
func (h *OrderHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.catalog)
}

type lineItemRequest struct {
	MenuItemID string   `json:"menuItemId"`
	Sauce      string   `json:"sauce"`
	SauceCup   string   `json:"sauceCup"`
	Drink      string   `json:"drink"`
	AddOns     []string `json:"addons"`
	Spicy      bool     `json:"spicy"`
	Remarks    string   `json:"remarks"`
	Quantity   int      `json:"quantity"`
}

type createOrderRequest struct {
	Items       []lineItemRequest `json:"items"`
	PaymentMode string            `json:"paymentMode"`
}

// CreateOrder builds a cart from the submitted line configurations and
// submits it. Duplicate configurations merge into one row; items that need
// no configuration step are finalized with default modifiers.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.gate.Check(r.Context()); err != nil {
		if errors.Is(err, version.ErrUpdateRequired) {
			respondWithError(w, http.StatusUpgradeRequired, "a mandatory update is required, please install the new version")
			return
		}
		log.Warn().Err(err).Msg("handler: version gate unreachable, blocking submission")
		respondWithError(w, http.StatusServiceUnavailable, "version check failed")
		return
	}

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cart := order.NewCart()
	for _, line := range req.Items {
		item, ok := h.catalog.ItemByID(line.MenuItemID)
		if !ok {
			respondWithError(w, http.StatusBadRequest, "unknown menu item: "+line.MenuItemID)
			return
		}

		pending := order.StartConfiguration(item)
		if order.NeedsConfiguration(item) {
			pending.Sauce = line.Sauce
			pending.SauceCup = line.SauceCup
			pending.Drink = line.Drink
			pending.AddOns = line.AddOns
			pending.Spicy = line.Spicy
			pending.Remarks = line.Remarks
		}

		finalized, err := order.Finalize(pending, h.catalog, line.Quantity)
		if err != nil {
			if errors.Is(err, order.ErrMissingRequiredModifier) {
				respondWithError(w, http.StatusUnprocessableEntity, "missing required modifier for "+item.Name)
				return
			}
			log.Error().Err(err).Msg("handler: failed to finalize line item")
			respondWithError(w, http.StatusInternalServerError, "failed to finalize item")
			return
		}
		cart.Add(finalized)
	}

	o, err := h.svc.Submit(r.Context(), cart, order.PaymentMode(req.PaymentMode))
	if err != nil {
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			respondWithError(w, http.StatusBadRequest, "cart is empty")
		case errors.Is(err, order.ErrInvalidPaymentMode):
			respondWithError(w, http.StatusBadRequest, "invalid payment mode")
		default:
			log.Error().Err(err).Msg("handler: failed to submit order")
			respondWithError(w, http.StatusInternalServerError, "failed to submit order")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, o)
}

// GetOrders returns the full order store, newest first.
func (h *OrderHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.svc.Orders(r.Context()))
}

// CompleteOrder moves a preparing order to completed. Unknown and already
// completed ids are silently accepted.
func (h *OrderHandler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	h.svc.Complete(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// CancelOrder removes a preparing order. Unknown and completed ids are
// silently accepted.
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	h.svc.Cancel(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteOrder removes an order from history regardless of status.
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	h.svc.DeleteFromHistory(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}
