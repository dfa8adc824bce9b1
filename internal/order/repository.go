package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/saucerburger/pos-service/internal/storage"
)

const (
	ordersKey  = "burger_orders"
	counterKey = "burger_order_counter"

	// counterSeed is the value the order counter starts from on a fresh
	// device; the first issued number is counterSeed+1.
	counterSeed = 1000
)

// Repository persists the order list and the order-number counter.
type Repository interface {
	SaveOrders(ctx context.Context, orders []Order) error
	// LoadOrders returns the persisted order list. Read or decode failures
	// are logged and reported as an empty list: the caller always gets a
	// usable store and never crashes on bad local data.
	LoadOrders(ctx context.Context) []Order
	// NextOrderNumber increments and persists the counter, then returns the
	// new value. The counter is written before the number is handed out, so
	// a number is never reused even if the submission is abandoned.
	NextOrderNumber(ctx context.Context) (int, error)
}

type kvRepository struct {
	store storage.Store
}

func NewRepository(store storage.Store) Repository {
	return &kvRepository{store: store}
}

func (r *kvRepository) SaveOrders(ctx context.Context, orders []Order) error {
	data, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("order: failed to encode orders: %w", err)
	}
	if err := r.store.Put(ctx, ordersKey, data); err != nil {
		return fmt.Errorf("order: failed to save orders: %w", err)
	}
	return nil
}

func (r *kvRepository) LoadOrders(ctx context.Context) []Order {
	data, err := r.store.Get(ctx, ordersKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Error().Err(err).Msg("order: failed to read orders from storage, starting empty")
		}
		return []Order{}
	}

	var orders []Order
	if err := json.Unmarshal(data, &orders); err != nil {
		log.Error().Err(err).Msg("order: failed to decode stored orders, starting empty")
		return []Order{}
	}

	NormalizeAll(orders)
	return orders
}

func (r *kvRepository) NextOrderNumber(ctx context.Context) (int, error) {
	current := counterSeed
	data, err := r.store.Get(ctx, counterKey)
	if err == nil {
		parsed, parseErr := strconv.Atoi(string(data))
		if parseErr != nil {
			log.Warn().Str("value", string(data)).Msg("order: invalid counter value in storage, reseeding")
		} else {
			current = parsed
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		return 0, fmt.Errorf("order: failed to read order counter: %w", err)
	}

	next := current + 1
	if err := r.store.Put(ctx, counterKey, []byte(strconv.Itoa(next))); err != nil {
		return 0, fmt.Errorf("order: failed to persist order counter: %w", err)
	}
	return next, nil
}
