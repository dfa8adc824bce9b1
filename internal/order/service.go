package order

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Service is the durable order store for the device. Mutations apply to the
// in-memory list first and are then written through the repository;
// persistence failures are logged and never surfaced as crashes.
type Service interface {
	Orders(ctx context.Context) []Order
	// Submit turns a non-empty cart into a new order in status "preparing"
	// and prepends it to the store.
	Submit(ctx context.Context, cart *Cart, mode PaymentMode) (*Order, error)
	// Complete moves a preparing order to completed. Unknown ids and
	// already-completed orders are a silent no-op.
	Complete(ctx context.Context, id string)
	// Cancel removes an order that is still preparing. Unknown ids and
	// completed orders are a silent no-op.
	Cancel(ctx context.Context, id string)
	// DeleteFromHistory removes an order regardless of status.
	DeleteFromHistory(ctx context.Context, id string)
	// ReplaceAll swaps the whole store for a restored order list.
	ReplaceAll(ctx context.Context, orders []Order)
}

// MutationHook is invoked after every store mutation with a copy of the full
// order list. Used to trigger best-effort backups; it runs on its own
// goroutine and must not block order flow.
type MutationHook func(orders []Order)

type service struct {
	mu       sync.Mutex
	repo     Repository
	orders   []Order
	now      func() time.Time
	onMutate MutationHook
}

// NewService loads the persisted order list and returns the store. hook may
// be nil.
func NewService(ctx context.Context, repo Repository, hook MutationHook) Service {
	return &service{
		repo:     repo,
		orders:   repo.LoadOrders(ctx),
		now:      time.Now,
		onMutate: hook,
	}
}

func (s *service) Orders(ctx context.Context) []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *service) Submit(ctx context.Context, cart *Cart, mode PaymentMode) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := cart.Submit(func() (int, error) {
		return s.repo.NextOrderNumber(ctx)
	}, s.now(), mode)
	if err != nil {
		return nil, err
	}

	// Newest first, matching the on-screen order log.
	s.orders = append([]Order{*o}, s.orders...)
	s.persist(ctx)

	log.Info().Int("order_number", o.OrderNumber).Float64("total", o.TotalPrice).Msg("order submitted")
	return o, nil
}

func (s *service) Complete(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			if s.orders[i].Status != StatusPreparing {
				log.Debug().Str("order_id", id).Msg("complete ignored: order not preparing")
				return
			}
			s.orders[i].Status = StatusCompleted
			s.persist(ctx)
			log.Info().Int("order_number", s.orders[i].OrderNumber).Msg("order completed")
			return
		}
	}
	log.Debug().Str("order_id", id).Msg("complete ignored: order not found")
}

func (s *service) Cancel(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			if s.orders[i].Status != StatusPreparing {
				log.Debug().Str("order_id", id).Msg("cancel ignored: order not preparing")
				return
			}
			number := s.orders[i].OrderNumber
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			s.persist(ctx)
			log.Info().Int("order_number", number).Msg("order cancelled")
			return
		}
	}
	log.Debug().Str("order_id", id).Msg("cancel ignored: order not found")
}

func (s *service) DeleteFromHistory(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			number := s.orders[i].OrderNumber
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			s.persist(ctx)
			log.Info().Int("order_number", number).Msg("order deleted from history")
			return
		}
	}
	log.Debug().Str("order_id", id).Msg("delete ignored: order not found")
}

func (s *service) ReplaceAll(ctx context.Context, orders []Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	NormalizeAll(orders)
	s.orders = make([]Order, len(orders))
	copy(s.orders, orders)
	s.persist(ctx)
	log.Info().Int("count", len(orders)).Msg("order store replaced from restore")
}

// persist writes the current list through the repository and fires the
// mutation hook. Callers hold the lock.
func (s *service) persist(ctx context.Context) {
	if err := s.repo.SaveOrders(ctx, s.orders); err != nil {
		log.Error().Err(err).Msg("failed to persist orders")
	}
	if s.onMutate != nil {
		go s.onMutate(s.snapshot())
	}
}

// snapshot copies the order list. Callers hold the lock.
func (s *service) snapshot() []Order {
	out := make([]Order, len(s.orders))
	copy(out, s.orders)
	return out
}
