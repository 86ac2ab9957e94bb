package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/capiwear/storefront/cart"
	"github.com/capiwear/storefront/checkout/pkg/request"
	"github.com/capiwear/storefront/internal/api"
	inErrors "github.com/capiwear/storefront/internal/errors"
	"github.com/capiwear/storefront/internal/log"
	inOtel "github.com/capiwear/storefront/internal/otel"
	userResponse "github.com/capiwear/storefront/user/pkg/response"
)

// SessionSource provides the identity attached to an order.
type SessionSource interface {
	Current() (userResponse.Auth, bool)
}

// Submitter drives one checkout attempt: cart contents become an order
// request, and the local cart is reconciled with the outcome. Success clears
// the cart; failure preserves it so the user can retry without re-adding
// items.
type Submitter struct {
	orders   *Client
	cart     *cart.Store
	sessions SessionSource
	freight  Quoter
}

func NewSubmitter(
	orders *Client,
	cartStore *cart.Store,
	sessions SessionSource,
	freight Quoter,
) *Submitter {
	return &Submitter{orders: orders, cart: cartStore, sessions: sessions, freight: freight}
}

// Submit runs the Idle -> Submitting -> Idle-with-outcome transition. An
// empty cart is a no-op, and so is a call while an attempt is already in
// flight; the in-flight flag is the only guard against duplicate order
// creation from a double invocation.
func (s *Submitter) Submit(c context.Context) error {
	c, span := tracer.Start(c, "Submitter Submit")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Submitter Submit").
		Int(log.KeyCartCount, s.cart.Count()).
		Logger()

	if s.cart.Count() == 0 {
		logger.Info().Msg("cart is empty, nothing to submit")
		return nil
	}
	if !s.cart.BeginCheckout() {
		logger.Info().Msg("checkout already in flight, ignoring")
		span.AddEvent("checkout already in flight")
		return nil
	}
	defer s.cart.FinishCheckout()

	logger = logger.With().Str(log.KeyProcess, "resolving session").Logger()
	logger.Info().Msg("resolving session")
	session, ok := s.sessions.Current()
	if !ok {
		err := inErrors.ErrNoSession
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.cart.RecordFailure("sign in before finishing your order")
		return err
	}
	logger = logger.With().Int64(log.KeyUserID, session.User.ID).Logger()
	logger.Info().Msg("resolved session")

	items := s.cart.Items()

	logger = logger.With().Str(log.KeyProcess, "quoting freight").Logger()
	logger.Info().Msg("quoting freight")
	freight, err := s.freight.Quote(c, items)
	if err != nil {
		err = fmt.Errorf("failed quoting freight with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.cart.RecordFailure(failureMessage(err))
		return err
	}
	logger = logger.With().Str(log.KeyFreight, freight.String()).Logger()
	logger.Info().Msg("quoted freight")

	orderItems := make([]request.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, request.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	logger = logger.With().Str(log.KeyProcess, "creating order").Logger()
	logger.Info().Msg("creating order")
	span.AddEvent("creating order")
	c = logger.WithContext(c)
	order, err := s.orders.CreateOrder(c, request.CreateOrder{
		UserID:  session.User.ID,
		Freight: freight,
		Items:   orderItems,
	}, session.Token)
	if err != nil {
		err = fmt.Errorf("failed creating order with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.cart.RecordFailure(failureMessage(err))
		return err
	}
	span.AddEvent("created order")
	logger = logger.With().Int64(log.KeyOrderID, order.ID).Logger()
	logger.Info().Msg("created order")

	s.cart.Clear()
	s.cart.RecordSuccess(fmt.Sprintf("order #%d created successfully", order.ID))

	return nil
}

// failureMessage reduces a submit failure to what the user sees: the
// server-provided message when the response carried one, a generic line for
// network and decode failures.
func failureMessage(err error) string {
	apiErr := &api.Error{}
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return "unexpected error while placing the order"
}
