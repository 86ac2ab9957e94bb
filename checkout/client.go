package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"

	"github.com/capiwear/storefront/checkout/pkg/request"
	"github.com/capiwear/storefront/checkout/pkg/response"
	"github.com/capiwear/storefront/internal/api"
	"github.com/capiwear/storefront/internal/constants"
	"github.com/capiwear/storefront/internal/log"
	inOtel "github.com/capiwear/storefront/internal/otel"
)

var tracer = otel.Tracer(constants.AppCheckout)

// Client talks to the orders endpoint.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

func (cl *Client) CreateOrder(
	c context.Context,
	param request.CreateOrder,
	token string,
) (response.Order, error) {
	c, span := tracer.Start(c, "CheckoutClient CreateOrder")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CheckoutClient CreateOrder").
		Int64(log.KeyUserID, param.UserID).
		Int("items", len(param.Items)).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "creating order").Logger()
	logger.Info().Msg("creating order")
	span.AddEvent("creating order")
	resp, err := cl.api.PostJson(c, "/api/orders", param, token)
	if err != nil {
		err = fmt.Errorf("failed creating order with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := api.ErrorFromResponse(resp)
		err = fmt.Errorf("failed creating order with error=%w", apiErr)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Int(log.KeyStatusCode, resp.StatusCode).Msg(err.Error())
		return response.Order{}, apiErr
	}
	span.AddEvent("created order")
	logger.Info().Msg("created order")

	logger = logger.With().Str(log.KeyProcess, "decoding order").Logger()
	logger.Trace().Msg("decoding order")
	order := response.Order{}
	if err = json.NewDecoder(resp.Body).Decode(&order); err != nil {
		err = fmt.Errorf("failed decoding order with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Order{}, err
	}
	logger.Info().Int64(log.KeyOrderID, order.ID).Msg("decoded order")

	return order, nil
}
