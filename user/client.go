package user

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/capiwear/storefront/internal/api"
	"github.com/capiwear/storefront/internal/constants"
	inErrors "github.com/capiwear/storefront/internal/errors"
	"github.com/capiwear/storefront/internal/log"
	inOtel "github.com/capiwear/storefront/internal/otel"
	"github.com/capiwear/storefront/user/pkg/request"
	"github.com/capiwear/storefront/user/pkg/response"
)

var tracer = otel.Tracer(constants.AppUserSession)

// Client talks to the user endpoints.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

func (cl *Client) Login(c context.Context, param request.Login) (response.Auth, error) {
	c, span := tracer.Start(c, "UserClient Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserClient Login").
		Str(log.KeyEmail, param.Email).
		Logger()

	return cl.authenticate(c, logger, span, "/User/login", "login", param)
}

func (cl *Client) Register(c context.Context, param request.Register) (response.Auth, error) {
	c, span := tracer.Start(c, "UserClient Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserClient Register").
		Str(log.KeyEmail, param.Email).
		Logger()

	return cl.authenticate(c, logger, span, "/User/register", "register", param)
}

func (cl *Client) authenticate(
	c context.Context,
	logger zerolog.Logger,
	span trace.Span,
	path string,
	operation string,
	body interface{},
) (response.Auth, error) {
	logger = logger.With().Str(log.KeyProcess, operation).Logger()
	logger.Info().Msgf("sending %s request", operation)
	span.AddEvent("sending " + operation + " request")
	resp, err := cl.api.PostJson(c, path, body, "")
	if err != nil {
		err = fmt.Errorf("failed sending %s request with error=%w", operation, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Auth{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := api.ErrorFromResponse(resp)
		if apiErr.Message == "" {
			apiErr.Message = fmt.Sprintf("%s failed with status %d", operation, resp.StatusCode)
		}
		inOtel.RecordError(apiErr, span)
		logger.Error().
			Err(apiErr).
			Int(log.KeyStatusCode, resp.StatusCode).
			Msgf("failed %s with error=%s", operation, apiErr.Error())
		return response.Auth{}, apiErr
	}
	span.AddEvent("sent " + operation + " request")
	logger.Info().Msgf("sent %s request", operation)

	logger = logger.With().Str(log.KeyProcess, "decoding "+operation+" response").Logger()
	logger.Trace().Msgf("decoding %s response", operation)
	auth := response.Auth{}
	if err = json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		err = fmt.Errorf("failed decoding %s response with error=%w", operation, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Auth{}, err
	}
	if auth.Token == "" {
		err = inErrors.ErrUnexpectedResponse
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Auth{}, err
	}
	logger.Info().Int64(log.KeyUserID, auth.User.ID).Msgf("decoded %s response", operation)

	return auth, nil
}
