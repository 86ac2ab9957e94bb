package user

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	inErrors "github.com/capiwear/storefront/internal/errors"
	"github.com/capiwear/storefront/internal/log"
	inOtel "github.com/capiwear/storefront/internal/otel"
	"github.com/capiwear/storefront/user/pkg/request"
	"github.com/capiwear/storefront/user/pkg/response"
)

// SessionStore owns the logged-in token/user pair: hydrated once at startup,
// updated by login and register, cleared by logout.
type SessionStore struct {
	client   *Client
	storage  Storage
	validate *validator.Validate

	mu      sync.Mutex
	current *response.Auth
}

func NewSessionStore(client *Client, storage Storage) *SessionStore {
	return &SessionStore{
		client:   client,
		storage:  storage,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Hydrate restores a persisted session, preferring the durable location.
// Expired tokens are discarded and scrubbed from storage.
func (s *SessionStore) Hydrate(c context.Context) {
	c, span := tracer.Start(c, "SessionStore Hydrate")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SessionStore Hydrate").
		Str(log.KeyProcess, "hydrating session").
		Logger()

	logger.Info().Msg("hydrating session from storage")
	auth, err := s.storage.Load()
	if err != nil {
		err = fmt.Errorf("failed loading session with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	if auth == nil {
		logger.Info().Msg("no persisted session")
		return
	}
	if tokenExpired(auth.Token) {
		logger.Info().Err(inErrors.ErrSessionExpired).Msg("persisted session token is expired, clearing")
		span.AddEvent("persisted session token is expired")
		if err := s.storage.Clear(); err != nil {
			logger.Error().Err(err).Msgf("failed clearing storage with error=%s", err.Error())
		}
		return
	}

	s.mu.Lock()
	s.current = auth
	s.mu.Unlock()
	logger.Info().Int64(log.KeyUserID, auth.User.ID).Msg("hydrated session")
}

// tokenExpired inspects the exp claim without verifying the signature;
// verification is the backend's job. Opaque tokens pass through.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// Login validates locally first; malformed input never reaches the network.
// On success the session is persisted to the durable or session-scoped
// location depending on remember.
func (s *SessionStore) Login(
	c context.Context,
	param request.Login,
	remember bool,
) (response.Auth, error) {
	c, span := tracer.Start(c, "SessionStore Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SessionStore Login").
		Object("request", param).
		Bool(log.KeyRemember, remember).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating request").Logger()
	logger.Trace().Msg("validating request")
	if err := s.validate.StructCtx(c, param); err != nil {
		err = fmt.Errorf("failed validating login request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Auth{}, err
	}
	logger.Info().Msg("validated request")

	logger = logger.With().Str(log.KeyProcess, "logging in").Logger()
	c = logger.WithContext(c)
	auth, err := s.client.Login(c, param)
	if err != nil {
		inOtel.RecordError(err, span)
		return response.Auth{}, err
	}

	s.persist(c, auth, remember)
	return auth, nil
}

// Register validates the signup form, creates the account, and starts a
// session exactly like login.
func (s *SessionStore) Register(
	c context.Context,
	param request.Register,
	remember bool,
) (response.Auth, error) {
	c, span := tracer.Start(c, "SessionStore Register")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SessionStore Register").
		Object("request", param).
		Bool(log.KeyRemember, remember).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating request").Logger()
	logger.Trace().Msg("validating request")
	if err := s.validate.StructCtx(c, param); err != nil {
		err = fmt.Errorf("failed validating register request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Auth{}, err
	}
	logger.Info().Msg("validated request")

	logger = logger.With().Str(log.KeyProcess, "registering").Logger()
	c = logger.WithContext(c)
	auth, err := s.client.Register(c, param)
	if err != nil {
		inOtel.RecordError(err, span)
		return response.Auth{}, err
	}

	s.persist(c, auth, remember)
	return auth, nil
}

func (s *SessionStore) persist(c context.Context, auth response.Auth, remember bool) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SessionStore persist").
		Str(log.KeyProcess, "persisting session").
		Bool(log.KeyRemember, remember).
		Logger()

	// A failed write still leaves a usable in-memory session.
	if err := s.storage.Save(auth, remember); err != nil {
		logger.Error().Err(err).Msgf("failed persisting session with error=%s", err.Error())
	}

	s.mu.Lock()
	s.current = &auth
	s.mu.Unlock()
}

// Logout drops the in-memory session and clears both storage locations
// regardless of which one was used at login.
func (s *SessionStore) Logout(c context.Context) {
	_, span := tracer.Start(c, "SessionStore Logout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "SessionStore Logout").
		Str(log.KeyProcess, "logging out").
		Logger()

	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.storage.Clear(); err != nil {
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msgf("failed clearing storage with error=%s", err.Error())
		return
	}
	logger.Info().Msg("logged out")
}

func (s *SessionStore) Current() (response.Auth, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return response.Auth{}, false
	}
	return *s.current, true
}
