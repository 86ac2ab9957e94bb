package user

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capiwear/storefront/internal/api"
	inErrors "github.com/capiwear/storefront/internal/errors"
	"github.com/capiwear/storefront/user/pkg/request"
	"github.com/capiwear/storefront/user/pkg/response"
)

func testContext() context.Context {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339Nano}).
		WithContext(context.Background())
}

func testStorage(t *testing.T) FileStorage {
	t.Helper()
	dir := t.TempDir()
	return NewFileStorage(
		filepath.Join(dir, "auth.json"),
		filepath.Join(dir, "session.json"),
	)
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": expiresAt.Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func sampleAuth(token string) response.Auth {
	return response.Auth{
		Token: token,
		User:  response.User{ID: 7, Name: "Capi", Email: "capi@example.com"},
	}
}

func authServer(t *testing.T, path string, requests *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, path, r.URL.Path)
		fmt.Fprint(w, `{"token":"token-abc","user":{"id":7,"name":"Capi","email":"capi@example.com"}}`)
	}))
	t.Cleanup(server.Close)
	return server
}

func newSessionStore(serverURL string, storage Storage) *SessionStore {
	return NewSessionStore(NewClient(api.NewClient(serverURL)), storage)
}

func TestHydrateRestoresPersistedSession(t *testing.T) {
	storage := testStorage(t)
	auth := sampleAuth(signedToken(t, time.Now().Add(time.Hour)))
	require.NoError(t, storage.Save(auth, true))

	sessions := newSessionStore("http://unused", storage)
	sessions.Hydrate(testContext())

	current, ok := sessions.Current()
	require.True(t, ok)
	assert.Equal(t, auth, current)
}

func TestHydrateClearsExpiredToken(t *testing.T) {
	storage := testStorage(t)
	auth := sampleAuth(signedToken(t, time.Now().Add(-time.Hour)))
	require.NoError(t, storage.Save(auth, true))

	sessions := newSessionStore("http://unused", storage)
	sessions.Hydrate(testContext())

	_, ok := sessions.Current()
	assert.False(t, ok)

	persisted, err := storage.Load()
	require.NoError(t, err)
	assert.Nil(t, persisted)
}

func TestHydrateAcceptsOpaqueToken(t *testing.T) {
	storage := testStorage(t)
	require.NoError(t, storage.Save(sampleAuth("opaque-token"), false))

	sessions := newSessionStore("http://unused", storage)
	sessions.Hydrate(testContext())

	current, ok := sessions.Current()
	require.True(t, ok)
	assert.Equal(t, "opaque-token", current.Token)
}

func TestLoginPersistsByRememberFlag(t *testing.T) {
	tests := []struct {
		name       string
		remember   bool
		persistent bool
	}{
		{name: "remember me writes the durable file", remember: true, persistent: true},
		{name: "plain login writes the session file", remember: false, persistent: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requests atomic.Int32
			server := authServer(t, "/User/login", &requests)
			storage := testStorage(t)
			sessions := newSessionStore(server.URL, storage)

			auth, err := sessions.Login(testContext(), request.Login{
				Email:    "capi@example.com",
				Password: "hunter22",
			}, tt.remember)
			require.NoError(t, err)
			assert.Equal(t, "token-abc", auth.Token)
			assert.EqualValues(t, 1, requests.Load())

			_, durableErr := os.Stat(storage.durablePath)
			_, sessionErr := os.Stat(storage.sessionPath)
			if tt.persistent {
				assert.NoError(t, durableErr)
				assert.ErrorIs(t, sessionErr, os.ErrNotExist)
			} else {
				assert.ErrorIs(t, durableErr, os.ErrNotExist)
				assert.NoError(t, sessionErr)
			}

			current, ok := sessions.Current()
			require.True(t, ok)
			assert.Equal(t, auth, current)
		})
	}
}

func TestLoginValidationFailureNeverDispatches(t *testing.T) {
	var requests atomic.Int32
	server := authServer(t, "/User/login", &requests)
	sessions := newSessionStore(server.URL, testStorage(t))

	tests := []struct {
		name  string
		param request.Login
	}{
		{name: "malformed email", param: request.Login{Email: "not-an-email", Password: "hunter22"}},
		{name: "short password", param: request.Login{Email: "capi@example.com", Password: "abc"}},
		{name: "empty form", param: request.Login{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sessions.Login(testContext(), tt.param, false)
			require.Error(t, err)

			validationErrs := validator.ValidationErrors{}
			assert.True(t, errors.As(err, &validationErrs))
			assert.EqualValues(t, 0, requests.Load())

			_, ok := sessions.Current()
			assert.False(t, ok)
		})
	}
}

func TestLoginFailureSurfacesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"invalid credentials"}`)
	}))
	defer server.Close()
	sessions := newSessionStore(server.URL, testStorage(t))

	_, err := sessions.Login(testContext(), request.Login{
		Email:    "capi@example.com",
		Password: "wrong-password",
	}, false)
	require.Error(t, err)

	apiErr := &api.Error{}
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "invalid credentials", apiErr.Message)

	_, ok := sessions.Current()
	assert.False(t, ok)
}

func TestLoginRejectsTokenlessResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"user":{"id":7}}`)
	}))
	defer server.Close()
	sessions := newSessionStore(server.URL, testStorage(t))

	_, err := sessions.Login(testContext(), request.Login{
		Email:    "capi@example.com",
		Password: "hunter22",
	}, false)
	assert.ErrorIs(t, err, inErrors.ErrUnexpectedResponse)
}

func TestRegisterStartsSession(t *testing.T) {
	var requests atomic.Int32
	server := authServer(t, "/User/register", &requests)
	storage := testStorage(t)
	sessions := newSessionStore(server.URL, storage)

	auth, err := sessions.Register(testContext(), request.Register{
		Name:        "Capi",
		Email:       "capi@example.com",
		Password:    "hunter22",
		Confirm:     "hunter22",
		AcceptTerms: true,
	}, true)
	require.NoError(t, err)
	assert.Equal(t, "token-abc", auth.Token)

	current, ok := sessions.Current()
	require.True(t, ok)
	assert.Equal(t, auth, current)

	persisted, err := storage.Load()
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, auth, *persisted)
}

func TestRegisterValidatesConfirmationAndTerms(t *testing.T) {
	var requests atomic.Int32
	server := authServer(t, "/User/register", &requests)
	sessions := newSessionStore(server.URL, testStorage(t))

	tests := []struct {
		name  string
		param request.Register
	}{
		{
			name: "mismatched confirmation",
			param: request.Register{
				Name: "Capi", Email: "capi@example.com",
				Password: "hunter22", Confirm: "hunter23", AcceptTerms: true,
			},
		},
		{
			name: "terms not accepted",
			param: request.Register{
				Name: "Capi", Email: "capi@example.com",
				Password: "hunter22", Confirm: "hunter22",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sessions.Register(testContext(), tt.param, false)
			require.Error(t, err)

			validationErrs := validator.ValidationErrors{}
			assert.True(t, errors.As(err, &validationErrs))
			assert.EqualValues(t, 0, requests.Load())
		})
	}
}

func TestLogoutClearsSessionAndStorage(t *testing.T) {
	var requests atomic.Int32
	server := authServer(t, "/User/login", &requests)
	storage := testStorage(t)
	sessions := newSessionStore(server.URL, storage)

	_, err := sessions.Login(testContext(), request.Login{
		Email:    "capi@example.com",
		Password: "hunter22",
	}, true)
	require.NoError(t, err)

	sessions.Logout(testContext())

	_, ok := sessions.Current()
	assert.False(t, ok)

	persisted, err := storage.Load()
	require.NoError(t, err)
	assert.Nil(t, persisted)
}
