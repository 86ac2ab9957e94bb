package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/capiwear/storefront/cart"
	"github.com/capiwear/storefront/catalog"
	"github.com/capiwear/storefront/checkout"
	"github.com/capiwear/storefront/internal/api"
	"github.com/capiwear/storefront/internal/config"
	"github.com/capiwear/storefront/internal/constants"
	"github.com/capiwear/storefront/internal/log"
	"github.com/capiwear/storefront/internal/otel"
	"github.com/capiwear/storefront/user"
)

// app wires every store and client once per command invocation. One
// authoritative instance each; nothing lives in package-level state.
type app struct {
	cfg *config.Config

	cart      *cart.Store
	catalog   *catalog.Client
	browser   *catalog.Browser
	sessions  *user.SessionStore
	submitter *checkout.Submitter

	otelShutdowns []otel.ShutdownFunc
}

func initApp(c context.Context) (*app, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main initApp").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "init config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.InitConfig(c, constants.AppStorefront)
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	otelShutdowns, err := otel.InitOtelSdk(c, constants.AppStorefront, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Msg("initialized otel sdk")

	logger = logger.With().Str(log.KeyProcess, "initializing clients").Logger()
	logger.Info().Msg("initializing clients")
	apiClient := api.NewClient(cfg.Api.BaseUrl)
	catalogClient := catalog.NewClient(apiClient)
	cartStore := cart.NewStore()
	sessionStore := user.NewSessionStore(
		user.NewClient(apiClient),
		user.NewFileStorage(cfg.Storage.AuthFile, cfg.Storage.SessionFile),
	)

	freight, err := decimal.NewFromString(cfg.Checkout.Freight)
	if err != nil {
		freight = decimal.NewFromInt(20)
	}
	submitter := checkout.NewSubmitter(
		checkout.NewClient(apiClient),
		cartStore,
		sessionStore,
		checkout.NewFlatRate(freight),
	)
	logger.Info().Msg("initialized clients")

	logger = logger.With().Str(log.KeyProcess, "hydrating session").Logger()
	logger.Info().Msg("hydrating session")
	c = logger.WithContext(c)
	sessionStore.Hydrate(c)
	logger.Info().Msg("hydrated session")

	return &app{
		cfg:           cfg,
		cart:          cartStore,
		catalog:       catalogClient,
		browser:       catalog.NewBrowser(catalogClient),
		sessions:      sessionStore,
		submitter:     submitter,
		otelShutdowns: otelShutdowns,
	}, nil
}

func (a *app) shutdown(c context.Context) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main appShutdown").
		Str(log.KeyProcess, "shutting down otel").
		Logger()

	logger.Info().Msg("shutting down otel")
	c = logger.WithContext(c)
	if err := otel.ShutdownOtel(c, a.otelShutdowns); err != nil {
		err = fmt.Errorf("failed shutting down otel with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("shutdown otel")
}
