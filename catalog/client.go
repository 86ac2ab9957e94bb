package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"

	"github.com/capiwear/storefront/catalog/pkg/request"
	"github.com/capiwear/storefront/catalog/pkg/response"
	"github.com/capiwear/storefront/internal/api"
	"github.com/capiwear/storefront/internal/constants"
	"github.com/capiwear/storefront/internal/log"
	inOtel "github.com/capiwear/storefront/internal/otel"
)

var tracer = otel.Tracer(constants.AppCatalogClient)

// Client fetches products from the remote catalog. Products are normalized at
// this boundary; nothing downstream guesses at field shapes.
type Client struct {
	api *api.Client
}

func NewClient(apiClient *api.Client) *Client {
	return &Client{api: apiClient}
}

func (cl *Client) FetchProducts(
	c context.Context,
	query request.ProductQuery,
) ([]response.Product, error) {
	c, span := tracer.Start(c, "CatalogClient FetchProducts")
	defer span.End()

	values := query.Values()
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogClient FetchProducts").
		Str(log.KeyQuery, values.Encode()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "fetching products").Logger()
	logger.Info().Msg("fetching products")
	span.AddEvent("fetching products")
	resp, err := cl.api.Get(c, "/Product", values)
	if err != nil {
		err = fmt.Errorf("failed fetching products with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := api.ErrorFromResponse(resp)
		err = fmt.Errorf("GET /Product failed (%d) with error=%w", resp.StatusCode, apiErr)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Int(log.KeyStatusCode, resp.StatusCode).Msg(err.Error())
		return nil, err
	}
	span.AddEvent("fetched products")
	logger.Info().Msg("fetched products")

	logger = logger.With().Str(log.KeyProcess, "decoding products").Logger()
	logger.Trace().Msg("decoding products")
	products := []response.Product{}
	if err = json.NewDecoder(resp.Body).Decode(&products); err != nil {
		err = fmt.Errorf("failed decoding products with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Info().Int("count", len(products)).Msg("decoded products")

	return products, nil
}

func (cl *Client) FetchProductByID(
	c context.Context,
	id int64,
) (response.Product, error) {
	c, span := tracer.Start(c, "CatalogClient FetchProductByID")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CatalogClient FetchProductByID").
		Int64(log.KeyProductID, id).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "fetching product").Logger()
	logger.Info().Msg("fetching product")
	span.AddEvent("fetching product")
	resp, err := cl.api.Get(c, "/Product/"+strconv.FormatInt(id, 10), nil)
	if err != nil {
		err = fmt.Errorf("failed fetching product id=%d with error=%w", id, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := api.ErrorFromResponse(resp)
		err = fmt.Errorf("GET /Product/%d failed (%d) with error=%w", id, resp.StatusCode, apiErr)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Int(log.KeyStatusCode, resp.StatusCode).Msg(err.Error())
		return response.Product{}, err
	}
	span.AddEvent("fetched product")
	logger.Info().Msg("fetched product")

	product := response.Product{}
	if err = json.NewDecoder(resp.Body).Decode(&product); err != nil {
		err = fmt.Errorf("failed decoding product id=%d with error=%w", id, err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}

	return product, nil
}
