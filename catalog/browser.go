package catalog

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/capiwear/storefront/catalog/pkg/request"
	"github.com/capiwear/storefront/catalog/pkg/response"
	"github.com/capiwear/storefront/internal/api"
	"github.com/capiwear/storefront/internal/log"
)

// Browser holds the product list currently on display. Refresh supersedes any
// in-flight fetch: the older request is cancelled and its result, should it
// still arrive, is discarded, so only the newest request can ever be applied.
type Browser struct {
	client *Client

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	loading    bool
	products   []response.Product
	errMessage string
}

func NewBrowser(client *Client) *Browser {
	return &Browser{client: client}
}

// Refresh fetches products for query, replacing the displayed list on
// completion. It blocks until the fetch finishes or is superseded; callers
// that want concurrent supersession run it on their own goroutine.
func (b *Browser) Refresh(c context.Context, query request.ProductQuery) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Browser Refresh").
		Logger()

	b.mu.Lock()
	if b.cancel != nil {
		b.cancel()
	}
	c, cancel := context.WithCancel(c)
	defer cancel()
	b.cancel = cancel
	b.generation++
	generation := b.generation
	b.loading = true
	b.mu.Unlock()

	products, err := b.client.FetchProducts(c, query)

	b.mu.Lock()
	defer b.mu.Unlock()
	if generation != b.generation {
		logger.Info().
			Str(log.KeyProcess, "applying products").
			Msg("fetch superseded by a newer request, discarding result")
		return
	}
	b.loading = false
	b.cancel = nil
	if err != nil {
		if api.IsCancellation(err) {
			return
		}
		b.errMessage = err.Error()
		return
	}
	b.products = products
	b.errMessage = ""
}

func (b *Browser) Products() []response.Product {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.products
}

func (b *Browser) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// ErrorMessage returns the displayable fetch failure, empty when the last
// applied fetch succeeded. Cancellations never surface here.
func (b *Browser) ErrorMessage() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.errMessage
}
