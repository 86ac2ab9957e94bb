package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-Id"

	ContentTypeJson = "application/json"
)

// Client is the shared HTTP surface for every backend call. All requests carry
// a correlation id and are traced through the otelhttp transport.
type Client struct {
	baseUrl string
	http    *http.Client
}

func NewClient(baseUrl string) *Client {
	return &Client{
		baseUrl: strings.TrimRight(baseUrl, "/"),
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
}

func (cl *Client) BaseUrl() string {
	return cl.baseUrl
}

func (cl *Client) Get(
	c context.Context,
	path string,
	query url.Values,
) (*http.Response, error) {
	u := cl.baseUrl + path
	if len(query) > 0 {
		u = u + "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(c, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed creating request to %s with error=%w", u, err)
	}
	req.Header.Add(HeaderRequestID, uuid.NewString())
	return cl.http.Do(req)
}

func (cl *Client) PostJson(
	c context.Context,
	path string,
	body interface{},
	token string,
) (*http.Response, error) {
	u := cl.baseUrl + path
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed marshaling request body with error=%w", err)
	}
	req, err := http.NewRequestWithContext(c, http.MethodPost, u, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed creating request to %s with error=%w", u, err)
	}
	req.Header.Add(HeaderContentType, ContentTypeJson)
	req.Header.Add(HeaderRequestID, uuid.NewString())
	if token != "" {
		req.Header.Add(HeaderAuthorization, "Bearer "+token)
	}
	return cl.http.Do(req)
}
