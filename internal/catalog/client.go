package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// ProductPath is the lookup route served by Handler and used by Client.
const ProductPath = "/api/vr/product"

type productResponse struct {
	Product *Product `json:"product,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Client looks products up over HTTP.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient returns a Client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Lookup implements Lookup. A 400 maps to ErrEmptyCode and a 404 to
// ErrNotFound.
func (c *Client) Lookup(ctx context.Context, code string) (*Product, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, ErrEmptyCode
	}
	u := c.BaseURL + ProductPath + "?code=" + url.QueryEscape(code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", code, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("lookup %s: %w", code, err)
	}
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return nil, ErrEmptyCode
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, code)
	default:
		return nil, fmt.Errorf("lookup %s: unexpected status %s", code, resp.Status)
	}
	var pr productResponse
	if err := sonic.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("lookup %s: %w", code, err)
	}
	if pr.Product == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, code)
	}
	return pr.Product, nil
}
