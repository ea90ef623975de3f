package client

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ironsheep/image-size-mcp/internal/config"
	"github.com/ironsheep/image-size-mcp/internal/probe"
)

// Client fetches images over HTTP for the probe. It never buffers a body:
// the probe reads the raw stream and closes it once the header is parsed.
type Client struct {
	restyClient *resty.Client
}

// NewRestyClient builds a client from the HTTP and authorization settings.
// No client-wide timeout is set; each Fetch is bounded by its context.
func NewRestyClient(cfg *config.Config) *Client {
	restyClient := resty.New().
		SetHeader("User-Agent", cfg.HTTP.UserAgent).
		SetHeader("Accept", cfg.HTTP.Accept)

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 100,
		IdleConnTimeout:     90 * time.Second,
	}
	restyClient.SetTransport(transport)

	if cfg.Authorization.Token != "" {
		restyClient.SetHeader("Authorization", cfg.Authorization.Token)
	}

	cookieName, cookieValue := parseCookie(cfg.Authorization.Cookie)
	if cookieValue != "" {
		restyClient.SetCookie(&http.Cookie{
			Name:  cookieName,
			Value: cookieValue,
		})
	}

	return &Client{
		restyClient: restyClient,
	}
}

// Fetch issues a GET and hands back the unread body.
func (c *Client) Fetch(ctx context.Context, url string) (*probe.Response, error) {
	resp, err := c.restyClient.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return nil, err
	}

	return &probe.Response{
		StatusCode:  resp.StatusCode(),
		Status:      resp.Status(),
		ContentType: resp.Header().Get("Content-Type"),
		Body:        resp.RawBody(),
	}, nil
}

// parseCookie splits "name=value". A bare value is taken as a session id.
func parseCookie(s string) (name, value string) {
	if s == "" {
		return "", ""
	}
	if strings.Contains(s, "=") {
		parts := strings.SplitN(s, "=", 2)
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	}
	return "session", s
}
