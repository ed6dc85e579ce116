// Package fetcher performs bounded HTTP fetches of listing and article pages.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// maxResponseBodyBytes limits the size of fetched page responses.
const maxResponseBodyBytes = 10 * 1024 * 1024 // 10 MB

// Client fetches pages with a fixed timeout and a declared user agent.
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// New creates a fetch client. The timeout applies to every request issued
// through the client.
func New(userAgent string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
	}
}

// Fetch performs a GET on the given URL and returns the page body decoded to
// UTF-8. pageEncoding names the source charset ("euc-kr" for boannews);
// empty means the body is already UTF-8.
func (c *Client) Fetch(ctx context.Context, pageURL, pageEncoding string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return "", &Error{Kind: KindConnection, URL: pageURL, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", &Error{Kind: KindHTTPStatus, URL: pageURL, StatusCode: resp.StatusCode}
	}

	limited := io.LimitReader(resp.Body, maxResponseBodyBytes)

	body, err := io.ReadAll(limited)
	if err != nil {
		return "", classifyTransportError(pageURL, err)
	}

	return decodeBody(body, pageEncoding)
}

// classifyTransportError maps a transport failure to a typed fetch error.
func classifyTransportError(pageURL string, err error) *Error {
	kind := KindConnection

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		kind = KindTimeout
	} else if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}

	return &Error{Kind: kind, URL: pageURL, Err: err}
}

// decodeBody converts the raw bytes to a UTF-8 string using the named
// charset. Unknown charsets are an error; an empty name passes through.
func decodeBody(body []byte, pageEncoding string) (string, error) {
	if pageEncoding == "" || strings.EqualFold(pageEncoding, "utf-8") {
		return string(body), nil
	}

	enc, err := htmlindex.Get(pageEncoding)
	if err != nil {
		return "", fmt.Errorf("unknown page encoding %q: %w", pageEncoding, err)
	}

	decoded, _, err := transform.Bytes(enc.NewDecoder(), body)
	if err != nil {
		return "", fmt.Errorf("decode %s body: %w", pageEncoding, err)
	}

	return string(decoded), nil
}
