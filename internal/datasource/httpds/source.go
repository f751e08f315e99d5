package httpds

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Source is a datasource.Source that downloads the dataset from a URL.
type Source struct {
	client *Client
	url    string
}

// NewSource binds a client to url.
func NewSource(c *Client, url string) *Source {
	return &Source{client: c, url: url}
}

// Open performs the GET and returns the response body. Any status other than
// 200 is an error.
func (s *Source) Open(ctx context.Context) (io.ReadCloser, error) {
	resp, err := s.client.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.url, err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: unexpected status %s", s.url, resp.Status)
	}
	return resp.Body, nil
}
