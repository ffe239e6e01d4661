package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/AngelCh415/digmar-dash/internal/utils"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &http.Client{Timeout: timeout}
}

// StatusError is a non-2xx response from a remote CSV source.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("non-2xx: %d body=%s", e.Code, e.Body)
}

// Fetcher downloads a CSV over HTTP. The body is read in full before
// decoding, so a load is all or nothing.
type Fetcher struct {
	c        HTTPClient
	backoff  utils.Backoff
	maxBytes int64
}

func NewFetcher(c HTTPClient, b utils.Backoff, maxBytes int64) *Fetcher {
	return &Fetcher{c: c, backoff: b, maxBytes: maxBytes}
}

// Fetch retries transport errors and 5xx responses. 4xx responses fail at once.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Table, error) {
	if url == "" {
		return nil, errors.New("empty url")
	}
	var body []byte
	err := f.backoff.Do(ctx, func(int) error {
		b, err := f.get(ctx, url)
		if err != nil {
			var se *StatusError
			if errors.As(err, &se) && se.Code < 500 {
				return utils.Permanent(err)
			}
			return err
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return ReadCSV(bytes.NewReader(body))
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, utils.Permanent(err)
	}
	resp, err := f.c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(b)}
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > f.maxBytes {
		return nil, utils.Permanent(fmt.Errorf("body exceeds %d bytes", f.maxBytes))
	}
	return b, nil
}
