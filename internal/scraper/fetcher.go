package scraper

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"rtanks/ratingsworker/logger"

	"golang.org/x/net/html/charset"
)

// Fetcher retrieves raw page markup. A false second return means the page
// could not be fetched; callers treat that as "no data", never as a fault
// to propagate.
type Fetcher interface {
	FetchPage(url string) (string, bool)
	Close() error
}

// HTTPFetcher implements Fetcher with a shared http.Client. The client and
// its connection pool live for the fetcher's lifetime and are released by
// Close, never per request.
type HTTPFetcher struct {
	client *http.Client
	log    *logger.Logger
}

// NewHTTPFetcher creates a fetcher with the given total-request timeout
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger.ForFetcher(),
	}
}

// FetchPage sends a GET request with browser-like headers and returns the
// body as UTF-8 text. Non-200 statuses, timeouts and transport faults all
// collapse to ("", false) after being logged.
func (f *HTTPFetcher) FetchPage(url string) (string, bool) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		f.log.Error().Err(err).Str("url", url).Msg("Failed to create request")
		return "", false
	}

	// The ratings site rejects requests that do not look like a browser
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Upgrade-Insecure-Requests", "1")

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Error().Err(err).Str("url", url).Msg("Failed to fetch URL")
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.log.Warn().
			Int("status", resp.StatusCode).
			Str("url", url).
			Msg("Unexpected status code")
		return "", false
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		f.log.Error().Err(err).Str("url", url).Msg("Failed to read response body")
		return "", false
	}

	// Determine the encoding from the Content-Type header and body content
	encoding, name, _ := charset.DetermineEncoding(bodyBytes, resp.Header.Get("Content-Type"))
	if name == "utf-8" || name == "UTF-8" {
		return string(bodyBytes), true
	}

	// Convert to UTF-8 if necessary
	utf8Reader := encoding.NewDecoder().Reader(bytes.NewReader(bodyBytes))
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, utf8Reader); err != nil {
		f.log.Error().Err(err).Str("url", url).Msg("Failed to convert body to UTF-8")
		return "", false
	}

	return buf.String(), true
}

// Close releases the underlying connection pool
func (f *HTTPFetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
