package puzzle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// DefaultURL is the daily mini endpoint.
const DefaultURL = "https://www.nytimes.com/svc/crosswords/v6/puzzle/mini.json"

const userAgent = "miniprint"

// FetchError reports a failure to retrieve the document: either the request
// never completed, or the server answered with a non-success status.
type FetchError struct {
	URL    string
	Status int // zero when the request never completed
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// SchemaError reports a response body that does not match the expected
// document shape.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("decode puzzle document: %v", e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// Fetch retrieves the puzzle document at url and decodes it into the strict
// model. A nil client uses http.DefaultClient; an empty url uses DefaultURL.
func Fetch(ctx context.Context, client *http.Client, url string) (*Puzzle, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if url == "" {
		url = DefaultURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, Status: resp.StatusCode}
	}

	var doc Puzzle
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, &SchemaError{Err: err}
	}
	if err := doc.validate(); err != nil {
		return nil, &SchemaError{Err: err}
	}
	return &doc, nil
}
