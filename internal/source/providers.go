package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/pfrederiksen/festplan/internal/session"
	"github.com/pfrederiksen/festplan/internal/tabular"
)

const (
	userAgent = "festplan/1.0 (github.com/pfrederiksen/festplan)"
	timeout   = 30 * time.Second

	// maxRetries bounds the backoff retries per remote attempt; the
	// resolver's fallback chain handles anything beyond that.
	maxRetries = 2
)

// Provider is one schedule origin. Load returns the normalized sessions or
// an error; an empty result is treated as a failure by the resolver.
type Provider struct {
	Name string
	Load func(ctx context.Context) ([]session.Session, error)
}

// JSONFile reads row-shaped records from a local JSON document.
func JSONFile(path string, n *session.Normalizer) Provider {
	return Provider{
		Name: "local-json",
		Load: func(ctx context.Context) ([]session.Session, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", path, err)
			}

			var raw []map[string]interface{}
			if err := json.Unmarshal(data, &raw); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}

			records := make([]map[string]string, 0, len(raw))
			for _, obj := range raw {
				record := make(map[string]string, len(obj))
				for key, value := range obj {
					record[session.CanonicalKey(key)] = stringify(value)
				}
				records = append(records, record)
			}

			sessions, _ := n.FromRecords(records)
			return sessions, nil
		},
	}
}

// CSVFile reads a delimited schedule from a local file.
func CSVFile(path string, n *session.Normalizer) Provider {
	return Provider{
		Name: "local-csv",
		Load: func(ctx context.Context) ([]session.Session, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", path, err)
			}
			sessions, _ := n.FromTable(tabular.Parse(string(data)))
			return sessions, nil
		},
	}
}

// RemoteCSV fetches the published-sheet CSV export over HTTP, retrying
// transient failures with exponential backoff before giving up on the
// attempt.
func RemoteCSV(url string, n *session.Normalizer) Provider {
	client := &http.Client{Timeout: timeout}
	return Provider{
		Name: "remote-csv",
		Load: func(ctx context.Context) ([]session.Session, error) {
			text, err := fetchText(ctx, client, url)
			if err != nil {
				return nil, err
			}
			sessions, _ := n.FromTable(tabular.Parse(text))
			return sessions, nil
		},
	}
}

// fetchText GETs a URL and returns the response body as text.
func fetchText(ctx context.Context, client *http.Client, url string) (string, error) {
	var body string

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := client.Do(req)
		if err != nil {
			return fmt.Errorf("fetching schedule: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading body: %w", err)
		}
		body = string(data)
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", err
	}
	return body, nil
}

// stringify renders a decoded JSON value as the string the normalizer
// expects. Published sheets sometimes emit numbers for time-like columns.
func stringify(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	default:
		return fmt.Sprint(value)
	}
}
