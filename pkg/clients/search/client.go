package search

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"event_assistant/config"
	"event_assistant/pkg/clients/httptool"

	"github.com/pkg/errors"
)

const clientNameSearch = "search"

var (
	instance *Client
	once     sync.Once
)

// Client talks to the document-search backend (Elasticsearch-compatible
// `_search` endpoint).
type Client struct {
	hc    *httptool.HTTPClient
	index string
}

func GetInstance() *Client {
	once.Do(func() {
		cfg := config.GetInstance()
		hc := httptool.NewHTTPClient(
			cfg.GetString(config.SearchClientHost),
			clientNameSearch,
			30*time.Second,
			nil,
			nil,
		)
		hc.SetHeader(httptool.HeaderContentType, httptool.HeaderContentTypeJSON)

		instance = &Client{
			hc:    hc,
			index: cfg.GetString(config.SearchClientIndex),
		}
	})
	return instance
}

// DefaultIndex is the configured events index.
func (c *Client) DefaultIndex() string {
	return c.index
}

// Search executes the structured query body against the given index.
func (c *Client) Search(ctx context.Context, index string, body interface{}) (*Response, error) {
	if index == "" {
		index = c.index
	}
	if index == "" {
		return nil, fmt.Errorf("search index is not configured")
	}

	raw, err := c.hc.PostJSONWithContext(ctx, fmt.Sprintf("/%s/_search", index), body)
	if err != nil {
		return nil, err
	}

	resp := &Response{}
	if err := json.Unmarshal(raw, resp); err != nil {
		return nil, errors.WithStack(fmt.Errorf("decode search response: %w", err))
	}

	return resp, nil
}
