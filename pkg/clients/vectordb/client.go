package vectordb

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

const clientNameChroma = "chroma"

var (
	instance *Client
	once     sync.Once
)

// Client talks to the ChromaDB REST API. Collection name → id lookups are
// cached for the process lifetime; collections are created out of band.
type Client struct {
	hc *httptool.HTTPClient

	mu          sync.RWMutex
	collections map[string]string // name → id
}

func GetInstance() *Client {
	once.Do(func() {
		hc := httptool.NewHTTPClient(
			config.GetInstance().GetString(config.ChromaClientHost),
			clientNameChroma,
			30*time.Second,
			nil,
			nil,
		)
		hc.SetHeader(httptool.HeaderContentType, httptool.HeaderContentTypeJSON)

		instance = &Client{
			hc:          hc,
			collections: make(map[string]string),
		}
	})
	return instance
}

func (c *Client) collectionID(ctx context.Context, name string) (string, error) {
	c.mu.RLock()
	id, ok := c.collections[name]
	c.mu.RUnlock()
	if ok {
		return id, nil
	}

	raw, err := c.hc.GetWithContext(ctx, fmt.Sprintf("/api/v1/collections/%s", name))
	if err != nil {
		return "", err
	}

	info := &collectionInfo{}
	if err := json.Unmarshal(raw, info); err != nil {
		return "", errors.WithStack(fmt.Errorf("decode collection %s: %w", name, err))
	}
	if info.ID == "" {
		return "", fmt.Errorf("collection %s has no id", name)
	}

	c.mu.Lock()
	c.collections[name] = info.ID
	c.mu.Unlock()

	return info.ID, nil
}

// Query runs a similarity lookup against the named collection and flattens
// the column-oriented reply into ranked results.
func (c *Client) Query(ctx context.Context, collection string, embedding []float64, nResults int, where map[string]interface{}) ([]Result, error) {
	if collection == "" {
		return nil, fmt.Errorf("collection name is required")
	}
	if len(embedding) == 0 {
		return nil, fmt.Errorf("query embedding is required")
	}
	if nResults <= 0 {
		nResults = 3
	}

	id, err := c.collectionID(ctx, collection)
	if err != nil {
		return nil, err
	}

	body := &queryRequest{
		QueryEmbeddings: [][]float64{embedding},
		NResults:        nResults,
		Where:           where,
		Include:         []string{"documents", "metadatas", "distances"},
	}

	raw, err := c.hc.PostJSONWithContext(ctx, fmt.Sprintf("/api/v1/collections/%s/query", id), body)
	if err != nil {
		return nil, err
	}

	resp := &queryResponse{}
	if err := json.Unmarshal(raw, resp); err != nil {
		return nil, errors.WithStack(fmt.Errorf("decode query response: %w", err))
	}

	if len(resp.IDs) == 0 {
		return nil, nil
	}

	results := make([]Result, 0, len(resp.IDs[0]))
	for i, docID := range resp.IDs[0] {
		r := Result{ID: docID}
		if len(resp.Documents) > 0 && i < len(resp.Documents[0]) {
			r.Document = resp.Documents[0][i]
		}
		if len(resp.Metadatas) > 0 && i < len(resp.Metadatas[0]) {
			r.Metadata = resp.Metadatas[0][i]
		}
		if len(resp.Distances) > 0 && i < len(resp.Distances[0]) {
			r.Distance = resp.Distances[0][i]
		}
		results = append(results, r)
	}

	return results, nil
}
