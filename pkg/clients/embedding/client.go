package embedding

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"event_assistant/config"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	log "github.com/sirupsen/logrus"
)

const (
	// MaxRetries caps attempts per embedding request
	MaxRetries = 3
	// LRUCacheCapacity bounds the embedding cache
	LRUCacheCapacity = 5000
)

var (
	instance *Client
	once     sync.Once
	initErr  error
)

// Client produces query vectors for the ChromaDB lookups.
type Client struct {
	client    openai.Client
	modelName string
	cache     *LRUCache
}

// GetInstance returns the embedding client singleton.
func GetInstance() (*Client, error) {
	once.Do(func() {
		cfg := config.GetInstance()

		apiKey := config.GetModelApiKey()
		if apiKey == "" {
			initErr = fmt.Errorf("%s is required", config.OpenRouterApiKeyEnv)
			return
		}

		modelName := cfg.GetString(config.EmbeddingConfigKeyModelName)
		if modelName == "" {
			initErr = fmt.Errorf("%s is required", config.EmbeddingConfigKeyModelName)
			return
		}

		baseURL := cfg.GetString(config.EmbeddingConfigKeyBaseURL)

		opts := []option.RequestOption{
			option.WithAPIKey(apiKey),
		}

		// base_url points at OpenRouter's OpenAI-compatible endpoint
		if baseURL != "" {
			opts = append(opts, option.WithBaseURL(baseURL))
		}

		client := openai.NewClient(opts...)

		instance = &Client{
			client:    client,
			modelName: modelName,
			cache:     NewLRUCache(LRUCacheCapacity),
		}
	})

	return instance, initErr
}

// GetTextEmbedding returns the vector for one text, cached.
func (c *Client) GetTextEmbedding(ctx context.Context, text string) ([]float64, error) {
	if text == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	if cached, ok := c.cache.Get(text); ok {
		log.Debugf("embedding cache hit")
		return cached, nil
	}

	embedding, err := c.getTextEmbeddingWithRetry(ctx, text)
	if err != nil {
		return nil, err
	}

	c.cache.Put(text, embedding)
	return embedding, nil
}

func (c *Client) getTextEmbeddingWithRetry(ctx context.Context, text string) ([]float64, error) {
	var lastErr error

	for attempt := 0; attempt < MaxRetries; attempt++ {
		if attempt > 0 {
			// exponential backoff: 1s, 2s
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			log.Warnf("Retrying embedding request (attempt %d/%d) after %v", attempt+1, MaxRetries, backoff)
			time.Sleep(backoff)
		}

		embedding, err := c.getTextEmbeddingOnce(ctx, text)
		if err == nil {
			return embedding, nil
		}

		lastErr = err
		log.Errorf("Embedding request failed (attempt %d/%d): %v", attempt+1, MaxRetries, err)
	}

	return nil, fmt.Errorf("failed after %d retries: %w", MaxRetries, lastErr)
}

func (c *Client) getTextEmbeddingOnce(ctx context.Context, text string) ([]float64, error) {
	input := openai.EmbeddingNewParamsInputUnion{
		OfArrayOfStrings: []string{text},
	}

	resp, err := c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(c.modelName),
		Input: input,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	return resp.Data[0].Embedding, nil
}
