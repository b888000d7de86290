package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/ZinnunMalikov/clipsmart-main/internal/config"
	"github.com/ZinnunMalikov/clipsmart-main/internal/domain"
	"github.com/ZinnunMalikov/clipsmart-main/internal/logger"
)

const esPingTimeout = 5 * time.Second

// NewElasticsearchClient builds a client and verifies the cluster answers.
func NewElasticsearchClient(ctx context.Context, cfg config.ElasticsearchConfig, log logger.Logger) (*es.Client, error) {
	url := normalizeURL(cfg.URL)

	clientConfig := es.Config{
		Addresses:  []string{url},
		MaxRetries: cfg.MaxRetries,
	}
	if cfg.Username != "" && cfg.Password != "" {
		clientConfig.Username = cfg.Username
		clientConfig.Password = cfg.Password
	}

	client, err := es.NewClient(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, esPingTimeout)
	defer cancel()

	res, err := client.Ping(client.Ping.WithContext(pingCtx))
	if err != nil {
		return nil, fmt.Errorf("failed to ping Elasticsearch: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch ping returned %s", res.Status())
	}

	if log != nil {
		log.Info("Elasticsearch connection established", logger.String("url", url))
	}
	return client, nil
}

func normalizeURL(url string) string {
	if url == "" {
		return "http://localhost:9200"
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "http://" + url
	}
	return url
}

// ElasticsearchRequestLog stores entries as documents in one index.
type ElasticsearchRequestLog struct {
	client *es.Client
	index  string
}

// NewElasticsearchRequestLog writes to index.
func NewElasticsearchRequestLog(client *es.Client, index string) *ElasticsearchRequestLog {
	return &ElasticsearchRequestLog{client: client, index: index}
}

// Log indexes entry.
func (s *ElasticsearchRequestLog) Log(ctx context.Context, entry *domain.RequestLogEntry) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}

	docBytes, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	res, err := s.client.Index(
		s.index,
		bytes.NewReader(docBytes),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing document: %s", res.String())
	}
	return nil
}

// Recent returns up to limit entries sorted by timestamp, newest first.
// A missing index reads as empty.
func (s *ElasticsearchRequestLog) Recent(ctx context.Context, limit int) ([]domain.RequestLogEntry, error) {
	query := map[string]any{
		"query": map[string]any{"match_all": map[string]any{}},
		"size":  ClampLimit(limit),
		"sort": []map[string]any{
			{"timestamp": map[string]any{"order": "desc"}},
		},
	}

	queryBytes, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(queryBytes)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return []domain.RequestLogEntry{}, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("error searching: %s", res.String())
	}

	var searchResult struct {
		Hits struct {
			Hits []struct {
				Source domain.RequestLogEntry `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err = json.NewDecoder(res.Body).Decode(&searchResult); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	entries := make([]domain.RequestLogEntry, 0, len(searchResult.Hits.Hits))
	for _, hit := range searchResult.Hits.Hits {
		entries = append(entries, hit.Source)
	}
	return entries, nil
}

// Ping checks the cluster.
func (s *ElasticsearchRequestLog) Ping(ctx context.Context) error {
	res, err := s.client.Ping(s.client.Ping.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch ping returned %s", res.Status())
	}
	return nil
}

// Backend names the store.
func (s *ElasticsearchRequestLog) Backend() string { return "elasticsearch" }
