// Package search wraps the external web search used to enrich lesson
// plans with teaching-process examples and inclusive-classroom
// strategies.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const serperEndpoint = "https://google.serper.dev/search"

const maxResults = 8

// Result is a single web search hit with a position-derived relevance
// score in (0, 1].
type Result struct {
	Title     string  `json:"title"`
	Link      string  `json:"link"`
	Snippet   string  `json:"snippet"`
	Relevance float64 `json:"relevance"`
}

// Client performs web searches. Available reports whether the backend
// is configured; callers fall back to static knowledge when it is not.
type Client interface {
	Search(ctx context.Context, query string) ([]Result, error)
	Available() bool
}

type serperClient struct {
	apiKey string
	http   *http.Client
}

func NewSerperClient(apiKey string) Client {
	return &serperClient{
		apiKey: apiKey,
		http:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *serperClient) Available() bool {
	return c.apiKey != ""
}

type serperRequest struct {
	Q string `json:"q"`
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

func (c *serperClient) Search(ctx context.Context, query string) ([]Result, error) {
	if !c.Available() {
		return nil, fmt.Errorf("serper api key is not configured")
	}

	reqBody, err := json.Marshal(serperRequest{Q: query})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", serperEndpoint, bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serper error, code %d, body %s", resp.StatusCode, string(body))
	}

	var parsed serperResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, err
	}

	results := make([]Result, 0, maxResults)
	for i, item := range parsed.Organic {
		if i >= maxResults {
			break
		}
		relevance := 1.0 - float64(i)*0.1
		if relevance < 0.1 {
			relevance = 0.1
		}
		results = append(results, Result{
			Title:     item.Title,
			Link:      item.Link,
			Snippet:   item.Snippet,
			Relevance: relevance,
		})
	}
	return results, nil
}
