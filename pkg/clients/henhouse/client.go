package henhouse

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/henhouse/internal/domain/models"
)

// APIClient talks to a running henhouse server over its REST API.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a client for the server at baseURL, e.g. http://localhost:8080.
func NewClient(baseURL string) *APIClient {
	restyClient := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")+"/api").
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Actions are not idempotent; only reads are retried.
			if r != nil && r.Request != nil && r.Request.Method != http.MethodGet {
				return false
			}
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		})

	return &APIClient{httpClient: restyClient}
}

type apiError struct {
	Error string `json:"error"`
}

// State fetches the current game state.
func (c *APIClient) State(ctx context.Context) (*models.StateView, error) {
	result := new(models.StateView)
	if err := c.get(ctx, "/state", nil, result); err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	return result, nil
}

// Catalog fetches breeds, food items and prices.
func (c *APIClient) Catalog(ctx context.Context) (*models.Catalog, error) {
	result := new(models.Catalog)
	if err := c.get(ctx, "/catalog", nil, result); err != nil {
		return nil, fmt.Errorf("get catalog: %w", err)
	}
	return result, nil
}

// Summary fetches the profit/loss outcome of the current session.
func (c *APIClient) Summary(ctx context.Context) (*models.SessionResult, error) {
	result := new(models.SessionResult)
	if err := c.get(ctx, "/summary", nil, result); err != nil {
		return nil, fmt.Errorf("get summary: %w", err)
	}
	return result, nil
}

// Leaderboard fetches the most profitable stored sessions. limit 0 uses the server default.
func (c *APIClient) Leaderboard(ctx context.Context, limit int) ([]models.SessionResult, error) {
	params := map[string]string{}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}

	var result struct {
		Results []models.SessionResult `json:"results"`
	}
	if err := c.get(ctx, "/leaderboard", params, &result); err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}
	return result.Results, nil
}

// Act applies one action and returns the resulting state.
func (c *APIClient) Act(ctx context.Context, req models.ActionRequest) (*models.StateView, error) {
	result := new(models.StateView)
	if err := c.post(ctx, "/actions", req, result); err != nil {
		return nil, fmt.Errorf("apply %s: %w", req.Type, err)
	}
	return result, nil
}

// Command runs a chat-style text command and returns the rendered reply.
func (c *APIClient) Command(ctx context.Context, text, sender string) (*models.CommandReply, error) {
	result := new(models.CommandReply)
	if err := c.post(ctx, "/commands", models.CommandRequest{Text: text, Sender: sender}, result); err != nil {
		return nil, fmt.Errorf("run command: %w", err)
	}
	return result, nil
}

func (c *APIClient) get(ctx context.Context, path string, params map[string]string, result any) error {
	apiErr := new(apiError)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(result).
		SetError(apiErr).
		Get(path)
	return checkResponse(resp, err, apiErr)
}

func (c *APIClient) post(ctx context.Context, path string, body, result any) error {
	apiErr := new(apiError)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(result).
		SetError(apiErr).
		Post(path)
	return checkResponse(resp, err, apiErr)
}

func checkResponse(resp *resty.Response, err error, apiErr *apiError) error {
	if err != nil {
		return err
	}
	if resp.IsError() {
		if apiErr.Error != "" {
			return fmt.Errorf("henhouse api error (%d): %s", resp.StatusCode(), apiErr.Error)
		}
		return fmt.Errorf("henhouse api status %d", resp.StatusCode())
	}
	return nil
}
