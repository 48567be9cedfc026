// Package tripo is a thin client for the Tripo text-to-model API. Responses
// are returned raw so callers can relay them without re-encoding.
package tripo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	TaskTypeTextToModel = "text_to_model"
	DefaultModelVersion = "default"
	DefaultQuality      = "medium"
)

// TaskRequest is the body sent to POST /task.
type TaskRequest struct {
	Type         string `json:"type"`
	Prompt       string `json:"prompt"`
	ModelVersion string `json:"model_version"`
	Quality      string `json:"quality"`
}

// Response is an upstream reply, untouched.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Client calls the generation API with a bearer credential. It is safe for
// concurrent use and reuses pooled connections.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	tracer     trace.Tracer
}

// NewClient builds a client. A zero timeout leaves requests bounded only by
// their context.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		tracer:     otel.Tracer("weaponforge-be/pkg/tripo"),
	}
}

// CreateTask posts a generation task.
func (c *Client) CreateTask(ctx context.Context, task TaskRequest) (*Response, error) {
	data, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("tripo.CreateTask: %w", err)
	}
	resp, err := c.do(ctx, http.MethodPost, "/task", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("tripo.CreateTask: %w", err)
	}
	return resp, nil
}

// GetTask fetches task status. taskID is passed through as-is.
func (c *Client) GetTask(ctx context.Context, taskID string) (*Response, error) {
	resp, err := c.do(ctx, http.MethodGet, "/task/"+taskID, nil)
	if err != nil {
		return nil, fmt.Errorf("tripo.GetTask: %w", err)
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*Response, error) {
	ctx, span := c.tracer.Start(ctx, "tripo "+method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.request.method", method)),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        respBody,
	}, nil
}
