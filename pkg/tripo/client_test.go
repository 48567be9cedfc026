package tripo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTaskSendsAuthenticatedPayload(t *testing.T) {
	var got TaskRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/openapi/task", r.URL.Path)
		assert.Equal(t, "Bearer tsk_secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"code":0,"data":{"task_id":"t-1"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/v2/openapi/", "tsk_secret", 0)
	resp, err := c.CreateTask(context.Background(), TaskRequest{
		Type:         TaskTypeTextToModel,
		Prompt:       "A crystal teapot with wings",
		ModelVersion: DefaultModelVersion,
		Quality:      DefaultQuality,
	})
	require.NoError(t, err)

	assert.Equal(t, TaskRequest{Type: "text_to_model", Prompt: "A crystal teapot with wings", ModelVersion: "default", Quality: "medium"}, got)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.ContentType)
	assert.Equal(t, `{"code":0,"data":{"task_id":"t-1"}}`, string(resp.Body))
}

func TestGetTaskRelaysErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/task/abc-123", r.URL.Path)
		assert.Equal(t, "Bearer tsk_secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":2001,"message":"task not found"}`))
	}))
	defer srv.Close()

	resp, err := NewClient(srv.URL, "tsk_secret", 0).GetTask(context.Background(), "abc-123")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "application/problem+json", resp.ContentType)
	assert.Equal(t, `{"code":2001,"message":"task not found"}`, string(resp.Body))
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, "tsk_secret", 0).GetTask(context.Background(), "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tripo.GetTask")
}
