package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"weaponforge-be/internal/dto"
	"weaponforge-be/internal/entity"
	"weaponforge-be/internal/pkg/logger"
	"weaponforge-be/internal/pkg/serverutils"
	"weaponforge-be/internal/pkg/testutil"
	"weaponforge-be/internal/repository/implementation"
	"weaponforge-be/internal/service"
	"weaponforge-be/pkg/tripo"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type nopEvents struct{}

func (nopEvents) PublishWeaponCreated(_ context.Context, _ *entity.Weapon) {}
func (nopEvents) PublishWeaponShared(_ context.Context, _ *entity.Weapon)  {}

type testApp struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestApp(t *testing.T, upstreamURL string) *testApp {
	t.Helper()
	log := logger.NewNop()
	db := testutil.NewWeaponDB(t)

	weaponService := service.NewWeaponService(implementation.NewWeaponRepository(db), nopEvents{}, log)
	tripoService := service.NewTripoService(tripo.NewClient(upstreamURL, "test-key", 2*time.Second), log)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(log))
	v1 := app.Group("/v1")
	NewHealthController().RegisterRoutes(v1)
	NewWeaponController(weaponService).RegisterRoutes(v1)
	NewTripoController(tripoService).RegisterRoutes(v1)

	return &testApp{app: app, db: db}
}

func (a *testApp) do(t *testing.T, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func (a *testApp) weaponCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, a.db.Table("weapons").Count(&n).Error)
	return n
}

func errorMessage(t *testing.T, raw []byte) string {
	t.Helper()
	var body serverutils.ErrorBody
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return body.Error
}

func TestHealth(t *testing.T) {
	a := newTestApp(t, "http://127.0.0.1:1")

	resp, raw := a.do(t, http.MethodGet, "/v1/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(raw))
}

func TestWeaponRoutes_CreateRejectsShortPrompt(t *testing.T) {
	a := newTestApp(t, "http://127.0.0.1:1")

	resp, raw := a.do(t, http.MethodPost, "/v1/weapons", `{"prompt":"short"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "prompt length must be 10-500", errorMessage(t, raw))
	assert.Zero(t, a.weaponCount(t))
}

func TestWeaponRoutes_CreateBadInput(t *testing.T) {
	a := newTestApp(t, "http://127.0.0.1:1")

	resp, raw := a.do(t, http.MethodPost, "/v1/weapons", `{"owner_id":"p1"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "prompt is required", errorMessage(t, raw))

	resp, raw = a.do(t, http.MethodPost, "/v1/weapons", `{"prompt":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "invalid request body", errorMessage(t, raw))
}

func TestWeaponRoutes_ShowUnknownAndMalformedIds(t *testing.T) {
	a := newTestApp(t, "http://127.0.0.1:1")

	resp, raw := a.do(t, http.MethodGet, "/v1/weapons/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "weapon not found", errorMessage(t, raw))

	resp, _ = a.do(t, http.MethodGet, "/v1/weapons/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = a.do(t, http.MethodPost, "/v1/weapons/"+uuid.NewString()+"/share", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, raw = a.do(t, http.MethodGet, "/v1/share/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "share not found", errorMessage(t, raw))
}

func TestWeaponRoutes_ShareLifecycle(t *testing.T) {
	a := newTestApp(t, "http://127.0.0.1:1")

	resp, raw := a.do(t, http.MethodPost, "/v1/weapons",
		`{"owner_id":"p1","prompt":"A glittering laser cannon","model_path":"/private/m.glb","tripo_task_id":"t-1","bug_level":0.5,"metadata":{"color":"red"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var created dto.WeaponResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Nil(t, created.ShareId)
	assert.Nil(t, created.SharedAt)
	assert.JSONEq(t, `{"color":"red"}`, string(created.Metadata))

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "null", string(fields["share_id"]))
	assert.Equal(t, "null", string(fields["pitch_text"]))

	resp, raw = a.do(t, http.MethodPost, "/v1/weapons/"+created.Id.String()+"/share", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var shared dto.WeaponResponse
	require.NoError(t, json.Unmarshal(raw, &shared))
	require.NotNil(t, shared.ShareId)

	resp, raw = a.do(t, http.MethodPost, "/v1/weapons/"+created.Id.String()+"/share", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var again dto.WeaponResponse
	require.NoError(t, json.Unmarshal(raw, &again))
	assert.Equal(t, *shared.ShareId, *again.ShareId)

	resp, raw = a.do(t, http.MethodGet, "/v1/share/"+shared.ShareId.String(), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var public map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &public))
	for _, hidden := range []string{"owner_id", "model_path", "tripo_task_id", "share_id"} {
		assert.NotContains(t, public, hidden)
	}
	assert.Equal(t, `"A glittering laser cannon"`, string(public["prompt"]))
	assert.JSONEq(t, `{"color":"red"}`, string(public["metadata"]))

	// A record id is not a share id.
	resp, _ = a.do(t, http.MethodGet, "/v1/share/"+created.Id.String(), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTripoRoutes_PolicyRejectsBeforeUpstream(t *testing.T) {
	var hits int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer upstream.Close()
	a := newTestApp(t, upstream.URL)

	resp, raw := a.do(t, http.MethodPost, "/v1/tripo/task", `{"prompt":"Design me a bomb launcher toy"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "prompt contains forbidden content", errorMessage(t, raw))
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestTripoRoutes_RelaysUpstreamVerbatim(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/task":
			var payload map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "text_to_model", payload["type"])
			assert.Equal(t, "medium", payload["quality"])
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"code":0,"data":{"task_id":"abc"}}`))
		case r.Method == http.MethodGet && r.URL.Path == "/task/abc":
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusTeapot)
			_, _ = w.Write([]byte("quota exceeded"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer upstream.Close()
	a := newTestApp(t, upstream.URL)

	resp, raw := a.do(t, http.MethodPost, "/v1/tripo/task", `{"prompt":"A cozy wooden treehouse"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, `{"code":0,"data":{"task_id":"abc"}}`, string(raw))

	resp, raw = a.do(t, http.MethodGet, "/v1/tripo/task/abc", "")
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "quota exceeded", string(raw))
}

func TestTripoRoutes_UpstreamDownIsBadGateway(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := upstream.URL
	upstream.Close()
	a := newTestApp(t, url)

	resp, raw := a.do(t, http.MethodPost, "/v1/tripo/task", `{"prompt":"A cozy wooden treehouse"}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, errorMessage(t, raw), "Upstream error:")
	assert.Zero(t, a.weaponCount(t))
}
