package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/stardust-engine/internal/admin"
	"github.com/osse101/stardust-engine/internal/asset"
	"github.com/osse101/stardust-engine/internal/battle"
	"github.com/osse101/stardust-engine/internal/catalog"
	"github.com/osse101/stardust-engine/internal/concurrency"
	"github.com/osse101/stardust-engine/internal/database/memory"
	"github.com/osse101/stardust-engine/internal/event"
	"github.com/osse101/stardust-engine/internal/eventlog"
	"github.com/osse101/stardust-engine/internal/handler"
	"github.com/osse101/stardust-engine/internal/player"
	"github.com/osse101/stardust-engine/internal/quest"
	"github.com/osse101/stardust-engine/internal/reward"
	"github.com/osse101/stardust-engine/internal/sse"
)

const (
	testAPIKey = "test-key"
	testAdmin  = "erd1admin"
	testAlice  = "erd1alice"
)

// busPublisher delivers events synchronously so the event log sees them
// before the response returns.
type busPublisher struct {
	bus event.Bus
}

func (p busPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	_ = p.bus.Publish(ctx, evt)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	store := memory.NewStore()
	bus := event.NewMemoryBus()
	pub := busPublisher{bus: bus}
	locks := concurrency.NewLockManager()
	gate := admin.NewGate(testAdmin)

	events := eventlog.NewService(eventlog.NewMemoryRepository())
	require.NoError(t, events.Subscribe(bus))

	hub := sse.NewHub()
	t.Cleanup(hub.Stop)

	svc := Services{
		Players:  player.NewService(store, gate, pub, locks),
		Assets:   asset.NewService(store, pub, locks),
		Battles:  battle.NewService(store, pub, locks),
		Catalog:  catalog.NewService(store, gate, pub, catalog.Options{}),
		Quests:   quest.NewService(store, pub, locks, reward.NewDispatcher()),
		EventLog: events,
		Gate:     gate,
	}
	opts := Options{
		Port:        0,
		APIKey:      testAPIKey,
		Storage:     "memory",
		ServiceName: "stardust-engine",
		Version:     "test",
		Environment: "test",
	}
	return NewServer(opts, svc, store, hub)
}

func do(t *testing.T, s *Server, method, path, caller, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set(HeaderAPIKey, testAPIKey)
	if caller != "" {
		req.Header.Set(handler.HeaderPlayerAddress, caller)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestServer_PublicRoutes(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz", "/version"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestServer_RequiresAPIKey(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/players/register", nil)
	req.Header.Set(handler.HeaderPlayerAddress, testAlice)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServer_PlayerLifecycle(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/api/v1/players/register", testAlice, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, s, http.MethodPost, "/api/v1/players/register", testAlice, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, s, http.MethodGet, "/api/v1/players/"+testAlice, "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), testAlice)

	w = do(t, s, http.MethodGet, "/api/v1/players/erd1nobody", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, s, http.MethodPost, "/api/v1/assets/mint", testAlice,
		`{"asset_type":"Weapon","rarity":"Rare","name":"Ion Lance"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, s, http.MethodGet, "/api/v1/players/"+testAlice+"/assets", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ion Lance")

	w = do(t, s, http.MethodGet, "/api/v1/stats/platform", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total_players":1,"total_assets":1,"total_battles":0,"total_missions":0}`, w.Body.String())
}

func TestServer_AdminRoutes(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/api/v1/admin/missions/initialize", testAlice, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, s, http.MethodPost, "/api/v1/admin/missions/initialize", testAdmin, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var seeded handler.InitializeMissionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &seeded))
	assert.Equal(t, []uint64{1}, seeded.Created)

	w = do(t, s, http.MethodGet, "/api/v1/missions/1", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Training Academy")

	w = do(t, s, http.MethodGet, "/api/v1/admin/events?event_type=mission.created", testAdmin, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got handler.EventsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got.Events, 1)
}

func TestServer_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodDelete, "/api/v1/missions/1", testAdmin, "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestServer_SwaggerDoc(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/players/register")
}
