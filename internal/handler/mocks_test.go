package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/stardust-engine/internal/battle"
	"github.com/osse101/stardust-engine/internal/domain"
	"github.com/osse101/stardust-engine/internal/quest"
)

// MockPlayerService mocks the player.Service interface
type MockPlayerService struct {
	mock.Mock
}

func (m *MockPlayerService) Register(ctx context.Context, caller string) (*domain.Player, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *MockPlayerService) GrantExperience(ctx context.Context, caller, address string, amount uint64) (*domain.Player, error) {
	args := m.Called(ctx, caller, address, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *MockPlayerService) GetPlayer(ctx context.Context, address string) (*domain.Player, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Player), args.Error(1)
}

func (m *MockPlayerService) GetProfile(ctx context.Context, address string) (*domain.PlayerProfile, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlayerProfile), args.Error(1)
}

func (m *MockPlayerService) PlatformStats(ctx context.Context) (domain.PlatformStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.PlatformStats), args.Error(1)
}

// MockAssetService mocks the asset.Service interface
type MockAssetService struct {
	mock.Mock
}

func (m *MockAssetService) Mint(ctx context.Context, caller string, tmpl domain.AssetTemplate) (*domain.GameAsset, error) {
	args := m.Called(ctx, caller, tmpl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GameAsset), args.Error(1)
}

func (m *MockAssetService) Transfer(ctx context.Context, caller string, assetID uint64, to string) (*domain.GameAsset, error) {
	args := m.Called(ctx, caller, assetID, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GameAsset), args.Error(1)
}

func (m *MockAssetService) GetAsset(ctx context.Context, assetID uint64) (*domain.GameAsset, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GameAsset), args.Error(1)
}

func (m *MockAssetService) ListByOwner(ctx context.Context, owner string) ([]domain.GameAsset, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GameAsset), args.Error(1)
}

// MockBattleService mocks the battle.Service interface
type MockBattleService struct {
	mock.Mock
}

func (m *MockBattleService) Initiate(ctx context.Context, caller, opponent string, assetIDs []uint64, kind domain.BattleKind) (*domain.Battle, error) {
	args := m.Called(ctx, caller, opponent, assetIDs, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Battle), args.Error(1)
}

func (m *MockBattleService) Accept(ctx context.Context, caller string, battleID uint64, assetIDs []uint64) (*domain.Battle, error) {
	args := m.Called(ctx, caller, battleID, assetIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Battle), args.Error(1)
}

func (m *MockBattleService) SubmitMove(ctx context.Context, caller string, battleID, assetID uint64, kind domain.MoveKind, target *uint64) (*battle.MoveResult, error) {
	args := m.Called(ctx, caller, battleID, assetID, kind, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*battle.MoveResult), args.Error(1)
}

func (m *MockBattleService) GetBattle(ctx context.Context, battleID uint64) (*domain.Battle, error) {
	args := m.Called(ctx, battleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Battle), args.Error(1)
}

func (m *MockBattleService) ListPlayerBattles(ctx context.Context, address string) ([]uint64, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint64), args.Error(1)
}

func (m *MockBattleService) AssetPower(ctx context.Context, assetID uint64) (uint64, error) {
	args := m.Called(ctx, assetID)
	return args.Get(0).(uint64), args.Error(1)
}

// MockQuestService mocks the quest.Service interface
type MockQuestService struct {
	mock.Mock
}

func (m *MockQuestService) Start(ctx context.Context, caller string, missionID uint64) (*domain.PlayerMission, error) {
	args := m.Called(ctx, caller, missionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlayerMission), args.Error(1)
}

func (m *MockQuestService) CompleteObjective(ctx context.Context, caller string, missionID, objectiveID uint64, proofAssets []uint64) (*quest.ObjectiveResult, error) {
	args := m.Called(ctx, caller, missionID, objectiveID, proofAssets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quest.ObjectiveResult), args.Error(1)
}

func (m *MockQuestService) ListActiveMissions(ctx context.Context, address string) ([]domain.PlayerMission, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlayerMission), args.Error(1)
}

func (m *MockQuestService) ListAvailableMissions(ctx context.Context, address string) ([]uint64, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint64), args.Error(1)
}

func (m *MockQuestService) ListCompletedMissions(ctx context.Context, address string) ([]uint64, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint64), args.Error(1)
}

// MockCatalogService mocks the catalog.Service interface
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) Create(ctx context.Context, caller string, tmpl domain.MissionTemplate) (*domain.MissionTemplate, error) {
	args := m.Called(ctx, caller, tmpl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MissionTemplate), args.Error(1)
}

func (m *MockCatalogService) InitializeChapterMissions(ctx context.Context, caller string) ([]uint64, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint64), args.Error(1)
}

func (m *MockCatalogService) Get(ctx context.Context, id uint64) (*domain.MissionTemplate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MissionTemplate), args.Error(1)
}

func (m *MockCatalogService) List(ctx context.Context) ([]domain.MissionTemplate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MissionTemplate), args.Error(1)
}

// newRequest builds a request with an optional JSON body, caller header and chi URL params
func newRequest(t *testing.T, method, target, caller string, body interface{}, params map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if caller != "" {
		req.Header.Set(HeaderPlayerAddress, caller)
	}

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// decodeData unmarshals the data field of a DataResponse into out
func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) string {
	t.Helper()

	var resp struct {
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NoError(t, json.Unmarshal(resp.Data, out))
	return resp.Message
}
