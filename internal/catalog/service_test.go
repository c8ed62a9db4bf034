package catalog

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/stardust-engine/internal/admin"
	"github.com/osse101/stardust-engine/internal/database/memory"
	"github.com/osse101/stardust-engine/internal/domain"
	"github.com/osse101/stardust-engine/internal/event"
)

const adminAddr = "erd1admin"

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(_ context.Context, evt event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func newTestService(t *testing.T, seedPath string) (Service, *memory.Store, *recordingPublisher) {
	t.Helper()
	store := memory.NewStore()
	pub := &recordingPublisher{}
	svc := NewService(store, admin.NewGate(adminAddr), pub, Options{SeedPath: seedPath})
	return svc, store, pub
}

func scoutMission() domain.MissionTemplate {
	return domain.MissionTemplate{
		ID:            7,
		Name:          "Scout",
		Chapter:       2,
		RequiredLevel: 3,
		Objectives: []domain.Objective{
			{ID: 1, Kind: domain.ObjectiveExploreTerritory, TargetAmount: 1},
		},
		Rewards: []domain.Reward{domain.PointsReward{Amount: 10}},
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("admin creates a template", func(t *testing.T) {
		svc, store, pub := newTestService(t, "")
		created, err := svc.Create(ctx, adminAddr, scoutMission())
		require.NoError(t, err)
		assert.Equal(t, uint64(7), created.ID)

		stored, err := store.GetMissionTemplate(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "Scout", stored.Name)
		assert.Equal(t, 1, pub.len())
	})

	t.Run("non admin is rejected", func(t *testing.T) {
		svc, store, pub := newTestService(t, "")
		_, err := svc.Create(ctx, "erd1mallory", scoutMission())
		assert.ErrorIs(t, err, domain.ErrNotAdmin)

		_, err = store.GetMissionTemplate(ctx, 7)
		assert.ErrorIs(t, err, domain.ErrMissionNotFound)
		assert.Equal(t, 0, pub.len())
	})

	t.Run("invalid template is rejected", func(t *testing.T) {
		svc, _, _ := newTestService(t, "")
		bad := scoutMission()
		bad.Objectives[0].ID = 2
		_, err := svc.Create(ctx, adminAddr, bad)
		assert.ErrorIs(t, err, domain.ErrInvalidMission)
	})

	t.Run("asset reward without template is an integrity fault", func(t *testing.T) {
		svc, _, _ := newTestService(t, "")
		bad := scoutMission()
		bad.Rewards = []domain.Reward{domain.AssetReward{}}
		_, err := svc.Create(ctx, adminAddr, bad)
		assert.ErrorIs(t, err, domain.ErrDataIntegrity)
	})

	t.Run("existing id is never overwritten", func(t *testing.T) {
		svc, _, _ := newTestService(t, "")
		_, err := svc.Create(ctx, adminAddr, scoutMission())
		require.NoError(t, err)

		again := scoutMission()
		again.Name = "Renamed"
		_, err = svc.Create(ctx, adminAddr, again)
		assert.ErrorIs(t, err, domain.ErrMissionExists)

		got, err := svc.Get(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, "Scout", got.Name)
	})
}

func TestInitializeChapterMissions(t *testing.T) {
	ctx := context.Background()

	t.Run("built-in missions when no file is configured", func(t *testing.T) {
		svc, _, pub := newTestService(t, "")
		ids, err := svc.InitializeChapterMissions(ctx, adminAddr)
		require.NoError(t, err)
		assert.Equal(t, []uint64{1}, ids)

		m, err := svc.Get(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, "Training Academy", m.Name)
		assert.Equal(t, uint32(1), m.Chapter)
		require.Len(t, m.Objectives, 3)
		assert.Equal(t, domain.ObjectiveReachLevel, m.Objectives[2].Kind)
		assert.Equal(t, uint64(2), m.Objectives[2].TargetAmount)
		require.Len(t, m.Rewards, 3)
		assert.Equal(t, domain.ExperienceReward{Amount: 200}, m.Rewards[0])
		assert.Equal(t, domain.TitleReward{Title: "Rookie Engineer"}, m.Rewards[2])
		assert.Equal(t, 1, pub.len())
	})

	t.Run("second run skips existing missions", func(t *testing.T) {
		svc, _, pub := newTestService(t, "")
		_, err := svc.InitializeChapterMissions(ctx, adminAddr)
		require.NoError(t, err)

		ids, err := svc.InitializeChapterMissions(ctx, adminAddr)
		require.NoError(t, err)
		assert.Empty(t, ids)
		assert.Equal(t, 1, pub.len())
	})

	t.Run("catalog file", func(t *testing.T) {
		svc, _, _ := newTestService(t, filepath.Join("..", "..", "configs", "missions", "chapter1.json"))
		ids, err := svc.InitializeChapterMissions(ctx, adminAddr)
		require.NoError(t, err)
		assert.Equal(t, []uint64{1, 2}, ids)

		all, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, []uint64{1}, all[1].Prerequisites)
		assert.Equal(t, domain.RarityRare, all[1].RequiredAssets[0].MinRarity)
	})

	t.Run("non admin", func(t *testing.T) {
		svc, _, _ := newTestService(t, "")
		_, err := svc.InitializeChapterMissions(ctx, "erd1mallory")
		assert.ErrorIs(t, err, domain.ErrNotAdmin)
	})

	t.Run("invalid file seeds nothing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"missions":[{"id":1,"name":"x","objectives":[],"rewards":[]}]}`), 0o600))

		svc, store, _ := newTestService(t, path)
		_, err := svc.InitializeChapterMissions(ctx, adminAddr)
		assert.ErrorIs(t, err, domain.ErrInvalidMission)

		all, err := store.ListMissionTemplates(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestGet_AbsentIsNil(t *testing.T) {
	svc, _, _ := newTestService(t, "")
	m, err := svc.Get(context.Background(), 99)
	assert.NoError(t, err)
	assert.Nil(t, m)
}

func TestLoadFile_MissingFallsBack(t *testing.T) {
	templates, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultMissions(), templates)
}

func TestLoadFile_ShippedCatalog(t *testing.T) {
	templates, err := LoadFile(filepath.Join("..", "..", "configs", "missions", "chapter1.json"))
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, DefaultMissions()[0], templates[0])
	for _, tmpl := range templates {
		assert.NoError(t, tmpl.Validate())
	}
}

func TestLoadFile_SchemaViolation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	body := `{"missions":[{"id":1,"name":"x","objectives":[{"id":1,"objective_type":"Dance","target_amount":1}],"rewards":[]}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
	assert.Contains(t, err.Error(), "/missions/0/objectives/0/objective_type")
}

func TestTemplateCache_EvictsBySizeAndTTL(t *testing.T) {
	c := newTemplateCache(1, 30*time.Millisecond)
	c.Set(scoutMission())
	got, ok := c.Get(7)
	require.True(t, ok)
	assert.Equal(t, scoutMission().Name, got.Name)

	other := scoutMission()
	other.ID = 8
	c.Set(other)
	_, ok = c.Get(7)
	assert.False(t, ok, "oldest entry leaves when the cache is full")

	require.Eventually(t, func() bool {
		_, ok := c.Get(8)
		return !ok
	}, time.Second, 5*time.Millisecond)
}
