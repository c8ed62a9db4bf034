package player

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/stardust-engine/internal/admin"
	"github.com/osse101/stardust-engine/internal/concurrency"
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

func (p *recordingPublisher) last() event.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

func newTestService(t *testing.T) (Service, *memory.Store, *recordingPublisher) {
	t.Helper()
	store := memory.NewStore()
	pub := &recordingPublisher{}
	return NewService(store, admin.NewGate(adminAddr), pub, concurrency.NewLockManager()), store, pub
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, _, pub := newTestService(t)

	p, err := svc.Register(ctx, "erd1alice")
	require.NoError(t, err)
	assert.Equal(t, uint32(1), p.Level)
	assert.Equal(t, domain.StartingPoints, p.Points)
	assert.Equal(t, uint64(0), p.Experience)
	assert.Empty(t, p.Achievements)
	assert.Equal(t, event.PlayerRegistered, pub.last().Type)
	assert.Equal(t, "erd1alice", pub.last().Player())

	_, err = svc.Register(ctx, "erd1alice")
	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)

	_, err = svc.Register(ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)
}

func TestRegister_ConcurrentOnlyOnce(t *testing.T) {
	svc, _, _ := newTestService(t)
	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Register(context.Background(), "erd1alice"); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, ok)
}

func TestGrantExperience(t *testing.T) {
	ctx := context.Background()
	svc, _, pub := newTestService(t)
	_, err := svc.Register(ctx, "erd1alice")
	require.NoError(t, err)

	p, err := svc.GrantExperience(ctx, adminAddr, "erd1alice", 400)
	require.NoError(t, err)
	assert.Equal(t, uint64(400), p.Experience)
	assert.Equal(t, uint32(3), p.Level)

	evt := pub.last()
	assert.Equal(t, event.ExperienceGained, evt.Type)

	tests := []struct {
		name    string
		caller  string
		target  string
		amount  uint64
		wantErr error
	}{
		{"non admin", "erd1alice", "erd1alice", 10, domain.ErrNotAdmin},
		{"zero amount", adminAddr, "erd1alice", 0, domain.ErrInvalidExperience},
		{"unregistered target", adminAddr, "erd1ghost", 10, domain.ErrNotRegistered},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GrantExperience(ctx, tt.caller, tt.target, tt.amount)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	got, err := svc.GetPlayer(ctx, "erd1alice")
	require.NoError(t, err)
	assert.Equal(t, uint64(400), got.Experience)
}

func TestViews(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)

	p, err := svc.GetPlayer(ctx, "erd1ghost")
	assert.NoError(t, err)
	assert.Nil(t, p)
	profile, err := svc.GetProfile(ctx, "erd1ghost")
	assert.NoError(t, err)
	assert.Nil(t, profile)

	_, err = svc.Register(ctx, "erd1alice")
	require.NoError(t, err)
	require.NoError(t, store.SavePlayerMission(ctx, domain.PlayerMission{
		Player: "erd1alice", MissionID: 1, Status: domain.MissionActive, StartedAt: time.Now(),
	}))
	require.NoError(t, store.SavePlayerMission(ctx, domain.PlayerMission{
		Player: "erd1alice", MissionID: 2, Status: domain.MissionCompleted, StartedAt: time.Now(),
	}))

	profile, err = svc.GetProfile(ctx, "erd1alice")
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, 1, profile.ActiveMissions)
	assert.Equal(t, domain.StartingPoints, profile.Player.Points)

	stats, err := svc.PlatformStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalPlayers)
	assert.Equal(t, int64(0), stats.TotalBattles)
}
