package battle

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/stardust-engine/internal/concurrency"
	"github.com/osse101/stardust-engine/internal/database/memory"
	"github.com/osse101/stardust-engine/internal/domain"
	"github.com/osse101/stardust-engine/internal/event"
)

const (
	alice = "erd1alice"
	bob   = "erd1bob"
	carol = "erd1carol"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(_ context.Context, evt event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) count(t event.Type) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

type fixture struct {
	svc   Service
	store *memory.Store
	pub   *recordingPublisher
}

func newFixture(t *testing.T, players ...string) *fixture {
	t.Helper()
	store := memory.NewStore()
	for _, p := range players {
		require.NoError(t, store.CreatePlayer(context.Background(), domain.NewPlayer(p, time.Now())))
	}
	pub := &recordingPublisher{}
	return &fixture{
		svc:   NewService(store, pub, concurrency.NewLockManager()),
		store: store,
		pub:   pub,
	}
}

func (f *fixture) mint(t *testing.T, owner string, rarity domain.Rarity) uint64 {
	t.Helper()
	a, err := f.store.CreateAsset(context.Background(), domain.NewAsset(owner, domain.AssetTemplate{
		Type: domain.AssetWeapon, Rarity: rarity, Name: "Blade",
	}, time.Now()))
	require.NoError(t, err)
	return a.ID
}

// activeBattle returns an accepted battle between alice and bob
func (f *fixture) activeBattle(t *testing.T, aliceAssets, bobAssets []uint64) uint64 {
	t.Helper()
	ctx := context.Background()
	b, err := f.svc.Initiate(ctx, alice, bob, aliceAssets, domain.BattleCasual)
	require.NoError(t, err)
	_, err = f.svc.Accept(ctx, bob, b.ID, bobAssets)
	require.NoError(t, err)
	return b.ID
}

func TestInitiate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, alice, bob)
	a1 := f.mint(t, alice, domain.RarityCommon)
	a2 := f.mint(t, alice, domain.RarityCommon)
	a3 := f.mint(t, alice, domain.RarityCommon)
	a4 := f.mint(t, alice, domain.RarityCommon)
	bobsAsset := f.mint(t, bob, domain.RarityRare)

	t.Run("creates a waiting battle", func(t *testing.T) {
		b, err := f.svc.Initiate(ctx, alice, bob, []uint64{a1, a2}, domain.BattleRanked)
		require.NoError(t, err)
		assert.Equal(t, domain.BattleWaitingForDefender, b.Status)
		assert.Equal(t, uint32(1), b.Turn)
		assert.Empty(t, b.Moves)
		assert.Empty(t, b.DefenderAssets)
		assert.Equal(t, []uint64{a1, a2}, b.AttackerAssets)
		assert.Equal(t, 1, f.pub.count(event.BattleInitiated))
	})

	t.Run("no assets is allowed", func(t *testing.T) {
		_, err := f.svc.Initiate(ctx, alice, bob, nil, domain.BattleCasual)
		assert.NoError(t, err)
	})

	tests := []struct {
		name     string
		caller   string
		opponent string
		assets   []uint64
		kind     domain.BattleKind
		wantErr  error
	}{
		{"unregistered caller", carol, bob, nil, domain.BattleCasual, domain.ErrNotRegistered},
		{"unregistered opponent", alice, carol, nil, domain.BattleCasual, domain.ErrNotRegistered},
		{"too many assets", alice, bob, []uint64{a1, a2, a3, a4}, domain.BattleCasual, domain.ErrTooManyAssets},
		{"asset not owned", alice, bob, []uint64{a1, bobsAsset}, domain.BattleCasual, domain.ErrAssetNotOwned},
		{"unknown asset", alice, bob, []uint64{999}, domain.BattleCasual, domain.ErrAssetNotFound},
		{"duplicate asset", alice, bob, []uint64{a1, a1}, domain.BattleCasual, domain.ErrDuplicateAsset},
		{"self battle", alice, alice, nil, domain.BattleCasual, domain.ErrSelfTarget},
		{"unknown kind", alice, bob, nil, domain.BattleKind("Arena"), domain.ErrInvalidBattleKind},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := f.svc.Initiate(ctx, tt.caller, tt.opponent, tt.assets, tt.kind)
			assert.Nil(t, b)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrPrecondition)
		})
	}

	stats, err := f.store.GetPlatformStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalBattles, "rejected challenges allocate no battle")
}

func TestAccept(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, alice, bob, carol)
	a := f.mint(t, alice, domain.RarityCommon)
	b := f.mint(t, bob, domain.RarityCommon)

	created, err := f.svc.Initiate(ctx, alice, bob, []uint64{a}, domain.BattleCasual)
	require.NoError(t, err)

	_, err = f.svc.Accept(ctx, carol, created.ID, nil)
	assert.ErrorIs(t, err, domain.ErrNotDefender)

	_, err = f.svc.Accept(ctx, bob, created.ID, []uint64{a})
	assert.ErrorIs(t, err, domain.ErrAssetNotOwned)

	_, err = f.svc.Accept(ctx, bob, 42, nil)
	assert.ErrorIs(t, err, domain.ErrBattleNotFound)
	assert.ErrorIs(t, err, domain.ErrPrecondition)

	accepted, err := f.svc.Accept(ctx, bob, created.ID, []uint64{b})
	require.NoError(t, err)
	assert.Equal(t, domain.BattleActive, accepted.Status)
	assert.Equal(t, []uint64{b}, accepted.DefenderAssets)

	t.Run("cannot be accepted twice", func(t *testing.T) {
		_, err := f.svc.Accept(ctx, bob, created.ID, nil)
		assert.ErrorIs(t, err, domain.ErrBattleNotWaiting)

		stored, err := f.svc.GetBattle(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, []uint64{b}, stored.DefenderAssets)
		assert.Equal(t, domain.BattleActive, stored.Status)
	})
	assert.Equal(t, 1, f.pub.count(event.BattleAccepted))
}

func TestSubmitMove_TurnOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, alice, bob)
	a := f.mint(t, alice, domain.RarityCommon)
	b := f.mint(t, bob, domain.RarityCommon)
	id := f.activeBattle(t, []uint64{a}, []uint64{b})

	_, err := f.svc.SubmitMove(ctx, bob, id, b, domain.MoveAttack, nil)
	assert.ErrorIs(t, err, domain.ErrNotYourTurn, "defender cannot move on an odd turn")

	_, err = f.svc.SubmitMove(ctx, alice, id, b, domain.MoveAttack, nil)
	assert.ErrorIs(t, err, domain.ErrAssetNotInBattle)

	res, err := f.svc.SubmitMove(ctx, alice, id, a, domain.MoveAttack, &b)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), res.Move.Turn)
	assert.Equal(t, uint32(2), res.Battle.Turn)
	assert.Nil(t, res.Outcome)

	_, err = f.svc.SubmitMove(ctx, alice, id, a, domain.MoveAttack, nil)
	assert.ErrorIs(t, err, domain.ErrNotYourTurn, "attacker cannot move on an even turn")

	_, err = f.svc.SubmitMove(ctx, bob, id, b, domain.MoveKind("Dance"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidMoveKind)

	stored, err := f.svc.GetBattle(ctx, id)
	require.NoError(t, err)
	assert.Len(t, stored.Moves, 1, "rejected moves leave the log unchanged")
}

func TestSubmitMove_BeforeAccept(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, alice, bob)
	a := f.mint(t, alice, domain.RarityCommon)

	created, err := f.svc.Initiate(ctx, alice, bob, []uint64{a}, domain.BattleCasual)
	require.NoError(t, err)

	_, err = f.svc.SubmitMove(ctx, alice, created.ID, a, domain.MoveAttack, nil)
	assert.ErrorIs(t, err, domain.ErrBattleNotActive)
}

// playMoves alternates moves until the battle resolves, returning the last result
func playMoves(t *testing.T, f *fixture, id, aliceAsset, bobAsset uint64, aliceMove, bobMove domain.MoveKind) *MoveResult {
	t.Helper()
	ctx := context.Background()
	var res *MoveResult
	for turn := 1; turn <= domain.MaxBattleTurns; turn++ {
		var err error
		if turn%2 == 1 {
			res, err = f.svc.SubmitMove(ctx, alice, id, aliceAsset, aliceMove, nil)
		} else {
			res, err = f.svc.SubmitMove(ctx, bob, id, bobAsset, bobMove, nil)
		}
		require.NoError(t, err)
		if turn < domain.MaxBattleTurns {
			require.Nil(t, res.Outcome, "resolved early at turn %d", turn)
		}
	}
	return res
}

func TestResolve_AutoAfterTenTurns(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, alice, bob)
	a := f.mint(t, alice, domain.RarityCommon)
	b := f.mint(t, bob, domain.RarityLegendary)
	id := f.activeBattle(t, []uint64{a}, []uint64{b})

	res := playMoves(t, f, id, a, b, domain.MoveAttack, domain.MoveAttack)
	require.NotNil(t, res.Outcome)
	assert.Equal(t, domain.BattleCompleted, res.Battle.Status)
	assert.Equal(t, uint32(11), res.Battle.Turn)
	assert.Len(t, res.Battle.Moves, 10)

	// Common 15 + 5 attacks; Legendary 105 + 5 attacks
	assert.Equal(t, uint64(65), res.Outcome.AttackerPower)
	assert.Equal(t, uint64(155), res.Outcome.DefenderPower)
	assert.Equal(t, bob, res.Outcome.Winner)
	assert.Equal(t, alice, res.Outcome.Loser)

	winner, err := f.store.GetPlayer(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), winner.Experience)
	assert.Equal(t, uint32(2), winner.Level)
	assert.Equal(t, uint32(1), winner.GamesPlayed)
	assert.Equal(t, uint32(1), winner.GamesWon)

	loser, err := f.store.GetPlayer(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(25), loser.Experience)
	assert.Equal(t, uint32(1), loser.Level)
	assert.Equal(t, uint32(1), loser.GamesPlayed)
	assert.Zero(t, loser.GamesWon)

	winnerAsset, err := f.store.GetAsset(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), winnerAsset.Experience)
	assert.Equal(t, uint32(2), winnerAsset.Level)

	loserAsset, err := f.store.GetAsset(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), loserAsset.Experience)
	assert.Equal(t, uint32(1), loserAsset.Level)

	t.Run("resolves exactly once", func(t *testing.T) {
		_, err := f.svc.SubmitMove(ctx, alice, id, a, domain.MoveAttack, nil)
		assert.ErrorIs(t, err, domain.ErrBattleNotActive)
		assert.Equal(t, 1, f.pub.count(event.BattleResolved))
		assert.Equal(t, 10, f.pub.count(event.BattleMoveMade))
	})
}

func TestResolve_TieFavoursAttacker(t *testing.T) {
	f := newFixture(t, alice, bob)
	a := f.mint(t, alice, domain.RarityRare)
	b := f.mint(t, bob, domain.RarityRare)
	id := f.activeBattle(t, []uint64{a}, []uint64{b})

	res := playMoves(t, f, id, a, b, domain.MoveSpecial, domain.MoveSpecial)
	require.NotNil(t, res.Outcome)
	assert.Equal(t, res.Outcome.AttackerPower, res.Outcome.DefenderPower)
	assert.Equal(t, alice, res.Outcome.Winner)
}

func TestScenario_DefenderWithoutAssets(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, alice, bob)
	a := f.mint(t, alice, domain.RarityCommon)

	power, err := f.svc.AssetPower(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, uint64(15), power)

	id := f.activeBattle(t, []uint64{a}, nil)

	res, err := f.svc.SubmitMove(ctx, alice, id, a, domain.MoveAttack, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), res.Battle.Turn)
	assert.Len(t, res.Battle.Moves, 1)
	assert.Nil(t, res.Outcome)

	// With no committed assets the defender has nothing to move with
	_, err = f.svc.SubmitMove(ctx, bob, id, a, domain.MoveDefend, nil)
	assert.ErrorIs(t, err, domain.ErrAssetNotInBattle)
}

func TestViews(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, alice, bob, carol)

	b, err := f.svc.GetBattle(ctx, 99)
	assert.NoError(t, err)
	assert.Nil(t, b)

	first, err := f.svc.Initiate(ctx, alice, bob, nil, domain.BattleCasual)
	require.NoError(t, err)
	second, err := f.svc.Initiate(ctx, carol, alice, nil, domain.BattleGuild)
	require.NoError(t, err)
	_, err = f.svc.Initiate(ctx, bob, carol, nil, domain.BattleGuild)
	require.NoError(t, err)

	ids, err := f.svc.ListPlayerBattles(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, []uint64{first.ID, second.ID}, ids)

	ids, err = f.svc.ListPlayerBattles(ctx, "erd1nobody")
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = f.svc.AssetPower(ctx, 1234)
	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestSubmitMove_ConcurrentCallersGetOneTurn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, alice, bob)
	a := f.mint(t, alice, domain.RarityCommon)
	b := f.mint(t, bob, domain.RarityCommon)
	id := f.activeBattle(t, []uint64{a}, []uint64{b})

	var ok int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.svc.SubmitMove(ctx, alice, id, a, domain.MoveAttack, nil); err == nil {
				atomic.AddInt32(&ok, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok)
	stored, err := f.svc.GetBattle(ctx, id)
	require.NoError(t, err)
	assert.Len(t, stored.Moves, 1)
	assert.Equal(t, uint32(2), stored.Turn)
}

func TestPlayersInLockOrder(t *testing.T) {
	for _, outcome := range []domain.BattleOutcome{
		{Winner: alice, Loser: bob},
		{Winner: bob, Loser: alice},
	} {
		got := playersInLockOrder(outcome)
		require.Len(t, got, 2)
		assert.Equal(t, alice, got[0].address)
		assert.Equal(t, bob, got[1].address)
		assert.Equal(t, outcome.Winner == alice, got[0].won)
		assert.Equal(t, outcome.Winner == bob, got[1].won)
	}
}
