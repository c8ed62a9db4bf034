package asset

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/stardust-engine/internal/concurrency"
	"github.com/osse101/stardust-engine/internal/database/memory"
	"github.com/osse101/stardust-engine/internal/domain"
	"github.com/osse101/stardust-engine/internal/event"
)

type countingPublisher struct {
	mu     sync.Mutex
	byType map[event.Type]int
}

func (p *countingPublisher) PublishWithRetry(_ context.Context, evt event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.byType == nil {
		p.byType = map[event.Type]int{}
	}
	p.byType[evt.Type]++
}

func setup(t *testing.T) (Service, *memory.Store, *countingPublisher) {
	t.Helper()
	store := memory.NewStore()
	for _, addr := range []string{"erd1alice", "erd1bob"} {
		require.NoError(t, store.CreatePlayer(context.Background(), domain.NewPlayer(addr, time.Now())))
	}
	pub := &countingPublisher{}
	return NewService(store, pub, concurrency.NewLockManager()), store, pub
}

var blade = domain.AssetTemplate{Type: domain.AssetWeapon, Rarity: domain.RarityEpic, Name: "Void Blade", Description: "Hums quietly"}

func TestMint(t *testing.T) {
	ctx := context.Background()
	svc, store, pub := setup(t)

	a, err := svc.Mint(ctx, "erd1alice", blade)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), a.ID)
	assert.Equal(t, uint32(1), a.Level)
	assert.Equal(t, uint64(0), a.Experience)
	assert.Equal(t, "erd1alice", a.Owner)

	second, err := svc.Mint(ctx, "erd1alice", blade)
	require.NoError(t, err)
	assert.Greater(t, second.ID, a.ID)

	p, err := store.GetPlayer(ctx, "erd1alice")
	require.NoError(t, err)
	assert.Equal(t, uint32(2), p.AssetsOwned)
	assert.Equal(t, 2, pub.byType[event.AssetMinted])

	tests := []struct {
		name    string
		caller  string
		tmpl    domain.AssetTemplate
		wantErr error
	}{
		{"unregistered", "erd1ghost", blade, domain.ErrNotRegistered},
		{"bad type", "erd1alice", domain.AssetTemplate{Type: "Spaceship", Rarity: domain.RarityRare, Name: "x"}, domain.ErrInvalidAssetType},
		{"bad rarity", "erd1alice", domain.AssetTemplate{Type: domain.AssetSkin, Rarity: "Mythic", Name: "x"}, domain.ErrInvalidRarity},
		{"no name", "erd1alice", domain.AssetTemplate{Type: domain.AssetSkin, Rarity: domain.RarityRare}, domain.ErrAssetNameEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Mint(ctx, tt.caller, tt.tmpl)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()
	svc, store, pub := setup(t)
	a, err := svc.Mint(ctx, "erd1alice", blade)
	require.NoError(t, err)

	moved, err := svc.Transfer(ctx, "erd1alice", a.ID, "erd1bob")
	require.NoError(t, err)
	assert.Equal(t, "erd1bob", moved.Owner)
	assert.Equal(t, 1, pub.byType[event.AssetTransferred])

	alice, err := store.GetPlayer(ctx, "erd1alice")
	require.NoError(t, err)
	bob, err := store.GetPlayer(ctx, "erd1bob")
	require.NoError(t, err)
	assert.Equal(t, uint32(0), alice.AssetsOwned)
	assert.Equal(t, uint32(1), bob.AssetsOwned)

	owned, err := svc.ListByOwner(ctx, "erd1bob")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, a.ID, owned[0].ID)

	tests := []struct {
		name    string
		caller  string
		assetID uint64
		to      string
		wantErr error
	}{
		{"previous owner", "erd1alice", a.ID, "erd1bob", domain.ErrAssetNotOwned},
		{"unknown asset", "erd1bob", 99, "erd1alice", domain.ErrAssetNotFound},
		{"unregistered recipient", "erd1bob", a.ID, "erd1ghost", domain.ErrRecipientNotFound},
		{"self transfer", "erd1bob", a.ID, "erd1bob", domain.ErrSelfTarget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Transfer(ctx, tt.caller, tt.assetID, tt.to)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrPrecondition)
		})
	}

	got, err := svc.GetAsset(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "erd1bob", got.Owner)
}

func TestGetAsset_Absent(t *testing.T) {
	svc, _, _ := setup(t)
	a, err := svc.GetAsset(context.Background(), 7)
	assert.NoError(t, err)
	assert.Nil(t, a)

	owned, err := svc.ListByOwner(context.Background(), "erd1ghost")
	assert.NoError(t, err)
	assert.NotNil(t, owned)
	assert.Empty(t, owned)
}
