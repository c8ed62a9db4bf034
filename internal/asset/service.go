// Package asset owns the asset registry: minting and transfers between
// registered players.
package asset

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/stardust-engine/internal/concurrency"
	"github.com/osse101/stardust-engine/internal/domain"
	"github.com/osse101/stardust-engine/internal/event"
	"github.com/osse101/stardust-engine/internal/logger"
	"github.com/osse101/stardust-engine/internal/repository"
)

// Log messages
const (
	LogMsgAssetMinted      = "Asset minted"
	LogMsgAssetTransferred = "Asset transferred"
	LogMsgAssetRejected    = "Asset operation rejected"
)

// MintSourcePlayer tags assets minted directly by a player
const MintSourcePlayer = "mint"

const lockKeyFormat = "asset:%d"

// Service defines the asset registry operations
type Service interface {
	Mint(ctx context.Context, caller string, tmpl domain.AssetTemplate) (*domain.GameAsset, error)
	Transfer(ctx context.Context, caller string, assetID uint64, to string) (*domain.GameAsset, error)

	// GetAsset returns nil without an error when the asset does not exist
	GetAsset(ctx context.Context, assetID uint64) (*domain.GameAsset, error)
	ListByOwner(ctx context.Context, owner string) ([]domain.GameAsset, error)
}

type service struct {
	store     repository.Store
	publisher event.Publisher
	locks     *concurrency.LockManager
	now       func() time.Time
}

// NewService creates a new asset service
func NewService(store repository.Store, publisher event.Publisher, locks *concurrency.LockManager) Service {
	return &service{
		store:     store,
		publisher: publisher,
		locks:     locks,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Mint creates a level 1 asset owned by the caller
func (s *service) Mint(ctx context.Context, caller string, tmpl domain.AssetTemplate) (*domain.GameAsset, error) {
	if err := tmpl.Validate(); err != nil {
		logRejection(ctx, "mint", err)
		return nil, err
	}

	var minted *domain.GameAsset
	err := repository.RunInTx(ctx, s.store, func(tx repository.Tx) error {
		p, err := requirePlayer(ctx, tx, caller, domain.ErrNotRegistered)
		if err != nil {
			return err
		}
		minted, err = tx.CreateAsset(ctx, domain.NewAsset(caller, tmpl, s.now()))
		if err != nil {
			return fmt.Errorf("failed to create asset: %w", err)
		}
		p.AssetsOwned++
		return tx.UpdatePlayer(ctx, *p)
	})
	if err != nil {
		logRejection(ctx, "mint", err)
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgAssetMinted, "asset_id", minted.ID, "owner", caller,
		"asset_type", minted.Type, "rarity", minted.Rarity)
	s.publisher.PublishWithRetry(ctx, event.NewAssetMintedEvent(*minted, MintSourcePlayer))
	return minted, nil
}

// Transfer moves an asset from its owner to another registered player
func (s *service) Transfer(ctx context.Context, caller string, assetID uint64, to string) (*domain.GameAsset, error) {
	if caller == to {
		return nil, domain.ErrSelfTarget
	}

	unlock := s.locks.Lock(fmt.Sprintf(lockKeyFormat, assetID))
	defer unlock()

	var moved domain.GameAsset
	err := repository.RunInTx(ctx, s.store, func(tx repository.Tx) error {
		a, err := tx.GetAsset(ctx, assetID)
		if err != nil {
			return err
		}
		if a.Owner != caller {
			return fmt.Errorf("%w: asset %d", domain.ErrAssetNotOwned, assetID)
		}
		from, err := requirePlayer(ctx, tx, caller, domain.ErrNotRegistered)
		if err != nil {
			return err
		}
		recipient, err := requirePlayer(ctx, tx, to, domain.ErrRecipientNotFound)
		if err != nil {
			return err
		}

		moved = *a
		moved.Owner = to
		if err := tx.UpdateAsset(ctx, moved); err != nil {
			return fmt.Errorf("failed to update asset: %w", err)
		}
		if from.AssetsOwned > 0 {
			from.AssetsOwned--
		}
		recipient.AssetsOwned++
		if err := tx.UpdatePlayer(ctx, *from); err != nil {
			return err
		}
		return tx.UpdatePlayer(ctx, *recipient)
	})
	if err != nil {
		logRejection(ctx, "transfer", err)
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgAssetTransferred, "asset_id", assetID, "from", caller, "to", to)
	s.publisher.PublishWithRetry(ctx, event.NewAssetTransferredEvent(assetID, caller, to))
	return &moved, nil
}

func (s *service) GetAsset(ctx context.Context, assetID uint64) (*domain.GameAsset, error) {
	a, err := s.store.GetAsset(ctx, assetID)
	if errors.Is(err, domain.ErrAssetNotFound) {
		return nil, nil
	}
	return a, err
}

func (s *service) ListByOwner(ctx context.Context, owner string) ([]domain.GameAsset, error) {
	assets, err := s.store.ListAssetsByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	if assets == nil {
		assets = []domain.GameAsset{}
	}
	return assets, nil
}

func requirePlayer(ctx context.Context, tx repository.Players, address string, missing error) (*domain.Player, error) {
	p, err := tx.GetPlayer(ctx, address)
	if errors.Is(err, domain.ErrPlayerNotFound) {
		return nil, fmt.Errorf("%w: %s", missing, address)
	}
	return p, err
}

func logRejection(ctx context.Context, op string, err error) {
	log := logger.FromContext(ctx)
	if errors.Is(err, domain.ErrPrecondition) {
		log.Debug(LogMsgAssetRejected, "operation", op, "reason", err)
		return
	}
	log.Error(LogMsgAssetRejected, "operation", op, "error", err)
}
