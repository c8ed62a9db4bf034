package reward

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/stardust-engine/internal/domain"
	"github.com/osse101/stardust-engine/internal/logger"
	"github.com/osse101/stardust-engine/internal/repository"
)

// Grant is the result of applying a reward list
type Grant struct {
	Player domain.Player
	Minted []domain.GameAsset
}

// Dispatcher applies rewards inside a caller-owned transaction
type Dispatcher struct {
	now func() time.Time
}

// NewDispatcher creates a dispatcher using the wall clock for mint times
func NewDispatcher() *Dispatcher {
	return &Dispatcher{now: func() time.Time { return time.Now().UTC() }}
}

// Apply applies one reward to the player. Asset rewards are minted through tx;
// the returned player still has to be written by the caller.
func (d *Dispatcher) Apply(ctx context.Context, tx repository.Assets, p domain.Player, r domain.Reward) (domain.Player, *domain.GameAsset, error) {
	switch v := r.(type) {
	case domain.ExperienceReward:
		return WithExperience(p, v.Amount), nil, nil
	case domain.PointsReward:
		return WithPoints(p, v.Amount), nil, nil
	case domain.TitleReward:
		if v.Title == "" {
			return p, nil, domain.ErrRewardMissingTitle
		}
		return WithTitle(p, v.Title), nil, nil
	case domain.AssetReward:
		if err := v.Template.Validate(); err != nil {
			return p, nil, fmt.Errorf("%w: %v", domain.ErrRewardMissingAsset, err)
		}
		asset, err := tx.CreateAsset(ctx, domain.NewAsset(p.Address, v.Template, d.now()))
		if err != nil {
			return p, nil, fmt.Errorf("failed to mint reward asset: %w", err)
		}
		p = p.Clone()
		p.AssetsOwned++
		return p, asset, nil
	default:
		return p, nil, fmt.Errorf("%w: %T", domain.ErrInvalidRewardKind, r)
	}
}

// ApplyAll validates every reward, applies them in order and writes the
// player once. A reward that fails validation aborts before anything is applied.
func (d *Dispatcher) ApplyAll(ctx context.Context, tx repository.Tx, p domain.Player, rewards []domain.Reward) (Grant, error) {
	for i, r := range rewards {
		if err := domain.ValidateReward(r); err != nil {
			logger.FromContext(ctx).Error("Unresolvable reward in catalog", "index", i, "player", p.Address, "error", err)
			return Grant{}, fmt.Errorf("reward %d: %w", i, err)
		}
	}

	grant := Grant{Player: p}
	for i, r := range rewards {
		updated, minted, err := d.Apply(ctx, tx, grant.Player, r)
		if err != nil {
			return Grant{}, fmt.Errorf("reward %d: %w", i, err)
		}
		grant.Player = updated
		if minted != nil {
			grant.Minted = append(grant.Minted, *minted)
		}
	}

	if err := tx.UpdatePlayer(ctx, grant.Player); err != nil {
		return Grant{}, fmt.Errorf("failed to update player: %w", err)
	}
	return grant, nil
}
