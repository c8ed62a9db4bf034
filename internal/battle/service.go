// Package battle runs the battle state machine: challenge, accept, alternating
// moves and synchronous resolution with experience grants.
package battle

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/osse101/stardust-engine/internal/concurrency"
	"github.com/osse101/stardust-engine/internal/domain"
	"github.com/osse101/stardust-engine/internal/event"
	"github.com/osse101/stardust-engine/internal/logger"
	"github.com/osse101/stardust-engine/internal/repository"
	"github.com/osse101/stardust-engine/internal/reward"
	"github.com/osse101/stardust-engine/internal/valuation"
)

// Service defines the battle operations
type Service interface {
	Initiate(ctx context.Context, caller, opponent string, assetIDs []uint64, kind domain.BattleKind) (*domain.Battle, error)
	Accept(ctx context.Context, caller string, battleID uint64, assetIDs []uint64) (*domain.Battle, error)
	SubmitMove(ctx context.Context, caller string, battleID, assetID uint64, kind domain.MoveKind, target *uint64) (*MoveResult, error)

	// GetBattle returns nil without an error when the battle does not exist
	GetBattle(ctx context.Context, battleID uint64) (*domain.Battle, error)
	ListPlayerBattles(ctx context.Context, address string) ([]uint64, error)
	AssetPower(ctx context.Context, assetID uint64) (uint64, error)
}

// MoveResult is the battle after a move. Outcome is set when the move resolved it.
type MoveResult struct {
	Battle  domain.Battle         `json:"battle"`
	Move    domain.BattleMove     `json:"move"`
	Outcome *domain.BattleOutcome `json:"outcome,omitempty"`
}

type service struct {
	store     repository.Store
	publisher event.Publisher
	locks     *concurrency.LockManager
	now       func() time.Time
}

// NewService creates a new battle service
func NewService(store repository.Store, publisher event.Publisher, locks *concurrency.LockManager) Service {
	return &service{
		store:     store,
		publisher: publisher,
		locks:     locks,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Initiate opens a challenge against opponent with the caller's committed assets
func (s *service) Initiate(ctx context.Context, caller, opponent string, assetIDs []uint64, kind domain.BattleKind) (*domain.Battle, error) {
	log := logger.FromContext(ctx)

	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidBattleKind, kind)
	}
	if caller == opponent {
		return nil, domain.ErrSelfTarget
	}
	if err := checkAssetSet(assetIDs); err != nil {
		return nil, err
	}

	var created *domain.Battle
	err := repository.RunInTx(ctx, s.store, func(tx repository.Tx) error {
		if err := requireRegistered(ctx, tx, caller); err != nil {
			return err
		}
		if err := requireRegistered(ctx, tx, opponent); err != nil {
			return err
		}
		if _, err := ownedAssets(ctx, tx, caller, assetIDs); err != nil {
			return err
		}

		b, err := tx.CreateBattle(ctx, domain.Battle{
			Attacker:       caller,
			Defender:       opponent,
			AttackerAssets: slices.Clone(assetIDs),
			DefenderAssets: []uint64{},
			Kind:           kind,
			Status:         domain.BattleWaitingForDefender,
			Turn:           domain.FirstBattleTurn,
			CreatedAt:      s.now(),
			Moves:          []domain.BattleMove{},
		})
		if err != nil {
			return fmt.Errorf("failed to create battle: %w", err)
		}
		created = b
		return nil
	})
	if err != nil {
		logRejection(ctx, "initiate", err)
		return nil, err
	}

	log.Info(LogMsgBattleInitiated, "battle_id", created.ID, "attacker", caller, "defender", opponent, "battle_type", kind)
	s.publisher.PublishWithRetry(ctx, event.NewBattleInitiatedEvent(*created))
	return created, nil
}

// Accept commits the defender's assets and activates the battle
func (s *service) Accept(ctx context.Context, caller string, battleID uint64, assetIDs []uint64) (*domain.Battle, error) {
	log := logger.FromContext(ctx)

	if err := checkAssetSet(assetIDs); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(fmt.Sprintf(lockKeyFormat, battleID))
	defer unlock()

	var accepted *domain.Battle
	err := repository.RunInTx(ctx, s.store, func(tx repository.Tx) error {
		b, err := tx.GetBattle(ctx, battleID)
		if err != nil {
			return err
		}
		if b.Defender != caller {
			return domain.ErrNotDefender
		}
		if b.Status != domain.BattleWaitingForDefender {
			return fmt.Errorf("%w: status %s", domain.ErrBattleNotWaiting, b.Status)
		}
		if _, err := ownedAssets(ctx, tx, caller, assetIDs); err != nil {
			return err
		}

		b.DefenderAssets = slices.Clone(assetIDs)
		b.Status = domain.BattleActive
		if err := tx.UpdateBattle(ctx, *b); err != nil {
			return fmt.Errorf("failed to update battle: %w", err)
		}
		accepted = b
		return nil
	})
	if err != nil {
		logRejection(ctx, "accept", err)
		return nil, err
	}

	log.Info(LogMsgBattleAccepted, "battle_id", battleID, "defender", caller)
	s.publisher.PublishWithRetry(ctx, event.NewBattleAcceptedEvent(*accepted))
	return accepted, nil
}

// SubmitMove appends a move for the side whose turn it is. When the turn or
// move limit is reached the battle resolves before this call returns.
func (s *service) SubmitMove(ctx context.Context, caller string, battleID, assetID uint64, kind domain.MoveKind, target *uint64) (*MoveResult, error) {
	log := logger.FromContext(ctx)

	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidMoveKind, kind)
	}

	unlock := s.locks.Lock(fmt.Sprintf(lockKeyFormat, battleID))
	defer unlock()

	var result MoveResult
	err := repository.RunInTx(ctx, s.store, func(tx repository.Tx) error {
		b, err := tx.GetBattle(ctx, battleID)
		if err != nil {
			return err
		}
		if b.Status != domain.BattleActive {
			return fmt.Errorf("%w: status %s", domain.ErrBattleNotActive, b.Status)
		}
		if b.PlayerToMove() != caller {
			return fmt.Errorf("%w: turn %d", domain.ErrNotYourTurn, b.Turn)
		}
		if !slices.Contains(b.AssetsToMove(), assetID) {
			return fmt.Errorf("%w: %d", domain.ErrAssetNotInBattle, assetID)
		}

		move := domain.BattleMove{
			Turn:        b.Turn,
			Player:      caller,
			AssetID:     assetID,
			Kind:        kind,
			TargetAsset: target,
			Timestamp:   s.now(),
		}
		b.Moves = append(b.Moves, move)
		b.Turn++
		result.Move = move

		if b.ShouldResolve() {
			outcome, err := s.resolve(ctx, tx, b)
			if err != nil {
				return err
			}
			result.Outcome = &outcome
		}

		if err := tx.UpdateBattle(ctx, *b); err != nil {
			return fmt.Errorf("failed to update battle: %w", err)
		}
		result.Battle = *b
		return nil
	})
	if err != nil {
		logRejection(ctx, "move", err)
		return nil, err
	}

	log.Debug(LogMsgMoveSubmitted, "battle_id", battleID, "turn", result.Move.Turn, "move_type", kind)
	s.publisher.PublishWithRetry(ctx, event.NewBattleMoveMadeEvent(battleID, result.Move))

	if result.Outcome != nil {
		log.Info(LogMsgBattleResolved,
			"battle_id", battleID,
			"winner", result.Outcome.Winner,
			"attacker_power", result.Outcome.AttackerPower,
			"defender_power", result.Outcome.DefenderPower)
		s.publisher.PublishWithRetry(ctx, event.NewBattleResolvedEvent(result.Battle, *result.Outcome))
	}
	return &result, nil
}

// resolve scores both sides, completes the battle and applies the experience
// grants to both players and every committed asset.
func (s *service) resolve(ctx context.Context, tx repository.Tx, b *domain.Battle) (domain.BattleOutcome, error) {
	attackerAssets, err := loadAssets(ctx, tx, b.AttackerAssets)
	if err != nil {
		return domain.BattleOutcome{}, err
	}
	defenderAssets, err := loadAssets(ctx, tx, b.DefenderAssets)
	if err != nil {
		return domain.BattleOutcome{}, err
	}

	outcome := domain.BattleOutcome{
		BattleID:      b.ID,
		AttackerPower: SidePower(attackerAssets, b.Moves, b.Attacker),
		DefenderPower: SidePower(defenderAssets, b.Moves, b.Defender),
	}
	outcome.Winner, outcome.Loser = Decide(b, outcome.AttackerPower, outcome.DefenderPower)

	resolvedAt := s.now()
	b.Status = domain.BattleCompleted
	b.Winner = outcome.Winner
	b.Loser = outcome.Loser
	b.ResolvedAt = &resolvedAt

	for _, side := range playersInLockOrder(outcome) {
		p, err := tx.GetPlayer(ctx, side.address)
		if err != nil {
			return domain.BattleOutcome{}, fmt.Errorf("failed to get player %s: %w", side.address, err)
		}
		if err := tx.UpdatePlayer(ctx, reward.WithBattleResult(*p, side.won)); err != nil {
			return domain.BattleOutcome{}, fmt.Errorf("failed to update player: %w", err)
		}
	}

	attackerWon := outcome.Winner == b.Attacker
	if err := grantAssetExperience(ctx, tx, attackerAssets, attackerWon); err != nil {
		return domain.BattleOutcome{}, err
	}
	if err := grantAssetExperience(ctx, tx, defenderAssets, !attackerWon); err != nil {
		return domain.BattleOutcome{}, err
	}
	return outcome, nil
}

type playerResult struct {
	address string
	won     bool
}

// playersInLockOrder lists both players by ascending address so that
// concurrent resolutions between the same pair take row locks in one order.
func playersInLockOrder(outcome domain.BattleOutcome) []playerResult {
	winner := playerResult{address: outcome.Winner, won: true}
	loser := playerResult{address: outcome.Loser}
	if loser.address < winner.address {
		return []playerResult{loser, winner}
	}
	return []playerResult{winner, loser}
}

func grantAssetExperience(ctx context.Context, tx repository.Tx, assets []domain.GameAsset, won bool) error {
	amount := reward.LoserAssetExperience
	if won {
		amount = reward.WinnerAssetExperience
	}
	for _, a := range assets {
		if err := tx.UpdateAsset(ctx, reward.AssetWithExperience(a, amount)); err != nil {
			return fmt.Errorf("failed to update asset %d: %w", a.ID, err)
		}
	}
	return nil
}

// GetBattle returns the battle or nil when it does not exist
func (s *service) GetBattle(ctx context.Context, battleID uint64) (*domain.Battle, error) {
	b, err := s.store.GetBattle(ctx, battleID)
	if errors.Is(err, domain.ErrBattleNotFound) {
		return nil, nil
	}
	return b, err
}

// ListPlayerBattles returns the ids of battles the address took part in
func (s *service) ListPlayerBattles(ctx context.Context, address string) ([]uint64, error) {
	ids, err := s.store.ListBattleIDsByPlayer(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to list battles: %w", err)
	}
	if ids == nil {
		ids = []uint64{}
	}
	return ids, nil
}

// AssetPower returns the current power of an asset
func (s *service) AssetPower(ctx context.Context, assetID uint64) (uint64, error) {
	a, err := s.store.GetAsset(ctx, assetID)
	if err != nil {
		return 0, err
	}
	return valuation.AssetPower(*a), nil
}

func checkAssetSet(ids []uint64) error {
	if len(ids) > domain.MaxAssetsPerSide {
		return fmt.Errorf("%w: %d > %d", domain.ErrTooManyAssets, len(ids), domain.MaxAssetsPerSide)
	}
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %d", domain.ErrDuplicateAsset, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func requireRegistered(ctx context.Context, tx repository.Players, address string) error {
	if _, err := tx.GetPlayer(ctx, address); err != nil {
		if errors.Is(err, domain.ErrPlayerNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrNotRegistered, address)
		}
		return fmt.Errorf("failed to get player: %w", err)
	}
	return nil
}

func ownedAssets(ctx context.Context, tx repository.Assets, owner string, ids []uint64) ([]domain.GameAsset, error) {
	assets, err := loadAssets(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	for _, a := range assets {
		if a.Owner != owner {
			return nil, fmt.Errorf("%w: %d", domain.ErrAssetNotOwned, a.ID)
		}
	}
	return assets, nil
}

func loadAssets(ctx context.Context, tx repository.Assets, ids []uint64) ([]domain.GameAsset, error) {
	assets := make([]domain.GameAsset, 0, len(ids))
	for _, id := range ids {
		a, err := tx.GetAsset(ctx, id)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *a)
	}
	return assets, nil
}

func logRejection(ctx context.Context, op string, err error) {
	log := logger.FromContext(ctx)
	if errors.Is(err, domain.ErrPrecondition) {
		log.Debug(LogMsgBattleRejected, "operation", op, "reason", err)
		return
	}
	log.Error(LogMsgBattleRejected, "operation", op, "error", err)
}
