// Package quest runs per-player mission instances: starting missions,
// validating objective proofs and paying out rewards on completion.
package quest

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
)

// Service defines the quest operations
type Service interface {
	Start(ctx context.Context, caller string, missionID uint64) (*domain.PlayerMission, error)
	CompleteObjective(ctx context.Context, caller string, missionID, objectiveID uint64, proofAssets []uint64) (*ObjectiveResult, error)

	ListActiveMissions(ctx context.Context, address string) ([]domain.PlayerMission, error)
	// ListAvailableMissions filters the whole catalog against the player's current state
	ListAvailableMissions(ctx context.Context, address string) ([]uint64, error)
	ListCompletedMissions(ctx context.Context, address string) ([]uint64, error)
}

// ObjectiveResult is the mission after an objective was recorded. Grant is set
// when the objective completed the mission.
type ObjectiveResult struct {
	Mission domain.PlayerMission `json:"mission"`
	Grant   *CompletionGrant     `json:"grant,omitempty"`
}

// CompletionGrant summarizes what a completed mission paid out
type CompletionGrant struct {
	Player domain.Player      `json:"player"`
	Minted []domain.GameAsset `json:"minted"`
}

type service struct {
	store      repository.Store
	publisher  event.Publisher
	locks      *concurrency.LockManager
	dispatcher *reward.Dispatcher
	now        func() time.Time
}

// NewService creates a new quest service
func NewService(store repository.Store, publisher event.Publisher, locks *concurrency.LockManager, dispatcher *reward.Dispatcher) Service {
	return &service{
		store:      store,
		publisher:  publisher,
		locks:      locks,
		dispatcher: dispatcher,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Start creates an active mission instance once every requirement is met
func (s *service) Start(ctx context.Context, caller string, missionID uint64) (*domain.PlayerMission, error) {
	unlock := s.locks.Lock(fmt.Sprintf(lockKeyFormat, caller))
	defer unlock()

	var started *domain.PlayerMission
	err := repository.RunInTx(ctx, s.store, func(tx repository.Tx) error {
		p, err := requirePlayer(ctx, tx, caller)
		if err != nil {
			return err
		}

		existing, err := tx.GetPlayerMission(ctx, caller, missionID)
		if err != nil && !errors.Is(err, domain.ErrPlayerMissionNotFound) {
			return err
		}
		if existing != nil && existing.Status == domain.MissionActive {
			return fmt.Errorf("%w: mission %d", domain.ErrMissionAlreadyActive, missionID)
		}

		tmpl, err := tx.GetMissionTemplate(ctx, missionID)
		if err != nil {
			return err
		}
		if err := checkRequirements(ctx, tx, p, tmpl); err != nil {
			return err
		}

		pm := domain.PlayerMission{
			Player:              caller,
			MissionID:           missionID,
			Status:              domain.MissionActive,
			Progress:            0,
			CompletedObjectives: []uint64{},
			StartedAt:           s.now(),
		}
		if err := tx.SavePlayerMission(ctx, pm); err != nil {
			return fmt.Errorf("failed to save player mission: %w", err)
		}
		started = &pm
		return nil
	})
	if err != nil {
		logRejection(ctx, "start", err)
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgMissionStarted, "player", caller, "mission_id", missionID)
	s.publisher.PublishWithRetry(ctx, event.NewMissionStartedEvent(*started))
	return started, nil
}

// checkRequirements verifies level, prerequisites and required assets
func checkRequirements(ctx context.Context, tx repository.Tx, p *domain.Player, tmpl *domain.MissionTemplate) error {
	if p.Level < tmpl.RequiredLevel {
		return fmt.Errorf("%w: level %d, need %d", domain.ErrLevelTooLow, p.Level, tmpl.RequiredLevel)
	}

	if len(tmpl.Prerequisites) > 0 {
		completed, err := tx.ListCompletedMissionIDs(ctx, p.Address)
		if err != nil {
			return fmt.Errorf("failed to list completed missions: %w", err)
		}
		for _, prereq := range tmpl.Prerequisites {
			if !slices.Contains(completed, prereq) {
				return fmt.Errorf("%w: mission %d", domain.ErrPrerequisiteMissing, prereq)
			}
		}
	}

	if len(tmpl.RequiredAssets) > 0 {
		owned, err := tx.ListAssetsByOwner(ctx, p.Address)
		if err != nil {
			return fmt.Errorf("failed to list assets: %w", err)
		}
		for _, req := range tmpl.RequiredAssets {
			if !req.Satisfied(owned) {
				return fmt.Errorf("%w: %s of rarity %s or better", domain.ErrRequiredAssetMissing, req.Type, req.MinRarity)
			}
		}
	}
	return nil
}

// CompleteObjective records one objective after validating its proof. The
// objective that finishes the mission also pays out its rewards.
func (s *service) CompleteObjective(ctx context.Context, caller string, missionID, objectiveID uint64, proofAssets []uint64) (*ObjectiveResult, error) {
	log := logger.FromContext(ctx)

	unlock := s.locks.Lock(fmt.Sprintf(lockKeyFormat, caller))
	defer unlock()

	var (
		result   ObjectiveResult
		tmpl     *domain.MissionTemplate
		minted   []domain.GameAsset
		finished bool
	)
	err := repository.RunInTx(ctx, s.store, func(tx repository.Tx) error {
		pm, err := tx.GetPlayerMission(ctx, caller, missionID)
		if errors.Is(err, domain.ErrPlayerMissionNotFound) {
			return fmt.Errorf("%w: mission %d", domain.ErrMissionNotActive, missionID)
		}
		if err != nil {
			return err
		}
		if pm.Status != domain.MissionActive {
			return fmt.Errorf("%w: mission %d is %s", domain.ErrMissionNotActive, missionID, pm.Status)
		}
		if pm.ObjectiveDone(objectiveID) {
			return fmt.Errorf("%w: objective %d", domain.ErrObjectiveAlreadyCompleted, objectiveID)
		}

		tmpl, err = tx.GetMissionTemplate(ctx, missionID)
		if err != nil {
			return err
		}
		objective, ok := tmpl.Objective(objectiveID)
		if !ok {
			return fmt.Errorf("%w: objective %d of mission %d", domain.ErrObjectiveNotFound, objectiveID, missionID)
		}

		p, err := requirePlayer(ctx, tx, caller)
		if err != nil {
			return err
		}
		if err := validateObjective(ctx, tx, p, objective, proofAssets); err != nil {
			return err
		}

		updated := pm.Clone()
		updated.CompletedObjectives = append(updated.CompletedObjectives, objectiveID)
		updated.Progress++

		if int(updated.Progress) >= len(tmpl.Objectives) {
			now := s.now()
			updated.Status = domain.MissionCompleted
			updated.CompletedAt = &now

			grant, err := s.completeMission(ctx, tx, *p, tmpl)
			if err != nil {
				return err
			}
			result.Grant = &CompletionGrant{Player: grant.Player, Minted: grant.Minted}
			minted = grant.Minted
			finished = true
		}

		if err := tx.SavePlayerMission(ctx, updated); err != nil {
			return fmt.Errorf("failed to save player mission: %w", err)
		}
		result.Mission = updated
		return nil
	})
	if err != nil {
		logRejection(ctx, "complete_objective", err)
		return nil, err
	}

	log.Info(LogMsgObjectiveCompleted, "player", caller, "mission_id", missionID, "objective_id", objectiveID,
		"progress", result.Mission.Progress)
	s.publisher.PublishWithRetry(ctx, event.NewObjectiveCompletedEvent(result.Mission, objectiveID))

	if finished {
		for _, a := range minted {
			s.publisher.PublishWithRetry(ctx, event.NewAssetMintedEvent(a, MintSourceReward))
		}
		log.Info(LogMsgMissionCompleted, "player", caller, "mission_id", missionID, "chapter", tmpl.Chapter,
			"rewards", len(tmpl.Rewards))
		s.publisher.PublishWithRetry(ctx, event.NewMissionCompletedEvent(result.Mission, *tmpl))
	}
	return &result, nil
}

// completeMission pays out the template rewards in order, grants the chapter 1
// achievement once and moves the mission into the completed set.
func (s *service) completeMission(ctx context.Context, tx repository.Tx, p domain.Player, tmpl *domain.MissionTemplate) (reward.Grant, error) {
	grant, err := s.dispatcher.ApplyAll(ctx, tx, p, tmpl.Rewards)
	if err != nil {
		return reward.Grant{}, err
	}

	if tmpl.Chapter == 1 && !grant.Player.HasAchievement(domain.AchievementChapterOneComplete) {
		grant.Player = reward.WithAchievement(grant.Player, domain.AchievementChapterOneComplete)
		if err := tx.UpdatePlayer(ctx, grant.Player); err != nil {
			return reward.Grant{}, fmt.Errorf("failed to update player: %w", err)
		}
	}

	if err := tx.AddCompletedMission(ctx, p.Address, tmpl.ID); err != nil {
		return reward.Grant{}, fmt.Errorf("failed to record completed mission: %w", err)
	}
	return grant, nil
}

// validateObjective checks the proof against the objective kind
func validateObjective(ctx context.Context, tx repository.Assets, p *domain.Player, o domain.Objective, proof []uint64) error {
	switch o.Kind {
	case domain.ObjectiveCollectAssets:
		if uint64(len(proof)) < o.TargetAmount {
			return fmt.Errorf("%w: %d of %d", domain.ErrInsufficientAssets, len(proof), o.TargetAmount)
		}
		for _, id := range proof {
			a, err := tx.GetAsset(ctx, id)
			if errors.Is(err, domain.ErrAssetNotFound) {
				return fmt.Errorf("%w: asset %d", domain.ErrAssetNotOwned, id)
			}
			if err != nil {
				return err
			}
			if a.Owner != p.Address {
				return fmt.Errorf("%w: asset %d", domain.ErrAssetNotOwned, id)
			}
		}
		return nil
	case domain.ObjectiveWinBattles:
		if uint64(p.GamesWon) < o.TargetAmount {
			return fmt.Errorf("%w: %d of %d", domain.ErrInsufficientBattlesWon, p.GamesWon, o.TargetAmount)
		}
		return nil
	case domain.ObjectiveReachLevel:
		if uint64(p.Level) < o.TargetAmount {
			return fmt.Errorf("%w: level %d, need %d", domain.ErrLevelTooLow, p.Level, o.TargetAmount)
		}
		return nil
	case domain.ObjectiveJoinTournament, domain.ObjectiveExploreTerritory:
		if len(proof) == 0 {
			return fmt.Errorf("%w: %s", domain.ErrProofRequired, o.Kind)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", domain.ErrInvalidObjectiveKind, o.Kind)
	}
}

func (s *service) ListActiveMissions(ctx context.Context, address string) ([]domain.PlayerMission, error) {
	missions, err := s.store.ListPlayerMissions(ctx, address, domain.MissionActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active missions: %w", err)
	}
	if missions == nil {
		missions = []domain.PlayerMission{}
	}
	return missions, nil
}

func (s *service) ListAvailableMissions(ctx context.Context, address string) ([]uint64, error) {
	p, err := s.store.GetPlayer(ctx, address)
	if err != nil {
		return nil, err
	}
	templates, err := s.store.ListMissionTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list missions: %w", err)
	}
	completed, err := s.store.ListCompletedMissionIDs(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed missions: %w", err)
	}
	active, err := s.store.ListPlayerMissions(ctx, address, domain.MissionActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active missions: %w", err)
	}

	available := []uint64{}
	for _, tmpl := range templates {
		if slices.Contains(completed, tmpl.ID) {
			continue
		}
		if slices.ContainsFunc(active, func(pm domain.PlayerMission) bool { return pm.MissionID == tmpl.ID }) {
			continue
		}
		if p.Level < tmpl.RequiredLevel {
			continue
		}
		if !allCompleted(tmpl.Prerequisites, completed) {
			continue
		}
		available = append(available, tmpl.ID)
	}
	return available, nil
}

func (s *service) ListCompletedMissions(ctx context.Context, address string) ([]uint64, error) {
	ids, err := s.store.ListCompletedMissionIDs(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed missions: %w", err)
	}
	if ids == nil {
		ids = []uint64{}
	}
	return ids, nil
}

func allCompleted(required, completed []uint64) bool {
	for _, id := range required {
		if !slices.Contains(completed, id) {
			return false
		}
	}
	return true
}

func requirePlayer(ctx context.Context, tx repository.Players, address string) (*domain.Player, error) {
	p, err := tx.GetPlayer(ctx, address)
	if errors.Is(err, domain.ErrPlayerNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotRegistered, address)
	}
	return p, err
}

func logRejection(ctx context.Context, op string, err error) {
	log := logger.FromContext(ctx)
	if errors.Is(err, domain.ErrPrecondition) {
		log.Debug(LogMsgQuestRejected, "operation", op, "reason", err)
		return
	}
	log.Error(LogMsgQuestRejected, "operation", op, "error", err)
}
