// Package player owns the player registry: registration, admin experience
// grants and the profile and platform views.
package player

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/osse101/stardust-engine/internal/admin"
	"github.com/osse101/stardust-engine/internal/concurrency"
	"github.com/osse101/stardust-engine/internal/domain"
	"github.com/osse101/stardust-engine/internal/event"
	"github.com/osse101/stardust-engine/internal/logger"
	"github.com/osse101/stardust-engine/internal/repository"
	"github.com/osse101/stardust-engine/internal/reward"
)

// Service defines the player registry operations
type Service interface {
	Register(ctx context.Context, caller string) (*domain.Player, error)
	GrantExperience(ctx context.Context, caller, address string, amount uint64) (*domain.Player, error)

	// GetPlayer returns nil without an error when the address is not registered
	GetPlayer(ctx context.Context, address string) (*domain.Player, error)
	// GetProfile returns nil without an error when the address is not registered
	GetProfile(ctx context.Context, address string) (*domain.PlayerProfile, error)
	PlatformStats(ctx context.Context) (domain.PlatformStats, error)
}

type service struct {
	store     repository.Store
	gate      *admin.Gate
	publisher event.Publisher
	locks     *concurrency.LockManager
	now       func() time.Time
}

// NewService creates a new player service
func NewService(store repository.Store, gate *admin.Gate, publisher event.Publisher, locks *concurrency.LockManager) Service {
	return &service{
		store:     store,
		gate:      gate,
		publisher: publisher,
		locks:     locks,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Register creates the caller's player record with the starting point balance
func (s *service) Register(ctx context.Context, caller string) (*domain.Player, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgRegisterCalled, "address", caller)

	address := strings.TrimSpace(caller)
	if address == "" {
		return nil, domain.ErrInvalidAddress
	}

	p := domain.NewPlayer(address, s.now())
	err := repository.RunInTx(ctx, s.store, func(tx repository.Tx) error {
		return tx.CreatePlayer(ctx, p)
	})
	if err != nil {
		logRejection(ctx, "register", err)
		return nil, err
	}

	log.Info(LogMsgPlayerRegistered, "address", address, "points", p.Points)
	s.publisher.PublishWithRetry(ctx, event.NewPlayerRegisteredEvent(p))
	return &p, nil
}

// GrantExperience adds experience to a player. Admin only.
func (s *service) GrantExperience(ctx context.Context, caller, address string, amount uint64) (*domain.Player, error) {
	if err := s.gate.RequireAdmin(caller); err != nil {
		logRejection(ctx, "grant_experience", err)
		return nil, err
	}
	if amount == 0 {
		return nil, domain.ErrInvalidExperience
	}

	unlock := s.locks.Lock(fmt.Sprintf(lockKeyFormat, address))
	defer unlock()

	var (
		updated  domain.Player
		oldLevel uint32
	)
	err := repository.RunInTx(ctx, s.store, func(tx repository.Tx) error {
		p, err := tx.GetPlayer(ctx, address)
		if errors.Is(err, domain.ErrPlayerNotFound) {
			return fmt.Errorf("%w: %s", domain.ErrNotRegistered, address)
		}
		if err != nil {
			return err
		}
		oldLevel = p.Level
		updated = reward.WithExperience(*p, amount)
		return tx.UpdatePlayer(ctx, updated)
	})
	if err != nil {
		logRejection(ctx, "grant_experience", err)
		return nil, err
	}

	logger.FromContext(ctx).Info(LogMsgExperienceGranted, "address", address, "amount", amount,
		"old_level", oldLevel, "new_level", updated.Level)
	s.publisher.PublishWithRetry(ctx, event.NewExperienceGainedEvent(updated, amount, oldLevel))
	return &updated, nil
}

func (s *service) GetPlayer(ctx context.Context, address string) (*domain.Player, error) {
	p, err := s.store.GetPlayer(ctx, address)
	if errors.Is(err, domain.ErrPlayerNotFound) {
		return nil, nil
	}
	return p, err
}

func (s *service) GetProfile(ctx context.Context, address string) (*domain.PlayerProfile, error) {
	p, err := s.GetPlayer(ctx, address)
	if err != nil || p == nil {
		return nil, err
	}
	active, err := s.store.ListPlayerMissions(ctx, address, domain.MissionActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active missions: %w", err)
	}
	return &domain.PlayerProfile{Player: *p, ActiveMissions: len(active)}, nil
}

func (s *service) PlatformStats(ctx context.Context) (domain.PlatformStats, error) {
	return s.store.GetPlatformStats(ctx)
}

func logRejection(ctx context.Context, op string, err error) {
	log := logger.FromContext(ctx)
	if errors.Is(err, domain.ErrPrecondition) {
		log.Debug(LogMsgPlayerRejected, "operation", op, "reason", err)
		return
	}
	log.Error(LogMsgPlayerRejected, "operation", op, "error", err)
}
