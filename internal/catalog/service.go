// Package catalog holds the immutable mission templates. Setup operations are
// admin gated; reads go through a small expiring cache.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/stardust-engine/internal/admin"
	"github.com/osse101/stardust-engine/internal/domain"
	"github.com/osse101/stardust-engine/internal/event"
	"github.com/osse101/stardust-engine/internal/logger"
	"github.com/osse101/stardust-engine/internal/repository"
)

// Service defines the mission catalog operations
type Service interface {
	Create(ctx context.Context, caller string, tmpl domain.MissionTemplate) (*domain.MissionTemplate, error)
	// InitializeChapterMissions seeds the catalog and returns the ids it created.
	// Templates that already exist are left untouched.
	InitializeChapterMissions(ctx context.Context, caller string) ([]uint64, error)

	// Get returns nil without an error when the template does not exist
	Get(ctx context.Context, id uint64) (*domain.MissionTemplate, error)
	List(ctx context.Context) ([]domain.MissionTemplate, error)
}

// Options tune the catalog. Zero values fall back to the defaults.
type Options struct {
	SeedPath  string
	CacheSize int
	CacheTTL  time.Duration
}

type service struct {
	store     repository.Store
	gate      *admin.Gate
	publisher event.Publisher
	cache     *templateCache
	seedPath  string
}

// NewService creates a new catalog service
func NewService(store repository.Store, gate *admin.Gate, publisher event.Publisher, opts Options) Service {
	size := opts.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &service{
		store:     store,
		gate:      gate,
		publisher: publisher,
		cache:     newTemplateCache(size, ttl),
		seedPath:  opts.SeedPath,
	}
}

// Create validates and stores a new template
func (s *service) Create(ctx context.Context, caller string, tmpl domain.MissionTemplate) (*domain.MissionTemplate, error) {
	if err := s.gate.RequireAdmin(caller); err != nil {
		logRejection(ctx, "create", err)
		return nil, err
	}
	if err := tmpl.Validate(); err != nil {
		logRejection(ctx, "create", err)
		return nil, err
	}

	err := repository.RunInTx(ctx, s.store, func(tx repository.Tx) error {
		return tx.CreateMissionTemplate(ctx, tmpl)
	})
	if err != nil {
		logRejection(ctx, "create", err)
		return nil, err
	}

	s.cache.Set(tmpl)
	logger.FromContext(ctx).Info(LogMsgMissionCreated, "mission_id", tmpl.ID, "name", tmpl.Name, "chapter", tmpl.Chapter)
	s.publisher.PublishWithRetry(ctx, event.NewMissionCreatedEvent(tmpl, caller))
	return &tmpl, nil
}

func (s *service) InitializeChapterMissions(ctx context.Context, caller string) ([]uint64, error) {
	log := logger.FromContext(ctx)

	if err := s.gate.RequireAdmin(caller); err != nil {
		logRejection(ctx, "initialize", err)
		return nil, err
	}

	templates, err := LoadFile(s.seedPath)
	if err != nil {
		log.Error(LogMsgCatalogRejected, "operation", "initialize", "path", s.seedPath, "error", err)
		return nil, err
	}
	for i := range templates {
		if err := templates[i].Validate(); err != nil {
			log.Error(LogMsgCatalogRejected, "operation", "initialize", "mission_id", templates[i].ID, "error", err)
			return nil, fmt.Errorf("seed mission %d: %w", templates[i].ID, err)
		}
	}

	var created []domain.MissionTemplate
	err = repository.RunInTx(ctx, s.store, func(tx repository.Tx) error {
		created = created[:0]
		for _, tmpl := range templates {
			if _, err := tx.GetMissionTemplate(ctx, tmpl.ID); err == nil {
				log.Debug(LogMsgMissionSkipped, "mission_id", tmpl.ID)
				continue
			} else if !errors.Is(err, domain.ErrMissionNotFound) {
				return err
			}
			if err := tx.CreateMissionTemplate(ctx, tmpl); err != nil {
				return fmt.Errorf("failed to create mission %d: %w", tmpl.ID, err)
			}
			created = append(created, tmpl)
		}
		return nil
	})
	if err != nil {
		logRejection(ctx, "initialize", err)
		return nil, err
	}

	ids := make([]uint64, 0, len(created))
	for _, tmpl := range created {
		ids = append(ids, tmpl.ID)
		s.cache.Set(tmpl)
		s.publisher.PublishWithRetry(ctx, event.NewMissionCreatedEvent(tmpl, caller))
	}
	log.Info(LogMsgCatalogInitialized, "created", len(ids), "total", len(templates))
	return ids, nil
}

func (s *service) Get(ctx context.Context, id uint64) (*domain.MissionTemplate, error) {
	if tmpl, ok := s.cache.Get(id); ok {
		return &tmpl, nil
	}

	tmpl, err := s.store.GetMissionTemplate(ctx, id)
	if errors.Is(err, domain.ErrMissionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mission %d: %w", id, err)
	}
	s.cache.Set(*tmpl)
	return tmpl, nil
}

func (s *service) List(ctx context.Context) ([]domain.MissionTemplate, error) {
	templates, err := s.store.ListMissionTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list missions: %w", err)
	}
	if templates == nil {
		templates = []domain.MissionTemplate{}
	}
	return templates, nil
}

func logRejection(ctx context.Context, op string, err error) {
	log := logger.FromContext(ctx)
	if errors.Is(err, domain.ErrPrecondition) {
		log.Debug(LogMsgCatalogRejected, "operation", op, "reason", err)
		return
	}
	log.Error(LogMsgCatalogRejected, "operation", op, "error", err)
}
