package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/stardust-engine/internal/catalog"
)

// SeedMissionCatalog loads the chapter missions into the catalog as the admin.
// Templates that already exist are left untouched, so running it on every
// start is safe.
func SeedMissionCatalog(ctx context.Context, missions catalog.Service, adminAddress string) ([]uint64, error) {
	slog.Info(LogMsgSeedingMissions)

	created, err := missions.InitializeChapterMissions(ctx, adminAddress)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedSeed, err)
	}

	slog.Info(LogMsgMissionsSeeded, "created", created)
	return created, nil
}
