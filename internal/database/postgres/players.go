package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/stardust-engine/internal/domain"
)

const playerColumns = `address, level, experience, games_played, games_won, assets_owned,
	achievements, points, titles, registered_at`

func scanPlayer(row pgx.Row) (*domain.Player, error) {
	var p domain.Player
	err := row.Scan(
		&p.Address,
		&p.Level,
		&p.Experience,
		&p.GamesPlayed,
		&p.GamesWon,
		&p.AssetsOwned,
		&p.Achievements,
		&p.Points,
		&p.Titles,
		&p.RegisteredAt,
	)
	if err != nil {
		return nil, err
	}
	p.Achievements = nonNil(p.Achievements)
	p.Titles = nonNil(p.Titles)
	return &p, nil
}

func (q *queries) GetPlayer(ctx context.Context, address string) (*domain.Player, error) {
	row := q.db.QueryRow(ctx, `SELECT `+playerColumns+` FROM players WHERE address = $1`+q.forUpdate(), address)
	p, err := scanPlayer(row)
	if err != nil {
		return nil, notFoundOr(err, domain.ErrPlayerNotFound, address, ErrMsgFailedToGetPlayer)
	}
	return p, nil
}

func (q *queries) CreatePlayer(ctx context.Context, p domain.Player) error {
	tag, err := q.db.Exec(ctx, `
		INSERT INTO players (`+playerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (address) DO NOTHING`,
		p.Address, p.Level, p.Experience, p.GamesPlayed, p.GamesWon, p.AssetsOwned,
		nonNil(p.Achievements), p.Points, nonNil(p.Titles), p.RegisteredAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertPlayer, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrAlreadyRegistered, p.Address)
	}
	return nil
}

func (q *queries) UpdatePlayer(ctx context.Context, p domain.Player) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE players
		SET level = $2, experience = $3, games_played = $4, games_won = $5, assets_owned = $6,
			achievements = $7, points = $8, titles = $9
		WHERE address = $1`,
		p.Address, p.Level, p.Experience, p.GamesPlayed, p.GamesWon, p.AssetsOwned,
		nonNil(p.Achievements), p.Points, nonNil(p.Titles),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdatePlayer, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPlayerNotFound, p.Address)
	}
	return nil
}

func (q *queries) GetPlatformStats(ctx context.Context) (domain.PlatformStats, error) {
	var st domain.PlatformStats
	err := q.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM players),
			(SELECT COUNT(*) FROM assets),
			(SELECT COUNT(*) FROM battles),
			(SELECT COUNT(*) FROM mission_templates)`,
	).Scan(&st.TotalPlayers, &st.TotalAssets, &st.TotalBattles, &st.TotalMissions)
	if err != nil {
		return domain.PlatformStats{}, fmt.Errorf("%s: %w", ErrMsgFailedToGetPlatform, err)
	}
	return st, nil
}
