package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/stardust-engine/internal/domain"
)

// Templates are immutable once created, so the whole template is kept as one
// JSONB document next to the columns used for listing.

func decodeTemplate(doc []byte) (domain.MissionTemplate, error) {
	var m domain.MissionTemplate
	if err := json.Unmarshal(doc, &m); err != nil {
		return domain.MissionTemplate{}, fmt.Errorf("%s: %w", ErrMsgFailedToUnmarshalMission, err)
	}
	return m, nil
}

func (q *queries) GetMissionTemplate(ctx context.Context, id uint64) (*domain.MissionTemplate, error) {
	var doc []byte
	err := q.db.QueryRow(ctx, `SELECT document FROM mission_templates WHERE id = $1`, int64(id)).Scan(&doc)
	if err != nil {
		return nil, notFoundOr(err, domain.ErrMissionNotFound, id, ErrMsgFailedToGetMission)
	}
	m, err := decodeTemplate(doc)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (q *queries) ListMissionTemplates(ctx context.Context) ([]domain.MissionTemplate, error) {
	rows, err := q.db.Query(ctx, `SELECT document FROM mission_templates ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListMissions, err)
	}
	docs, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListMissions, err)
	}

	out := make([]domain.MissionTemplate, 0, len(docs))
	for _, doc := range docs {
		m, err := decodeTemplate(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (q *queries) CreateMissionTemplate(ctx context.Context, m domain.MissionTemplate) error {
	doc, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarshalMission, err)
	}
	tag, err := q.db.Exec(ctx, `
		INSERT INTO mission_templates (id, name, chapter, document)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`,
		int64(m.ID), m.Name, m.Chapter, doc,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertMission, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %d", domain.ErrMissionExists, m.ID)
	}
	return nil
}

const playerMissionColumns = `player, mission_id, status, progress, objectives_completed, started_at, completed_at`

func scanPlayerMission(row pgx.Row) (domain.PlayerMission, error) {
	var (
		pm          domain.PlayerMission
		missionID   int64
		status      string
		objectives  []int64
		completedAt *time.Time
	)
	err := row.Scan(&pm.Player, &missionID, &status, &pm.Progress, &objectives, &pm.StartedAt, &completedAt)
	if err != nil {
		return domain.PlayerMission{}, err
	}
	pm.MissionID = uint64(missionID)
	pm.Status = domain.MissionStatus(status)
	pm.CompletedObjectives = toUint64s(objectives)
	pm.CompletedAt = completedAt
	return pm, nil
}

func (q *queries) GetPlayerMission(ctx context.Context, player string, missionID uint64) (*domain.PlayerMission, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+playerMissionColumns+`
		FROM player_missions
		WHERE player = $1 AND mission_id = $2`+q.forUpdate(),
		player, int64(missionID),
	)
	pm, err := scanPlayerMission(row)
	if err != nil {
		return nil, notFoundOr(err, domain.ErrPlayerMissionNotFound, fmt.Sprintf("%s/%d", player, missionID), ErrMsgFailedToGetPlayerMission)
	}
	return &pm, nil
}

func (q *queries) SavePlayerMission(ctx context.Context, pm domain.PlayerMission) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO player_missions (`+playerMissionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (player, mission_id) DO UPDATE
		SET status = EXCLUDED.status,
			progress = EXCLUDED.progress,
			objectives_completed = EXCLUDED.objectives_completed,
			started_at = EXCLUDED.started_at,
			completed_at = EXCLUDED.completed_at`,
		pm.Player, int64(pm.MissionID), string(pm.Status), pm.Progress,
		toInt64s(pm.CompletedObjectives), pm.StartedAt, pm.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSavePlayerMission, err)
	}
	return nil
}

func (q *queries) ListPlayerMissions(ctx context.Context, player string, status domain.MissionStatus) ([]domain.PlayerMission, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+playerMissionColumns+`
		FROM player_missions
		WHERE player = $1 AND status = $2
		ORDER BY mission_id`,
		player, string(status),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPlayerMissions, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.PlayerMission, error) {
		return scanPlayerMission(row)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPlayerMissions, err)
	}
	return out, nil
}

func (q *queries) ListCompletedMissionIDs(ctx context.Context, player string) ([]uint64, error) {
	rows, err := q.db.Query(ctx, `SELECT mission_id FROM completed_missions WHERE player = $1 ORDER BY seq`, player)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListCompleted, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListCompleted, err)
	}
	return toUint64s(ids), nil
}

func (q *queries) AddCompletedMission(ctx context.Context, player string, missionID uint64) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO completed_missions (player, mission_id)
		VALUES ($1, $2)
		ON CONFLICT (player, mission_id) DO NOTHING`,
		player, int64(missionID),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToAddCompleted, err)
	}
	return nil
}
