package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/stardust-engine/internal/domain"
)

const battleColumns = `id, attacker, defender, attacker_assets, defender_assets, battle_type, status,
	turn, created_at, winner, loser, resolved_at`

func scanBattle(row pgx.Row) (*domain.Battle, error) {
	var (
		b                         domain.Battle
		id                        int64
		attackerAssets, defAssets []int64
		kind, status              string
		winner, loser             *string
		resolvedAt                *time.Time
	)
	err := row.Scan(&id, &b.Attacker, &b.Defender, &attackerAssets, &defAssets, &kind, &status,
		&b.Turn, &b.CreatedAt, &winner, &loser, &resolvedAt)
	if err != nil {
		return nil, err
	}
	b.ID = uint64(id)
	b.AttackerAssets = toUint64s(attackerAssets)
	b.DefenderAssets = toUint64s(defAssets)
	b.Kind = domain.BattleKind(kind)
	b.Status = domain.BattleStatus(status)
	b.Winner = derefString(winner)
	b.Loser = derefString(loser)
	b.ResolvedAt = resolvedAt
	return &b, nil
}

func (q *queries) GetBattle(ctx context.Context, id uint64) (*domain.Battle, error) {
	row := q.db.QueryRow(ctx, `SELECT `+battleColumns+` FROM battles WHERE id = $1`+q.forUpdate(), int64(id))
	b, err := scanBattle(row)
	if err != nil {
		return nil, notFoundOr(err, domain.ErrBattleNotFound, id, ErrMsgFailedToGetBattle)
	}

	b.Moves, err = q.listMoves(ctx, id)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (q *queries) listMoves(ctx context.Context, battleID uint64) ([]domain.BattleMove, error) {
	rows, err := q.db.Query(ctx, `
		SELECT turn, player, asset_id, move_type, target_asset, created_at
		FROM battle_moves
		WHERE battle_id = $1
		ORDER BY seq`, int64(battleID))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetMoves, err)
	}
	moves, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.BattleMove, error) {
		var (
			m       domain.BattleMove
			assetID int64
			kind    string
			target  *int64
		)
		if err := row.Scan(&m.Turn, &m.Player, &assetID, &kind, &target, &m.Timestamp); err != nil {
			return domain.BattleMove{}, err
		}
		m.AssetID = uint64(assetID)
		m.Kind = domain.MoveKind(kind)
		if target != nil {
			t := uint64(*target)
			m.TargetAsset = &t
		}
		return m, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetMoves, err)
	}
	return moves, nil
}

func (q *queries) ListBattleIDsByPlayer(ctx context.Context, address string) ([]uint64, error) {
	rows, err := q.db.Query(ctx, `SELECT id FROM battles WHERE attacker = $1 OR defender = $1 ORDER BY id`, address)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListBattles, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListBattles, err)
	}
	return toUint64s(ids), nil
}

func (q *queries) CreateBattle(ctx context.Context, b domain.Battle) (*domain.Battle, error) {
	var id int64
	err := q.db.QueryRow(ctx, `
		INSERT INTO battles (attacker, defender, attacker_assets, defender_assets, battle_type, status,
			turn, created_at, winner, loser, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		b.Attacker, b.Defender, toInt64s(b.AttackerAssets), toInt64s(b.DefenderAssets),
		string(b.Kind), string(b.Status), b.Turn, b.CreatedAt,
		nullString(b.Winner), nullString(b.Loser), b.ResolvedAt,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToInsertBattle, err)
	}

	out := b.Clone()
	out.ID = uint64(id)
	if err := q.appendMoves(ctx, out.ID, out.Moves, 0); err != nil {
		return nil, err
	}
	return &out, nil
}

func (q *queries) UpdateBattle(ctx context.Context, b domain.Battle) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE battles
		SET attacker_assets = $2, defender_assets = $3, status = $4, turn = $5,
			winner = $6, loser = $7, resolved_at = $8
		WHERE id = $1`,
		int64(b.ID), toInt64s(b.AttackerAssets), toInt64s(b.DefenderAssets), string(b.Status), b.Turn,
		nullString(b.Winner), nullString(b.Loser), b.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateBattle, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %d", domain.ErrBattleNotFound, b.ID)
	}

	var stored int
	if err := q.db.QueryRow(ctx, `SELECT COUNT(*) FROM battle_moves WHERE battle_id = $1`, int64(b.ID)).Scan(&stored); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCountMoves, err)
	}
	return q.appendMoves(ctx, b.ID, b.Moves, stored)
}

// appendMoves writes moves[from:]. The move log is append-only, so anything
// before from is already stored.
func (q *queries) appendMoves(ctx context.Context, battleID uint64, moves []domain.BattleMove, from int) error {
	for seq := from; seq < len(moves); seq++ {
		m := moves[seq]
		var target *int64
		if m.TargetAsset != nil {
			t := int64(*m.TargetAsset)
			target = &t
		}
		_, err := q.db.Exec(ctx, `
			INSERT INTO battle_moves (battle_id, seq, turn, player, asset_id, move_type, target_asset, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			int64(battleID), seq, m.Turn, m.Player, int64(m.AssetID), string(m.Kind), target, m.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToAppendMove, err)
		}
	}
	return nil
}
