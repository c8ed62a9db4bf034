package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/stardust-engine/internal/domain"
)

const assetColumns = `id, owner, asset_type, rarity, name, description, created_at, level, experience`

func scanAsset(row pgx.Row) (domain.GameAsset, error) {
	var (
		a                 domain.GameAsset
		id                int64
		assetType, rarity string
	)
	err := row.Scan(&id, &a.Owner, &assetType, &rarity, &a.Name, &a.Description, &a.CreatedAt, &a.Level, &a.Experience)
	if err != nil {
		return domain.GameAsset{}, err
	}
	a.ID = uint64(id)
	a.Type = domain.AssetType(assetType)
	a.Rarity = domain.Rarity(rarity)
	return a, nil
}

func (q *queries) GetAsset(ctx context.Context, id uint64) (*domain.GameAsset, error) {
	row := q.db.QueryRow(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`+q.forUpdate(), int64(id))
	a, err := scanAsset(row)
	if err != nil {
		return nil, notFoundOr(err, domain.ErrAssetNotFound, id, ErrMsgFailedToGetAsset)
	}
	return &a, nil
}

func (q *queries) ListAssetsByOwner(ctx context.Context, owner string) ([]domain.GameAsset, error) {
	rows, err := q.db.Query(ctx, `SELECT `+assetColumns+` FROM assets WHERE owner = $1 ORDER BY id`, owner)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListAssets, err)
	}
	assets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.GameAsset, error) {
		return scanAsset(row)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanAssetList, err)
	}
	return assets, nil
}

func (q *queries) CreateAsset(ctx context.Context, a domain.GameAsset) (*domain.GameAsset, error) {
	var id int64
	err := q.db.QueryRow(ctx, `
		INSERT INTO assets (owner, asset_type, rarity, name, description, created_at, level, experience)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		a.Owner, string(a.Type), string(a.Rarity), a.Name, a.Description, a.CreatedAt, a.Level, a.Experience,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToInsertAsset, err)
	}
	a.ID = uint64(id)
	return &a, nil
}

func (q *queries) UpdateAsset(ctx context.Context, a domain.GameAsset) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE assets
		SET owner = $2, asset_type = $3, rarity = $4, name = $5, description = $6, level = $7, experience = $8
		WHERE id = $1`,
		int64(a.ID), a.Owner, string(a.Type), string(a.Rarity), a.Name, a.Description, a.Level, a.Experience,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateAsset, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %d", domain.ErrAssetNotFound, a.ID)
	}
	return nil
}
