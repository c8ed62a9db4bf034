package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// notFoundOr maps pgx.ErrNoRows to the domain error and wraps anything else
func notFoundOr(err error, notFound error, key any, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %v", notFound, key)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func toInt64s(ids []uint64) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}

func toUint64s(ids []int64) []uint64 {
	out := make([]uint64, len(ids))
	for i, id := range ids {
		out[i] = uint64(id)
	}
	return out
}

// nonNil keeps NOT NULL array columns from receiving NULL
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nullString stores empty strings as NULL
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
