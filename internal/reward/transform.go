// Package reward applies experience, point, asset and title grants to player
// and asset records. The transforms in this file are pure; Dispatcher is the
// only part that writes.
package reward

import (
	"math"
	"slices"

	"github.com/osse101/stardust-engine/internal/domain"
	"github.com/osse101/stardust-engine/internal/valuation"
)

// Battle resolution grants
const (
	BattleWinExperience   uint64 = 100
	BattleLossExperience  uint64 = 25
	WinnerAssetExperience uint64 = 50
	LoserAssetExperience  uint64 = 10
)

func addSaturating(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

// WithExperience adds experience and recomputes the player level
func WithExperience(p domain.Player, amount uint64) domain.Player {
	p = p.Clone()
	p.Experience = addSaturating(p.Experience, amount)
	p.Level = valuation.PlayerLevel(p.Experience)
	return p
}

// WithBattleResult applies the winner or loser grant of a resolved battle
func WithBattleResult(p domain.Player, won bool) domain.Player {
	if won {
		p = WithExperience(p, BattleWinExperience)
		p.GamesWon++
	} else {
		p = WithExperience(p, BattleLossExperience)
	}
	p.GamesPlayed++
	return p
}

// WithPoints adds to the point balance
func WithPoints(p domain.Player, amount uint64) domain.Player {
	p = p.Clone()
	p.Points = addSaturating(p.Points, amount)
	return p
}

// WithTitle inserts a title; an existing title is left as is
func WithTitle(p domain.Player, title string) domain.Player {
	p = p.Clone()
	if !slices.Contains(p.Titles, title) {
		p.Titles = append(p.Titles, title)
	}
	return p
}

// WithAchievement appends an achievement once
func WithAchievement(p domain.Player, name string) domain.Player {
	p = p.Clone()
	if !p.HasAchievement(name) {
		p.Achievements = append(p.Achievements, name)
	}
	return p
}

// AssetWithExperience adds experience to an asset and recomputes its level
func AssetWithExperience(a domain.GameAsset, amount uint64) domain.GameAsset {
	a.Experience = addSaturating(a.Experience, amount)
	a.Level = valuation.AssetLevel(a.Experience)
	return a
}
