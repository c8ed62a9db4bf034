package domain

import (
	"slices"
	"time"
)

// StartingPoints is the point balance granted on registration
const StartingPoints uint64 = 100

// AchievementChapterOneComplete is granted once when any chapter 1 mission completes
const AchievementChapterOneComplete = "Chapter 1 Complete"

// Player holds a registered participant's stats and balances
type Player struct {
	Address      string    `json:"address"`
	Level        uint32    `json:"level"`
	Experience   uint64    `json:"experience"`
	GamesPlayed  uint32    `json:"games_played"`
	GamesWon     uint32    `json:"games_won"`
	AssetsOwned  uint32    `json:"assets_owned"`
	Achievements []string  `json:"achievements"`
	Points       uint64    `json:"points"`
	Titles       []string  `json:"titles"`
	RegisteredAt time.Time `json:"registered_at"`
}

// NewPlayer returns the initial record for a freshly registered address
func NewPlayer(address string, now time.Time) Player {
	return Player{
		Address:      address,
		Level:        1,
		Achievements: []string{},
		Points:       StartingPoints,
		Titles:       []string{},
		RegisteredAt: now,
	}
}

// HasAchievement reports whether the achievement list already contains name
func (p Player) HasAchievement(name string) bool {
	return slices.Contains(p.Achievements, name)
}

// HasTitle reports whether the title set contains name
func (p Player) HasTitle(name string) bool {
	return slices.Contains(p.Titles, name)
}

// Clone returns a deep copy so callers can mutate slices freely
func (p Player) Clone() Player {
	p.Achievements = slices.Clone(p.Achievements)
	p.Titles = slices.Clone(p.Titles)
	return p
}

// PlayerProfile is the aggregated read view of a player
type PlayerProfile struct {
	Player         Player `json:"player"`
	ActiveMissions int    `json:"active_missions"`
}

// PlatformStats are registry-wide totals
type PlatformStats struct {
	TotalPlayers  int64 `json:"total_players"`
	TotalAssets   int64 `json:"total_assets"`
	TotalBattles  int64 `json:"total_battles"`
	TotalMissions int64 `json:"total_missions"`
}
