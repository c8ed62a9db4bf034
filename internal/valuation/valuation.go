// Package valuation holds the pure power and level formulas shared by the
// battle and quest engines. All arithmetic is integer with truncating division.
package valuation

import (
	"math"

	"github.com/osse101/stardust-engine/internal/domain"
)

// Formula constants
const (
	LevelPowerFactor   = 5
	ExperiencePerPower = 100
	AssetLevelDivisor  = 50
	PlayerLevelDivisor = 100
	MinLevel           = 1
)

// BasePower is the rarity component of asset power
var BasePower = map[domain.Rarity]uint64{
	domain.RarityCommon:    10,
	domain.RarityRare:      25,
	domain.RarityEpic:      50,
	domain.RarityLegendary: 100,
}

// AssetPower returns base(rarity) + level*5 + floor(experience/100)
func AssetPower(asset domain.GameAsset) uint64 {
	return BasePower[asset.Rarity] + uint64(asset.Level)*LevelPowerFactor + asset.Experience/ExperiencePerPower
}

// AssetLevel returns isqrt(experience/50) + 1
func AssetLevel(experience uint64) uint32 {
	return levelFor(experience, AssetLevelDivisor)
}

// PlayerLevel returns isqrt(experience/100) + 1
func PlayerLevel(experience uint64) uint32 {
	return levelFor(experience, PlayerLevelDivisor)
}

func levelFor(experience, divisor uint64) uint32 {
	lvl := ISqrt(experience/divisor) + 1
	if lvl > math.MaxUint32 {
		return math.MaxUint32
	}
	if lvl < MinLevel {
		return MinLevel
	}
	return uint32(lvl)
}

// ISqrt returns floor(sqrt(n)) using Newton's method on integers
func ISqrt(n uint64) uint64 {
	if n < 2 {
		return n
	}
	x := n
	y := x/2 + x%2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}
