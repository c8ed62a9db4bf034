package battle

import (
	"github.com/osse101/stardust-engine/internal/domain"
	"github.com/osse101/stardust-engine/internal/valuation"
)

// MoveBonus is the power each move kind adds to the side that played it
var MoveBonus = map[domain.MoveKind]uint64{
	domain.MoveAttack:  10,
	domain.MoveDefend:  5,
	domain.MoveSpecial: 15,
	domain.MoveCombo:   20,
}

// SidePower sums the power of a side's committed assets and the bonus of
// every move played by that side's address.
func SidePower(assets []domain.GameAsset, moves []domain.BattleMove, player string) uint64 {
	var total uint64
	for _, a := range assets {
		total += valuation.AssetPower(a)
	}
	for _, m := range moves {
		if m.Player == player {
			total += MoveBonus[m.Kind]
		}
	}
	return total
}

// Decide picks the winner. Ties go to the attacker.
func Decide(b *domain.Battle, attackerPower, defenderPower uint64) (winner, loser string) {
	if attackerPower >= defenderPower {
		return b.Attacker, b.Defender
	}
	return b.Defender, b.Attacker
}
