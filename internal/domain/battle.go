package domain

import (
	"fmt"
	"slices"
	"time"
)

// Battle limits
const (
	MaxAssetsPerSide = 3
	MaxBattleTurns   = 10
	MaxBattleMoves   = 20
	FirstBattleTurn  = 1
)

// BattleKind labels the context a battle was fought in
type BattleKind string

const (
	BattleCasual     BattleKind = "Casual"
	BattleRanked     BattleKind = "Ranked"
	BattleTournament BattleKind = "Tournament"
	BattleGuild      BattleKind = "Guild"
)

// Valid reports whether k is a known battle kind
func (k BattleKind) Valid() bool {
	switch k {
	case BattleCasual, BattleRanked, BattleTournament, BattleGuild:
		return true
	}
	return false
}

// ParseBattleKind accepts any casing of a known battle kind
func ParseBattleKind(s string) (BattleKind, error) {
	k := BattleKind(normalizeName(s))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidBattleKind, s)
	}
	return k, nil
}

// BattleStatus is the lifecycle state of a battle
type BattleStatus string

const (
	BattleWaitingForDefender BattleStatus = "WaitingForDefender"
	BattleActive             BattleStatus = "Active"
	BattleCompleted          BattleStatus = "Completed"
	BattleCancelled          BattleStatus = "Cancelled"
)

// MoveKind is the action taken in a single turn
type MoveKind string

const (
	MoveAttack  MoveKind = "Attack"
	MoveDefend  MoveKind = "Defend"
	MoveSpecial MoveKind = "Special"
	MoveCombo   MoveKind = "Combo"
)

// Valid reports whether m is a known move kind
func (m MoveKind) Valid() bool {
	switch m {
	case MoveAttack, MoveDefend, MoveSpecial, MoveCombo:
		return true
	}
	return false
}

// ParseMoveKind accepts any casing of a known move kind
func ParseMoveKind(s string) (MoveKind, error) {
	m := MoveKind(normalizeName(s))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidMoveKind, s)
	}
	return m, nil
}

// BattleMove is one append-only entry in a battle's move log
type BattleMove struct {
	Turn        uint32    `json:"turn"`
	Player      string    `json:"player"`
	AssetID     uint64    `json:"asset_id"`
	Kind        MoveKind  `json:"move_type"`
	TargetAsset *uint64   `json:"target_asset,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// Battle is a turn-based contest between an attacker and a defender
type Battle struct {
	ID             uint64       `json:"id"`
	Attacker       string       `json:"attacker"`
	Defender       string       `json:"defender"`
	AttackerAssets []uint64     `json:"attacker_assets"`
	DefenderAssets []uint64     `json:"defender_assets"`
	Kind           BattleKind   `json:"battle_type"`
	Status         BattleStatus `json:"status"`
	Turn           uint32       `json:"turn"`
	CreatedAt      time.Time    `json:"created_at"`
	Moves          []BattleMove `json:"moves"`
	Winner         string       `json:"winner,omitempty"`
	Loser          string       `json:"loser,omitempty"`
	ResolvedAt     *time.Time   `json:"resolved_at,omitempty"`
}

// AttackerToMove reports whether the current turn belongs to the attacker.
// Odd turns are the attacker's, even turns the defender's.
func (b *Battle) AttackerToMove() bool {
	return b.Turn%2 == 1
}

// PlayerToMove returns the address whose move it is
func (b *Battle) PlayerToMove() string {
	if b.AttackerToMove() {
		return b.Attacker
	}
	return b.Defender
}

// AssetsToMove returns the committed asset set of the side whose move it is
func (b *Battle) AssetsToMove() []uint64 {
	if b.AttackerToMove() {
		return b.AttackerAssets
	}
	return b.DefenderAssets
}

// ShouldResolve reports whether the turn or move limits have been reached
func (b *Battle) ShouldResolve() bool {
	return b.Turn > MaxBattleTurns || len(b.Moves) >= MaxBattleMoves
}

// Involves reports whether addr is a participant of the battle
func (b *Battle) Involves(addr string) bool {
	return b.Attacker == addr || b.Defender == addr
}

// Clone returns a deep copy of the battle
func (b Battle) Clone() Battle {
	b.AttackerAssets = slices.Clone(b.AttackerAssets)
	b.DefenderAssets = slices.Clone(b.DefenderAssets)
	b.Moves = slices.Clone(b.Moves)
	if b.ResolvedAt != nil {
		t := *b.ResolvedAt
		b.ResolvedAt = &t
	}
	return b
}

// BattleOutcome summarizes a resolved battle
type BattleOutcome struct {
	BattleID      uint64 `json:"battle_id"`
	Winner        string `json:"winner"`
	Loser         string `json:"loser"`
	AttackerPower uint64 `json:"attacker_power"`
	DefenderPower uint64 `json:"defender_power"`
}
