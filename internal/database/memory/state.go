package memory

import (
	"cmp"
	"slices"

	"github.com/osse101/stardust-engine/internal/domain"
)

type missionKey struct {
	player    string
	missionID uint64
}

// state is one generation of every registry. The committed state and a
// transaction's pending writes share this shape.
type state struct {
	players        map[string]domain.Player
	assets         map[uint64]domain.GameAsset
	battles        map[uint64]domain.Battle
	missions       map[uint64]domain.MissionTemplate
	playerMissions map[missionKey]domain.PlayerMission
	completed      map[string][]uint64

	lastAssetID  uint64
	lastBattleID uint64
}

func newState() *state {
	return &state{
		players:        make(map[string]domain.Player),
		assets:         make(map[uint64]domain.GameAsset),
		battles:        make(map[uint64]domain.Battle),
		missions:       make(map[uint64]domain.MissionTemplate),
		playerMissions: make(map[missionKey]domain.PlayerMission),
		completed:      make(map[string][]uint64),
	}
}

// apply merges pending writes into s
func (s *state) apply(p *state) {
	for k, v := range p.players {
		s.players[k] = v
	}
	for k, v := range p.assets {
		s.assets[k] = v
	}
	for k, v := range p.battles {
		s.battles[k] = v
	}
	for k, v := range p.missions {
		s.missions[k] = v
	}
	for k, v := range p.playerMissions {
		s.playerMissions[k] = v
	}
	for k, v := range p.completed {
		s.completed[k] = v
	}
	s.lastAssetID = p.lastAssetID
	s.lastBattleID = p.lastBattleID
}

// merged returns the values of base overridden by pending, ordered by key
func merged[K cmp.Ordered, V any](base, pending map[K]V) []V {
	keys := make([]K, 0, len(base)+len(pending))
	for k := range base {
		if _, ok := pending[k]; !ok {
			keys = append(keys, k)
		}
	}
	for k := range pending {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]V, 0, len(keys))
	for _, k := range keys {
		if v, ok := pending[k]; ok {
			out = append(out, v)
			continue
		}
		out = append(out, base[k])
	}
	return out
}

func lookup[K comparable, V any](base, pending map[K]V, key K) (V, bool) {
	if pending != nil {
		if v, ok := pending[key]; ok {
			return v, true
		}
	}
	v, ok := base[key]
	return v, ok
}

func cloneMission(m domain.MissionTemplate) domain.MissionTemplate {
	m.Objectives = slices.Clone(m.Objectives)
	m.Rewards = slices.Clone(m.Rewards)
	m.Prerequisites = slices.Clone(m.Prerequisites)
	m.RequiredAssets = slices.Clone(m.RequiredAssets)
	return m
}
