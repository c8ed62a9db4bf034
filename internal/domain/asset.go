package domain

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// AssetType is the category of a game asset
type AssetType string

const (
	AssetWeapon     AssetType = "Weapon"
	AssetCharacter  AssetType = "Character"
	AssetSkin       AssetType = "Skin"
	AssetConsumable AssetType = "Consumable"
	AssetVehicle    AssetType = "Vehicle"
	AssetStructure  AssetType = "Structure"
)

// Rarity is a totally ordered asset grade
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
)

var rarityRank = map[Rarity]int{
	RarityCommon:    0,
	RarityRare:      1,
	RarityEpic:      2,
	RarityLegendary: 3,
}

var assetTypes = map[AssetType]bool{
	AssetWeapon:     true,
	AssetCharacter:  true,
	AssetSkin:       true,
	AssetConsumable: true,
	AssetVehicle:    true,
	AssetStructure:  true,
}

// normalizeName title-cases enum input. Casers are stateful, so one is built per call.
func normalizeName(s string) string {
	return cases.Title(language.English).String(strings.TrimSpace(s))
}

// Valid reports whether t is a known asset type
func (t AssetType) Valid() bool {
	return assetTypes[t]
}

// Valid reports whether r is a known rarity
func (r Rarity) Valid() bool {
	_, ok := rarityRank[r]
	return ok
}

// AtLeast reports whether r is at or above min in the rarity order
func (r Rarity) AtLeast(min Rarity) bool {
	return rarityRank[r] >= rarityRank[min]
}

// ParseAssetType accepts any casing of a known asset type name
func ParseAssetType(s string) (AssetType, error) {
	t := AssetType(normalizeName(s))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidAssetType, s)
	}
	return t, nil
}

// ParseRarity accepts any casing of a known rarity name
func ParseRarity(s string) (Rarity, error) {
	r := Rarity(normalizeName(s))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidRarity, s)
	}
	return r, nil
}

// GameAsset is an owned, levelled item that participates in battles
type GameAsset struct {
	ID          uint64    `json:"id"`
	Owner       string    `json:"owner"`
	Type        AssetType `json:"asset_type"`
	Rarity      Rarity    `json:"rarity"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Level       uint32    `json:"level"`
	Experience  uint64    `json:"experience"`
}

// AssetTemplate describes an asset to be minted
type AssetTemplate struct {
	Type        AssetType `json:"asset_type"`
	Rarity      Rarity    `json:"rarity"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
}

// Validate checks that the template can be minted
func (t AssetTemplate) Validate() error {
	if !t.Type.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAssetType, t.Type)
	}
	if !t.Rarity.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRarity, t.Rarity)
	}
	if strings.TrimSpace(t.Name) == "" {
		return ErrAssetNameEmpty
	}
	return nil
}

// NewAsset builds a fresh level 1 asset from a template. The id is assigned by the store.
func NewAsset(owner string, tmpl AssetTemplate, now time.Time) GameAsset {
	return GameAsset{
		Owner:       owner,
		Type:        tmpl.Type,
		Rarity:      tmpl.Rarity,
		Name:        tmpl.Name,
		Description: tmpl.Description,
		CreatedAt:   now,
		Level:       1,
		Experience:  0,
	}
}
