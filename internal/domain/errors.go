package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Category roots
	ErrMsgPrecondition  = "precondition violation"
	ErrMsgNotFound      = "not found"
	ErrMsgDataIntegrity = "data integrity fault"

	// Player errors
	ErrMsgPlayerNotFound    = "player not found"
	ErrMsgNotRegistered     = "player not registered"
	ErrMsgAlreadyRegistered = "player already registered"
	ErrMsgRecipientNotFound = "recipient not registered"
	ErrMsgInvalidAddress    = "invalid player address"
	ErrMsgSelfTarget        = "cannot target yourself"
	ErrMsgNotAdmin          = "only admin can call this function"
	ErrMsgInvalidExperience = "experience amount must be positive"

	// Asset errors
	ErrMsgAssetNotFound    = "asset not found"
	ErrMsgAssetNotOwned    = "asset not owned"
	ErrMsgInvalidAssetType = "invalid asset type"
	ErrMsgInvalidRarity    = "invalid rarity"
	ErrMsgAssetNameEmpty   = "asset name is required"

	// Battle errors
	ErrMsgBattleNotFound    = "battle not found"
	ErrMsgTooManyAssets     = "too many assets"
	ErrMsgNoAssets          = "at least one asset is required"
	ErrMsgDuplicateAsset    = "asset committed more than once"
	ErrMsgNotDefender       = "not the defender"
	ErrMsgBattleNotWaiting  = "battle not waiting for defender"
	ErrMsgBattleNotActive   = "battle not active"
	ErrMsgNotYourTurn       = "not your turn"
	ErrMsgAssetNotInBattle  = "asset not in battle"
	ErrMsgInvalidBattleKind = "invalid battle kind"
	ErrMsgInvalidMoveKind   = "invalid move kind"

	// Mission errors
	ErrMsgMissionNotFound           = "mission not found"
	ErrMsgMissionExists             = "mission already exists"
	ErrMsgMissionAlreadyActive      = "mission already active"
	ErrMsgMissionNotActive          = "mission not active"
	ErrMsgPlayerMissionNotFound     = "player mission not found"
	ErrMsgLevelTooLow               = "level requirement not met"
	ErrMsgPrerequisiteMissing       = "prerequisite mission not completed"
	ErrMsgRequiredAssetMissing      = "required asset not found"
	ErrMsgObjectiveNotFound         = "objective not found"
	ErrMsgObjectiveAlreadyCompleted = "objective already completed"
	ErrMsgInsufficientAssets        = "insufficient assets collected"
	ErrMsgInsufficientBattlesWon    = "insufficient battles won"
	ErrMsgProofRequired             = "proof required"
	ErrMsgInvalidMission            = "invalid mission template"
	ErrMsgInvalidObjectiveKind      = "invalid objective kind"

	// Storage errors
	ErrMsgTxClosed = "tx is closed"

	// Reward errors
	ErrMsgInvalidRewardKind  = "invalid reward kind"
	ErrMsgRewardMissingAsset = "asset reward has no template"
	ErrMsgRewardMissingTitle = "title reward has no title"
)

// Category roots. Every domain error matches exactly one of ErrPrecondition
// or ErrDataIntegrity; not-found errors additionally match ErrNotFound.
var (
	ErrPrecondition  = errors.New(ErrMsgPrecondition)
	ErrNotFound      = errors.New(ErrMsgNotFound)
	ErrDataIntegrity = errors.New(ErrMsgDataIntegrity)
)

// Error is a domain error that matches its category roots via errors.Is.
type Error struct {
	msg   string
	roots []error
}

func (e *Error) Error() string { return e.msg }

// Is reports whether target is one of the error's category roots.
func (e *Error) Is(target error) bool {
	for _, root := range e.roots {
		if target == root {
			return true
		}
	}
	return false
}

func precondition(msg string) error {
	return &Error{msg: msg, roots: []error{ErrPrecondition}}
}

// notFound errors are absent results on reads and precondition violations on writes.
func notFound(msg string) error {
	return &Error{msg: msg, roots: []error{ErrNotFound, ErrPrecondition}}
}

func integrity(msg string) error {
	return &Error{msg: msg, roots: []error{ErrDataIntegrity}}
}

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Player errors
	ErrPlayerNotFound    = notFound(ErrMsgPlayerNotFound)
	ErrNotRegistered     = precondition(ErrMsgNotRegistered)
	ErrAlreadyRegistered = precondition(ErrMsgAlreadyRegistered)
	ErrRecipientNotFound = precondition(ErrMsgRecipientNotFound)
	ErrInvalidAddress    = precondition(ErrMsgInvalidAddress)
	ErrSelfTarget        = precondition(ErrMsgSelfTarget)
	ErrNotAdmin          = precondition(ErrMsgNotAdmin)
	ErrInvalidExperience = precondition(ErrMsgInvalidExperience)

	// Asset errors
	ErrAssetNotFound    = notFound(ErrMsgAssetNotFound)
	ErrAssetNotOwned    = precondition(ErrMsgAssetNotOwned)
	ErrInvalidAssetType = precondition(ErrMsgInvalidAssetType)
	ErrInvalidRarity    = precondition(ErrMsgInvalidRarity)
	ErrAssetNameEmpty   = precondition(ErrMsgAssetNameEmpty)

	// Battle errors
	ErrBattleNotFound    = notFound(ErrMsgBattleNotFound)
	ErrTooManyAssets     = precondition(ErrMsgTooManyAssets)
	ErrNoAssets          = precondition(ErrMsgNoAssets)
	ErrDuplicateAsset    = precondition(ErrMsgDuplicateAsset)
	ErrNotDefender       = precondition(ErrMsgNotDefender)
	ErrBattleNotWaiting  = precondition(ErrMsgBattleNotWaiting)
	ErrBattleNotActive   = precondition(ErrMsgBattleNotActive)
	ErrNotYourTurn       = precondition(ErrMsgNotYourTurn)
	ErrAssetNotInBattle  = precondition(ErrMsgAssetNotInBattle)
	ErrInvalidBattleKind = precondition(ErrMsgInvalidBattleKind)
	ErrInvalidMoveKind   = precondition(ErrMsgInvalidMoveKind)

	// Mission errors
	ErrMissionNotFound           = notFound(ErrMsgMissionNotFound)
	ErrMissionExists             = precondition(ErrMsgMissionExists)
	ErrMissionAlreadyActive      = precondition(ErrMsgMissionAlreadyActive)
	ErrMissionNotActive          = precondition(ErrMsgMissionNotActive)
	ErrPlayerMissionNotFound     = notFound(ErrMsgPlayerMissionNotFound)
	ErrLevelTooLow               = precondition(ErrMsgLevelTooLow)
	ErrPrerequisiteMissing       = precondition(ErrMsgPrerequisiteMissing)
	ErrRequiredAssetMissing      = precondition(ErrMsgRequiredAssetMissing)
	ErrObjectiveNotFound         = notFound(ErrMsgObjectiveNotFound)
	ErrObjectiveAlreadyCompleted = precondition(ErrMsgObjectiveAlreadyCompleted)
	ErrInsufficientAssets        = precondition(ErrMsgInsufficientAssets)
	ErrInsufficientBattlesWon    = precondition(ErrMsgInsufficientBattlesWon)
	ErrProofRequired             = precondition(ErrMsgProofRequired)
	ErrInvalidMission            = precondition(ErrMsgInvalidMission)
	ErrInvalidObjectiveKind      = precondition(ErrMsgInvalidObjectiveKind)

	// Reward errors
	ErrInvalidRewardKind  = integrity(ErrMsgInvalidRewardKind)
	ErrRewardMissingAsset = integrity(ErrMsgRewardMissingAsset)
	ErrRewardMissingTitle = integrity(ErrMsgRewardMissingTitle)
)
