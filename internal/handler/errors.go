package handler

import "github.com/osse101/stardust-engine/internal/middleware"

// Error message constants for handler package
const (
	// Request errors
	ErrMsgMethodNotAllowed      = "Method not allowed"
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query and path parameter errors
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidPathParam  = "Invalid %s"
	ErrMsgMissingCaller     = "Missing X-Player-Address header"
	ErrMsgInvalidSince      = "Invalid 'since' timestamp format (use RFC3339)"
	ErrMsgInvalidUntil      = "Invalid 'until' timestamp format (use RFC3339)"
	ErrMsgInvalidLimit      = "Invalid 'limit' (must be 1-1000)"

	// Read view errors
	ErrMsgPlayerNotFoundHTTP  = "player not found"
	ErrMsgAssetNotFoundHTTP   = "asset not found"
	ErrMsgBattleNotFoundHTTP  = "battle not found"
	ErrMsgMissionNotFoundHTTP = "mission not found"

	// Operation failures
	ErrMsgRegisterPlayerFailed  = "Failed to register player"
	ErrMsgGetPlayerFailed       = "Failed to get player"
	ErrMsgGetProfileFailed      = "Failed to get player profile"
	ErrMsgListAssetsFailed      = "Failed to list assets"
	ErrMsgListBattlesFailed     = "Failed to list battles"
	ErrMsgListMissionsFailed    = "Failed to list missions"
	ErrMsgMintAssetFailed       = "Failed to mint asset"
	ErrMsgTransferAssetFailed   = "Failed to transfer asset"
	ErrMsgGetAssetFailed        = "Failed to get asset"
	ErrMsgAssetPowerFailed      = "Failed to compute asset power"
	ErrMsgInitiateBattleFailed  = "Failed to initiate battle"
	ErrMsgAcceptBattleFailed    = "Failed to accept battle"
	ErrMsgSubmitMoveFailed      = "Failed to submit move"
	ErrMsgGetBattleFailed       = "Failed to get battle"
	ErrMsgGetMissionFailed      = "Failed to get mission"
	ErrMsgStartMissionFailed    = "Failed to start mission"
	ErrMsgCompleteObjectiveFail = "Failed to complete objective"
	ErrMsgCreateMissionFailed   = "Failed to create mission"
	ErrMsgInitMissionsFailed    = "Failed to initialize chapter missions"
	ErrMsgGrantExperienceFailed = "Failed to grant experience"
	ErrMsgPlatformStatsFailed   = "Failed to get platform stats"
	ErrMsgGetEventsFailed       = "Failed to retrieve events"
	ErrMsgReadinessCheckFailed  = "storage unavailable"
)

// Success messages
const (
	MsgPlayerRegistered   = "Player registered"
	MsgAssetMinted        = "Asset minted"
	MsgAssetTransferred   = "Asset transferred"
	MsgBattleInitiated    = "Battle initiated"
	MsgBattleAccepted     = "Battle accepted"
	MsgMoveAccepted       = "Move accepted"
	MsgBattleResolved     = "Battle resolved"
	MsgMissionStarted     = "Mission started"
	MsgObjectiveCompleted = "Objective completed"
	MsgMissionCompleted   = "Mission completed"
	MsgMissionCreated     = "Mission created"
	MsgMissionsSeeded     = "Chapter missions initialized"
	MsgExperienceGranted  = "Experience granted"
)

// Header and parameter names
const (
	HeaderPlayerAddress = middleware.HeaderPlayerAddress

	ParamAddress     = "address"
	ParamID          = "id"
	ParamObjectiveID = "objectiveID"

	QueryParamPlayer    = "player"
	QueryParamEventType = "event_type"
	QueryParamSince     = "since"
	QueryParamUntil     = "until"
	QueryParamLimit     = "limit"
)

// Event query limits
const (
	DefaultEventLimit = 50
	MaxEventLimit     = 1000
)
