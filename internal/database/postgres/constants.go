package postgres

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Player Operations
const (
	ErrMsgFailedToGetPlayer    = "failed to get player"
	ErrMsgFailedToInsertPlayer = "failed to insert player"
	ErrMsgFailedToUpdatePlayer = "failed to update player"
)

// Error Messages - Asset Operations
const (
	ErrMsgFailedToGetAsset    = "failed to get asset"
	ErrMsgFailedToListAssets  = "failed to list assets"
	ErrMsgFailedToInsertAsset = "failed to insert asset"
	ErrMsgFailedToUpdateAsset = "failed to update asset"
)

// Error Messages - Battle Operations
const (
	ErrMsgFailedToGetBattle     = "failed to get battle"
	ErrMsgFailedToGetMoves      = "failed to get battle moves"
	ErrMsgFailedToListBattles   = "failed to list battles"
	ErrMsgFailedToInsertBattle  = "failed to insert battle"
	ErrMsgFailedToUpdateBattle  = "failed to update battle"
	ErrMsgFailedToAppendMove    = "failed to append battle move"
	ErrMsgFailedToCountMoves    = "failed to count battle moves"
	ErrMsgFailedToGetPlatform   = "failed to get platform stats"
	ErrMsgFailedToScanAssetList = "failed to scan assets"
)

// Error Messages - Mission Operations
const (
	ErrMsgFailedToGetMission         = "failed to get mission template"
	ErrMsgFailedToListMissions       = "failed to list mission templates"
	ErrMsgFailedToInsertMission      = "failed to insert mission template"
	ErrMsgFailedToMarshalMission     = "failed to marshal mission template"
	ErrMsgFailedToUnmarshalMission   = "failed to unmarshal mission template"
	ErrMsgFailedToGetPlayerMission   = "failed to get player mission"
	ErrMsgFailedToSavePlayerMission  = "failed to save player mission"
	ErrMsgFailedToListPlayerMissions = "failed to list player missions"
	ErrMsgFailedToListCompleted      = "failed to list completed missions"
	ErrMsgFailedToAddCompleted       = "failed to record completed mission"
)

// Error Messages - Event Log Operations
const (
	ErrMsgFailedToMarshalEventData   = "failed to marshal event data"
	ErrMsgFailedToInsertEvent        = "failed to insert event"
	ErrMsgFailedToQueryEvents        = "failed to query events"
	ErrMsgFailedToUnmarshalEventData = "failed to unmarshal event data"
	ErrMsgFailedToCleanupEvents      = "failed to cleanup events"
)
