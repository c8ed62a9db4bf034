package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Game metric names
const (
	MetricNamePlayersRegistered   = "stardust_players_registered_total"
	MetricNameExperienceGranted   = "stardust_experience_granted_total"
	MetricNameAssetsMinted        = "stardust_assets_minted_total"
	MetricNameAssetsTransferred   = "stardust_assets_transferred_total"
	MetricNameBattlesInitiated    = "stardust_battles_initiated_total"
	MetricNameBattleMoves         = "stardust_battle_moves_total"
	MetricNameBattlesResolved     = "stardust_battles_resolved_total"
	MetricNameBattleLength        = "stardust_battle_moves_per_battle"
	MetricNameMissionsStarted     = "stardust_missions_started_total"
	MetricNameObjectivesCompleted = "stardust_objectives_completed_total"
	MetricNameMissionsCompleted   = "stardust_missions_completed_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Game metric help text
const (
	HelpTextPlayersRegistered   = "Total number of registered players"
	HelpTextExperienceGranted   = "Total experience granted by administrators"
	HelpTextAssetsMinted        = "Total number of assets minted"
	HelpTextAssetsTransferred   = "Total number of asset transfers"
	HelpTextBattlesInitiated    = "Total number of battles initiated"
	HelpTextBattleMoves         = "Total number of battle moves submitted"
	HelpTextBattlesResolved     = "Total number of battles resolved"
	HelpTextBattleLength        = "Number of moves in a resolved battle"
	HelpTextMissionsStarted     = "Total number of missions started"
	HelpTextObjectivesCompleted = "Total number of mission objectives completed"
	HelpTextMissionsCompleted   = "Total number of missions completed"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelSource     = "source"
	LabelRarity     = "rarity"
	LabelBattleType = "battle_type"
	LabelMove       = "move"
	LabelChapter    = "chapter"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// BattleLengthBuckets covers every possible battle length
var BattleLengthBuckets = []float64{0, 2, 4, 6, 8, 10, 12, 16, 20}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Unexpected event payload type"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
