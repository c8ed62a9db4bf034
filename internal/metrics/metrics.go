// Package metrics exposes Prometheus counters for HTTP traffic and game
// activity. Game metrics are fed from the event bus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Game Metrics
var (
	PlayersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNamePlayersRegistered,
			Help: HelpTextPlayersRegistered,
		},
	)

	ExperienceGranted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameExperienceGranted,
			Help: HelpTextExperienceGranted,
		},
	)

	AssetsMinted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAssetsMinted,
			Help: HelpTextAssetsMinted,
		},
		[]string{LabelSource, LabelRarity},
	)

	AssetsTransferred = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameAssetsTransferred,
			Help: HelpTextAssetsTransferred,
		},
	)

	BattlesInitiated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBattlesInitiated,
			Help: HelpTextBattlesInitiated,
		},
		[]string{LabelBattleType},
	)

	BattleMoves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBattleMoves,
			Help: HelpTextBattleMoves,
		},
		[]string{LabelMove},
	)

	BattlesResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBattlesResolved,
			Help: HelpTextBattlesResolved,
		},
		[]string{LabelBattleType},
	)

	BattleLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameBattleLength,
			Help:    HelpTextBattleLength,
			Buckets: BattleLengthBuckets,
		},
	)

	MissionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMissionsStarted,
			Help: HelpTextMissionsStarted,
		},
	)

	ObjectivesCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameObjectivesCompleted,
			Help: HelpTextObjectivesCompleted,
		},
	)

	MissionsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMissionsCompleted,
			Help: HelpTextMissionsCompleted,
		},
		[]string{LabelChapter},
	)
)
