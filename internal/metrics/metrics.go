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

	RequestsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRequestsRejected,
			Help: HelpTextRequestsRejected,
		},
		[]string{LabelReason},
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
	Merges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameMerges,
			Help: HelpTextMerges,
		},
		[]string{LabelFamily, LabelLevel},
	)

	Collects = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCollects,
			Help: HelpTextCollects,
		},
		[]string{LabelSource},
	)

	ResourcesEarned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameResourcesEarned,
			Help: HelpTextResourcesEarned,
		},
		[]string{LabelResource, LabelSource},
	)

	ShopPurchases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameShopPurchases,
			Help: HelpTextShopPurchases,
		},
		[]string{LabelItem},
	)

	PremiumPurchases = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePremiumPurchases,
			Help: HelpTextPremiumPurchases,
		},
		[]string{LabelItem},
	)

	SubscriptionChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSubscriptions,
			Help: HelpTextSubscriptions,
		},
		[]string{LabelTier, LabelAction},
	)

	QuestClaims = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameQuestClaims,
			Help: HelpTextQuestClaims,
		},
		[]string{LabelType},
	)

	ReferralRewards = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameReferralRewards,
			Help: HelpTextReferralRewards,
		},
	)

	CatalogDrift = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCatalogDrift,
			Help: HelpTextCatalogDrift,
		},
	)

	SaveConflicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSaveConflicts,
			Help: HelpTextSaveConflicts,
		},
		[]string{LabelOperation},
	)

	NamingRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNamingRequests,
			Help: HelpTextNamingRequests,
		},
		[]string{LabelOutcome},
	)

	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameOperationDuration,
			Help:    HelpTextOperationDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelOperation},
	)
)
