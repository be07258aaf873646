package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Business metrics
	CampaignsLaunchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campaignhub_campaigns_launched_total",
		Help: "Total campaign launches by resulting status",
	}, []string{"status"})

	NotificationsRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campaignhub_notifications_recorded_total",
		Help: "Total notification ledger rows written",
	})

	ChannelSendsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campaignhub_channel_sends_total",
		Help: "Total outbound sends by channel and status",
	}, []string{"channel", "status"})

	DispatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "campaignhub_dispatch_duration_seconds",
		Help:    "Duration of full campaign dispatch runs",
		Buckets: prometheus.DefBuckets,
	})

	// Infrastructure metrics
	DatabaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "campaignhub_database_latency_seconds",
		Help:    "Latency of database queries",
		Buckets: prometheus.DefBuckets,
	})

	WebSocketClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "campaignhub_websocket_clients",
		Help: "Currently connected notification websocket clients",
	})
)
