package monitor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 广播结果标签
const (
	StatusSuccess          = "success"
	StatusRejected         = "rejected"
	StatusError            = "error"
	StatusCompletionFailed = "completion_failed"
)

// BusinessMetrics 定义业务监控指标
type BusinessMetrics struct {
	BroadcastTotal           *prometheus.CounterVec
	BroadcastDuration        *prometheus.HistogramVec
	KMSCompletionFailedTotal prometheus.Counter
	KMSStoredTotal           *prometheus.CounterVec
}

// Business 未调用 Init 时为 nil，下面的记录函数都会直接忽略
var Business *BusinessMetrics

// InitBusinessMetrics 初始化业务指标
func InitBusinessMetrics() {
	Business = &BusinessMetrics{
		BroadcastTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tron_broadcast_total",
			Help: "Total number of broadcast attempts by outcome",
		}, []string{"network", "status"}),
		BroadcastDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tron_broadcast_duration_seconds",
			Help:    "Duration of broadcast calls including KMS completion",
			Buckets: prometheus.DefBuckets,
		}, []string{"network"}),
		KMSCompletionFailedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tron_kms_completion_failed_total",
			Help: "Broadcasts accepted by the node whose KMS completion failed",
		}),
		KMSStoredTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tron_kms_stored_total",
			Help: "Pending KMS transactions stored",
		}, []string{"currency"}),
	}
}

// ObserveBroadcast 记录一次广播
func ObserveBroadcast(network, status string, started time.Time) {
	if Business == nil {
		return
	}
	Business.BroadcastTotal.WithLabelValues(network, status).Inc()
	Business.BroadcastDuration.WithLabelValues(network).Observe(time.Since(started).Seconds())
	if status == StatusCompletionFailed {
		Business.KMSCompletionFailedTotal.Inc()
	}
}

func ObserveKMSStored(currency string, n int) {
	if Business == nil {
		return
	}
	Business.KMSStoredTotal.WithLabelValues(currency).Add(float64(n))
}
