package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	pollsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nfcsnoop_polls_total",
		Help: "Snoop log polls by result",
	}, []string{"result"})

	packetsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nfcsnoop_packets_total",
		Help: "Newly observed NCI packets by message type",
	}, []string{"message_type"})

	anomaliesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nfcsnoop_decode_anomalies_total",
		Help: "Records that could not be fully decoded",
	}, []string{"reason"})

	anchorMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nfcsnoop_anchor_misses_total",
		Help: "Polls where the previous tail could not be found in the new dump",
	})

	dumpLines = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "nfcsnoop_dump_lines",
		Help: "Number of records in the most recent dump",
	})
)

// Poll results.
const (
	PollOK    = "ok"
	PollError = "error"
)

// Anomaly reasons.
const (
	AnomalyRecord = "record"
	AnomalyPacket = "packet"
)

func RecordPoll(result string, lines int) {
	pollsTotal.WithLabelValues(result).Inc()
	if result == PollOK {
		dumpLines.Set(float64(lines))
	}
}

func RecordPacket(messageType string) {
	packetsTotal.WithLabelValues(messageType).Inc()
}

func RecordAnomaly(reason string) {
	anomaliesTotal.WithLabelValues(reason).Inc()
}

func RecordAnchorMiss() {
	anchorMissesTotal.Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
