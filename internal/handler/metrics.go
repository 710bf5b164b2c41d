package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics 记录聊天意图与导出次数
type Metrics struct {
	intents *prometheus.CounterVec
	exports *prometheus.CounterVec
}

// NewMetrics 在 registry 上注册计数器
func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		intents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mindfulme",
			Name:      "chat_intents_total",
			Help:      "Chat messages handled, by matched intent and outcome.",
		}, []string{"intent", "outcome"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mindfulme",
			Name:      "exports_total",
			Help:      "CSV export requests, by outcome.",
		}, []string{"outcome"}),
	}
	registry.MustRegister(m.intents, m.exports)
	return m
}

func (m *Metrics) observeIntent(intent string, err error) {
	m.intents.WithLabelValues(intent, outcome(err)).Inc()
}

func (m *Metrics) observeExport(result string) {
	m.exports.WithLabelValues(result).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
