package metrics

import "github.com/prometheus/client_golang/prometheus"

// OpsMetrics exposes counters for the lead/booking/payment workflow.
type OpsMetrics struct {
	leadsTotal       *prometheus.CounterVec
	chatRepliesTotal *prometheus.CounterVec
	conversionsTotal *prometheus.CounterVec
	paymentsTotal    *prometheus.CounterVec
	autoTasksTotal   *prometheus.CounterVec
}

func NewOpsMetrics(reg prometheus.Registerer) *OpsMetrics {
	m := &OpsMetrics{
		leadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swiftmove",
			Subsystem: "leads",
			Name:      "created_total",
			Help:      "Total leads recorded, by source",
		}, []string{"source"}),
		chatRepliesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swiftmove",
			Subsystem: "chat",
			Name:      "replies_total",
			Help:      "Total chatbot replies, by outcome (llm or fallback)",
		}, []string{"outcome"}),
		conversionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swiftmove",
			Subsystem: "leads",
			Name:      "conversions_total",
			Help:      "Total chatbot lead conversions, by result",
		}, []string{"result"}),
		paymentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swiftmove",
			Subsystem: "payments",
			Name:      "recorded_total",
			Help:      "Total payments recorded, by type",
		}, []string{"type"}),
		autoTasksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swiftmove",
			Subsystem: "tasks",
			Name:      "auto_generated_total",
			Help:      "Total auto-generated workflow tasks, by trigger",
		}, []string{"trigger"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.leadsTotal, m.chatRepliesTotal, m.conversionsTotal, m.paymentsTotal, m.autoTasksTotal)
	return m
}

func (m *OpsMetrics) ObserveLead(source string) {
	if m == nil {
		return
	}
	m.leadsTotal.WithLabelValues(source).Inc()
}

func (m *OpsMetrics) ObserveChatReply(fallback bool) {
	if m == nil {
		return
	}
	outcome := "llm"
	if fallback {
		outcome = "fallback"
	}
	m.chatRepliesTotal.WithLabelValues(outcome).Inc()
}

func (m *OpsMetrics) ObserveConversion(result string) {
	if m == nil {
		return
	}
	m.conversionsTotal.WithLabelValues(result).Inc()
}

func (m *OpsMetrics) ObservePayment(paymentType string) {
	if m == nil {
		return
	}
	m.paymentsTotal.WithLabelValues(paymentType).Inc()
}

func (m *OpsMetrics) ObserveAutoTask(trigger string) {
	if m == nil {
		return
	}
	m.autoTasksTotal.WithLabelValues(trigger).Inc()
}
