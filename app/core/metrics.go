package core

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/neodocs/neodocs/pkg/metrics"
)

type Metrics struct {
	apiResponseTime     *prometheus.HistogramVec
	apiErrorCounter     *prometheus.CounterVec
	shareAccessCounter  *prometheus.CounterVec
	sessionIssueCounter *prometheus.CounterVec
	qrEncodeTime        *prometheus.HistogramVec
}

func NewMetrics(ns, system string) *Metrics {
	// setup metric
	metrics.SetupMetricsManager(ns, system, prometheus.DefaultRegisterer.(*prometheus.Registry))

	m := &Metrics{
		apiResponseTime:     metrics.NewHistogramVec("api_response_time", []string{"api"}),
		apiErrorCounter:     metrics.NewCounterVec("api_error", []string{"method", "api", "status"}),
		shareAccessCounter:  metrics.NewCounterVec("share_access", []string{"result"}),
		sessionIssueCounter: metrics.NewCounterVec("share_session_issue", []string{"result"}),
		qrEncodeTime:        metrics.NewHistogramVec("qrcode_encode_time", nil),
	}

	return m
}

func (m *Metrics) ApiErrorInc(method, api string, status int) {
	m.apiErrorCounter.WithLabelValues(method, api, strconv.Itoa(status)).Inc()
}

func (m *Metrics) ApiResponseTimer(api string) *prometheus.Timer {
	return prometheus.NewTimer(m.apiResponseTime.WithLabelValues(api))
}

// ShareAccessInc result 取值 allowed / denied
func (m *Metrics) ShareAccessInc(result string) {
	m.shareAccessCounter.WithLabelValues(result).Inc()
}

func (m *Metrics) SessionIssueInc(result string) {
	m.sessionIssueCounter.WithLabelValues(result).Inc()
}

func (m *Metrics) QREncodeTimer() *prometheus.Timer {
	return prometheus.NewTimer(m.qrEncodeTime.WithLabelValues())
}
