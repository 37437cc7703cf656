// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-shamir.
//
// go-shamir is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package metrics provides Prometheus instrumentation for secret sharing and
// chart generation. Collectors are registered on the default registry via
// promauto; Gather exposes them in text format for one-shot CLI runs.
package metrics

import (
	"bytes"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

const (
	// Namespace is the Prometheus namespace for all metrics
	Namespace = "shamir"

	// Label names
	LabelOperation = "operation"
	LabelField     = "field"
	LabelStatus    = "status"
	LabelErrorType = "error_type"

	// Status values
	StatusSuccess = "success"
	StatusError   = "error"

	// Operation names
	OpSplit   = "split"
	OpCombine = "combine"
	OpVerify  = "verify"
	OpChart   = "chart"
)

var (
	// OperationsTotal counts split, combine, verify and chart operations.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "operations_total",
			Help:      "Total number of operations by type, field, and status",
		},
		[]string{LabelOperation, LabelField, LabelStatus},
	)

	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of operations in seconds",
			Buckets:   []float64{.00001, .0001, .001, .01, .1, 1},
		},
		[]string{LabelOperation, LabelField},
	)

	// ErrorsTotal breaks failures down by sentinel error name.
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "errors_total",
			Help:      "Total number of errors by operation, field, and error type",
		},
		[]string{LabelOperation, LabelField, LabelErrorType},
	)

	SharesGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "shares_generated_total",
			Help:      "Total number of shares produced by splits",
		},
		[]string{LabelField},
	)

	ChartPoints = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "chart_points",
			Help:      "Number of curve points generated per chart",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 6),
		},
	)

	enabled atomic.Bool
)

func init() {
	enabled.Store(true)
}

func Enable()         { enabled.Store(true) }
func Disable()        { enabled.Store(false) }
func IsEnabled() bool { return enabled.Load() }

// RecordOperation records an operation outcome and its duration.
func RecordOperation(operation, field, status string, duration time.Duration) {
	if !enabled.Load() {
		return
	}
	OperationsTotal.WithLabelValues(operation, field, status).Inc()
	OperationDuration.WithLabelValues(operation, field).Observe(duration.Seconds())
}

func RecordError(operation, field, errorType string) {
	if !enabled.Load() {
		return
	}
	ErrorsTotal.WithLabelValues(operation, field, errorType).Inc()
}

func RecordShares(field string, count int) {
	if !enabled.Load() {
		return
	}
	SharesGenerated.WithLabelValues(field).Add(float64(count))
}

func RecordChart(points int) {
	if !enabled.Load() {
		return
	}
	ChartPoints.Observe(float64(points))
}

// Gather renders every metric family of this package in Prometheus text
// exposition format.
func Gather() (string, error) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	for _, mf := range families {
		if mf.GetName() == "" || !hasNamespace(mf.GetName()) {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func hasNamespace(name string) bool {
	prefix := Namespace + "_"
	return len(name) > len(prefix) && name[:len(prefix)] == prefix
}
