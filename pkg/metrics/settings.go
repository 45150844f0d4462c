// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// SettingsUpdatesTotal counts category updates by category and result
	SettingsUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schemata_settings_updates_total",
			Help: "Total number of field settings category updates",
		},
		[]string{"category", "result"},
	)

	// SettingsUpdateDurationSeconds measures fetch, reconcile and persist of one update
	SettingsUpdateDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "schemata_settings_update_duration_seconds",
			Help:    "Duration of field settings category updates in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
		},
		[]string{"category"},
	)

	// MalformedSettingsTotal counts stored category values replaced by {}
	MalformedSettingsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schemata_malformed_settings_total",
			Help: "Total number of malformed stored settings values recovered as empty objects",
		},
		[]string{"location"},
	)

	// FieldsAdaptedTotal counts records passed through the field adapter
	FieldsAdaptedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "schemata_fields_adapted_total",
			Help: "Total number of field records normalized",
		},
	)
)

// RegisterSettingsMetrics registers all settings-related metrics. It may
// be called more than once for the same registry.
func RegisterSettingsMetrics(registry *prometheus.Registry) {
	for _, c := range []prometheus.Collector{
		SettingsUpdatesTotal,
		SettingsUpdateDurationSeconds,
		MalformedSettingsTotal,
		FieldsAdaptedTotal,
	} {
		if err := registry.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				panic(err)
			}
		}
	}
}

// RecordSettingsUpdate records one category update. result is "ok",
// "invalid", "not_found" or "error".
func RecordSettingsUpdate(category, result string, duration time.Duration) {
	SettingsUpdatesTotal.WithLabelValues(category, result).Inc()
	SettingsUpdateDurationSeconds.WithLabelValues(category).Observe(duration.Seconds())
}

// RecordMalformed records one malformed stored value.
func RecordMalformed(location string) {
	MalformedSettingsTotal.WithLabelValues(location).Inc()
}

// RecordAdapted records n adapted field records.
func RecordAdapted(n int) {
	FieldsAdaptedTotal.Add(float64(n))
}
