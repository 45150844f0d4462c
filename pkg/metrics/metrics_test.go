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
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsServer_ExposesSettingsMetrics(t *testing.T) {
	s := NewMetricsServer(MetricsConfig{})

	RecordSettingsUpdate("general", "ok", 3*time.Millisecond)
	RecordMalformed("validation_settings")
	RecordAdapted(2)

	assert.GreaterOrEqual(t, testutil.ToFloat64(SettingsUpdatesTotal.WithLabelValues("general", "ok")), 1.0)
	assert.GreaterOrEqual(t, testutil.ToFloat64(MalformedSettingsTotal.WithLabelValues("validation_settings")), 1.0)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "schemata_settings_updates_total")
	assert.Contains(t, string(body), "schemata_malformed_settings_total")
}

func TestStart_Disabled(t *testing.T) {
	s := NewServer(MetricsConfig{Enable: false})
	require.NoError(t, s.Start())
	require.NoError(t, s.Stop(t.Context()))
}

func TestMetricsConfig_SetDefaults(t *testing.T) {
	c := MetricsConfig{}
	c.SetDefaults()
	assert.Equal(t, 9090, c.Port)
	assert.Equal(t, "/metrics", c.Path)
}
