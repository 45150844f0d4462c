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

package settings

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyCategoryUpdate_MergesGeneral(t *testing.T) {
	current := &Record{ID: "f1", Type: "otp", General: map[string]any{"helpText": "x"}}

	update, err := ApplyCategoryUpdate(current, CategoryGeneral, Settings{"otpLength": 4})
	require.NoError(t, err)

	assert.Equal(t, Settings{"helpText": "x", "otpLength": 4}, update.Record.General)
	assert.Equal(t, map[string]Settings{ColumnGeneral: {"helpText": "x", "otpLength": 4}}, update.Columns)
	assert.Equal(t, map[string]any{"helpText": "x"}, current.General, "input must not change")
}

func TestApplyCategoryUpdate_NotFound(t *testing.T) {
	_, err := ApplyCategoryUpdate(nil, CategoryGeneral, Settings{"rows": 3})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestApplyCategoryUpdate_ValidationFailureSkipsMerge(t *testing.T) {
	current := &Record{ID: "f1", Validation: map[string]any{"min": 1}}

	_, err := ApplyCategoryUpdate(current, CategoryValidation, Settings{"max": "ten"})
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, CategoryValidation, ve.Category)
	assert.Contains(t, ve.Fields, "max")
	assert.Equal(t, map[string]any{"min": 1}, current.Validation)
}

func TestApplyCategoryUpdate_BoundsAgainstStoredValue(t *testing.T) {
	current := &Record{ID: "f1", Validation: map[string]any{"max": 5}}

	_, err := ApplyCategoryUpdate(current, CategoryValidation, Settings{"min": 10})
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "max")
}

func TestApplyCategoryUpdate_AppearanceIsNormalized(t *testing.T) {
	current := &Record{ID: "f1", Appearance: "broken"}

	update, err := ApplyCategoryUpdate(current, CategoryAppearance, Settings{"labelPosition": "top"})
	require.NoError(t, err)
	assert.Equal(t, Settings{"labelPosition": "top", KeyUIVariant: VariantStandard}, update.Record.Appearance)

	update, err = ApplyCategoryUpdate(update.Record, CategoryAppearance, Settings{KeyUIVariant: "pill"})
	require.NoError(t, err)
	assert.Equal(t, Settings{"labelPosition": "top", KeyUIVariant: VariantPill}, update.Columns[ColumnAppearance])
}

func TestApplyCategoryUpdate_MirrorsLegacyLocations(t *testing.T) {
	current := &Record{
		ID:     "f1",
		Legacy: map[string]any{"theme": "dark", "ui_options": map[string]any{"width": 6}},
	}

	update, err := ApplyCategoryUpdate(current, CategoryGeneral, Settings{"placeholder": "Enter qty", "rows": 4})
	require.NoError(t, err)

	wantLegacy := Settings{
		"theme":       "dark",
		"placeholder": "Enter qty",
		"ui_options":  map[string]any{"width": 6, "placeholder": "Enter qty"},
	}
	assert.Equal(t, wantLegacy, update.Record.Legacy)
	assert.Equal(t, wantLegacy, update.Columns[ColumnLegacy])
	assert.Equal(t, Settings{"placeholder": "Enter qty"}, update.Columns[ColumnUIOptions])
	_, touchedValidation := update.Columns[ColumnValidation]
	assert.False(t, touchedValidation)
}

func TestApplyCategoryUpdate_GeneralEditSurvivesUIOptionsResave(t *testing.T) {
	current := &Record{ID: "f1", UIOptions: map[string]any{"placeholder": "A", "showCharCount": true}}

	update, err := ApplyCategoryUpdate(current, CategoryGeneral, Settings{"placeholder": "B"})
	require.NoError(t, err)
	assert.Equal(t, Settings{"placeholder": "B", "showCharCount": true}, update.Columns[ColumnUIOptions])

	// 原样回存 ui_options 面板不应覆盖刚才的 general 修改
	resave, err := ApplyCategoryUpdate(update.Record, CategoryUIOptions, Object(update.Record.UIOptions))
	require.NoError(t, err)
	assert.Equal(t, "B", ExtractEffectiveGeneralSettings(resave.Record)["placeholder"])
	assert.Equal(t, "B", Object(resave.Record.General)["placeholder"])
}

func TestApplyCategoryUpdate_UIOptionsLandsInGeneral(t *testing.T) {
	current := &Record{ID: "f1", General: map[string]any{"placeholder": "old", "rows": 3}}

	update, err := ApplyCategoryUpdate(current, CategoryUIOptions, Settings{"placeholder": "new"})
	require.NoError(t, err)

	assert.Equal(t, Settings{"placeholder": "new", "rows": 3}, update.Columns[ColumnGeneral])
	assert.Equal(t, Settings{"placeholder": "new"}, update.Columns[ColumnUIOptions])
	assert.Equal(t, "new", ExtractEffectiveGeneralSettings(update.Record)["placeholder"])
}

func TestApplyCategoryUpdate_KeepsUntouchedKeys(t *testing.T) {
	current := &Record{
		ID:         "f1",
		Validation: map[string]any{"pattern": "^a", "nested": map[string]any{"x": 1, "y": 2}},
	}

	update, err := ApplyCategoryUpdate(current, CategoryValidation, Settings{"nested": map[string]any{"y": 3}})
	require.NoError(t, err)
	assert.Equal(t, Settings{"pattern": "^a", "nested": map[string]any{"x": 1, "y": 3}}, update.Record.Validation)
}

func TestExtractEffectiveGeneralSettings_Precedence(t *testing.T) {
	r := &Record{Legacy: map[string]any{"ui_options": map[string]any{"placeholder": "A"}}}
	assert.Equal(t, "A", ExtractEffectiveGeneralSettings(r)["placeholder"])

	r.General = map[string]any{"placeholder": "B"}
	assert.Equal(t, "B", ExtractEffectiveGeneralSettings(r)["placeholder"])
}

func TestExtractEffectiveGeneralSettings_FallbackChain(t *testing.T) {
	r := &Record{
		TopLevel: Settings{"placeholder": "top", "helpText": "top help", "min": 1},
		Legacy: map[string]any{
			"helpText":   "legacy help",
			"ui_options": map[string]any{"hiddenInForms": true, "helpText": "ui help"},
		},
		General: map[string]any{"maxTags": 5, "custom": "kept", "rows": nil},
	}

	got := ExtractEffectiveGeneralSettings(r)
	assert.Equal(t, Settings{
		"placeholder":   "top",
		"helpText":      "legacy help",
		"hiddenInForms": true,
		"min":           1,
		"maxTags":       5,
		"custom":        "kept",
	}, got)

	assert.Equal(t, got, ExtractEffectiveGeneralSettings(r), "stable across calls")
}

func TestExtractEffectiveGeneralSettings_MalformedLocations(t *testing.T) {
	r := &Record{Legacy: "oops", General: []any{1}, TopLevel: Settings{"placeholder": "p"}}
	assert.Equal(t, Settings{"placeholder": "p"}, ExtractEffectiveGeneralSettings(r))
	assert.Equal(t, Settings{}, ExtractEffectiveGeneralSettings(nil))
}

func TestRecordResolveReportsLocation(t *testing.T) {
	r := &Record{Legacy: map[string]any{"rows": 7}}
	v, loc, ok := r.Resolve("rows")
	require.True(t, ok)
	assert.Equal(t, 7, v)
	assert.Equal(t, LocationLegacy, loc)
	assert.Equal(t, "settings", loc.String())

	_, _, ok = r.Resolve("missing")
	assert.False(t, ok)
}
