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

// Package settings owns the shape of a field's configuration and the rules
// for reconciling partial category updates with previously stored state.
//
// A field stores its configuration in five category columns plus a legacy
// aggregate blob (`settings`, optionally carrying a `ui_options` object)
// and a handful of top-level scalars. Everything here is a pure transform
// over those values; persistence is the caller's concern.
package settings

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Settings is one settings category: string keys to JSON-like values.
// Unknown keys are kept untouched.
type Settings map[string]any

// Category names a settings partition of a field.
type Category string

const (
	CategoryValidation Category = "validation"
	CategoryAppearance Category = "appearance"
	CategoryAdvanced   Category = "advanced"
	CategoryUIOptions  Category = "ui_options"
	CategoryGeneral    Category = "general"
)

// Categories lists every category in storage order.
var Categories = []Category{
	CategoryValidation,
	CategoryAppearance,
	CategoryAdvanced,
	CategoryUIOptions,
	CategoryGeneral,
}

// Storage column names.
const (
	ColumnLegacy     = "settings"
	ColumnValidation = "validation_settings"
	ColumnAppearance = "appearance_settings"
	ColumnAdvanced   = "advanced_settings"
	ColumnUIOptions  = "ui_options_settings"
	ColumnGeneral    = "general_settings"
)

// LegacyUIOptionsKey is the key of the ui_options object nested in the legacy blob.
const LegacyUIOptionsKey = "ui_options"

// ParseCategory accepts the category names used by the API, including the
// uiOptions spelling older clients send.
func ParseCategory(raw string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "validation":
		return CategoryValidation, nil
	case "appearance":
		return CategoryAppearance, nil
	case "advanced":
		return CategoryAdvanced, nil
	case "ui_options", "uioptions", "ui-options":
		return CategoryUIOptions, nil
	case "general":
		return CategoryGeneral, nil
	}
	return "", fmt.Errorf("unknown settings category %q", raw)
}

// Column returns the storage column of the category.
func (c Category) Column() string {
	switch c {
	case CategoryValidation:
		return ColumnValidation
	case CategoryAppearance:
		return ColumnAppearance
	case CategoryAdvanced:
		return ColumnAdvanced
	case CategoryUIOptions:
		return ColumnUIOptions
	case CategoryGeneral:
		return ColumnGeneral
	}
	return ""
}

// AsSettings returns v as a Settings map. ok is false when v is present but
// not an object.
func AsSettings(v any) (s Settings, ok bool) {
	switch m := v.(type) {
	case nil:
		return nil, true
	case Settings:
		return m, true
	case map[string]any:
		return Settings(m), true
	}
	return nil, false
}

// Object returns v as Settings, substituting an empty map when v is absent
// or malformed. The result is always a fresh copy.
func Object(v any) Settings {
	s, ok := AsSettings(v)
	if !ok || s == nil {
		return Settings{}
	}
	return Clone(s).(Settings)
}

// Clone deep copies maps and slices; other values are returned as is.
// A top-level Settings stays Settings, nested objects are always plain
// map[string]any.
func Clone(v any) any {
	if s, ok := v.(Settings); ok {
		return Settings(cloneMap(s))
	}
	return cloneNested(v)
}

func cloneNested(v any) any {
	switch t := v.(type) {
	case Settings:
		return cloneMap(t)
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneNested(e)
		}
		return out
	}
	return v
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, e := range m {
		out[k] = cloneNested(e)
	}
	return out
}

// Float reads a numeric value, accepting numeric strings from form inputs.
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil && !math.IsNaN(f)
	}
	return 0, false
}

// Int reads an integral value. Fractions are rejected.
func Int(v any) (int, bool) {
	f, ok := Float(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	// 超出 int 范围的浮点数转换结果依赖平台
	if f < math.MinInt || f >= -math.MinInt {
		return 0, false
	}
	return int(f), true
}

// String reads a string value. Numbers and bools are not converted.
func String(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// Bool reads a bool, accepting "true"/"false" strings.
func Bool(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return parsed, err == nil
	}
	return false, false
}
