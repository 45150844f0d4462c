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

// Record is a stored field as the reconciler sees it. Category values are
// kept as decoded from storage (any), so historically malformed data (a
// string where an object belongs, say) survives until someone normalizes it.
type Record struct {
	ID           string
	CollectionID string
	Name         string
	APIID        string
	Type         string
	Required     bool
	Description  string
	SortOrder    int

	// TopLevel holds legacy scalars stored directly on the field
	// (placeholder, helpText, min, max).
	TopLevel Settings

	Legacy     any
	Validation any
	Appearance any
	Advanced   any
	UIOptions  any
	General    any
}

// Category returns the raw stored value of category c.
func (r *Record) Category(c Category) any {
	switch c {
	case CategoryValidation:
		return r.Validation
	case CategoryAppearance:
		return r.Appearance
	case CategoryAdvanced:
		return r.Advanced
	case CategoryUIOptions:
		return r.UIOptions
	case CategoryGeneral:
		return r.General
	}
	return nil
}

// SetCategory replaces the stored value of category c.
func (r *Record) SetCategory(c Category, v Settings) {
	switch c {
	case CategoryValidation:
		r.Validation = v
	case CategoryAppearance:
		r.Appearance = v
	case CategoryAdvanced:
		r.Advanced = v
	case CategoryUIOptions:
		r.UIOptions = v
	case CategoryGeneral:
		r.General = v
	}
}

// Copy returns a deep copy of r.
func (r *Record) Copy() *Record {
	cp := *r
	if r.TopLevel != nil {
		cp.TopLevel = Clone(r.TopLevel).(Settings)
	}
	cp.Legacy = Clone(r.Legacy)
	cp.Validation = Clone(r.Validation)
	cp.Appearance = Clone(r.Appearance)
	cp.Advanced = Clone(r.Advanced)
	cp.UIOptions = Clone(r.UIOptions)
	cp.General = Clone(r.General)
	return &cp
}

// Location is one place a logical general setting may be stored.
type Location int

const (
	// LocationGeneral is general_settings.<key>.
	LocationGeneral Location = iota
	// LocationLegacy is settings.<key>.
	LocationLegacy
	// LocationLegacyUIOptions is settings.ui_options.<key>.
	LocationLegacyUIOptions
	// LocationTopLevel is the scalar stored on the field itself.
	LocationTopLevel
)

func (l Location) String() string {
	switch l {
	case LocationGeneral:
		return "general_settings"
	case LocationLegacy:
		return "settings"
	case LocationLegacyUIOptions:
		return "settings.ui_options"
	case LocationTopLevel:
		return "field"
	}
	return "unknown"
}

// Precedence is the lookup order for general settings, most specific first.
var Precedence = []Location{
	LocationGeneral,
	LocationLegacy,
	LocationLegacyUIOptions,
	LocationTopLevel,
}

// Lookup reads key at one location. A nil value counts as absent.
func (r *Record) Lookup(loc Location, key string) (any, bool) {
	var container map[string]any
	switch loc {
	case LocationGeneral:
		container, _ = object(r.General)
	case LocationLegacy:
		container, _ = object(r.Legacy)
	case LocationLegacyUIOptions:
		legacy, _ := object(r.Legacy)
		container, _ = object(legacy[LegacyUIOptionsKey])
	case LocationTopLevel:
		container = r.TopLevel
	}
	v, ok := container[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Resolve walks Precedence and returns the first value stored for key along
// with where it was found.
func (r *Record) Resolve(key string) (any, Location, bool) {
	for _, loc := range Precedence {
		if v, ok := r.Lookup(loc, key); ok {
			return v, loc, true
		}
	}
	return nil, 0, false
}
