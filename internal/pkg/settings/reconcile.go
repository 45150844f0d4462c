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
	"slices"

	"github.com/go-arcade/schemata/internal/pkg/fieldtype"
)

// mirroredKeys are copied into the legacy blob, settings.ui_options and
// the sibling general or ui_options column whenever an update of one of
// those two categories touches them.
var mirroredKeys = []string{
	fieldtype.KeyPlaceholder,
	fieldtype.KeyHelpText,
	fieldtype.KeyHiddenInForms,
}

// MirroredKeys returns the keys kept in step between general_settings,
// ui_options_settings and the legacy locations.
func MirroredKeys() []string {
	return slices.Clone(mirroredKeys)
}

// Update is the result of a category update: the full updated record and
// the columns that changed, keyed by storage column name. Columns is the
// payload handed to the repository.
type Update struct {
	Record  *Record
	Columns map[string]Settings
}

// ApplyCategoryUpdate validates partial, deep merges it into the stored
// category of current and mirrors placeholder, helpText and hiddenInForms
// into the legacy locations. Appearance results are normalized. current is
// not modified.
//
// general_settings and ui_options_settings always agree on the mirrored
// keys: an update of either one writes the touched keys into the other.
func ApplyCategoryUpdate(current *Record, category Category, partial Settings) (*Update, error) {
	if current == nil {
		return nil, ErrNotFound
	}
	if err := Validate(category, partial, current.Category(category)); err != nil {
		return nil, err
	}

	updated := current.Copy()
	merged := Merge(Object(current.Category(category)), partial)
	if category == CategoryAppearance {
		merged = NormalizeAppearance(merged)
	}
	updated.SetCategory(category, merged)

	columns := map[string]Settings{category.Column(): merged}

	if category != CategoryGeneral && category != CategoryUIOptions {
		return &Update{Record: updated, Columns: columns}, nil
	}

	var touched []string
	for _, k := range mirroredKeys {
		if v, ok := partial[k]; ok && v != nil {
			touched = append(touched, k)
		}
	}
	if len(touched) == 0 {
		return &Update{Record: updated, Columns: columns}, nil
	}

	legacy := Object(updated.Legacy)
	uiOptions := Object(legacy[LegacyUIOptionsKey])
	for _, k := range touched {
		legacy[k] = cloneNested(merged[k])
		uiOptions[k] = cloneNested(merged[k])
	}
	legacy[LegacyUIOptionsKey] = map[string]any(uiOptions)
	updated.Legacy = legacy
	columns[ColumnLegacy] = legacy

	sibling := CategoryGeneral
	if category == CategoryGeneral {
		sibling = CategoryUIOptions
	}
	other := Object(updated.Category(sibling))
	for _, k := range touched {
		other[k] = cloneNested(merged[k])
	}
	updated.SetCategory(sibling, other)
	columns[sibling.Column()] = other

	return &Update{Record: updated, Columns: columns}, nil
}

// ExtractEffectiveGeneralSettings flattens every general setting of r into
// one object, resolving each known key through Precedence. Unknown keys
// stored in general_settings are carried over as is. r is not modified.
func ExtractEffectiveGeneralSettings(r *Record) Settings {
	out := Settings{}
	if r == nil {
		return out
	}

	if general, ok := object(r.General); ok {
		for k, v := range general {
			if v != nil {
				out[k] = cloneNested(v)
			}
		}
	}
	for _, key := range fieldtype.GeneralKeys() {
		if v, _, ok := r.Resolve(key); ok {
			out[key] = cloneNested(v)
		}
	}
	return out
}
