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

// Package preview renders a collection's normalized fields as a form and
// checks submitted values against each field's validation settings.
package preview

import (
	"github.com/go-arcade/schemata/internal/pkg/adapter"
	"github.com/go-arcade/schemata/internal/pkg/settings"
	"github.com/go-arcade/schemata/internal/pkg/visibility"
)

const (
	keyDefaultValue = "defaultValue"
	keyVisibleWhen  = "visibleWhen"
	keyReadonly     = "readonly"
)

// Control is one rendered form control.
type Control struct {
	ID           string            `json:"id"`
	APIID        string            `json:"apiId"`
	Label        string            `json:"label"`
	Kind         string            `json:"kind"`
	Type         string            `json:"type"`
	Required     bool              `json:"required"`
	Readonly     bool              `json:"readonly"`
	Placeholder  string            `json:"placeholder,omitempty"`
	HelpText     string            `json:"helpText,omitempty"`
	Appearance   settings.Settings `json:"appearance"`
	DefaultValue any               `json:"defaultValue,omitempty"`
	Value        any               `json:"value,omitempty"`
	Visible      bool              `json:"visible"`
	VisibleError string            `json:"visibleError,omitempty"`

	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
	MaxTags *int     `json:"maxTags,omitempty"`
	Length  int      `json:"length,omitempty"`
	Rows    int      `json:"rows,omitempty"`
	Prefix  string   `json:"prefix,omitempty"`
	Suffix  string   `json:"suffix,omitempty"`
	Mask    string   `json:"mask,omitempty"`
}

// Form is the ordered preview of a collection.
type Form struct {
	Controls []Control         `json:"controls"`
	Errors   map[string]string `json:"errors"`
	Valid    bool              `json:"valid"`
}

// Build renders fields in order against the submitted values and validates
// every visible control. Fields hidden in forms are omitted.
func Build(fields []adapter.NormalizedField, values map[string]any) Form {
	if values == nil {
		values = map[string]any{}
	}
	form := Form{Controls: make([]Control, 0, len(fields)), Errors: map[string]string{}}

	for _, f := range fields {
		if f.HiddenInForms {
			continue
		}
		c := newControl(f)
		if v, ok := values[f.APIID]; ok {
			c.Value = v
		}

		expression, _ := settings.String(f.Advanced[keyVisibleWhen])
		visible, err := visibility.Evaluate(expression, values)
		if err != nil {
			// 表达式异常时仍然展示
			c.Visible = true
			c.VisibleError = err.Error()
		} else {
			c.Visible = visible
		}

		if c.Visible && !c.Readonly {
			if msg := Check(f, valueOrDefault(values, f)); msg != "" {
				form.Errors[f.APIID] = msg
			}
		}
		form.Controls = append(form.Controls, c)
	}

	form.Valid = len(form.Errors) == 0
	return form
}

func newControl(f adapter.NormalizedField) Control {
	label := f.Name
	if label == "" {
		label = f.APIID
	}
	readonly, _ := settings.Bool(f.Advanced[keyReadonly])
	return Control{
		ID:           f.ID,
		APIID:        f.APIID,
		Label:        label,
		Kind:         f.Control,
		Type:         f.Type,
		Required:     f.Required,
		Readonly:     readonly,
		Placeholder:  f.Placeholder,
		HelpText:     f.HelpText,
		Appearance:   settings.Object(f.Appearance),
		DefaultValue: settings.Clone(f.Advanced[keyDefaultValue]),
		Min:          f.Min,
		Max:          f.Max,
		MaxTags:      f.MaxTags,
		Length:       f.Length,
		Rows:         f.Rows,
		Prefix:       f.Prefix,
		Suffix:       f.Suffix,
		Mask:         f.Mask,
	}
}

func valueOrDefault(values map[string]any, f adapter.NormalizedField) any {
	if v, ok := values[f.APIID]; ok && v != nil {
		return v
	}
	return f.Advanced[keyDefaultValue]
}
