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

// Package adapter turns stored field records, whatever mix of legacy and
// per-category storage they carry, into one normalized view. The edit
// panel, the preview renderer and the external read API all consume that
// view, so all three observe the same effective values.
package adapter

import (
	"github.com/go-arcade/schemata/internal/pkg/fieldtype"
	"github.com/go-arcade/schemata/internal/pkg/settings"
)

// NormalizedField is the renderer-ready view of a field. Category objects
// are never nil.
type NormalizedField struct {
	ID           string `json:"id"`
	CollectionID string `json:"collectionId"`
	Name         string `json:"name"`
	APIID        string `json:"apiId"`
	Type         string `json:"type"`
	Control      string `json:"control"`
	Required     bool   `json:"required"`
	Description  string `json:"description"`
	SortOrder    int    `json:"sortOrder"`

	Placeholder   string `json:"placeholder"`
	HelpText      string `json:"helpText"`
	HiddenInForms bool   `json:"hiddenInForms"`

	Validation settings.Settings `json:"validation"`
	Appearance settings.Settings `json:"appearance"`
	Advanced   settings.Settings `json:"advanced"`
	UIOptions  settings.Settings `json:"uiOptions"`
	General    settings.Settings `json:"general"`

	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
	MaxTags   *int     `json:"maxTags,omitempty"`
	Mask      string   `json:"mask,omitempty"`
	KeyFilter string   `json:"keyFilter,omitempty"`
	Length    int      `json:"length"`
	Rows      int      `json:"rows"`
	Prefix    string   `json:"prefix,omitempty"`
	Suffix    string   `json:"suffix,omitempty"`
}

// Malformed describes a stored category value that was not an object and
// was replaced by {}.
type Malformed struct {
	FieldID  string
	Location string
	Value    any
}

// Option configures Adapt.
type Option func(*options)

type options struct {
	onMalformed func(Malformed)
}

// WithMalformedHandler registers a diagnostics hook for malformed data.
// The hook only observes; adaptation proceeds either way.
func WithMalformedHandler(fn func(Malformed)) Option {
	return func(o *options) {
		o.onMalformed = fn
	}
}

// Adapt normalizes raw. It never fails: absent or malformed categories
// become {}, and every derived scalar has a default.
func Adapt(raw *settings.Record, opts ...Option) NormalizedField {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if raw == nil {
		raw = &settings.Record{}
	}

	category := func(c settings.Category) settings.Settings {
		v := raw.Category(c)
		if _, ok := settings.AsSettings(v); !ok {
			o.report(raw.ID, c.Column(), v)
		}
		return settings.Object(v)
	}
	if _, ok := settings.AsSettings(raw.Legacy); !ok {
		o.report(raw.ID, settings.ColumnLegacy, raw.Legacy)
	}
	if _, ok := settings.AsSettings(raw.General); !ok {
		o.report(raw.ID, settings.ColumnGeneral, raw.General)
	}

	spec := fieldtype.Resolve(raw.Type)
	general := settings.ExtractEffectiveGeneralSettings(raw)
	validation := category(settings.CategoryValidation)

	n := NormalizedField{
		ID:           raw.ID,
		CollectionID: raw.CollectionID,
		Name:         raw.Name,
		APIID:        raw.APIID,
		Type:         raw.Type,
		Control:      string(spec.Control),
		Description:  raw.Description,
		SortOrder:    raw.SortOrder,

		Validation: validation,
		Appearance: settings.NormalizeAppearance(category(settings.CategoryAppearance)),
		Advanced:   category(settings.CategoryAdvanced),
		UIOptions:  uiOptionsView(category(settings.CategoryUIOptions), general),
		General:    general,

		Length: fieldtype.DefaultOTPLength,
		Rows:   fieldtype.DefaultRows,
	}
	if n.Type == "" {
		n.Type = string(fieldtype.Text)
	}

	required, _ := settings.Bool(validation["required"])
	n.Required = raw.Required || required

	n.Placeholder, _ = settings.String(general[fieldtype.KeyPlaceholder])
	n.HelpText, _ = settings.String(general[fieldtype.KeyHelpText])
	n.HiddenInForms, _ = settings.Bool(general[fieldtype.KeyHiddenInForms])

	n.Min = firstFloat(validation[fieldtype.KeyMin], general[fieldtype.KeyMin])
	n.Max = firstFloat(validation[fieldtype.KeyMax], general[fieldtype.KeyMax])

	if v, ok := settings.Int(general[fieldtype.KeyMaxTags]); ok && v > 0 {
		n.MaxTags = &v
	}
	n.Mask, _ = settings.String(general[fieldtype.KeyMask])
	n.KeyFilter, _ = settings.String(general[fieldtype.KeyKeyFilter])
	if v, ok := settings.Int(general[fieldtype.KeyOTPLength]); ok && v > 0 {
		n.Length = v
	}
	if v, ok := settings.Int(general[fieldtype.KeyRows]); ok && v > 0 {
		n.Rows = v
	}
	n.Prefix, _ = settings.String(general[fieldtype.KeyPrefix])
	n.Suffix, _ = settings.String(general[fieldtype.KeySuffix])

	return n
}

// AdaptAll adapts each record independently, preserving order.
func AdaptAll(raws []*settings.Record, opts ...Option) []NormalizedField {
	out := make([]NormalizedField, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Adapt(raw, opts...))
	}
	return out
}

// EditPayload re-derives the editable category objects from a normalized
// view, as the configuration panel submits them.
func EditPayload(n NormalizedField) map[settings.Category]settings.Settings {
	return map[settings.Category]settings.Settings{
		settings.CategoryValidation: settings.Object(n.Validation),
		settings.CategoryAppearance: settings.Object(n.Appearance),
		settings.CategoryAdvanced:   settings.Object(n.Advanced),
		settings.CategoryUIOptions:  settings.Object(n.UIOptions),
		settings.CategoryGeneral:    settings.Object(n.General),
	}
}

// uiOptionsView overlays the effective mirrored values onto the stored
// ui_options, so the ui_options panel and the general panel show the same
// placeholder, helpText and hiddenInForms.
func uiOptionsView(stored, general settings.Settings) settings.Settings {
	for _, k := range settings.MirroredKeys() {
		if v, ok := general[k]; ok {
			stored[k] = settings.Clone(v)
		}
	}
	return stored
}

func (o *options) report(fieldID, location string, v any) {
	if o.onMalformed != nil {
		o.onMalformed(Malformed{FieldID: fieldID, Location: location, Value: v})
	}
}

// firstFloat returns the first numeric candidate.
func firstFloat(candidates ...any) *float64 {
	for _, c := range candidates {
		if f, ok := settings.Float(c); ok {
			return &f
		}
	}
	return nil
}
