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

// Package fieldtype is the fixed catalog of field types. Every field type
// selects a renderer control and the general-settings keys that apply to it.
package fieldtype

import (
	"slices"
	"strings"
)

// Type is the field type discriminator.
type Type string

const (
	Text     Type = "text"
	Textarea Type = "textarea"
	Number   Type = "number"
	Date     Type = "date"
	Boolean  Type = "boolean"
	Checkbox Type = "checkbox"
	Select   Type = "select"
	Dropdown Type = "dropdown"
	Relation Type = "relation"
	Media    Type = "media"
	Rating   Type = "rating"
	Tags     Type = "tags"
	OTP      Type = "otp"
	Slug     Type = "slug"
	Markdown Type = "markdown"
	RichText Type = "richtext"
	Email    Type = "email"
	URL      Type = "url"
	Password Type = "password"
	Color    Type = "color"
	JSON     Type = "json"
)

// Control is the kind of input a renderer binds to a field.
type Control string

const (
	ControlInput    Control = "input"
	ControlTextarea Control = "textarea"
	ControlNumber   Control = "number"
	ControlDate     Control = "date"
	ControlSwitch   Control = "switch"
	ControlCheckbox Control = "checkbox"
	ControlSelect   Control = "select"
	ControlRelation Control = "relation"
	ControlMedia    Control = "media"
	ControlRating   Control = "rating"
	ControlTags     Control = "tags"
	ControlOTP      Control = "otp"
	ControlSlug     Control = "slug"
	ControlEditor   Control = "editor"
	ControlPassword Control = "password"
	ControlColor    Control = "color"
	ControlJSON     Control = "json"
)

// General settings keys shared by every type.
const (
	KeyPlaceholder   = "placeholder"
	KeyHelpText      = "helpText"
	KeyHiddenInForms = "hiddenInForms"
)

// Type specific general settings keys.
const (
	KeyKeyFilter = "keyFilter"
	KeyMask      = "mask"
	KeyMin       = "min"
	KeyMax       = "max"
	KeyOTPLength = "otpLength"
	KeyMaxTags   = "maxTags"
	KeyPrefix    = "prefix"
	KeySuffix    = "suffix"
	KeyRows      = "rows"
	KeyMinHeight = "minHeight"
)

const (
	DefaultOTPLength = 6
	DefaultRows      = 10
)

// Spec describes one catalog entry.
type Spec struct {
	Type    Type
	Control Control
	// Keys lists the type specific general settings keys.
	Keys []string
	// Numeric reports whether values of this type compare as numbers.
	Numeric bool
	// Textual reports whether values of this type are measured in characters.
	Textual bool
}

var catalog = map[Type]Spec{
	Text:     {Type: Text, Control: ControlInput, Keys: []string{KeyKeyFilter, KeyMask}, Textual: true},
	Textarea: {Type: Textarea, Control: ControlTextarea, Keys: []string{KeyRows}, Textual: true},
	Number:   {Type: Number, Control: ControlNumber, Keys: []string{KeyMin, KeyMax}, Numeric: true},
	Date:     {Type: Date, Control: ControlDate},
	Boolean:  {Type: Boolean, Control: ControlSwitch},
	Checkbox: {Type: Checkbox, Control: ControlCheckbox},
	Select:   {Type: Select, Control: ControlSelect},
	Dropdown: {Type: Dropdown, Control: ControlSelect},
	Relation: {Type: Relation, Control: ControlRelation},
	Media:    {Type: Media, Control: ControlMedia},
	Rating:   {Type: Rating, Control: ControlRating, Keys: []string{KeyMax}, Numeric: true},
	Tags:     {Type: Tags, Control: ControlTags, Keys: []string{KeyMaxTags}},
	OTP:      {Type: OTP, Control: ControlOTP, Keys: []string{KeyOTPLength, KeyMask}},
	Slug:     {Type: Slug, Control: ControlSlug, Keys: []string{KeyPrefix, KeySuffix}, Textual: true},
	Markdown: {Type: Markdown, Control: ControlEditor, Keys: []string{KeyMinHeight}, Textual: true},
	RichText: {Type: RichText, Control: ControlEditor, Keys: []string{KeyMinHeight}, Textual: true},
	Email:    {Type: Email, Control: ControlInput, Keys: []string{KeyKeyFilter}, Textual: true},
	URL:      {Type: URL, Control: ControlInput, Keys: []string{KeyPrefix}, Textual: true},
	Password: {Type: Password, Control: ControlPassword, Textual: true},
	Color:    {Type: Color, Control: ControlColor},
	JSON:     {Type: JSON, Control: ControlJSON},
}

// commonKeys apply to every type.
var commonKeys = []string{KeyPlaceholder, KeyHelpText, KeyHiddenInForms}

// Normalize trims and lowercases a raw type string.
func Normalize(raw string) Type {
	return Type(strings.ToLower(strings.TrimSpace(raw)))
}

// Lookup returns the catalog entry for raw.
func Lookup(raw string) (Spec, bool) {
	spec, ok := catalog[Normalize(raw)]
	return spec, ok
}

// Known reports whether raw names a catalog type.
func Known(raw string) bool {
	_, ok := Lookup(raw)
	return ok
}

// Resolve returns the catalog entry for raw, falling back to text for
// types the catalog does not know so stored records always render.
func Resolve(raw string) Spec {
	if spec, ok := Lookup(raw); ok {
		return spec
	}
	return catalog[Text]
}

// All returns every catalog type in a stable order.
func All() []Type {
	types := make([]Type, 0, len(catalog))
	for t := range catalog {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

// GeneralKeys returns every general settings key known to any type,
// common keys first.
func GeneralKeys() []string {
	keys := slices.Clone(commonKeys)
	for _, t := range All() {
		for _, k := range catalog[t].Keys {
			if !slices.Contains(keys, k) {
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// AllKeys returns the common keys followed by the type specific keys.
func (s Spec) AllKeys() []string {
	return append(slices.Clone(commonKeys), s.Keys...)
}

// Has reports whether key applies to the type.
func (s Spec) Has(key string) bool {
	return slices.Contains(commonKeys, key) || slices.Contains(s.Keys, key)
}
