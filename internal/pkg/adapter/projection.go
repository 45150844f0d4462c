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

package adapter

import (
	"github.com/go-arcade/schemata/internal/pkg/settings"
)

// APIField is the consumer-facing shape served by the external read API.
type APIField struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	APIID           string             `json:"apiId"`
	Type            string             `json:"type"`
	Description     string             `json:"description"`
	Required        bool               `json:"required"`
	GeneralSettings settings.Settings  `json:"general_settings"`
	HelpText        string             `json:"helpText"`
	Placeholder     string             `json:"placeholder"`
	Appearance      *settings.Settings `json:"appearance,omitempty"`
	Validation      *settings.Settings `json:"validation,omitempty"`
}

// ProjectOptions toggles the optional sub-objects of APIField.
type ProjectOptions struct {
	Appearance bool
	Validation bool
}

// Project maps a normalized field onto the external API shape.
func Project(n NormalizedField, opts ProjectOptions) APIField {
	out := APIField{
		ID:              n.ID,
		Name:            n.Name,
		APIID:           n.APIID,
		Type:            n.Type,
		Description:     n.Description,
		Required:        n.Required,
		GeneralSettings: settings.Object(n.General),
		HelpText:        n.HelpText,
		Placeholder:     n.Placeholder,
	}
	if opts.Appearance {
		appearance := settings.Object(n.Appearance)
		out.Appearance = &appearance
	}
	if opts.Validation {
		validation := settings.Object(n.Validation)
		out.Validation = &validation
	}
	return out
}

// ProjectAll projects fields in order.
func ProjectAll(fields []NormalizedField, opts ProjectOptions) []APIField {
	out := make([]APIField, 0, len(fields))
	for _, f := range fields {
		out = append(out, Project(f, opts))
	}
	return out
}
