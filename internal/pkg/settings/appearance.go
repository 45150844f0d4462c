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
	"strings"
)

// KeyUIVariant is the appearance key selecting the control style.
const KeyUIVariant = "uiVariant"

// UI variants.
const (
	VariantStandard   = "standard"
	VariantMaterial   = "material"
	VariantPill       = "pill"
	VariantBorderless = "borderless"
	VariantUnderlined = "underlined"
)

// UIVariants is the fixed set of accepted variants.
var UIVariants = []string{
	VariantStandard,
	VariantMaterial,
	VariantPill,
	VariantBorderless,
	VariantUnderlined,
}

// NormalizeAppearance returns a copy of v whose uiVariant is always one of
// UIVariants, "standard" when missing or unrecognised. Malformed input
// yields {"uiVariant": "standard"}. Normalizing twice changes nothing.
func NormalizeAppearance(v any) Settings {
	out := Object(v)
	out[KeyUIVariant] = normalizeVariant(out[KeyUIVariant])
	return out
}

func normalizeVariant(v any) string {
	s, ok := String(v)
	if !ok {
		return VariantStandard
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if slices.Contains(UIVariants, s) {
		return s
	}
	return VariantStandard
}
