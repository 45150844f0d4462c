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

package fieldtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	spec, ok := Lookup("  Number ")
	assert.True(t, ok)
	assert.Equal(t, ControlNumber, spec.Control)
	assert.True(t, spec.Numeric)

	_, ok = Lookup("hologram")
	assert.False(t, ok)
}

func TestResolveFallsBackToText(t *testing.T) {
	assert.Equal(t, Text, Resolve("hologram").Type)
	assert.Equal(t, OTP, Resolve("otp").Type)
}

func TestGeneralKeys(t *testing.T) {
	keys := GeneralKeys()
	assert.Equal(t, []string{KeyPlaceholder, KeyHelpText, KeyHiddenInForms}, keys[:3])
	for _, k := range []string{KeyKeyFilter, KeyMin, KeyMax, KeyOTPLength, KeyMaxTags, KeyPrefix, KeySuffix, KeyRows, KeyMinHeight, KeyMask} {
		assert.Contains(t, keys, k)
	}

	seen := map[string]bool{}
	for _, k := range keys {
		assert.False(t, seen[k], "duplicate key %s", k)
		seen[k] = true
	}
}

func TestSpecHas(t *testing.T) {
	spec := Resolve("slug")
	assert.True(t, spec.Has(KeyPrefix))
	assert.True(t, spec.Has(KeyPlaceholder))
	assert.False(t, spec.Has(KeyOTPLength))
	assert.Equal(t, []string{KeyPlaceholder, KeyHelpText, KeyHiddenInForms, KeyPrefix, KeySuffix}, spec.AllKeys())
}

func TestAllIsSorted(t *testing.T) {
	types := All()
	for i := 1; i < len(types); i++ {
		assert.Less(t, string(types[i-1]), string(types[i]))
	}
}
