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
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeepMerge(t *testing.T) {
	tests := []struct {
		name  string
		base  any
		patch any
		want  any
	}{
		{
			name:  "nested objects merge",
			base:  map[string]any{"a": map[string]any{"b": 1, "c": 2}},
			patch: map[string]any{"a": map[string]any{"b": 5}},
			want:  map[string]any{"a": map[string]any{"b": 5, "c": 2}},
		},
		{
			name:  "arrays replace",
			base:  map[string]any{"tags": []any{"a", "b"}},
			patch: map[string]any{"tags": []any{"c"}},
			want:  map[string]any{"tags": []any{"c"}},
		},
		{
			name:  "nil patch values are ignored",
			base:  map[string]any{"a": 1},
			patch: map[string]any{"a": nil, "b": 2},
			want:  map[string]any{"a": 1, "b": 2},
		},
		{
			name:  "nil patch keeps base",
			base:  map[string]any{"a": 1},
			patch: nil,
			want:  map[string]any{"a": 1},
		},
		{
			name:  "scalar base upgraded to object",
			base:  "legacy",
			patch: map[string]any{"a": 1},
			want:  map[string]any{"a": 1},
		},
		{
			name:  "scalar base without patch",
			base:  "legacy",
			patch: nil,
			want:  "legacy",
		},
		{
			name:  "object replaced by scalar",
			base:  map[string]any{"a": map[string]any{"b": 1}},
			patch: map[string]any{"a": "flat"},
			want:  map[string]any{"a": "flat"},
		},
		{
			name:  "nested nil skipped under absent key",
			base:  map[string]any{},
			patch: map[string]any{"a": map[string]any{"b": nil, "c": 1}},
			want:  map[string]any{"a": map[string]any{"c": 1}},
		},
		{
			name:  "nested nil skipped under object key",
			base:  map[string]any{"a": map[string]any{}},
			patch: map[string]any{"a": map[string]any{"b": nil, "c": 1}},
			want:  map[string]any{"a": map[string]any{"c": 1}},
		},
		{
			name:  "nested nil skipped under scalar base",
			base:  "legacy",
			patch: map[string]any{"a": map[string]any{"b": nil}, "c": nil},
			want:  map[string]any{"a": map[string]any{}},
		},
		{
			name:  "primitive conflict takes patch",
			base:  map[string]any{"a": 1, "b": true},
			patch: map[string]any{"b": false},
			want:  map[string]any{"a": 1, "b": false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeepMerge(tt.base, tt.patch))
		})
	}
}

func TestDeepMerge_DoesNotMutateInputs(t *testing.T) {
	base := map[string]any{"a": map[string]any{"b": 1}, "list": []any{1, 2}}
	patch := map[string]any{"a": map[string]any{"c": 3}}

	merged := DeepMerge(base, patch).(map[string]any)
	merged["a"].(map[string]any)["b"] = 99
	merged["list"].([]any)[0] = 99

	assert.Equal(t, map[string]any{"a": map[string]any{"b": 1}, "list": []any{1, 2}}, base)
	assert.Equal(t, map[string]any{"a": map[string]any{"c": 3}}, patch)
}

func TestDeepMerge_TypedNilPatch(t *testing.T) {
	var patch Settings
	assert.Equal(t, map[string]any{"a": 1}, DeepMerge(map[string]any{"a": 1}, patch))
	assert.Equal(t, Settings{"a": 1}, Merge(Settings{"a": 1}, nil))
	assert.Equal(t, Settings{}, Merge(nil, nil))
}

func TestDeepMerge_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 200; i++ {
		base := randomObject(rng, 3)
		patch := randomObject(rng, 3)
		merged := DeepMerge(base, patch).(map[string]any)

		for k, v := range base {
			if _, inPatch := patch[k]; !inPatch {
				require.Equal(t, v, merged[k], "base key %s must survive", k)
			}
		}
		for k, v := range patch {
			_, bothObjects := v.(map[string]any)
			if _, ok := base[k].(map[string]any); !ok {
				bothObjects = false
			}
			if !bothObjects {
				require.Equal(t, v, merged[k], "patch key %s must override", k)
			}
		}

		require.Equal(t, base, DeepMerge(base, map[string]any{}), "empty patch is a no-op")
		require.Equal(t, base, DeepMerge(map[string]any{}, base), "empty base takes patch")
		require.Equal(t, merged, DeepMerge(base, patch), "deterministic")
	}
}

// randomObject builds a nested object without nil values.
func randomObject(rng *rand.Rand, depth int) map[string]any {
	out := map[string]any{}
	n := rng.IntN(5)
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("k%d", rng.IntN(6))
		switch rng.IntN(5) {
		case 0:
			out[key] = rng.IntN(100)
		case 1:
			out[key] = fmt.Sprintf("s%d", rng.IntN(100))
		case 2:
			out[key] = rng.IntN(2) == 0
		case 3:
			out[key] = []any{rng.IntN(10), "x"}
		default:
			if depth > 0 {
				out[key] = randomObject(rng, depth-1)
			} else {
				out[key] = 0
			}
		}
	}
	return out
}
