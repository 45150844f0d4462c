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

// DeepMerge merges patch over base and returns a new value. Neither input
// is modified and the result shares no maps or slices with them.
//
//   - a nil patch (absent or JSON null) keeps base
//   - nil values inside a patch object are skipped, whatever the base
//   - two objects merge key by key, recursively
//   - arrays replace wholesale
//   - any other conflict takes the patch value
func DeepMerge(base, patch any) any {
	if patch == nil || isNilObject(patch) {
		return Clone(base)
	}

	patchObj, patchIsObj := object(patch)
	if !patchIsObj {
		return cloneNested(patch)
	}
	// 非对象的 base 按空对象合并
	baseObj, _ := object(base)

	out := make(map[string]any, len(baseObj)+len(patchObj))
	for k, v := range baseObj {
		out[k] = cloneNested(v)
	}
	for k, v := range patchObj {
		if v == nil {
			continue
		}
		out[k] = DeepMerge(baseObj[k], v)
	}
	return out
}

// Merge is DeepMerge over two categories. A malformed base is treated as empty.
func Merge(base, patch Settings) Settings {
	merged, _ := object(DeepMerge(map[string]any(base), map[string]any(patch)))
	if merged == nil {
		return Settings{}
	}
	return Settings(merged)
}

// isNilObject reports a typed nil map, which JSON decoding never produces
// but Go callers easily do.
func isNilObject(v any) bool {
	switch m := v.(type) {
	case Settings:
		return m == nil
	case map[string]any:
		return m == nil
	}
	return false
}

// object reports whether v is a non-nil object.
func object(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Settings:
		return m, m != nil
	case map[string]any:
		return m, m != nil
	}
	return nil, false
}
