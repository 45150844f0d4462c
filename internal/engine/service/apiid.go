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

package service

import (
	"regexp"
	"strings"
)

var (
	apiIdPattern  = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	apiIdSeparate = regexp.MustCompile(`[^a-z0-9_]+`)
)

// DeriveApiId turns a display name into an api identifier:
// "Release Date (UTC)" -> "release_date_utc"
func DeriveApiId(name string) string {
	id := apiIdSeparate.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
	id = strings.Trim(id, "_")
	if id != "" && id[0] >= '0' && id[0] <= '9' {
		id = "f_" + id
	}
	return id
}

// resolveApiId returns the explicit apiId when given, otherwise derives one from name
func resolveApiId(explicit, name string) (string, error) {
	if explicit == "" {
		id := DeriveApiId(name)
		if id == "" {
			return "", invalid("apiId", "cannot be derived from name")
		}
		return id, nil
	}
	if !apiIdPattern.MatchString(explicit) {
		return "", invalid("apiId", "must start with a letter or underscore and contain only letters, digits and underscores")
	}
	return explicit, nil
}
