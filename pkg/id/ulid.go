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

package id

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

var ulidEntropy = ulid.Monotonic(rand.Reader, 0)

// GetUlid returns a lexically sortable id. Ids generated within the same
// millisecond keep increasing.
func GetUlid() string {
	mu.Lock()
	defer mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), ulidEntropy).String()
}

// IsUlid reports whether s parses as a ULID.
func IsUlid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}
