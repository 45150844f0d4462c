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

package preview

import (
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/go-arcade/schemata/internal/pkg/adapter"
	"github.com/go-arcade/schemata/internal/pkg/fieldtype"
	"github.com/go-arcade/schemata/internal/pkg/settings"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Check validates one submitted value against the field's validation
// settings. It returns an empty string when the value passes. A configured
// errorMessage replaces every message except "is required".
func Check(f adapter.NormalizedField, value any) string {
	if isEmpty(value) {
		if f.Required {
			return "is required"
		}
		return ""
	}

	msg := check(f, value)
	if msg == "" {
		return ""
	}
	if custom, ok := settings.String(f.Validation["errorMessage"]); ok && custom != "" {
		return custom
	}
	return msg
}

func check(f adapter.NormalizedField, value any) string {
	spec := fieldtype.Resolve(f.Type)

	switch {
	case spec.Numeric:
		return checkNumber(f, value)
	case spec.Type == fieldtype.Tags:
		return checkTags(f, value)
	case spec.Type == fieldtype.OTP:
		return checkOTP(f, value)
	case spec.Type == fieldtype.Boolean || spec.Type == fieldtype.Checkbox:
		if _, ok := settings.Bool(value); !ok {
			return "must be true or false"
		}
		return ""
	case spec.Textual:
		s, ok := value.(string)
		if !ok {
			return "must be a string"
		}
		return checkText(f, spec.Type, s)
	}
	return ""
}

func checkNumber(f adapter.NormalizedField, value any) string {
	n, ok := settings.Float(value)
	if !ok {
		return "must be a number"
	}
	if f.Min != nil && n < *f.Min {
		return fmt.Sprintf("must be at least %v", *f.Min)
	}
	if f.Max != nil && n > *f.Max {
		return fmt.Sprintf("must be at most %v", *f.Max)
	}
	return ""
}

func checkTags(f adapter.NormalizedField, value any) string {
	var count int
	switch tags := value.(type) {
	case []any:
		count = len(tags)
	case []string:
		count = len(tags)
	default:
		return "must be a list"
	}
	if f.MaxTags != nil && count > *f.MaxTags {
		return fmt.Sprintf("must have at most %d tags", *f.MaxTags)
	}
	return ""
}

func checkOTP(f adapter.NormalizedField, value any) string {
	s, ok := value.(string)
	if !ok || validate.Var(s, "numeric") != nil {
		return "must be digits"
	}
	if len(s) != f.Length {
		return fmt.Sprintf("must be %d digits", f.Length)
	}
	return ""
}

func checkText(f adapter.NormalizedField, typ fieldtype.Type, s string) string {
	length := utf8.RuneCountInString(s)
	if n, ok := settings.Int(f.Validation["minLength"]); ok && length < n {
		return fmt.Sprintf("must be at least %d characters", n)
	}
	if n, ok := settings.Int(f.Validation["maxLength"]); ok && length > n {
		return fmt.Sprintf("must be at most %d characters", n)
	}
	if pattern, ok := settings.String(f.Validation["pattern"]); ok && pattern != "" {
		re, err := regexp.Compile(pattern)
		if err == nil && !re.MatchString(s) {
			return "does not match the required format"
		}
	}

	switch typ {
	case fieldtype.Email:
		if validate.Var(s, "email") != nil {
			return "must be a valid email address"
		}
		return checkDomain(f, s[strings.LastIndex(s, "@")+1:])
	case fieldtype.URL:
		if validate.Var(s, "url") != nil {
			return "must be a valid URL"
		}
		u, err := url.Parse(s)
		if err != nil {
			return "must be a valid URL"
		}
		if protocols := stringList(f.Validation["urlProtocols"]); len(protocols) > 0 &&
			!slices.Contains(protocols, strings.ToLower(u.Scheme)) {
			return fmt.Sprintf("must use one of %s", strings.Join(protocols, ", "))
		}
		return checkDomain(f, u.Hostname())
	}
	return ""
}

// checkDomain accepts host when it equals, or is a subdomain of, one of
// the allowed domains. No configured domain allows everything.
func checkDomain(f adapter.NormalizedField, host string) string {
	allowed := stringList(f.Validation["allowedDomains"])
	if d, ok := settings.String(f.Validation["domain"]); ok && d != "" {
		allowed = append(allowed, d)
	}
	if len(allowed) == 0 {
		return ""
	}
	host = strings.ToLower(host)
	for _, d := range allowed {
		d = strings.ToLower(strings.TrimPrefix(d, "."))
		if host == d || strings.HasSuffix(host, "."+d) {
			return ""
		}
	}
	return fmt.Sprintf("domain must be one of %s", strings.Join(allowed, ", "))
}

func stringList(v any) []string {
	var out []string
	switch list := v.(type) {
	case []string:
		out = append(out, list...)
	case []any:
		for _, item := range list {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, s := range strings.Split(list, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	for i := range out {
		out[i] = strings.ToLower(out[i])
	}
	return out
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	case []any:
		return len(val) == 0
	case []string:
		return len(val) == 0
	}
	return false
}
