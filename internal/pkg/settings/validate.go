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
	"regexp"
	"strings"

	"github.com/go-arcade/schemata/internal/pkg/fieldtype"
	"github.com/go-arcade/schemata/internal/pkg/visibility"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// rule checks one non-nil patch value and returns a message, "" when valid.
type rule func(v any) string

var rules = map[Category]map[string]rule{
	CategoryValidation: {
		"required":       isBool,
		"min":            isNumber,
		"max":            isNumber,
		"minLength":      isIntTag("gte=0"),
		"maxLength":      isIntTag("gte=0"),
		"pattern":        isRegexp,
		"domain":         isStringTag("fqdn"),
		"allowedDomains": isStringListTag("fqdn"),
		"urlProtocols":   isStringListTag("alpha"),
		"errorMessage":   isString,
	},
	CategoryAppearance: {
		KeyUIVariant:    isStringTag("oneof=" + strings.Join(UIVariants, " ")),
		"labelPosition": isStringTag("oneof=top left right hidden"),
		"labelSize":     isStringTag("oneof=small medium large"),
		"size":          isStringTag("oneof=small medium large"),
		"customCss":     isString,
		"responsive":    isObject,
	},
	CategoryAdvanced: {
		"computed":    isBool,
		"readonly":    isBool,
		"visibleWhen": isExpression,
	},
	CategoryUIOptions: {
		fieldtype.KeyPlaceholder:   isString,
		fieldtype.KeyHelpText:      isString,
		fieldtype.KeyHiddenInForms: isBool,
		"showCharCount":            isBool,
	},
	CategoryGeneral: {
		fieldtype.KeyPlaceholder:   isString,
		fieldtype.KeyHelpText:      isString,
		fieldtype.KeyHiddenInForms: isBool,
		fieldtype.KeyKeyFilter:     isString,
		fieldtype.KeyMask:          isString,
		fieldtype.KeyMin:           isNumber,
		fieldtype.KeyMax:           isNumber,
		fieldtype.KeyOTPLength:     isIntTag("gte=1,lte=12"),
		fieldtype.KeyMaxTags:       isIntTag("gte=1"),
		fieldtype.KeyPrefix:        isString,
		fieldtype.KeySuffix:        isString,
		fieldtype.KeyRows:          isIntTag("gte=1,lte=100"),
		fieldtype.KeyMinHeight:     isIntTag("gte=0"),
	},
}

// bounds are (lower, upper) key pairs that must stay ordered after the merge.
var bounds = map[Category][][2]string{
	CategoryValidation: {{"min", "max"}, {"minLength", "maxLength"}},
	CategoryGeneral:    {{fieldtype.KeyMin, fieldtype.KeyMax}},
}

// Validate checks a partial settings object for category before it is
// merged. current is the stored category value and is only used to check
// bounds that the patch changes one side of; it may be nil.
func Validate(category Category, patch Settings, current any) error {
	if category.Column() == "" {
		return &ValidationError{Fields: map[string]string{"category": fmt.Sprintf("unknown category %q", category)}}
	}

	fields := map[string]string{}
	for key, v := range patch {
		if v == nil {
			continue
		}
		if check, ok := rules[category][key]; ok {
			if msg := check(v); msg != "" {
				fields[key] = msg
			}
		}
	}

	if len(fields) == 0 {
		merged := Merge(Object(current), patch)
		for _, pair := range bounds[category] {
			lo, loOK := Float(merged[pair[0]])
			hi, hiOK := Float(merged[pair[1]])
			if loOK && hiOK && lo > hi {
				fields[pair[1]] = fmt.Sprintf("must be greater than or equal to %s", pair[0])
			}
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Category: category, Fields: fields}
	}
	return nil
}

func isBool(v any) string {
	if _, ok := Bool(v); !ok {
		return "must be a boolean"
	}
	return ""
}

func isNumber(v any) string {
	if _, ok := Float(v); !ok {
		return "must be numeric"
	}
	return ""
}

func isString(v any) string {
	if _, ok := String(v); !ok {
		return "must be a string"
	}
	return ""
}

func isObject(v any) string {
	if _, ok := object(v); !ok {
		return "must be an object"
	}
	return ""
}

func isIntTag(tag string) rule {
	return func(v any) string {
		n, ok := Int(v)
		if !ok {
			return "must be an integer"
		}
		if err := validate.Var(n, tag); err != nil {
			return "must satisfy " + tag
		}
		return ""
	}
}

func isStringTag(tag string) rule {
	return func(v any) string {
		s, ok := String(v)
		if !ok {
			return "must be a string"
		}
		if err := validate.Var(s, tag); err != nil {
			return "must satisfy " + tag
		}
		return ""
	}
}

func isStringListTag(tag string) rule {
	return func(v any) string {
		list, ok := v.([]any)
		if !ok {
			return "must be a list of strings"
		}
		for i, e := range list {
			s, ok := String(e)
			if !ok {
				return fmt.Sprintf("item %d must be a string", i)
			}
			if err := validate.Var(s, tag); err != nil {
				return fmt.Sprintf("item %d must satisfy %s", i, tag)
			}
		}
		return ""
	}
}

func isRegexp(v any) string {
	s, ok := String(v)
	if !ok {
		return "must be a string"
	}
	if _, err := regexp.Compile(s); err != nil {
		return "must be a valid regular expression"
	}
	return ""
}

func isExpression(v any) string {
	s, ok := String(v)
	if !ok {
		return "must be a string"
	}
	if _, err := visibility.Compile(s); err != nil {
		return err.Error()
	}
	return ""
}
