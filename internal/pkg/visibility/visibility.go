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

// Package visibility compiles and evaluates conditional visibility
// expressions such as `status == "published" && qty > 1`.
package visibility

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Compile checks that expression is a boolean expression over form values.
// Identifiers are the apiIds of sibling fields; `values` addresses the whole map.
func Compile(expression string) (*vm.Program, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, nil
	}
	program, err := expr.Compile(expression, expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile visibility expression: %w", err)
	}
	return program, nil
}

// Evaluate reports whether a field guarded by expression is visible for
// values. An empty expression is always visible.
func Evaluate(expression string, values map[string]any) (bool, error) {
	program, err := Compile(expression)
	if err != nil {
		return false, err
	}
	if program == nil {
		return true, nil
	}

	env := make(map[string]any, len(values)+1)
	for k, v := range values {
		env[k] = v
	}
	env["values"] = values

	result, err := expr.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("evaluate visibility expression: %w", err)
	}
	visible, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("visibility expression must return bool, got %T", result)
	}
	return visible, nil
}
