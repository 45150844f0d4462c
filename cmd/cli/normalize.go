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

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/schemata/internal/engine/model"
	"github.com/go-arcade/schemata/internal/pkg/adapter"
	"github.com/go-arcade/schemata/internal/pkg/settings"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

type normalizeOptions struct {
	project    bool
	appearance bool
	validation bool
}

// newNormalizeCmd adapts stored field rows (as exported from t_field) and
// prints the normalized or external view.
func newNormalizeCmd() *cobra.Command {
	opts := &normalizeOptions{}
	cmd := &cobra.Command{
		Use:   "normalize <file.json|file.yaml>",
		Short: "Normalize stored field records",
		Long:  "Reads one field record or an array of records and prints the normalized view. Malformed settings are reported on stderr.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if ext := strings.ToLower(filepath.Ext(args[0])); ext == ".yaml" || ext == ".yml" {
				if data, err = yaml.YAMLToJSON(data); err != nil {
					return fmt.Errorf("convert %s: %w", args[0], err)
				}
			}
			fields, err := decodeFields(data)
			if err != nil {
				return fmt.Errorf("decode %s: %w", args[0], err)
			}

			records := make([]*settings.Record, 0, len(fields))
			for _, f := range fields {
				records = append(records, f.ToRecord())
			}
			normalized := adapter.AdaptAll(records, adapter.WithMalformedHandler(func(m adapter.Malformed) {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: field %s: malformed %s replaced with {}\n", m.FieldID, m.Location)
			}))

			var out any = normalized
			if opts.project {
				out = adapter.ProjectAll(normalized, adapter.ProjectOptions{
					Appearance: opts.appearance,
					Validation: opts.validation,
				})
			}
			encoded, err := sonic.ConfigStd.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return err
		},
	}

	cmd.Flags().BoolVar(&opts.project, "project", false, "print the external API shape instead of the normalized view")
	cmd.Flags().BoolVar(&opts.appearance, "appearance", false, "include appearance in the external shape")
	cmd.Flags().BoolVar(&opts.validation, "validation", false, "include validation in the external shape")
	return cmd
}

func decodeFields(data []byte) ([]*model.Field, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var fields []*model.Field
		if err := sonic.Unmarshal(data, &fields); err != nil {
			return nil, err
		}
		return fields, nil
	}
	var field model.Field
	if err := sonic.Unmarshal(data, &field); err != nil {
		return nil, err
	}
	return []*model.Field{&field}, nil
}
