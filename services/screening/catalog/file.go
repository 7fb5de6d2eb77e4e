// Copyright (C) 2025 Aurora Care AI (engineering@auroracare.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AuroraCareAI/PulmoScreen/services/screening/datatypes"
)

// fileSchema is the on-disk YAML shape of a catalog file.
type fileSchema struct {
	Title     string               `yaml:"title"`
	Questions []datatypes.Question `yaml:"questions"`
}

// LoadFile reads a catalog from a YAML file and validates it exactly like
// Load. Any parse or validation problem is fatal; the built-in catalog is
// not used as a fallback, because serving a half-configured questionnaire
// is worse than refusing to start.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", path, err)
	}

	var schema fileSchema
	if err := yaml.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}

	cat, err := Load(schema.Questions)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return cat, nil
}
