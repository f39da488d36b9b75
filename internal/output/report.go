// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/reqextract/pkg/types"
)

// WriteReport writes the run report to path. A .json extension selects
// JSON; any other extension is written as YAML.
func WriteReport(path string, report types.RunReport) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		data = append(data, '\n')
	} else {
		data, err = yaml.Marshal(&report)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
	}
	return writeFile(path, string(data))
}

// ReadReport loads a report written by WriteReport.
func ReadReport(path string) (types.RunReport, error) {
	var report types.RunReport
	data, err := os.ReadFile(path)
	if err != nil {
		return report, fmt.Errorf("reading report %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &report)
	} else {
		err = yaml.Unmarshal(data, &report)
	}
	if err != nil {
		return report, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return report, nil
}
