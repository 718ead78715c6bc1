// Package importer provides CSV and Excel import of setting override
// profiles, and DXF import of custom build-plate outlines. CSV import
// supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/piwi3910/PrintPrep/internal/model"
	"github.com/xuri/excelize/v2"
)

// SettingOverride is one imported setting key/value pair.
type SettingOverride struct {
	Key   string
	Value string
}

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Overrides []SettingOverride
	Outline   model.Outline // Set by DXF plate imports only
	Errors    []string
	Warnings  []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Key   int
	Value int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"key":   {"key", "setting", "setting key", "name", "id"},
	"value": {"value", "val", "override", "setting value"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Score: count how many rows have the same column count as the first row.
		// Only consider delimiters that produce more than 1 column.
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column
// role. Returns the mapping and true if a header was detected, or the default
// positional mapping (key, value) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Key: -1, Value: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					switch role {
					case "key":
						if mapping.Key == -1 {
							mapping.Key = i
						}
					case "value":
						if mapping.Value == -1 {
							mapping.Value = i
						}
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Key: 0, Value: 1}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportProfileCSV imports a setting override profile from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// known maps setting keys to their descriptors; rows with unknown keys are
// skipped with a warning, rows with invalid values error out.
func ImportProfileCSV(path string, known map[string]model.SettingDescriptor) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	return importFromReader(bytes.NewReader(data), delimiter, known, warnings)
}

// ImportProfileCSVFromReader imports a profile from an open CSV stream with
// a known delimiter.
func ImportProfileCSVFromReader(reader io.Reader, delimiter rune, known map[string]model.SettingDescriptor) ImportResult {
	return importFromReader(reader, delimiter, known, nil)
}

func importFromReader(reader io.Reader, delimiter rune, known map[string]model.SettingDescriptor, initialWarnings []string) ImportResult {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	if len(records) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}

	return importFromRows(records, "Line", known, initialWarnings)
}

// ImportProfileExcel imports a setting override profile from an Excel
// (.xlsx) file. Reads the first sheet and auto-detects the column mapping
// from headers.
func ImportProfileExcel(path string, known map[string]model.SettingDescriptor) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", known, nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into an override.
func importFromRows(rows [][]string, rowPrefix string, known map[string]model.SettingDescriptor, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	mapping, hasHeader := DetectColumns(rows[0])
	start := 0
	if hasHeader {
		start = 1
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)

		key := getCell(row, mapping.Key)
		if key == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Missing setting key", rowLabel))
			continue
		}
		value := getCell(row, mapping.Value)
		if value == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Missing value for '%s'", rowLabel, key))
			continue
		}

		descriptor, ok := known[key]
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Unknown setting '%s', skipped", rowLabel, key))
			continue
		}
		if descriptor.IsCategory() {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: '%s' is a category, skipped", rowLabel, key))
			continue
		}

		result.Overrides = append(result.Overrides, SettingOverride{Key: key, Value: value})
	}
	return result
}
