// Package importer reads purchase-history files into the grocery
// engine. It owns all boundary validation: the engine itself accepts
// anything, so malformed rows are rejected here, line by line, without
// ever reaching it.
package importer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"pantry/internal/grocery"
)

// LineError describes one rejected input row.
type LineError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// Report summarizes an import run.
type Report struct {
	Records    int         `json:"records"`
	Categories int         `json:"categories"`
	Errors     []LineError `json:"errors,omitempty"`
}

// Import feeds purchase rows from r into the builder. The expected
// format is one record per line, comma- or semicolon-delimited:
//
//	ItemName,WeekNumber[,Category]
//
// The first line is treated as a header and skipped. Rows with an empty
// item name, a non-numeric or non-positive week, or the wrong number of
// columns are reported in the result and not recorded. Blank lines are
// ignored.
func Import(r io.Reader, builder *grocery.ListBuilder) (*Report, error) {
	report := &Report{Errors: []LineError{}}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	header := true
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if header {
			header = false
			continue
		}
		if line == "" {
			continue
		}

		item, week, category, err := parseLine(line)
		if err != nil {
			report.Errors = append(report.Errors, LineError{Line: lineNum, Message: err.Error()})
			continue
		}

		builder.RecordPurchase(item, week)
		report.Records++
		if category != "" {
			builder.AssignCategory(item, grocery.Category(category))
			report.Categories++
		}
	}
	if err := scanner.Err(); err != nil {
		return report, fmt.Errorf("reading import data: %w", err)
	}

	return report, nil
}

// ImportFile opens path and imports it.
func ImportFile(path string, builder *grocery.ListBuilder) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	return Import(f, builder)
}

// parseLine splits one record into its parts and validates them.
func parseLine(line string) (item string, week int, category string, err error) {
	fields := strings.Split(strings.ReplaceAll(line, ";", ","), ",")
	if len(fields) < 2 || len(fields) > 3 {
		return "", 0, "", fmt.Errorf("expected 2 or 3 columns, got %d", len(fields))
	}

	item = strings.TrimSpace(fields[0])
	if item == "" {
		return "", 0, "", fmt.Errorf("empty item name")
	}

	week, err = strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return "", 0, "", fmt.Errorf("invalid week number %q", strings.TrimSpace(fields[1]))
	}
	if week <= 0 {
		return "", 0, "", fmt.Errorf("week must be positive, got %d", week)
	}

	if len(fields) == 3 {
		category = strings.TrimSpace(fields[2])
	}
	return item, week, category, nil
}
