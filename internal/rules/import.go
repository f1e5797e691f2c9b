package rules

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gofrs/flock"
)

// ImportResult summarizes one CSV import.
type ImportResult struct {
	Added   int
	Skipped int
}

// csvColumns is the lab's scan_type_renames.csv header, in order.
var csvColumns = []string{"project", "series_description", "scan_type", "updated_scan_type"}

// ImportCSV loads rules from the lab's scan_type_renames.csv format into the
// store. A file lock next to the database keeps concurrent imports from
// interleaving.
func (s *Store) ImportCSV(ctx context.Context, path string) (ImportResult, error) {
	lock := flock.New(s.path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return ImportResult{}, fmt.Errorf("acquire import lock: %w", err)
	}
	if !locked {
		return ImportResult{}, errors.New("another import is in progress")
	}
	defer func() { _ = lock.Unlock() }()

	file, err := os.Open(path)
	if err != nil {
		return ImportResult{}, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	return s.importRows(ctx, csv.NewReader(file))
}

func (s *Store) importRows(ctx context.Context, reader *csv.Reader) (ImportResult, error) {
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return ImportResult{}, fmt.Errorf("read csv header: %w", err)
	}
	columns, err := mapColumns(header)
	if err != nil {
		return ImportResult{}, err
	}

	var result ImportResult
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return result, fmt.Errorf("read csv line %d: %w", line, err)
		}

		rule := Rule{
			Project:           field(record, columns["project"]),
			SeriesDescription: field(record, columns["series_description"]),
			CurrentType:       field(record, columns["scan_type"]),
			UpdatedType:       field(record, columns["updated_scan_type"]),
		}
		if rule.Project == "" || rule.SeriesDescription == "" || rule.UpdatedType == "" {
			return result, fmt.Errorf("csv line %d: project, series_description, and updated_scan_type are required", line)
		}

		added, err := s.Add(ctx, rule)
		if err != nil {
			return result, fmt.Errorf("csv line %d: %w", line, err)
		}
		if added {
			result.Added++
		} else {
			result.Skipped++
		}
	}
	return result, nil
}

func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for idx, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = idx
	}
	for _, required := range csvColumns {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("csv header missing column %q (want %s)", required, strings.Join(csvColumns, ","))
		}
	}
	return columns, nil
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
