package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	ColumnCharacter = "character"
	ColumnMoveName  = "movename"
	ColumnAltNames  = "altnames"
	ColumnDamage    = "damage"
	ColumnKey       = "key"
	ColumnValue     = "value"
)

// NormalizeColumn maps a CSV header such as "Move Name" to "movename".
func NormalizeColumn(header string) string {
	header = strings.TrimPrefix(header, "\ufeff")
	return Fold(strings.Join(strings.Fields(header), ""))
}

// Table is a parsed CSV file addressed by normalized column name.
type Table struct {
	columns map[string]int
	Rows    [][]string
}

func (t *Table) Has(column string) bool {
	_, ok := t.columns[column]
	return ok
}

// Get returns the cell for column, or "" when the row is short or the column
// is absent.
func (t *Table) Get(row []string, column string) string {
	i, ok := t.columns[column]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func ReadTable(r io.Reader, required ...string) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading csv: missing header: %w", ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	table := &Table{columns: make(map[string]int, len(header))}
	for i, name := range header {
		key := NormalizeColumn(name)
		if _, exists := table.columns[key]; !exists {
			table.columns[key] = i
		}
	}
	for _, column := range required {
		if !table.Has(column) {
			return nil, fmt.Errorf("reading csv: missing column %q: %w", column, ErrInvalidInput)
		}
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		if isBlankRow(row) {
			continue
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

func ReadEntries(r io.Reader) ([]Entry, error) {
	table, err := ReadTable(r, ColumnCharacter, ColumnMoveName, ColumnDamage)
	if err != nil {
		return nil, fmt.Errorf("reading frame data: %w", err)
	}
	entries := make([]Entry, 0, len(table.Rows))
	for _, row := range table.Rows {
		entries = append(entries, Entry{
			Character: strings.TrimSpace(table.Get(row, ColumnCharacter)),
			MoveName:  table.Get(row, ColumnMoveName),
			AltNames:  table.Get(row, ColumnAltNames),
			Damage:    table.Get(row, ColumnDamage),
		})
	}
	return entries, nil
}

func ReadAliases(r io.Reader) ([]Alias, error) {
	table, err := ReadTable(r, ColumnKey, ColumnValue)
	if err != nil {
		return nil, fmt.Errorf("reading aliases: %w", err)
	}
	aliases := make([]Alias, 0, len(table.Rows))
	for _, row := range table.Rows {
		aliases = append(aliases, Alias{
			Key:   strings.TrimSpace(table.Get(row, ColumnKey)),
			Value: table.Get(row, ColumnValue),
		})
	}
	return aliases, nil
}

func ReadEntriesFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening frame data: %w", err)
	}
	defer f.Close()
	return ReadEntries(f)
}

func ReadAliasesFile(path string) ([]Alias, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening aliases: %w", err)
	}
	defer f.Close()
	return ReadAliases(f)
}

// LoadFiles builds a Catalog from a frame data CSV and an optional alias CSV.
func LoadFiles(framePath, aliasPath string) (*Catalog, error) {
	entries, err := ReadEntriesFile(framePath)
	if err != nil {
		return nil, err
	}
	var aliases []Alias
	if aliasPath != "" {
		aliases, err = ReadAliasesFile(aliasPath)
		if err != nil {
			return nil, err
		}
	}
	return New(entries, aliases)
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
