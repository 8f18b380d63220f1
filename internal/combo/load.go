package combo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"skombo/internal/catalog"
)

const (
	columnExpectedDamage = "expecteddamage"
	columnMoveName       = catalog.ColumnMoveName
)

// LoadComboFile reads a combo CSV with Character, ExpectedDamage and
// MoveName columns. Character and expected damage come from the first row
// that sets them; the notation is every non-empty MoveName cell in order.
// The combo is named after the file.
func LoadComboFile(path string) (Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return Input{}, fmt.Errorf("opening combo: %w", err)
	}
	defer f.Close()

	table, err := catalog.ReadTable(f, catalog.ColumnCharacter, columnExpectedDamage, columnMoveName)
	if err != nil {
		return Input{}, fmt.Errorf("reading combo %s: %w", path, err)
	}

	in := Input{Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}
	var (
		moves       []string
		hasExpected bool
	)
	for _, row := range table.Rows {
		if in.Character == "" {
			in.Character = strings.TrimSpace(table.Get(row, catalog.ColumnCharacter))
		}
		if raw := strings.TrimSpace(table.Get(row, columnExpectedDamage)); raw != "" && !hasExpected {
			expected, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return Input{}, fmt.Errorf("reading combo %s: expected damage %q: %w", path, raw, catalog.ErrInvalidInput)
			}
			in.ExpectedDamage = expected
			hasExpected = true
		}
		if move := strings.TrimSpace(table.Get(row, columnMoveName)); move != "" {
			moves = append(moves, move)
		}
	}

	if in.Character == "" {
		return Input{}, fmt.Errorf("reading combo %s: no character: %w", path, catalog.ErrInvalidInput)
	}
	in.Notation = strings.Join(moves, " ")
	return in, nil
}

// LoadComboDir reads every *.csv file in dir, ordered by file name. A file
// that cannot be read is returned as a failed BatchResult named after the
// file, so a batch can report it next to the combos that did load.
func LoadComboDir(dir string) ([]Input, []BatchResult, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, nil, fmt.Errorf("listing combos: %w", err)
	}
	sort.Strings(paths)

	inputs := make([]Input, 0, len(paths))
	var failed []BatchResult
	for _, path := range paths {
		in, err := LoadComboFile(path)
		if err != nil {
			name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			failed = append(failed, BatchResult{Input: Input{Name: name}, Err: err})
			continue
		}
		inputs = append(inputs, in)
	}
	return inputs, failed, nil
}
