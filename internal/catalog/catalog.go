package catalog

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

type Entry struct {
	Character string
	MoveName  string
	AltNames  string
	Damage    string
}

type Alias struct {
	Key   string
	Value string
}

// Catalog is the read-only move catalog and alias table. It is safe for
// concurrent use once built.
type Catalog struct {
	entries    []Entry
	aliases    []Alias
	characters map[string]*characterIndex
	order      []string
	aliasIndex []aliasEntry
}

type characterIndex struct {
	name    string
	entries []Entry
	byName  map[string][]int
	byAlt   map[string][]int
}

type aliasEntry struct {
	key    string
	values []string
}

func New(entries []Entry, aliases []Alias) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("building catalog: no moves: %w", ErrInvalidInput)
	}

	c := &Catalog{
		entries:    append([]Entry(nil), entries...),
		aliases:    append([]Alias(nil), aliases...),
		characters: make(map[string]*characterIndex),
	}

	for i, entry := range entries {
		if strings.TrimSpace(entry.Character) == "" {
			return nil, fmt.Errorf("building catalog: row %d has no character: %w", i+1, ErrInvalidInput)
		}
		if strings.TrimSpace(entry.MoveName) == "" {
			return nil, fmt.Errorf("building catalog: row %d has no move name: %w", i+1, ErrInvalidInput)
		}

		key := Fold(entry.Character)
		idx, ok := c.characters[key]
		if !ok {
			idx = &characterIndex{
				name:   strings.TrimSpace(entry.Character),
				byName: make(map[string][]int),
				byAlt:  make(map[string][]int),
			}
			c.characters[key] = idx
			c.order = append(c.order, idx.name)
		}

		pos := len(idx.entries)
		idx.entries = append(idx.entries, entry)
		for _, name := range SplitNames(entry.MoveName) {
			idx.byName[Fold(name)] = append(idx.byName[Fold(name)], pos)
		}
		for _, name := range SplitNames(entry.AltNames) {
			idx.byAlt[Fold(name)] = append(idx.byAlt[Fold(name)], pos)
		}
	}

	for _, alias := range aliases {
		key := strings.TrimSpace(alias.Key)
		if key == "" {
			continue
		}
		values := SplitNames(alias.Value)
		folded := make([]string, 0, len(values))
		for _, value := range values {
			folded = append(folded, Fold(value))
		}
		c.aliasIndex = append(c.aliasIndex, aliasEntry{key: key, values: folded})
	}

	return c, nil
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

func (c *Catalog) Aliases() []Alias {
	return append([]Alias(nil), c.aliases...)
}

// Characters returns character names in the order they first appear.
func (c *Catalog) Characters() []string {
	return append([]string(nil), c.order...)
}

// Character returns the catalog spelling of a character name.
func (c *Catalog) Character(name string) (string, error) {
	idx, ok := c.characters[Fold(name)]
	if !ok {
		return "", fmt.Errorf("character %q: %w", name, ErrNotFound)
	}
	return idx.name, nil
}

func (c *Catalog) Moves(character string) ([]Entry, error) {
	idx, ok := c.characters[Fold(character)]
	if !ok {
		return nil, fmt.Errorf("character %q: %w", character, ErrNotFound)
	}
	return append([]Entry(nil), idx.entries...), nil
}

// Lookup matches name as a whole line of MoveName, then of AltNames.
// Prefix-sharing names never collide.
func (c *Catalog) Lookup(character, name string) []Entry {
	idx, ok := c.characters[Fold(character)]
	if !ok {
		return nil
	}
	key := Fold(name)
	if key == "" {
		return nil
	}
	positions := idx.byName[key]
	if len(positions) == 0 {
		positions = idx.byAlt[key]
	}
	if len(positions) == 0 {
		return nil
	}
	found := make([]Entry, 0, len(positions))
	for _, pos := range positions {
		found = append(found, idx.entries[pos])
	}
	return found
}

// Canonical returns the key of the first alias listing name among its values.
func (c *Catalog) Canonical(name string) (string, bool) {
	key := Fold(name)
	if key == "" {
		return "", false
	}
	for _, alias := range c.aliasIndex {
		for _, value := range alias.values {
			if value == key {
				return alias.key, true
			}
		}
	}
	return "", false
}

// Group returns, in catalog order, the character's moves whose name
// contains group.
func (c *Catalog) Group(character, group string) []Entry {
	idx, ok := c.characters[Fold(character)]
	if !ok {
		return nil
	}
	needle := Fold(group)
	if needle == "" {
		return nil
	}
	var found []Entry
	for _, entry := range idx.entries {
		if strings.Contains(Fold(entry.MoveName), needle) {
			found = append(found, entry)
		}
	}
	return found
}

// SplitNames splits a newline-separated name cell into trimmed, non-empty names.
func SplitNames(cell string) []string {
	var names []string
	for _, line := range strings.Split(cell, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	return names
}

// Fold case-folds s for case-insensitive comparisons. A new Caser is used
// per call since Casers are not safe for concurrent use.
func Fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
