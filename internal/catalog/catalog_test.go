package catalog

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadFiles(filepath.Join("testdata", "frame_data.csv"), filepath.Join("testdata", "aliases.csv"))
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	return c
}

func TestNew(t *testing.T) {
	t.Run("empty catalog", func(t *testing.T) {
		_, err := New(nil, nil)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("row without character", func(t *testing.T) {
		_, err := New([]Entry{{MoveName: "5LP", Damage: "100"}}, nil)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("row without move name", func(t *testing.T) {
		_, err := New([]Entry{{Character: "Annie", Damage: "100"}}, nil)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestCharacters(t *testing.T) {
	c := testCatalog(t)

	got := c.Characters()
	if len(got) != 2 || got[0] != "Annie" || got[1] != "Filia" {
		t.Fatalf("unexpected characters: %#v", got)
	}

	name, err := c.Character("annie")
	if err != nil {
		t.Fatalf("character: %v", err)
	}
	if name != "Annie" {
		t.Fatalf("expected catalog spelling, got %q", name)
	}

	if _, err := c.Character("Peacock"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := c.Moves("Peacock"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLookup(t *testing.T) {
	c := testCatalog(t)

	tests := []struct {
		name      string
		character string
		move      string
		want      []string
	}{
		{name: "exact move name", character: "Annie", move: "5LP", want: []string{"5LP"}},
		{name: "case insensitive", character: "ANNIE", move: "5lp", want: []string{"5LP"}},
		{name: "alt name line", character: "Annie", move: "stand LP", want: []string{"5LP"}},
		{name: "no prefix collision", character: "Annie", move: "5L", want: nil},
		{name: "sibling not matched by base", character: "Annie", move: "5LPX2", want: []string{"5LPX2"}},
		{name: "scoped to character", character: "Filia", move: "236K", want: nil},
		{name: "unknown character", character: "Peacock", move: "5LP", want: nil},
		{name: "blank move", character: "Annie", move: "  ", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Lookup(tt.character, tt.move)
			if len(got) != len(tt.want) {
				t.Fatalf("Lookup(%q, %q) returned %d entries, want %d", tt.character, tt.move, len(got), len(tt.want))
			}
			for i, entry := range got {
				if entry.MoveName != tt.want[i] {
					t.Errorf("entry %d = %q, want %q", i, entry.MoveName, tt.want[i])
				}
			}
		})
	}
}

func TestCanonical(t *testing.T) {
	c := testCatalog(t)

	if key, ok := c.Canonical("CR.LP"); !ok || key != "5LP" {
		t.Fatalf("expected 5LP, got %q %v", key, ok)
	}
	if key, ok := c.Canonical("qcb hp"); !ok || key != "214HP" {
		t.Fatalf("expected 214HP, got %q %v", key, ok)
	}
	if _, ok := c.Canonical("cr"); ok {
		t.Fatalf("partial alias value must not match")
	}
	if _, ok := c.Canonical(""); ok {
		t.Fatalf("empty name must not match")
	}
}

func TestGroup(t *testing.T) {
	c := testCatalog(t)

	got := c.Group("Annie", "re entry")
	if len(got) != 2 {
		t.Fatalf("expected 2 group rows, got %d", len(got))
	}
	if got[0].MoveName != "RE ENTRY 1" || got[1].MoveName != "RE ENTRY 2" {
		t.Fatalf("group rows out of catalog order: %#v", got)
	}
	if got := c.Group("Filia", "re entry"); len(got) != 0 {
		t.Fatalf("expected no rows for Filia, got %d", len(got))
	}
}

func TestReadTable(t *testing.T) {
	t.Run("missing column", func(t *testing.T) {
		_, err := ReadEntries(strings.NewReader("Character,Move Name\nAnnie,5LP\n"))
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := ReadAliases(strings.NewReader(""))
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("header spacing and short rows", func(t *testing.T) {
		entries, err := ReadEntries(strings.NewReader(" Character , MoveName ,Damage,Alt Names\nAnnie,5LP,100\n,,,\n"))
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected blank row skipped, got %d entries", len(entries))
		}
		if entries[0].AltNames != "" || entries[0].Damage != "100" {
			t.Fatalf("unexpected entry: %#v", entries[0])
		}
	})
}

func TestNormalizeColumn(t *testing.T) {
	for input, want := range map[string]string{
		"Move Name":       "movename",
		" AltNames ":      "altnames",
		"\ufeffCharacter": "character",
		"Expected Damage": "expecteddamage",
	} {
		if got := NormalizeColumn(input); got != want {
			t.Errorf("NormalizeColumn(%q) = %q, want %q", input, got, want)
		}
	}
}
