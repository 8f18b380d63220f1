package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRules(t *testing.T) {
	t.Run("valid rules load", func(t *testing.T) {
		rules, err := LoadRules(filepath.Join("testdata", "valid_rules.yaml"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(rules.Sequences) != 2 {
			t.Fatalf("expected 2 sequences, got %d", len(rules.Sequences))
		}
	})

	t.Run("unsupported version", func(t *testing.T) {
		path := writeTempRules(t, "version: 3\nsequences: []\n")
		if _, err := LoadRules(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("no sequences is valid", func(t *testing.T) {
		path := writeTempRules(t, "version: 1\n")
		rules, err := LoadRules(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(rules.For("Annie")) != 0 {
			t.Fatalf("expected no sequences")
		}
	})

	t.Run("missing group", func(t *testing.T) {
		path := writeTempRules(t, "version: 1\nsequences:\n  - { character: Annie, name: divekick, motion: \"236\", button: K }\n")
		if _, err := LoadRules(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("bad button", func(t *testing.T) {
		path := writeTempRules(t, "version: 1\nsequences:\n  - { character: Annie, name: divekick, motion: \"236\", button: S, group: RE ENTRY }\n")
		if _, err := LoadRules(path); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("duplicate sequence names", func(t *testing.T) {
		path := writeTempRules(t, "version: 1\nsequences:\n  - { character: Annie, name: divekick, motion: \"236\", button: K, group: RE ENTRY }\n  - { character: annie, name: Divekick, motion: \"214\", button: K, group: OTHER }\n")
		if _, err := LoadRules(path); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestRulesFor(t *testing.T) {
	rules, err := LoadRules(filepath.Join("testdata", "valid_rules.yaml"))
	if err != nil {
		t.Fatalf("loading rules: %v", err)
	}

	t.Run("case-insensitive character", func(t *testing.T) {
		got := rules.For("ANNIE")
		if len(got) != 2 || got[0].Name != "divekick" || got[1].Name != "starfall" {
			t.Fatalf("unexpected sequences: %#v", got)
		}
	})

	t.Run("character without quirks", func(t *testing.T) {
		if got := rules.For("Filia"); len(got) != 0 {
			t.Fatalf("expected no sequences, got %d", len(got))
		}
	})

	t.Run("nil rules", func(t *testing.T) {
		var empty *Rules
		if got := empty.For("Annie"); got != nil {
			t.Fatalf("expected nil")
		}
	})

	t.Run("matches catalog case folding", func(t *testing.T) {
		path := writeTempRules(t, "version: 1\nsequences:\n  - { character: Straße, name: dive, motion: \"236\", button: K, group: DIVE }\n")
		folded, err := LoadRules(path)
		if err != nil {
			t.Fatalf("loading rules: %v", err)
		}
		if got := folded.For(" STRASSE "); len(got) != 1 {
			t.Fatalf("expected folded match, got %#v", got)
		}
	})

	t.Run("defaults", func(t *testing.T) {
		got := DefaultRules().For("annie")
		if len(got) != 1 || got[0].Group != "RE ENTRY" {
			t.Fatalf("unexpected default sequences: %#v", got)
		}
	})
}

func writeTempRules(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing temp rules: %v", err)
	}
	return path
}
