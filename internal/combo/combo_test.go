package combo

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"skombo/internal/catalog"
	"skombo/internal/config"
	"skombo/internal/damage"
	"skombo/internal/resolve"
)

func testEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	c, err := catalog.LoadFiles(filepath.Join("testdata", "frame_data.csv"), filepath.Join("testdata", "aliases.csv"))
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	return NewEvaluator(c, config.DefaultRules(), Options{})
}

func TestEvaluateScenario(t *testing.T) {
	e := testEvaluator(t)

	report, err := e.Evaluate(Input{Name: "scenario", Character: "TestChar", ExpectedDamage: 550, Notation: "5LP 5LP 5LP 5MP"})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	if report.TotalDamage != 475 {
		t.Fatalf("expected total 475, got %d", report.TotalDamage)
	}
	if report.Difference != -75 {
		t.Fatalf("expected difference -75, got %d", report.Difference)
	}
	if !report.PercentDefined || math.Abs(report.PercentDifference-(-13.636363)) > 0.001 {
		t.Fatalf("expected about -13.64%%, got %v (defined %v)", report.PercentDifference, report.PercentDefined)
	}

	wantScaling := []float64{1, 1, 1, 0.875}
	for i, hit := range report.Hits {
		if hit.Scaling != wantScaling[i] {
			t.Errorf("hit %d scaling %v, want %v", i+1, hit.Scaling, wantScaling[i])
		}
	}
	if report.Hits[3].ScaledDamage != 175 {
		t.Fatalf("expected 175 on hit 4, got %d", report.Hits[3].ScaledDamage)
	}
	if got := PercentLabel(report); got != "-14%" {
		t.Fatalf("expected -14%% label, got %q", got)
	}
}

func TestEvaluateSteps(t *testing.T) {
	e := testEvaluator(t)

	report, err := e.Evaluate(Input{Name: "steps", Character: "testchar", ExpectedDamage: 300, Notation: "jab dash stand mp kara 999P"})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	want := []Step{
		{Token: "jab", Resolved: "jab", State: resolve.StateStart, Moves: []string{"5LP"}},
		{Token: "stand", Resolved: "stand", State: resolve.StateNotFound},
		{Token: "mp", Resolved: "mp", State: resolve.StateNotFound},
		{Token: "kara", Kara: true},
		{Token: "999P", Resolved: "999P", State: resolve.StateNotFound},
	}
	if diff := cmp.Diff(want, report.Steps); diff != "" {
		t.Fatalf("steps mismatch (-want +got):\n%s", diff)
	}
	if report.Character != "TestChar" {
		t.Fatalf("expected catalog spelling of character, got %q", report.Character)
	}
	if diff := cmp.Diff([]string{"stand", "mp", "999P"}, report.Unresolved); diff != "" {
		t.Fatalf("unresolved mismatch (-want +got):\n%s", diff)
	}
	if report.TotalDamage != 0 || len(report.Hits) != 1 || !report.Hits[0].KaraCanceled {
		t.Fatalf("expected the jab to be kara canceled, got %#v", report.Hits)
	}
}

func TestEvaluateErrors(t *testing.T) {
	e := testEvaluator(t)

	t.Run("unknown character", func(t *testing.T) {
		_, err := e.Evaluate(Input{Name: "x", Character: "Peacock", ExpectedDamage: 100, Notation: "5LP"})
		if !errors.Is(err, catalog.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("empty notation", func(t *testing.T) {
		_, err := e.Evaluate(Input{Name: "x", Character: "TestChar", ExpectedDamage: 100, Notation: " dash "})
		if !errors.Is(err, catalog.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("malformed damage", func(t *testing.T) {
		_, err := e.Evaluate(Input{Name: "x", Character: "TestChar", ExpectedDamage: 100, Notation: "5LP 2HK"})
		var parseErr *damage.ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *damage.ParseError, got %v", err)
		}
		if errors.Is(err, catalog.ErrNotFound) || errors.Is(err, catalog.ErrInvalidInput) {
			t.Fatalf("parse errors must be distinguishable from lookup errors")
		}
	})

	t.Run("zero expected damage", func(t *testing.T) {
		report, err := e.Evaluate(Input{Name: "x", Character: "TestChar", Notation: "5LP"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if report.PercentDefined {
			t.Fatalf("expected percent difference undefined")
		}
		if report.Difference != 100 {
			t.Fatalf("expected difference 100, got %d", report.Difference)
		}
		if got := PercentLabel(report); got != "n/a" {
			t.Fatalf("expected n/a label, got %q", got)
		}
	})
}

func TestEvaluateCustomIgnored(t *testing.T) {
	c, err := catalog.LoadFiles(filepath.Join("testdata", "frame_data.csv"), "")
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	e := NewEvaluator(c, nil, Options{IgnoredMoves: []string{"5MP"}})

	report, err := e.Evaluate(Input{Name: "x", Character: "TestChar", ExpectedDamage: 100, Notation: "5LP 5MP"})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if report.TotalDamage != 100 {
		t.Fatalf("expected 5MP ignored, got total %d", report.TotalDamage)
	}
}
