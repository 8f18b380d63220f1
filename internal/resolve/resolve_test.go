package resolve

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"skombo/internal/catalog"
	"skombo/internal/config"
)

func testResolver(t *testing.T) *Resolver {
	t.Helper()
	entries := []catalog.Entry{
		{Character: "Filia", MoveName: "5LP", Damage: "100"},
		{Character: "Filia", MoveName: "5LPX2", Damage: "110"},
		{Character: "Filia", MoveName: "5LPX3", Damage: "120"},
		{Character: "Filia", MoveName: "2MK", Damage: "150"},
		{Character: "Filia", MoveName: "214HP", Damage: "500"},
		{Character: "Filia", MoveName: "214HP~P", Damage: "300"},
		{Character: "Filia", MoveName: "236P", Damage: "400"},
		{Character: "Filia", MoveName: "623MK", Damage: "250"},
		{Character: "Filia", MoveName: "623HK", Damage: "350"},
		{Character: "Filia", MoveName: "j.HP", AltNames: "jHP\nair hp", Damage: "220"},
		{Character: "Annie", MoveName: "5LP", Damage: "100"},
		{Character: "Annie", MoveName: "RE ENTRY 1", Damage: "300"},
		{Character: "Annie", MoveName: "RE ENTRY 2", Damage: "250"},
		{Character: "Annie", MoveName: "RE ENTRY 3", Damage: "200"},
	}
	aliases := []catalog.Alias{
		{Key: "5LP", Value: "jab\ncr.lp"},
		{Key: "236K", Value: "divekick"},
	}
	c, err := catalog.New(entries, aliases)
	if err != nil {
		t.Fatalf("building catalog: %v", err)
	}
	return NewResolver(c, config.DefaultRules(), nil)
}

func moveNames(entries []catalog.Entry) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.MoveName)
	}
	return names
}

func TestResolve(t *testing.T) {
	r := testResolver(t)

	tests := []struct {
		name      string
		character string
		token     string
		want      []string
		state     State
		resolved  string
	}{
		{name: "direct", character: "Filia", token: "5LP", want: []string{"5LP"}, state: StateStart, resolved: "5LP"},
		{name: "alt name", character: "Filia", token: "AIR HP", want: []string{"j.HP"}, state: StateStart, resolved: "AIR HP"},
		{name: "repeat with siblings", character: "Filia", token: "5LPx3", want: []string{"5LP", "5LPX2", "5LPX3"}, state: StateRepeat, resolved: "5LPx3"},
		{name: "repeat stops at gap", character: "Filia", token: "5LPx4", want: []string{"5LP", "5LPX2", "5LPX3"}, state: StateRepeat, resolved: "5LPx4"},
		{name: "repeat without siblings", character: "Filia", token: "2MKx3", want: []string{"2MK", "2MK", "2MK"}, state: StateRepeat, resolved: "2MKx3"},
		{name: "repeat count over limit", character: "Filia", token: "5LPx100", want: []string{}, state: StateNotFound, resolved: "5LPx100"},
		{name: "huge repeat count", character: "Filia", token: "5LPx20000000", want: []string{}, state: StateNotFound, resolved: "5LPx20000000"},
		{name: "repeat through alias", character: "Filia", token: "jabx2", want: []string{"5LP", "5LPX2"}, state: StateRepeat, resolved: "jabx2"},
		{name: "follow-up", character: "Filia", token: "214HP~P", want: []string{"214HP", "214HP~P"}, state: StateFollowUp, resolved: "214HP~P"},
		{name: "alias", character: "Filia", token: "cr.lp", want: []string{"5LP"}, state: StateAlias, resolved: "cr.lp"},
		{name: "generic", character: "Filia", token: "236MP", want: []string{"236P"}, state: StateGeneric, resolved: "236MP"},
		{name: "no strength needs a link", character: "Filia", token: "623K", want: []string{}, state: StateNotFound, resolved: "623K"},
		{name: "no strength then repeat", character: "Filia", token: "623Kx2", want: []string{"623HK", "623HK"}, state: StateRepeat, resolved: "623HKx2"},
		{name: "no strength fallback", character: "Filia", token: "623K,", want: []string{"623HK"}, state: StateNoStrength, resolved: "623HK,"},
		{name: "not found", character: "Filia", token: "999P", want: []string{}, state: StateNotFound, resolved: "999P"},
		{name: "unknown character", character: "Peacock", token: "5LP", want: []string{}, state: StateNotFound, resolved: "5LP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(NewContext(), tt.character, tt.token)
			if diff := cmp.Diff(tt.want, moveNames(got.Entries)); diff != "" {
				t.Fatalf("Resolve(%q) entries mismatch (-want +got):\n%s", tt.token, diff)
			}
			if got.State != tt.state {
				t.Fatalf("Resolve(%q) state = %s, want %s", tt.token, got.State, tt.state)
			}
			if got.Token != tt.resolved {
				t.Fatalf("Resolve(%q) token = %q, want %q", tt.token, got.Token, tt.resolved)
			}
		})
	}
}

func TestResolveSequence(t *testing.T) {
	r := testResolver(t)
	rctx := NewContext()

	steps := []struct {
		token string
		want  []string
		state State
	}{
		{token: "236K", want: []string{"RE ENTRY 1"}, state: StateCharacterSpecific},
		{token: "j236MK~HK", want: []string{"RE ENTRY 2", "RE ENTRY 3"}, state: StateCharacterSpecific},
		{token: "236K", want: []string{}, state: StateNotFound},
	}

	for _, step := range steps {
		got := r.Resolve(rctx, "Annie", step.token)
		if diff := cmp.Diff(step.want, moveNames(got.Entries)); diff != "" {
			t.Fatalf("Resolve(%q) entries mismatch (-want +got):\n%s", step.token, diff)
		}
		if got.State != step.state {
			t.Fatalf("Resolve(%q) state = %s, want %s", step.token, got.State, step.state)
		}
	}

	if consumed := rctx.Consumed("re entry"); consumed != 4 {
		t.Fatalf("expected 4 presses consumed, got %d", consumed)
	}

	t.Run("alias triggers sequence", func(t *testing.T) {
		got := r.Resolve(NewContext(), "Annie", "divekick")
		if diff := cmp.Diff([]string{"RE ENTRY 1"}, moveNames(got.Entries)); diff != "" {
			t.Fatalf("entries mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("other characters ignore sequences", func(t *testing.T) {
		got := r.Resolve(NewContext(), "Filia", "236K")
		if got.State == StateCharacterSpecific {
			t.Fatalf("Filia has no sequences")
		}
	})
}

func TestResolveDeterministic(t *testing.T) {
	r := testResolver(t)

	for _, token := range []string{"5LPx3", "214HP~P", "623K,", "236MP", "j236MK~HK"} {
		first := r.Resolve(NewContext(), "Annie", token)
		second := r.Resolve(NewContext(), "Annie", token)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("Resolve(%q) differs between runs (-first +second):\n%s", token, diff)
		}
	}
}

func TestResolveAliasIdempotent(t *testing.T) {
	r := testResolver(t)

	canonical := r.Resolve(NewContext(), "Filia", "5LP")
	aliased := r.Resolve(NewContext(), "Filia", "jab")
	if diff := cmp.Diff(canonical.Entries, aliased.Entries); diff != "" {
		t.Fatalf("alias changed the resolution (-canonical +aliased):\n%s", diff)
	}
}

func TestContextNext(t *testing.T) {
	rows := []catalog.Entry{{MoveName: "A"}, {MoveName: "B"}, {MoveName: "C"}}
	rctx := NewContext()

	if got := moveNames(rctx.Next("Group", rows, 2)); !cmp.Equal(got, []string{"A", "B"}) {
		t.Fatalf("unexpected first rows: %v", got)
	}
	if got := moveNames(rctx.Next("GROUP", rows, 2)); !cmp.Equal(got, []string{"C"}) {
		t.Fatalf("unexpected second rows: %v", got)
	}
	if got := rctx.Next("group", rows, 1); got != nil {
		t.Fatalf("expected exhausted group, got %v", got)
	}
	if got := rctx.Next("group", rows, 0); got != nil {
		t.Fatalf("expected no rows for zero presses")
	}
	if other := NewContext().Consumed("group"); other != 0 {
		t.Fatalf("contexts must not share counters")
	}
}

func TestStateString(t *testing.T) {
	for state, want := range map[State]string{
		StateCharacterSpecific: "character_specific",
		StateRepeat:            "repeat",
		StateStart:             "start",
		StateFollowUp:          "follow_up",
		StateAlias:             "alias",
		StateGeneric:           "generic",
		StateNoStrength:        "no_strength",
		StateFound:             "found",
		StateNotFound:          "not_found",
	} {
		if got := state.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(state), got, want)
		}
	}
}
