package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"skombo/internal/catalog"
	"skombo/internal/store"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	ctx := context.Background()
	client, err := New(ctx, "sqlite://"+filepath.Join(t.TempDir(), "skombo.db"))
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	t.Cleanup(func() { client.Close(ctx) })
	if err := client.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensuring schema: %v", err)
	}
	return client
}

var testEntries = []catalog.Entry{
	{Character: "Annie", MoveName: "5LP", AltNames: "jab\nstand lp", Damage: "100"},
	{Character: "Annie", MoveName: "5MP", Damage: "200"},
	{Character: "Filia", MoveName: "5LK", Damage: "100(25)"},
}

var testAliases = []catalog.Alias{
	{Key: "5LP", Value: "cr.lp\njab"},
}

func TestCatalogRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if err := client.ReplaceMoves(ctx, testEntries); err != nil {
		t.Fatalf("replacing moves: %v", err)
	}
	if err := client.ReplaceAliases(ctx, testAliases); err != nil {
		t.Fatalf("replacing aliases: %v", err)
	}

	c, err := store.LoadCatalog(ctx, client)
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	if diff := cmp.Diff(testEntries, c.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(testAliases, c.Aliases()); diff != "" {
		t.Fatalf("aliases mismatch (-want +got):\n%s", diff)
	}

	if err := client.ReplaceMoves(ctx, testEntries[:1]); err != nil {
		t.Fatalf("replacing moves again: %v", err)
	}
	moves, err := client.LoadMoves(ctx)
	if err != nil {
		t.Fatalf("loading moves: %v", err)
	}
	if len(moves) != 1 {
		t.Fatalf("expected replace to drop old moves, got %d", len(moves))
	}
}

func TestLoadCatalogEmpty(t *testing.T) {
	_, err := store.LoadCatalog(context.Background(), newTestClient(t))
	if !errors.Is(err, catalog.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestListCharactersAndMoves(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	if err := client.ReplaceMoves(ctx, testEntries); err != nil {
		t.Fatalf("replacing moves: %v", err)
	}

	characters, err := client.ListCharacters(ctx)
	if err != nil {
		t.Fatalf("listing characters: %v", err)
	}
	want := []store.CharacterSummary{{Name: "Annie", Moves: 2}, {Name: "Filia", Moves: 1}}
	if diff := cmp.Diff(want, characters); diff != "" {
		t.Fatalf("characters mismatch (-want +got):\n%s", diff)
	}

	moves, err := client.ListMoves(ctx, "ANNIE")
	if err != nil {
		t.Fatalf("listing moves: %v", err)
	}
	if len(moves) != 2 || moves[0].MoveName != "5LP" {
		t.Fatalf("unexpected moves: %#v", moves)
	}

	if _, err := client.ListMoves(ctx, "Peacock"); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSourceHashes(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	hashes, err := client.GetSourceHashes(ctx)
	if err != nil {
		t.Fatalf("getting hashes: %v", err)
	}
	if len(hashes) != 0 {
		t.Fatalf("expected no hashes, got %v", hashes)
	}

	if err := client.SetSourceHash(ctx, store.SourceFrameData, "abc"); err != nil {
		t.Fatalf("setting hash: %v", err)
	}
	if err := client.SetSourceHash(ctx, store.SourceFrameData, "def"); err != nil {
		t.Fatalf("updating hash: %v", err)
	}

	hashes, err = client.GetSourceHashes(ctx)
	if err != nil {
		t.Fatalf("getting hashes: %v", err)
	}
	if diff := cmp.Diff(map[string]string{store.SourceFrameData: "def"}, hashes); diff != "" {
		t.Fatalf("hashes mismatch (-want +got):\n%s", diff)
	}
}

func TestRunSQL(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)
	if err := client.ReplaceMoves(ctx, testEntries); err != nil {
		t.Fatalf("replacing moves: %v", err)
	}

	result, err := client.RunSQL(ctx, "SELECT move_name, damage FROM moves WHERE character = ? ORDER BY id", "Annie")
	if err != nil {
		t.Fatalf("running sql: %v", err)
	}
	if diff := cmp.Diff([]string{"move_name", "damage"}, result.Columns); diff != "" {
		t.Fatalf("columns mismatch (-want +got):\n%s", diff)
	}
	want := [][]any{{"5LP", "100"}, {"5MP", "200"}}
	if diff := cmp.Diff(want, result.Rows); diff != "" {
		t.Fatalf("rows mismatch (-want +got):\n%s", diff)
	}
	if got := result.Maps()[1]["move_name"]; got != "5MP" {
		t.Fatalf("expected 5MP in map row, got %v", got)
	}

	if _, err := client.RunSQL(ctx, "SELECT * FROM missing"); err == nil {
		t.Fatalf("expected error for unknown table")
	}
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	client := newTestClient(t)
	if err := client.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("second EnsureSchema: %v", err)
	}
}
