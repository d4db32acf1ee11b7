package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestState_SaveLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}

	st0, err := s.LoadState()
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if st0 == nil || st0.Version != 1 || st0.LastLocation != "" {
		t.Fatalf("expected default state; got %#v", st0)
	}

	want := &State{Version: 1, LastLocation: "/employees?order=asc&page=2&pageSize=10&sort=lastName", View: "list"}
	if err := s.SaveState(want); err != nil {
		t.Fatalf("SaveState: %v", err)
	}
	got, err := s.LoadState()
	if err != nil {
		t.Fatalf("LoadState (after save): %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("roundtrip mismatch:\nwant: %#v\ngot:  %#v", want, got)
	}
}

func TestState_CorruptedFileFallsBack(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "state.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	st, err := Store{Dir: dir}.LoadState()
	if err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	if st.Version != 1 || st.LastLocation != "" {
		t.Fatalf("expected defaults; got %#v", st)
	}
}

func TestOpen_UsesConfigDirOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ROSTER_CONFIG_DIR", dir)

	s, err := Open("")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Dir != dir {
		t.Fatalf("Dir = %q; want %q", s.Dir, dir)
	}
}

func TestBookmarks_CRUD(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	bms, err := Store{Dir: t.TempDir()}.OpenBookmarks(ctx)
	if err != nil {
		t.Fatalf("OpenBookmarks: %v", err)
	}
	t.Cleanup(func() { _ = bms.Close() })

	got, err := bms.Add(ctx, " on-leave ", "?status=on_leave")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	wantLoc := "/employees?order=asc&page=1&pageSize=10&sort=lastName&status=on_leave"
	if got.Name != "on-leave" || got.Location != wantLoc {
		t.Fatalf("Add = %#v", got)
	}

	if _, err := bms.Add(ctx, "eng", "/employees?departmentId=1&sort=salary&order=desc"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	// Same name replaces.
	if _, err := bms.Add(ctx, "on-leave", "/employees?status=on_leave&page=2"); err != nil {
		t.Fatalf("Add (replace): %v", err)
	}

	list, err := bms.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].Name != "eng" || list[1].Name != "on-leave" {
		t.Fatalf("List = %#v", list)
	}
	if list[1].Location != "/employees?order=asc&page=2&pageSize=10&sort=lastName&status=on_leave" {
		t.Fatalf("replace did not update location: %q", list[1].Location)
	}

	if err := bms.Remove(ctx, "eng"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := bms.Remove(ctx, "eng"); !errors.Is(err, ErrBookmarkNotFound) {
		t.Fatalf("Remove missing = %v; want ErrBookmarkNotFound", err)
	}
	if _, err := bms.Get(ctx, "eng"); !errors.Is(err, ErrBookmarkNotFound) {
		t.Fatalf("Get missing = %v; want ErrBookmarkNotFound", err)
	}
	if _, err := bms.Add(ctx, "  ", "/employees"); err == nil {
		t.Fatalf("expected empty name to be rejected")
	}
}

func TestBookmarks_KeepNonListLocations(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	bms, err := Store{Dir: t.TempDir()}.OpenBookmarks(ctx)
	if err != nil {
		t.Fatalf("OpenBookmarks: %v", err)
	}
	t.Cleanup(func() { _ = bms.Close() })

	got, err := bms.Add(ctx, "dash", "/dashboard")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if got.Location != "/dashboard" {
		t.Fatalf("Location = %q", got.Location)
	}
}
