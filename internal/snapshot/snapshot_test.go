package snapshot

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/podraft/podraft/internal/document"
	"github.com/podraft/podraft/internal/session"
)

func TestLoadMissingState(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "state.json"))
	if _, err := store.Load(); !errors.Is(err, ErrStateNotFound) {
		t.Fatalf("expected ErrStateNotFound, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nested", "state.json"))
	sess := session.New()
	state := sess.NewState()
	var err error
	state, err = sess.SetField(state, document.FieldClientName, "collabara")
	if err != nil {
		t.Fatalf("set field: %v", err)
	}
	state = sess.Save(state)

	if err := store.Save(state); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Mode != state.Mode {
		t.Fatalf("mode = %s, want %s", loaded.Mode, state.Mode)
	}
	if !reflect.DeepEqual(loaded.Doc, state.Doc) {
		t.Fatalf("document did not survive the round trip")
	}
	if !reflect.DeepEqual(loaded.Errors, state.Errors) {
		t.Fatalf("errors did not survive the round trip: %v vs %v", loaded.Errors, state.Errors)
	}
}

func TestEmptyPathUsesDefault(t *testing.T) {
	if got := NewStore("").Path(); got != DefaultPath {
		t.Fatalf("path = %q, want %q", got, DefaultPath)
	}
}
