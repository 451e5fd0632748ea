package share

import (
	"path/filepath"
	"testing"

	"github.com/ellied/framecast/types"
)

func initTempStore(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.yaml")
	if err := InitPresets(path); err != nil {
		t.Fatalf("InitPresets: %v", err)
	}
	return path
}

// TestPresetRoundTrip adds a preset, reloads the store from its file, and
// checks the preset survived.
func TestPresetRoundTrip(t *testing.T) {
	path := initTempStore(t)

	added, err := AddPreset(types.Preset{
		Name:            "Evening dim",
		Tag:             "sunsets",
		Brightness:      0.3,
		IntervalMinutes: 10,
		QuietStartHour:  22,
		QuietEndHour:    7,
	})
	if err != nil {
		t.Fatalf("AddPreset: %v", err)
	}
	if added.ID == "" {
		t.Fatal("AddPreset should assign an id")
	}

	// Reload from disk.
	if err := InitPresets(path); err != nil {
		t.Fatalf("InitPresets reload: %v", err)
	}
	got, ok := GetPreset(added.ID)
	if !ok {
		t.Fatalf("preset %s missing after reload", added.ID)
	}
	if got.Name != "Evening dim" || got.Tag != "sunsets" || got.Brightness != 0.3 {
		t.Errorf("reloaded preset = %+v, want the saved values", got)
	}
}

// TestDeletePreset removes a preset and checks unknown ids report false.
func TestDeletePreset(t *testing.T) {
	initTempStore(t)

	added, err := AddPreset(types.Preset{Name: "temp", Tag: "cats"})
	if err != nil {
		t.Fatalf("AddPreset: %v", err)
	}

	ok, err := DeletePreset(added.ID)
	if err != nil {
		t.Fatalf("DeletePreset: %v", err)
	}
	if !ok {
		t.Error("DeletePreset should report true for a known id")
	}
	if _, found := GetPreset(added.ID); found {
		t.Error("preset should be gone after delete")
	}

	ok, err = DeletePreset("no-such-id")
	if err != nil {
		t.Fatalf("DeletePreset unknown: %v", err)
	}
	if ok {
		t.Error("DeletePreset should report false for an unknown id")
	}
}

// TestInitPresetsMissingFile treats a missing file as an empty store.
func TestInitPresetsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.yaml")
	if err := InitPresets(path); err != nil {
		t.Fatalf("InitPresets on missing file: %v", err)
	}
	if got := ListPresets(); len(got) != 0 {
		t.Errorf("store should start empty, got %v", got)
	}
}
