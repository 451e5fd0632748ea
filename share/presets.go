// Package share holds the process-wide mutable state: the preset store and
// the short-lived caches the web UI polls.
package share

import (
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/ellied/framecast/tool"
	"github.com/ellied/framecast/types"
)

var (
	presetsMu   sync.RWMutex
	presetsPath = "presets.yaml"
	presets     []types.Preset
)

// InitPresets loads the preset file. A missing file is an empty store, not an
// error; the file is created on the first save.
func InitPresets(path string) error {
	presetsMu.Lock()
	defer presetsMu.Unlock()
	if path != "" {
		presetsPath = path
	}
	presets = []types.Preset{}

	data, err := os.ReadFile(presetsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read presets file: %v", err)
	}
	if err := yaml.Unmarshal(data, &presets); err != nil {
		return fmt.Errorf("failed to parse presets file: %v", err)
	}
	tool.DefaultLogger.Infof("Loaded %d preset(s) from %s", len(presets), presetsPath)
	return nil
}

// ListPresets returns a copy of all presets in stored order.
func ListPresets() []types.Preset {
	presetsMu.RLock()
	defer presetsMu.RUnlock()
	out := make([]types.Preset, len(presets))
	copy(out, presets)
	return out
}

// GetPreset looks a preset up by id.
func GetPreset(id string) (types.Preset, bool) {
	presetsMu.RLock()
	defer presetsMu.RUnlock()
	for _, p := range presets {
		if p.ID == id {
			return p, true
		}
	}
	return types.Preset{}, false
}

// AddPreset stores a preset, assigning an id when none is set, and persists
// the store.
func AddPreset(p types.Preset) (types.Preset, error) {
	presetsMu.Lock()
	defer presetsMu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	presets = append(presets, p)
	if err := persistLocked(); err != nil {
		return p, err
	}
	return p, nil
}

// DeletePreset removes a preset by id and persists the store. Returns false
// when the id is unknown.
func DeletePreset(id string) (bool, error) {
	presetsMu.Lock()
	defer presetsMu.Unlock()
	for i, p := range presets {
		if p.ID == id {
			presets = append(presets[:i], presets[i+1:]...)
			return true, persistLocked()
		}
	}
	return false, nil
}

func persistLocked() error {
	data, err := yaml.Marshal(presets)
	if err != nil {
		return fmt.Errorf("failed to marshal presets: %v", err)
	}
	if err := os.WriteFile(presetsPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write presets file: %v", err)
	}
	return nil
}
