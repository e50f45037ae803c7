package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the game state at one moment.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`

	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Tick    int32   `json:"tick"`
	SimTime float64 `json:"sim_time"`
	Phase   string  `json:"phase"`
	Prompt  string  `json:"prompt"`

	Pet   PetState    `json:"pet"`
	Foods []PropState `json:"foods,omitempty"`
	Ball  *PropState  `json:"ball,omitempty"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// Point is a position in canvas pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PetState holds the pet's mood and shape.
type PetState struct {
	Fullness  float64 `json:"fullness"`
	Happiness float64 `json:"happiness"`
	Color     string  `json:"color"`
	Dead      bool    `json:"dead"`
	Scale     float64 `json:"scale"`
	Center    Point   `json:"center"`
	Outline   []Point `json:"outline"`
}

// PropState holds a food or ball.
type PropState struct {
	Position Point   `json:"position"`
	Velocity Point   `json:"velocity"`
	Age      float64 `json:"age,omitempty"`
	Edible   bool    `json:"edible,omitempty"`
	Remains  float64 `json:"remains,omitempty"` // Seconds left for a ball
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	// Build filename
	name := fmt.Sprintf("snapshot_%d", snapshot.Tick)
	if snapshot.Bookmark != nil {
		// Sanitize bookmark type for filename
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s", snapshot.Tick, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
