package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"particles", float64(cfg.Pet.Particles), 16},
		{"base distance", cfg.Pet.BaseDistance, 100},
		{"min scale", cfg.Pet.MinScale, 0.4},
		{"max scale", cfg.Pet.MaxScale, 1.8},
		{"substeps", float64(cfg.Physics.Substeps), 50},
		{"position iterations", float64(cfg.Physics.PositionIterations), 20},
		{"constraint iterations", float64(cfg.Physics.ConstraintIterations), 8},
		{"food ready delay", cfg.Food.ReadyDelay, 2},
		{"ball lifetime", cfg.Ball.Lifetime, 10},
		{"initial mood", cfg.Mood.Initial, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if cfg.Derived.FrameEvery <= 0 {
		t.Errorf("Derived.FrameEvery = %v, want > 0", cfg.Derived.FrameEvery)
	}
}

func TestLoad_OverlayKeepsUnsetDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	if err := os.WriteFile(path, []byte("pet:\n  max_scale: 2.5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Pet.MaxScale != 2.5 {
		t.Errorf("MaxScale = %v, want 2.5", cfg.Pet.MaxScale)
	}
	if cfg.Pet.MinScale != 0.4 {
		t.Errorf("MinScale = %v, want default 0.4", cfg.Pet.MinScale)
	}
}

func TestLoad_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero substeps", "physics:\n  substeps: 0\n"},
		{"too few particles", "pet:\n  particles: 2\n"},
		{"inverted scale", "pet:\n  min_scale: 2.0\n  max_scale: 1.0\n"},
		{"bad screen", "screen:\n  width: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Errorf("Load(%q) succeeded, want error", tt.name)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Ball.Lifetime = 7

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if again.Ball.Lifetime != 7 {
		t.Errorf("Ball.Lifetime = %v, want 7", again.Ball.Lifetime)
	}
}

func TestCfg_PanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("Cfg() did not panic before Init")
		}
	}()
	Cfg()
}
