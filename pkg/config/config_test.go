// pkg/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestConfig_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	original := DefaultConfig()
	original.Ship.MaxImpulseSpeed = 75
	original.Warp.DefaultWarpLevel = 7
	original.Galaxy = []BodyConfig{
		{Name: "Test Station", X: 1, Y: 2, Z: 3, Radius: 15, MaxHealth: 80},
	}

	if err := SaveConfig(original, path); err != nil {
		t.Fatalf("SaveConfig() = %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() = %v", err)
	}

	if loaded.Ship.MaxImpulseSpeed != 75 {
		t.Errorf("MaxImpulseSpeed = %v, want 75", loaded.Ship.MaxImpulseSpeed)
	}
	if loaded.Warp.DefaultWarpLevel != 7 {
		t.Errorf("DefaultWarpLevel = %v, want 7", loaded.Warp.DefaultWarpLevel)
	}
	if len(loaded.Galaxy) != 1 || loaded.Galaxy[0].Name != "Test Station" {
		t.Errorf("Galaxy = %+v, want the saved body", loaded.Galaxy)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("LoadConfig() of a missing file should error")
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.json")
	if err := os.WriteFile(path, []byte(`{"ship":{"maxImpulseSpeed":99}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() = %v", err)
	}
	if loaded.Ship.MaxImpulseSpeed != 99 {
		t.Errorf("MaxImpulseSpeed = %v, want 99 from file", loaded.Ship.MaxImpulseSpeed)
	}
	// Unspecified sections keep their defaults
	if loaded.Warp.SpeedPerLevel != 120 {
		t.Errorf("SpeedPerLevel = %v, want default 120", loaded.Warp.SpeedPerLevel)
	}
	if loaded.Weapons.MaxTorpedoes != 6 {
		t.Errorf("MaxTorpedoes = %v, want default 6", loaded.Weapons.MaxTorpedoes)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SimConfig)
	}{
		{name: "Zero impulse speed", mutate: func(c *SimConfig) { c.Ship.MaxImpulseSpeed = 0 }},
		{name: "Zero warp speed", mutate: func(c *SimConfig) { c.Warp.SpeedPerLevel = 0 }},
		{name: "Warp level too low", mutate: func(c *SimConfig) { c.Warp.DefaultWarpLevel = 0 }},
		{name: "Warp level too high", mutate: func(c *SimConfig) { c.Warp.DefaultWarpLevel = 10 }},
		{name: "Zero torpedo speed", mutate: func(c *SimConfig) { c.Weapons.TorpedoSpeed = 0 }},
		{name: "No torpedo capacity", mutate: func(c *SimConfig) { c.Weapons.MaxTorpedoes = 0 }},
		{name: "Zero explosion duration", mutate: func(c *SimConfig) { c.Lifecycle.ExplosionDuration = 0 }},
		{name: "Body without health", mutate: func(c *SimConfig) { c.Galaxy[0].MaxHealth = 0 }},
		{name: "Body without radius", mutate: func(c *SimConfig) { c.Galaxy[0].Radius = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestLoadGalaxy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "galaxy.yaml")
	content := `bodies:
  - name: Vela Prime
    position: [0, 0, 1200]
    radius: 60
    maxHealth: 100
  - name: Outpost Theta
    position: [600, -120, -800]
    radius: 20
    maxHealth: 60
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	bodies, err := LoadGalaxy(path)
	if err != nil {
		t.Fatalf("LoadGalaxy() = %v", err)
	}
	if len(bodies) != 2 {
		t.Fatalf("LoadGalaxy() returned %d bodies, want 2", len(bodies))
	}
	if bodies[0].Name != "Vela Prime" || bodies[0].Z != 1200 {
		t.Errorf("first body = %+v", bodies[0])
	}
	if bodies[1].Name != "Outpost Theta" || bodies[1].Y != -120 {
		t.Errorf("second body = %+v", bodies[1])
	}
}

func TestLoadGalaxy_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "Empty bodies", content: "bodies: []\n"},
		{name: "Missing name", content: "bodies:\n  - position: [0, 0, 0]\n    radius: 10\n    maxHealth: 50\n"},
		{name: "Zero radius", content: "bodies:\n  - name: X\n    position: [0, 0, 0]\n    radius: 0\n    maxHealth: 50\n"},
		{name: "Zero health", content: "bodies:\n  - name: X\n    position: [0, 0, 0]\n    radius: 10\n    maxHealth: 0\n"},
		{name: "Malformed YAML", content: "bodies: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "galaxy.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadGalaxy(path); err == nil {
				t.Error("LoadGalaxy() = nil error, want rejection")
			}
		})
	}
}

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"STARSHIP_MAX_MEMORY_MB",
		"STARSHIP_MAX_GOROUTINES",
		"STARSHIP_SHUTDOWN_TIMEOUT",
		"STARSHIP_RESOURCE_CHECK_INTERVAL",
		"STARSHIP_FRAME_RATE",
	} {
		os.Unsetenv(key)
	}

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv() = %v", err)
	}
	if cfg.MaxMemoryMB != 500 {
		t.Errorf("MaxMemoryMB = %v, want 500", cfg.MaxMemoryMB)
	}
	if cfg.MaxGoroutines != 100 {
		t.Errorf("MaxGoroutines = %v, want 100", cfg.MaxGoroutines)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 30s", cfg.ShutdownTimeout)
	}
	if cfg.FrameRate != 30 {
		t.Errorf("FrameRate = %v, want 30", cfg.FrameRate)
	}
}

func TestLoadConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("STARSHIP_MAX_MEMORY_MB", "1024")
	t.Setenv("STARSHIP_FRAME_RATE", "60")
	t.Setenv("STARSHIP_SHUTDOWN_TIMEOUT", "5s")

	cfg, err := LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("LoadConfigFromEnv() = %v", err)
	}
	if cfg.MaxMemoryMB != 1024 {
		t.Errorf("MaxMemoryMB = %v, want 1024", cfg.MaxMemoryMB)
	}
	if cfg.FrameRate != 60 {
		t.Errorf("FrameRate = %v, want 60", cfg.FrameRate)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 5s", cfg.ShutdownTimeout)
	}
}

func TestLoadConfigFromEnv_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "Non-numeric memory", key: "STARSHIP_MAX_MEMORY_MB", value: "lots"},
		{name: "Negative memory", key: "STARSHIP_MAX_MEMORY_MB", value: "-5"},
		{name: "Bad duration", key: "STARSHIP_SHUTDOWN_TIMEOUT", value: "soon"},
		{name: "Frame rate too high", key: "STARSHIP_FRAME_RATE", value: "1000"},
		{name: "Frame rate zero", key: "STARSHIP_FRAME_RATE", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := LoadConfigFromEnv(); err == nil {
				t.Errorf("LoadConfigFromEnv() accepted %s=%s", tt.key, tt.value)
			}
		})
	}
}
