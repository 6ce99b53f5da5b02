// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// SimConfig contains the full tuning surface for the simulation core
type SimConfig struct {
	Ship      ShipConfig      `json:"ship"`
	Warp      WarpConfig      `json:"warp"`
	Weapons   WeaponsConfig   `json:"weapons"`
	Defense   DefenseConfig   `json:"defense"`
	Lifecycle LifecycleConfig `json:"lifecycle"`
	Galaxy    []BodyConfig    `json:"galaxy"`
}

// ShipConfig contains impulse flight tuning
type ShipConfig struct {
	MaxImpulseSpeed float64 `json:"maxImpulseSpeed"` // units/s at full throttle
	YawRate         float64 `json:"yawRate"`         // rad/s
	PitchRate       float64 `json:"pitchRate"`       // rad/s
	RollRate        float64 `json:"rollRate"`        // rad/s
	BankRate        float64 `json:"bankRate"`        // rad/s of roll induced per unit yaw input
	LevelRate       float64 `json:"levelRate"`       // rad/s auto-level toward zero roll
	MaxBankAngle    float64 `json:"maxBankAngle"`    // rad
	ThrottleAccel   float64 `json:"throttleAccel"`   // percent/s toward 100
	ThrottleDecel   float64 `json:"throttleDecel"`   // percent/s toward 0
	ThrottleDamping float64 `json:"throttleDamping"` // 1/s exponential decay when idle
	CollisionRadius float64 `json:"collisionRadius"`
}

// WarpConfig contains warp travel tuning
type WarpConfig struct {
	MinChargeTime    float64 `json:"minChargeTime"`    // seconds before charging may complete
	AlignRate        float64 `json:"alignRate"`        // slerp fraction per second
	AlignThreshold   float64 `json:"alignThreshold"`   // orientation dot product to accept alignment
	AccelDuration    float64 `json:"accelDuration"`    // seconds
	DecelLeadTime    float64 `json:"decelLeadTime"`    // seconds of cruise left when deceleration begins
	ArrivalDuration  float64 `json:"arrivalDuration"`  // seconds of settle before idle
	SpeedPerLevel    float64 `json:"speedPerLevel"`    // cruise units/s per warp level
	ArrivalBuffer    float64 `json:"arrivalBuffer"`    // stop-short distance beyond the destination radius
	DefaultWarpLevel int     `json:"defaultWarpLevel"` // 1..9
}

// WeaponsConfig contains targeting and weapons tuning
type WeaponsConfig struct {
	PhaserHeatRate     float64 `json:"phaserHeatRate"`     // heat/s while firing
	PhaserCoolRate     float64 `json:"phaserCoolRate"`     // heat/s while idle
	PhaserRestartHeat  float64 `json:"phaserRestartHeat"`  // heat must fall below this after overheat
	PhaserDamageRate   float64 `json:"phaserDamageRate"`   // damage/s to the locked target
	MaxLockRange       float64 `json:"maxLockRange"`       // units; lock drops beyond this
	TorpedoSpeed       float64 `json:"torpedoSpeed"`       // units/s
	TorpedoDamage      float64 `json:"torpedoDamage"`      // per impact
	TorpedoReloadTime  float64 `json:"torpedoReloadTime"`  // seconds per reloaded unit
	MaxTorpedoes       int     `json:"maxTorpedoes"`       // ammo cap
	StartingTorpedoes  int     `json:"startingTorpedoes"`
}

// DefenseConfig contains shield, hull and alert tuning
type DefenseConfig struct {
	ShieldRechargeRate float64 `json:"shieldRechargeRate"` // points/s
	ShieldHitCooldown  float64 `json:"shieldHitCooldown"`  // seconds without a hit before recharge resumes
	ShieldCritical     float64 `json:"shieldCritical"`     // quadrant level that asserts red
	ShieldLow          float64 `json:"shieldLow"`          // quadrant level that asserts yellow
	HullCritical       float64 `json:"hullCritical"`       // hull level that asserts red
	GreenHysteresis    float64 `json:"greenHysteresis"`    // margin above thresholds to return to green
	CollisionDamage    float64 `json:"collisionDamage"`    // fixed packet per hull contact
	CollisionCooldown  float64 `json:"collisionCooldown"`  // seconds between packets from the same body
}

// LifecycleConfig contains the destructible-body destruction timeline
type LifecycleConfig struct {
	ExplosionDuration float64 `json:"explosionDuration"` // seconds
	DebrisDuration    float64 `json:"debrisDuration"`    // seconds
	RespawnDuration   float64 `json:"respawnDuration"`   // seconds of fade-in
}

// BodyConfig describes one navigable destructible body
type BodyConfig struct {
	Name      string  `json:"name"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
	Radius    float64 `json:"radius"`
	MaxHealth float64 `json:"maxHealth"`
}

// LoadConfig loads a configuration from a file
func LoadConfig(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *SimConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate rejects configurations the integrators cannot run with
func (c *SimConfig) Validate() error {
	if c.Ship.MaxImpulseSpeed <= 0 {
		return fmt.Errorf("ship.maxImpulseSpeed must be positive, got %v", c.Ship.MaxImpulseSpeed)
	}
	if c.Warp.SpeedPerLevel <= 0 {
		return fmt.Errorf("warp.speedPerLevel must be positive, got %v", c.Warp.SpeedPerLevel)
	}
	if c.Warp.DefaultWarpLevel < 1 || c.Warp.DefaultWarpLevel > 9 {
		return fmt.Errorf("warp.defaultWarpLevel must be in [1,9], got %d", c.Warp.DefaultWarpLevel)
	}
	if c.Weapons.TorpedoSpeed <= 0 {
		return fmt.Errorf("weapons.torpedoSpeed must be positive, got %v", c.Weapons.TorpedoSpeed)
	}
	if c.Weapons.MaxTorpedoes < 1 {
		return fmt.Errorf("weapons.maxTorpedoes must be at least 1, got %d", c.Weapons.MaxTorpedoes)
	}
	if c.Lifecycle.ExplosionDuration <= 0 || c.Lifecycle.RespawnDuration <= 0 {
		return fmt.Errorf("lifecycle durations must be positive")
	}
	for i, body := range c.Galaxy {
		if body.MaxHealth <= 0 {
			return fmt.Errorf("galaxy[%d] (%s): maxHealth must be positive", i, body.Name)
		}
		if body.Radius <= 0 {
			return fmt.Errorf("galaxy[%d] (%s): radius must be positive", i, body.Name)
		}
	}
	return nil
}

// DefaultConfig returns a default simulation configuration
func DefaultConfig() *SimConfig {
	return &SimConfig{
		Ship: ShipConfig{
			MaxImpulseSpeed: 50,
			YawRate:         1.2,
			PitchRate:       1.0,
			RollRate:        1.8,
			BankRate:        0.9,
			LevelRate:       1.5,
			MaxBankAngle:    math.Pi / 4,
			ThrottleAccel:   40,
			ThrottleDecel:   60,
			ThrottleDamping: 0.8,
			CollisionRadius: 5,
		},
		Warp: WarpConfig{
			MinChargeTime:    2.0,
			AlignRate:        2.5,
			AlignThreshold:   0.999,
			AccelDuration:    1.5,
			DecelLeadTime:    2.0,
			ArrivalDuration:  1.0,
			SpeedPerLevel:    120,
			ArrivalBuffer:    40,
			DefaultWarpLevel: 3,
		},
		Weapons: WeaponsConfig{
			PhaserHeatRate:    25,
			PhaserCoolRate:    30,
			PhaserRestartHeat: 50,
			PhaserDamageRate:  12,
			MaxLockRange:      3000,
			TorpedoSpeed:      200,
			TorpedoDamage:     35,
			TorpedoReloadTime: 3.0,
			MaxTorpedoes:      6,
			StartingTorpedoes: 6,
		},
		Defense: DefenseConfig{
			ShieldRechargeRate: 8,
			ShieldHitCooldown:  4.0,
			ShieldCritical:     25,
			ShieldLow:          60,
			HullCritical:       50,
			GreenHysteresis:    10,
			CollisionDamage:    15,
			CollisionCooldown:  1.0,
		},
		Lifecycle: LifecycleConfig{
			ExplosionDuration: 3.0,
			DebrisDuration:    20.0,
			RespawnDuration:   5.0,
		},
		Galaxy: []BodyConfig{
			{Name: "Vela Prime", X: 0, Y: 0, Z: 1200, Radius: 60, MaxHealth: 100},
			{Name: "Korris III", X: -900, Y: 50, Z: 400, Radius: 45, MaxHealth: 100},
			{Name: "Outpost Theta", X: 600, Y: -120, Z: -800, Radius: 20, MaxHealth: 60},
			{Name: "Danur", X: 1800, Y: 0, Z: 2200, Radius: 80, MaxHealth: 140},
		},
	}
}
