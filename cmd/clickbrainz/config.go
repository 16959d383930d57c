package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Recognized backend names.
const (
	InputBackendGPIO     = "gpio"
	InputBackendEvdev    = "evdev"
	InputBackendTerminal = "terminal"

	DisplayBackendSSD1306  = "ssd1306"
	DisplayBackendTerminal = "terminal"
	DisplayBackendNone     = "none"
)

// Config is the top-level YAML configuration for the clickbrainz daemon.
//
// This is intentionally user-facing and stable-ish. Keep defaults and validation
// centralized so the rest of the code can assume a well-formed config.
//
// Design goals:
// - Make config file the primary configuration surface.
// - Keep flags for small overrides and for environments where a file is awkward.
// - Environment variables cover secrets (API key) and container-style setups.
type Config struct {
	// Button input configuration
	Input InputConfig `yaml:"input"`

	// Display output configuration
	Display DisplayConfig `yaml:"display"`

	// Input classification and dimming thresholds
	Timing TimingConfig `yaml:"timing"`

	// Transient message behavior
	Message MessageConfig `yaml:"message"`

	// Taunt gating and the remote taunt service
	Taunts TauntsConfig `yaml:"taunts"`

	// High score persistence
	Score ScoreConfig `yaml:"score"`

	// Monitor WebSocket server
	Monitor MonitorConfig `yaml:"monitor"`

	// IPC configuration (event injection socket)
	IPC IPCConfig `yaml:"ipc"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

type InputConfig struct {
	// Backend is "gpio", "evdev" or "terminal".
	Backend string `yaml:"backend"`

	GPIO  GPIOInputConfig  `yaml:"gpio"`
	Evdev EvdevInputConfig `yaml:"evdev"`
}

type GPIOInputConfig struct {
	// Pin names as understood by the host GPIO registry, e.g. "GPIO14".
	CountPin string `yaml:"count_pin"`
	ResetPin string `yaml:"reset_pin"`
}

type EvdevInputConfig struct {
	// Devices is the list of input devices to monitor.
	Devices []string `yaml:"devices,omitempty"`

	// Key codes (from <linux/input-event-codes.h>) mapped to the two buttons.
	CountKey int `yaml:"count_key"`
	ResetKey int `yaml:"reset_key"`
}

type DisplayConfig struct {
	// Backend is "ssd1306", "terminal" or "none".
	Backend string `yaml:"backend"`

	// I2CBus selects the bus by name; empty means the first available one.
	// The panel itself answers at the controller's fixed 0x3C address.
	I2CBus string `yaml:"i2c_bus,omitempty"`
}

type TimingConfig struct {
	DebounceMS   int `yaml:"debounce_ms"`
	HoldMS       int `yaml:"hold_ms"`
	ComboMS      int `yaml:"combo_ms"`
	DimTimeoutMS int `yaml:"dim_timeout_ms"`
	TickHz       int `yaml:"tick_hz"`
}

type MessageConfig struct {
	DurationMS   int `yaml:"duration_ms"`
	ScrollStepMS int `yaml:"scroll_step_ms"`
}

type TauntsConfig struct {
	// APIKey inline in the config is supported but a key file or the
	// CLICKBRAINZ_API_KEY environment variable is preferred.
	APIKey     string `yaml:"api_key,omitempty"`
	APIKeyFile string `yaml:"api_key_file,omitempty"`

	Model     string `yaml:"model"`
	BatchSize int    `yaml:"batch_size"`

	MinClicks   int `yaml:"min_clicks"`
	ChanceOneIn int `yaml:"chance_one_in"`
	RemoteEvery int `yaml:"remote_every"`
	MaxLen      int `yaml:"max_len"`

	TimeoutMS int `yaml:"timeout_ms"`

	// ProbeAddr is dialed to establish connectivity before an outbound call.
	ProbeAddr string `yaml:"probe_addr"`
}

type ScoreConfig struct {
	Path string `yaml:"path"`
}

type MonitorConfig struct {
	// Listen is the host:port for the monitor WebSocket server.
	// Empty disables the server.
	Listen string `yaml:"listen,omitempty"`
}

type IPCConfig struct {
	SocketPath string `yaml:"socket_path"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`

	// File redirects logs away from stdout. Required in practice when the
	// terminal display backend owns the screen.
	File string `yaml:"file,omitempty"`
}

// DefaultConfig returns a fully-populated Config with defaults.
// Keep this aligned with constants.go defaults and current CLI defaults.
func DefaultConfig() Config {
	return Config{
		Input: InputConfig{
			Backend: InputBackendGPIO,
			GPIO: GPIOInputConfig{
				CountPin: "GPIO14",
				ResetPin: "GPIO15",
			},
			Evdev: EvdevInputConfig{
				Devices:  []string{"/dev/input/event0"},
				CountKey: KEY_ENTER,
				ResetKey: KEY_BACKSPACE,
			},
		},
		Display: DisplayConfig{
			Backend: DisplayBackendSSD1306,
			I2CBus:  "",
		},
		Timing: TimingConfig{
			DebounceMS:   defaultDebounceMS,
			HoldMS:       defaultHoldMS,
			ComboMS:      defaultComboHoldMS,
			DimTimeoutMS: defaultDimTimeoutMS,
			TickHz:       defaultTickHz,
		},
		Message: MessageConfig{
			DurationMS:   defaultMessageDurationMS,
			ScrollStepMS: defaultScrollStepMS,
		},
		Taunts: TauntsConfig{
			Model:       "claude-3-haiku-20240307",
			BatchSize:   defaultRemoteBatch,
			MinClicks:   defaultTauntMinClicks,
			ChanceOneIn: defaultTauntChanceOneIn,
			RemoteEvery: defaultRemoteEvery,
			MaxLen:      defaultTauntMaxLen,
			TimeoutMS:   5000,
			ProbeAddr:   "api.anthropic.com:443",
		},
		Score: ScoreConfig{
			Path: "~/.clickbrainz/highscore.json",
		},
		Monitor: MonitorConfig{
			Listen: "127.0.0.1:3006",
		},
		IPC: IPCConfig{
			SocketPath: "/tmp/clickbrainz.sock",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfigFile reads and parses a YAML config file.
//
// Notes:
//   - The file must be valid YAML.
//   - Unknown fields are rejected (helps catch typos) via KnownFields(true).
//   - Relative paths inside the config (like score.path) are not rewritten here;
//     handle that in validation or in the call site as needed.
func LoadConfigFile(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path is empty")
	}
	b, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config yaml: %w", err)
	}

	// Ensure there's no trailing garbage (only whitespace/comments are allowed after the document).
	if err := dec.Decode(&struct{}{}); err == nil {
		return Config{}, fmt.Errorf("decode config yaml: unexpected trailing document")
	}

	return cfg, nil
}

// EnvOverrides are environment-variable overrides applied between the config
// file and flags. Pointer fields stay nil when the variable is unset, so a
// present-but-empty variable still counts as an override.
type EnvOverrides struct {
	APIKey         *string `env:"CLICKBRAINZ_API_KEY"`
	APIKeyFile     *string `env:"CLICKBRAINZ_API_KEY_FILE"`
	ScorePath      *string `env:"CLICKBRAINZ_SCORE_PATH"`
	IPCSocketPath  *string `env:"CLICKBRAINZ_IPC_SOCKET"`
	MonitorListen  *string `env:"CLICKBRAINZ_MONITOR_LISTEN"`
	InputBackend   *string `env:"CLICKBRAINZ_INPUT_BACKEND"`
	DisplayBackend *string `env:"CLICKBRAINZ_DISPLAY_BACKEND"`
	LogLevel       *string `env:"CLICKBRAINZ_LOG_LEVEL"`
}

// LoadEnvOverrides reads overrides from the process environment.
func LoadEnvOverrides() (EnvOverrides, error) {
	var o EnvOverrides
	if err := env.Parse(&o); err != nil {
		return EnvOverrides{}, fmt.Errorf("parse environment: %w", err)
	}
	return o, nil
}

// Apply merges the environment overrides into cfg.
func (o EnvOverrides) Apply(cfg *Config) {
	if cfg == nil {
		return
	}
	if o.APIKey != nil {
		cfg.Taunts.APIKey = *o.APIKey
	}
	if o.APIKeyFile != nil {
		cfg.Taunts.APIKeyFile = *o.APIKeyFile
	}
	if o.ScorePath != nil {
		cfg.Score.Path = *o.ScorePath
	}
	if o.IPCSocketPath != nil {
		cfg.IPC.SocketPath = *o.IPCSocketPath
	}
	if o.MonitorListen != nil {
		cfg.Monitor.Listen = *o.MonitorListen
	}
	if o.InputBackend != nil {
		cfg.Input.Backend = *o.InputBackend
	}
	if o.DisplayBackend != nil {
		cfg.Display.Backend = *o.DisplayBackend
	}
	if o.LogLevel != nil {
		cfg.Logging.Level = *o.LogLevel
	}
}

// FlagOverrides applies overrides from flags on top of a loaded config.
//
// This is designed so you can keep a config file as the primary configuration source,
// but still do ad-hoc overrides for debugging/systemd overrides.
//
// Flags should pass pointers; each override is only applied if the pointer is non-nil.
type FlagOverrides struct {
	InputBackend *string
	GPIOCountPin *string
	GPIOResetPin *string
	EvdevDevice  *string

	DisplayBackend *string
	I2CBus         *string

	ScorePath     *string
	IPCSocketPath *string
	MonitorListen *string
	APIKeyFile    *string

	LogLevel *string
	LogFile  *string
}

// Apply merges the overrides into cfg. If an override pointer is nil, it is ignored.
// If the pointer is non-nil, the value is applied (even if it is a “zero value”).
func (o FlagOverrides) Apply(cfg *Config) {
	if cfg == nil {
		return
	}
	if o.InputBackend != nil {
		cfg.Input.Backend = *o.InputBackend
	}
	if o.GPIOCountPin != nil {
		cfg.Input.GPIO.CountPin = *o.GPIOCountPin
	}
	if o.GPIOResetPin != nil {
		cfg.Input.GPIO.ResetPin = *o.GPIOResetPin
	}
	if o.EvdevDevice != nil {
		cfg.Input.Evdev.Devices = []string{*o.EvdevDevice}
	}

	if o.DisplayBackend != nil {
		cfg.Display.Backend = *o.DisplayBackend
	}
	if o.I2CBus != nil {
		cfg.Display.I2CBus = *o.I2CBus
	}

	if o.ScorePath != nil {
		cfg.Score.Path = *o.ScorePath
	}
	if o.IPCSocketPath != nil {
		cfg.IPC.SocketPath = *o.IPCSocketPath
	}
	if o.MonitorListen != nil {
		cfg.Monitor.Listen = *o.MonitorListen
	}
	if o.APIKeyFile != nil {
		cfg.Taunts.APIKeyFile = *o.APIKeyFile
	}

	if o.LogLevel != nil {
		cfg.Logging.Level = *o.LogLevel
	}
	if o.LogFile != nil {
		cfg.Logging.File = *o.LogFile
	}
}

// Validate checks config invariants and returns a user-friendly error.
// This is intended to be called after defaults + file + overrides are applied.
func (c *Config) Validate() error {
	// Input
	switch c.Input.Backend {
	case InputBackendGPIO:
		if c.Input.GPIO.CountPin == "" || c.Input.GPIO.ResetPin == "" {
			return errors.New("input.gpio.count_pin and input.gpio.reset_pin must not be empty")
		}
		if c.Input.GPIO.CountPin == c.Input.GPIO.ResetPin {
			return errors.New("input.gpio.count_pin and input.gpio.reset_pin must differ")
		}
	case InputBackendEvdev:
		if len(c.Input.Evdev.Devices) == 0 {
			return errors.New("input.evdev.devices must not be empty")
		}
		for i, dev := range c.Input.Evdev.Devices {
			if dev == "" {
				return fmt.Errorf("input.evdev.devices[%d] is empty", i)
			}
		}
		if c.Input.Evdev.CountKey <= 0 || c.Input.Evdev.ResetKey <= 0 {
			return errors.New("input.evdev.count_key and input.evdev.reset_key must be > 0")
		}
		if c.Input.Evdev.CountKey == c.Input.Evdev.ResetKey {
			return errors.New("input.evdev.count_key and input.evdev.reset_key must differ")
		}
	case InputBackendTerminal:
		// The terminal input source shares the tcell screen with the terminal
		// display backend; they only work as a pair.
		if c.Display.Backend != DisplayBackendTerminal {
			return errors.New("input.backend=terminal requires display.backend=terminal")
		}
	default:
		return fmt.Errorf("input.backend must be %q, %q or %q", InputBackendGPIO, InputBackendEvdev, InputBackendTerminal)
	}

	// Display
	switch c.Display.Backend {
	case DisplayBackendSSD1306, DisplayBackendTerminal, DisplayBackendNone:
	default:
		return fmt.Errorf("display.backend must be %q, %q or %q", DisplayBackendSSD1306, DisplayBackendTerminal, DisplayBackendNone)
	}

	// Timing
	if c.Timing.DebounceMS < 0 {
		return errors.New("timing.debounce_ms must be >= 0")
	}
	if c.Timing.HoldMS <= 0 {
		return errors.New("timing.hold_ms must be > 0")
	}
	if c.Timing.ComboMS <= 0 {
		return errors.New("timing.combo_ms must be > 0")
	}
	if c.Timing.DimTimeoutMS <= 0 {
		return errors.New("timing.dim_timeout_ms must be > 0")
	}
	if c.Timing.TickHz <= 0 || c.Timing.TickHz > 1000 {
		return errors.New("timing.tick_hz must be between 1 and 1000")
	}

	// Message
	if c.Message.DurationMS <= 0 {
		return errors.New("message.duration_ms must be > 0")
	}
	if c.Message.ScrollStepMS <= 0 {
		return errors.New("message.scroll_step_ms must be > 0")
	}

	// Taunts
	if c.Taunts.Model == "" {
		return errors.New("taunts.model must not be empty")
	}
	if c.Taunts.BatchSize <= 0 || c.Taunts.BatchSize > 50 {
		return errors.New("taunts.batch_size must be between 1 and 50")
	}
	if c.Taunts.MinClicks < 0 {
		return errors.New("taunts.min_clicks must be >= 0")
	}
	if c.Taunts.ChanceOneIn <= 0 {
		return errors.New("taunts.chance_one_in must be > 0")
	}
	if c.Taunts.RemoteEvery <= 0 {
		return errors.New("taunts.remote_every must be > 0")
	}
	if c.Taunts.MaxLen <= 0 {
		return errors.New("taunts.max_len must be > 0")
	}
	if c.Taunts.TimeoutMS <= 0 {
		return errors.New("taunts.timeout_ms must be > 0")
	}

	// Score
	if c.Score.Path == "" {
		return errors.New("score.path must not be empty")
	}

	// IPC
	if c.IPC.SocketPath == "" {
		return errors.New("ipc.socket_path must not be empty")
	}

	// Logging
	if c.Logging.Level == "" {
		return errors.New("logging.level must not be empty")
	}

	return nil
}

// ToEngineConfig converts file config into the internal reducer config.
// RemoteEnabled is left false; main sets it once the API key is resolved.
func (c *Config) ToEngineConfig() EngineConfig {
	return EngineConfig{
		Debounce:       time.Duration(c.Timing.DebounceMS) * time.Millisecond,
		HoldThreshold:  time.Duration(c.Timing.HoldMS) * time.Millisecond,
		ComboThreshold: time.Duration(c.Timing.ComboMS) * time.Millisecond,
		DimTimeout:     time.Duration(c.Timing.DimTimeoutMS) * time.Millisecond,

		MessageDuration: time.Duration(c.Message.DurationMS) * time.Millisecond,
		ScrollInterval:  time.Duration(c.Message.ScrollStepMS) * time.Millisecond,

		TauntMinClicks:   c.Taunts.MinClicks,
		TauntChanceOneIn: c.Taunts.ChanceOneIn,
		RemoteEvery:      c.Taunts.RemoteEvery,
		RemoteBatch:      c.Taunts.BatchSize,

		MilestoneEvery: milestoneEvery,

		BrightnessFull: brightnessFull,
		BrightnessDim:  brightnessDim,
	}
}

// ExpandPath expands a leading "~" in a path using $HOME.
// This is handy for config values like score.path.
func ExpandPath(p string) string {
	if p == "" {
		return p
	}
	if p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	if len(p) >= 2 && (p[1] == '/' || p[1] == '\\') {
		return filepath.Join(home, p[2:])
	}
	return p
}
