package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the battery-alarm commands.
type Config struct {
	// ControlAddress is where the running monitor serves the control gRPC API.
	ControlAddress string `yaml:"control_addr" env:"CONTROL_ADDR"`
	// MetricsAddress enables the Prometheus endpoint when set.
	MetricsAddress string `yaml:"metrics_addr,omitempty" env:"METRICS_ADDR"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	// Timeout bounds control RPCs and a single power query.
	Timeout time.Duration `yaml:"timeout" env:"TIMEOUT"`
	// EnvFile is an optional dotenv file applied before environment overrides.
	EnvFile string `yaml:"env_file,omitempty"`
	// Power selects how the mains status is read.
	Power Power `yaml:"power" envPrefix:"POWER_"`
	// Tone describes the alarm sound.
	Tone Tone `yaml:"tone" envPrefix:"TONE_"`
}

// Power configures the power status source.
type Power struct {
	// Source is either SourceCommand or SourceSysfs.
	Source string `yaml:"source" env:"SOURCE"`
	// Command overrides the platform default status command.
	Command string `yaml:"command" env:"COMMAND"`
	// Args are passed to Command.
	Args []string `yaml:"args" env:"ARGS"`
	// Marker is the text whose presence in the command output means "on mains".
	Marker string `yaml:"marker" env:"MARKER"`
	// SysfsDir is the power_supply class directory.
	SysfsDir string `yaml:"sysfs_dir" env:"SYSFS_DIR"`
}

// Tone configures the alarm beep.
type Tone struct {
	// Frequency in hertz.
	Frequency float64 `yaml:"frequency" env:"FREQUENCY"`
	// Duration of a single beep.
	Duration time.Duration `yaml:"duration" env:"DURATION"`
}

const (
	// DefaultConfigFilename is read when no --config flag is given.
	DefaultConfigFilename = "battery-alarm-settings.yaml"

	// DefaultControlAddress is the loopback address of the control API.
	DefaultControlAddress = "127.0.0.1:50070"

	// DefaultTimeout is the default RPC and power query timeout.
	DefaultTimeout = 5 * time.Second

	// DefaultToneFrequency is an A4 note.
	DefaultToneFrequency = 440.0

	// DefaultToneDuration is the length of one alarm beep.
	DefaultToneDuration = 500 * time.Millisecond

	// DefaultSysfsDir is the Linux power_supply class directory.
	DefaultSysfsDir = "/sys/class/power_supply"

	// DefaultFilePermissions is used when saving settings.
	DefaultFilePermissions = 0o600

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "BATTERY_ALARM_"

	// SourceCommand reads the status from an external command.
	SourceCommand = "command"
	// SourceSysfs reads the status from the sysfs power_supply class.
	SourceSysfs = "sysfs"

	// maxToneFrequency keeps the beep within human hearing.
	maxToneFrequency = 20000
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnknownSource is returned for an unsupported power source.
	errUnknownSource = errors.New("unknown power source")
	// errUnknownLogLevel is returned for an unsupported log level.
	errUnknownLogLevel = errors.New("unknown log level")
	// errInvalidTone is returned for a tone outside the audible range.
	errInvalidTone = errors.New("invalid tone")
)

// Load reads settings from path, applies environment overrides and validates them.
// An empty path means DefaultConfigFilename, which may be absent: defaults are used then.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFilename
	}

	cfg := new(Config)

	contents, err := os.ReadFile(filepath.Clean(path))

	switch {
	case err == nil:
		if err = yaml.Unmarshal(contents, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// Running without a settings file is fine.
	default:
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err = applyEnvironment(cfg); err != nil {
		return nil, err
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate fills defaults and rejects malformed settings.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.ControlAddress == "" {
		cfg.ControlAddress = DefaultControlAddress
	}

	if _, err := net.ResolveTCPAddr("tcp", cfg.ControlAddress); err != nil {
		return fmt.Errorf("invalid control address: %w", err)
	}

	if cfg.MetricsAddress != "" {
		if _, err := net.ResolveTCPAddr("tcp", cfg.MetricsAddress); err != nil {
			return fmt.Errorf("invalid metrics address: %w", err)
		}
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: %q", errUnknownLogLevel, cfg.LogLevel)
	}

	if err := validatePower(&cfg.Power); err != nil {
		return err
	}

	return validateTone(&cfg.Tone)
}

func validatePower(p *Power) error {
	switch p.Source {
	case "":
		p.Source = SourceCommand
	case SourceCommand, SourceSysfs:
	default:
		return fmt.Errorf("%w: %q", errUnknownSource, p.Source)
	}

	if p.SysfsDir == "" {
		p.SysfsDir = DefaultSysfsDir
	}

	return nil
}

func validateTone(t *Tone) error {
	if t.Frequency == 0 {
		t.Frequency = DefaultToneFrequency
	}

	if t.Frequency < 0 || t.Frequency > maxToneFrequency {
		return fmt.Errorf("%w: frequency %v Hz", errInvalidTone, t.Frequency)
	}

	if t.Duration == 0 {
		t.Duration = DefaultToneDuration
	}

	if t.Duration < 0 {
		return fmt.Errorf("%w: duration %s", errInvalidTone, t.Duration)
	}

	return nil
}

// applyEnvironment loads the optional dotenv file and overlays BATTERY_ALARM_* variables.
// Variables already present in the process environment win over the dotenv file.
func applyEnvironment(cfg *Config) error {
	if cfg.EnvFile != "" {
		if err := godotenv.Load(filepath.Clean(cfg.EnvFile)); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}

	return nil
}
