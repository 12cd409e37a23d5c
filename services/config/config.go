package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"templogger-go/errcode"
	"templogger-go/services/acquire"
	"templogger-go/services/hal"
	"templogger-go/services/storage"
	"templogger-go/types"
)

// EmbeddedConfigLookup allows overriding how board defaults are resolved.
var EmbeddedConfigLookup = func(board string) ([]byte, bool) {
	b, ok := embeddedConfigs[board]
	return b, ok
}

type Config struct {
	Sensor  SensorConfig  `yaml:"sensor"`
	Storage StorageConfig `yaml:"storage"`
	Loop    LoopConfig    `yaml:"loop"`
	Console ConsoleConfig `yaml:"console"`
}

type SensorConfig struct {
	Bus      int    `yaml:"bus"`
	Address  uint16 `yaml:"address"`
	Register uint8  `yaml:"register"`
	PeriodMs int    `yaml:"period_ms"`
	Scale    string `yaml:"scale"`
}

type StorageConfig struct {
	Volume    string `yaml:"volume"`
	File      string `yaml:"file"`
	Dir       string `yaml:"dir,omitempty"` // host backing directory
	PollMs    int    `yaml:"poll_ms,omitempty"`
	StartTime string `yaml:"start_time"` // "HH:MM:SS" or "now"
}

type LoopConfig struct {
	IdleUs int `yaml:"idle_us"`
}

type ConsoleConfig struct {
	Color bool `yaml:"color"`
}

var (
	ErrUnknownBoard  = errors.New("unknown board")
	ErrInvalidConfig = errors.New("invalid config")
)

// Default returns the embedded configuration for board.
func Default(board string) (Config, error) {
	raw, ok := EmbeddedConfigLookup(board)
	if !ok || len(raw) == 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownBoard, board)
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Config{}, fmt.Errorf("embedded config %s: %w", board, err)
	}
	return c, nil
}

// Load overlays the YAML file at path (if non-empty) on the board defaults
// and validates the result.
func Load(board, path string) (Config, error) {
	c, err := Default(board)
	if err != nil {
		return Config{}, err
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := yaml.Unmarshal(raw, &c); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Sensor.Bus < 0 {
		errs = append(errs, fmt.Errorf("sensor.bus %d is negative", c.Sensor.Bus))
	}
	if c.Sensor.Address < 0x08 || c.Sensor.Address > 0x77 {
		errs = append(errs, fmt.Errorf("sensor.address %#x outside 7-bit range", c.Sensor.Address))
	}
	if c.Sensor.PeriodMs != int(acquire.SamplingPeriod/time.Millisecond) {
		errs = append(errs, fmt.Errorf("sensor.period_ms must be %d", acquire.SamplingPeriod/time.Millisecond))
	}
	if _, err := types.ParseScale(c.Sensor.Scale); err != nil {
		errs = append(errs, fmt.Errorf("sensor.scale %q: %w", c.Sensor.Scale, err))
	}
	if !strings.HasPrefix(c.Storage.Volume, "/") {
		errs = append(errs, fmt.Errorf("storage.volume %q must be absolute", c.Storage.Volume))
	}
	if c.Storage.File == "" || strings.Contains(c.Storage.File, "/") {
		errs = append(errs, fmt.Errorf("storage.file %q must be a bare file name", c.Storage.File))
	}
	if _, err := c.startClock(time.Time{}); err != nil {
		errs = append(errs, fmt.Errorf("storage.start_time %q: %w", c.Storage.StartTime, err))
	}
	if c.Loop.IdleUs < 0 {
		errs = append(errs, fmt.Errorf("loop.idle_us %d is negative", c.Loop.IdleUs))
	}
	if len(errs) > 0 {
		return errcode.Wrap(errcode.InvalidParams, "config.validate",
			fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...)))
	}
	return nil
}

// Acquire converts the sensor section.
func (c Config) Acquire() (acquire.Config, error) {
	sc, err := types.ParseScale(c.Sensor.Scale)
	if err != nil {
		return acquire.Config{}, err
	}
	return acquire.Config{
		BusIndex: c.Sensor.Bus,
		Address:  c.Sensor.Address,
		Register: c.Sensor.Register,
		Period:   time.Duration(c.Sensor.PeriodMs) * time.Millisecond,
		Scale:    sc,
	}, nil
}

// StorageMachine converts the storage section; now resolves start_time "now".
func (c Config) StorageMachine(now time.Time) (storage.Config, error) {
	start, err := c.startClock(now)
	if err != nil {
		return storage.Config{}, err
	}
	return storage.Config{
		Volume:    c.Storage.Volume,
		FileName:  c.Storage.File,
		StartTime: start,
	}, nil
}

// IdleInterval is the pause between poll loop rounds.
func (c Config) IdleInterval() time.Duration {
	return time.Duration(c.Loop.IdleUs) * time.Microsecond
}

func (c Config) startClock(now time.Time) (types.Clock, error) {
	switch s := strings.TrimSpace(c.Storage.StartTime); s {
	case "", "now":
		return types.Clock{Hour: now.Hour(), Min: now.Minute(), Sec: now.Second()}, nil
	default:
		return hal.ParseClock(s)
	}
}

// YAML renders the configuration.
func (c Config) YAML() ([]byte, error) { return yaml.Marshal(c) }
