package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/phanxgames/gesture"
)

// EnvPrefix prefixes every environment variable override.
const EnvPrefix = "GESTURE"

// Config holds the gesturereplay configuration.
type Config struct {
	Viewport   ViewportConfig `mapstructure:"viewport" yaml:"viewport"`
	Recognizer gesture.Config `mapstructure:"recognizer" yaml:"recognizer"`
	Replay     ReplayConfig   `mapstructure:"replay" yaml:"replay"`
	Logger     LoggerConfig   `mapstructure:"logger" yaml:"logger"`
}

// ViewportConfig is the screen size the recognizer thresholds derive from.
type ViewportConfig struct {
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

// ReplayConfig drives the simulated clock of a replay.
type ReplayConfig struct {
	RecognizerID string `mapstructure:"recognizer_id" yaml:"recognizer_id"`
	MaxContacts  int    `mapstructure:"max_contacts" yaml:"max_contacts"`
	TickMS       int64  `mapstructure:"tick_ms" yaml:"tick_ms"`
	// SettleMS keeps ticking after the script ends so pending taps resolve.
	SettleMS int64 `mapstructure:"settle_ms" yaml:"settle_ms"`
	MaxTicks int   `mapstructure:"max_ticks" yaml:"max_ticks"`
	// Realtime paces ticks on the wall clock instead of running flat out.
	Realtime bool `mapstructure:"realtime" yaml:"realtime"`
	// Concurrency bounds how many scripts replay at once.
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// NewDefaultConfig creates a new configuration struct populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults registers default values for every configuration key.
func SetDefaults(v *viper.Viper) {
	// -- Viewport --
	v.SetDefault("viewport.width", 640)
	v.SetDefault("viewport.height", 480)

	// -- Recognizer --
	rc := gesture.DefaultConfig()
	v.SetDefault("recognizer.double_click_window_ms", rc.DoubleClickWindow)
	v.SetDefault("recognizer.drag_hold_ms", rc.DragHold)
	v.SetDefault("recognizer.long_tap_hold_ms", rc.LongTapHold)
	v.SetDefault("recognizer.max_swipe_duration_ms", rc.MaxSwipeDuration)
	v.SetDefault("recognizer.arc_min_x_ratio", rc.ArcMinXRatio)
	v.SetDefault("recognizer.arc_min_y_change_ratio", rc.ArcMinYChangeRatio)
	v.SetDefault("recognizer.steady_ratio", rc.SteadyRatio)
	v.SetDefault("recognizer.rotate_cos_threshold", rc.RotateCosThreshold)
	v.SetDefault("recognizer.full_screen_swipe_seconds", rc.FullScreenSwipeSeconds)
	v.SetDefault("recognizer.debug", rc.Debug)

	// -- Replay --
	v.SetDefault("replay.recognizer_id", gesture.BaseRecognizerID)
	v.SetDefault("replay.max_contacts", gesture.DefaultMaxContacts)
	v.SetDefault("replay.tick_ms", 16)
	v.SetDefault("replay.settle_ms", 1000)
	v.SetDefault("replay.max_ticks", 100000)
	v.SetDefault("replay.realtime", false)
	v.SetDefault("replay.concurrency", 4)

	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "gesturereplay")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)
}

// BindEnv makes every key overridable by GESTURE_<SECTION>_<KEY>.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// NewConfigFromViper creates a new configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport.width and viewport.height must be positive integers")
	}
	if c.Replay.TickMS <= 0 {
		return fmt.Errorf("replay.tick_ms must be a positive integer")
	}
	if c.Replay.SettleMS < 0 {
		return fmt.Errorf("replay.settle_ms must not be negative")
	}
	if c.Replay.MaxContacts < 2 {
		return fmt.Errorf("replay.max_contacts must be at least 2")
	}
	if c.Replay.MaxTicks <= 0 {
		return fmt.Errorf("replay.max_ticks must be a positive integer")
	}
	if c.Replay.Concurrency < 1 {
		return fmt.Errorf("replay.concurrency must be at least 1")
	}
	if c.Replay.RecognizerID == "" {
		return fmt.Errorf("replay.recognizer_id is required")
	}
	if err := validateRecognizer(c.Recognizer); err != nil {
		return fmt.Errorf("recognizer configuration invalid: %w", err)
	}
	return nil
}

func validateRecognizer(rc gesture.Config) error {
	if rc.DoubleClickWindow < 0 || rc.DragHold < 0 || rc.LongTapHold < 0 || rc.MaxSwipeDuration < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	if rc.SteadyRatio < 0 || rc.SteadyRatio > 1 {
		return fmt.Errorf("steady_ratio must be between 0.0 and 1.0")
	}
	if rc.FullScreenSwipeSeconds < 0 {
		return fmt.Errorf("full_screen_swipe_seconds must not be negative")
	}
	return nil
}
