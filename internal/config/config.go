// Package config loads editor settings from defaults, an optional yaml file, .env and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const EnvPrefix = "PLOTEDITOR"

type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Map     MapConfig     `mapstructure:"map"`
	Overlay OverlayConfig `mapstructure:"overlay"`
	Editor  EditorConfig  `mapstructure:"editor"`
	Log     LogConfig     `mapstructure:"log"`
}

type DataConfig struct {
	File      string `mapstructure:"file"`
	ImportDir string `mapstructure:"import_dir"`
	ExportDir string `mapstructure:"export_dir"`
}

type MapConfig struct {
	CenterLat float64 `mapstructure:"center_lat"`
	CenterLon float64 `mapstructure:"center_lon"`
	Zoom      float64 `mapstructure:"zoom"`
}

// OverlayConfig anchors the site plan image to a lat/lon box.
type OverlayConfig struct {
	Image   string  `mapstructure:"image"`
	LatMin  float64 `mapstructure:"lat_min"`
	LatMax  float64 `mapstructure:"lat_max"`
	LonMin  float64 `mapstructure:"lon_min"`
	LonMax  float64 `mapstructure:"lon_max"`
	Opacity float64 `mapstructure:"opacity"`
	Visible bool    `mapstructure:"visible"`
}

type EditorConfig struct {
	DefaultStatus string        `mapstructure:"default_status"`
	FocusDuration time.Duration `mapstructure:"focus_duration"`
	NewPlotSize   float64       `mapstructure:"new_plot_size"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.file", "plotsData.json")
	v.SetDefault("data.import_dir", ".")
	v.SetDefault("data.export_dir", ".")
	v.SetDefault("map.center_lat", 43.1743)
	v.SetDefault("map.center_lon", 44.9943)
	v.SetDefault("map.zoom", 16)
	v.SetDefault("overlay.image", "plan.png")
	v.SetDefault("overlay.lat_min", 43.17200148099052)
	v.SetDefault("overlay.lat_max", 43.17607685437098)
	v.SetDefault("overlay.lon_min", 44.98947002377316)
	v.SetDefault("overlay.lon_max", 44.99881483998105)
	v.SetDefault("overlay.opacity", 0.75)
	v.SetDefault("overlay.visible", true)
	v.SetDefault("editor.default_status", "Свободен")
	v.SetDefault("editor.focus_duration", 200*time.Millisecond)
	v.SetDefault("editor.new_plot_size", 0.0002)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "ploteditor.log")
}

// flag name -> config key
var flagKeys = map[string]string{
	"data":      "data.file",
	"plan":      "overlay.image",
	"log-level": "log.level",
}

// Load resolves the configuration. file may be empty, in which case ploteditor.yaml is
// looked up in the working directory and ./configs; a missing file is fine. flags may be
// nil; set flags override every other source.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	// .env only seeds the environment; real variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("ploteditor")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	// PLOTEDITOR_DATA_FILE -> data.file
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and required fields, reporting every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Data.ExportDir == "" {
		errs = append(errs, "data.export_dir is required")
	}
	if c.Map.CenterLat < -90 || c.Map.CenterLat > 90 {
		errs = append(errs, fmt.Sprintf("map.center_lat must be -90..90, got %g", c.Map.CenterLat))
	}
	if c.Map.CenterLon < -180 || c.Map.CenterLon > 180 {
		errs = append(errs, fmt.Sprintf("map.center_lon must be -180..180, got %g", c.Map.CenterLon))
	}
	if c.Map.Zoom < 2 || c.Map.Zoom > 21 {
		errs = append(errs, fmt.Sprintf("map.zoom must be 2-21, got %g", c.Map.Zoom))
	}
	if c.Overlay.LatMin >= c.Overlay.LatMax {
		errs = append(errs, "overlay.lat_min must be below overlay.lat_max")
	}
	if c.Overlay.LonMin >= c.Overlay.LonMax {
		errs = append(errs, "overlay.lon_min must be below overlay.lon_max")
	}
	if c.Overlay.Opacity < 0 || c.Overlay.Opacity > 1 {
		errs = append(errs, fmt.Sprintf("overlay.opacity must be 0-1, got %g", c.Overlay.Opacity))
	}
	if c.Editor.FocusDuration < 0 {
		errs = append(errs, "editor.focus_duration must not be negative")
	}
	if c.Editor.NewPlotSize <= 0 {
		errs = append(errs, "editor.new_plot_size must be positive")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
