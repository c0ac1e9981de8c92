// Package config loads calscroll settings from a .calscroll file, CALSCROLL_*
// environment variables and command line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tableflip.dev/calscroll/pkg/calendarlist"
	"tableflip.dev/calscroll/pkg/tui/components/calendar"
)

// Keys understood in the config file and environment.
const (
	KeyStatePath       = "path"
	KeyPast            = "past"
	KeyFuture          = "future"
	KeyHorizontal      = "horizontal"
	KeyPaging          = "paging"
	KeyScrollIndicator = "scroll-indicator"
	KeyScrollsToTop    = "scrolls-to-top"
	KeyFirstDay        = "first-day"
	KeyHeight          = "height"
	KeyWidth           = "width"
	KeyWeekRow         = "week-row"
	KeyOutsideDays     = "outside-days"
	KeyICS             = "ics"
	KeyLogFile         = "log-file"
	KeyLogLevel        = "log-level"
)

// defaultHeight fits a six-week month plus one blank line between months.
const defaultHeight = calendar.MinHeight + 1

// Config is the resolved configuration.
type Config struct {
	StatePath string `json:"path" yaml:"path"`

	Past   int `json:"past" yaml:"past"`
	Future int `json:"future" yaml:"future"`

	Horizontal      bool `json:"horizontal" yaml:"horizontal"`
	Paging          bool `json:"paging" yaml:"paging"`
	ScrollIndicator bool `json:"scrollIndicator" yaml:"scroll-indicator"`
	ScrollsToTop    bool `json:"scrollsToTop" yaml:"scrolls-to-top"`

	FirstDay    int  `json:"firstDay" yaml:"first-day"`
	Height      int  `json:"height" yaml:"height"`
	Width       int  `json:"width" yaml:"width"`
	WeekRow     int  `json:"weekRow" yaml:"week-row"`
	OutsideDays bool `json:"outsideDays" yaml:"outside-days"`

	ICS      []string `json:"ics" yaml:"ics"`
	LogFile  string   `json:"logFile" yaml:"log-file"`
	LogLevel string   `json:"logLevel" yaml:"log-level"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyStatePath, "~/.calscroll.db")
	v.SetDefault(KeyPast, calendarlist.DefaultScrollRange)
	v.SetDefault(KeyFuture, calendarlist.DefaultScrollRange)
	v.SetDefault(KeyHorizontal, false)
	v.SetDefault(KeyPaging, false)
	v.SetDefault(KeyScrollIndicator, false)
	v.SetDefault(KeyScrollsToTop, false)
	v.SetDefault(KeyFirstDay, 0)
	v.SetDefault(KeyHeight, defaultHeight)
	v.SetDefault(KeyWidth, 0)
	v.SetDefault(KeyWeekRow, 1)
	v.SetDefault(KeyOutsideDays, false)
	v.SetDefault(KeyICS, []string{})
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogLevel, "info")
}

// Load reads the config file and environment into a new viper instance and
// binds flags, when given, on top.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigName(".calscroll") // .yaml is implicit
	v.SetEnvPrefix("CALSCROLL")
	v.AutomaticEnv()

	if override := os.Getenv("CALSCROLL_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}
	return FromViper(v)
}

// bindFlags binds only the flags that map to config keys.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil || !isKey(f.Name) {
			return
		}
		if bindErr := v.BindPFlag(f.Name, f); bindErr != nil {
			err = fmt.Errorf("config: bind --%s: %w", f.Name, bindErr)
		}
	})
	return err
}

func isKey(name string) bool {
	switch name {
	case KeyStatePath, KeyPast, KeyFuture, KeyHorizontal, KeyPaging,
		KeyScrollIndicator, KeyScrollsToTop, KeyFirstDay, KeyHeight, KeyWidth,
		KeyWeekRow, KeyOutsideDays, KeyICS, KeyLogFile, KeyLogLevel:
		return true
	}
	return false
}

// FromViper resolves a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		StatePath:       v.GetString(KeyStatePath),
		Past:            v.GetInt(KeyPast),
		Future:          v.GetInt(KeyFuture),
		Horizontal:      v.GetBool(KeyHorizontal),
		Paging:          v.GetBool(KeyPaging),
		ScrollIndicator: v.GetBool(KeyScrollIndicator),
		ScrollsToTop:    v.GetBool(KeyScrollsToTop),
		FirstDay:        v.GetInt(KeyFirstDay),
		Height:          v.GetInt(KeyHeight),
		Width:           v.GetInt(KeyWidth),
		WeekRow:         v.GetInt(KeyWeekRow),
		OutsideDays:     v.GetBool(KeyOutsideDays),
		ICS:             v.GetStringSlice(KeyICS),
		LogFile:         v.GetString(KeyLogFile),
		LogLevel:        v.GetString(KeyLogLevel),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	path, err := homedir.Expand(cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("config: expand %s: %w", KeyStatePath, err)
	}
	cfg.StatePath = path
	for i, p := range cfg.ICS {
		if cfg.ICS[i], err = homedir.Expand(p); err != nil {
			return nil, fmt.Errorf("config: expand %s %q: %w", KeyICS, p, err)
		}
	}
	return cfg, nil
}

// Validate rejects settings the calendar list cannot use.
func (c *Config) Validate() error {
	if c.Past < 0 || c.Future < 0 {
		return fmt.Errorf("config: scroll ranges must not be negative (past=%d future=%d)", c.Past, c.Future)
	}
	if c.FirstDay < 0 || c.FirstDay > 6 {
		return fmt.Errorf("config: %s must be 0 (Sunday) to 6 (Saturday), got %d", KeyFirstDay, c.FirstDay)
	}
	if c.Height < 0 || c.Width < 0 || c.WeekRow < 0 {
		return fmt.Errorf("config: sizes must not be negative")
	}
	return nil
}

// ListOptions maps the config onto calendar list options. current may be
// nil for today.
func (c *Config) ListOptions(current any) calendarlist.Options {
	opts := calendarlist.DefaultOptions()
	opts.Current = current
	opts.PastScrollRange = c.Past
	opts.FutureScrollRange = c.Future
	opts.Horizontal = c.Horizontal
	opts.PagingEnabled = c.Paging
	opts.ShowScrollIndicator = c.ScrollIndicator
	opts.ScrollsToTop = c.ScrollsToTop
	opts.FirstDay = time.Weekday(c.FirstDay)
	opts.CalendarWidth = c.Width
	opts.CalendarHeight = defaultHeight
	if c.Height > 0 {
		opts.CalendarHeight = c.Height
	}
	opts.WeekRowHeight = 1
	if c.WeekRow > 0 {
		opts.WeekRowHeight = c.WeekRow
	}
	return opts
}

// BasePath is the directory holding saved sessions.
func (c *Config) BasePath() string { return c.StatePath }
