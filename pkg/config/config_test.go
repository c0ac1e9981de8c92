package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	cfg, err := FromViper(v)
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if cfg.Past != 50 || cfg.Future != 50 {
		t.Fatalf("expected ranges of 50, got %d/%d", cfg.Past, cfg.Future)
	}
	if cfg.Height != 9 || cfg.WeekRow != 1 {
		t.Fatalf("unexpected sizes height=%d weekRow=%d", cfg.Height, cfg.WeekRow)
	}
	if filepath.Base(cfg.StatePath) != ".calscroll.db" || cfg.StatePath[0] == '~' {
		t.Fatalf("expected an expanded state path, got %q", cfg.StatePath)
	}
	opts := cfg.ListOptions(nil)
	if opts.ShowScrollIndicator || opts.ScrollsToTop {
		t.Fatalf("expected indicator and scroll-to-top off, got %v/%v",
			opts.ShowScrollIndicator, opts.ScrollsToTop)
	}
	if !opts.ScrollEnabled || opts.PagingEnabled || opts.Horizontal {
		t.Fatalf("unexpected scrolling defaults %+v", opts)
	}
}

func TestLoadFileAndFlags(t *testing.T) {
	dir := t.TempDir()
	body := "past: 3\nfuture: 4\nfirst-day: 1\nhorizontal: true\n"
	if err := os.WriteFile(filepath.Join(dir, ".calscroll.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CALSCROLL_CONFIG_PATH", dir)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int(KeyFuture, 0, "")
	flags.String("unrelated", "", "")
	if err := flags.Parse([]string{"--future=7"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Past != 3 {
		t.Fatalf("expected past 3 from file, got %d", cfg.Past)
	}
	if cfg.Future != 7 {
		t.Fatalf("expected future 7 from flag, got %d", cfg.Future)
	}
	if !cfg.Horizontal || cfg.FirstDay != 1 {
		t.Fatalf("unexpected config %+v", cfg)
	}

	opts := cfg.ListOptions("2024-03-15")
	if opts.PastScrollRange != 3 || opts.FutureScrollRange != 7 || opts.FirstDay != time.Monday || !opts.Horizontal {
		t.Fatalf("unexpected list options %+v", opts)
	}
}

func TestValidate(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyFirstDay, 9)
	if _, err := FromViper(v); err == nil {
		t.Fatalf("expected first-day 9 to be rejected")
	}

	v = viper.New()
	SetDefaults(v)
	v.Set(KeyPast, -1)
	if _, err := FromViper(v); err == nil {
		t.Fatalf("expected a negative range to be rejected")
	}
}
