package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "optrack.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultServerConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
	if cfg.Interval() != 24*time.Hour {
		t.Errorf("Interval = %v", cfg.Interval())
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, "addr: \":9090\"\nlog_format: JSON\njob_interval: 1h\nseed_file: subs.yaml\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.LogFormat != "json" || cfg.JobInterval != time.Hour || cfg.SeedFile != "subs.yaml" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want default info", cfg.LogLevel)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "addr: \":9090\"\n")
	t.Setenv("OPTRACK_ADDR", ":7070")
	t.Setenv("OPTRACK_DEMO", "true")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("Addr = %q, want :7070", cfg.Addr)
	}
	if !cfg.Demo || cfg.Interval() != DemoInterval {
		t.Errorf("Demo = %v, Interval = %v", cfg.Demo, cfg.Interval())
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("explicit missing file: expected error")
	}
	for _, body := range []string{"log_level: loud\n", "job_interval: 0s\n", "log_format: xml\n"} {
		cfg, err := Load(writeConfig(t, body))
		if err != nil {
			t.Fatalf("Load(%q): %v", body, err)
		}
		if err := cfg.Validate(); err == nil {
			t.Errorf("Validate after %q: expected error", body)
		}
	}
}

func serverFlags(t *testing.T, args ...string) *flag.FlagSet {
	t.Helper()
	def := DefaultServerConfig()
	fs := flag.NewFlagSet("optrack-server", flag.ContinueOnError)
	fs.String("addr", def.Addr, "")
	fs.String("log-level", def.LogLevel, "")
	fs.String("log-format", def.LogFormat, "")
	fs.String("seed", "", "")
	fs.Duration("job-interval", def.JobInterval, "")
	fs.Bool("demo", false, "")
	fs.Bool("debug", false, "")
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return fs
}

func TestApplyFlags(t *testing.T) {
	path := writeConfig(t, "addr: \":9090\"\nlog_format: json\n")
	t.Setenv("OPTRACK_LOG_LEVEL", "verbose")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name    string
		args    []string
		want    ServerConfig
		invalid bool
	}{
		{
			name:    "bad env level left in place",
			args:    nil,
			invalid: true,
		},
		{
			name: "flag replaces bad env level",
			args: []string{"-log-level", "debug"},
			want: ServerConfig{Addr: ":9090", LogLevel: "debug", LogFormat: "json", JobInterval: 24 * time.Hour},
		},
		{
			name: "upper-case flag values",
			args: []string{"-log-level", "INFO", "-log-format", "TEXT"},
			want: ServerConfig{Addr: ":9090", LogLevel: "info", LogFormat: "text", JobInterval: 24 * time.Hour},
		},
		{
			name: "debug shorthand and the rest",
			args: []string{"-debug", "-addr", ":7070", "-seed", "subs.yaml", "-job-interval", "1h", "-demo"},
			want: ServerConfig{Addr: ":7070", LogLevel: "debug", LogFormat: "json", SeedFile: "subs.yaml", JobInterval: time.Hour, Demo: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cfg.ApplyFlags(serverFlags(t, tt.args...))
			if err != nil {
				t.Fatalf("ApplyFlags: %v", err)
			}
			verr := got.Validate()
			if tt.invalid {
				if verr == nil {
					t.Errorf("Validate(%+v): expected error", got)
				}
				return
			}
			if verr != nil {
				t.Fatalf("Validate: %v", verr)
			}
			if got != tt.want {
				t.Errorf("cfg = %+v, want %+v", got, tt.want)
			}
		})
	}
}
