package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNormalizeDirArg(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no trailing slash", "/work/assets", "/work/assets"},
		{"single trailing slash", "/work/assets/", "/work/assets"},
		{"multiple trailing slashes", "/work/assets///", "/work/assets"},
		{"root path", "/", "/"},
		{"relative path", "models", "models"},
		{"relative with slash", "models/", "models"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeDirArg(tt.in)
			if got != tt.want {
				t.Errorf("NormalizeDirArg(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_FailurePolicy(t *testing.T) {
	tests := []struct {
		name    string
		policy  FailurePolicy
		wantErr bool
	}{
		{"abort is valid", FailureAbort, false},
		{"continue is valid", FailureContinue, false},
		{"empty is invalid", "", true},
		{"unknown is invalid", "retry", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.OnFailure = tt.policy
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_Ranges(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"depth zero", func(c *Config) { c.MaxDepth = 0 }, false},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, true},
		{"empty tool", func(c *Config) { c.Tool = " " }, true},
		{"empty texture command", func(c *Config) { c.TextureCommand = "" }, true},
		{"empty suffix", func(c *Config) { c.IntermediateSuffix = "" }, true},
		{"suffix with separator", func(c *Config) { c.IntermediateSuffix = "/tmp" }, true},
		{"bad color", func(c *Config) { c.ColorMode = "sometimes" }, true},
		{"empty root", func(c *Config) { c.Root = "" }, true},
		{"empty root in check mode", func(c *Config) { c.Root = ""; c.CheckOnly = true }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxDepth != 4 {
		t.Errorf("default MaxDepth = %d, want 4", cfg.MaxDepth)
	}
	if cfg.IntermediateSuffix != "-etc1s" {
		t.Errorf("default IntermediateSuffix = %q, want -etc1s", cfg.IntermediateSuffix)
	}
	if cfg.Tool != "gltf-transform" {
		t.Errorf("default Tool = %q, want gltf-transform", cfg.Tool)
	}
	if cfg.OnFailure != FailureAbort {
		t.Errorf("default OnFailure = %q, want %q", cfg.OnFailure, FailureAbort)
	}
	if cfg.DryRun {
		t.Error("default DryRun should be false")
	}
}

func TestParseFlags_Overrides(t *testing.T) {
	cfg := DefaultConfig()
	args := []string{"--depth", "2", "--suffix", "-tmp", "--on-failure", "continue", "-y", "--no-color", "assets/"}
	if err := ParseFlags(&cfg, "test", args); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", cfg.MaxDepth)
	}
	if cfg.IntermediateSuffix != "-tmp" {
		t.Errorf("IntermediateSuffix = %q, want -tmp", cfg.IntermediateSuffix)
	}
	if cfg.OnFailure != FailureContinue {
		t.Errorf("OnFailure = %q, want continue", cfg.OnFailure)
	}
	if !cfg.AssumeYes {
		t.Error("AssumeYes should be set by -y")
	}
	if cfg.ColorMode != ColorNever {
		t.Errorf("ColorMode = %q, want never", cfg.ColorMode)
	}
	if cfg.Root != "assets" {
		t.Errorf("Root = %q, want assets", cfg.Root)
	}
}

func TestParseFlags_RejectsExtraPositional(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, "test", []string{"a", "b"}); err == nil {
		t.Error("expected error for two positional args")
	}
}

func TestParseFlags_InvalidPolicy(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, "test", []string{"--on-failure", "retry"}); err == nil {
		t.Error("expected error for unknown failure policy")
	}
}

func TestParseFlags_DefaultFileUnderFlags(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, DefaultConfigName), `
max_depth: 7
intermediate_suffix: "-stage1"
on_failure: continue
texture_args: ["--slots", "baseColorTexture"]
`)

	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, "test", []string{"--depth", "1", root}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if cfg.ConfigFile == "" {
		t.Fatal("default config file was not loaded")
	}
	if cfg.MaxDepth != 1 {
		t.Errorf("MaxDepth = %d, want 1 (flag beats file)", cfg.MaxDepth)
	}
	if cfg.IntermediateSuffix != "-stage1" {
		t.Errorf("IntermediateSuffix = %q, want -stage1 (from file)", cfg.IntermediateSuffix)
	}
	if cfg.OnFailure != FailureContinue {
		t.Errorf("OnFailure = %q, want continue (from file)", cfg.OnFailure)
	}
	if strings.Join(cfg.TextureArgs, " ") != "--slots baseColorTexture" {
		t.Errorf("TextureArgs = %v", cfg.TextureArgs)
	}
}

func TestLoadFile_RejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	writeFile(t, path, "max_dept: 3\n")

	cfg := DefaultConfig()
	if err := LoadFile(&cfg, path); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestLoadFile_EmptyFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	writeFile(t, path, "")

	cfg := DefaultConfig()
	if err := LoadFile(&cfg, path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.MaxDepth != 4 || cfg.Tool != "gltf-transform" {
		t.Errorf("defaults changed: %+v", cfg)
	}
}

func TestLoadDefaultFile_Missing(t *testing.T) {
	cfg := DefaultConfig()
	if err := LoadDefaultFile(&cfg, t.TempDir()); err != nil {
		t.Errorf("missing default file should not error: %v", err)
	}
	if cfg.ConfigFile != "" {
		t.Errorf("ConfigFile = %q, want empty", cfg.ConfigFile)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadFile_FailurePolicyIgnoresCase(t *testing.T) {
	tests := []struct {
		raw  string
		want FailurePolicy
	}{
		{"Continue", FailureContinue},
		{"ABORT", FailureAbort},
		{" continue ", FailureContinue},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			writeFile(t, path, "on_failure: \""+tt.raw+"\"\n")

			cfg := DefaultConfig()
			if err := LoadFile(&cfg, path); err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			if cfg.OnFailure != tt.want {
				t.Errorf("OnFailure = %q, want %q", cfg.OnFailure, tt.want)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestParseFlags_AnalyzeAndPolicyCase(t *testing.T) {
	cfg := DefaultConfig()
	if err := ParseFlags(&cfg, "test", []string{"-a", "--on-failure", "CONTINUE", t.TempDir()}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	if !cfg.Analyze {
		t.Error("Analyze should be set by -a")
	}
	if cfg.OnFailure != FailureContinue {
		t.Errorf("OnFailure = %q, want continue", cfg.OnFailure)
	}
}
