package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stil/pkg/logging"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stil.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Sample != DefaultSample {
		t.Errorf("Sample = %q, want %q", cfg.Sample, DefaultSample)
	}
	if cfg.Lexer.KeywordTableSize != 512 {
		t.Errorf("KeywordTableSize = %d, want 512", cfg.Lexer.KeywordTableSize)
	}
	if !cfg.Output.Color {
		t.Error("Color should default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default() does not validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
sample = "programs/main.st"

[lexer]
keyword_table_size = 1024

[output]
color = false
format = "yaml"
log_level = "warn"
show_tokens = true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Sample != "programs/main.st" {
		t.Errorf("Sample = %q", cfg.Sample)
	}
	if cfg.Lexer.KeywordTableSize != 1024 {
		t.Errorf("KeywordTableSize = %d, want 1024", cfg.Lexer.KeywordTableSize)
	}
	if cfg.Output.Color {
		t.Error("Color = true, want false")
	}
	if cfg.Output.Format != "yaml" {
		t.Errorf("Format = %q, want yaml", cfg.Output.Format)
	}
	if cfg.Level() != logging.LevelWarn {
		t.Errorf("Level() = %v, want warn", cfg.Level())
	}
	if !cfg.Output.ShowTokens {
		t.Error("ShowTokens = false, want true")
	}
}

func TestLoad_KeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeConfig(t, "[output]\nformat = \"text\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Lexer.KeywordTableSize != DefaultKeywordTableSize {
		t.Errorf("KeywordTableSize = %d, want default", cfg.Lexer.KeywordTableSize)
	}
	if cfg.Sample != DefaultSample {
		t.Errorf("Sample = %q, want default", cfg.Sample)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"not power of two", "[lexer]\nkeyword_table_size = 500\n", "power of two"},
		{"too small", "[lexer]\nkeyword_table_size = 1\n", "power of two"},
		{"bad format", "[output]\nformat = \"json\"\n", "output.format"},
		{"bad level", "[output]\nlog_level = \"loud\"\n", "log_level"},
		{"bad toml", "[lexer\n", "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("error %q does not mention %q", err, tt.errPart)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}
