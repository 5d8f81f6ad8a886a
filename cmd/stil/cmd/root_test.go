package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stil/pkg/compiler"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

const program = "PROGRAM P VAR x : INT; END_VAR x := 5; END_PROGRAM\n"

func TestRoot_TextOutput(t *testing.T) {
	src := writeFile(t, "p.st", program)

	out, err := execute(t, "--no-color", src)
	if err != nil {
		t.Fatalf("Execute() error = %v\n%s", err, out)
	}

	for _, want := range []string{
		"INFO compilation ",
		"parsed 1 unit(s)",
		"INFO ======AST======\n",
		"PROGRAM:\n  NAME: P\n",
		"        INT LITERAL: 5\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestRoot_YAMLAndTokens(t *testing.T) {
	src := writeFile(t, "p.st", program)

	out, err := execute(t, "--no-color", "--format", "yaml", "--tokens", "--quiet", src)
	if err != nil {
		t.Fatalf("Execute() error = %v\n%s", err, out)
	}
	if !strings.HasPrefix(out, "PROGRAM @0\n") {
		t.Errorf("token dump missing:\n%s", out)
	}
	if !strings.Contains(out, `IDENT "x" @14`) {
		t.Errorf("IDENT token missing:\n%s", out)
	}
	if !strings.Contains(out, "units:\n") || !strings.Contains(out, "name: P") {
		t.Errorf("YAML output missing:\n%s", out)
	}
	if strings.Contains(out, "INFO") {
		t.Errorf("--quiet should hide info lines:\n%s", out)
	}
}

func TestRoot_ConfigFile(t *testing.T) {
	src := writeFile(t, "sample.st", program)
	cfg := writeFile(t, "stil.toml", `
sample = "`+filepath.ToSlash(src)+`"

[output]
color = false
format = "yaml"
`)

	out, err := execute(t, "--config", cfg)
	if err != nil {
		t.Fatalf("Execute() error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "WARN no input file given, compiling ") {
		t.Errorf("missing sample warning:\n%s", out)
	}
	if !strings.Contains(out, "kind: PROGRAM") {
		t.Errorf("config format not applied:\n%s", out)
	}

	// Flags win over the file.
	out, err = execute(t, "--config", cfg, "--format", "text", src)
	if err != nil {
		t.Fatalf("Execute() error = %v\n%s", err, out)
	}
	if !strings.Contains(out, "PROGRAM:\n") {
		t.Errorf("--format did not override config:\n%s", out)
	}
}

func TestRoot_Failures(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		args     []string
		expected string
		reported bool
		target   error
	}{
		{
			name:     "Diagnostics",
			source:   "stray PROGRAM P END_PROGRAM",
			expected: "FATAL couldn't compile due to 1 errors",
			reported: true,
			target:   compiler.ErrDiagnostics,
		},
		{
			name:     "Syntax Error",
			source:   "PROGRAM P x := ; END_PROGRAM",
			expected: "expected expression, received SEMICOLON",
			reported: true,
		},
		{
			name:     "Bad Format Flag",
			source:   program,
			args:     []string{"--format", "json"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := writeFile(t, "p.st", tt.source)
			out, err := execute(t, append(append([]string{"--no-color"}, tt.args...), src)...)
			if err == nil {
				t.Fatalf("expected error, output:\n%s", out)
			}

			var rep *reportedError
			if got := errors.As(err, &rep); got != tt.reported {
				t.Errorf("reported = %v, want %v (err %v)", got, tt.reported, err)
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("error %v does not wrap %v", err, tt.target)
			}
			if !strings.Contains(out, tt.expected) {
				t.Errorf("output does not contain %q:\n%s", tt.expected, out)
			}
		})
	}
}

func TestRoot_MissingFile(t *testing.T) {
	out, err := execute(t, "--no-color", filepath.Join(t.TempDir(), "missing.st"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(out, "FATAL failed to read") {
		t.Errorf("output:\n%s", out)
	}
}

func TestRoot_TooManyArgs(t *testing.T) {
	if _, err := execute(t, "a.st", "b.st"); err == nil {
		t.Error("expected error for two file arguments")
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "stil v"+Version+"\n") {
		t.Errorf("output:\n%s", out)
	}
}
