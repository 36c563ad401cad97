package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDeriveName(t *testing.T) {
	tests := []struct {
		path string
		ext  string
		want string
	}{
		{"main.peach", ".c", "main.c"},
		{"/a/b/main.peach", ".o", "/a/b/main.o"},
		{"noext", ".c", "noext.c"},
	}

	for _, tt := range tests {
		if got := deriveName(tt.path, tt.ext); got != tt.want {
			t.Errorf("deriveName(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
		}
	}
}

func TestEnsureSuffix(t *testing.T) {
	if got := ensureSuffix("prog", ".c"); got != "prog.c" {
		t.Errorf("ensureSuffix(\"prog\", \".c\") = %q, want %q", got, "prog.c")
	}
	if got := ensureSuffix("prog.c", ".c"); got != "prog.c" {
		t.Errorf("ensureSuffix(\"prog.c\", \".c\") = %q, want %q", got, "prog.c")
	}
}

func TestParseProgram(t *testing.T) {
	prog, err := ParseProgram(`def main() -> int = 0`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prog.Functions) != 1 || prog.Functions[0].Name != "main" {
		t.Fatalf("expected a single main function, got %+v", prog.Functions)
	}
}

func TestParseProgramSurfacesLexError(t *testing.T) {
	_, err := ParseProgram("def main() -> int = `")
	if err == nil {
		t.Fatalf("expected an error for an invalid token")
	}
}

func TestFileErrorUnwrap(t *testing.T) {
	inner := errors.New("permission denied")
	err := &FileError{Path: "out.c", Op: "write", Err: inner}

	if !errors.Is(err, inner) {
		t.Fatalf("expected errors.Is to see through Unwrap")
	}
	if !strings.Contains(err.Error(), "out.c") {
		t.Fatalf("expected path in error message, got %q", err.Error())
	}
}

func TestExternalToolErrorIncludesOutput(t *testing.T) {
	err := &ExternalToolError{Tool: "cc", Args: []string{"-c", "x.c"}, Err: errors.New("exit status 1"), Output: "x.c:1:1: error"}

	msg := err.Error()
	if !strings.Contains(msg, "x.c:1:1: error") {
		t.Fatalf("expected compiler output in error message, got %q", msg)
	}
}

func TestRunSourceOnlyWritesCFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "main.peach")
	if err := os.WriteFile(src, []byte(`def main() -> int = 0`), 0o644); err != nil {
		t.Fatalf("writing fixture source: %v", err)
	}

	d := New(nil)
	if err := d.runSourceOnly(Options{Sources: []string{src}}); err != nil {
		t.Fatalf("runSourceOnly: %v", err)
	}

	cPath := deriveName(src, ".c")
	out, err := os.ReadFile(cPath)
	if err != nil {
		t.Fatalf("expected generated C file at %s: %v", cPath, err)
	}
	if !strings.Contains(string(out), "int main(void)") {
		t.Fatalf("expected lowered main function in generated C, got:\n%s", out)
	}
}

func TestRunSourceOnlyRenamesOutputForSingleSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.peach")
	if err := os.WriteFile(src, []byte(`def main() -> int = 0`), 0o644); err != nil {
		t.Fatalf("writing fixture source: %v", err)
	}

	wantPath := filepath.Join(dir, "custom.c")

	d := New(nil)
	if err := d.runSourceOnly(Options{Sources: []string{src}, Output: filepath.Join(dir, "custom")}); err != nil {
		t.Fatalf("runSourceOnly: %v", err)
	}

	if _, err := os.Stat(wantPath); err != nil {
		t.Fatalf("expected renamed output at %s: %v", wantPath, err)
	}
}

func TestRunRejectsEmptySources(t *testing.T) {
	d := New(nil)
	if err := d.Run(Options{}); err == nil {
		t.Fatalf("expected an error when no sources are given")
	}
}
