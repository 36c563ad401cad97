// Package driver implements the compiler's external interface (spec.md
// §4.6, §6.3): reading source files, running the front end and code
// generator, writing C output, and invoking the external C compiler
// through the three product modes.
package driver

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/peach-lang/peachc/internal/ast"
	"github.com/peach-lang/peachc/internal/codegen"
	"github.com/peach-lang/peachc/internal/lexer"
	"github.com/peach-lang/peachc/internal/logging"
	"github.com/peach-lang/peachc/internal/parser"
)

// Mode selects one of the three product modes spec.md §4.6 describes.
type Mode int

const (
	ModeLink Mode = iota
	ModeSourceOnly
	ModeCompileOnly
)

// Options configures one driver run.
type Options struct {
	Sources []string
	Output  string
	Mode    Mode
	Verbose bool
	MinCC   string // semver constraint for --min-cc; empty means unchecked
}

// Driver runs the read -> lex -> parse -> generate -> write/compile
// pipeline for one or more source files.
type Driver struct {
	Log *logging.Logger
}

// New creates a Driver. A nil logger falls back to logging.Default().
func New(log *logging.Logger) *Driver {
	if log == nil {
		log = logging.Default()
	}
	return &Driver{Log: log}
}

// Run executes one compilation according to opts.
func (d *Driver) Run(opts Options) error {
	if len(opts.Sources) == 0 {
		return fmt.Errorf("no source files specified")
	}

	if opts.MinCC != "" {
		if err := checkMinCC(opts.MinCC); err != nil {
			return err
		}
	}

	start := time.Now()

	switch opts.Mode {
	case ModeSourceOnly:
		return d.runSourceOnly(opts)
	case ModeCompileOnly:
		return d.runCompileOnly(opts)
	default:
		err := d.runLink(opts)
		if opts.Verbose {
			d.Log.Info("compilation completed in %dms", time.Since(start).Milliseconds())
		}
		return err
	}
}

// compileToC runs the lex -> parse -> generate pipeline for one source
// file and writes the result to its derived ".c" name.
func (d *Driver) compileToC(path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", &FileError{Path: path, Op: "read", Err: err}
	}

	toks, err := lexer.Tokenize(string(src))
	if err != nil {
		return "", fmt.Errorf("lexing %s: %w", path, err)
	}

	prog, err := parser.Parse(toks)
	if err != nil {
		return "", fmt.Errorf("parsing %s: %w", path, err)
	}

	out, err := codegen.Generate(prog)
	if err != nil {
		return "", fmt.Errorf("generating C for %s: %w", path, err)
	}

	cPath := deriveName(path, ".c")
	if err := os.WriteFile(cPath, []byte(out), 0o644); err != nil {
		return "", &FileError{Path: cPath, Op: "write", Err: err}
	}

	return cPath, nil
}

func (d *Driver) runSourceOnly(opts Options) error {
	for _, src := range opts.Sources {
		if opts.Verbose {
			d.Log.Info("translating %s to C...", src)
		}

		cPath, err := d.compileToC(src)
		if err != nil {
			return err
		}

		if opts.Output != "" && len(opts.Sources) == 1 {
			renamed := ensureSuffix(opts.Output, ".c")
			if err := os.Rename(cPath, renamed); err != nil {
				return &FileError{Path: renamed, Op: "write", Err: err}
			}
			cPath = renamed
		}

		fmt.Printf("Generated: %s\n", cPath)
	}

	return nil
}

func (d *Driver) runCompileOnly(opts Options) error {
	for _, src := range opts.Sources {
		if opts.Verbose {
			d.Log.Info("compiling %s to object file...", src)
		}

		cPath, err := d.compileToC(src)
		if err != nil {
			return err
		}

		objPath := deriveName(src, ".o")
		ccErr := runCC(true, objPath, []string{cPath})
		// Best-effort cleanup on all exit paths, including C-compiler
		// failure (spec.md §5), matching original_source's
		// compileToObject() removing the intermediate .c file whether
		// or not the compile step succeeded.
		os.Remove(cPath)
		if ccErr != nil {
			return ccErr
		}

		if opts.Output != "" && len(opts.Sources) == 1 {
			renamed := ensureSuffix(opts.Output, ".o")
			if err := os.Rename(objPath, renamed); err != nil {
				return &FileError{Path: renamed, Op: "write", Err: err}
			}
			objPath = renamed
		}

		fmt.Printf("Generated: %s\n", objPath)
	}

	return nil
}

func (d *Driver) runLink(opts Options) error {
	cFiles := make([]string, 0, len(opts.Sources))

	for _, src := range opts.Sources {
		if opts.Verbose {
			d.Log.Info("compiling %s...", src)
		}

		cPath, err := d.compileToC(src)
		if err != nil {
			return err
		}
		cFiles = append(cFiles, cPath)
	}

	out := opts.Output
	if out == "" {
		out = "a.out"
	}

	// Best-effort cleanup on all exit paths, including C-compiler
	// failure (spec.md §5): every intermediate .c file is removed
	// whether or not the link step succeeded.
	ccErr := runCC(false, out, cFiles)
	for _, c := range cFiles {
		os.Remove(c)
	}
	if ccErr != nil {
		return ccErr
	}

	fmt.Printf("Compilation successful! Output: %s\n", out)

	return nil
}

// deriveName replaces path's extension with ext.
func deriveName(path, ext string) string {
	base := path
	if i := strings.LastIndex(path, "."); i >= 0 {
		base = path[:i]
	}
	return base + ext
}

func ensureSuffix(name, suffix string) string {
	if strings.HasSuffix(name, suffix) {
		return name
	}
	return name + suffix
}

// ParseProgram is a narrow entry point used by tests to validate a
// source file's AST without writing any output.
func ParseProgram(src string) (*ast.Program, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return parser.Parse(toks)
}
