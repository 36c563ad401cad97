// Command peachc translates source files written in L to C11 and,
// unless told otherwise, compiles and links them with the system C
// compiler.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/peach-lang/peachc/internal/driver"
	"github.com/peach-lang/peachc/internal/logging"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("peachc", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var (
		help      = fs.Bool("h", false, "show usage")
		helpLong  = fs.Bool("help", false, "show usage")
		output    = fs.String("o", "", "output name")
		outputAlt = fs.String("output", "", "output name")
		source    = fs.Bool("s", false, "emit C source only; do not compile")
		sourceAlt = fs.Bool("source", false, "emit C source only; do not compile")
		compile   = fs.Bool("c", false, "compile each input to a .o; do not link")
		compAlt   = fs.Bool("compile", false, "compile each input to a .o; do not link")
		preproc   = fs.Bool("E", false, "reserved; not implemented")
		prepAlt   = fs.Bool("preprocess", false, "reserved; not implemented")
		verbose   = fs.Bool("v", false, "emit progress to stdout")
		verbAlt   = fs.Bool("verbose", false, "emit progress to stdout")
		watch     = fs.Bool("w", false, "recompile on source-file change")
		watchAlt  = fs.Bool("watch", false, "recompile on source-file change")
		logLevel  = fs.String("log-level", "info", "trace|debug|info|warn|error")
		logJSON   = fs.Bool("log-json", false, "emit structured JSON logs")
		minCC     = fs.String("min-cc", "", "semver constraint the discovered cc must satisfy")
	)

	fs.Usage = func() { printUsage(fs) }

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *help || *helpLong {
		printUsage(fs)
		return 0
	}

	if *preproc || *prepAlt {
		fmt.Fprintln(os.Stderr, "Error: Preprocessing (-E) is not implemented yet")
		return 1
	}

	sourceOnly := *source || *sourceAlt
	compileOnly := *compile || *compAlt
	if sourceOnly && compileOnly {
		fmt.Fprintln(os.Stderr, "Error: Cannot use -s and -c together")
		return 1
	}

	sources := fs.Args()
	if len(sources) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No source files specified")
		printUsage(fs)
		return 1
	}

	out := firstNonEmpty(*output, *outputAlt)
	verboseFlag := *verbose || *verbAlt
	watchFlag := *watch || *watchAlt
	constraint := *minCC

	mode := driver.ModeLink
	switch {
	case sourceOnly:
		mode = driver.ModeSourceOnly
	case compileOnly:
		mode = driver.ModeCompileOnly
	}

	log := logging.New(os.Stderr, logging.ParseLevel(*logLevel), *logJSON)
	d := driver.New(log)

	opts := driver.Options{
		Sources: sources,
		Output:  out,
		Mode:    mode,
		Verbose: verboseFlag,
		MinCC:   constraint,
	}

	if watchFlag {
		if err := d.Watch(opts, nil); err != nil {
			fmt.Fprintf(os.Stderr, "Compilation error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := d.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Compilation error: %v\n", err)
		return 1
	}

	return 0
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintln(os.Stderr, "Usage: peachc [options] <src.peach> [src2.peach ...]")
	fmt.Fprintln(os.Stderr, "  -h, --help            show usage, exit 0")
	fmt.Fprintln(os.Stderr, "  -o, --output <file>   output name (executable default a.out)")
	fmt.Fprintln(os.Stderr, "  -s, --source          emit C source only; do not compile")
	fmt.Fprintln(os.Stderr, "  -c, --compile         compile each input to a .o; do not link")
	fmt.Fprintln(os.Stderr, "  -E, --preprocess      reserved; not implemented")
	fmt.Fprintln(os.Stderr, "  -v, --verbose         emit progress to stdout")
	fmt.Fprintln(os.Stderr, "  -w, --watch           recompile on source-file change")
	fmt.Fprintln(os.Stderr, "      --log-level <lvl> trace|debug|info|warn|error (default info)")
	fmt.Fprintln(os.Stderr, "      --log-json        emit structured (JSON) logs instead of text")
	fmt.Fprintln(os.Stderr, "      --min-cc <constraint>  semver constraint the discovered cc must satisfy")
}
