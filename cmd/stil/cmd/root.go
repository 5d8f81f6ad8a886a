package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stil/pkg/compiler"
	"stil/pkg/config"
	"stil/pkg/logging"
	"stil/pkg/utils"
)

// options holds the root command flags.
type options struct {
	cfgFile    string
	format     string
	showTokens bool
	noColor    bool
	quiet      bool
}

// reportedError marks an error that has already been logged as FATAL.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "stil [file.st]",
		Short: "Structured Text front end",
		Long: `stil lexes and parses IEC 61131-3 Structured Text and prints the
resulting syntax tree.

Without a file argument the bundled sample (or the "sample" key of the
config file) is compiled. The exit status is 1 when the file cannot be
read, when parsing fails or when any error was reported.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, opts, args)
		},
	}

	flags := root.Flags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (TOML)")
	flags.StringVar(&opts.format, "format", "text", "output format: text or yaml")
	flags.BoolVar(&opts.showTokens, "tokens", false, "print the token stream before the tree")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable coloured output")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "only print warnings and errors")

	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the command line. Errors that were not already logged are
// printed to stderr.
func Execute() error {
	err := newRootCmd().Execute()
	var rep *reportedError
	if err != nil && !errors.As(err, &rep) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// loadConfig applies the config file and then any flag the user set.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.cfgFile != "" {
		var err error
		if cfg, err = config.Load(opts.cfgFile); err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = opts.format
	}
	if flags.Changed("tokens") {
		cfg.Output.ShowTokens = opts.showTokens
	}
	if opts.noColor {
		cfg.Output.Color = false
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runCompile(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	log := logging.New(out).WithColor(cfg.Output.Color).WithLevel(cfg.Level())
	if opts.quiet && log.Level() < logging.LevelWarn {
		log = log.WithLevel(logging.LevelWarn)
	}

	fail := func(err error) error {
		log.Fatal("%v", err)
		return &reportedError{err: err}
	}

	path := cfg.Sample
	if len(args) == 1 {
		path = args[0]
	} else {
		log.Warn("no input file given, compiling %s", path)
	}

	start := time.Now()
	_, src, err := utils.ReadSource(path)
	if err != nil {
		return fail(err)
	}

	if cfg.Output.ShowTokens {
		if err := printTokens(out, path, src); err != nil {
			return fail(err)
		}
	}

	res, err := compiler.Compile(src, compiler.Options{
		Name:             path,
		KeywordTableSize: cfg.Lexer.KeywordTableSize,
		Logger:           log,
	})
	if err != nil {
		return fail(err)
	}
	log.Info("compilation %s: parsed %d unit(s) in %s", res.ID, len(res.Unit.Units), time.Since(start).Round(time.Microsecond))

	switch strings.ToLower(cfg.Output.Format) {
	case "yaml":
		err = compiler.ExportYAML(out, res.Unit)
	default:
		log.Info("======AST======")
		err = compiler.Dump(out, res.Unit)
	}
	if err != nil {
		return fail(err)
	}
	return nil
}

func printTokens(w io.Writer, name string, src []byte) error {
	for _, tok := range compiler.Lex(name, src) {
		if _, err := fmt.Fprintln(w, tok); err != nil {
			return err
		}
	}
	return nil
}
