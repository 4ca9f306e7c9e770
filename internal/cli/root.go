// Package cli implements the sysprop command surface: a single
// command whose mode is chosen by flags and by the number of
// positional arguments.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/davral/sysprop/internal/config"
	"github.com/davral/sysprop/internal/liveprop"
	"github.com/davral/sysprop/internal/persist"
	"github.com/davral/sysprop/internal/prop"
)

// RootOptions holds the flags shared by every mode of the command.
type RootOptions struct {
	SkipSvc    bool
	Persist    bool
	Context    bool
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	File       string
	Delete     string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the sysprop root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "sysprop [flags] [NAME [VALUE]]",
		Short: "sysprop - system property manipulation tool",
		Long: `sysprop reads, writes, and deletes system properties.

Read mode arguments:
   (no arguments)    print all properties
   NAME              get property

Write mode arguments:
   NAME VALUE        set property NAME as VALUE
   -f,--file   FILE  load and set properties from FILE
   -d,--delete NAME  delete property`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.SkipSvc, "skip-svc", "n", false, "set properties bypassing the property service")
	cmd.Flags().BoolVarP(&opts.Persist, "persist", "p", false, "also read/delete persistent properties from storage")
	cmd.Flags().BoolVarP(&opts.Context, "context", "Z", false, "get property security context instead of value")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "print verbose output to stderr")
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "load and set properties from FILE")
	cmd.Flags().StringVarP(&opts.Delete, "delete", "d", "", "delete property NAME")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "config file path")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.Flags().BoolP("help", "h", false, "show this message")

	return cmd
}

// Execute runs the root command with the given arguments and returns
// the process exit code. Usage output (-h or a usage error) exits
// non-zero; cobra handles help before RunE, so it is detected through
// the help func.
func Execute(args []string, out, errOut io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	helpShown := false
	defaultHelp := cmd.HelpFunc()
	cmd.SetHelpFunc(func(c *cobra.Command, a []string) {
		helpShown = true
		defaultHelp(c, a)
	})

	if err := cmd.Execute(); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(errOut, "sysprop:", msg)
		}
		return GetExitCode(err)
	}
	if helpShown {
		return ExitFailure
	}
	return ExitSuccess
}

func run(opts *RootOptions, args []string, cmd *cobra.Command) error {
	if !isValidFormat(opts.Format) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
	}

	f := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}
	if cfg.Verbose {
		f.Verbose = true
	}

	store, cleanup, err := openStore(cfg, f)
	if err != nil {
		return WrapExitError(ExitCommandError, "open property store", err)
	}
	defer cleanup()

	flags := prop.Flags{SkipSvc: opts.SkipSvc, Persist: opts.Persist, Context: opts.Context}

	switch {
	case opts.Delete != "":
		return deleteProp(store, opts.Delete, flags, f)
	case opts.File != "":
		return loadFile(store, opts.File, flags, f)
	}

	switch len(args) {
	case 0:
		return printAll(store, flags, f)
	case 1:
		return getProp(store, args[0], flags, f)
	default:
		return setProp(store, args[0], args[1], flags, f)
	}
}

// openStore wires the default adapters: the in-memory live table
// behind the property service, and the sqlite persisted store at the
// configured path.
func openStore(cfg *config.Config, f *OutputFormatter) (*prop.Store, func(), error) {
	if err := os.MkdirAll(filepath.Dir(cfg.PersistDB), 0o755); err != nil {
		return nil, nil, err
	}
	pstore, err := persist.Open(cfg.PersistDB)
	if err != nil {
		return nil, nil, err
	}

	area := liveprop.NewArea()
	for prefix, ctx := range cfg.Contexts {
		area.SetContext(prefix, ctx)
	}
	svc := liveprop.NewService(area, pstore)
	svc.Logf = f.VerboseLog

	store, err := prop.New(svc, pstore)
	if err != nil {
		pstore.Close()
		return nil, nil, err
	}
	store.Logf = f.VerboseLog
	return store, func() { pstore.Close() }, nil
}

// getProp prints the value (or context, with -Z) for name. An empty
// result prints nothing and exits 1.
func getProp(store *prop.Store, name string, flags prop.Flags, f *OutputFormatter) error {
	value, _, err := store.Get(name, flags)
	if err != nil {
		_ = f.Error(errorCode(err), err.Error())
		return NewSilentExit(ExitFailure)
	}
	if value == "" {
		return NewSilentExit(ExitFailure)
	}
	if f.Format == "json" {
		return f.Success(map[string]string{"name": name, "value": value})
	}
	fmt.Fprintln(f.Writer, value)
	return nil
}

// setProp sets name=value. Text mode prints nothing on success.
func setProp(store *prop.Store, name, value string, flags prop.Flags, f *OutputFormatter) error {
	if err := store.Set(name, value, flags); err != nil {
		_ = f.Error(errorCode(err), err.Error())
		return NewSilentExit(ExitFailure)
	}
	if f.Format == "json" {
		return f.Success(map[string]string{"name": name, "value": value})
	}
	return nil
}

// deleteProp deletes name. Deleting a name with no entry exits 1.
func deleteProp(store *prop.Store, name string, flags prop.Flags, f *OutputFormatter) error {
	if err := store.Delete(name, flags); err != nil {
		if !prop.IsNotFound(err) {
			_ = f.Error(errorCode(err), err.Error())
		}
		return NewSilentExit(ExitFailure)
	}
	if f.Format == "json" {
		return f.Success(map[string]string{"name": name})
	}
	return nil
}

// loadFile bulk-loads a property file. Per-line failures are reported
// but do not fail the command; only an unreadable file does.
func loadFile(store *prop.Store, path string, flags prop.Flags, f *OutputFormatter) error {
	lineErrs, err := store.LoadFile(path, flags)
	if err != nil {
		return WrapExitError(ExitCommandError, "load prop file", err)
	}
	if f.Format == "json" {
		msgs := make([]string, 0, len(lineErrs))
		for _, e := range lineErrs {
			msgs = append(msgs, e.Error())
		}
		return f.Success(map[string]any{"file": path, "errors": msgs})
	}
	for _, e := range lineErrs {
		_ = f.Error(errorCode(e), e.Error())
	}
	return nil
}

// printAll prints every property as "[name]: [value]" in enumeration
// order.
func printAll(store *prop.Store, flags prop.Flags, f *OutputFormatter) error {
	list, err := store.List(flags)
	if err != nil {
		_ = f.Error(errorCode(err), err.Error())
		return NewSilentExit(ExitFailure)
	}
	if f.Format == "json" {
		return f.Success(list.Entries())
	}
	for _, e := range list.Entries() {
		fmt.Fprintf(f.Writer, "[%s]: [%s]\n", e.Name, e.Value)
	}
	return nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, v := range ValidFormats {
		if v == format {
			return true
		}
	}
	return false
}
