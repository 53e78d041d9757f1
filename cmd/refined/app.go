package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reoring/refined/catalog"
)

// Exit codes.
const (
	exitOK      = 0
	exitInvalid = 1 // at least one input was rejected
	exitUsage   = 2 // bad flags, unreadable catalog or unknown type
)

// exitError carries a process exit code out of a RunE handler. A nil err
// means the command already reported its outcome.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitError) Unwrap() error { return e.err }

type app struct {
	in  io.Reader
	out io.Writer
	log *log.Logger
	cfg *viper.Viper
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	cfg := viper.New()
	cfg.SetEnvPrefix("REFINED")
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()
	cfg.SetDefault("format", formatJSON)
	return &app{
		in:  in,
		out: out,
		log: log.NewWithOptions(errOut, log.Options{Prefix: "refined"}),
		cfg: cfg,
	}
}

// run executes the command line and returns the process exit code.
func run(args []string, in io.Reader, out, errOut io.Writer) int {
	a := newApp(in, out, errOut)
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	err := root.Execute()
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			a.log.Error(ee.err.Error())
		}
		return ee.code
	}
	a.log.Error(err.Error())
	return exitUsage
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "refined",
		Short:         "Validate values against a wrapper catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.configure()
		},
	}
	pf := root.PersistentFlags()
	pf.String("config", "", "config file (yaml) providing catalog, format and verbose")
	pf.StringP("catalog", "c", "", "wrapper catalog file (env REFINED_CATALOG)")
	pf.BoolP("verbose", "v", false, "enable debug logging")
	for _, key := range []string{"config", "catalog", "verbose"} {
		_ = a.cfg.BindPFlag(key, pf.Lookup(key))
	}

	root.AddCommand(a.checkCmd(), a.decodeCmd(), a.encodeCmd(), a.schemaCmd(), a.listCmd())
	return root
}

func (a *app) configure() error {
	if path := a.cfg.GetString("config"); path != "" {
		a.cfg.SetConfigFile(path)
		if err := a.cfg.ReadInConfig(); err != nil {
			return &exitError{code: exitUsage, err: fmt.Errorf("read config %s: %w", path, err)}
		}
	}
	if a.cfg.GetBool("verbose") {
		a.log.SetLevel(log.DebugLevel)
	}
	return nil
}

// catalog loads the configured catalog file.
func (a *app) catalog() (*catalog.Catalog, error) {
	path := a.cfg.GetString("catalog")
	if path == "" {
		return nil, &exitError{code: exitUsage, err: errors.New("no catalog: pass --catalog or set REFINED_CATALOG")}
	}
	c, err := catalog.LoadFile(path)
	if err != nil {
		return nil, &exitError{code: exitUsage, err: err}
	}
	a.log.Debug("catalog loaded", "path", path, "entries", len(c.Names()))
	return c, nil
}

// entry resolves the --type flag of cmd.
func (a *app) entry(cmd *cobra.Command) (*catalog.Entry, error) {
	c, err := a.catalog()
	if err != nil {
		return nil, err
	}
	name, _ := cmd.Flags().GetString("type")
	if name == "" {
		return nil, &exitError{code: exitUsage, err: errors.New("--type is required")}
	}
	e, ok := c.Lookup(name)
	if !ok {
		return nil, &exitError{code: exitUsage, err: fmt.Errorf("%w: %s", catalog.ErrUnknownType, name)}
	}
	return e, nil
}

func typeFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("type", "t", "", "catalog type name")
}
