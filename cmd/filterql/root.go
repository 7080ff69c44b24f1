package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hugr-lab/filterql"
	"github.com/hugr-lab/filterql/internal/logging"
)

const (
	commandRoot   = "filterql"
	commandRender = "render"
	commandQuery  = "query"

	envPrefix = "FILTERQL"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v      *viper.Viper
	logger *slog.Logger
}

func execute(args []string, in io.Reader, out, errOut io.Writer) error {
	cmd := newRootCommand(viper.New())
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	return cmd.ExecuteContext(context.Background())
}

func newRootCommand(v *viper.Viper) *cobra.Command {
	a := &app{v: v, logger: logging.Discard()}

	cmd := &cobra.Command{
		Use:               commandRoot,
		Short:             "Render nested filter documents as infix, SQL, ORM, search or document criteria.",
		SilenceUsage:      true,
		PersistentPreRunE: a.init,
	}

	// Persistent flags are shared by every subcommand.
	cmd.PersistentFlags().String("config", "", "Read flag values from a config file (yaml, json or toml)")
	cmd.PersistentFlags().String("log-level", "warn", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "text", "Set the log format - Can be either 'json' or 'text'")
	cmd.PersistentFlags().StringSlice("map", nil, "Rename a source field, as source=target (repeatable)")
	cmd.PersistentFlags().Bool("temporal-strings", false, "Treat RFC 3339 and YYYY-MM-DD string operands as times")
	cmd.PersistentFlags().String("orm-table", "", "Qualify unprefixed columns of ORM predicates with this table")

	for _, name := range []string{"config", "log-level", "log-format", "map", "temporal-strings", "orm-table"} {
		_ = v.BindPFlag(name, cmd.PersistentFlags().Lookup(name))
	}

	// Flags may also come from the env as FILTERQL_LOG_LEVEL and so on.
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	cmd.AddCommand(
		newRenderCommand(a),
		newQueryCommand(a),
	)

	return cmd
}

// init runs after cobra has parsed the command line, so flags, env and the
// config file are all visible through viper.
func (a *app) init(cmd *cobra.Command, _ []string) error {
	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}

	level, ok := logging.ParseLevel(a.v.GetString("log-level"))
	if !ok {
		return fmt.Errorf("unknown log level %q", a.v.GetString("log-level"))
	}
	a.logger = logging.New(cmd.ErrOrStderr(), level, strings.EqualFold(a.v.GetString("log-format"), "json"))
	return nil
}

// options builds filter options from the shared flags.
func (a *app) options() (*filterql.Options, error) {
	opts := &filterql.Options{
		TemporalStrings: a.v.GetBool("temporal-strings"),
		Logger:          a.logger,
	}
	if table := a.v.GetString("orm-table"); table != "" {
		opts.ORM = &filterql.ORMOptions{Table: table}
	}
	for _, entry := range a.v.GetStringSlice("map") {
		source, target, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --map entry %q: want source=target", entry)
		}
		opts.Map(strings.TrimSpace(source), strings.TrimSpace(target))
	}
	return opts, nil
}

// readFilter returns the filter document named by args: a literal argument,
// or stdin for "-". With no argument stdin is read only when stdinDefault is set.
func readFilter(in io.Reader, args []string, stdinDefault bool) ([]byte, error) {
	switch {
	case len(args) > 0 && args[0] != "-":
		return []byte(args[0]), nil
	case len(args) == 0 && !stdinDefault:
		return nil, nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("read filter from stdin: %w", err)
	}
	return data, nil
}
