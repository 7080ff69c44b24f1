package main

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/hugr-lab/filterql"
)

func newRenderCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   commandRender + " [filter|-]",
		Short: "Render a filter document in the requested format.",
		Long: `Render reads a filter document from the argument, or from stdin when the
argument is "-" or missing, and prints it in the requested format. Infix and
SQL are printed as text; ORM, search and document criteria as JSON.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runRender,
	}

	cmd.Flags().String("format", filterql.FormatInfix.String(), "Output format: infix, sql, orm, search or document")
	cmd.Flags().Bool("msgpack-input", false, "Decode the input as MessagePack instead of JSON")

	_ = a.v.BindPFlag("format", cmd.Flags().Lookup("format"))
	_ = a.v.BindPFlag("msgpack-input", cmd.Flags().Lookup("msgpack-input"))

	return cmd
}

func (a *app) runRender(cmd *cobra.Command, args []string) error {
	format, err := filterql.ParseFormat(a.v.GetString("format"))
	if err != nil {
		return err
	}
	opts, err := a.options()
	if err != nil {
		return err
	}

	data, err := readFilter(cmd.InOrStdin(), args, true)
	if err != nil {
		return err
	}
	var raw any
	if a.v.GetBool("msgpack-input") {
		raw, err = filterql.DecodeMsgpack(data)
	} else {
		raw, err = filterql.DecodeJSON(data)
	}
	if err != nil {
		return err
	}

	spec, err := filterql.Build(raw, opts)
	if err != nil {
		return err
	}
	out, err := spec.Render(format)
	if err != nil {
		return err
	}
	return writeRendered(cmd.OutOrStdout(), out)
}

// writeRendered prints text forms as-is and everything else as indented JSON.
func writeRendered(w io.Writer, out any) error {
	if s, ok := out.(string); ok {
		_, err := fmt.Fprintln(w, s)
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
