package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Konsultn-Engineering/flexsql/connector"
	"github.com/Konsultn-Engineering/flexsql/dialect"
	"github.com/Konsultn-Engineering/flexsql/query"
	"github.com/Konsultn-Engineering/flexsql/visitor"
)

type RenderOptions struct {
	*RootOptions
	Dialect string
	Source  string
	Inline  bool
}

// RenderResult is the JSON payload of the render command.
type RenderResult struct {
	Dialect string `json:"dialect"`
	SQL     string `json:"sql"`
	Args    []any  `json:"args"`
}

func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render <query.yaml|->",
		Short: "Render a YAML query document as SQL",
		Long: `Render reads a query document and prints the SQL for one dialect.

Bound values are printed after the statement as numbered comments unless
--inline is given, in which case they are written as literals.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Dialect, "dialect", "d", "", "dialect name or alias (overrides --source)")
	cmd.Flags().StringVarP(&opts.Source, "source", "s", "", "data source from --config (default: the config's default)")
	cmd.Flags().BoolVar(&opts.Inline, "inline", false, "inline values as literals instead of placeholders")

	return cmd
}

func runRender(opts *RenderOptions, path string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	d, err := resolveDialect(opts)
	if err != nil {
		return out.Fail(ExitCommandError, "selecting dialect", err)
	}

	doc, err := readDocument(path, cmd.InOrStdin())
	if err != nil {
		return out.Fail(ExitCommandError, "reading query", err)
	}

	var renderOpts []visitor.Option
	if opts.Inline {
		renderOpts = append(renderOpts, visitor.WithInlineValues())
	}
	sql, args, err := doc.Builder().Build(d, renderOpts...)
	if err != nil {
		return out.Fail(ExitFailure, "rendering query", err)
	}
	slog.Debug("rendered", "dialect", d.Name(), "strategy", d.Strategy().String(), "args", len(args))

	if args == nil {
		args = []any{}
	}
	result := RenderResult{Dialect: d.Name(), SQL: sql, Args: args}
	return out.Success(result, func(w io.Writer) error {
		if _, err := fmt.Fprintln(w, result.SQL); err != nil {
			return err
		}
		for i, a := range result.Args {
			if _, err := fmt.Fprintf(w, "-- %d: %#v\n", i+1, a); err != nil {
				return err
			}
		}
		return nil
	})
}

func resolveDialect(opts *RenderOptions) (dialect.Dialect, error) {
	if opts.Dialect != "" {
		return dialect.Lookup(opts.Dialect)
	}
	if opts.Config == "" {
		return nil, fmt.Errorf("no dialect: pass --dialect or --config")
	}
	file, err := connector.LoadFile(opts.Config)
	if err != nil {
		return nil, err
	}
	ds, err := file.Source(opts.Source)
	if err != nil {
		return nil, err
	}
	slog.Debug("using data source", "source", ds.Config.Name)
	return ds.Dialect()
}

func readDocument(path string, stdin io.Reader) (*query.Document, error) {
	if path != "-" {
		return query.LoadDocument(path)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return query.ParseDocument(data)
}
