package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Konsultn-Engineering/flexsql/connector"
)

// SourceInfo describes one configured data source. The connection string
// never carries the password.
type SourceInfo struct {
	Name       string `json:"name"`
	Dialect    string `json:"dialect"`
	Default    bool   `json:"default"`
	Connection string `json:"connection"`
}

func NewSourcesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List data sources from --config and the dialect each resolves to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSources(rootOpts, cmd)
		},
	}
}

func runSources(opts *RootOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	if opts.Config == "" {
		return out.Fail(ExitCommandError, "listing sources", fmt.Errorf("--config is required"))
	}
	file, err := connector.LoadFile(opts.Config)
	if err != nil {
		return out.Fail(ExitCommandError, "loading config", err)
	}

	infos := make([]SourceInfo, 0, len(file.Sources))
	for _, name := range file.Names() {
		ds, err := file.Source(name)
		if err != nil {
			return out.Fail(ExitCommandError, "loading config", err)
		}
		d, err := ds.Dialect()
		if err != nil {
			return out.Fail(ExitCommandError, "resolving dialect", err)
		}
		conn, err := ds.Config.ConnectionString(true)
		if err != nil {
			conn = ""
		}
		infos = append(infos, SourceInfo{
			Name:       name,
			Dialect:    d.Name(),
			Default:    name == file.Default,
			Connection: conn,
		})
	}

	return out.Success(infos, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tDIALECT\tCONNECTION")
		for _, info := range infos {
			name := info.Name
			if info.Default {
				name += " *"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", name, info.Dialect, info.Connection)
		}
		return tw.Flush()
	})
}
