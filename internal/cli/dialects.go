package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Konsultn-Engineering/flexsql/dialect"
)

// DialectInfo describes one registered dialect family.
type DialectInfo struct {
	Name             string `json:"name"`
	Strategy         string `json:"strategy"`
	Placeholder      string `json:"placeholder"`
	Quoted           string `json:"quoted"`
	StandaloneHaving bool   `json:"standalone_having"`
}

func NewDialectsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List registered dialect families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDialects(rootOpts, cmd)
		},
	}
}

func runDialects(opts *RootOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	names := dialect.Names()
	infos := make([]DialectInfo, 0, len(names))
	for _, name := range names {
		d, err := dialect.Lookup(name)
		if err != nil {
			return out.Fail(ExitFailure, "listing dialects", err)
		}
		infos = append(infos, DialectInfo{
			Name:             d.Name(),
			Strategy:         d.Strategy().String(),
			Placeholder:      d.Placeholder(1),
			Quoted:           d.QuoteIdentifier("t.col"),
			StandaloneHaving: d.SupportsStandaloneHaving(),
		})
	}

	return out.Success(infos, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSTRATEGY\tPLACEHOLDER\tQUOTING")
		for _, info := range infos {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.Name, info.Strategy, info.Placeholder, info.Quoted)
		}
		return tw.Flush()
	})
}
