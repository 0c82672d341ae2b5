package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/kailas-cloud/artsearch/internal/app"
	domart "github.com/kailas-cloud/artsearch/internal/domain/article"
	repsearch "github.com/kailas-cloud/artsearch/internal/repository/search"
	searchuc "github.com/kailas-cloud/artsearch/internal/usecase/search"
)

// Output formats.
const (
	formatAuto = "auto"
	formatText = "text"
	formatJSON = "json"
)

func newSearchCmd(c *cli) *cobra.Command {
	var (
		minPrice float64
		maxPrice float64
		offset   int
		limit    int
		format   string
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search articles by title with an optional price window",
		Long: `Search runs a query against the article index and prints title and price per hit.

Examples:
  artsearchctl search Alpha
  artsearchctl search "cook*" --min 5 --max 20
  artsearchctl search '*' --limit 50 --format json | jq '.documents'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			resolved, err := resolveFormat(format, out)
			if err != nil {
				return err
			}
			return c.withApp(cmd.Context(), func(ctx context.Context, a *app.App) error {
				rs, err := a.Search.Search(ctx, searchuc.Request{
					Query:    args[0],
					MinPrice: minPrice,
					MaxPrice: maxPrice,
					Offset:   offset,
					Limit:    limit,
				})
				if err != nil {
					return err
				}
				if resolved == formatJSON {
					return writeJSONResult(out, rs)
				}
				return writeTextResult(out, rs)
			})
		},
	}

	cmd.Flags().Float64Var(&minPrice, "min", -1, "minimum price, -1 for none")
	cmd.Flags().Float64Var(&maxPrice, "max", -1, "maximum price, -1 for none")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of hits to skip")
	cmd.Flags().IntVar(&limit, "limit", 0, "page size (default from config)")
	cmd.Flags().StringVar(&format, "format", formatAuto, "output format: auto, text, json")
	return cmd
}

// resolveFormat picks text for terminals and json otherwise when format is auto.
func resolveFormat(format string, out io.Writer) (string, error) {
	switch format {
	case formatText, formatJSON:
		return format, nil
	case formatAuto:
		if f, ok := out.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			return formatText, nil
		}
		return formatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (want auto, text or json)", format)
	}
}

type jsonResult struct {
	Total     int            `json:"total"`
	Documents []jsonDocument `json:"documents"`
}

type jsonDocument struct {
	ID     string            `json:"id"`
	Fields map[string]string `json:"fields"`
}

func writeJSONResult(w io.Writer, rs repsearch.ResultSet) error {
	res := jsonResult{Total: rs.Total, Documents: make([]jsonDocument, len(rs.Documents))}
	for i, d := range rs.Documents {
		res.Documents[i] = jsonDocument{ID: d.ID, Fields: d.Fields}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func writeTextResult(w io.Writer, rs repsearch.ResultSet) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tPRICE\tTITLE\n")
	for _, d := range rs.Documents {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", d.ID, d.Fields[domart.FieldPrice], d.Fields[domart.FieldTitle])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %d hits\n", len(rs.Documents), rs.Total)
	return err
}
