package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eringen/devlog/index"
)

var (
	tagsPopular int
	tagsOutput  string
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Print the tag index",
	Long: `Print every tag with its post count and page URL, in the order the tags
first appear across the posts. With --popular N only the N most used tags are
printed, most used first; ties keep first-seen order.

Examples:
  devlog tags
  devlog tags --popular 3 --output json`,
	RunE: runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)

	tagsCmd.Flags().IntVar(&tagsPopular, "popular", 0, "only the N most used tags")
	tagsCmd.Flags().StringVarP(&tagsOutput, "output", "o", "text", "output format: text, json or yaml")
}

func runTags(cmd *cobra.Command, args []string) error {
	docs, err := loadDocuments(cmd.Context(), GetConfig())
	if err != nil {
		return err
	}
	idx := index.BuildTagIndex(docs)
	titles := idx.Order
	if tagsPopular > 0 {
		titles = idx.Popular(tagsPopular)
	}
	return printTags(cmd.OutOrStdout(), tagsOutput, idx.Entries(titles))
}

func printTags(w io.Writer, format string, entries []index.Entry) error {
	return writeOutput(w, format, entries, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TAG\tPOSTS\tURL")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%d\t%s\n", e.Title, e.Count, e.URL)
		}
		return tw.Flush()
	})
}
