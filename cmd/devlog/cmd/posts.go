package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eringen/devlog/content"
	"github.com/eringen/devlog/index"
)

var (
	postsTag    string
	postsQuery  string
	postsLimit  int
	postsOutput string
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "List posts, newest first",
	Long: `List posts ordered by their effective date, newest first.

--tag keeps posts carrying that exact tag title (case-sensitive).
--query keeps posts whose title contains the text, ignoring case.

Examples:
  devlog posts --limit 3
  devlog posts --tag Next.js --query hooks --output yaml`,
	RunE: runPosts,
}

func init() {
	rootCmd.AddCommand(postsCmd)

	postsCmd.Flags().StringVar(&postsTag, "tag", "", "only posts with this tag")
	postsCmd.Flags().StringVarP(&postsQuery, "query", "q", "", "only posts whose title contains this text")
	postsCmd.Flags().IntVarP(&postsLimit, "limit", "n", 0, "at most N posts (0 lists all)")
	postsCmd.Flags().StringVarP(&postsOutput, "output", "o", "text", "output format: text, json or yaml")
}

// postRow is the printed form of a post.
type postRow struct {
	Title string   `json:"title" yaml:"title"`
	Date  string   `json:"date" yaml:"date"`
	URL   string   `json:"url" yaml:"url"`
	Tags  []string `json:"tags" yaml:"tags"`
}

func runPosts(cmd *cobra.Command, args []string) error {
	docs, err := loadDocuments(cmd.Context(), GetConfig())
	if err != nil {
		return err
	}
	return printPosts(cmd.OutOrStdout(), postsOutput, selectPosts(docs, postsTag, postsQuery, postsLimit))
}

func selectPosts(docs []content.Document, tag, query string, limit int) []content.Document {
	var posts []content.Document
	if tag != "" {
		posts = index.PostsByTag(docs, tag)
	} else {
		posts = index.RecentPosts(docs, len(docs))
	}
	posts = index.SearchByTitle(posts, query)
	if limit > 0 {
		posts = index.RecentPosts(posts, limit)
	}
	return posts
}

func printPosts(w io.Writer, format string, posts []content.Document) error {
	rows := make([]postRow, 0, len(posts))
	for _, p := range posts {
		rows = append(rows, postRow{
			Title: p.Title,
			Date:  p.EffectiveDate().Format("2006-01-02"),
			URL:   p.URL,
			Tags:  p.TagTitles(),
		})
	}
	return writeOutput(w, format, rows, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "DATE\tTITLE\tURL\tTAGS")
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Date, r.Title, r.URL, strings.Join(r.Tags, ", "))
		}
		return tw.Flush()
	})
}
