package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/eringen/devlog"
	"github.com/eringen/devlog/content"
	"github.com/eringen/devlog/index"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleDocs() []content.Document {
	return []content.Document{
		{Title: "Go Channels", Date: day("2023-02-01"), URL: "/blogs/go", Tags: []content.Tag{{Title: "Go"}}},
		{Title: "Learning React Hooks", Date: day("2023-03-01"), URL: "/blogs/hooks", Tags: []content.Tag{{Title: "React"}, {Title: "Next.js"}}},
		{Title: "Next.js Routing", Date: day("2023-04-01"), URL: "/blogs/next", Tags: []content.Tag{{Title: "Next.js"}}},
	}
}

func TestToTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"my-blog", "My Blog"},
		{"myblog", "Myblog"},
		{"a--b", "A  B"},
	}
	for _, tt := range tests {
		if got := toTitle(tt.in); got != tt.want {
			t.Errorf("toTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSelectPosts(t *testing.T) {
	docs := sampleDocs()

	all := selectPosts(docs, "", "", 0)
	require.Len(t, all, 3)
	assert.Equal(t, "Next.js Routing", all[0].Title)

	tagged := selectPosts(docs, "Next.js", "", 0)
	assert.Equal(t, []string{"Next.js Routing", "Learning React Hooks"}, titles(tagged))

	searched := selectPosts(docs, "Next.js", "HOOKS", 0)
	assert.Equal(t, []string{"Learning React Hooks"}, titles(searched))

	limited := selectPosts(docs, "", "", 2)
	assert.Equal(t, []string{"Next.js Routing", "Learning React Hooks"}, titles(limited))

	assert.Empty(t, selectPosts(docs, "next.js", "", 0))
}

func titles(docs []content.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Title)
	}
	return out
}

func TestPrintPostsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printPosts(&buf, "json", selectPosts(sampleDocs(), "", "", 1)))

	var rows []postRow
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, postRow{Title: "Next.js Routing", Date: "2023-04-01", URL: "/blogs/next", Tags: []string{"Next.js"}}, rows[0])
}

func TestPrintPostsText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printPosts(&buf, "text", sampleDocs()[:1]))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "DATE"))
	assert.Contains(t, lines[1], "2023-02-01")
	assert.Contains(t, lines[1], "/blogs/go")
}

func TestPrintTagsYAML(t *testing.T) {
	idx := index.BuildTagIndex(sampleDocs())
	var buf bytes.Buffer
	require.NoError(t, printTags(&buf, "yaml", idx.Entries(idx.Popular(1))))

	var entries []index.Entry
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, index.Entry{Title: "Next.js", Count: 2, URL: "/tags/Next.js"}, entries[0])
}

func TestWriteOutputUnknownFormat(t *testing.T) {
	err := writeOutput(&bytes.Buffer{}, "xml", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestRunNew(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my-notes")
	var out bytes.Buffer

	require.NoError(t, runNew(&out, dir, day("2024-06-01")))

	cfgData, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(cfgData), `name: "My Notes"`)
	assert.FileExists(t, filepath.Join(dir, ".env.example"))
	assert.DirExists(t, filepath.Join(dir, "public"))
	assert.Contains(t, out.String(), "devlog serve")

	// The starter post must load under the default schema.
	docs, err := content.NewLoader(filepath.Join(dir, "blogs"), content.SchemaDate).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Hello World", docs[0].Title)
	assert.Equal(t, "/blogs/hello-world", docs[0].URL)
	assert.Equal(t, day("2024-06-01"), docs[0].Date)

	require.Error(t, runNew(&out, dir, time.Now()))
}

func TestLoadDocumentsUsesCache(t *testing.T) {
	root := t.TempDir()
	blogs := filepath.Join(root, "blogs")
	require.NoError(t, os.MkdirAll(blogs, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(blogs, "a.md"), []byte("---\ntitle: A\ndate: 2023-01-01\n---\nbody\n"), 0o644))

	c := devlog.DefaultConfig()
	c.ContentDir = blogs
	c.CacheDatabasePath = filepath.Join(root, "data", "cache.db")

	docs, err := loadDocuments(context.Background(), c)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	store, err := devlog.NewStore(c.CacheDatabasePath)
	require.NoError(t, err)
	defer store.Close()
	n, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestFlagsOverrideConfig(t *testing.T) {
	tests := []struct {
		flags func() error
		key   string
		value string
	}{
		{func() error { return rootCmd.PersistentFlags().Set("content-dir", "posts") }, "content_dir", "posts"},
		{func() error { return serveCmd.Flags().Set("addr", ":8080") }, "addr", ":8080"},
		{func() error { return serveCmd.Flags().Set("watch", "true") }, "watch", "true"},
	}
	for _, tt := range tests {
		require.NoError(t, tt.flags())
		assert.Equal(t, tt.value, viper.GetString(tt.key), tt.key)
	}
	t.Cleanup(func() {
		rootCmd.PersistentFlags().Set("content-dir", "")
		serveCmd.Flags().Set("addr", "")
		serveCmd.Flags().Set("watch", "false")
	})
}

func TestBindFlagUnknown(t *testing.T) {
	err := bindFlag("port", serveCmd, "port")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--port")
}
