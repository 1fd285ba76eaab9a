// Package scaffold holds the starter files `devlog new` writes into a fresh
// site directory.
package scaffold

import "embed"

// Templates contains the starter files. Files ending in .tmpl are executed
// as Go text/template with the site data; the rest are copied verbatim.
//
//go:embed all:templates
var Templates embed.FS
