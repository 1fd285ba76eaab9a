package devlog

import "embed"

// EmbeddedAssets contains static assets shipped with the engine:
// devlog.css, the default stylesheet for the built-in views.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
