// Package web provides the embedded frontend build. The compiled SPA is
// placed in web/dist/ by the frontend build step and served by the
// router; in development only the placeholder shell is present.
package web

import "embed"

// DistFS embeds the web/dist/ directory tree containing the compiled
// frontend bundle and its index.html entry point.
//
//go:embed all:dist
var DistFS embed.FS
