// Package web serves the tag generator over HTTP: a JSON API, Prometheus
// metrics and an embedded single-page form.
package web

import "embed"

//go:embed static/index.html
var staticFS embed.FS
