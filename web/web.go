// Package web embeds the HTML templates of the booking app.
package web

import "embed"

//go:embed templates
var Files embed.FS
