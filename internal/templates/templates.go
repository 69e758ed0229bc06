// Package templates embeds the server-rendered HTML views.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
