// Package static holds the pages served at / and /login.
package static

import "embed"

//go:embed *.html
var Files embed.FS
