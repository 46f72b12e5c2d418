// Package web holds the browser dashboard served by the API binary.
package web

import _ "embed"

//go:embed index.html
var Index []byte
