package workouts

import "embed"

// StaticFS contains the browser front-end served at "/".
//
//go:embed static
var StaticFS embed.FS
