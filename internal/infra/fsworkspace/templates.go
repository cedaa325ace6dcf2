package fsworkspace

import "embed"

// Workspace scaffolding written by Init: the config file and the stock
// report layouts.
//
//go:embed templates
var templatesFS embed.FS
