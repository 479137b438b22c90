package web

import "embed"

// Viewer assets are baked into the binary so an output directory is
// fully self-contained once written.

//go:embed index.html
var IndexHTML string

//go:embed js/*
var Static embed.FS
