// Package assets embeds the custom line shader pair. The sources are handed
// to the GL driver untouched.
package assets

import (
	_ "embed"
)

var (
	//go:embed shaders/test.vert
	TestVert string
	//go:embed shaders/test.frag
	TestFrag string
)
