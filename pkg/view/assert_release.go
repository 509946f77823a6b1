//go:build !debug

package view

// assertRendered ignores paint failures; a lost row is repainted on the
// next redraw. Builds tagged debug panic instead.
func assertRendered(error) {}
