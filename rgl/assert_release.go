//go:build !rgldebug

package rgl

const debugBuild = false
