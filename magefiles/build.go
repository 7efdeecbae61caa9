//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

const demoBinary = "bin/jyu-demo"

// Debug builds the demo with rgl debug checks compiled in.
func (Build) Debug() error {
	_, err := executeCmd("go", withArgs("build", "-tags", "rgldebug", "-o", demoBinary, "./cmd/jyu-demo"), withStream())
	return err
}

// Release builds a stripped demo binary.
func (Build) Release() error {
	_, err := executeCmd("go", withArgs("build", "-trimpath", "-ldflags", "-s -w", "-o", demoBinary, "./cmd/jyu-demo"), withStream())
	return err
}
