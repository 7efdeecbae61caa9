//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Demo runs the instanced quad demo with a debug GL context.
func (Run) Demo() error {
	mg.Deps(Build.Debug)
	fmt.Println("Run demo...")
	_, err := executeCmd(demoBinary, withArgs("-debug", "-shader", "cmd/jyu-demo/shaders/quad.glsl"), withStream())
	return err
}
