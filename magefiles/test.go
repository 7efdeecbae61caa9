//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Unit runs every package's tests. None of them need a GL context.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "./..."), withStream())
	return err
}

// Debug runs the tests with rgl precondition checks always on.
func (Test) Debug() error {
	_, err := executeCmd("go", withArgs("test", "-tags", "rgldebug", "-race", "./..."), withStream())
	return err
}
