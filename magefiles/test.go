//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	coverageFile = "coverage.out"
	examplesDir  = "examples"
)

// Test groups the test targets.
type Test mg.Namespace

// All runs every package test.
func (Test) All() error {
	return sh.RunV(binGo, "test", "./...")
}

// Race runs every package test with the race detector.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Cover runs every package test and writes coverage.out.
func (Test) Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile="+coverageFile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+coverageFile)
}

// Examples builds curate, then validates and digests every JSON document in
// examples/. Documents under examples/invalid must fail validation.
func Examples() error {
	mg.Deps(Build)
	bin := filepath.Join(binaryDir, binaryName)

	valid, err := filepath.Glob(filepath.Join(examplesDir, "*.json"))
	if err != nil {
		return err
	}
	for _, path := range valid {
		if err := sh.RunV(bin, "validate", path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := sh.RunV(bin, "digest", path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	invalid, err := filepath.Glob(filepath.Join(examplesDir, "invalid", "*.json"))
	if err != nil {
		return err
	}
	for _, path := range invalid {
		ran, err := sh.Exec(nil, os.Stdout, os.Stderr, bin, "validate", path)
		if !ran {
			return err
		}
		if sh.ExitStatus(err) != 1 {
			return fmt.Errorf("%s: expected exit status 1, got %d", path, sh.ExitStatus(err))
		}
	}
	return nil
}
