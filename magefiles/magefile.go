//go:build mage

// Package main provides build targets for todo-api using Mage.
//
// Usage:
//
//	mage build    Compile the api binary to bin/
//	mage test     Run all tests
//	mage lint     Run golangci-lint
//	mage run      Build, create the table, and start the server
//	mage clean    Remove build artifacts
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binLint    = "golangci-lint"
	binaryName = "todo-api"
	binaryDir  = "bin"
	cmdDir     = "./cmd/api"
)

// Build compiles the api binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV(binLint, "run", "./...")
}

// Run builds the binary, creates the todos table and serves on the configured address.
func Run() error {
	mg.Deps(Build)
	bin := filepath.Join(binaryDir, binaryName)
	if err := sh.RunV(bin, "init-db"); err != nil {
		return err
	}
	return sh.RunV(bin, "serve")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}
