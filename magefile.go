//go:build mage
// +build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Format runs gofmt on all Go files
func Format() error {
	fmt.Println("Running gofmt...")
	return sh.RunV("gofmt", "-w", ".")
}

// Vet runs go vet on every package
func Vet() error {
	fmt.Println("Running go vet...")
	return sh.RunV("go", "vet", "./...")
}

// Test runs all tests
func Test() error {
	fmt.Println("Running tests...")
	return sh.RunV("go", "test", "./...")
}

// Build builds the newlang CLI binary
func Build() error {
	fmt.Println("Building newlang...")
	return sh.RunV("go", "build", "-o", "bin/newlang", "./cmd/newlang")
}

// PreCommit runs all pre-commit checks (format, vet, test, build)
func PreCommit() error {
	fmt.Println("Running pre-commit checks...")
	mg.Deps(Format)
	mg.Deps(Vet)
	mg.Deps(Test)
	mg.Deps(Build)
	fmt.Println("✓ All pre-commit checks passed!")
	return nil
}

// CI runs all CI checks (same as PreCommit)
func CI() error {
	fmt.Println("Running CI checks...")
	if err := PreCommit(); err != nil {
		return err
	}
	fmt.Println("✓ All CI checks passed!")
	return nil
}

// Clean removes build artifacts
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	if err := sh.Run("sh", "-c", "rm -rf bin *.test"); err != nil {
		fmt.Printf("Warning: failed to clean: %v\n", err)
	}
	fmt.Println("✓ Clean complete!")
	return nil
}

// Default target runs PreCommit
var Default = PreCommit
