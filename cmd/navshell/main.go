// Package main is the navshell command: an interactive navigation drawer
// shell plus render, preset and export tools for its layouts.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
