// Package main is the entry point for the whenq CLI.
package main

import "github.com/whenq/whenq/internal/cli"

func main() {
	cli.Execute()
}
