package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "compile":
		if err := compile(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "validate":
		if err := validate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "inspect":
		if err := inspect(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "save":
		if err := save(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "list":
		if err := list(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "export":
		if err := export(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "history":
		if err := history(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("meshcad version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`meshcad - solid modeling compiler and STL exporter

Usage:
  meshcad <command> [options]

Commands:
  compile    Compile a source file and export ASCII STL
  validate   Parse and evaluate a source file, reporting diagnostics
  inspect    Display a summary of the evaluated scene
  save       Save a source file to the model database
  list       List saved models
  export     Export a saved model to STL, recording the export
  history    Show a saved model's export history
  help       Show this help message
  version    Show version information

Examples:
  # Compile a source file straight to STL
  meshcad compile part.scad --output part.stl

  # Check a file for problems without exporting
  meshcad validate part.scad

  # Save a model, then export it later by ID
  meshcad save part.scad --name bracket
  meshcad export <model-id> --output bracket.stl

For command-specific help, run:
  meshcad <command> --help`)
}
