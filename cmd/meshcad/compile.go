package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/meshcad-xyz/go-meshcad/engine"
)

func compile(args []string) error {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	outputFile := fs.String("output", "", "Output STL file (default: source name with .stl)")
	solidName := fs.String("name", "", "Solid name embedded in the STL header")
	quiet := fs.Bool("quiet", false, "Suppress diagnostic output")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: meshcad compile <source.scad> [options]

Compile a source file through the full pipeline and write ASCII STL.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  meshcad compile part.scad
  meshcad compile part.scad --output build/part.stl --name part
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("source file required")
	}

	sourceFile := fs.Arg(0)
	source, err := os.ReadFile(sourceFile)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	scn, err := engine.Compile(string(source))
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	if !*quiet {
		for _, d := range scn.Diagnostics {
			fmt.Fprintf(os.Stderr, "warning: %s\n", d)
		}
	}

	name := *solidName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(sourceFile), filepath.Ext(sourceFile))
	}

	out := *outputFile
	if out == "" {
		out = strings.TrimSuffix(sourceFile, filepath.Ext(sourceFile)) + ".stl"
	}

	data, err := engine.Export(scn, name)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Wrote %s (%d triangles, %d nodes)\n", out, scn.TriangleCount(), len(scn.Nodes))
	return nil
}
