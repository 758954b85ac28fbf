package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/meshcad-xyz/go-meshcad/engine"
	"github.com/meshcad-xyz/go-meshcad/scad"
)

type inspectReport struct {
	Nodes       []inspectNode      `json:"nodes"`
	Triangles   int                `json:"triangles"`
	Variables   map[string]float64 `json:"variables,omitempty"`
	Diagnostics []string           `json:"diagnostics,omitempty"`
	BoundsMin   [3]float64         `json:"bounds_min"`
	BoundsMax   [3]float64         `json:"bounds_max"`
}

type inspectNode struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Material  string `json:"material"`
	Triangles int    `json:"triangles"`
	Vertices  int    `json:"vertices"`
}

func inspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	outputJSON := fs.Bool("json", false, "Output report as JSON")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: meshcad inspect <source.scad> [options]

Evaluate a source file and display the resulting scene: per-node mesh
sizes, world bounds, resolved variables, and diagnostics.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("source file required")
	}

	source, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	prog := scad.Parse(string(source))
	scn, err := engine.Compile(string(source))
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	min, max := scn.Bounds()
	report := inspectReport{
		Triangles: scn.TriangleCount(),
		Variables: scad.Variables(prog),
		BoundsMin: [3]float64{min.X, min.Y, min.Z},
		BoundsMax: [3]float64{max.X, max.Y, max.Z},
	}
	for _, n := range scn.Nodes {
		report.Nodes = append(report.Nodes, inspectNode{
			ID:        n.ID,
			Name:      n.Name,
			Material:  n.Material,
			Triangles: n.Mesh.TriangleCount(),
			Vertices:  len(n.Mesh.Vertices),
		})
	}
	for _, d := range scn.Diagnostics {
		report.Diagnostics = append(report.Diagnostics, d.String())
	}

	if *outputJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println("=== Scene Summary ===")
	fmt.Printf("Nodes: %d, Triangles: %d\n", len(report.Nodes), report.Triangles)
	fmt.Printf("Bounds: [%g, %g, %g] to [%g, %g, %g]\n",
		min.X, min.Y, min.Z, max.X, max.Y, max.Z)
	fmt.Println()
	for _, n := range report.Nodes {
		fmt.Printf("  %s  %-12s material=%s  %d triangles, %d vertices\n",
			n.ID[:8], n.Name, n.Material, n.Triangles, n.Vertices)
	}
	if len(report.Variables) > 0 {
		fmt.Println("\nVariables:")
		for name, v := range report.Variables {
			fmt.Printf("  %s = %g\n", name, v)
		}
	}
	if len(report.Diagnostics) > 0 {
		fmt.Printf("\nDiagnostics (%d):\n", len(report.Diagnostics))
		for _, d := range report.Diagnostics {
			fmt.Printf("  ⚠ %s\n", d)
		}
	}
	return nil
}
