package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/meshcad-xyz/go-meshcad/engine"
	"github.com/meshcad-xyz/go-meshcad/store"
)

const defaultDBPath = "meshcad.db"

func openStore(path string) (*store.Store, error) {
	s, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", path, err)
	}
	return s, nil
}

func save(args []string) error {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	dbPath := fs.String("db", defaultDBPath, "Model database path")
	name := fs.String("name", "", "Model name (default: source file name)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: meshcad save <source.scad> [options]

Save a source file to the model database. The source is compiled
first; a file that produces no geometry is rejected.

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

	sourceFile := fs.Arg(0)
	source, err := os.ReadFile(sourceFile)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}

	// Reject sources that cannot produce a model.
	if _, err := engine.Compile(string(source)); err != nil {
		return fmt.Errorf("compile: %w", err)
	}

	modelName := *name
	if modelName == "" {
		modelName = strings.TrimSuffix(filepath.Base(sourceFile), filepath.Ext(sourceFile))
	}

	st, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	m, err := st.SaveModel(modelName, string(source))
	if err != nil {
		return err
	}
	fmt.Printf("Saved %s (%s)\n", m.Name, m.ID)
	return nil
}

func list(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	dbPath := fs.String("db", defaultDBPath, "Model database path")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: meshcad list [options]

List saved models, most recently updated first.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	st, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	models, err := st.ListModels()
	if err != nil {
		return err
	}
	if len(models) == 0 {
		fmt.Println("No saved models.")
		return nil
	}
	for _, m := range models {
		fmt.Printf("%s  %-20s updated %s\n",
			m.ID, m.Name, m.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func export(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	dbPath := fs.String("db", defaultDBPath, "Model database path")
	outputFile := fs.String("output", "", "Output STL file (default: model name with .stl)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: meshcad export <model-id> [options]

Compile a saved model and write ASCII STL, recording the export in
the model's history.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("model ID required")
	}

	st, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	m, err := st.Model(fs.Arg(0))
	if err != nil {
		return err
	}

	scn, err := engine.Compile(m.Source)
	if err != nil {
		return fmt.Errorf("compile %s: %w", m.Name, err)
	}

	out := *outputFile
	if out == "" {
		out = m.Name + ".stl"
	}

	data, err := engine.Export(scn, m.Name)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	if _, err := st.RecordExport(m.ID, out, scn.TriangleCount()); err != nil {
		return fmt.Errorf("record export: %w", err)
	}

	fmt.Printf("Wrote %s (%d triangles)\n", out, scn.TriangleCount())
	return nil
}

func history(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	dbPath := fs.String("db", defaultDBPath, "Model database path")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: meshcad history <model-id> [options]

Show a saved model's export history, newest first.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("model ID required")
	}

	st, err := openStore(*dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	m, err := st.Model(fs.Arg(0))
	if err != nil {
		return err
	}

	exports, err := st.ListExports(m.ID)
	if err != nil {
		return err
	}
	if len(exports) == 0 {
		fmt.Printf("No exports recorded for %s.\n", m.Name)
		return nil
	}
	fmt.Printf("Exports for %s:\n", m.Name)
	for _, e := range exports {
		fmt.Printf("  %s  %-24s %d triangles\n",
			e.CreatedAt.Format("2006-01-02 15:04"), e.Filename, e.Triangles)
	}
	return nil
}
