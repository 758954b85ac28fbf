package store

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoadModel(t *testing.T) {
	s := openTestStore(t)

	saved, err := s.SaveModel("widget", `cube(1);`)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("expected a generated ID")
	}

	loaded, err := s.Model(saved.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Name != "widget" || loaded.Source != `cube(1);` {
		t.Errorf("loaded model mismatch: %+v", loaded)
	}
}

func TestModel_NotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Model("no-such-id"); err == nil {
		t.Error("expected error for missing model")
	}
}

func TestUpdateModel(t *testing.T) {
	s := openTestStore(t)

	saved, err := s.SaveModel("widget", `cube(1);`)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateModel(saved.ID, `sphere(r=2);`); err != nil {
		t.Fatalf("update: %v", err)
	}

	loaded, err := s.Model(saved.ID)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Source != `sphere(r=2);` {
		t.Errorf("expected updated source, got %q", loaded.Source)
	}

	if err := s.UpdateModel("no-such-id", "x"); err == nil {
		t.Error("expected error updating a missing model")
	}
}

func TestListModels(t *testing.T) {
	s := openTestStore(t)

	for _, name := range []string{"a", "b", "c"} {
		if _, err := s.SaveModel(name, `cube(1);`); err != nil {
			t.Fatal(err)
		}
	}

	models, err := s.ListModels()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(models) != 3 {
		t.Errorf("expected 3 models, got %d", len(models))
	}
}

func TestExportHistory(t *testing.T) {
	s := openTestStore(t)

	saved, err := s.SaveModel("widget", `cube(1);`)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.RecordExport(saved.ID, "widget.stl", 12); err != nil {
		t.Fatalf("record export: %v", err)
	}
	if _, err := s.RecordExport(saved.ID, "widget-v2.stl", 24); err != nil {
		t.Fatal(err)
	}

	exports, err := s.ListExports(saved.ID)
	if err != nil {
		t.Fatalf("list exports: %v", err)
	}
	if len(exports) != 2 {
		t.Fatalf("expected 2 exports, got %d", len(exports))
	}
	for _, e := range exports {
		if e.ModelID != saved.ID {
			t.Errorf("export %s bound to wrong model %s", e.ID, e.ModelID)
		}
	}

	other, err := s.ListExports("unrelated")
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Errorf("expected no exports for unrelated model, got %d", len(other))
	}
}
