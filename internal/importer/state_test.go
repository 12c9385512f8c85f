package importer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStateDBRoundTrip(t *testing.T) {
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatalf("OpenStateDB: %v", err)
	}
	defer state.Close()

	imported, err := state.IsImported("workout.txt", 100, "abc")
	if err != nil {
		t.Fatalf("IsImported: %v", err)
	}
	if imported {
		t.Error("fresh state db reports file imported")
	}

	if err := state.MarkImported("workout.txt", 100, "abc"); err != nil {
		t.Fatalf("MarkImported: %v", err)
	}

	imported, err = state.IsImported("workout.txt", 100, "abc")
	if err != nil {
		t.Fatalf("IsImported: %v", err)
	}
	if !imported {
		t.Error("marked file not reported imported")
	}

	// A changed hash means the file must be re-imported.
	imported, err = state.IsImported("workout.txt", 100, "different")
	if err != nil {
		t.Fatalf("IsImported: %v", err)
	}
	if imported {
		t.Error("file with changed hash reported imported")
	}
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	if err := os.WriteFile(path, []byte("[2024-1-10]\nbench\n100*5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	h1, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	h2, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if h1 != h2 || len(h1) != 64 {
		t.Errorf("hashes = %q, %q; want equal 64-char hex", h1, h2)
	}

	if _, err := HashFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error hashing missing file")
	}
}
