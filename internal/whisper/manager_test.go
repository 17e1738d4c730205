package whisper

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// fakeModel records Close calls.
type fakeModel struct {
	name   string
	closed bool
}

func (m *fakeModel) Name() string { return m.name }
func (m *fakeModel) Close() error {
	m.closed = true
	return nil
}
func (m *fakeModel) Transcribe(ctx context.Context, audioPath string, opts TranscribeOptions) (SegmentStream, Info, error) {
	return nil, Info{}, errors.New("not implemented")
}

// fakeEngine counts loads per model name.
type fakeEngine struct {
	loads  []string
	failOn string
}

func (e *fakeEngine) Load(name string) (Model, error) {
	if name == e.failOn {
		return nil, errors.New("load failed")
	}
	e.loads = append(e.loads, name)
	return &fakeModel{name: name}, nil
}

// TestManagerCachesSameModelName checks repeated loads hit the cache.
func TestManagerCachesSameModelName(t *testing.T) {
	engine := &fakeEngine{}
	manager := NewManager(engine)

	first, err := manager.Load("base")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	second, err := manager.Load("base")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if first != second {
		t.Fatal("same name should return the resident instance")
	}
	if len(engine.loads) != 1 {
		t.Fatalf("engine loads = %d, want 1", len(engine.loads))
	}
	if !manager.IsLoaded() || manager.LoadedName() != "base" {
		t.Fatalf("manager state: loaded=%v name=%q", manager.IsLoaded(), manager.LoadedName())
	}
}

// TestManagerSwapUnloadsPrevious checks at most one resident model.
func TestManagerSwapUnloadsPrevious(t *testing.T) {
	engine := &fakeEngine{}
	manager := NewManager(engine)

	first, _ := manager.Load("base")
	if _, err := manager.Load("small"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !first.(*fakeModel).closed {
		t.Fatal("previous model should be closed on swap")
	}
	if manager.LoadedName() != "small" {
		t.Fatalf("loaded name = %q, want small", manager.LoadedName())
	}
}

// TestManagerLoadFailureLeavesNothingResident checks failed swap state.
func TestManagerLoadFailureLeavesNothingResident(t *testing.T) {
	engine := &fakeEngine{failOn: "medium"}
	manager := NewManager(engine)

	if _, err := manager.Load("base"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := manager.Load("medium"); err == nil {
		t.Fatal("expected load failure")
	}

	if manager.IsLoaded() {
		t.Fatal("failed swap must not leave a model resident")
	}
}

// TestManagerUnload checks explicit release.
func TestManagerUnload(t *testing.T) {
	engine := &fakeEngine{}
	manager := NewManager(engine)

	model, _ := manager.Load("base")
	manager.Unload()

	if manager.IsLoaded() || manager.LoadedName() != "" {
		t.Fatal("manager should be empty after Unload")
	}
	if !model.(*fakeModel).closed {
		t.Fatal("Unload should close the resident model")
	}
}

// TestCatalogMarksDownloadedModels checks cache dir inspection.
func TestCatalogMarksDownloadedModels(t *testing.T) {
	cacheDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(cacheDir, "ggml-base.bin"), []byte("model"), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}

	models := Catalog(cacheDir)
	base, tiny := -1, -1
	for i := range models {
		switch models[i].ID {
		case "base":
			base = i
		case "tiny":
			tiny = i
		}
	}
	if base < 0 || tiny < 0 {
		t.Fatalf("catalog missing expected entries: %+v", models)
	}
	if !models[base].Downloaded {
		t.Fatal("base should be marked downloaded")
	}
	if models[base].LocalPath != filepath.Join(cacheDir, "ggml-base.bin") {
		t.Fatalf("local path = %q", models[base].LocalPath)
	}
	if models[tiny].Downloaded {
		t.Fatal("tiny should not be marked downloaded")
	}
}

// TestLookupAndDefaults checks catalog helpers.
func TestLookupAndDefaults(t *testing.T) {
	if _, ok := Lookup("base"); !ok {
		t.Fatal("base should exist in catalog")
	}
	if _, ok := Lookup("gigantic"); ok {
		t.Fatal("unknown id should not resolve")
	}
	if _, ok := Lookup(DefaultModel); !ok {
		t.Fatal("default model must be a catalog entry")
	}

	ids := ModelIDs()
	if len(ids) != 5 || ids[1] != "base" {
		t.Fatalf("model ids = %v", ids)
	}
}

// TestDownloadUnknownModel checks validation before any network use.
func TestDownloadUnknownModel(t *testing.T) {
	if _, err := Download("gigantic", t.TempDir()); err == nil {
		t.Fatal("expected unknown model error")
	}
}

// TestDownloadSkipsExistingFile checks the cache short-circuit.
func TestDownloadSkipsExistingFile(t *testing.T) {
	cacheDir := t.TempDir()
	dest := filepath.Join(cacheDir, "ggml-base.bin")
	if err := os.WriteFile(dest, []byte("model"), 0o644); err != nil {
		t.Fatalf("write model: %v", err)
	}

	got, err := Download("base", cacheDir)
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if got != dest {
		t.Fatalf("path = %q, want %q", got, dest)
	}
}
