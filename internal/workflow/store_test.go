package workflow

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func sampleWorkflow() Workflow {
	return Workflow{
		{Type: TypeMouse, Action: MouseClick, X: 1, Y: 2, Delay: 0.1},
		{Type: TypeLoop, Count: 2, Steps: []Step{{Type: TypeKeyboard, Action: KeyTypeText, Value: "hi"}}, Delay: 0.1},
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	path, err := store.Save("demo flow", sampleWorkflow())
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if filepath.Base(path) != "demo_flow.json" {
		t.Errorf("unexpected file name %q", filepath.Base(path))
	}

	got, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got, sampleWorkflow()) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, sampleWorkflow())
	}
}

func TestStoreGeneratesNameWhenUnusable(t *testing.T) {
	store := NewStore(t.TempDir())

	path, err := store.Save("!!!", sampleWorkflow())
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	name := filepath.Base(path)
	if !strings.HasPrefix(name, "wf_") || !strings.HasSuffix(name, ".json") {
		t.Errorf("expected generated wf_*.json name, got %q", name)
	}
}

func TestStoreList(t *testing.T) {
	store := NewStore(t.TempDir())

	if paths, err := store.List(); err != nil || len(paths) != 0 {
		t.Fatalf("empty store: paths=%v err=%v", paths, err)
	}

	if _, err := store.Save("one", sampleWorkflow()); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save("two", sampleWorkflow()); err != nil {
		t.Fatal(err)
	}

	paths, err := store.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(paths) != 2 {
		t.Errorf("expected 2 workflows, got %v", paths)
	}
}

func TestStoreListMissingDirIsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "never-created"))
	paths, err := store.List()
	if err != nil || paths != nil {
		t.Errorf("missing dir should list as empty: paths=%v err=%v", paths, err)
	}
}
