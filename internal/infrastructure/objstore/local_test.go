package objstore

import (
	"strings"
	"testing"
)

func TestLocalWriteListDelete(t *testing.T) {
	l := NewLocal(t.TempDir(), "https://cdn.atelier.dev")

	url, err := l.Write("sketch.PNG", []byte("png-bytes"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.HasPrefix(url, "https://cdn.atelier.dev/uploads/") {
		t.Fatalf("url = %q", url)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Fatalf("extension not kept lowercase: %q", url)
	}

	names, err := l.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 1 {
		t.Fatalf("names = %v", names)
	}

	if err := l.Delete(names[0]); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	names, err = l.List("")
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 {
		t.Fatalf("names after delete = %v", names)
	}

	// Deleting something already gone is fine.
	if err := l.Delete("ghost.png"); err != nil {
		t.Fatalf("Delete missing: %v", err)
	}
}
