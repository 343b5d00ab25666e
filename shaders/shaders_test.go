package shaders

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

func TestEmbeddedSources(t *testing.T) {
	src := Embedded()
	for _, name := range []string{"position", "aCoordinates", "aSpeed", "aOffset", "aDirection", "aPress",
		"move", "time", "mouse", "mousePressed"} {
		if !strings.Contains(src.Vertex, name) {
			t.Errorf("vertex shader: expected reference to %s", name)
		}
	}
	for _, name := range []string{"t1", "t2", "mask", "progress"} {
		if !strings.Contains(src.Fragment, name) {
			t.Errorf("fragment shader: expected reference to %s", name)
		}
	}
	if !strings.HasPrefix(src.Vertex, "#version 410") {
		t.Error("vertex shader: expected #version 410 header")
	}
}

func TestLoadEmptyDirUsesEmbedded(t *testing.T) {
	src, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if src.Origin != "embedded" {
		t.Errorf("Origin: expected embedded, got %q", src.Origin)
	}
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	if err := WriteEmbedded(dir); err != nil {
		t.Fatalf("WriteEmbedded: %v", err)
	}

	src, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if src.Vertex != Embedded().Vertex || src.Fragment != Embedded().Fragment {
		t.Error("Load: expected sources identical to embedded")
	}
	if src.Origin != dir {
		t.Errorf("Origin: expected %q, got %q", dir, src.Origin)
	}
}

func TestWriteEmbeddedKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, VertexFile)
	if err := os.WriteFile(path, []byte("custom"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := WriteEmbedded(dir); err != nil {
		t.Fatalf("WriteEmbedded: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "custom" {
		t.Errorf("existing file: expected untouched, got %q", data)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("expected error for directory without shaders")
	}
}

func TestShouldReload(t *testing.T) {
	cases := []struct {
		event fsnotify.Event
		want  bool
	}{
		{fsnotify.Event{Name: "/x/points.vert", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "/x/points.frag", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/x/points.frag", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/x/notes.txt", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/x/points.vert", Op: fsnotify.Remove}, false},
	}
	for _, c := range cases {
		if got := shouldReload(c.event); got != c.want {
			t.Errorf("shouldReload(%v): expected %v, got %v", c.event, c.want, got)
		}
	}
}

func TestWatcherDeliversReload(t *testing.T) {
	dir := t.TempDir()
	if err := WriteEmbedded(dir); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(zap.NewNop(), dir, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// Give the watcher loop a moment to start before writing
	time.Sleep(50 * time.Millisecond)
	edited := Embedded().Fragment + "\n// edited\n"
	if err := os.WriteFile(filepath.Join(dir, FragmentFile), []byte(edited), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case src := <-w.Updates():
		if !strings.HasSuffix(src.Fragment, "// edited\n") {
			t.Error("reload: expected edited fragment source")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("reload: timed out waiting for update")
	}
}

func TestNewWatcherRequiresDir(t *testing.T) {
	if _, err := NewWatcher(zap.NewNop(), "", 0); err == nil {
		t.Error("expected error for empty dir")
	}
}
