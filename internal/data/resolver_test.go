package data

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sweetHomeGo/spread-analyze/internal/testutil"
)

func TestResolveSearchOrder(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()
	testutil.WriteFileIn(t, dir2, "i2501.csv", "datetime,close\n")
	want := testutil.WriteFileIn(t, dir1, "i2501.csv", "datetime,close\n")

	r := NewSearchPathResolver([]string{dir1, dir2})
	got, err := r.Resolve("i2501.csv")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != want {
		t.Errorf("resolved %s, want first root's %s", got, want)
	}
}

func TestResolveAbsolutePath(t *testing.T) {
	path := testutil.WriteTempFile(t, "i2501.csv", "datetime,close\n")
	r := NewSearchPathResolver([]string{t.TempDir()})
	got, err := r.Resolve(path)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != path {
		t.Errorf("resolved %s, want the absolute path itself", got)
	}
}

func TestResolveNotFound(t *testing.T) {
	dir := t.TempDir()
	r := NewSearchPathResolver([]string{dir})
	_, err := r.Resolve("absent.csv")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if !strings.Contains(err.Error(), filepath.Join(dir, "absent.csv")) {
		t.Errorf("error does not list the attempted path: %v", err)
	}
}

func TestResolveDirectoryDoesNotCount(t *testing.T) {
	dir := t.TempDir()
	r := NewSearchPathResolver(nil)
	if _, err := r.Resolve(dir); err == nil {
		t.Fatalf("a directory must not resolve as a source")
	}
}

func TestNewSearchPathResolverDefaultsToCwd(t *testing.T) {
	r := NewSearchPathResolver(nil)
	if len(r.Roots) != 1 || r.Roots[0] != "." {
		t.Errorf("roots = %v, want [.]", r.Roots)
	}
}
