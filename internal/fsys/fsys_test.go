package fsys

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	osfs := NewOS()

	ok, err := osfs.Exists(dir)
	if err != nil || !ok {
		t.Fatalf("Exists(%s) = %v, %v; want true, nil", dir, ok, err)
	}

	ok, err = osfs.Exists(filepath.Join(dir, "missing"))
	if err != nil || ok {
		t.Fatalf("Exists(missing) = %v, %v; want false, nil", ok, err)
	}
}

func TestMkdirFailsWhenPresent(t *testing.T) {
	dir := t.TempDir()
	err := NewOS().Mkdir(dir, DirPerm)
	if !errors.Is(err, fs.ErrExist) {
		t.Fatalf("Mkdir on existing dir: got %v, want fs.ErrExist", err)
	}
}

func TestCopyFileUsesDefaultMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")

	if err := os.WriteFile(src, []byte("node_modules\n"), 0o400); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := NewOS().CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile() error: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "node_modules\n" {
		t.Errorf("dst content = %q, want %q", got, "node_modules\n")
	}

	if runtime.GOOS == "windows" {
		return
	}
	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != FilePerm {
		t.Errorf("dst mode = %o, want %o", info.Mode().Perm(), FilePerm)
	}
}

func TestCopyFileRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := NewOS().CopyFile(dir, filepath.Join(dir, "x")); err == nil {
		t.Fatal("expected error copying a directory, got nil")
	}
}
