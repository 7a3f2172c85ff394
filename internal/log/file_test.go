package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFileWriterWrite(t *testing.T) {
	dir := t.TempDir()

	fw, err := NewFileWriter(dir)
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	defer fw.Close()

	if _, err := fw.Write([]byte(`{"msg":"test"}` + "\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	content, err := os.ReadFile(todayFile(dir))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(content), `{"msg":"test"}`) {
		t.Errorf("unexpected content: %s", content)
	}

	target, err := os.Readlink(filepath.Join(dir, "latest"))
	if err != nil {
		t.Fatalf("reading latest link: %v", err)
	}
	if target != filepath.Base(todayFile(dir)) {
		t.Errorf("latest -> %q, want %q", target, filepath.Base(todayFile(dir)))
	}
}

func TestFileWriterRotatesAtMidnight(t *testing.T) {
	dir := t.TempDir()

	fw, err := NewFileWriter(dir)
	if err != nil {
		t.Fatalf("NewFileWriter: %v", err)
	}
	defer fw.Close()

	tomorrow := time.Now().AddDate(0, 0, 1)
	fw.now = func() time.Time { return tomorrow }

	if _, err := fw.Write([]byte("next day\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	next := filepath.Join(dir, filePrefix+tomorrow.Format(dayLayout)+fileSuffix)
	content, err := os.ReadFile(next)
	if err != nil {
		t.Fatalf("reading rotated file: %v", err)
	}
	if string(content) != "next day\n" {
		t.Errorf("rotated file content = %q", content)
	}
}

func TestCleanup(t *testing.T) {
	dir := t.TempDir()

	old := filepath.Join(dir, filePrefix+time.Now().AddDate(0, 0, -30).Format(dayLayout)+fileSuffix)
	recent := filepath.Join(dir, filePrefix+time.Now().AddDate(0, 0, -2).Format(dayLayout)+fileSuffix)
	other := filepath.Join(dir, "notes.txt")
	for _, p := range []string{old, recent, other} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	Cleanup(dir, 14)

	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("old log file should have been removed")
	}
	if _, err := os.Stat(recent); err != nil {
		t.Error("recent log file should be kept")
	}
	if _, err := os.Stat(other); err != nil {
		t.Error("unrelated file should be kept")
	}
}
