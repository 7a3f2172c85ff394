package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

type stubReader struct {
	scheme string
	docs   map[string]string
}

func (s *stubReader) Scheme() string { return s.scheme }

func (s *stubReader) Read(ctx context.Context, ref string) ([]byte, error) {
	if v, ok := s.docs[ref]; ok {
		return []byte(v), nil
	}
	return nil, &NotFoundError{Reference: ref}
}

func TestRegistryDispatchesByScheme(t *testing.T) {
	reg := NewRegistry(&stubReader{
		scheme: "mem",
		docs:   map[string]string{"mem://gsp": `{"ID": "gsp@abc"}`},
	})

	data, err := reg.Read(context.Background(), "mem://gsp")
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"ID": "gsp@abc"}` {
		t.Errorf("Read = %q", data)
	}
}

func TestRegistryUnsupportedScheme(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Read(context.Background(), "ftp://example.com/gsp.json")

	var unsupported *UnsupportedSchemeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedSchemeError, got %v", err)
	}
	if unsupported.Scheme != "ftp" {
		t.Errorf("Scheme = %q, want ftp", unsupported.Scheme)
	}
}

func TestRegistryEmptyReference(t *testing.T) {
	_, err := Default().Read(context.Background(), "  ")
	var invalid *InvalidReferenceError
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidReferenceError, got %v", err)
	}
}

func TestRegistryBarePathIsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gsp.json")
	if err := os.WriteFile(path, []byte(`{"ID": "x@y"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	reg := Default()
	for _, ref := range []string{path, "file://" + path} {
		data, err := reg.Read(context.Background(), ref)
		if err != nil {
			t.Fatalf("Read(%q): %v", ref, err)
		}
		if string(data) != `{"ID": "x@y"}` {
			t.Errorf("Read(%q) = %q", ref, data)
		}
	}
}

func TestFileReaderNotFound(t *testing.T) {
	_, err := (&FileReader{}).Read(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestFileReaderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (&FileReader{}).Read(ctx, "/etc/hostname"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestBuiltinReader(t *testing.T) {
	data, err := Default().Read(context.Background(), "builtin://gsp")
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("builtin gsp document is empty")
	}

	_, err = Default().Read(context.Background(), "builtin://nope")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError, got %v", err)
	}

	_, err = Default().Read(context.Background(), "builtin://../go.mod")
	var invalid *InvalidReferenceError
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidReferenceError, got %v", err)
	}
}

func TestBuiltinNames(t *testing.T) {
	names := BuiltinNames()
	found := false
	for _, n := range names {
		if n == "gsp" {
			found = true
		}
	}
	if !found {
		t.Errorf("BuiltinNames() = %v, want to contain gsp", names)
	}
}

func TestSchemes(t *testing.T) {
	got := Default().Schemes()
	want := []string{"builtin", "file", "secretsmanager"}
	if len(got) != len(want) {
		t.Fatalf("Schemes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Schemes()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
