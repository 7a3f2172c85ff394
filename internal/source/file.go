package source

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/url"
	"os"
	"strings"
)

// FileReader reads local files: "file:///abs/path", "file://rel/path" or a
// bare path.
type FileReader struct{}

func (r *FileReader) Scheme() string { return "file" }

func (r *FileReader) Read(ctx context.Context, reference string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := strings.TrimPrefix(reference, "file://")
	if path == "" {
		return nil, &InvalidReferenceError{Reference: reference, Reason: "empty path"}
	}
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &NotFoundError{Reference: reference}
	}
	if err != nil {
		return nil, &BackendError{Backend: "file", Reference: reference, Reason: err.Error(), Err: err}
	}
	return data, nil
}

//go:embed builtin/*.json
var builtinFS embed.FS

// BuiltinReader serves documents compiled into the binary:
// "builtin://gsp" is builtin/gsp.json.
type BuiltinReader struct{}

func (r *BuiltinReader) Scheme() string { return "builtin" }

func (r *BuiltinReader) Read(ctx context.Context, reference string) ([]byte, error) {
	name := strings.TrimPrefix(reference, "builtin://")
	if name == "" || strings.ContainsAny(name, "/\\") {
		return nil, &InvalidReferenceError{Reference: reference, Reason: "want builtin://NAME"}
	}

	data, err := builtinFS.ReadFile("builtin/" + name + ".json")
	if err != nil {
		return nil, &NotFoundError{Reference: reference, Backend: "builtin"}
	}
	return data, nil
}

// BuiltinNames lists the embedded documents.
func BuiltinNames() []string {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, strings.TrimSuffix(e.Name(), ".json"))
		}
	}
	return names
}
