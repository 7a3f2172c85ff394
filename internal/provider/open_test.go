package provider

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dimchat/gsp/internal/source"
)

func TestOpenBuiltin(t *testing.T) {
	p, err := Open(context.Background(), source.Default(), "builtin://gsp")
	require.NoError(t, err)

	assert.Equal(t, spID, p.ID())
	require.NotEmpty(t, p.Stations())
	assert.Equal(t, s002, p.Stations()[0].ID)

	url, err := p.ResolveAPI("upload", map[string]string{"ID": "moky", "MD5": "m", "SALT": "s"})
	require.NoError(t, err)
	assert.Equal(t, "https://sechat.dim.chat/moky/upload?md5=m&salt=s", url)
}

func TestOpenMergesInOrder(t *testing.T) {
	dir := t.TempDir()
	overlay := filepath.Join(dir, "overlay.json")
	doc := fmt.Sprintf(`{"stations": [{"ID": "%s", "host": "10.0.0.2", "port": 9395}], "APIs": {"upload": "http://local/{ID}"}}`, s001)
	require.NoError(t, os.WriteFile(overlay, []byte(doc), 0o644))

	p, err := Open(context.Background(), source.Default(), "builtin://gsp", overlay)
	require.NoError(t, err)

	require.Len(t, p.Stations(), 1)
	assert.Equal(t, "10.0.0.2:9395", p.Stations()[0].Address())
	up, _ := p.API("upload")
	assert.Equal(t, "http://local/{ID}", up)
	_, ok := p.API("download")
	assert.True(t, ok, "APIs from the base document are kept")
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(context.Background(), source.Default())
	assert.Error(t, err)

	_, err = Open(context.Background(), source.Default(), "builtin://gsp", filepath.Join(t.TempDir(), "missing.json"))
	var nf *source.NotFoundError
	assert.True(t, errors.As(err, &nf), "want NotFoundError, got %v", err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"stations": [{"ID": "x@y", "port": 0}]}`), 0o644))
	_, err = Open(context.Background(), source.Default(), "builtin://gsp", bad)
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve), "want ValidationError, got %v", err)
}
