package service

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakery_planner_v1/internal/errs"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newLocalStorageService(t *testing.T, maxBytes int64) (*StorageService, string) {
	t.Helper()
	root := t.TempDir()
	local, err := NewLocalStorage(root)
	require.NoError(t, err)
	svc := NewStorageService(local, maxBytes)
	svc.now = func() time.Time { return time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC) }
	return svc, root
}

func TestStorageService_SaveImage(t *testing.T) {
	svc, root := newLocalStorageService(t, 1024)

	key, err := svc.SaveImage(context.Background(), bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "2024/03/09/"), key)
	assert.True(t, strings.HasSuffix(key, ".png"), key)

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
}

func TestStorageService_SaveImageRejects(t *testing.T) {
	svc, root := newLocalStorageService(t, 16)

	_, err := svc.SaveImage(context.Background(), strings.NewReader("just some text"))
	var appErr *errs.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ImageInvalid, appErr.Code)
	assert.Equal(t, errs.TypeValidation, appErr.Type)

	big := append(append([]byte{}, pngHeader...), make([]byte, 32)...)
	_, err = svc.SaveImage(context.Background(), bytes.NewReader(big))
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, ImageTooLarge, appErr.Code)

	objects, err := svc.Provider().List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, objects, "nothing stored under %s", root)
}

func TestStorageService_OpenAndDelete(t *testing.T) {
	svc, _ := newLocalStorageService(t, 1024)
	ctx := context.Background()

	key, err := svc.SaveImage(ctx, bytes.NewReader(pngHeader))
	require.NoError(t, err)

	rc, contentType, err := svc.OpenImage(ctx, key)
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	assert.Equal(t, "image/png", contentType)
	assert.Equal(t, pngHeader, data)

	require.NoError(t, svc.Delete(ctx, key))
	// already gone
	require.NoError(t, svc.Delete(ctx, key))

	_, _, err = svc.OpenImage(ctx, key)
	assert.True(t, errs.IsNotFound(err))
}

func TestLocalStorage_List(t *testing.T) {
	root := t.TempDir()
	local, err := NewLocalStorage(root)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, local.Put(ctx, "2024/01/01/a.png", pngHeader, "image/png"))
	require.NoError(t, local.Put(ctx, "2024/01/02/b.png", pngHeader, "image/png"))

	objects, err := local.List(ctx)
	require.NoError(t, err)
	keys := make([]string, 0, len(objects))
	for _, o := range objects {
		keys = append(keys, o.Key)
		assert.False(t, o.Modified.IsZero())
	}
	assert.ElementsMatch(t, []string{"2024/01/01/a.png", "2024/01/02/b.png"}, keys)
}

func TestLocalStorage_RefusesEscape(t *testing.T) {
	root := t.TempDir()
	local, err := NewLocalStorage(root)
	require.NoError(t, err)

	require.NoError(t, local.Put(context.Background(), "../../outside.png", pngHeader, "image/png"))
	_, err = os.Stat(filepath.Join(root, "outside.png"))
	assert.NoError(t, err, "key is clamped below the root")

	_, err = local.Get(context.Background(), "missing.png")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}
