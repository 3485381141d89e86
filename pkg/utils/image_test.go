package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectImage(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n0000")
	ct, ext, ok := DetectImage(png)
	assert.True(t, ok)
	assert.Equal(t, "image/png", ct)
	assert.Equal(t, ".png", ext)

	jpg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}
	_, ext, ok = DetectImage(jpg)
	assert.True(t, ok)
	assert.Equal(t, ".jpg", ext)

	_, _, ok = DetectImage([]byte("just some text"))
	assert.False(t, ok)
}

func TestContentTypeByExt(t *testing.T) {
	assert.Equal(t, "image/png", ContentTypeByExt("uploads/recipes/a.PNG"))
	assert.Equal(t, "application/octet-stream", ContentTypeByExt("a.txt"))
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "uploads/recipes/a.jpg", NormalizePath(`uploads\recipes\a.jpg`))
	assert.Equal(t, "uploads/recipes/a.jpg", NormalizePath("uploads/recipes/a.jpg"))
}
