package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_RenderPNG(t *testing.T) {
	r := NewRenderer(0)

	out, err := r.RenderPNG("http://localhost:5173/ticket/0b9f6c1e-8d5e-4d7e-9a57-3c1f0b2a6d11")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, defaultSize, img.Bounds().Dx())
}

func TestRenderer_EmptyContent(t *testing.T) {
	_, err := NewRenderer(128).RenderPNG("")
	assert.Error(t, err)
}
