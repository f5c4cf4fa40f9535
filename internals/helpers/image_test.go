package helper

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestDecodeImagePNG(t *testing.T) {
	img, err := DecodeImage(pngBytes(t, 8, 8), "foto.png")
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
}

func TestDecodeImageRejectsGarbage(t *testing.T) {
	_, err := DecodeImage([]byte("bukan gambar"), "file.txt")
	assert.Error(t, err)

	_, err = DecodeImage(nil, "kosong.png")
	assert.Error(t, err)
}

func TestEncodeItemWebPDownscales(t *testing.T) {
	img, err := DecodeImage(pngBytes(t, 2048, 512), "lebar.png")
	require.NoError(t, err)

	encoded, err := EncodeItemWebP(img, 1024, 80)
	require.NoError(t, err)
	// Kontainer WebP = RIFF....WEBP.
	assert.Equal(t, "RIFF", string(encoded[:4]))
	assert.Equal(t, "WEBP", string(encoded[8:12]))

	decoded, err := DecodeImage(encoded, "hasil.webp")
	require.NoError(t, err)
	assert.Equal(t, 1024, decoded.Bounds().Dx())
	assert.Equal(t, 256, decoded.Bounds().Dy())
}

func TestWebPDataURL(t *testing.T) {
	url := WebPDataURL([]byte{1, 2, 3})
	assert.True(t, strings.HasPrefix(url, "data:image/webp;base64,"))
}
