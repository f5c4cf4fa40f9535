package helper

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"mygame_backend/internals/configs"
)

// =======================================================
// 🖼️ Pipeline gambar barang: decode → downscale → WebP
// =======================================================

// DecodeImage membaca jpeg/png/webp dari []byte dengan sniff MIME,
// fallback ke ekstensi nama file.
func DecodeImage(all []byte, filename string) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("file kosong")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	switch {
	case strings.Contains(ct, "jpeg"):
		return jpeg.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "png"):
		return png.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "webp"):
		return webp.Decode(bytes.NewReader(all))
	}

	ext := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(ext, ".jpg"), strings.HasSuffix(ext, ".jpeg"):
		return jpeg.Decode(bytes.NewReader(all))
	case strings.HasSuffix(ext, ".png"):
		return png.Decode(bytes.NewReader(all))
	case strings.HasSuffix(ext, ".webp"):
		return webp.Decode(bytes.NewReader(all))
	}
	return nil, fmt.Errorf("format tidak didukung: %s", ct)
}

// EncodeItemWebP men-downscale (maks 1024px sisi terpanjang, aspek dijaga)
// lalu encode ke WebP lossy.
func EncodeItemWebP(img image.Image, maxDim int, quality float32) ([]byte, error) {
	if maxDim <= 0 {
		maxDim = 1024
	}
	if quality <= 0 {
		quality = 80
	}
	b := img.Bounds()
	if b.Dx() > maxDim || b.Dy() > maxDim {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode webp gagal: %w", err)
	}
	return buf.Bytes(), nil
}

// UploadWebPToStorage mengunggah hasil WebP ke Supabase Storage dan
// mengembalikan URL publiknya. Butuh SUPABASE_URL + service role key.
func UploadWebPToStorage(bucket string, data []byte) (string, error) {
	baseURL := configs.SupabaseURL
	key := configs.SupabaseServiceKey
	if baseURL == "" || key == "" {
		return "", fmt.Errorf("SUPABASE_URL atau SUPABASE_SERVICE_ROLE_KEY belum diset")
	}

	filename := fmt.Sprintf("%s-%s.webp", time.Now().Format("20060102"), uuid.New().String())
	endpoint := fmt.Sprintf("%s/storage/v1/object/%s/%s", strings.TrimRight(baseURL, "/"), bucket, filename)

	req, err := http.NewRequest(http.MethodPut, endpoint, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Content-Type", "image/webp")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload gagal: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload gagal status %d: %s", resp.StatusCode, string(body))
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		strings.TrimRight(baseURL, "/"), bucket, url.PathEscape(filename)), nil
}

// WebPDataURL: embed base64 untuk mode tanpa storage.
func WebPDataURL(data []byte) string {
	return "data:image/webp;base64," + base64.StdEncoding.EncodeToString(data)
}
