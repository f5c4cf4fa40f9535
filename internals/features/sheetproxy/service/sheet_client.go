package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/bytedance/sonic"
)

// jsonpArrayRe menangkap array top-level pertama dari respons bergaya
// callback([...]) yang kadang dikembalikan Apps Script.
var jsonpArrayRe = regexp.MustCompile(`\[[\s\S]*\]`)

// ParseMaybeJSONP menoleransi respons Apps Script: JSON murni (array atau
// {data:[...]}), bungkus JSONP, atau sampah. Tidak pernah mengembalikan
// error parse; kalau semua gagal hasilnya array kosong.
func ParseMaybeJSONP(text []byte) interface{} {
	var parsed interface{}
	if err := sonic.Unmarshal(text, &parsed); err == nil {
		if arr, ok := parsed.([]interface{}); ok {
			return arr
		}
		if obj, ok := parsed.(map[string]interface{}); ok {
			if arr, ok := obj["data"].([]interface{}); ok {
				return arr
			}
		}
		if parsed != nil {
			return parsed
		}
	}

	if m := jsonpArrayRe.Find(text); m != nil {
		var arr interface{}
		if err := sonic.Unmarshal(m, &arr); err == nil {
			return arr
		}
	}

	return []interface{}{}
}

// Client: pemanggil endpoint Apps Script (sheet pendaftaran + sheet toko).
type Client struct {
	SheetURL string
	ShopURL  string
	HTTP     *http.Client
}

func NewClient(sheetURL, shopURL string) *Client {
	return &Client{
		SheetURL: sheetURL,
		ShopURL:  shopURL,
		HTTP:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch mengambil isi endpoint dan mengembalikan body mentah.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// PostJSON meneruskan payload JSON dan mengembalikan body respons mentah.
func (c *Client) PostJSON(ctx context.Context, url string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// ForwardRegistration meneruskan satu pendaftaran mode fallback ke sheet.
// Best-effort: kegagalan hanya dicatat, tidak menggagalkan pendaftarannya.
func (c *Client) ForwardRegistration(row interface{}) error {
	if c.SheetURL == "" {
		return nil
	}
	payload, err := sonic.Marshal(row)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := c.PostJSON(ctx, c.SheetURL, payload); err != nil {
		return fmt.Errorf("forward ke sheet gagal: %w", err)
	}
	return nil
}
