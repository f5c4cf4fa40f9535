package helper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var mdPattern = regexp.MustCompile(`^(\d{1,2})\s*/\s*(\d{1,2})$`)

// Format tanggal yang diterima dari sheet/ISO string.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// NormalizeDateKey menormalkan tanggal ke bentuk kunci "M/D" tanpa leading zero.
// Kunci ini dipakai sebagai join key antara event_dates dan registrasi.
// Idempoten: NormalizeDateKey(NormalizeDateKey(s)) == NormalizeDateKey(s).
// Input yang tidak dikenali dikembalikan apa adanya (setelah trim).
func NormalizeDateKey(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if m := mdPattern.FindStringSubmatch(s); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%d/%d", month, day)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
		}
	}
	return s
}
