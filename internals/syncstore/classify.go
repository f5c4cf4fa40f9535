package syncstore

import (
	"errors"
	"strings"
)

// ErrorKind adalah taksonomi kecil untuk kegagalan operasi remote.
// Klasifikasinya heuristik (substring pesan vendor); yang tidak dikenali
// jatuh ke KindUnknown dan dapat pesan generik.
type ErrorKind string

const (
	KindPermission    ErrorKind = "permission"
	KindMissingSchema ErrorKind = "missing_schema"
	KindAuthConfig    ErrorKind = "auth_config"
	KindNotFound      ErrorKind = "not_found"
	KindUnknown       ErrorKind = "unknown"
)

var permissionFragments = []string{
	"permission denied",
	"row-level security",
	"row level security",
	"violates row-level security",
	"violates row level security",
	"not allowed",
	"insufficient_privilege",
}

var authConfigFragments = []string{
	"invalid api key",
	"no api key",
	"jwt",
	"unauthorized",
	"forbidden",
	"not authorized",
	"password authentication failed",
	"connection refused",
}

var missingSchemaFragments = []string{
	"could not find",
	"does not exist",
	"relation",
	"schema cache",
	"undefined table",
}

// Classify memetakan error remote ke ErrorKind. Urutan cek penting:
// auth/permission dicek sebelum missing-schema supaya tabel yang ada tapi
// diblok RLS tidak salah terdeteksi sebagai "tabel tidak ada".
func Classify(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	if errors.Is(err, ErrNoRowsAffected) {
		return KindNotFound
	}
	m := strings.ToLower(err.Error())
	for _, frag := range permissionFragments {
		if strings.Contains(m, frag) {
			return KindPermission
		}
	}
	for _, frag := range authConfigFragments {
		if strings.Contains(m, frag) {
			return KindAuthConfig
		}
	}
	for _, frag := range missingSchemaFragments {
		if strings.Contains(m, frag) {
			return KindMissingSchema
		}
	}
	return KindUnknown
}

// Hint mengembalikan teks remediasi untuk user sesuai klasifikasi.
// Hanya dipakai untuk pesan; tidak pernah mengubah alur kontrol selain
// keputusan "turun ke fallback atau tidak".
func Hint(kind ErrorKind) string {
	switch kind {
	case KindPermission:
		return "Supabase 權限/RLS 可能未設定完成：請在 Supabase SQL Editor 執行 db/setup_registrations_complete.sql（或對應資料表的 RLS/GRANT 腳本）。"
	case KindMissingSchema:
		return "Supabase 資料表不存在或 schema cache 尚未更新：請先執行建表 SQL，執行完等 30~60 秒再重試。"
	case KindAuthConfig:
		return "Supabase 連線/授權失敗：請確認 SUPABASE_URL / SUPABASE_ANON_KEY 是否正確，且指向同一個 Supabase 專案。"
	case KindNotFound:
		return "操作沒有套用到任何資料：常見原因是 RLS 未允許 UPDATE/DELETE，或該筆資料已不存在。"
	default:
		return "發生未知錯誤，請稍後再試。"
	}
}

// UserMessage menggabungkan hint remediasi dengan pesan error mentah,
// supaya user dapat petunjuk sekaligus detail untuk diagnosis.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return Hint(Classify(err)) + "（原始錯誤：" + err.Error() + "）"
}
