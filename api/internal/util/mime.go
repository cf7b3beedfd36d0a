package util

import (
	"encoding/base64"
	"mime"
	"net/http"
	"strings"
)

// SniffImageMIME recognises the two formats the uploader accepts by magic bytes.
func SniffImageMIME(b []byte) string {
	// JPEG: FF D8
	if len(b) >= 2 && b[0] == 0xFF && b[1] == 0xD8 {
		return "image/jpeg"
	}
	// PNG: 89 50 4E 47 0D 0A 1A 0A
	if len(b) >= 8 &&
		b[0] == 0x89 && b[1] == 0x50 && b[2] == 0x4E && b[3] == 0x47 &&
		b[4] == 0x0D && b[5] == 0x0A && b[6] == 0x1A && b[7] == 0x0A {
		return "image/png"
	}
	return ""
}

// NormalizeMIME lowercases a content type, drops parameters and maps the
// non-standard "image/jpg" alias.
func NormalizeMIME(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(s); err == nil {
		s = mt
	}
	s = strings.ToLower(s)
	if s == "image/jpg" || s == "image/pjpeg" {
		return "image/jpeg"
	}
	return s
}

// DecodeBase64MaybeDataURL декодирует base64. Если это data:URI, вернёт MIME из префикса.
func DecodeBase64MaybeDataURL(s string) ([]byte, string, error) {
	s = strings.TrimSpace(s)
	var hint string
	if strings.HasPrefix(strings.ToLower(s), "data:") {
		// data:<mime>;base64,<payload>
		if idx := strings.IndexByte(s, ','); idx > 0 {
			meta := s[len("data:"):idx]
			if semi := strings.IndexByte(meta, ';'); semi >= 0 {
				hint = meta[:semi]
			} else {
				hint = meta
			}
			s = s[idx+1:]
		}
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return b, NormalizeMIME(hint), nil
	}
	// URL-safe вариант
	if b2, err2 := base64.URLEncoding.DecodeString(s); err2 == nil {
		return b2, NormalizeMIME(hint), nil
	}
	return nil, "", err
}

// PickMIME берём явный MIME, затем из data:URI, иначе детектим по байтам.
func PickMIME(explicit, hint string, data []byte) string {
	if exp := NormalizeMIME(explicit); exp != "" && exp != "application/octet-stream" {
		return exp
	}
	if h := NormalizeMIME(hint); h != "" {
		return h
	}
	if s := SniffImageMIME(data); s != "" {
		return s
	}
	if len(data) > 0 {
		return NormalizeMIME(http.DetectContentType(data))
	}
	return ""
}
