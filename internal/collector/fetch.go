package collector

import (
	"time"
	"unicode/utf8"
)

const (
	// 模擬瀏覽器 UA，避免被源站返回降級頁面
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"

	fetchTimeout     = 20 * time.Second
	maxResponseBytes = 8 << 20 // 8MB
)

// decodeUTF8Lossy 按 UTF-8 盡力解碼，直接丟棄非法字節序列。
// 源站偶爾混入非 UTF-8 字節，不能因此放棄整個頁面。
func decodeUTF8Lossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}

	out := make([]byte, 0, len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			b = b[1:]
			continue
		}
		out = append(out, b[:size]...)
		b = b[size:]
	}
	return string(out)
}
