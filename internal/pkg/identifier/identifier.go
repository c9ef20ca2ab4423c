package identifier

import (
	"crypto/rand"
	"time"
)

const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// New returns "<prefix>-XXXXXXX" where X is drawn from [A-Z0-9]. Business
// IDs are generated client-side so a record is addressable before the store
// confirms the write.
func New(prefix string) string {
	buf := make([]byte, 7)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; derive the
		// suffix from the clock so consecutive calls still differ.
		return prefix + "-" + clockSuffix(time.Now().UnixNano())
	}
	for i, b := range buf {
		buf[i] = charset[int(b)%len(charset)]
	}
	return prefix + "-" + string(buf)
}

// clockSuffix encodes a nanosecond timestamp as 7 charset digits,
// most-significant first.
func clockSuffix(nanos int64) string {
	buf := make([]byte, 7)
	n := uint64(nanos)
	for i := len(buf) - 1; i >= 0; i-- {
		buf[i] = charset[n%uint64(len(charset))]
		n /= uint64(len(charset))
	}
	return string(buf)
}
