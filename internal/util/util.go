package util

import (
	"time"

	"github.com/valyala/fastrand"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateCode returns a human-shareable join code of n uppercase
// alphanumeric characters. Uniqueness is the caller's concern.
func GenerateCode(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = codeCharset[fastrand.Uint32n(uint32(len(codeCharset)))]
	}
	return string(buf)
}

func Sleep(t time.Duration) {
	timer := time.NewTimer(t)
	defer timer.Stop()
	<-timer.C
}
