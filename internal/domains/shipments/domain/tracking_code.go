package domain

import (
	"crypto/rand"
	"math/big"
)

const (
	// TrackingCodePrefix marks every tracking code issued by the courier.
	TrackingCodePrefix = "CS"
	trackingCodeSuffix = 7
	trackingAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateTrackingCode returns a fresh code of the form CS + 7 alphanumerics.
func GenerateTrackingCode() (string, error) {
	buf := make([]byte, 0, len(TrackingCodePrefix)+trackingCodeSuffix)
	buf = append(buf, TrackingCodePrefix...)
	limit := big.NewInt(int64(len(trackingAlphabet)))
	for i := 0; i < trackingCodeSuffix; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		buf = append(buf, trackingAlphabet[n.Int64()])
	}
	return string(buf), nil
}

// IsTrackingCode reports whether code has the issued format.
func IsTrackingCode(code string) bool {
	if len(code) != len(TrackingCodePrefix)+trackingCodeSuffix || code[:2] != TrackingCodePrefix {
		return false
	}
	for _, r := range code[2:] {
		if !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
