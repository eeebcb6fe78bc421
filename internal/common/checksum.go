package common

import (
	"fmt"
	"hash/crc32"
	"strconv"
	"strings"
	"time"
)

// GenericChecksum derives the 8-character lowercase hex content checksum of
// an operation from its significant fields. The checksum is a pure function
// of its inputs and serves as a ledger deduplication key, not a
// cryptographic integrity check.
func GenericChecksum(fields ...string) string {
	joined := strings.Join(fields, ":")
	return fmt.Sprintf("%08x", crc32.ChecksumIEEE([]byte(joined)))
}

// ChecksumDate renders a timestamp in the canonical form hashed into
// checksums: the normalized date as a full ISO UTC instant.
func ChecksumDate(t time.Time) string {
	return NormalizeDate(t).Format(checksumDateFormat)
}

// ChecksumNumber renders a float in the canonical form hashed into
// checksums: shortest decimal representation, no trailing zeros.
func ChecksumNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
