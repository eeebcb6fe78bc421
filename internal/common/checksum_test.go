package common

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenericChecksum_Format(t *testing.T) {
	sum := GenericChecksum(ChecksumDate(time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)), "10", "100.5")
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{8}$`), sum)
}

func TestGenericChecksum_Deterministic(t *testing.T) {
	d := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	a := GenericChecksum(ChecksumDate(d), ChecksumNumber(10), ChecksumNumber(100.5))
	b := GenericChecksum(ChecksumDate(d), ChecksumNumber(10), ChecksumNumber(100.5))
	assert.Equal(t, a, b)
}

func TestGenericChecksum_FieldOrderMatters(t *testing.T) {
	a := GenericChecksum("10", "20")
	b := GenericChecksum("20", "10")
	assert.NotEqual(t, a, b)
}

func TestGenericChecksum_TimeOfDayIgnored(t *testing.T) {
	morning := time.Date(2025, 1, 2, 8, 30, 0, 0, time.UTC)
	midnight := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, ChecksumDate(midnight), ChecksumDate(morning))
}

func TestChecksumNumber_ShortestForm(t *testing.T) {
	assert.Equal(t, "10", ChecksumNumber(10))
	assert.Equal(t, "10.5", ChecksumNumber(10.5))
	assert.Equal(t, "0.1", ChecksumNumber(0.1))
}

func TestIsEffectivelyZero(t *testing.T) {
	assert.True(t, IsEffectivelyZero(0))
	assert.True(t, IsEffectivelyZero(1e-7))
	assert.True(t, IsEffectivelyZero(-1e-7))
	assert.False(t, IsEffectivelyZero(1e-5))
	assert.True(t, AreEffectivelyEqual(1.0, 1.0+1e-9))
}
