package properties

import (
	"fmt"
	"strconv"
	"strings"
)

// DataSize is a byte count bound from strings like "512KB" or "10MB".
// A bare number is interpreted as bytes.
type DataSize int64

const (
	Byte     DataSize = 1
	Kilobyte          = 1024 * Byte
	Megabyte          = 1024 * Kilobyte
	Gigabyte          = 1024 * Megabyte
)

// ParseDataSize parses a data-size string. Supported suffixes are B, KB, MB,
// and GB (case-insensitive). Negative sizes are rejected.
func ParseDataSize(s string) (DataSize, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("wireup: empty data size")
	}

	unit := Byte
	upper := strings.ToUpper(trimmed)
	switch {
	case strings.HasSuffix(upper, "GB"):
		unit = Gigabyte
		trimmed = trimmed[:len(trimmed)-2]
	case strings.HasSuffix(upper, "MB"):
		unit = Megabyte
		trimmed = trimmed[:len(trimmed)-2]
	case strings.HasSuffix(upper, "KB"):
		unit = Kilobyte
		trimmed = trimmed[:len(trimmed)-2]
	case strings.HasSuffix(upper, "B"):
		trimmed = trimmed[:len(trimmed)-1]
	}

	n, err := strconv.ParseInt(strings.TrimSpace(trimmed), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("wireup: invalid data size %q: %w", s, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("wireup: data size cannot be negative: %q", s)
	}
	return DataSize(n) * unit, nil
}

// Bytes returns the size as a plain byte count.
func (d DataSize) Bytes() int64 { return int64(d) }

func (d DataSize) String() string {
	switch {
	case d >= Gigabyte && d%Gigabyte == 0:
		return strconv.FormatInt(int64(d/Gigabyte), 10) + "GB"
	case d >= Megabyte && d%Megabyte == 0:
		return strconv.FormatInt(int64(d/Megabyte), 10) + "MB"
	case d >= Kilobyte && d%Kilobyte == 0:
		return strconv.FormatInt(int64(d/Kilobyte), 10) + "KB"
	default:
		return strconv.FormatInt(int64(d), 10) + "B"
	}
}

// UnmarshalText lets DataSize participate in text-based config binding.
func (d *DataSize) UnmarshalText(text []byte) error {
	parsed, err := ParseDataSize(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText renders the size back to its canonical string form.
func (d DataSize) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
