// Binary encoding for cache entries.
//
// Entry format (little-endian):
//
//	storedAt: int64  (unix nanoseconds)
//	payload:  remaining bytes, stored verbatim
package bbolt

import (
	"encoding/binary"
	"fmt"
	"time"
)

// headerSize is the byte size of the timestamp prefix.
const headerSize = 8

// encodeEntry prefixes data with the store time in a single allocation.
func encodeEntry(at time.Time, data []byte) []byte {
	buf := make([]byte, headerSize+len(data))
	binary.LittleEndian.PutUint64(buf, uint64(at.UnixNano()))
	copy(buf[headerSize:], data)
	return buf
}

// decodeEntry splits an entry into its store time and payload.
// The payload aliases raw.
func decodeEntry(raw []byte) (time.Time, []byte, error) {
	if len(raw) < headerSize {
		return time.Time{}, nil, fmt.Errorf("entry too short: %d bytes", len(raw))
	}
	at := time.Unix(0, int64(binary.LittleEndian.Uint64(raw)))
	return at, raw[headerSize:], nil
}
