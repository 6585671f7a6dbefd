// Package endian provides the byte-order engines used to read shard records and
// serialize sample series.
//
// EnergyTrace binary shards are little-endian; series payloads held by the
// series package default to little-endian too, but record their byte order so
// a payload is always reinterpreted the way it was written.
//
// # Basic Usage
//
//	engine := endian.GetLittleEndianEngine()
//	ts := engine.Uint32(row[1:5])
//	buf = engine.AppendUint32(buf, ts)
//
// # Thread Safety
//
// The returned EndianEngine instances are immutable and stateless.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface.
//
// It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// IsLittleEndian reports whether engine writes the least significant byte first.
func IsLittleEndian(engine EndianEngine) bool {
	var buf [2]byte
	engine.PutUint16(buf[:], 0x0102)

	return buf[0] == 0x02
}

// Name returns "little" or "big" for logging.
func Name(engine EndianEngine) string {
	if IsLittleEndian(engine) {
		return "little"
	}

	return "big"
}
