package decode

import (
	"bytes"

	"github.com/ArthurRichard/energytrace/endian"
	"github.com/ArthurRichard/energytrace/format"
	errs "github.com/ArthurRichard/energytrace/internal/errors"
)

const (
	// SyncByte marks the first byte of a record.
	SyncByte = 0x08
	// RecordSize is the fixed width of one binary record in bytes.
	RecordSize = 18
)

// Record layout. Bytes outside these ranges are reserved.
const (
	timestampOffset = 1  // [1,5)
	currentOffset   = 8  // [8,12)
	energyOffset    = 14 // [14,18)
)

// DecodeBinary decodes one raw binary shard.
//
// Decoding starts at the first SyncByte. Without one, lenient mode decodes
// from offset 0 and reports WarnAmbiguousSync; strict mode fails. A trailing
// partial record is completed by repeating the last byte of the buffer and
// reported as WarnPaddedTail in lenient mode; strict mode fails. Fewer than
// RecordSize bytes after the sync offset yield empty Samples.
//
// buf is never modified and may be reused once DecodeBinary returns.
func DecodeBinary(buf []byte, mode format.DecodeMode) (Samples, error) {
	if len(buf) == 0 {
		return Samples{}, nil
	}

	var warnings []Warning

	offset := bytes.IndexByte(buf, SyncByte)
	if offset < 0 {
		if mode == format.DecodeStrict {
			return Samples{}, errs.Formatf("no sync byte 0x%02x in %d bytes", SyncByte, len(buf))
		}
		offset = 0
		warnings = append(warnings, Warning{
			Kind:   WarnAmbiguousSync,
			Shard:  -1,
			Detail: "no sync byte found, decoding from offset 0",
		})
	}

	body := buf[offset:]
	if len(body) < RecordSize {
		return Samples{Warnings: warnings}, nil
	}

	full := len(body) / RecordSize
	rows := full
	var tail []byte

	if rem := len(body) % RecordSize; rem != 0 {
		pad := RecordSize - rem
		if mode == format.DecodeStrict {
			return Samples{}, errs.Formatf("%d trailing bytes do not fill a %d-byte record", rem, RecordSize)
		}
		tail = PadTail(body[full*RecordSize:], RecordSize)
		rows++
		warnings = append(warnings, Warning{
			Kind:   WarnPaddedTail,
			Shard:  -1,
			Bytes:  pad,
			Detail: "last record padded by repeating the final byte",
		})
	}

	s := makeSamples(rows)
	engine := endian.GetLittleEndianEngine()

	for i := range full {
		decodeRecord(engine, body[i*RecordSize:(i+1)*RecordSize], &s, i)
	}
	if tail != nil {
		decodeRecord(engine, tail, &s, full)
	}
	s.Warnings = warnings

	return s, nil
}

func decodeRecord(engine endian.EndianEngine, row []byte, s *Samples, i int) {
	_ = row[RecordSize-1]
	s.Timestamp[i] = engine.Uint32(row[timestampOffset : timestampOffset+4])
	s.Current[i] = engine.Uint32(row[currentOffset : currentOffset+4])
	s.Energy[i] = engine.Uint32(row[energyOffset : energyOffset+4])
}

// PadTail returns a copy of b extended to size bytes by repeating its last byte.
// b must be non-empty and no longer than size.
func PadTail(b []byte, size int) []byte {
	out := make([]byte, size)
	n := copy(out, b)
	last := b[len(b)-1]
	for i := n; i < size; i++ {
		out[i] = last
	}

	return out
}
