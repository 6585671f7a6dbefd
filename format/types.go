// Package format defines the small enumerations shared by the energytrace packages.
package format

import "strings"

type (
	CompressionType uint8
	SourceFormat    uint8
	ElementType     uint8
	Channel         uint8
	DecodeMode      uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone stores series bytes as-is.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.
)

const (
	SourceCSV    SourceFormat = 0x1 // SourceCSV is a multi-shard CSV export.
	SourceBinary SourceFormat = 0x2 // SourceBinary is a .profxml root with binary shards.
)

const (
	ElementUint8  ElementType = 0x1
	ElementUint16 ElementType = 0x2
	ElementUint32 ElementType = 0x3
	ElementUint64 ElementType = 0x4
)

const (
	ChannelTimestamp Channel = iota
	ChannelCurrent
	ChannelEnergy
)

// Channels lists every channel in canonical order.
var Channels = [...]Channel{ChannelTimestamp, ChannelCurrent, ChannelEnergy}

const (
	// DecodeLenient applies the sync-byte fallback and tail padding heuristics
	// and reports them as warnings.
	DecodeLenient DecodeMode = iota
	// DecodeStrict rejects shards that would need either heuristic.
	DecodeStrict
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression maps a case-insensitive codec name to its CompressionType.
func ParseCompression(name string) (CompressionType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "none", "":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}

func (s SourceFormat) String() string {
	switch s {
	case SourceCSV:
		return "CSV"
	case SourceBinary:
		return "Binary"
	default:
		return "Unknown"
	}
}

func (e ElementType) String() string {
	switch e {
	case ElementUint8:
		return "uint8"
	case ElementUint16:
		return "uint16"
	case ElementUint32:
		return "uint32"
	case ElementUint64:
		return "uint64"
	default:
		return "Unknown"
	}
}

// Width returns the size of one element in bytes, or 0 for unknown types.
func (e ElementType) Width() int {
	switch e {
	case ElementUint8:
		return 1
	case ElementUint16:
		return 2
	case ElementUint32:
		return 4
	case ElementUint64:
		return 8
	default:
		return 0
	}
}

func (c Channel) String() string {
	switch c {
	case ChannelTimestamp:
		return "timestamp"
	case ChannelCurrent:
		return "current"
	case ChannelEnergy:
		return "energy"
	default:
		return "unknown"
	}
}

// Valid reports whether c names one of the three capture channels.
func (c Channel) Valid() bool {
	return c <= ChannelEnergy
}

// ParseChannel maps a case-insensitive channel name to its Channel.
func ParseChannel(name string) (Channel, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "timestamp", "time":
		return ChannelTimestamp, true
	case "current":
		return ChannelCurrent, true
	case "energy":
		return ChannelEnergy, true
	default:
		return 0, false
	}
}

func (m DecodeMode) String() string {
	switch m {
	case DecodeLenient:
		return "Lenient"
	case DecodeStrict:
		return "Strict"
	default:
		return "Unknown"
	}
}
