package shard

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o600))
}

// binaryRecords encodes (timestamp, current, energy) triples as 18-byte records.
func binaryRecords(rows ...[3]uint32) []byte {
	var buf []byte
	for _, r := range rows {
		row := make([]byte, 18)
		row[0] = 0x08
		binary.LittleEndian.PutUint32(row[1:5], r[0])
		binary.LittleEndian.PutUint32(row[8:12], r[1])
		binary.LittleEndian.PutUint32(row[14:18], r[2])
		buf = append(buf, row...)
	}

	return buf
}

const indexHeader = `<?xml version="1.0" encoding="UTF-8"?>
<java version="1.8.0" class="java.beans.XMLDecoder">
 <object class="com.ti.dvt.uia.utils.MultipleBinaryDataFile">
  <void property="files">
`

const indexFooter = `  </void>
 </object>
</java>
`

func indexEntry(name string, length string) string {
	entry := ` <object class="com.ti.dvt.uia.utils.MultipleBinaryDataFile$BinaryDataFile">
  <void property="filename"><string>` + name + `</string></void>
`
	if length != "" {
		entry += `  <void property="length"><long>` + length + `</long></void>
`
	}

	return entry + " </object>\n"
}

// writeBinaryCapture creates root.profxml, its index and one shard file per entry.
func writeBinaryCapture(t *testing.T, dir string, shards map[string][]byte, order []string) string {
	t.Helper()

	root := filepath.Join(dir, "run.profxml")
	writeFile(t, root, []byte(`<?xml version="1.0"?><profile/>`))

	index := indexHeader
	for _, name := range order {
		index += indexEntry(name, "18")
		writeFile(t, filepath.Join(dir, "run", name), shards[name])
	}
	index += indexFooter
	writeFile(t, filepath.Join(dir, "run", IndexFileName), []byte(index))

	return root
}
