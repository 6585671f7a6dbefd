package shard

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ArthurRichard/energytrace/format"
	errs "github.com/ArthurRichard/energytrace/internal/errors"
)

const (
	// BinaryFileClass is the class attribute of index elements describing one binary shard.
	BinaryFileClass = "com.ti.dvt.uia.utils.MultipleBinaryDataFile$BinaryDataFile"
	// IndexFileName is the companion index file inside the capture directory.
	IndexFileName = "ETData.xml"

	csvExt     = ".csv"
	profxmlExt = ".profxml"
)

// DetectFormat picks CSV for paths ending in .csv and binary for everything else.
func DetectFormat(path string) format.SourceFormat {
	if strings.EqualFold(filepath.Ext(path), csvExt) {
		return format.SourceCSV
	}

	return format.SourceBinary
}

// Discover enumerates the shards of the capture at path.
func Discover(path string) ([]Descriptor, error) {
	if DetectFormat(path) == format.SourceCSV {
		return DiscoverCSV(path)
	}

	return DiscoverBinary(path)
}

// DiscoverCSV returns base followed by base_0.csv, base_1.csv, ... up to the
// first missing index.
func DiscoverCSV(base string) ([]Descriptor, error) {
	ext := filepath.Ext(base)
	if !strings.EqualFold(ext, csvExt) {
		return nil, errs.Formatf("%s: not a .csv path", base)
	}

	if err := requireFile(base); err != nil {
		return nil, err
	}

	descs := []Descriptor{{Index: 0, Path: base, Format: format.SourceCSV}}
	stem := strings.TrimSuffix(base, ext)

	for i := 0; ; i++ {
		next := fmt.Sprintf("%s_%d%s", stem, i, ext)
		_, err := os.Stat(next)
		if errors.Is(err, fs.ErrNotExist) {
			break
		}
		if err != nil {
			return nil, errs.WrapIO(next, err)
		}
		descs = append(descs, Descriptor{Index: len(descs), Path: next, Format: format.SourceCSV})
	}

	return descs, nil
}

// IndexPath returns the companion index location for a binary capture root:
// "<root without .profxml>/ETData.xml".
func IndexPath(root string) string {
	stem := root
	if ext := filepath.Ext(root); strings.EqualFold(ext, profxmlExt) {
		stem = strings.TrimSuffix(root, ext)
	}

	return filepath.Join(stem, IndexFileName)
}

// DiscoverBinary reads the companion index of root and returns its binary
// shards in document order.
func DiscoverBinary(root string) ([]Descriptor, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, errs.WrapIO(root, err)
	}

	indexPath := IndexPath(root)
	f, err := os.Open(indexPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.MissingCompanion(indexPath, err)
	}
	if err != nil {
		return nil, errs.WrapIO(indexPath, err)
	}
	defer f.Close()

	tree, err := ParseIndex(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", indexPath, err)
	}

	return BinaryShards(tree, filepath.Dir(indexPath))
}

// BinaryShards walks an index tree and returns one descriptor per binary
// shard element, resolving file names against dir.
func BinaryShards(tree Node, dir string) ([]Descriptor, error) {
	var (
		descs []Descriptor
		err   error
	)

	Walk(tree, func(n Node) {
		if err != nil {
			return
		}
		if class, _ := n.Attr("class"); class != BinaryFileClass {
			return
		}

		var d Descriptor
		d, err = binaryShard(n, dir)
		d.Index = len(descs)
		descs = append(descs, d)
	})
	if err != nil {
		return nil, err
	}

	return descs, nil
}

func binaryShard(n Node, dir string) (Descriptor, error) {
	var (
		name, length       string
		hasName, hasLength bool
	)

	Walk(n, func(c Node) {
		prop, ok := c.Attr("property")
		if !ok {
			return
		}
		switch {
		case prop == "filename" && !hasName:
			name, hasName = propertyValue(c)
		case prop == "length" && !hasLength:
			length, hasLength = propertyValue(c)
		}
	})

	if !hasName || name == "" {
		return Descriptor{}, errs.Formatf("index: binary shard element without filename")
	}

	d := Descriptor{Format: format.SourceBinary, Path: name}
	if !filepath.IsAbs(name) {
		d.Path = filepath.Join(dir, name)
	}

	if hasLength {
		v, err := strconv.ParseInt(length, 10, 64)
		if err != nil || v < 0 {
			return Descriptor{}, errs.Formatf("index: shard %q: invalid length %q", name, length)
		}
		d.LengthHint = v
		d.HasLengthHint = true
	}

	return d, nil
}

// propertyValue returns the trimmed text of the first child of a property element.
func propertyValue(n Node) (string, bool) {
	kids := n.Children()
	if len(kids) == 0 {
		return "", false
	}

	return strings.TrimSpace(kids[0].Text()), true
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errs.WrapIO(path, err)
	}
	if info.IsDir() {
		return errs.WrapIO(path, errors.New("is a directory"))
	}

	return nil
}
