package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// openingsMagic identifies a states dump file, followed by an xxhash64
// checksum of the sorted key payload and the little-endian key count.
var openingsMagic = [4]byte{'K', 'T', 'L', 'N'}

// SaveOpenings writes the given canonical opening keys to path: a 4-byte
// magic, an 8-byte checksum, an 8-byte count, then the keys themselves in
// sorted, little-endian order.
func SaveOpenings(path string, keys map[uint64]struct{}) error {
	sorted := make([]uint64, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	payload := make([]byte, 8*len(sorted))
	for i, k := range sorted {
		binary.LittleEndian.PutUint64(payload[i*8:], k)
	}

	checksum := xxhash.Sum64(payload)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Write(openingsMagic[:]); err != nil {
		return err
	}
	var header [16]byte
	binary.LittleEndian.PutUint64(header[0:8], checksum)
	binary.LittleEndian.PutUint64(header[8:16], uint64(len(sorted)))
	if _, err := f.Write(header[:]); err != nil {
		return err
	}
	_, err = f.Write(payload)
	return err
}

// LoadOpenings reads back a file written by SaveOpenings, verifying the
// checksum before returning the set of keys.
func LoadOpenings(path string) (map[uint64]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var magic [4]byte
	if _, err := io.ReadFull(f, magic[:]); err != nil {
		return nil, fmt.Errorf("openings: reading magic: %w", err)
	}
	if magic != openingsMagic {
		return nil, fmt.Errorf("openings: not a states dump file")
	}

	var header [16]byte
	if _, err := io.ReadFull(f, header[:]); err != nil {
		return nil, fmt.Errorf("openings: reading header: %w", err)
	}
	wantChecksum := binary.LittleEndian.Uint64(header[0:8])
	count := binary.LittleEndian.Uint64(header[8:16])

	payload := make([]byte, 8*count)
	if _, err := io.ReadFull(f, payload); err != nil {
		return nil, fmt.Errorf("openings: reading keys: %w", err)
	}

	if got := xxhash.Sum64(payload); got != wantChecksum {
		return nil, fmt.Errorf("openings: checksum mismatch: got %x want %x", got, wantChecksum)
	}

	keys := make(map[uint64]struct{}, count)
	for i := uint64(0); i < count; i++ {
		keys[binary.LittleEndian.Uint64(payload[i*8:])] = struct{}{}
	}
	return keys, nil
}
