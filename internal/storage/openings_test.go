package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadOpeningsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "depth2.bin")

	keys := map[uint64]struct{}{
		0:      {},
		12345:  {},
		999999: {},
	}

	if err := SaveOpenings(path, keys); err != nil {
		t.Fatalf("SaveOpenings: %v", err)
	}

	loaded, err := LoadOpenings(path)
	if err != nil {
		t.Fatalf("LoadOpenings: %v", err)
	}

	if len(loaded) != len(keys) {
		t.Fatalf("len(loaded) = %d, want %d", len(loaded), len(keys))
	}
	for k := range keys {
		if _, ok := loaded[k]; !ok {
			t.Errorf("key %d missing after round trip", k)
		}
	}
}

func TestLoadOpeningsRejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.bin")

	if err := SaveOpenings(path, map[uint64]struct{}{1: {}, 2: {}}); err != nil {
		t.Fatalf("SaveOpenings: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	data[len(data)-1] ^= 0xFF
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := LoadOpenings(path); err == nil {
		t.Fatalf("LoadOpenings on corrupt file: expected an error")
	}
}

func TestLoadOpeningsRejectsWrongMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notanopening.bin")

	if err := os.WriteFile(path, []byte("not a states dump"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := LoadOpenings(path); err == nil {
		t.Fatalf("LoadOpenings on wrong magic: expected an error")
	}
}
