package runtime

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"github.com/pierrec/lz4/v4"

	"spectral-renderer/internal/scenefile"
	"spectral-renderer/internal/sensor"
)

// Checkpoint is the serialised renderer state: the (mesh-inlined) scene
// document, the accumulated sensor, and the global tile counter. Scene and
// mesh BVHs are rebuilt on load.
type Checkpoint struct {
	Doc      scenefile.Document
	Sensor   *sensor.Sensor
	Progress uint64
}

// WriteCheckpoint writes the checkpoint as a 4-byte little-endian
// uncompressed length prefix followed by an LZ4 frame body.
func WriteCheckpoint(ck *Checkpoint, path string) error {
	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(ck); err != nil {
		return fmt.Errorf("checkpoint: encode: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("checkpoint: create %s: %w", path, err)
	}
	defer f.Close()

	var prefix [4]byte
	binary.LittleEndian.PutUint32(prefix[:], uint32(raw.Len()))
	if _, err := f.Write(prefix[:]); err != nil {
		return fmt.Errorf("checkpoint: write %s: %w", path, err)
	}

	zw := lz4.NewWriter(f)
	if _, err := zw.Write(raw.Bytes()); err != nil {
		return fmt.Errorf("checkpoint: compress %s: %w", path, err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("checkpoint: flush %s: %w", path, err)
	}

	return nil
}

// ReadCheckpoint reads a checkpoint written by WriteCheckpoint.
func ReadCheckpoint(path string) (*Checkpoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: open %s: %w", path, err)
	}
	defer f.Close()

	var prefix [4]byte
	if _, err := io.ReadFull(f, prefix[:]); err != nil {
		return nil, fmt.Errorf("checkpoint: length prefix of %s: %w", path, err)
	}
	size := binary.LittleEndian.Uint32(prefix[:])

	raw := make([]byte, size)
	if _, err := io.ReadFull(lz4.NewReader(f), raw); err != nil {
		return nil, fmt.Errorf("checkpoint: decompress %s: %w", path, err)
	}

	var ck Checkpoint
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&ck); err != nil {
		return nil, fmt.Errorf("checkpoint: decode %s: %w", path, err)
	}

	return &ck, nil
}
