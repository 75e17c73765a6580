// Package saveformat implements the save_binary/load_binary wire format
// (§6): a fixed magic+version+flags+checksum header wrapping an msgpack
// payload, optionally gzip-compressed, directly grounded on the teacher's
// pkg/persistence/codec.go envelope around its own msgpack-encoded
// Matrix records.
package saveformat

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/somalattice/lattice/pkg/lattice"
	"github.com/somalattice/lattice/pkg/latticeerr"
	"github.com/somalattice/lattice/pkg/params"
)

// MagicBytes identifies a lattice save file, the way the teacher's codec
// tags its files with "NRDB".
var MagicBytes = [4]byte{'L', 'T', 'C', 'E'}

// FormatVersion is bumped whenever Header or payload shape changes
// incompatibly.
const FormatVersion uint16 = 1

// FlagCompressed marks a gzip-compressed payload.
const FlagCompressed uint16 = 1 << 0

// Header is the fixed-size file preamble: world footprint, cycle count,
// and seed, ahead of the variable-length checksummed payload.
type Header struct {
	Magic      [4]byte
	Version    uint16
	Flags      uint16
	SizeX      int32
	SizeY      int32
	SizeZ      int32
	Cycle      uint64
	Seed       uint32
	PayloadLen uint64
	Checksum   uint32
}

const headerSize = 4 + 2 + 2 + 4 + 4 + 4 + 8 + 4 + 8 + 4

type chunkRecord struct {
	CX    int32                           `msgpack:"cx"`
	CY    int32                           `msgpack:"cy"`
	CZ    int32                           `msgpack:"cz"`
	Cells [lattice.ChunkVolume]cellRecord `msgpack:"cells"`
}

// cellRecord mirrors cell.Cell's msgpack shape; saveformat keeps its own
// copy so a cell field addition doesn't silently change the wire format
// without a version bump being considered at this boundary.
type cellRecord = struct {
	Type  uint8      `msgpack:"type"`
	R     float64    `msgpack:"r"`
	Sc    float64    `msgpack:"sc"`
	E     float64    `msgpack:"e"`
	D     float64    `msgpack:"d"`
	C     float64    `msgpack:"c"`
	L     float64    `msgpack:"l"`
	M     float64    `msgpack:"m"`
	A     uint32     `msgpack:"a"`
	P     float64    `msgpack:"p"`
	Ref   uint32     `msgpack:"ref"`
	ECost float64    `msgpack:"e_cost"`
	H     uint32     `msgpack:"h"`
	G     float64    `msgpack:"g"`
	W     [27]float64 `msgpack:"w"`
	Alive bool        `msgpack:"alive"`
}

type payload struct {
	Params params.Parameters `msgpack:"params"`
	Chunks []chunkRecord     `msgpack:"chunks"`
}

// Encode serialises a world and its cycle metadata into the save-file
// wire format.
func Encode(sizeX, sizeY, sizeZ int32, cycle uint64, seed uint32, p params.Parameters, world *lattice.World, compress bool) ([]byte, error) {
	pl := payload{Params: p}
	world.ForEachChunk(func(coord lattice.Coord, ch *lattice.Chunk) {
		rec := chunkRecord{CX: coord.X, CY: coord.Y, CZ: coord.Z}
		for i, c := range ch.Cells {
			rec.Cells[i] = toCellRecord(c)
		}
		pl.Chunks = append(pl.Chunks, rec)
	})

	body, err := msgpack.Marshal(&pl)
	if err != nil {
		return nil, fmt.Errorf("saveformat: marshal payload: %w", err)
	}

	flags := uint16(0)
	if compress {
		flags |= FlagCompressed
		body, err = compressBytes(body)
		if err != nil {
			return nil, fmt.Errorf("saveformat: compress payload: %w", err)
		}
	}

	hdr := Header{
		Magic: MagicBytes, Version: FormatVersion, Flags: flags,
		SizeX: sizeX, SizeY: sizeY, SizeZ: sizeZ,
		Cycle: cycle, Seed: seed,
		PayloadLen: uint64(len(body)),
		Checksum:   checksum(body),
	}

	var buf bytes.Buffer
	if err := writeHeader(&buf, &hdr); err != nil {
		return nil, err
	}
	buf.Write(body)
	return buf.Bytes(), nil
}

// Decode parses a save-file byte stream back into its header fields, the
// parameter block, and a fresh World.
func Decode(raw []byte) (Header, params.Parameters, *lattice.World, error) {
	var hdr Header
	r := bytes.NewReader(raw)
	if err := readHeader(r, &hdr); err != nil {
		return hdr, params.Parameters{}, nil, err
	}
	if hdr.Magic != MagicBytes {
		return hdr, params.Parameters{}, nil, fmt.Errorf("saveformat: %w", latticeerr.ErrSaveHeaderCorrupt)
	}
	if hdr.Version != FormatVersion {
		return hdr, params.Parameters{}, nil, fmt.Errorf("saveformat: version %d: %w", hdr.Version, latticeerr.ErrSaveVersionMismatch)
	}

	body := make([]byte, hdr.PayloadLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return hdr, params.Parameters{}, nil, fmt.Errorf("saveformat: read payload: %w", err)
	}
	if checksum(body) != hdr.Checksum {
		return hdr, params.Parameters{}, nil, fmt.Errorf("saveformat: %w", latticeerr.ErrSaveChecksumMismatch)
	}

	if hdr.Flags&FlagCompressed != 0 {
		var err error
		body, err = decompressBytes(body)
		if err != nil {
			return hdr, params.Parameters{}, nil, fmt.Errorf("saveformat: decompress payload: %w", err)
		}
	}

	var pl payload
	if err := msgpack.Unmarshal(body, &pl); err != nil {
		return hdr, params.Parameters{}, nil, fmt.Errorf("saveformat: unmarshal payload: %w", err)
	}

	world := lattice.NewWorld()
	for _, rec := range pl.Chunks {
		coord := lattice.Coord{X: rec.CX, Y: rec.CY, Z: rec.CZ}
		ch, err := world.GetOrCreateChunk(coord)
		if err != nil {
			return hdr, params.Parameters{}, nil, fmt.Errorf("saveformat: %w", err)
		}
		for i, cr := range rec.Cells {
			ch.Cells[i] = fromCellRecord(cr)
		}
	}

	return hdr, pl.Params, world, nil
}

// ValidateFile checks the header and checksum of a save file without
// fully decoding the payload, for a host to call before load_binary
// (§6 SUPPLEMENTED "Persistence durability knobs").
func ValidateFile(raw []byte) error {
	var hdr Header
	r := bytes.NewReader(raw)
	if err := readHeader(r, &hdr); err != nil {
		return err
	}
	if hdr.Magic != MagicBytes {
		return fmt.Errorf("saveformat: %w", latticeerr.ErrSaveHeaderCorrupt)
	}
	if hdr.Version != FormatVersion {
		return fmt.Errorf("saveformat: version %d: %w", hdr.Version, latticeerr.ErrSaveVersionMismatch)
	}
	body := make([]byte, hdr.PayloadLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return fmt.Errorf("saveformat: read payload: %w", err)
	}
	if checksum(body) != hdr.Checksum {
		return fmt.Errorf("saveformat: %w", latticeerr.ErrSaveChecksumMismatch)
	}
	return nil
}

func writeHeader(w io.Writer, hdr *Header) error {
	fields := []any{
		hdr.Magic, hdr.Version, hdr.Flags,
		hdr.SizeX, hdr.SizeY, hdr.SizeZ,
		hdr.Cycle, hdr.Seed, hdr.PayloadLen, hdr.Checksum,
	}
	for _, f := range fields {
		if err := binary.Write(w, binary.BigEndian, f); err != nil {
			return fmt.Errorf("saveformat: write header: %w", err)
		}
	}
	return nil
}

func readHeader(r io.Reader, hdr *Header) error {
	fields := []any{
		&hdr.Magic, &hdr.Version, &hdr.Flags,
		&hdr.SizeX, &hdr.SizeY, &hdr.SizeZ,
		&hdr.Cycle, &hdr.Seed, &hdr.PayloadLen, &hdr.Checksum,
	}
	for _, f := range fields {
		if err := binary.Read(r, binary.BigEndian, f); err != nil {
			return fmt.Errorf("saveformat: %w", latticeerr.ErrSaveHeaderCorrupt)
		}
	}
	return nil
}

// checksum is the teacher's rolling polynomial sum (persistence.Codec's
// checksum), applied to the (possibly compressed) payload bytes.
func checksum(data []byte) uint32 {
	var sum uint32
	for _, b := range data {
		sum = sum*31 + uint32(b)
	}
	return sum
}

func compressBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(data); err != nil {
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompressBytes(data []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer gr.Close()
	return io.ReadAll(gr)
}
