package fdt

import (
	"encoding/binary"

	"github.com/embarkos/mem-layout/errors"
)

// Magic is the FDT header magic number, as mandated by the devicetree
// specification.
const Magic = 0xd00dfeed

// headerSize is the fixed size of the FDT header in bytes.
const headerSize = 40

// lastSupportedVersion is the newest devicetree format version this package
// understands.
const lastSupportedVersion = 17

// Header is the flattened devicetree header. All fields are stored
// big-endian in the blob.
type Header struct {
	Magic           uint32
	TotalSize       uint32
	OffDTStruct     uint32
	OffDTStrings    uint32
	OffMemRsvmap    uint32
	Version         uint32
	LastCompVersion uint32
	BootCPUIDPhys   uint32
	SizeDTStrings   uint32
	SizeDTStruct    uint32
}

// ReserveEntry is one memory reservation in the blob's reservation block.
// Startup code must keep these physical ranges untouched.
type ReserveEntry struct {
	Address uint64
	Size    uint64
}

// Blob is a validated view over devicetree bytes. It never copies the data.
type Blob struct {
	header Header
	data   []byte
}

// Parse validates the devicetree header and returns a view over the blob.
func Parse(data []byte) (*Blob, error) {
	if len(data) < headerSize {
		return nil, errors.InvalidData(errors.PhaseParse, "dtb",
			"blob shorter than the devicetree header")
	}

	var h Header
	h.Magic = binary.BigEndian.Uint32(data[0:])
	h.TotalSize = binary.BigEndian.Uint32(data[4:])
	h.OffDTStruct = binary.BigEndian.Uint32(data[8:])
	h.OffDTStrings = binary.BigEndian.Uint32(data[12:])
	h.OffMemRsvmap = binary.BigEndian.Uint32(data[16:])
	h.Version = binary.BigEndian.Uint32(data[20:])
	h.LastCompVersion = binary.BigEndian.Uint32(data[24:])
	h.BootCPUIDPhys = binary.BigEndian.Uint32(data[28:])
	h.SizeDTStrings = binary.BigEndian.Uint32(data[32:])
	h.SizeDTStruct = binary.BigEndian.Uint32(data[36:])

	if h.Magic != Magic {
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidData).
			Region("dtb").
			Detail("bad magic %#x, want %#x", h.Magic, uint32(Magic)).
			Value(h.Magic).
			Build()
	}
	if h.TotalSize < headerSize || int(h.TotalSize) > len(data) {
		return nil, errors.New(errors.PhaseParse, errors.KindInvalidData).
			Region("dtb").
			Detail("total size %d outside blob of %d bytes", h.TotalSize, len(data)).
			Build()
	}
	if h.LastCompVersion > lastSupportedVersion {
		return nil, errors.New(errors.PhaseParse, errors.KindUnsupported).
			Region("dtb").
			Detail("devicetree requires version %d, newest supported is %d",
				h.LastCompVersion, lastSupportedVersion).
			Build()
	}

	return &Blob{header: h, data: data[:h.TotalSize]}, nil
}

// Header returns a copy of the parsed header.
func (b *Blob) Header() Header {
	return b.header
}

// TotalSize returns the blob size in bytes as declared by the header.
func (b *Blob) TotalSize() uint64 {
	return uint64(b.header.TotalSize)
}

// Reservations decodes the memory reservation block, terminated by an
// all-zero entry.
func (b *Blob) Reservations() ([]ReserveEntry, error) {
	off := int(b.header.OffMemRsvmap)
	var entries []ReserveEntry

	for {
		if off+16 > len(b.data) {
			return nil, errors.InvalidData(errors.PhaseParse, "dtb",
				"memory reservation block is not terminated")
		}
		e := ReserveEntry{
			Address: binary.BigEndian.Uint64(b.data[off:]),
			Size:    binary.BigEndian.Uint64(b.data[off+8:]),
		}
		if e.Address == 0 && e.Size == 0 {
			return entries, nil
		}
		entries = append(entries, e)
		off += 16
	}
}
