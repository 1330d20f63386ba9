package content

import (
	"github.com/embarkos/mem-layout/fdt"
)

// RawImage sizes regions from in-memory byte blobs keyed by region name.
type RawImage map[string][]byte

// Size implements memlayout.Sizer.
func (m RawImage) Size(region string) (uint64, bool, error) {
	data, ok := m[region]
	if !ok {
		return 0, false, nil
	}
	return uint64(len(data)), true, nil
}

// FDTBlob sizes a single region from a validated devicetree blob. The size
// is the header's declared total size, not the byte count handed in, so a
// padded blob file does not inflate the region.
type FDTBlob struct {
	region string
	size   uint64
}

// NewFDTBlob validates data as a flattened devicetree and binds it to the
// named region.
func NewFDTBlob(region string, data []byte) (*FDTBlob, error) {
	blob, err := fdt.Parse(data)
	if err != nil {
		return nil, err
	}
	return &FDTBlob{region: region, size: blob.TotalSize()}, nil
}

// Size implements memlayout.Sizer.
func (f *FDTBlob) Size(region string) (uint64, bool, error) {
	if region != f.region {
		return 0, false, nil
	}
	return f.size, true, nil
}
