package content

import (
	"io"

	"github.com/marcinbor85/gohex"

	"github.com/embarkos/mem-layout/errors"
)

// HexImage sizes a single region from a pre-built firmware object in Intel
// HEX format. The region extent is the span from the lowest to the highest
// byte the file populates, so gaps between data segments stay part of the
// region.
type HexImage struct {
	region string
	size   uint64
}

// NewHexImage parses an Intel HEX stream and binds its content span to the
// named region. A file with no data records is valid and yields size zero.
func NewHexImage(region string, r io.Reader) (*HexImage, error) {
	mem := gohex.NewMemory()
	if err := mem.ParseIntelHex(r); err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidData, err,
			"intel hex object for region "+region)
	}

	segments := mem.GetDataSegments()
	if len(segments) == 0 {
		return &HexImage{region: region}, nil
	}

	lo := uint64(segments[0].Address)
	hi := lo
	for _, seg := range segments {
		start := uint64(seg.Address)
		end := start + uint64(len(seg.Data))
		if start < lo {
			lo = start
		}
		if end > hi {
			hi = end
		}
	}

	return &HexImage{region: region, size: hi - lo}, nil
}

// Size implements memlayout.Sizer.
func (h *HexImage) Size(region string) (uint64, bool, error) {
	if region != h.region {
		return 0, false, nil
	}
	return h.size, true, nil
}
