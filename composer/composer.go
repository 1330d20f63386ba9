package composer

import (
	"go.uber.org/zap"

	memlayout "github.com/embarkos/mem-layout"
	"github.com/embarkos/mem-layout/errors"
	"github.com/embarkos/mem-layout/internal/align"
	"github.com/embarkos/mem-layout/region"
	"github.com/embarkos/mem-layout/symtab"
)

// Placed is one region with its resolved extent.
type Placed struct {
	Region region.Region

	// Start is the inclusive start address, a multiple of Region.Align.
	Start uint64

	// End is the exclusive end address, padded up to Region.EndAlign when
	// one is declared. End - Start is the region extent.
	End uint64

	// SizeResolved reports whether the extent is final. Content-backed
	// regions with no sizer are placed as zero-length slots; their real
	// extent is fixed by the toolchain's linking stage.
	SizeResolved bool
}

// Size returns the placed extent in bytes.
func (p Placed) Size() uint64 {
	return p.End - p.Start
}

// Placement is the immutable result of one composition: the address-ordered
// region list and the boundary-symbol table startup code consumes.
type Placement struct {
	Origin  uint64
	Regions []Placed
	Symbols *symtab.Table
}

// End returns the first address past the layout.
func (p *Placement) End() uint64 {
	if len(p.Regions) == 0 {
		return p.Origin
	}
	return p.Regions[len(p.Regions)-1].End
}

// Reclaimable returns the names of regions whose storage may be repurposed
// once early initialization completes. The composer only records
// eligibility; reclaiming is the startup code's business.
func (p *Placement) Reclaimable() []string {
	var names []string
	for _, r := range p.Regions {
		if r.Region.Reclaimable {
			names = append(names, r.Region.Name)
		}
	}
	return names
}

// Option adjusts a single composition.
type Option func(*options)

type options struct {
	sizers []memlayout.Sizer
}

// WithSizer supplies a content sizer for content-backed regions. Sizers are
// consulted in the order given; the first one that knows a region wins.
func WithSizer(s memlayout.Sizer) Option {
	return func(o *options) {
		o.sizers = append(o.sizers, s)
	}
}

// Compose places regions at increasing addresses starting from origin.
//
// The descriptor list is taken in the caller's intended final order. Every
// failure is a configuration error that aborts the whole composition; no
// partial placement is ever returned.
func Compose(origin uint64, regions []region.Region, opts ...Option) (*Placement, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if err := region.ValidateAll(regions); err != nil {
		return nil, err
	}
	if len(regions) > 0 && !align.Aligned(origin, regions[0].Align) {
		return nil, errors.OriginMisaligned(origin, regions[0].Align, regions[0].Name)
	}

	log := Logger()
	builder := symtab.NewBuilder()
	placed := make([]Placed, 0, len(regions))
	cursor := origin

	for _, r := range regions {
		start, ok := align.UpChecked(cursor, r.Align)
		if !ok {
			return nil, errors.NegativeExtent(errors.PhaseCompose, r.Name,
				"start alignment wraps the address space")
		}

		size, resolved, err := resolveSize(r, o.sizers)
		if err != nil {
			return nil, err
		}

		end := start + size
		if end < start {
			return nil, errors.NegativeExtent(errors.PhaseCompose, r.Name,
				"region end wraps the address space")
		}
		if r.EndAlign != 0 {
			end, ok = align.UpChecked(end, r.EndAlign)
			if !ok {
				return nil, errors.NegativeExtent(errors.PhaseCompose, r.Name,
					"end alignment wraps the address space")
			}
		}

		if err := builder.Add(r.Name, symtab.Extent{Start: start, End: end},
			r.StartSymbol(), r.EndSymbol()); err != nil {
			return nil, err
		}

		log.Debug("placed region",
			zap.String("region", r.Name),
			zap.String("kind", r.Kind.String()),
			zap.Uint64("start", start),
			zap.Uint64("end", end),
			zap.Bool("resolved", resolved),
			zap.Bool("reclaimable", r.Reclaimable))

		placed = append(placed, Placed{Region: r, Start: start, End: end, SizeResolved: resolved})
		cursor = end
	}

	return &Placement{Origin: origin, Regions: placed, Symbols: builder.Table()}, nil
}

// resolveSize determines a region's extent. Reserved regions declare it;
// content-backed regions may get it from a sizer; anything else is an
// unsized slot.
func resolveSize(r region.Region, sizers []memlayout.Sizer) (uint64, bool, error) {
	if r.Reserved() {
		return r.Reserve, true, nil
	}
	for _, s := range sizers {
		size, known, err := s.Size(r.Name)
		if err != nil {
			return 0, false, errors.Wrap(errors.PhaseCompose, errors.KindInvalidData, err,
				"content sizer failed for region "+r.Name)
		}
		if known {
			return size, true, nil
		}
	}
	return 0, false, nil
}
