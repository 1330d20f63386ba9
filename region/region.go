package region

import (
	"github.com/embarkos/mem-layout/errors"
	"github.com/embarkos/mem-layout/internal/align"
)

// Kind classifies how a region relates to image storage.
type Kind uint8

const (
	// Loaded regions occupy bytes in the on-disk image.
	Loaded Kind = iota
	// ZeroFill regions occupy address space only; they contribute no image
	// bytes and their contents are zeroed by startup code.
	ZeroFill
)

var kindNames = [...]string{
	Loaded:   "loaded",
	ZeroFill: "zerofill",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Region describes one logical segment of the image. The zero value is not
// a valid region; at minimum Name must be set.
//
// A region is either content-backed (its extent comes from compiled object
// code matched by the patterns in Match, or from a memlayout.Sizer) or
// reserved (Reserve bytes of address space, no content at all). Declaring
// both is a configuration error.
type Region struct {
	// Name is the stable symbolic identifier, used for input-section
	// matching, boundary-symbol derivation and diagnostics.
	Name string

	Kind Kind

	// Align is the minimum start alignment in bytes. It must be a power of
	// two; zero means no constraint.
	Align uint64

	// EndAlign, when non-zero, pads the region's end up to this alignment
	// before the end symbol is emitted and the next region begins.
	EndAlign uint64

	// Reclaimable marks the region's storage as reusable once its one-time
	// initialization role is fulfilled. The boundary symbols keep describing
	// the original extent after reclaim.
	Reclaimable bool

	// Reserve is an explicit size in bytes for reserved-space regions such
	// as stack and heap. Zero means the region is content-backed.
	Reserve uint64

	// Match lists the input-section patterns whose content fills the
	// region, e.g. ".data*". Empty for reserved regions.
	Match []string

	// Keep pins the region's content against garbage collection by the
	// linking stage. Required for sections nothing references directly,
	// such as the entry code and the devicetree blob.
	Keep bool
}

// StartSymbol returns the boundary symbol naming the region's inclusive
// start address.
func (r Region) StartSymbol() string {
	return "__" + r.Name
}

// EndSymbol returns the boundary symbol naming the region's exclusive end
// address.
func (r Region) EndSymbol() string {
	return "__e" + r.Name
}

// Reserved reports whether the region's extent is declared rather than
// discovered from content.
func (r Region) Reserved() bool {
	return r.Reserve != 0
}

// Validate checks the descriptor against the configuration invariants. It
// returns the first violation found.
func (r Region) Validate() error {
	if !validName(r.Name) {
		return errors.New(errors.PhaseValidate, errors.KindInvalidInput).
			Region(r.Name).
			Detail("region name must be a non-empty [a-z0-9_] identifier").
			Build()
	}
	if r.Kind != Loaded && r.Kind != ZeroFill {
		return errors.New(errors.PhaseValidate, errors.KindInvalidInput).
			Region(r.Name).
			Detail("unknown region kind %d", r.Kind).
			Build()
	}
	if r.Align != 0 && !align.IsPow2(r.Align) {
		return errors.InvalidAlignment(errors.PhaseValidate, r.Name, r.Align)
	}
	if r.EndAlign != 0 && !align.IsPow2(r.EndAlign) {
		return errors.InvalidAlignment(errors.PhaseValidate, r.Name, r.EndAlign)
	}
	if r.Reserve != 0 && len(r.Match) != 0 {
		return errors.New(errors.PhaseValidate, errors.KindInvalidInput).
			Region(r.Name).
			Detail("a region is either reserved or content-backed, not both").
			Build()
	}
	if r.Reserve != 0 && r.Kind == Loaded {
		return errors.New(errors.PhaseValidate, errors.KindInvalidInput).
			Region(r.Name).
			Detail("reserved regions carry no content and must be zerofill").
			Build()
	}
	return nil
}

// ValidateAll validates every descriptor and rejects duplicate names across
// the whole list.
func ValidateAll(regions []Region) error {
	seen := make(map[string]struct{}, len(regions))
	for _, r := range regions {
		if err := r.Validate(); err != nil {
			return err
		}
		if _, dup := seen[r.Name]; dup {
			return errors.DuplicateRegion(errors.PhaseValidate, r.Name)
		}
		seen[r.Name] = struct{}{}
	}
	return nil
}

func validName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		case c == '_':
		default:
			return false
		}
	}
	return true
}
