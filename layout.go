package memlayout

// Sizer resolves the emitted content size of a named region from a build
// artifact (a firmware object, a devicetree blob). The composer consults it
// for regions that carry content rather than an explicit reserved size.
//
// Size reports the content size in bytes for the region and whether the
// artifact knows that region at all. A region unknown to every Sizer is
// placed as an unsized slot whose extent the linking stage resolves.
type Sizer interface {
	Size(region string) (size uint64, ok bool, err error)
}

// SizerFunc adapts a function to the Sizer interface.
type SizerFunc func(region string) (uint64, bool, error)

func (f SizerFunc) Size(region string) (uint64, bool, error) {
	return f(region)
}
