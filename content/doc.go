// Package content resolves the emitted sizes of Loaded regions from build
// artifacts, implementing the memlayout.Sizer interface consumed by the
// composer.
//
// Content provenance is external to the composer: compiled object code,
// pre-built firmware objects in Intel HEX format, or an embedded devicetree
// blob. Each provider answers only for the regions it knows; the composer
// consults providers in order.
package content
