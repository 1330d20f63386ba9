// Package composer assigns addresses to an ordered list of region
// descriptors.
//
// Compose walks the descriptor list exactly once, maintaining a running
// cursor: round up to the region's start alignment, emit the start symbol,
// advance by the region's size, round up to the end alignment if one is
// declared, emit the end symbol. The caller's order is the final order;
// the composer never reorders.
//
// Composition is a pure function of its inputs: the same origin and
// descriptor list always produce an identical placement, and any
// configuration error aborts the whole composition with no partial result.
package composer
