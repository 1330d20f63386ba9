// Package region defines the Region Descriptor model: the named, ordered,
// alignment-constrained segments an embedded image's address space is
// partitioned into, and the boundary-symbol names each segment exports.
//
// # Key Types
//
//   - Region: one descriptor per logical segment (code, data, bss, stack...)
//   - Kind: Loaded (occupies image storage) vs ZeroFill (address space only)
//
// Descriptors are authored once per image/target configuration and consumed
// exactly once by the composer; they are never mutated afterward. BootSet
// and MinimalSet provide the two canned descriptor lists most targets use.
package region
