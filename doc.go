// Package memlayout composes boot-time memory layouts for embedded images.
//
// An embedded image is partitioned into named, ordered, alignment-constrained
// regions (early-init code, devicetree blob, general code, initialized data,
// zero-initialized data, stack, heap). This library decides how a single
// image's address space is partitioned and what names identify each partition
// and its boundaries, then emits the artifact the target toolchain's linking
// stage consumes together with the boundary symbols startup code reads.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	memlayout/           Root package with the Sizer interface
//	├── region/          Region descriptor model, validation, canned sets
//	├── composer/        Address assignment, alignment, reclaim marking
//	├── symtab/          Boundary-symbol table consumed by startup code
//	├── lds/             GNU-ld SECTIONS script emitter
//	├── config/          YAML build configuration (layout variants)
//	├── content/         Region sizing from build artifacts (HEX, FDT, raw)
//	├── fdt/             Flattened devicetree header probing
//	└── errors/          Structured configuration errors
//
// # Quick Start
//
// Compose a layout and render its linker script:
//
//	placement, err := composer.Compose(0x80000000, region.BootSet())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	script := lds.Encode(placement)
//	stack, _ := placement.Symbols.Region("stack")
//	fmt.Printf("initial sp at %#x\n", stack.End)
//
// # Build-Time Model
//
// Composition is a pure, single-pass, build-time computation. It runs once
// per image build and either produces an immutable placement or fails with a
// configuration error; there is no partial result and no runtime failure
// mode. Any concurrency among consumers of the boundary symbols belongs to
// the startup code, not to this library.
//
// # Boundary Symbols
//
// Every region publishes an inclusive start and an exclusive end address,
// named __<region> and __e<region>. Symbols are addresses only: a ZeroFill
// region's contents are guaranteed zero only after startup code clears it,
// and a reclaimable region's symbols keep describing the original extent
// after its storage is repurposed.
package memlayout
