package region

// Sizes of the reserved regions in the canned descriptor sets.
const (
	// InitStackSize is the stack reserved for early initialization code.
	InitStackSize = 16 * 1024
	// StartArenaSize is the early-init arena, reclaimed once the proper
	// allocator is up.
	StartArenaSize = 64 * 1024
)

// BootSet returns the full boot layout: early-init code, devicetree blob,
// general code and data, zero-fill, init stack and a reclaimable early
// arena. The early-init text is reclaimable because it runs exactly once.
//
// The returned slice is freshly allocated; callers may adjust sizes and
// flags before composing.
func BootSet() []Region {
	return []Region{
		{
			Name:        "start_text",
			Kind:        Loaded,
			Align:       4,
			Match:       []string{".start.text"},
			Keep:        true,
			Reclaimable: true,
		},
		{
			// The devicetree specification requires 8-byte alignment of
			// the blob.
			Name:  "dtb",
			Kind:  Loaded,
			Align: 8,
			Match: []string{".dtb.rodata"},
			Keep:  true,
		},
		{
			Name:  "text",
			Kind:  Loaded,
			Align: 4,
			Match: []string{".text*"},
		},
		{
			Name:  "rodata",
			Kind:  Loaded,
			Align: 8,
			Match: []string{".rodata*"},
		},
		{
			Name:  "data",
			Kind:  Loaded,
			Align: 8,
			Match: []string{".data*"},
		},
		{
			Name:     "bss",
			Kind:     ZeroFill,
			Align:    16,
			EndAlign: 16,
			Match:    []string{".bss*", "COMMON"},
		},
		{
			Name:    "stack",
			Kind:    ZeroFill,
			Align:   16,
			Reserve: InitStackSize,
		},
		{
			Name:        "arena",
			Kind:        ZeroFill,
			Align:       16,
			Reserve:     StartArenaSize,
			Reclaimable: true,
		},
	}
}

// MinimalSet returns the layout variant without a devicetree blob and
// without reclaimable early-init storage, for targets that discover their
// hardware by other means.
func MinimalSet() []Region {
	return []Region{
		{
			Name:  "start_text",
			Kind:  Loaded,
			Align: 4,
			Match: []string{".start.text"},
			Keep:  true,
		},
		{
			Name:  "text",
			Kind:  Loaded,
			Align: 4,
			Match: []string{".text*"},
		},
		{
			Name:  "data",
			Kind:  Loaded,
			Align: 8,
			Match: []string{".data*"},
		},
		{
			Name:     "bss",
			Kind:     ZeroFill,
			Align:    16,
			EndAlign: 16,
			Match:    []string{".bss*", "COMMON"},
		},
		{
			Name:    "stack",
			Kind:    ZeroFill,
			Align:   16,
			Reserve: InitStackSize,
		},
	}
}
