package symtab

import (
	"sort"

	"github.com/embarkos/mem-layout/errors"
)

// Extent is a half-open [Start, End) span of address space.
type Extent struct {
	Start uint64
	End   uint64
}

// Size returns the extent length in bytes.
func (e Extent) Size() uint64 {
	return e.End - e.Start
}

// Symbol is one named boundary address.
type Symbol struct {
	Name string
	Addr uint64
}

// Table maps boundary-symbol names to addresses and region names to their
// extents. Tables are immutable once built.
type Table struct {
	symbols map[string]uint64
	regions map[string]Extent
	order   []string // region names in address order
}

// Addr looks up a boundary symbol by name.
func (t *Table) Addr(symbol string) (uint64, bool) {
	a, ok := t.symbols[symbol]
	return a, ok
}

// Region looks up a region's extent by region name.
func (t *Table) Region(name string) (Extent, bool) {
	e, ok := t.regions[name]
	return e, ok
}

// Regions returns the region names in address order.
func (t *Table) Regions() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Symbols returns every boundary symbol sorted by address, ties broken by
// name. The slice is freshly allocated on each call.
func (t *Table) Symbols() []Symbol {
	out := make([]Symbol, 0, len(t.symbols))
	for name, addr := range t.symbols {
		out = append(out, Symbol{Name: name, Addr: addr})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Addr != out[j].Addr {
			return out[i].Addr < out[j].Addr
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Len returns the number of boundary symbols in the table.
func (t *Table) Len() int {
	return len(t.symbols)
}

// Builder accumulates boundary symbols during composition. It enforces the
// no-collision rule: a duplicate region or symbol name aborts the build.
type Builder struct {
	table Table
}

// NewBuilder returns an empty symbol table builder.
func NewBuilder() *Builder {
	return &Builder{
		table: Table{
			symbols: make(map[string]uint64),
			regions: make(map[string]Extent),
		},
	}
}

// Add records a region's extent under its start and end symbol names.
// Regions must be added in address order.
func (b *Builder) Add(region string, ext Extent, startSym, endSym string) error {
	if _, dup := b.table.regions[region]; dup {
		return errors.DuplicateRegion(errors.PhaseCompose, region)
	}
	for _, sym := range []string{startSym, endSym} {
		if _, dup := b.table.symbols[sym]; dup {
			return errors.New(errors.PhaseCompose, errors.KindDuplicateRegion).
				Region(region).
				Detail("boundary symbol %s already defined", sym).
				Build()
		}
	}
	if ext.End < ext.Start {
		return errors.NegativeExtent(errors.PhaseCompose, region, "end address precedes start")
	}

	b.table.regions[region] = ext
	b.table.symbols[startSym] = ext.Start
	b.table.symbols[endSym] = ext.End
	b.table.order = append(b.table.order, region)
	return nil
}

// Table returns the built table. The builder must not be reused afterward.
func (b *Builder) Table() *Table {
	return &b.table
}
