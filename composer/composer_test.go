package composer

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"testing"

	memlayout "github.com/embarkos/mem-layout"
	layouterr "github.com/embarkos/mem-layout/errors"
	"github.com/embarkos/mem-layout/region"
)

// mapSizer resolves content sizes from a fixed table.
type mapSizer map[string]uint64

func (m mapSizer) Size(region string) (uint64, bool, error) {
	size, ok := m[region]
	return size, ok, nil
}

func TestComposeScenario(t *testing.T) {
	// origin 0x1000; A (align 16, content 10), B (align 16, content 0),
	// C (align 64, reserved 4096).
	regions := []region.Region{
		{Name: "a", Kind: region.Loaded, Align: 16, Match: []string{".a*"}},
		{Name: "b", Kind: region.Loaded, Align: 16, Match: []string{".b*"}},
		{Name: "c", Kind: region.ZeroFill, Align: 64, Reserve: 4096},
	}
	sizes := mapSizer{"a": 10, "b": 0}

	p, err := Compose(0x1000, regions, WithSizer(sizes))
	if err != nil {
		t.Fatal(err)
	}

	want := []struct {
		name       string
		start, end uint64
	}{
		{"a", 0x1000, 0x100a},
		{"b", 0x1010, 0x1010},
		{"c", 0x1040, 0x2040},
	}
	for i, w := range want {
		got := p.Regions[i]
		if got.Region.Name != w.name || got.Start != w.start || got.End != w.end {
			t.Errorf("region %d: got %s [%#x,%#x), want %s [%#x,%#x)",
				i, got.Region.Name, got.Start, got.End, w.name, w.start, w.end)
		}
		if !got.SizeResolved {
			t.Errorf("region %s: size should be resolved", w.name)
		}
	}

	if p.End() != 0x2040 {
		t.Errorf("layout end: got %#x, want 0x2040", p.End())
	}
}

func TestComposeEmptyRegion(t *testing.T) {
	regions := []region.Region{
		{Name: "b", Kind: region.Loaded, Align: 16, Match: []string{".b*"}},
	}

	p, err := Compose(0x1000, regions, WithSizer(mapSizer{"b": 0}))
	if err != nil {
		t.Fatalf("zero-size region must not be an error: %v", err)
	}

	ext, _ := p.Symbols.Region("b")
	if ext.Start != ext.End {
		t.Errorf("empty region: got [%#x,%#x), want start == end", ext.Start, ext.End)
	}
}

func TestComposeOriginMisaligned(t *testing.T) {
	regions := []region.Region{
		{Name: "text", Kind: region.Loaded, Align: 16, Match: []string{".text*"}},
	}

	_, err := Compose(0x1003, regions)
	var le *layouterr.Error
	if !stderrors.As(err, &le) || le.Kind != layouterr.KindOriginMisaligned {
		t.Fatalf("expected origin_misaligned, got %v", err)
	}
}

func TestComposeDuplicateName(t *testing.T) {
	regions := []region.Region{
		{Name: "data", Kind: region.Loaded, Match: []string{".data*"}},
		{Name: "data", Kind: region.Loaded, Match: []string{".data2*"}},
	}

	_, err := Compose(0x1000, regions)
	var le *layouterr.Error
	if !stderrors.As(err, &le) || le.Kind != layouterr.KindDuplicateRegion {
		t.Fatalf("expected duplicate_region, got %v", err)
	}
}

func TestComposeInvalidAlignment(t *testing.T) {
	regions := []region.Region{
		{Name: "bss", Kind: region.ZeroFill, Align: 24},
	}

	_, err := Compose(0x1000, regions)
	var le *layouterr.Error
	if !stderrors.As(err, &le) || le.Kind != layouterr.KindInvalidAlignment {
		t.Fatalf("expected invalid_alignment, got %v", err)
	}
}

func TestComposeUnsizedSlot(t *testing.T) {
	regions := []region.Region{
		{Name: "text", Kind: region.Loaded, Align: 4, Match: []string{".text*"}},
	}

	p, err := Compose(0x1000, regions)
	if err != nil {
		t.Fatal(err)
	}

	got := p.Regions[0]
	if got.SizeResolved {
		t.Error("slot with no sizer should be unresolved")
	}
	if got.Start != got.End {
		t.Errorf("unresolved slot should be zero-length, got [%#x,%#x)", got.Start, got.End)
	}
}

func TestComposeEndAlignment(t *testing.T) {
	regions := []region.Region{
		{Name: "bss", Kind: region.ZeroFill, Align: 16, EndAlign: 64, Match: []string{".bss*"}},
	}

	p, err := Compose(0x1000, regions, WithSizer(mapSizer{"bss": 10}))
	if err != nil {
		t.Fatal(err)
	}

	got := p.Regions[0]
	if got.End%64 != 0 {
		t.Errorf("end %#x not padded to end alignment 64", got.End)
	}
	if got.End != 0x1040 {
		t.Errorf("end: got %#x, want 0x1040", got.End)
	}
}

func TestComposeProperties(t *testing.T) {
	sizes := mapSizer{
		"start_text": 0x200,
		"dtb":        0x1234,
		"text":       0x8000,
		"rodata":     0x777,
		"data":       0x1001,
		"bss":        0x4005,
	}

	p, err := Compose(0x8000_0000, region.BootSet(), WithSizer(sizes))
	if err != nil {
		t.Fatal(err)
	}

	// Alignment and monotonic order.
	prevEnd := p.Origin
	for _, r := range p.Regions {
		if r.Region.Align != 0 && r.Start%r.Region.Align != 0 {
			t.Errorf("region %s start %#x violates alignment %d",
				r.Region.Name, r.Start, r.Region.Align)
		}
		if r.Region.EndAlign != 0 && r.End%r.Region.EndAlign != 0 {
			t.Errorf("region %s end %#x violates end alignment %d",
				r.Region.Name, r.End, r.Region.EndAlign)
		}
		if r.Start < prevEnd {
			t.Errorf("region %s overlaps its predecessor: start %#x < %#x",
				r.Region.Name, r.Start, prevEnd)
		}
		if r.End < r.Start {
			t.Errorf("region %s has reversed extent [%#x,%#x)", r.Region.Name, r.Start, r.End)
		}
		prevEnd = r.End
	}

	// Non-overlap, all pairs.
	for i := 0; i < len(p.Regions); i++ {
		for j := i + 1; j < len(p.Regions); j++ {
			a, b := p.Regions[i], p.Regions[j]
			if a.Start < b.End && b.Start < a.End {
				t.Errorf("regions %s and %s overlap", a.Region.Name, b.Region.Name)
			}
		}
	}

	// Every region exports exactly its two boundary symbols.
	if p.Symbols.Len() != 2*len(p.Regions) {
		t.Errorf("symbol count: got %d, want %d", p.Symbols.Len(), 2*len(p.Regions))
	}
	for _, r := range p.Regions {
		start, ok := p.Symbols.Addr(r.Region.StartSymbol())
		if !ok || start != r.Start {
			t.Errorf("%s: got %#x/%v, want %#x", r.Region.StartSymbol(), start, ok, r.Start)
		}
		end, ok := p.Symbols.Addr(r.Region.EndSymbol())
		if !ok || end != r.End {
			t.Errorf("%s: got %#x/%v, want %#x", r.Region.EndSymbol(), end, ok, r.End)
		}
	}
}

func TestComposeIdempotent(t *testing.T) {
	sizes := mapSizer{"start_text": 0x80, "text": 0x4000, "data": 0x300, "bss": 0x1000}

	a, err := Compose(0x8000_0000, region.MinimalSet(), WithSizer(sizes))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compose(0x8000_0000, region.MinimalSet(), WithSizer(sizes))
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(a.Regions, b.Regions) {
		t.Error("placements differ between identical compositions")
	}
	if !reflect.DeepEqual(a.Symbols.Symbols(), b.Symbols.Symbols()) {
		t.Error("symbol tables differ between identical compositions")
	}
}

func TestComposeReclaimMarking(t *testing.T) {
	p, err := Compose(0x8000_0000, region.BootSet())
	if err != nil {
		t.Fatal(err)
	}

	got := p.Reclaimable()
	want := []string{"start_text", "arena"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("reclaimable: got %v, want %v", got, want)
	}
}

func TestComposeAddressSpaceWrap(t *testing.T) {
	top := ^uint64(0) &^ 0xfff // 16-aligned address near the top
	regions := []region.Region{
		{Name: "huge", Kind: region.ZeroFill, Align: 16, Reserve: 0x2000},
	}

	_, err := Compose(top, regions)
	var le *layouterr.Error
	if !stderrors.As(err, &le) || le.Kind != layouterr.KindNegativeExtent {
		t.Fatalf("expected negative_extent, got %v", err)
	}
}

func TestComposeSizerError(t *testing.T) {
	regions := []region.Region{
		{Name: "text", Kind: region.Loaded, Match: []string{".text*"}},
	}
	broken := memlayout.SizerFunc(func(string) (uint64, bool, error) {
		return 0, false, fmt.Errorf("artifact unreadable")
	})

	_, err := Compose(0x1000, regions, WithSizer(broken))
	var le *layouterr.Error
	if !stderrors.As(err, &le) || le.Kind != layouterr.KindInvalidData {
		t.Fatalf("expected invalid_data, got %v", err)
	}
}
