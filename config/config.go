package config

import (
	"bytes"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/embarkos/mem-layout/errors"
	"github.com/embarkos/mem-layout/region"
)

// file is the YAML schema. Sizes and alignments are decoded signed so a
// negative value is caught here instead of wrapping.
type file struct {
	Origin   uint64             `yaml:"origin"`
	Variants map[string]variant `yaml:"variants"`
}

type variant struct {
	Origin  *uint64       `yaml:"origin"`
	Regions []regionEntry `yaml:"regions"`
}

type regionEntry struct {
	Name        string   `yaml:"name"`
	Kind        string   `yaml:"kind"`
	Align       int64    `yaml:"align"`
	EndAlign    int64    `yaml:"end_align"`
	Reserve     int64    `yaml:"reserve"`
	Match       []string `yaml:"match"`
	Keep        bool     `yaml:"keep"`
	Reclaimable bool     `yaml:"reclaimable"`
}

// Config is a loaded, validated build configuration.
type Config struct {
	origin   uint64
	variants map[string]loadedVariant
}

type loadedVariant struct {
	origin  uint64
	regions []region.Region
}

// Load reads a YAML configuration from r.
func Load(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err,
			"malformed layout configuration")
	}
	if len(f.Variants) == 0 {
		return nil, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
			Detail("configuration declares no layout variants").
			Build()
	}

	cfg := &Config{origin: f.Origin, variants: make(map[string]loadedVariant, len(f.Variants))}
	for name, v := range f.Variants {
		regions := make([]region.Region, 0, len(v.Regions))
		for _, entry := range v.Regions {
			r, err := entry.toRegion()
			if err != nil {
				return nil, err
			}
			regions = append(regions, r)
		}
		if err := region.ValidateAll(regions); err != nil {
			return nil, err
		}
		origin := f.Origin
		if v.Origin != nil {
			origin = *v.Origin
		}
		cfg.variants[name] = loadedVariant{origin: origin, regions: regions}
	}
	return cfg, nil
}

// LoadBytes reads a YAML configuration from data.
func LoadBytes(data []byte) (*Config, error) {
	return Load(bytes.NewReader(data))
}

// LoadFile reads a YAML configuration from path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err,
			"reading layout configuration")
	}
	return LoadBytes(data)
}

// Origin returns the image base address shared by variants that declare no
// override.
func (c *Config) Origin() uint64 {
	return c.origin
}

// Variants returns the declared variant names, sorted.
func (c *Config) Variants() []string {
	names := make([]string, 0, len(c.variants))
	for name := range c.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Variant returns the origin and descriptor list for a named variant. The
// returned slice is freshly allocated.
func (c *Config) Variant(name string) (uint64, []region.Region, error) {
	v, ok := c.variants[name]
	if !ok {
		return 0, nil, errors.NotFound(errors.PhaseLoad, "layout variant "+name)
	}
	regions := make([]region.Region, len(v.regions))
	copy(regions, v.regions)
	return v.origin, regions, nil
}

func (s regionEntry) toRegion() (region.Region, error) {
	var kind region.Kind
	switch s.Kind {
	case "loaded", "":
		kind = region.Loaded
	case "zerofill":
		kind = region.ZeroFill
	default:
		return region.Region{}, errors.New(errors.PhaseLoad, errors.KindInvalidInput).
			Region(s.Name).
			Detail("unknown region kind %q", s.Kind).
			Build()
	}
	if s.Reserve < 0 {
		return region.Region{}, errors.NegativeExtent(errors.PhaseLoad, s.Name,
			"reserved size is negative")
	}
	if s.Align < 0 || s.EndAlign < 0 {
		return region.Region{}, errors.New(errors.PhaseLoad, errors.KindInvalidAlignment).
			Region(s.Name).
			Detail("alignment is negative").
			Build()
	}

	return region.Region{
		Name:        s.Name,
		Kind:        kind,
		Align:       uint64(s.Align),
		EndAlign:    uint64(s.EndAlign),
		Reserve:     uint64(s.Reserve),
		Match:       s.Match,
		Keep:        s.Keep,
		Reclaimable: s.Reclaimable,
	}, nil
}
