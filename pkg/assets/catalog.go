// Package assets provides the decorative prop catalog and places props into
// a command list's triangle store.
package assets

import (
	_ "embed"
	"fmt"
	"io"
	"math"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-orbiter/pkg/gfx"
	"github.com/opd-ai/go-orbiter/pkg/physics"
)

//go:embed props.yaml
var defaultProps []byte

// Polygon is one flat-colored piece of a prop, drawn as a triangle list.
type Polygon struct {
	Color    gfx.Color    `yaml:"color"`
	Vertices [][2]float32 `yaml:"vertices"`
	Indices  []uint32     `yaml:"indices"`
}

// Asset is a prop made of polygons painted in order.
type Asset struct {
	Polygons []Polygon `yaml:"polygons"`
}

// Catalog maps asset type and variant names to assets,
// e.g. Get("lamp", "2").
type Catalog struct {
	Props map[string]map[string]Asset `yaml:"props"`
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	c, err := Parse(defaultProps)
	if err != nil {
		return nil, fmt.Errorf("built-in props: %w", err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode props: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads a YAML catalog.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read props: %w", err)
	}
	return Parse(data)
}

// Validate checks that every index addresses a vertex of its polygon and
// that triangle lists are complete.
func (c *Catalog) Validate() error {
	for typ, variants := range c.Props {
		for variant, a := range variants {
			for i, p := range a.Polygons {
				if len(p.Indices)%3 != 0 {
					return fmt.Errorf("prop %s/%s polygon %d: %d indices is not a triangle list",
						typ, variant, i, len(p.Indices))
				}
				for _, idx := range p.Indices {
					if int(idx) >= len(p.Vertices) {
						return fmt.Errorf("prop %s/%s polygon %d: index %d out of range (%d vertices)",
							typ, variant, i, idx, len(p.Vertices))
					}
				}
			}
		}
	}
	return nil
}

// Get returns the asset of the given type and variant.
func (c *Catalog) Get(typ, variant string) (Asset, error) {
	variants, ok := c.Props[typ]
	if !ok {
		return Asset{}, fmt.Errorf("unknown prop type %q", typ)
	}
	a, ok := variants[variant]
	if !ok {
		return Asset{}, fmt.Errorf("unknown %s variant %q", typ, variant)
	}
	return a, nil
}

// Names returns every "type/variant" in the catalog, sorted.
func (c *Catalog) Names() []string {
	var names []string
	for typ, variants := range c.Props {
		for variant := range variants {
			names = append(names, typ+"/"+variant)
		}
	}
	sort.Strings(names)
	return names
}

// Place transforms each polygon of a by scale, then rotation by angle, then
// translation to position, appends the result to g's triangle store and
// returns one index slot per polygon.
func Place(g *gfx.Gfx, a Asset, position physics.Vector2D, angle, scale float64) ([]int, error) {
	sin, cos := math.Sincos(angle)
	slots := make([]int, 0, len(a.Polygons))
	for _, p := range a.Polygons {
		base := uint32(g.TriangleLen())
		for _, v := range p.Vertices {
			x := float64(v[0]) * scale
			y := float64(v[1]) * scale
			g.AddTriangleVertex(
				float32(x*cos-y*sin+position.X),
				float32(x*sin+y*cos+position.Y),
				p.Color,
			)
		}
		idx := make([]uint32, len(p.Indices))
		for i, v := range p.Indices {
			idx[i] = base + v
		}
		slot, err := g.AddIndices(idx, gfx.TopologyList)
		if err != nil {
			return slots, fmt.Errorf("place polygon: %w", err)
		}
		slots = append(slots, slot)
	}
	return slots, nil
}
