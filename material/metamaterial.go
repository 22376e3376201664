package material

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/sgostarter/i/commerr"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/libphysics/dec"
	"github.com/sgostarter/libphysics/physconst"
)

// Metamaterial groups several materials with the conduction band offsets
// between them. Property keys containing "material" declare a material under
// an ID (material_<id>: <name>), keys containing "offset" declare the offset
// between two declared materials (offset_<nameA><nameB>: <eV value>).
type Metamaterial struct {
	materials map[string]*Material
	offsets   map[string]*apd.Decimal
}

func NewMetamaterial(props Properties, materials map[string]*Material, logger l.Wrapper) (*Metamaterial, error) {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	logger = logger.WithFields(l.StringField(l.ClsKey, "metamaterial"))

	mm := &Metamaterial{
		materials: make(map[string]*Material),
		offsets:   make(map[string]*apd.Decimal),
	}

	var materialNames []string

	for _, key := range props.Keys() {
		if !strings.Contains(key, "material") {
			continue
		}

		parts := strings.Split(key, "_")
		if len(parts) < 2 {
			return nil, fmt.Errorf("%w: malformed material key %q", commerr.ErrInvalidArgument, key)
		}

		name := props.Get(key)

		mat, ok := materials[name]
		if !ok {
			logger.WithFields(l.StringField("material", name)).Error("material not provided")

			return nil, fmt.Errorf("%w: material %q", commerr.ErrNotFound, name)
		}

		mm.materials[parts[1]] = mat
		materialNames = append(materialNames, name)
	}

	if len(mm.materials) < 1 {
		return nil, fmt.Errorf("%w: no material in the metamaterial", commerr.ErrInvalidArgument)
	}

	combinations := make(map[string]struct{})

	for _, name1 := range materialNames {
		for _, name2 := range materialNames {
			combinations[name1+name2] = struct{}{}
		}
	}

	for _, key := range props.Keys() {
		if strings.Contains(key, "material") || !strings.Contains(key, "offset") {
			continue
		}

		parts := strings.Split(key, "_")
		if len(parts) < 2 {
			return nil, fmt.Errorf("%w: malformed offset key %q", commerr.ErrInvalidArgument, key)
		}

		compound := parts[1]

		if _, ok := combinations[compound]; !ok {
			return nil, fmt.Errorf("%w: offset key %q does not name two declared materials",
				commerr.ErrInvalidArgument, key)
		}

		offset, err := scaledProperty(props.Get(key), physconst.EV())
		if err != nil {
			return nil, fmt.Errorf("offset %s: %w", key, err)
		}

		mm.offsets[compound] = offset
	}

	if len(mm.offsets) < len(mm.materials)-1 {
		return nil, fmt.Errorf("%w: not enough offsets defined", commerr.ErrInvalidArgument)
	}

	return mm, nil
}

// Material returns a copy of the material registered under the given ID.
func (mm *Metamaterial) Material(id string) (*Material, error) {
	mat, ok := mm.materials[id]
	if !ok {
		return nil, fmt.Errorf("%w: material id %q", commerr.ErrNotFound, id)
	}

	return mat.Copy(), nil
}

// Offset returns the conduction band offset between the two named materials,
// in J, trying both name orders.
func (mm *Metamaterial) Offset(material1, material2 string) (*apd.Decimal, error) {
	if offset, ok := mm.offsets[material1+material2]; ok {
		return dec.Copy(offset), nil
	}

	if offset, ok := mm.offsets[material2+material1]; ok {
		return dec.Copy(offset), nil
	}

	return nil, fmt.Errorf("%w: no offset between %s and %s", commerr.ErrNotFound, material1, material2)
}

func (mm *Metamaterial) Copy() *Metamaterial {
	cp := &Metamaterial{
		materials: make(map[string]*Material, len(mm.materials)),
		offsets:   make(map[string]*apd.Decimal, len(mm.offsets)),
	}

	for id, mat := range mm.materials {
		cp.materials[id] = mat.Copy()
	}

	for compound, offset := range mm.offsets {
		cp.offsets[compound] = dec.Copy(offset)
	}

	return cp
}
