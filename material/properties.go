package material

import (
	"os"
	"sort"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Properties is a flat key-value record describing a material or a composite
// material, typically loaded from a YAML file.
type Properties map[string]string

func LoadProperties(path string) (Properties, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseProperties(d)
}

func ParseProperties(d []byte) (Properties, error) {
	var raw map[string]interface{}

	if err := yaml.Unmarshal(d, &raw); err != nil {
		return nil, err
	}

	props := make(Properties, len(raw))

	for key, value := range raw {
		props[key] = cast.ToString(value)
	}

	return props, nil
}

func (props Properties) Has(key string) bool {
	_, ok := props[key]

	return ok
}

func (props Properties) Get(key string) string {
	return props[key]
}

// Keys returns the defined keys in sorted order, so scans over the record are
// deterministic.
func (props Properties) Keys() []string {
	keys := make([]string, 0, len(props))

	for key := range props {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
