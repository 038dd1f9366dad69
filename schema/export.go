package schema

import (
	"github.com/goccy/go-yaml"
)

// Description is the tooling-facing shape of a schema: what an editor
// needs to render property widgets without compiling against the game's
// types.
type Description struct {
	Name   string             `yaml:"name"`
	GoType string             `yaml:"goType"`
	Fields []FieldDescription `yaml:"fields"`
}

type FieldDescription struct {
	Name         string `yaml:"name"`
	GoField      string `yaml:"goField"`
	Type         string `yaml:"type"`
	Serializable bool   `yaml:"serializable"`
	Check        string `yaml:"check,omitempty"`
	Default      string `yaml:"default,omitempty"`
}

// Describe returns the schema's description, fields in declaration
// order.
func (s *Schema) Describe() *Description {
	d := &Description{
		Name:   s.name,
		GoType: s.goType.String(),
		Fields: make([]FieldDescription, 0, len(s.fields)),
	}
	for _, fd := range s.fields {
		f := FieldDescription{
			Name:         fd.name,
			GoField:      fd.goField,
			Type:         fd.typ.String(),
			Serializable: fd.conv != nil,
			Check:        fd.checkSrc,
		}
		if fd.hasDefault {
			f.Default = fd.defValue
		}
		d.Fields = append(d.Fields, f)
	}
	return d
}

// DescribeYAML renders the description as YAML.
func (s *Schema) DescribeYAML() ([]byte, error) {
	return yaml.Marshal(s.Describe())
}

// DescribeAll renders every registered schema as one YAML document,
// sorted by name.
func DescribeAll() ([]byte, error) {
	all := All()
	descs := make([]*Description, len(all))
	for i, s := range all {
		descs[i] = s.Describe()
	}
	return yaml.Marshal(descs)
}
