package loading

import (
	"io"
	"os"
	"strings"

	"jse/common"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Batch is a set of type declarations loaded together.  Either every type of
// a batch is loaded or none is.
type Batch struct {
	// Module is the module declaring the types.  Bare type names are qualified
	// with it.
	Module string `yaml:"module"`

	// Includes are modules that must be loaded before this batch
	Includes []string `yaml:"includes,omitempty"`

	// Namespaces are searched when linking bare names to loaded types
	Namespaces []string `yaml:"namespaces,omitempty"`

	Types []*Declaration `yaml:"types"`

	// Path is the file the batch was read from
	Path string `yaml:"-"`
}

// Declaration is the descriptor of a single type in a batch
type Declaration struct {
	Name       string           `yaml:"name"`
	Parent     string           `yaml:"parent,omitempty"`
	Interfaces []string         `yaml:"interfaces,omitempty"`
	Attributes []*AttributeDecl `yaml:"attributes,omitempty"`

	Attribute bool `yaml:"attribute,omitempty"`
	Enum      bool `yaml:"enum,omitempty"`
	BuiltIn   bool `yaml:"builtin,omitempty"`

	Members []*MemberDecl `yaml:"members,omitempty"`
}

// AttributeDecl is an attribute applied to a declared type.  Arguments are
// literals except for strings starting with `$` which name a value to resolve
// in the annotation context (eg. `$System.AttributeTarget.Class`).
type AttributeDecl struct {
	Type string        `yaml:"type"`
	Args []interface{} `yaml:"args,omitempty"`
}

// MemberDecl is a field or method of a declared type
type MemberDecl struct {
	Name   string   `yaml:"name"`
	Kind   string   `yaml:"kind"`
	Access string   `yaml:"access,omitempty"`
	Static bool     `yaml:"static,omitempty"`
	Params []string `yaml:"params,omitempty"`

	// Value is the initial value of a static field
	Value interface{} `yaml:"value,omitempty"`
}

func (d *Declaration) TypeName() string {
	return d.Name
}

func (d *Declaration) DependentTypeNames() []string {
	var names []string
	if d.Parent != "" {
		names = append(names, d.Parent)
	}

	names = append(names, d.Interfaces...)

	for _, ad := range d.Attributes {
		names = append(names, ad.Type)
	}

	return names
}

func (d *Declaration) IsAttributeType() bool {
	return d.Attribute
}

// -----------------------------------------------------------------------------

// ReadBatchFile reads and decodes a batch file
func ReadBatchFile(path string) (*Batch, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open batch file `%s`", path)
	}
	defer f.Close()

	b, err := DecodeBatch(f)
	if err != nil {
		return nil, errors.Wrapf(err, "in batch file `%s`", path)
	}

	b.Path = path
	return b, nil
}

// DecodeBatch decodes a YAML batch descriptor.  Type names are qualified with
// the module of the batch and references to types of the same batch are
// rewritten to their qualified names.
func DecodeBatch(r io.Reader) (*Batch, error) {
	b := &Batch{}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(b); err != nil {
		return nil, errors.Wrap(err, "failed to decode batch")
	}

	if err := b.normalize(); err != nil {
		return nil, err
	}

	return b, nil
}

// normalize validates the batch and qualifies its names
func (b *Batch) normalize() error {
	if b.Module != "" && !common.IsValidQualifiedName(b.Module) {
		return errors.Errorf("invalid module name `%s`", b.Module)
	}

	declared := make(map[string]struct{})
	for _, d := range b.Types {
		if !common.IsValidQualifiedName(d.Name) {
			return errors.Errorf("invalid type name `%s`", d.Name)
		}

		d.Name = b.qualify(d.Name)
		if _, ok := declared[d.Name]; ok {
			return errors.Errorf("type `%s` is declared multiple times", d.Name)
		}

		declared[d.Name] = struct{}{}
	}

	ref := func(name string) string {
		if strings.Contains(name, ".") {
			return name
		}

		if _, ok := declared[b.qualify(name)]; ok {
			return b.qualify(name)
		}

		return name
	}

	for _, d := range b.Types {
		if d.Parent == "" {
			d.Parent = defaultParent(d)
		} else {
			d.Parent = ref(d.Parent)
		}

		for i, iname := range d.Interfaces {
			d.Interfaces[i] = ref(iname)
		}

		for _, ad := range d.Attributes {
			ad.Type = ref(ad.Type)
		}

		for _, md := range d.Members {
			if md.Kind == "" {
				md.Kind = "field"
			}

			if md.Kind != "field" && md.Kind != "method" {
				return errors.Errorf("member `%s` of `%s` has unknown kind `%s`", md.Name, d.Name, md.Kind)
			}
		}
	}

	return nil
}

// qualify prefixes a bare type name with the module of the batch
func (b *Batch) qualify(name string) string {
	if b.Module == "" || strings.Contains(name, ".") {
		return name
	}

	return b.Module + "." + name
}

// defaultParent returns the implicit parent of a declaration without one
func defaultParent(d *Declaration) string {
	switch {
	case d.Name == common.RootObjectType:
		return ""
	case d.Attribute && d.Name != common.RootAttributeType:
		return common.RootAttributeType
	default:
		return common.RootObjectType
	}
}

// Names returns the names of the declared types in declaration order
func (b *Batch) Names() []string {
	names := make([]string, len(b.Types))
	for i, d := range b.Types {
		names[i] = d.Name
	}

	return names
}
