package nav

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
)

// Kind tags a navigation item.
type Kind string

const (
	KindDoc           Kind = "doc"
	KindCategory      Kind = "category"
	KindAutogenerated Kind = "autogenerated"
)

// Item is one hand-authored sidebar entry as written in sidebars.yaml.
//
// Accepted forms:
//
//	- intro                                   # bare doc slug
//	- {type: doc, id: intro, label: Start}
//	- {type: category, label: Guides, items: [...], collapsed: false, link: guides/index}
//	- {type: autogenerated, dirName: guides}
//	- Guides: [guides/a, guides/b]            # shorthand category
type Item struct {
	Type      Kind
	ID        string
	Label     string
	Items     []Item
	Collapsed *bool
	Link      string
	DirName   string

	line int
}

type itemFields struct {
	Type      Kind     `yaml:"type"`
	ID        string   `yaml:"id"`
	Label     string   `yaml:"label"`
	Items     []Item   `yaml:"items"`
	Collapsed *bool    `yaml:"collapsed"`
	Link      linkSpec `yaml:"link"`
	DirName   string   `yaml:"dirName"`
}

// linkSpec accepts both `link: slug` and `link: {type: doc, id: slug}`.
type linkSpec string

func (l *linkSpec) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		*l = linkSpec(n.Value)
		return nil
	}
	var obj struct {
		Type string `yaml:"type"`
		ID   string `yaml:"id"`
	}
	if err := n.Decode(&obj); err != nil {
		return err
	}
	if obj.Type != "" && obj.Type != string(KindDoc) {
		return fmt.Errorf("line %d: unsupported category link type %q", n.Line, obj.Type)
	}
	*l = linkSpec(obj.ID)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (it *Item) UnmarshalYAML(n *yaml.Node) error {
	it.line = n.Line
	switch n.Kind {
	case yaml.ScalarNode:
		it.Type = KindDoc
		it.ID = n.Value
		return nil
	case yaml.MappingNode:
		if len(n.Content) == 2 && n.Content[0].Value != "type" && n.Content[1].Kind == yaml.SequenceNode {
			it.Type = KindCategory
			it.Label = n.Content[0].Value
			return n.Content[1].Decode(&it.Items)
		}
		var f itemFields
		if err := n.Decode(&f); err != nil {
			return err
		}
		*it = Item{
			Type:      f.Type,
			ID:        f.ID,
			Label:     f.Label,
			Items:     f.Items,
			Collapsed: f.Collapsed,
			Link:      string(f.Link),
			DirName:   f.DirName,
			line:      n.Line,
		}
		if it.Type == "" {
			it.Type = KindDoc
		}
		return nil
	default:
		return fmt.Errorf("line %d: sidebar item must be a string or a mapping", n.Line)
	}
}

// Sidebars is the parsed sidebars.yaml: named sidebars in file order.
type Sidebars struct {
	IDs   []string
	Items map[string][]Item
}

// UnmarshalYAML keeps the declaration order of sidebar ids.
func (s *Sidebars) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: sidebars must be a mapping of sidebar id to items", n.Line)
	}
	s.Items = make(map[string][]Item, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		id := n.Content[i].Value
		if _, dup := s.Items[id]; dup {
			return fmt.Errorf("line %d: duplicate sidebar id %q", n.Content[i].Line, id)
		}
		var items []Item
		if err := n.Content[i+1].Decode(&items); err != nil {
			return err
		}
		s.IDs = append(s.IDs, id)
		s.Items[id] = items
	}
	return nil
}

// Parse decodes a sidebars document.
func Parse(data []byte) (*Sidebars, error) {
	var s Sidebars
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "invalid sidebars definition")
	}
	if s.Items == nil {
		s.Items = map[string][]Item{}
	}
	return &s, nil
}

// LoadFile reads and parses a sidebars.yaml file.
func LoadFile(path string) (*Sidebars, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "cannot read sidebars definition").
			WithContext("path", path)
	}
	s, err := Parse(data)
	if err != nil {
		if se, ok := derrors.As(err); ok {
			se.WithContext("path", path)
		}
		return nil, err
	}
	return s, nil
}
