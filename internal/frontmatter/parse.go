package frontmatter

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// CardData is the subset of model card metadata hubcard reads back out of
// a front matter header. It mirrors the card_data fields the Hub API
// exposes; everything else in the header is ignored.
type CardData struct {
	PipelineTag string     `yaml:"pipeline_tag"`
	LibraryName string     `yaml:"library_name"`
	License     string     `yaml:"license"`
	BaseModel   StringList `yaml:"base_model"`
	Tags        []string   `yaml:"tags"`
	Datasets    []string   `yaml:"datasets"`
}

// StringList decodes a YAML value that cards write as either a single
// scalar or a sequence (base_model does both).
type StringList []string

func (s *StringList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var one string
		if err := value.Decode(&one); err != nil {
			return err
		}
		*s = StringList{one}
		return nil
	}
	var many []string
	if err := value.Decode(&many); err != nil {
		return err
	}
	*s = many
	return nil
}

// Parse decodes the front matter header of a markdown document.
// Returns (nil, body, nil) when the document has no header, and an error
// when the header is unclosed or is not valid YAML. Parsing is read-only
// convenience for display and validation; Patch never depends on it.
func Parse(content string) (*CardData, string, error) {
	header, body, found, err := splitHeader(content)
	if err != nil {
		return nil, "", err
	}
	if !found {
		return nil, body, nil
	}

	var card CardData
	if err := yaml.Unmarshal([]byte(header), &card); err != nil {
		return nil, "", fmt.Errorf("parse front matter: %w", err)
	}
	return &card, body, nil
}
