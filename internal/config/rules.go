package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"skombo/internal/catalog"
)

// Rules holds per-character notation quirks that cannot be resolved by
// name. Each Sequence maps a motion+button input onto catalog rows that
// are consumed in order across one combo.
type Rules struct {
	Version   int        `yaml:"version"`
	Sequences []Sequence `yaml:"sequences"`

	byCharacter map[string][]Sequence
}

type Sequence struct {
	Character string `yaml:"character"`
	Name      string `yaml:"name"`
	Motion    string `yaml:"motion"`
	Button    string `yaml:"button"`
	Group     string `yaml:"group"`
}

// DefaultRules returns the built-in sequences: Annie's divekick, whose
// re-entry rows are used one after another.
func DefaultRules() *Rules {
	rules := &Rules{
		Version: 1,
		Sequences: []Sequence{
			{Character: "Annie", Name: "divekick", Motion: "236", Button: "K", Group: "RE ENTRY"},
		},
	}
	rules.index()
	return rules
}

func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}

	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}

	if err := validateRules(&rules); err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}

	rules.index()
	return &rules, nil
}

func validateRules(r *Rules) error {
	if r.Version != 1 {
		return fmt.Errorf("unsupported version: %d", r.Version)
	}

	seen := make(map[string]struct{})
	for i, seq := range r.Sequences {
		if strings.TrimSpace(seq.Character) == "" {
			return fmt.Errorf("sequence %d character is required", i)
		}
		if strings.TrimSpace(seq.Name) == "" {
			return fmt.Errorf("sequence %d name is required", i)
		}
		if strings.TrimSpace(seq.Motion) == "" {
			return fmt.Errorf("sequence %s motion is required", seq.Name)
		}
		switch strings.ToUpper(strings.TrimSpace(seq.Button)) {
		case "P", "K":
		default:
			return fmt.Errorf("sequence %s button must be P or K, got %q", seq.Name, seq.Button)
		}
		if strings.TrimSpace(seq.Group) == "" {
			return fmt.Errorf("sequence %s group is required", seq.Name)
		}
		key := catalog.Fold(seq.Character) + "/" + catalog.Fold(seq.Name)
		if _, exists := seen[key]; exists {
			return fmt.Errorf("duplicate sequence %s for %s", seq.Name, seq.Character)
		}
		seen[key] = struct{}{}
	}

	return nil
}

func (r *Rules) index() {
	r.byCharacter = make(map[string][]Sequence)
	for _, seq := range r.Sequences {
		key := catalog.Fold(seq.Character)
		r.byCharacter[key] = append(r.byCharacter[key], seq)
	}
}

// For returns the character's sequences in file order.
func (r *Rules) For(character string) []Sequence {
	if r == nil {
		return nil
	}
	return r.byCharacter[catalog.Fold(character)]
}
