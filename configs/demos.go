// Package configs holds the demo definitions shipped with the binary.
package configs

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/sandevgo/aitalk/internal/core"
	"gopkg.in/yaml.v3"
)

//go:embed demos.yaml
var defaultDemos []byte

const (
	ActionCorpus = "corpus"
	ActionSearch = "search"
	ActionAnswer = "answer"
)

type Demos struct {
	Stateless StatelessDemo `yaml:"stateless"`
	Memory    MemoryDemo    `yaml:"memory"`
}

type StatelessDemo struct {
	Title string          `yaml:"title"`
	Steps []StatelessStep `yaml:"steps"`
}

type StatelessStep struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Help  string `yaml:"help"`
	// Display replaces the sent text in the output. Empty means the last message.
	Display  string         `yaml:"display"`
	Messages []core.Message `yaml:"messages"`
}

type MemoryDemo struct {
	Title          string       `yaml:"title"`
	TopK           int          `yaml:"top_k"`
	PromptTemplate string       `yaml:"prompt_template"`
	Corpus         []string     `yaml:"corpus"`
	Steps          []MemoryStep `yaml:"steps"`
}

type MemoryStep struct {
	ID     string `yaml:"id"`
	Title  string `yaml:"title"`
	Help   string `yaml:"help"`
	Action string `yaml:"action"`
	Query  string `yaml:"query"`
	// TopK overrides MemoryDemo.TopK when set.
	TopK int `yaml:"top_k"`
}

// LoadDemos reads definitions from path, or the embedded defaults when path is empty.
func LoadDemos(path string) (*Demos, error) {
	data := defaultDemos
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("failed to read demo file: %w", err)
		}
	}
	return ParseDemos(data)
}

func ParseDemos(data []byte) (*Demos, error) {
	var d Demos
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse demos: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *Demos) Validate() error {
	var errs []error
	seen := map[string]bool{}
	checkID := func(id string) {
		switch {
		case id == "":
			errs = append(errs, errors.New("step without id"))
		case id == "all":
			errs = append(errs, errors.New(`step id "all" is reserved`))
		case seen[id]:
			errs = append(errs, fmt.Errorf("duplicate step id %q", id))
		}
		seen[id] = true
	}

	for _, s := range d.Stateless.Steps {
		checkID(s.ID)
		if err := core.ValidateMessages(s.Messages); err != nil {
			errs = append(errs, fmt.Errorf("step %s: %w", s.ID, err))
		}
	}

	m := d.Memory
	if m.TopK <= 0 {
		errs = append(errs, fmt.Errorf("memory top_k must be positive, got %d", m.TopK))
	}
	for _, s := range m.Steps {
		checkID(s.ID)
		switch s.Action {
		case ActionCorpus:
		case ActionSearch, ActionAnswer:
			if s.Query == "" {
				errs = append(errs, fmt.Errorf("step %s: %s needs a query", s.ID, s.Action))
			}
		default:
			errs = append(errs, fmt.Errorf("step %s: unknown action %q", s.ID, s.Action))
		}
		if s.TopK < 0 {
			errs = append(errs, fmt.Errorf("step %s: negative top_k", s.ID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid demo definitions: %w", errors.Join(errs...))
	}
	return nil
}

// K returns the effective top-k for step.
func (m MemoryDemo) K(step MemoryStep) int {
	if step.TopK > 0 {
		return step.TopK
	}
	return m.TopK
}
