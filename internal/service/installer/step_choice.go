package installer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type choice struct {
	value string
	label string
}

// ChoiceStep stores one of a fixed set of values under envKey.
type ChoiceStep struct {
	envKey  string
	title   string
	choices []choice
	cursor  int
	skip    func(*InstallState) bool
}

func NewProviderStep() Step {
	return &ChoiceStep{
		envKey: "LLM_PROVIDER",
		title:  "Select the completion provider:",
		choices: []choice{
			{"openai", "OpenAI"},
			{"anthropic", "Anthropic"},
			{"openrouter", "OpenRouter"},
			{"ollama", "Ollama"},
			{"custom", "Custom OpenAI-compatible"},
		},
	}
}

func NewEmbeddingProviderStep() Step {
	return &ChoiceStep{
		envKey: "EMBEDDING_PROVIDER",
		title:  "Select the embedding provider:",
		choices: []choice{
			{"openai", "OpenAI (text-embedding-3-small)"},
			{"ollama", "Ollama"},
			{"custom", "Custom OpenAI-compatible"},
		},
	}
}

func NewIndexBackendStep() Step {
	return &ChoiceStep{
		envKey: "INDEX_BACKEND",
		title:  "Where should the vector index live during a run?",
		choices: []choice{
			{"memory", "Process memory"},
			{"sqlite", "In-memory SQLite"},
		},
	}
}

func (s *ChoiceStep) Init() tea.Cmd {
	return nil
}

func (s *ChoiceStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.skip != nil && s.skip(state) {
		return nil, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.choices)-1 {
				s.cursor++
			}
		case "enter":
			state.EnvVars[s.envKey] = s.choices[s.cursor].value
			return nil, nil
		}
	}
	return s, nil
}

func (s *ChoiceStep) View(state *InstallState) string {
	var b strings.Builder
	b.WriteString(s.title + "\n\n")
	for i, c := range s.choices {
		if s.cursor == i {
			b.WriteString(selStyle.Render(fmt.Sprintf("❯ %s", c.label)) + "\n")
		} else {
			b.WriteString(itemStyle.Render(fmt.Sprintf("  %s", c.label)) + "\n")
		}
	}
	b.WriteString("\n(press ctrl+c to quit)\n")
	return b.String()
}
