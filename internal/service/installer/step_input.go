package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputStep reads one value. Keys are echoed masked; optional steps accept an
// empty answer, and a placeholder-only step takes the placeholder.
type InputStep struct {
	input    textinput.Model
	envKey   string
	title    string
	optional bool
	secret   bool
	skip     func(*InstallState) bool
	ready    bool
}

func newInputStep(envKey, title, placeholder string) *InputStep {
	ti := textinput.New()
	ti.CharLimit = 255
	ti.Width = 50
	ti.Placeholder = placeholder
	return &InputStep{input: ti, envKey: envKey, title: title}
}

// NewAPIKeyStep asks for the key of the chosen completion provider.
func NewAPIKeyStep() Step {
	s := newInputStep("", "", "")
	s.secret = true
	return &apiKeyStep{InputStep: s}
}

type apiKeyStep struct {
	*InputStep
}

func (s *apiKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !s.ready {
		switch state.provider() {
		case "openai":
			s.envKey, s.title, s.input.Placeholder = "OPENAI_API_KEY", "OpenAI API Key", "sk-..."
		case "anthropic":
			s.envKey, s.title, s.input.Placeholder = "ANTHROPIC_API_KEY", "Anthropic API Key", "sk-ant-..."
		case "openrouter":
			s.envKey, s.title, s.input.Placeholder = "OPENROUTER_API_KEY", "OpenRouter API Key", "sk-or-v1-..."
		case "ollama":
			s.envKey, s.title = "OLLAMA_API_KEY", "Ollama API Key"
			s.optional = true
		case "custom":
			s.envKey, s.title = "CUSTOM_OPENAI_API_KEY", "Custom provider API Key"
			s.optional = true
		default:
			return nil, nil
		}
	}
	next, cmd := s.InputStep.Update(msg, state, width, height)
	if next == nil {
		return nil, cmd
	}
	return s, cmd
}

// NewBaseURLStep asks for the endpoint of self-hosted completion providers.
func NewBaseURLStep() Step {
	return &baseURLStep{InputStep: newInputStep("", "", "")}
}

type baseURLStep struct {
	*InputStep
}

func (s *baseURLStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !s.ready {
		switch state.provider() {
		case "ollama":
			s.envKey, s.title, s.input.Placeholder = "OLLAMA_BASE_URL", "Ollama Base URL", "http://localhost:11434"
		case "custom":
			s.envKey, s.title, s.input.Placeholder = "CUSTOM_OPENAI_BASE_URL", "Custom OpenAI Base URL", ""
		default:
			return nil, nil
		}
	}
	next, cmd := s.InputStep.Update(msg, state, width, height)
	if next == nil {
		return nil, cmd
	}
	return s, cmd
}

// NewEmbeddingKeyStep asks for an embedding key unless the completion side
// already set OPENAI_API_KEY.
func NewEmbeddingKeyStep() Step {
	s := newInputStep("EMBEDDING_API_KEY", "Embedding API Key", "sk-...")
	s.secret = true
	s.skip = func(state *InstallState) bool {
		return state.EnvVars["EMBEDDING_PROVIDER"] != "openai" || state.EnvVars["OPENAI_API_KEY"] != ""
	}
	return s
}

// NewEmbeddingURLStep asks for the endpoint of a custom embedding provider.
func NewEmbeddingURLStep() Step {
	s := newInputStep("EMBEDDING_BASE_URL", "Embedding Base URL", "")
	s.skip = func(state *InstallState) bool {
		return state.EnvVars["EMBEDDING_PROVIDER"] != "custom"
	}
	return s
}

func (s *InputStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *InputStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.skip != nil && s.skip(state) {
		return nil, nil
	}
	if !s.ready {
		s.ready = true
		if s.secret {
			s.input.EchoMode = textinput.EchoPassword
			s.input.EchoCharacter = '•'
		}
		return s, s.input.Focus()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())
		if val == "" {
			val = s.input.Placeholder
			if s.secret {
				val = ""
			}
		}
		if val == "" && !s.optional {
			return s, cmd
		}
		if val != "" {
			state.EnvVars[s.envKey] = val
		}
		return nil, nil
	}
	return s, cmd
}

func (s *InputStep) View(state *InstallState) string {
	hint := ""
	if s.optional {
		hint = " (optional - press Enter to skip)"
	}
	return fmt.Sprintf("Enter %s%s:\n\n%s\n\n(press enter to confirm)\n", s.title, hint, s.input.View())
}
