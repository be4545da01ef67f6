package installer

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

var modelPresets = map[string][]item{
	"openai": {
		{id: "gpt-4o-mini", title: "gpt-4o-mini", desc: "Small and cheap, used by the demos"},
		{id: "gpt-4o", title: "gpt-4o", desc: "Larger multimodal model"},
		{id: "gpt-4.1-mini", title: "gpt-4.1-mini", desc: "Long context"},
	},
	"anthropic": {
		{id: "claude-3-5-haiku-latest", title: "Claude Haiku 3.5", desc: "Fast"},
		{id: "claude-sonnet-4-20250514", title: "Claude Sonnet 4", desc: "Balanced"},
	},
	"openrouter": {
		{id: "openai/gpt-4o-mini", title: "openai/gpt-4o-mini", desc: "OpenAI via OpenRouter"},
		{id: "anthropic/claude-3.5-haiku", title: "anthropic/claude-3.5-haiku", desc: "Anthropic via OpenRouter"},
		{id: "google/gemini-2.0-flash-001", title: "google/gemini-2.0-flash-001", desc: "Google via OpenRouter"},
	},
	"ollama": {
		{id: "llama3.2", title: "llama3.2", desc: "Meta Llama 3.2"},
		{id: "qwen2.5", title: "qwen2.5", desc: "Qwen 2.5, good at Japanese"},
	},
}

// ModelStep picks LLM_MODEL from the presets of the chosen provider. Providers
// without presets keep the default.
type ModelStep struct {
	list   list.Model
	loaded bool
}

func NewModelStep() Step {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select Completion Model"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	return &ModelStep{list: l}
}

func (s *ModelStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !s.loaded {
		presets, ok := modelPresets[state.provider()]
		if !ok {
			return nil, nil
		}
		items := make([]list.Item, len(presets))
		for i, p := range presets {
			items[i] = p
		}
		s.list.SetItems(items)
		s.loaded = true
	}

	s.list.SetSize(width, height-4)

	var cmd tea.Cmd
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		wasFiltering := s.list.FilterState() == list.Filtering
		s.list, cmd = s.list.Update(msg)

		if wasFiltering || s.list.FilterState() == list.Filtering {
			return s, cmd
		}

		if i, ok := s.list.SelectedItem().(item); ok {
			state.EnvVars["LLM_MODEL"] = i.id
			return nil, nil
		}
		return s, cmd
	}

	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *ModelStep) View(state *InstallState) string {
	if !s.loaded {
		return "Loading models...\n"
	}
	return s.list.View()
}
