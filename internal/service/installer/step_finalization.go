package installer

import (
	tea "github.com/charmbracelet/bubbletea"
)

// FinalizationStep fills defaults the demos rely on.
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if state.EnvVars["EMBEDDING_PROVIDER"] == "ollama" && state.EnvVars["EMBEDDING_MODEL"] == "" {
		state.EnvVars["EMBEDDING_MODEL"] = "nomic-embed-text"
	}
	if state.EnvVars["AITALK_DEBUG"] == "" {
		state.EnvVars["AITALK_DEBUG"] = "0"
	}

	for k, v := range state.EnvVars {
		if v == "" {
			delete(state.EnvVars, k)
		}
	}
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}
