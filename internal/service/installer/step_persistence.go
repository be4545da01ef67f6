package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
)

// SaveEnvStep writes the collected configuration to envPath. An existing file is
// never overwritten.
type SaveEnvStep struct {
	envPath string
	err     error
	saved   bool
}

func NewSaveEnvStep(envPath string) Step {
	return &SaveEnvStep{envPath: envPath}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved || s.err != nil {
		return s, nil
	}

	if err := writeEnvFile(s.envPath, state.EnvVars); err != nil {
		s.err = err
		return s, func() tea.Msg { return errMsg(err) }
	}

	s.saved = true
	return nil, nil
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return "Configuration saved successfully!\n"
	}
	return "Saving configuration...\n"
}

func writeEnvFile(envPath string, vars map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(envPath), 0755); err != nil {
		return fmt.Errorf("failed to create runtime directory: %w", err)
	}

	if _, err := os.Stat(envPath); err == nil {
		return fmt.Errorf(".env file already exists at %s", envPath)
	}

	keys := lo.Keys(vars)
	slices.Sort(keys)

	var content strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&content, "%s=%s\n", key, vars[key])
	}

	return os.WriteFile(envPath, []byte(content.String()), 0600)
}
