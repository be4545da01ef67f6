package installer

// InstallState holds the variables collected so far, keyed by env name.
type InstallState struct {
	EnvVars map[string]string
}

func NewInstallState() *InstallState {
	return &InstallState{
		EnvVars: make(map[string]string),
	}
}

func (s *InstallState) provider() string {
	return s.EnvVars["LLM_PROVIDER"]
}
