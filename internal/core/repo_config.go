package core

// RepoConfig represents the structure of the .mamba.yml file.
type RepoConfig struct {
	// Extra instructions appended to the system prompt, one per line.
	CustomInstructions []string `yaml:"custom_instructions"`
}

// DefaultRepoConfig returns a config with default values.
func DefaultRepoConfig() *RepoConfig {
	return &RepoConfig{
		CustomInstructions: []string{},
	}
}
