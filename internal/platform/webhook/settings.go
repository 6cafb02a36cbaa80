package webhook

import (
	"bytes"
	"fmt"
	"os"

	yaml "go.yaml.in/yaml/v3"
)

// Settings drives outbound webhook delivery. It lives in a YAML file so
// operators can flip channels or rotate URLs without a restart; the
// dispatcher watches the file and re-applies it on change.
type Settings struct {
	Slack ChannelSettings `yaml:"slack"`
	Teams ChannelSettings `yaml:"teams"`
	// LogFailures controls whether delivery failures are logged. They are
	// never surfaced to the creation caller either way.
	LogFailures *bool `yaml:"log_failures"`
}

type ChannelSettings struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
}

func (s Settings) logFailures() bool {
	if s.LogFailures == nil {
		return true
	}
	return *s.LogFailures
}

func (s Settings) validate() error {
	if s.Slack.Enabled && s.Slack.URL == "" {
		return fmt.Errorf("webhook: slack enabled without url")
	}
	if s.Teams.Enabled && s.Teams.URL == "" {
		return fmt.Errorf("webhook: teams enabled without url")
	}
	return nil
}

// LoadSettings reads and validates the settings file. Unknown keys are
// rejected so a typo disables nothing silently.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, err
	}
	return parseSettings(data)
}

func parseSettings(data []byte) (Settings, error) {
	var settings Settings
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&settings); err != nil {
		return Settings{}, fmt.Errorf("webhook: parse settings: %w", err)
	}
	if err := settings.validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}
