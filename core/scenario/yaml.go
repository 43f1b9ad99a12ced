package scenario

import (
	"gopkg.in/yaml.v3"

	"payoff/core/form"
	"payoff/internal/errors"
)

type yamlFile struct {
	Mode    string     `yaml:"mode"`
	Banding string     `yaml:"banding"`
	Items   []yamlItem `yaml:"items"`
}

type yamlItem struct {
	Name          string `yaml:"name"`
	form.RawInput `yaml:",inline"`
}

func parseYAML(data []byte, filename string) (*Scenario, error) {
	var decoded yamlFile
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		return nil, errors.Parsing(filename, err)
	}

	s := &Scenario{Mode: decoded.Mode, Banding: decoded.Banding}
	for _, it := range decoded.Items {
		s.Entries = append(s.Entries, Entry{Name: it.Name, Raw: it.RawInput})
	}
	return s, nil
}
