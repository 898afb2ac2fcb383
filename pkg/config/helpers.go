package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

func ReadYamlFile(file string, out interface{}) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, out)
}

// ResolveFromFiles merges yaml files into out, last provided wins.
// Missing files are skipped so callers can pass optional default paths.
func ResolveFromFiles(out interface{}, files ...string) error {
	for _, file := range files {
		err := ReadYamlFile(file, out)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
