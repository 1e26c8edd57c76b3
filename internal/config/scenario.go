package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/buyrent/internal/model"
)

// LoadScenarioFile decodes a standalone scenario file. Keys are the same as
// the [scenario] table; anything missing falls back to base.
// Unknown keys are rejected so typos do not silently use defaults.
func LoadScenarioFile(path string, base model.Parameters) (model.Parameters, error) {
	sc := FromParameters(base)
	md, err := toml.DecodeFile(path, &sc)
	if err != nil {
		return base, fmt.Errorf("parsing scenario %s: %w", filepath.Base(path), err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return base, fmt.Errorf("scenario %s: unknown keys %s", filepath.Base(path), strings.Join(keys, ", "))
	}
	return sc.Parameters(), nil
}

// SaveScenarioFile writes p as a standalone scenario file.
func SaveScenarioFile(path string, p model.Parameters) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("creating scenario file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(FromParameters(p)); err != nil {
		return fmt.Errorf("writing scenario file: %w", err)
	}
	return nil
}
