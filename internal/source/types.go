package source

import (
	"github.com/theirongolddev/buyrent/internal/model"
)

// ScenarioFile is a scenario .toml file found during directory scanning.
type ScenarioFile struct {
	Path string
	Name string // path relative to the scanned dir, without extension
}

// Entry is a successfully decoded and projected scenario file.
type Entry struct {
	File   ScenarioFile
	Result model.Result
}

// FileError records why a scenario file could not be used.
type FileError struct {
	File ScenarioFile
	Err  error
}

func (e FileError) Error() string {
	return e.File.Name + ": " + e.Err.Error()
}

func (e FileError) Unwrap() error {
	return e.Err
}
