package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/piwi3910/PrintPrep/internal/model"
)

// DefaultMachinesPath returns the default file path for custom machines.
func DefaultMachinesPath() string {
	return filepath.Join(DefaultConfigDir(), "machines.json")
}

// SaveCustomMachines saves custom machine definitions to a JSON file.
func SaveCustomMachines(path string, machines []model.Machine) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(machines, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomMachines loads custom machine definitions from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadCustomMachines(path string) ([]model.Machine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Machine{}, nil
		}
		return nil, err
	}

	var machines []model.Machine
	if err := json.Unmarshal(data, &machines); err != nil {
		return nil, err
	}
	if machines == nil {
		machines = []model.Machine{}
	}
	return machines, nil
}
