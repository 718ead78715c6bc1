package project

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/piwi3910/PrintPrep/internal/model"
)

// DefaultInventoryPath returns the default file path for the filament
// spool inventory.
func DefaultInventoryPath() string {
	return filepath.Join(DefaultConfigDir(), "spools.json")
}

// SaveSpools saves the filament inventory to a JSON file.
func SaveSpools(path string, spools []model.FilamentSpool) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(spools, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSpools loads the filament inventory from a JSON file.
// Returns an empty slice if the file does not exist.
func LoadSpools(path string) ([]model.FilamentSpool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.FilamentSpool{}, nil
		}
		return nil, err
	}

	var spools []model.FilamentSpool
	if err := json.Unmarshal(data, &spools); err != nil {
		return nil, err
	}
	if spools == nil {
		spools = []model.FilamentSpool{}
	}
	return spools, nil
}
