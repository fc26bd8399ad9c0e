package loader

import (
	"encoding/json"
	"os"

	"gapscan/internal/model"
)

// JSONLoader reads packets stored as a JSON array of bars.
type JSONLoader struct{}

func (JSONLoader) Extension() string { return "json" }

func (JSONLoader) Load(path string) ([]model.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var bars []model.Bar
	if err := json.NewDecoder(f).Decode(&bars); err != nil {
		return nil, err
	}
	return bars, nil
}
