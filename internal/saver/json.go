package saver

import (
	"encoding/json"
	"os"
)

// JSONSaver writes the whole overlay as one indented JSON document.
type JSONSaver struct{}

func (JSONSaver) Extension() string { return "json" }

func (JSONSaver) Save(o Overlay, dir string) ([]string, error) {
	path := tablePath(dir, o.Ticker, "overlay", "json")
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(o); err != nil {
		return nil, err
	}
	return []string{path}, nil
}
