package renderer

import (
	"encoding/json"
	"os"
)

// Plan is the JSON document written next to a rendered poster for debugging.
type Plan struct {
	Template string `json:"template"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Ops      []Op   `json:"ops"`
}

// MarshalPlan encodes p as indented JSON.
func MarshalPlan(p *Plan) ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// WriteDebugJSON writes the paint plan to path for inspection or visual diffing.
func WriteDebugJSON(p *Plan, path string) error {
	if p == nil {
		return nil
	}
	data, err := MarshalPlan(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
