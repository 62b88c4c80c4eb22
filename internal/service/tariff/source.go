// Package tariff supplies the plan catalog text injected into agent prompts.
package tariff

import (
	"log"
	"os"
)

// Placeholder stands in for the catalog when the file cannot be read. A
// missing catalog degrades the conversation but never aborts it.
const Placeholder = "Tariff data not available."

// Source reads the tariff reference file. The file is re-read once per
// conversation so edits show up without a restart.
type Source struct {
	path string
}

// NewSource returns a Source for the given file path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Read returns the tariff catalog text, or Placeholder on any read failure.
func (s *Source) Read() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		log.Printf("[tariff] failed to read %s: %v", s.path, err)
		return Placeholder
	}
	return string(data)
}
