package voice

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Voice is a single synthesizable voice identity. The ID is whatever
// the TTS provider expects, the Name is what users see and type.
type Voice struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Catalog is the static list of voices loaded at startup.
// Read-only after load; the first entry is the default.
type Catalog struct {
	voices []Voice
}

// NewCatalog validates the voice list. At least one complete entry
// is required - the rest of the bot needs a voice to fall back on.
func NewCatalog(voices []Voice) (*Catalog, error) {
	if len(voices) == 0 {
		return nil, errors.New("voice catalog is empty")
	}
	for _, v := range voices {
		if v.ID == "" || v.Name == "" {
			return nil, fmt.Errorf("voice catalog entry missing id or name; %+v", v)
		}
	}
	return &Catalog{voices: append([]Voice(nil), voices...)}, nil
}

// LoadCatalog reads the voice list from a YAML file.
// A missing, empty, or malformed file is an error.
func LoadCatalog(filename string) (*Catalog, error) {
	file, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read voice catalog; %w", err)
	}

	var voices []Voice
	if err := yaml.Unmarshal(file, &voices); err != nil {
		return nil, fmt.Errorf("failed to parse voice catalog; %w", err)
	}

	return NewCatalog(voices)
}

func (c *Catalog) List() []Voice {
	return append([]Voice(nil), c.voices...)
}

func (c *Catalog) Default() Voice {
	return c.voices[0]
}

// ByName resolves a voice by exact display-name match.
func (c *Catalog) ByName(name string) (Voice, bool) {
	for _, v := range c.voices {
		if v.Name == name {
			return v, true
		}
	}
	return Voice{}, false
}
