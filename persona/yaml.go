package persona

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a single YAML persona definition.
//
//	name: Summarizer
//	role: You are a concise summarizer.
//	prompt: "Summarize: {text}"
//	constraints:
//	  - Answer in one sentence.
//
// Unknown fields are rejected so typos in persona files fail loudly at load
// time instead of producing silently incomplete personas.
func Parse(data []byte) (Definition, error) {
	var def Definition

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&def); err != nil {
		return Definition{}, fmt.Errorf("parse persona: %w", err)
	}

	if err := def.Validate(); err != nil {
		return Definition{}, err
	}

	return def, nil
}

// LoadFile reads one persona definition from a YAML file. When the file omits
// a name, the file's base name (without extension) is used, matching the
// common one-persona-per-file layout.
func LoadFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("read persona file: %w", err)
	}

	var def Definition

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&def); err != nil {
		return Definition{}, fmt.Errorf("%s: parse persona: %w", path, err)
	}

	if def.Name == "" {
		def.Name = personaNameFromPath(path)
	}

	if err := def.Validate(); err != nil {
		return Definition{}, fmt.Errorf("%s: %w", path, err)
	}

	return def, nil
}

// LoadDir loads every .yaml / .yml persona definition in dir (non-recursive),
// sorted by file name for deterministic registration order.
func LoadDir(dir string) ([]Definition, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read persona dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	defs := make([]Definition, 0, len(names))
	for _, name := range names {
		def, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}

	return defs, nil
}

// LoadDirInto loads a persona directory straight into a store.
func LoadDirInto(dir string, store *InMemoryStore) error {
	defs, err := LoadDir(dir)
	if err != nil {
		return err
	}

	return store.RegisterAll(defs...)
}

func personaNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
