// Package content loads the narrative content bundle used to assemble reports.
package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/hpmalabs/hpma/schema"
	"gopkg.in/yaml.v3"
)

//go:embed default/*.yaml
var defaultFS embed.FS

const defaultDir = "default"

// Bundle file names. Each file decodes into one part of the bundle.
const (
	VocabFile      = "vocab.yaml"
	IdentitiesFile = "identities.yaml"
	ModesFile      = "modes.yaml"
	PrimariesFile  = "primaries.yaml"
	DyadsFile      = "dyads.yaml"
	TriadsFile     = "triads.yaml"
	RulesFile      = "rules.yaml"
)

var validate = validator.New()

var (
	defaultBundle *schema.ContentBundle
	defaultErr    error
	defaultOnce   sync.Once
)

// Default returns the embedded bundle, parsing it on first use.
// The returned bundle is shared and must not be modified.
func Default() (*schema.ContentBundle, error) {
	defaultOnce.Do(func() {
		defaultBundle, defaultErr = load(func(name string) ([]byte, error) {
			return defaultFS.ReadFile(defaultDir + "/" + name)
		})
	})
	return defaultBundle, defaultErr
}

// Load reads a bundle from dir. Files missing from dir fall back to the embedded defaults.
// An empty dir returns the embedded bundle.
func Load(dir string) (*schema.ContentBundle, error) {
	if dir == "" {
		return Default()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path %s is not a directory", dir)
	}

	return load(func(name string) ([]byte, error) {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if errors.Is(err, fs.ErrNotExist) {
			return defaultFS.ReadFile(defaultDir + "/" + name)
		}
		return data, err
	})
}

// load decodes every bundle file through read and validates the result.
func load(read func(name string) ([]byte, error)) (*schema.ContentBundle, error) {
	b := &schema.ContentBundle{}
	parts := []struct {
		name string
		dst  any
	}{
		{VocabFile, &b.Vocab},
		{IdentitiesFile, &b.Identities},
		{ModesFile, &b.Modes},
		{PrimariesFile, &b.Primaries},
		{DyadsFile, &b.Dyads},
		{TriadsFile, &b.Triads},
		{RulesFile, &b.Rules},
	}

	for _, part := range parts {
		data, err := read(part.name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", part.name, err)
		}
		if err := yaml.Unmarshal(data, part.dst); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", part.name, err)
		}
	}
	b.Version = b.Vocab.Version

	if err := Validate(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks the structural rules of a bundle.
func Validate(b *schema.ContentBundle) error {
	if err := validate.Struct(b.Identities); err != nil {
		return fmt.Errorf("invalid identities: %w", err)
	}
	if err := validate.Struct(b.Modes); err != nil {
		return fmt.Errorf("invalid modes: %w", err)
	}
	if err := validate.Struct(b.Rules); err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}

	for key, dyad := range b.Identities.Dyads {
		if want := schema.IdentityKey(dyad.Name); key != want {
			return fmt.Errorf("dyad %q is keyed as %s, expected %s", dyad.Name, key, want)
		}
		for _, a := range dyad.Pair {
			if _, ok := schema.ParseArchetype(a); !ok {
				return fmt.Errorf("dyad %s names unknown archetype %q", key, a)
			}
		}
	}
	for key := range b.Primaries {
		if _, ok := schema.ParseArchetype(key); !ok {
			return fmt.Errorf("primary content for unknown archetype %q", key)
		}
	}

	seen := make(map[string]struct{}, len(b.Rules.Rules))
	for _, r := range b.Rules.Rules {
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("duplicate rule id %q", r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}
