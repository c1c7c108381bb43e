package scene

import (
	"fmt"
	"sort"
)

// builtins maps scene names to their constructors
var builtins = map[string]struct {
	description string
	create      func() (*Scene, error)
}{
	"some-spheres": {"Four colored spheres resting on a large support, lit by a distant white light", NewSomeSpheresScene},
	"red-light":    {"A white light facing a red diffuse sphere", NewRedLightScene},
	"empty":        {"No objects, only the background", NewEmptyScene},
	"cornell":      {"Cornell box with sphere walls and a ceiling light", NewCornellScene},
	"sphere-grid":  {"Grid of colored diffuse spheres on a large ground sphere, lit by a distant sun", NewSphereGridScene},
}

// Names returns the built-in scene names in alphabetical order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create builds the named built-in scene
func Create(name string) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, Names())
	}
	s, err := b.create()
	if err != nil {
		return nil, fmt.Errorf("building scene %q: %w", name, err)
	}
	s.Description = b.description
	return s, nil
}
