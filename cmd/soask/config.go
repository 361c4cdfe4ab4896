package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/pelletier/go-toml/v2"
)

// TOML is a kong.ConfigurationLoader reading flag defaults from a TOML
// document. Keys are flag names; dashes may be written as underscores.
//
//	answers = 5
//	model = "gpt-4o-mini"
//	no_stream = true
func TOML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := toml.NewDecoder(r).Decode(&values); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		v, ok := values[flag.Name]
		if !ok {
			v, ok = values[strings.ReplaceAll(flag.Name, "-", "_")]
		}
		if !ok {
			return nil, nil
		}
		switch v.(type) {
		case map[string]any, []any:
			return nil, fmt.Errorf("config key %q must be a scalar", flag.Name)
		}
		return fmt.Sprint(v), nil
	}), nil
}
