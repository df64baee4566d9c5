package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"habits/internal/core"
)

type seedFile struct {
	Defaults []struct {
		Name  string `yaml:"name"`
		Color string `yaml:"color"`
	} `yaml:"defaults"`
}

// LoadDefaultsSeed reads a YAML file of the form
//
//	defaults:
//	  - name: Walk
//	    color: "#ccff90"
//
// Blank names are dropped and missing colors get a palette swatch.
func LoadDefaultsSeed(path string) ([]core.DefaultHabitEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	out := make([]core.DefaultHabitEntry, 0, len(f.Defaults))
	for _, d := range f.Defaults {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			continue
		}
		color := strings.TrimSpace(d.Color)
		if color == "" {
			color = core.RandomColor()
		}
		out = append(out, core.DefaultHabitEntry{Name: name, Color: color})
	}
	return out, nil
}

// SeedDefaultsIfEmpty writes the seed file's entries when the store has no
// templates yet. An existing template list is never touched.
func SeedDefaultsIfEmpty(ctx context.Context, store TemplateStore, path string) error {
	if path == "" {
		return nil
	}
	current, err := store.GetDefaults(ctx)
	if err != nil {
		return fmt.Errorf("read current defaults: %w", err)
	}
	if len(current) > 0 {
		slog.InfoContext(ctx, "Templates already present, skipping seed", "count", len(current))
		return nil
	}
	seed, err := LoadDefaultsSeed(path)
	if err != nil {
		return err
	}
	if len(seed) == 0 {
		return nil
	}
	if err := store.SetDefaults(ctx, seed); err != nil {
		return fmt.Errorf("write seeded defaults: %w", err)
	}
	slog.InfoContext(ctx, "Seeded templates from file", "path", path, "count", len(seed))
	return nil
}
