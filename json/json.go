// Package json persists document decorations as JSON.
package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/mdedit"
)

// envelope is the v1 wire format for the decorations of one document.
type envelope struct {
	Version int         `json:"version"`
	Path    string      `json:"path"`
	Length  int         `json:"length"`
	Regions []regionDTO `json:"regions"`
	Spans   []spanDTO   `json:"spans"`
}

// regionDTO is the JSON representation of a Region with a kind
// discriminator.
type regionDTO struct {
	Kind string `json:"kind"`
	From int    `json:"from"`
	To   int    `json:"to"`
}

type spanDTO struct {
	From  int    `json:"from"`
	To    int    `json:"to"`
	Class string `json:"class"`
}

var kinds = []mdedit.RegionKind{
	mdedit.CodeBlockLine,
	mdedit.CodeBlockInline,
	mdedit.BlockquoteLine,
	mdedit.AutolinkSpan,
}

// MarshalDecorations serializes Decorations to JSON in v1 envelope format.
func MarshalDecorations(d mdedit.Decorations) ([]byte, error) {
	env := envelope{
		Version: 1,
		Path:    d.Path,
		Length:  d.Length,
		Regions: make([]regionDTO, 0, d.Regions.Len()),
		Spans:   make([]spanDTO, len(d.Spans)),
	}
	for i, r := range d.Regions.Regions() {
		if r.Kind.String() == "unknown" {
			return nil, fmt.Errorf("region %d: unknown region kind: %d", i, r.Kind)
		}
		env.Regions = append(env.Regions, regionDTO{Kind: r.Kind.String(), From: r.From, To: r.To})
	}
	for i, s := range d.Spans {
		env.Spans[i] = spanDTO{From: s.From, To: s.To, Class: s.Class}
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalDecorations deserializes Decorations from JSON in v1 envelope
// format.
func UnmarshalDecorations(data []byte) (mdedit.Decorations, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return mdedit.Decorations{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return mdedit.Decorations{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	regions := make([]mdedit.Region, len(env.Regions))
	for i, dto := range env.Regions {
		kind, err := unmarshalKind(dto.Kind)
		if err != nil {
			return mdedit.Decorations{}, fmt.Errorf("region %d: %w", i, err)
		}
		regions[i] = mdedit.Region{From: dto.From, To: dto.To, Kind: kind}
	}
	var spans []mdedit.Span
	for _, dto := range env.Spans {
		spans = append(spans, mdedit.Span{From: dto.From, To: dto.To, Class: dto.Class})
	}
	return mdedit.Decorations{
		Path:    env.Path,
		Length:  env.Length,
		Regions: mdedit.NewRegionSet(regions),
		Spans:   spans,
	}, nil
}

func unmarshalKind(s string) (mdedit.RegionKind, error) {
	for _, k := range kinds {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown region kind: %q", s)
}

// Save writes Decorations to a JSON file, creating parent directories as
// needed.
func Save(path string, d mdedit.Decorations) error {
	data, err := MarshalDecorations(d)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads Decorations from a JSON file.
func Load(path string) (mdedit.Decorations, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return mdedit.Decorations{}, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalDecorations(data)
}
