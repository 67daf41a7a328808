package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const header = "mdedit configuration. Environment variables override these\nvalues, e.g. MDEDIT_EDITOR_MAX_LENGTH=280."

// Save writes cfg to path. Sections already present in the file are replaced
// in place; comments and unknown keys elsewhere in the file are preserved.
func Save(path string, cfg Config) error {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	// Parse into yaml.Node to preserve comments
	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	var updated yaml.Node
	if err := updated.Encode(cfg); err != nil {
		return fmt.Errorf("building config node: %w", err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		updated.HeadComment = header
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{&updated}}
	} else {
		merge(doc.Content[0], &updated)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeFile(path, buf.Bytes())
}

// WriteDefault writes the default configuration to path unless a file
// already exists there.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}
	return Save(path, Defaults())
}

// merge replaces or appends every key of src in dst, both mapping nodes.
func merge(dst, src *yaml.Node) {
	for i := 0; i+1 < len(src.Content); i += 2 {
		key, value := src.Content[i], src.Content[i+1]
		found := false
		for j := 0; j+1 < len(dst.Content); j += 2 {
			if dst.Content[j].Value != key.Value {
				continue
			}
			if dst.Content[j+1].Kind == yaml.MappingNode && value.Kind == yaml.MappingNode {
				merge(dst.Content[j+1], value)
			} else {
				value.LineComment = dst.Content[j+1].LineComment
				dst.Content[j+1] = value
			}
			found = true
			break
		}
		if !found {
			dst.Content = append(dst.Content, key, value)
		}
	}
}

func writeFile(path string, data []byte) error {
	// Write atomically (write to temp, then rename)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".mdedit.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
