package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/harrisonrobin/todo/pkg/model"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatTOML = "toml"
)

// codec converts between a task list and the bytes of one file format.
type codec interface {
	Marshal(tasks []model.Task) ([]byte, error)
	Unmarshal(data []byte) ([]model.Task, error)
}

// formatFor picks the format from the file extension. Anything unknown is
// treated as JSON.
func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return formatYAML
	case ".toml":
		return formatTOML
	default:
		return formatJSON
	}
}

func codecFor(format string) codec {
	switch format {
	case formatYAML:
		return yamlCodec{}
	case formatTOML:
		return tomlCodec{}
	default:
		return jsonCodec{}
	}
}

type jsonCodec struct{}

func (jsonCodec) Marshal(tasks []model.Task) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(tasks); err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return buf.Bytes(), nil
}

func (jsonCodec) Unmarshal(data []byte) ([]model.Task, error) {
	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}
	return tasks, nil
}

type yamlCodec struct{}

func (yamlCodec) Marshal(tasks []model.Task) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(tasks); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func (yamlCodec) Unmarshal(data []byte) ([]model.Task, error) {
	var tasks []model.Task
	if err := yaml.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	return tasks, nil
}

// tomlDocument wraps the list because TOML has no top-level arrays.
type tomlDocument struct {
	Tasks []model.Task `toml:"tasks"`
}

type tomlCodec struct{}

func (tomlCodec) Marshal(tasks []model.Task) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(tomlDocument{Tasks: tasks}); err != nil {
		return nil, fmt.Errorf("failed to marshal TOML: %w", err)
	}
	return buf.Bytes(), nil
}

func (tomlCodec) Unmarshal(data []byte) ([]model.Task, error) {
	var doc tomlDocument
	if _, err := toml.Decode(string(data), &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal TOML: %w", err)
	}
	return doc.Tasks, nil
}
