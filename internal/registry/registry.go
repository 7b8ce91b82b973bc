// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"context"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/health-report/pkg/types"
)

// Mapping routes items to one section of one deliverable.
type Mapping struct {
	Deliverable   string `json:"deliverable" yaml:"deliverable"`
	TargetSection string `json:"target_section" yaml:"target_section"`
}

// Entry is the registry record for one source file type.
type Entry struct {
	SourceFileType types.SourceFileType `json:"source_file_type" yaml:"source_file_type"`
	TargetMappings []Mapping            `json:"target_mappings" yaml:"target_mappings"`
}

// clone returns a deep copy so callers cannot mutate registry state.
func (e Entry) clone() *Entry {
	e.TargetMappings = append([]Mapping(nil), e.TargetMappings...)
	return &e
}

// Registry looks up the routing entry for a source file type. A nil entry
// with a nil error means no entry exists. Implementations must be safe for
// concurrent use and must not let callers mutate their state.
type Registry interface {
	Entry(ctx context.Context, src types.SourceFileType) (*Entry, error)
}

// Static is an in-memory registry.
type Static map[types.SourceFileType]Entry

// Entry implements Registry.
func (s Static) Entry(_ context.Context, src types.SourceFileType) (*Entry, error) {
	e, ok := s[src]
	if !ok {
		return nil, nil
	}
	return e.clone(), nil
}

// registryFile is the YAML layout of a registry file.
type registryFile struct {
	Entries []Entry `yaml:"entries"`
}

// LoadFile reads a YAML registry file into a Static registry. Entries with
// no source type or no mappings are rejected; a source type listed twice
// has its mappings concatenated in file order.
func LoadFile(path string) (Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry %s: %w", path, err)
	}
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing registry %s: %w", path, err)
	}

	s := make(Static, len(f.Entries))
	for i, e := range f.Entries {
		if e.SourceFileType == "" {
			return nil, fmt.Errorf("registry %s: entry %d: missing source_file_type", path, i)
		}
		if len(e.TargetMappings) == 0 {
			return nil, fmt.Errorf("registry %s: entry %s: no target_mappings", path, e.SourceFileType)
		}
		for j, m := range e.TargetMappings {
			if m.Deliverable == "" {
				return nil, fmt.Errorf("registry %s: entry %s: mapping %d: missing deliverable", path, e.SourceFileType, j)
			}
		}
		prev := s[e.SourceFileType]
		prev.SourceFileType = e.SourceFileType
		prev.TargetMappings = append(prev.TargetMappings, e.TargetMappings...)
		s[e.SourceFileType] = prev
	}
	return s, nil
}
