// Package plan reads multi-pass cleaning plans. A plan chains filter passes,
// typically feeding one pass's output into the next.
package plan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned for plans that parse but cannot be run.
var ErrInvalid = errors.New("invalid plan")

// Pass is one input → output filter step.
type Pass struct {
	Name   string `yaml:"name"`
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

// Plan is an ordered list of passes plus an optional run report path.
type Plan struct {
	Report string `yaml:"report"`
	Passes []Pass `yaml:"passes"`
}

// Load reads a plan file. Relative paths in it resolve against the file's
// directory.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("plan: read %q: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("plan: %q: %w", path, err)
	}
	p.resolve(filepath.Dir(path))
	return p, nil
}

// Parse decodes and validates plan YAML. Paths are left as written.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks the plan and fills in default pass names.
func (p *Plan) Validate() error {
	if len(p.Passes) == 0 {
		return fmt.Errorf("%w: no passes", ErrInvalid)
	}
	for i := range p.Passes {
		ps := &p.Passes[i]
		if ps.Name == "" {
			ps.Name = fmt.Sprintf("pass-%d", i+1)
		}
		if ps.Input == "" {
			return fmt.Errorf("%w: %s: input is required", ErrInvalid, ps.Name)
		}
		if ps.Output == "" {
			return fmt.Errorf("%w: %s: output is required", ErrInvalid, ps.Name)
		}
		if filepath.Clean(ps.Input) == filepath.Clean(ps.Output) {
			return fmt.Errorf("%w: %s: output would overwrite input %q", ErrInvalid, ps.Name, ps.Input)
		}
	}
	return nil
}

func (p *Plan) resolve(base string) {
	if p.Report != "" {
		p.Report = join(base, p.Report)
	}
	for i := range p.Passes {
		p.Passes[i].Input = join(base, p.Passes[i].Input)
		p.Passes[i].Output = join(base, p.Passes[i].Output)
	}
}

func join(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
