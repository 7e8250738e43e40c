// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package block

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/blockcompile/yail"
)

// SupportedVersions is the range of block-language versions that this
// package's rules know how to translate.
const SupportedVersions = ">= 1.0.0, < 2.0.0"

// ErrEmptyFile is returned by [Decode] when the input holds no document.
var ErrEmptyFile = errors.New("block file is empty")

// File is one screen ("form") of a project: its designer components and the
// top-level blocks of its workspace.
type File struct {
	Version    string           `yaml:"version,omitempty"`
	Form       string           `yaml:"form"`
	Package    string           `yaml:"package,omitempty"`
	Comment    string           `yaml:"comment,omitempty"`
	Components []*Component     `yaml:"components,omitempty"`
	Metadata   []*ComponentType `yaml:"metadata,omitempty"`
	Blocks     []*Block         `yaml:"blocks,omitempty"`
}

// Component is a designer component instance.
type Component struct {
	Name       string            `yaml:"name"`
	Type       string            `yaml:"type"`
	Properties map[string]string `yaml:"properties,omitempty"`
	Children   []*Component      `yaml:"children,omitempty"`
}

// PropertyNames returns the names of the properties set on c, sorted.
func (c *Component) PropertyNames() []string {
	names := make([]string, 0, len(c.Properties))
	for name := range c.Properties {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Decode reads a YAML block file. Blocks without an id are given one
// derived from their position, e.g. "2/DO/0/VALUE".
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("decoding block file: %w", err)
	}
	if f.Form == "" {
		return nil, errors.New("block file has no form name")
	}
	if !yail.IsSymbol(nil, f.Form) {
		return nil, fmt.Errorf("invalid form name %q", f.Form)
	}
	if f.Package != "" && !yail.IsSymbol(nil, f.Package) {
		return nil, fmt.Errorf("form %s: invalid package name %q", f.Form, f.Package)
	}
	for i, b := range f.Blocks {
		if err := fill(b, strconv.Itoa(i)); err != nil {
			return nil, err
		}
	}
	return &f, nil
}

func fill(b *Block, path string) error {
	if b == nil {
		return fmt.Errorf("block %s: empty entry", path)
	}
	if b.KindName == "" {
		return fmt.Errorf("block %s: missing kind", path)
	}
	if b.BlockID == "" {
		b.BlockID = path
	}
	for name, child := range b.Inputs {
		if child == nil {
			continue
		}
		if err := fill(child, path+"/"+name); err != nil {
			return err
		}
	}
	for name, children := range b.Slots {
		for i, child := range children {
			if err := fill(child, path+"/"+name+"/"+strconv.Itoa(i)); err != nil {
				return err
			}
		}
	}
	return nil
}

// CheckVersion verifies that the file's declared version satisfies
// constraint. A file without a version is assumed to be current.
func (f *File) CheckVersion(constraint string) error {
	if f.Version == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	v, err := semver.NewVersion(f.Version)
	if err != nil {
		return fmt.Errorf("form %s: invalid version %q: %w", f.Form, f.Version, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("form %s: version %s does not satisfy %s", f.Form, v, constraint)
	}
	return nil
}

// Nodes returns the top-level blocks as nodes.
func (f *File) Nodes() []Node {
	nodes := make([]Node, len(f.Blocks))
	for i, b := range f.Blocks {
		nodes[i] = b
	}
	return nodes
}

// Database returns the component descriptors declared in the file.
func (f *File) Database() Database {
	return NewDatabase(f.Metadata...)
}

// DecodeMetadata reads a YAML list of component type descriptors.
func DecodeMetadata(r io.Reader) (Database, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var types []*ComponentType
	if err := dec.Decode(&types); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding component metadata: %w", err)
	}
	return NewDatabase(types...), nil
}
