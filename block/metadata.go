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

// Metadata describes component types: their properties, methods and
// events. Rules consult it only to fill in labels and coercion types.
type Metadata interface {
	// Class returns the fully-qualified runtime class of a component type.
	Class(componentType string) string
	Property(componentType, name string) (Property, bool)
	Method(componentType, name string) (Method, bool)
	Event(componentType, name string) (Event, bool)
}

// ComponentType is the descriptor of one component type.
type ComponentType struct {
	Name       string     `yaml:"type"`
	ClassName  string     `yaml:"class,omitempty"`
	Properties []Property `yaml:"properties,omitempty"`
	Methods    []Method   `yaml:"methods,omitempty"`
	Events     []Event    `yaml:"events,omitempty"`
}

// Property is a designer or blocks property.
type Property struct {
	Name string `yaml:"name"`
	// Type is the coercion type, e.g. "text" or "number".
	Type string `yaml:"type"`
}

// Param is one parameter of a method or event.
type Param struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Method is a component method.
type Method struct {
	Name    string  `yaml:"name"`
	Params  []Param `yaml:"params,omitempty"`
	Returns string  `yaml:"returns,omitempty"`
}

// HasReturn reports whether the method produces a value.
func (m Method) HasReturn() bool {
	return m.Returns != ""
}

// Event is a component event.
type Event struct {
	Name   string  `yaml:"name"`
	Params []Param `yaml:"params,omitempty"`
}

// Database is a [Metadata] backed by an in-memory table. A nil Database
// answers every lookup with "not found".
type Database map[string]*ComponentType

var _ Metadata = Database(nil)

// NewDatabase indexes the given descriptors by type name. Later
// descriptors replace earlier ones with the same name.
func NewDatabase(types ...*ComponentType) Database {
	db := make(Database, len(types))
	db.Add(types...)
	return db
}

// Add indexes more descriptors.
func (db Database) Add(types ...*ComponentType) {
	for _, t := range types {
		if t != nil {
			db[t.Name] = t
		}
	}
}

func (db Database) Class(componentType string) string {
	if t := db[componentType]; t != nil && t.ClassName != "" {
		return t.ClassName
	}
	return DefaultClassPrefix + componentType
}

func (db Database) Property(componentType, name string) (Property, bool) {
	if t := db[componentType]; t != nil {
		for _, p := range t.Properties {
			if p.Name == name {
				return p, true
			}
		}
	}
	return Property{}, false
}

func (db Database) Method(componentType, name string) (Method, bool) {
	if t := db[componentType]; t != nil {
		for _, m := range t.Methods {
			if m.Name == name {
				return m, true
			}
		}
	}
	return Method{}, false
}

func (db Database) Event(componentType, name string) (Event, bool) {
	if t := db[componentType]; t != nil {
		for _, e := range t.Events {
			if e.Name == name {
				return e, true
			}
		}
	}
	return Event{}, false
}

// DefaultClassPrefix is the package of built-in component classes.
const DefaultClassPrefix = "com.google.appinventor.components.runtime."

// Overlay returns metadata that answers from top first and falls back to
// base, which may be nil.
func Overlay(top Database, base Metadata) Metadata {
	if base == nil {
		return top
	}
	return overlay{top: top, base: base}
}

type overlay struct {
	top  Database
	base Metadata
}

func (o overlay) Class(componentType string) string {
	if t := o.top[componentType]; t != nil && t.ClassName != "" {
		return t.ClassName
	}
	return o.base.Class(componentType)
}

func (o overlay) Property(componentType, name string) (Property, bool) {
	if p, ok := o.top.Property(componentType, name); ok {
		return p, true
	}
	return o.base.Property(componentType, name)
}

func (o overlay) Method(componentType, name string) (Method, bool) {
	if m, ok := o.top.Method(componentType, name); ok {
		return m, true
	}
	return o.base.Method(componentType, name)
}

func (o overlay) Event(componentType, name string) (Event, bool) {
	if e, ok := o.top.Event(componentType, name); ok {
		return e, true
	}
	return o.base.Event(componentType, name)
}
