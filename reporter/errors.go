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

package reporter

import (
	"errors"
	"fmt"
)

// ErrInvalidSource is a sentinel error that is returned by compilation in the
// event that errors were reported but the configured ErrorReporter always
// returned nil.
var ErrInvalidSource = errors.New("compile failed: invalid block source")

// ErrUndefinedBlock is the underlying error of a warning about a block whose
// kind has no translation rule.
var ErrUndefinedBlock = errors.New("block is not defined")

// ErrRuleFailed is the underlying error of a warning about a rule that could
// not finish translating its block.
var ErrRuleFailed = errors.New("translation rule failed")

// ErrInvalidName is the underlying error of a warning about a name that
// cannot be written as a bare symbol.
var ErrInvalidName = errors.New("name cannot be written as a symbol")

// ErrInvalidNumber is the underlying error of a warning about a numeric
// literal that was replaced by zero.
var ErrInvalidNumber = errors.New("malformed number")

// Location identifies the block that a diagnostic is about.
type Location struct {
	Form string
	ID   string
	Kind string
}

func (l Location) String() string {
	switch {
	case l.Form != "" && l.ID != "":
		return fmt.Sprintf("%s:%s (%s)", l.Form, l.ID, l.Kind)
	case l.ID != "":
		return fmt.Sprintf("%s (%s)", l.ID, l.Kind)
	case l.Form != "":
		return l.Form
	default:
		return l.Kind
	}
}

// ErrorWithBlock is an error about a block that includes information
// about which block caused it.
//
// The value of Error() will contain both the Location and Underlying error.
// The value of Unwrap() will only be the Underlying error.
type ErrorWithBlock interface {
	error
	GetLocation() Location
	Unwrap() error
}

func Error(loc Location, err error) ErrorWithBlock {
	return errorWithLocation{loc: loc, underlying: err}
}

func Errorf(loc Location, format string, args ...any) ErrorWithBlock {
	return errorWithLocation{loc: loc, underlying: fmt.Errorf(format, args...)}
}

type errorWithLocation struct {
	underlying error
	loc        Location
}

func (e errorWithLocation) Error() string {
	return fmt.Sprintf("%s: %v", e.loc, e.underlying)
}

// GetLocation implements the ErrorWithBlock interface.
func (e errorWithLocation) GetLocation() Location {
	return e.loc
}

// Unwrap implements the ErrorWithBlock interface, supplying the underlying
// error. This error will not include location information.
func (e errorWithLocation) Unwrap() error {
	return e.underlying
}

var _ ErrorWithBlock = errorWithLocation{}
