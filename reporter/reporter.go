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

// Package reporter carries diagnostics out of the emitter and compiler
// without stopping them. Translation never aborts on a malformed block;
// it reports a warning and keeps going.
package reporter

import (
	"sync"
)

// ErrorReporter is responsible for reporting the given error. If the reporter
// returns a non-nil error, compilation will abort with that error. If the
// reporter returns nil, compilation will continue, allowing the compiler to
// report as many errors as it can find.
type ErrorReporter func(err ErrorWithBlock) error

// WarningReporter is responsible for reporting the given warning. Warnings
// are things that do not cause compilation to fail, such as a placeholder
// emitted in place of a malformed block.
type WarningReporter func(ErrorWithBlock)

type Reporter interface {
	Error(ErrorWithBlock) error
	Warning(ErrorWithBlock)
}

func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return reporterFuncs{errs: errs, warnings: warnings}
}

type reporterFuncs struct {
	errs     ErrorReporter
	warnings WarningReporter
}

func (r reporterFuncs) Error(err ErrorWithBlock) error {
	if r.errs == nil {
		return err
	}
	return r.errs(err)
}

func (r reporterFuncs) Warning(err ErrorWithBlock) {
	if r.warnings != nil {
		r.warnings(err)
	}
}

// Handler wraps a Reporter and remembers the first error it let through.
// It is safe for concurrent use.
type Handler struct {
	reporter Reporter

	mu           sync.Mutex
	errsReported bool
	err          error
	warnings     int
}

func NewHandler(rep Reporter) *Handler {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	return &Handler{reporter: rep}
}

func (h *Handler) HandleErrorf(loc Location, format string, args ...any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	h.errsReported = true
	err := h.reporter.Error(Errorf(loc, format, args...))
	h.err = err
	return err
}

func (h *Handler) HandleError(err error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	if ewb, ok := err.(ErrorWithBlock); ok {
		h.errsReported = true
		err = h.reporter.Error(ewb)
	}
	h.err = err
	return err
}

func (h *Handler) HandleWarning(loc Location, err error) {
	h.mu.Lock()
	h.warnings++
	h.mu.Unlock()
	h.reporter.Warning(errorWithLocation{loc: loc, underlying: err})
}

// Warnings returns how many warnings have been handled.
func (h *Handler) Warnings() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.warnings
}

func (h *Handler) Error() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.errsReported && h.err == nil {
		return ErrInvalidSource
	}
	return h.err
}

func (h *Handler) ReporterError() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.err
}
