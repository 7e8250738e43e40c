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

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const blockFileExt = ".yaml"

func newWatchCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch DIR",
		Short: "Rebuild block files in a directory whenever they change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return watch(ctx, opts, args[0])
		},
	}
}

func watch(ctx context.Context, opts *options, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}

	// Bring the output up to date before waiting for changes.
	initial, err := doublestar.FilepathGlob(filepath.Join(dir, "*"+blockFileExt))
	if err != nil {
		return err
	}
	if len(initial) > 0 {
		if err := build(ctx, opts, initial...); err != nil {
			warnf("%v", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !rebuildOn(ev) {
				continue
			}
			if err := build(ctx, opts, ev.Name); err != nil {
				// Keep watching; the next save may fix it.
				warnf("%v", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			warnf("watch: %v", err)
		}
	}
}

func rebuildOn(ev fsnotify.Event) bool {
	if filepath.Ext(ev.Name) != blockFileExt {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}
