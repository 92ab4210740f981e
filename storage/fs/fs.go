// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fs provides a backend-agnostic filesystem layer for
// publishing analysis artifacts.
package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/net/context"
)

// An FS stores published artifacts.
type FS interface {
	// NewWriter returns a Writer for a given file name.
	// When the Writer is closed, the file will be stored with the
	// given metadata and the data written to the writer.
	NewWriter(ctx context.Context, name string, metadata map[string]string) (Writer, error)
}

// A Writer is an io.Writer that can also be closed with an error.
type Writer interface {
	io.WriteCloser
	// CloseWithError cancels the writing of the file, removing
	// any partially written data.
	CloseWithError(error) error
}

// Publish copies each file in paths into fsys under its base name.
// It stops at the first failure; a file that fails part way is not
// left behind in fsys.
func Publish(ctx context.Context, fsys FS, paths ...string) error {
	for _, path := range paths {
		if err := publish(ctx, fsys, path); err != nil {
			return fmt.Errorf("publishing %s: %w", path, err)
		}
	}
	return nil
}

func publish(ctx context.Context, fsys FS, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	name := filepath.Base(path)
	w, err := fsys.NewWriter(ctx, name, map[string]string{"source": path})
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, f); err != nil {
		w.CloseWithError(err)
		return err
	}
	return w.Close()
}
