// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package local implements the fs.FS interface on a local directory.
package local

import (
	"os"
	"path/filepath"

	"golang.org/x/net/context"

	"github.com/morphosis/perfanalysis/storage/fs"
)

// impl is an fs.FS backed by a directory.
type impl struct {
	dir string
}

// NewFS constructs an FS that writes files into dir, creating it if
// needed. Metadata is not stored.
func NewFS(dir string) (fs.FS, error) {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, err
	}
	return &impl{dir}, nil
}

// NewWriter creates name in the directory. The file appears only
// once the Writer is closed.
func (fsys *impl) NewWriter(ctx context.Context, name string, metadata map[string]string) (fs.Writer, error) {
	f, err := os.CreateTemp(fsys.dir, "."+filepath.Base(name)+".*")
	if err != nil {
		return nil, err
	}
	return &wc{f: f, path: filepath.Join(fsys.dir, name)}, nil
}

// wc writes to a temporary file that is renamed into place on Close.
type wc struct {
	f    *os.File
	path string
}

func (w *wc) Write(p []byte) (int, error) {
	return w.f.Write(p)
}

func (w *wc) Close() error {
	if err := w.f.Close(); err != nil {
		os.Remove(w.f.Name())
		return err
	}
	if err := os.Rename(w.f.Name(), w.path); err != nil {
		os.Remove(w.f.Name())
		return err
	}
	return nil
}

func (w *wc) CloseWithError(error) error {
	w.f.Close()
	return os.Remove(w.f.Name())
}
