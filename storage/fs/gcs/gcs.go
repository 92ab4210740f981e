// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gcs implements the fs.FS interface using Google Cloud Storage.
package gcs

import (
	"mime"
	"path"

	"cloud.google.com/go/storage"
	"golang.org/x/net/context"
	"golang.org/x/oauth2"
	"google.golang.org/api/option"

	"github.com/morphosis/perfanalysis/storage/fs"
)

// impl is an fs.FS backed by Google Cloud Storage.
type impl struct {
	bucket *storage.BucketHandle
}

// NewFS constructs an FS that writes to the provided bucket.
func NewFS(ctx context.Context, bucketName string, opts ...option.ClientOption) (fs.FS, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &impl{client.Bucket(bucketName)}, nil
}

// WithToken returns a client option that authenticates with a fixed
// OAuth2 access token.
func WithToken(token string) option.ClientOption {
	return option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
}

func (fsys *impl) NewWriter(ctx context.Context, name string, metadata map[string]string) (fs.Writer, error) {
	w := fsys.bucket.Object(name).NewWriter(ctx)
	w.Metadata = metadata
	w.ContentType = mime.TypeByExtension(path.Ext(name))
	return w, nil
}
