// Package storage keeps rendered artifacts such as MFCC plots.
//
// A FileStore hides whether artifacts live on local disk or in an
// S3-compatible bucket. Names are flat: a single path element with no
// separators, so an HTTP handler can pass user supplied names straight
// through after CheckName.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrInvalidName is returned for names that are empty, hidden, or
	// contain a path separator.
	ErrInvalidName = errors.New("storage: invalid name")

	// ErrUnknownBackend is returned by New for an unrecognised backend.
	ErrUnknownBackend = errors.New("storage: unknown backend")
)

// FileStore stores named artifacts. Implementations are safe for
// concurrent use.
type FileStore interface {
	// Read opens the named artifact. A missing artifact yields an error
	// wrapping os.ErrNotExist. The caller closes the reader.
	Read(ctx context.Context, name string) (io.ReadCloser, error)

	// Write creates or truncates the named artifact. Data is committed
	// when the returned writer is closed.
	Write(ctx context.Context, name string) (io.WriteCloser, error)

	// Delete removes the named artifact. Deleting a missing artifact is
	// not an error.
	Delete(ctx context.Context, name string) error

	// Exists reports whether the named artifact exists.
	Exists(ctx context.Context, name string) (bool, error)
}

// CheckName rejects names that would escape the store root.
func CheckName(name string) error {
	switch {
	case name == "", name == ".", name == "..",
		strings.HasPrefix(name, "."),
		strings.ContainsAny(name, `/\`),
		strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Put writes data under name in a single call.
func Put(ctx context.Context, fs FileStore, name string, data io.Reader) error {
	w, err := fs.Write(ctx, name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
