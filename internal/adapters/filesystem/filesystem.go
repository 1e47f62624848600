package filesystem

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/dcbrown/clusterback/internal/usecase"
)

// Adapter implements FileSystemPort using standard os and filepath packages.
type Adapter struct {
	logger *slog.Logger
}

// New creates a new filesystem adapter.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		panic("filesystem adapter requires logger")
	}
	return &Adapter{logger: logger}
}

// ReadDir lists directory entries.
func (a *Adapter) ReadDir(ctx context.Context, path string) ([]usecase.DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	result := make([]usecase.DirEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, &dirEntryWrapper{entry})
	}
	return result, nil
}

// Stat returns file info.
func (a *Adapter) Stat(ctx context.Context, path string) (usecase.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return &fileInfoWrapper{info}, nil
}

// CreateDir creates directory with permissions.
func (a *Adapter) CreateDir(ctx context.Context, path string, perm int) error {
	if perm < 0 || perm > 0o777 {
		perm = 0o755 // Default safe permissions
	}
	// #nosec G115 - perm is validated to be within safe range
	return os.MkdirAll(path, fs.FileMode(perm))
}

// RemoveAll removes directory and all contents.
func (a *Adapter) RemoveAll(ctx context.Context, path string) error {
	return os.RemoveAll(path)
}

// Join joins path elements.
func (a *Adapter) Join(elements ...string) string {
	return filepath.Join(elements...)
}

// Base returns last element of path.
func (a *Adapter) Base(path string) string {
	return filepath.Base(path)
}

// IsNotExist reports whether err indicates that a path does not exist.
// Also covers syscall.ENOTDIR (path component is not a directory).
func (a *Adapter) IsNotExist(err error) bool {
	return os.IsNotExist(err) || errors.Is(err, syscall.ENOTDIR)
}

// IsPermission reports whether err indicates a permission error.
func (a *Adapter) IsPermission(err error) bool {
	return os.IsPermission(err) || errors.Is(err, syscall.EACCES) || errors.Is(err, syscall.EPERM)
}

type fileInfoWrapper struct {
	fs.FileInfo
}

func (w *fileInfoWrapper) Name() string {
	return w.FileInfo.Name()
}

func (w *fileInfoWrapper) IsDir() bool {
	return w.FileInfo.IsDir()
}

type dirEntryWrapper struct {
	fs.DirEntry
}

func (w *dirEntryWrapper) Name() string {
	return w.DirEntry.Name()
}

func (w *dirEntryWrapper) IsDir() bool {
	return w.DirEntry.IsDir()
}
