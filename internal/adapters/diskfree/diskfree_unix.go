//go:build unix

package diskfree

import (
	"context"

	"golang.org/x/sys/unix"
)

// FreeBytes returns the bytes available to unprivileged users on the
// filesystem containing path.
func (a *Adapter) FreeBytes(ctx context.Context, path string) (uint64, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return 0, err
	}
	return uint64(st.Bavail) * uint64(st.Bsize), nil //nolint:unconvert // field widths differ per platform
}
