//go:build !unix

package diskfree

import (
	"context"
	"errors"
)

// FreeBytes is unsupported on this platform; the preflight check skips it.
func (a *Adapter) FreeBytes(ctx context.Context, path string) (uint64, error) {
	return 0, errors.New("free space probe not supported on this platform")
}
