//go:build !cgo && !windows && !(linux || freebsd || openbsd || netbsd || dragonfly)

package clipboard

import "errors"

func open() (owner, error) {
	return nil, errors.New("clipboard is not supported on this platform without cgo")
}
