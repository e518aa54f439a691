// Package clipboard publishes rendered images and SKU text to the system
// clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"runtime"
	"sync"
)

type format int

const (
	formatText format = iota
	formatPNG
)

// owner is a platform clipboard that can take ownership of one payload.
type owner interface {
	write(f format, data []byte) error
}

var (
	initOnce     sync.Once
	initErr      error
	backend      owner
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
)

func ensureInit() error {
	initOnce.Do(func() {
		if needsDisplay() && !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		backend, initErr = open()
	})
	return initErr
}

func needsDisplay() bool {
	return runtime.GOOS != "windows" && runtime.GOOS != "darwin"
}

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// WriteImage encodes img as PNG and publishes it.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return backend.write(formatPNG, buf.Bytes())
}

// WriteText publishes UTF-8 text.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return backend.write(formatText, []byte(text))
}
