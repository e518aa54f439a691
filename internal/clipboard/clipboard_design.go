//go:build cgo || windows

package clipboard

import (
	"golang.design/x/clipboard"
)

type designClipboard struct{}

func open() (owner, error) {
	if err := clipboard.Init(); err != nil {
		return nil, err
	}
	return designClipboard{}, nil
}

func (designClipboard) write(f format, data []byte) error {
	if f == formatPNG {
		clipboard.Write(clipboard.FmtImage, data)
		return nil
	}
	clipboard.Write(clipboard.FmtText, data)
	return nil
}
