//go:build !cgo

package clipboard

import "sync"

var (
	initOnce sync.Once
	initErr  error
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		initErr = errCGODisabled
	})
	return initErr
}

func WritePNG(data []byte) error {
	if len(data) == 0 {
		return errEmpty
	}
	return ensureInit()
}

func WriteText(text string) error {
	if text == "" {
		return errEmpty
	}
	return ensureInit()
}
