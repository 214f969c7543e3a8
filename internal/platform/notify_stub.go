//go:build !linux && !darwin && !windows

package platform

// Notify is a no-op where no notification service is known.
func Notify(title, body string, opts Options) error { return nil }
