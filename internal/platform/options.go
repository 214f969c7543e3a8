// Package platform delivers desktop notifications through the native
// notification service of the host.
package platform

import "time"

// DefaultAppName identifies the sender when Options.AppName is empty.
const DefaultAppName = "sketchsolver"

// Options configures a notification.
type Options struct {
	// AppName is shown as the sending application where supported.
	AppName string
	// IconPath, when set, points to an image shown with the notification.
	IconPath string
	// Timeout is how long the notification stays up. Zero uses the service
	// default.
	Timeout time.Duration
}

func (o Options) appName() string {
	if o.AppName == "" {
		return DefaultAppName
	}
	return o.AppName
}
