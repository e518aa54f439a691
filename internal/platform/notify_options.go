// Package platform delivers desktop notifications through the host's
// notification service.
package platform

import "time"

// DefaultAppName is reported to the notification service.
const DefaultAppName = "tryon"

// DefaultTimeout is how long a notification stays on screen where the
// platform lets us choose.
const DefaultTimeout = 5 * time.Second

// Options configures how a notification is displayed.
type Options struct {
	// IconPath is an image shown with the notification where supported.
	IconPath string
	AppName  string
	Timeout  time.Duration
}

func (o Options) appName() string {
	if o.AppName != "" {
		return o.AppName
	}
	return DefaultAppName
}

func (o Options) timeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return DefaultTimeout
}
