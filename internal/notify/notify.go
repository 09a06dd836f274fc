// Package notify shows desktop notifications. Delivery failures are ignored;
// notifications are advisory only.
package notify

import "github.com/gen2brain/beeep"

// Notify shows a desktop notification.
func Notify(title, message string) {
	_ = beeep.Notify(title, message, "")
}
