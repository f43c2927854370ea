// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"fmt"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/zhubert/ragdesk/internal/logger"
)

// AppName is the title used for every notification.
const AppName = "ragdesk"

// notifyFunc matches beeep.Notify.
type notifyFunc func(title, message string, icon any) error

var (
	mu       sync.Mutex
	notifier notifyFunc = beeep.Notify
)

// SetNotifier replaces the notification backend (used in tests).
func SetNotifier(fn func(title, message string, icon any) error) {
	mu.Lock()
	defer mu.Unlock()
	notifier = fn
}

// ResetNotifier restores the beeep backend.
func ResetNotifier() {
	mu.Lock()
	defer mu.Unlock()
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
// On macOS, it uses terminal-notifier or AppleScript.
// On Linux, it uses D-Bus or notify-send.
// On Windows, it uses the Windows Runtime COM API.
func Send(title, message string) error {
	mu.Lock()
	fn := notifier
	mu.Unlock()

	log := logger.WithComponent("notification")
	log.Debug("sending", "title", title, "message", message)
	// Empty icon lets beeep pick the platform default.
	if err := fn(title, message, ""); err != nil {
		log.Warn("failed to send", "error", err)
		return err
	}
	return nil
}

// UploadCompleted announces that a document was indexed.
func UploadCompleted(fileName string, chunks int) error {
	return Send(AppName, fmt.Sprintf("Uploaded and indexed %s with %d chunks", fileName, chunks))
}

// UploadFailed announces a failed upload.
func UploadFailed(message string) error {
	return Send(AppName, "Upload error: "+message)
}
