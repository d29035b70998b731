package utils

import (
	"os"
	"runtime"
	"strings"
)

// GetCurrentOS returns the current operating system type
func GetCurrentOS() string {
	goos := runtime.GOOS
	if strings.Contains(goos, "darwin") {
		return "macos"
	} else if strings.Contains(goos, "windows") {
		return "windows"
	} else if strings.Contains(goos, "linux") {
		return "linux"
	}
	return "unknown"
}

// HotkeyModifier returns the default hotkey modifier key for the current OS
func HotkeyModifier() string {
	if runtime.GOOS == "darwin" {
		return "command"
	}
	return "ctrl"
}

// RunningOnWayland reports whether the current Linux session is Wayland.
// Wayland compositors commonly restrict simulated input and screen capture.
func RunningOnWayland() bool {
	if runtime.GOOS != "linux" {
		return false
	}
	return os.Getenv("WAYLAND_DISPLAY") != "" || os.Getenv("XDG_SESSION_TYPE") == "wayland"
}
