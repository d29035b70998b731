package automation

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/vector233/AsgFlow/internal/i18n"
	"github.com/vector233/AsgFlow/pkg/utils"
)

// EnvironmentNotices returns warnings about platform limitations that can
// break simulated input, for display at startup. Empty on healthy setups.
func EnvironmentNotices() []string {
	if runtime.GOOS != "linux" {
		return nil
	}

	var msgs []string
	if utils.RunningOnWayland() {
		msgs = append(msgs, i18n.T("wayland_warning"))
	}

	// Clipboard access on X11 goes through xclip or xsel
	var missing []string
	if !commandExists("xclip") && !commandExists("xsel") {
		missing = append(missing, "xclip or xsel")
	}
	if len(missing) > 0 {
		msgs = append(msgs, i18n.Tf("missing_packages", strings.Join(missing, ", ")))
	}
	return msgs
}

func commandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
