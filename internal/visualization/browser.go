package visualization

import (
	"fmt"
	"os/exec"
	"runtime"
)

// OpenBrowser opens target, a URL or a local file path, in the user's
// default browser. It supports Linux (xdg-open), macOS (open), and
// Windows (cmd start).
func OpenBrowser(target string) error {
	name, args, err := openCommand(runtime.GOOS, target)
	if err != nil {
		return err
	}
	return exec.Command(name, args...).Start()
}

func openCommand(goos, target string) (string, []string, error) {
	switch goos {
	case "linux", "freebsd", "openbsd":
		return "xdg-open", []string{target}, nil
	case "darwin":
		return "open", []string{target}, nil
	case "windows":
		return "cmd", []string{"/c", "start", "", target}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
