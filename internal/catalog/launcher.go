package catalog

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"

	"omnisearch/internal/domain"
)

// Launcher performs the side effects of catalog items
type Launcher interface {
	OpenURL(link string) error
	RunCommand(command, args string) error
}

// SystemLauncher opens URLs with the platform opener and runs commands
// through sh. Neither waits for the started process.
type SystemLauncher struct{}

func (SystemLauncher) OpenURL(link string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", link)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", link)
	default:
		cmd = exec.Command("xdg-open", link)
	}
	return cmd.Start()
}

// RunCommand starts command with sh -c. args is available to the command
// as $1.
func (SystemLauncher) RunCommand(command, args string) error {
	cmd := exec.Command("sh", "-c", command, "omnisearch", args)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %q: %w", command, err)
	}
	go cmd.Wait()
	return nil
}

func commandAction(l Launcher, command string) domain.ActionFunc {
	return func(args string) error {
		return l.RunCommand(command, args)
	}
}

// urlAction opens link. With a replacement token the token is replaced
// by the escaped arguments, which are then required.
func urlAction(l Launcher, name, link, replacement string) domain.ActionFunc {
	return func(args string) error {
		if replacement == "" {
			return l.OpenURL(link)
		}

		trimmed := strings.TrimSpace(args)
		if trimmed == "" {
			return fmt.Errorf("please enter text to search %s", name)
		}
		encoded := strings.ReplaceAll(url.QueryEscape(trimmed), "+", "%20")
		if err := l.OpenURL(strings.ReplaceAll(link, replacement, encoded)); err != nil {
			return fmt.Errorf("launch browser: %w", err)
		}
		return nil
	}
}
