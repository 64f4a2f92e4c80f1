// Package opener hands paths and URLs to the desktop: the file manager,
// the default browser and the clipboard.
package opener

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"

	"quicksearch/internal/eventbus"
)

// ErrUnsupportedPlatform is returned on platforms without a known opener
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Opener launches external programs without waiting for them
type Opener struct {
	goos    string
	run     func(name string, args ...string) error
	copy    func(text string) error
	bus     eventbus.EventBus
	history zerolog.Logger
}

// New creates an opener for the running platform. Every opened target is
// recorded on the history logger.
func New(bus eventbus.EventBus, history zerolog.Logger) *Opener {
	return &Opener{
		goos:    runtime.GOOS,
		run:     start,
		copy:    clipboard.WriteAll,
		bus:     bus,
		history: history,
	}
}

// start runs a command in the background and reaps it
func start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	go cmd.Wait()
	return nil
}

// OpenPath shows path in the file manager. Directories are opened, files are
// revealed in their parent directory.
func (o *Opener) OpenPath(path string) error {
	isDir := strings.HasSuffix(path, "/")
	if !isDir {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			isDir = true
		}
	}

	name, args, err := pathCommand(o.goos, path, isDir)
	if err != nil {
		return err
	}
	if err := o.run(name, args...); err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	o.record(path, false)
	return nil
}

// OpenURL opens url in the default browser
func (o *Opener) OpenURL(url string) error {
	name, args, err := urlCommand(o.goos, url)
	if err != nil {
		return err
	}
	if err := o.run(name, args...); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}

	o.record(url, true)
	return nil
}

// Copy places text on the system clipboard
func (o *Opener) Copy(text string) error {
	if err := o.copy(text); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return nil
}

func (o *Opener) record(target string, isURL bool) {
	o.history.Info().Str("target", target).Bool("url", isURL).Msg("opened")
	if o.bus != nil {
		o.bus.Publish(eventbus.TargetOpenedEvent{Target: target, IsURL: isURL})
	}
}

func pathCommand(goos, path string, isDir bool) (string, []string, error) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		if !isDir {
			path = filepath.Dir(path)
		}
		return "xdg-open", []string{path}, nil
	case "darwin":
		if isDir {
			return "open", []string{path}, nil
		}
		return "open", []string{"-R", path}, nil
	case "windows":
		path = filepath.FromSlash(strings.TrimSuffix(path, "/"))
		if isDir {
			return "explorer", []string{path}, nil
		}
		return "explorer", []string{"/select," + path}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

func urlCommand(goos, url string) (string, []string, error) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}, nil
	case "darwin":
		return "open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}
