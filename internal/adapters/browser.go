package adapters

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"patch-package/internal/ports"
)

type BrowserAdapter struct {
	start func(name string, args ...string) error
}

func NewBrowserAdapter() BrowserAdapter {
	return BrowserAdapter{start: startDetached}
}

// Open launches the platform handler for url and returns without waiting
// for it.
func (a BrowserAdapter) Open(url string) error {
	name, args, err := openCommand(runtime.GOOS, url)
	if err != nil {
		return err
	}
	start := a.start
	if start == nil {
		start = startDetached
	}
	log.Debug().Str("cmd", name).Msg("opening url in default handler")
	if err := start(name, args...); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to open browser").
			WithCause(err)
	}
	return nil
}

func openCommand(goos string, url string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{url}, nil
	default:
		return "", nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("unsupported platform %q for opening browser", goos))
	}
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

var _ ports.URLOpenerPort = BrowserAdapter{}
