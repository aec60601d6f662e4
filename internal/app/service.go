package app

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"patch-package/internal/adapters"
	"patch-package/internal/ports"
)

type Service struct {
	Manifest   ports.ManifestPort
	Downloader ports.PackageDownloaderPort
	Mover      ports.DirectoryMoverPort
	Opener     ports.URLOpenerPort
	Out        io.Writer
	Emphasis   lipgloss.Style
}

func NewService() Service {
	manifest := adapters.NewManifestFileAdapter()
	return Service{
		Manifest:   manifest,
		Downloader: adapters.NewPackageDownloadAdapter(manifest),
		Mover:      adapters.NewDirectoryMoverAdapter(),
		Opener:     adapters.NewBrowserAdapter(),
		Out:        os.Stdout,
		Emphasis:   lipgloss.NewStyle().Bold(true),
	}
}

func (s Service) out() io.Writer {
	if s.Out == nil {
		return io.Discard
	}
	return s.Out
}
