package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
)

// InstallCleanPackage swaps the installed copy of a package for a pristine
// one from the registry. Files that only exist in the installed copy do not
// survive.
func (s Service) InstallCleanPackage(ctx context.Context, req InstallCleanRequest) (InstallCleanResult, error) {
	installRoot := strings.TrimSpace(req.InstallRoot)
	if installRoot == "" {
		return InstallCleanResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("install root is required")
	}
	if strings.TrimSpace(req.Package.Path) == "" {
		return InstallCleanResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package path is required")
	}
	if s.Downloader == nil || s.Mover == nil {
		return InstallCleanResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("package downloader and mover must be configured")
	}

	downloaded, err := s.Downloader.Download(ctx, installRoot, req.Package, req.PackageManager)
	if err != nil {
		return InstallCleanResult{}, err
	}
	defer func() {
		if downloaded.TmpRepo == "" {
			return
		}
		if err := os.RemoveAll(downloaded.TmpRepo); err != nil {
			log.Warn().Err(err).Str("path", downloaded.TmpRepo).Msg("failed to remove temporary repository")
		}
	}()

	dst := filepath.Join(installRoot, filepath.FromSlash(req.Package.Path))
	log.Debug().
		Str("package", req.Package.PathSpecifier).
		Str("src", downloaded.PackagePath).
		Str("dst", dst).
		Msg("replacing package with clean copy")
	if err := s.Mover.Replace(downloaded.PackagePath, dst); err != nil {
		return InstallCleanResult{}, errbuilder.New().
			WithCode(errbuilder.CodeOf(err)).
			WithMsg("failed to replace " + req.Package.PathSpecifier + " with a clean copy").
			WithCause(err)
	}
	return InstallCleanResult{Destination: dst}, nil
}
