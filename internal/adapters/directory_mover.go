package adapters

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"patch-package/internal/ports"
)

// DirectoryMoverAdapter replaces a directory in two renames: the current
// destination is staged next to itself, then the source is renamed into
// place. When source and destination sit on different devices the source is
// copied into a sibling staging directory first and that is renamed into
// place, so the destination path never holds a half-written tree.
type DirectoryMoverAdapter struct {
	rename func(oldpath string, newpath string) error
}

func NewDirectoryMoverAdapter() DirectoryMoverAdapter {
	return DirectoryMoverAdapter{rename: os.Rename}
}

func (a DirectoryMoverAdapter) Replace(src string, dst string) error {
	if strings.TrimSpace(src) == "" || strings.TrimSpace(dst) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source and destination paths are required")
	}
	if filepath.Clean(src) == filepath.Clean(dst) {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source and destination are the same path: " + dst)
	}
	if _, err := os.Lstat(src); err != nil {
		return moveError("clean package source is not accessible: "+src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return moveError("failed to create destination parent: "+filepath.Dir(dst), err)
	}

	staged, err := a.stageExisting(dst)
	if err != nil {
		return err
	}
	if err := a.swapIn(src, dst); err != nil {
		if staged != "" {
			if restoreErr := a.renameFn()(staged, dst); restoreErr != nil {
				log.Error().Err(restoreErr).Str("staged", staged).Str("dst", dst).Msg("failed to restore previous package directory")
			}
		}
		return err
	}
	if staged != "" {
		if err := os.RemoveAll(staged); err != nil {
			log.Warn().Err(err).Str("path", staged).Msg("failed to remove previous package directory")
		}
	}
	return nil
}

// stageExisting moves dst aside and returns where it went, or "" when there
// was nothing to move.
func (a DirectoryMoverAdapter) stageExisting(dst string) (string, error) {
	if _, err := os.Lstat(dst); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", moveError("failed to inspect destination: "+dst, err)
	}
	staged, err := siblingPath(dst, "old")
	if err != nil {
		return "", err
	}
	if err := a.renameFn()(dst, staged); err != nil {
		return "", moveError("failed to stage existing destination: "+dst, err)
	}
	return staged, nil
}

func (a DirectoryMoverAdapter) swapIn(src string, dst string) error {
	err := a.renameFn()(src, dst)
	if err == nil {
		log.Debug().Str("src", src).Str("dst", dst).Msg("moved clean package by rename")
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return moveError("failed to move clean package into "+dst, err)
	}

	log.Debug().Str("src", src).Str("dst", dst).Msg("source on another device, copying clean package")
	staging, err := siblingPath(dst, "new")
	if err != nil {
		return err
	}
	if err := copyTree(src, staging); err != nil {
		_ = os.RemoveAll(staging)
		return moveError("failed to copy clean package next to "+dst, err)
	}
	if err := a.renameFn()(staging, dst); err != nil {
		_ = os.RemoveAll(staging)
		return moveError("failed to move copied package into "+dst, err)
	}
	if err := os.RemoveAll(src); err != nil {
		log.Warn().Err(err).Str("path", src).Msg("failed to remove clean package source after copy")
	}
	return nil
}

func (a DirectoryMoverAdapter) renameFn() func(string, string) error {
	if a.rename == nil {
		return os.Rename
	}
	return a.rename
}

func siblingPath(path string, kind string) (string, error) {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to generate staging name").
			WithCause(err)
	}
	name := fmt.Sprintf(".%s.patch-package-%s-%s", filepath.Base(path), kind, hex.EncodeToString(suffix))
	return filepath.Join(filepath.Dir(path), name), nil
}

func copyTree(src string, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		info, err := d.Info()
		if err != nil {
			return err
		}
		switch {
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			return os.Symlink(link, target)
		case d.IsDir():
			return os.MkdirAll(target, info.Mode().Perm()|0o700)
		default:
			return copyFile(path, target)
		}
	})
}

func copyFile(srcPath string, destPath string) error {
	srcFile, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer srcFile.Close()
	info, err := srcFile.Stat()
	if err != nil {
		return err
	}
	destFile, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(destFile, srcFile); err != nil {
		destFile.Close()
		return err
	}
	return destFile.Close()
}

func moveError(msg string, err error) error {
	code := errbuilder.CodeInternal
	switch {
	case errors.Is(err, fs.ErrNotExist):
		code = errbuilder.CodeNotFound
	case errors.Is(err, fs.ErrPermission):
		code = errbuilder.CodePermissionDenied
	}
	return errbuilder.New().
		WithCode(code).
		WithMsg(msg).
		WithCause(err)
}

var _ ports.DirectoryMoverPort = DirectoryMoverAdapter{}
