// Package syncdocs mirrors the sibling examples repository's documentation
// into the site content directory.
package syncdocs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	derrors "git.home.luguber.info/inful/docsite/internal/errors"
)

// Report summarizes one copy pass.
type Report struct {
	Created   int
	Updated   int
	Unchanged int
	Dirs      int
}

// Files is the number of regular files visited.
func (r Report) Files() int { return r.Created + r.Updated + r.Unchanged }

// Changed reports whether anything in the destination was written.
func (r Report) Changed() bool { return r.Created+r.Updated > 0 }

// Copy recursively copies src into dst. Files present in both are overwritten
// by the source version; files only in dst are left alone. A failure part way
// through leaves dst partially updated and returns a CopyFailure carrying the
// underlying filesystem error.
func Copy(src, dst string) (Report, error) {
	var rep Report
	srcInfo, err := os.Stat(src)
	if err != nil {
		return rep, derrors.CopyFailure(src, dst, err)
	}
	if !srcInfo.IsDir() {
		return rep, derrors.CopyFailure(src, dst, fmt.Errorf("%s: %w", src, errNotDir))
	}
	if err := copyDir(src, dst, srcInfo.Mode().Perm(), &rep); err != nil {
		return rep, derrors.CopyFailure(src, dst, err)
	}
	return rep, nil
}

var errNotDir = errors.New("source is not a directory")

func copyDir(src, dst string, perm fs.FileMode, rep *Report) error {
	if err := os.MkdirAll(dst, perm|0o700); err != nil {
		return err
	}
	rep.Dirs++

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		// Stat follows symlinks so linked files and directories are copied
		// as their targets.
		info, err := os.Stat(srcPath)
		if err != nil {
			return err
		}
		switch {
		case info.IsDir():
			if err := copyDir(srcPath, dstPath, info.Mode().Perm(), rep); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			if err := copyFile(srcPath, dstPath, info, rep); err != nil {
				return err
			}
		}
	}
	return nil
}

func copyFile(src, dst string, srcInfo fs.FileInfo, rep *Report) error {
	dstInfo, statErr := os.Stat(dst)
	exists := statErr == nil
	if exists && dstInfo.IsDir() {
		return fmt.Errorf("%s: destination is a directory", dst)
	}

	if exists && dstInfo.Size() == srcInfo.Size() {
		same, err := sameContent(src, dst)
		if err != nil {
			return err
		}
		if same {
			if dstInfo.Mode().Perm() != srcInfo.Mode().Perm() {
				if err := os.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
					return err
				}
			}
			rep.Unchanged++
			return nil
		}
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = srcFile.Close()
	}()

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return err
	}
	if err := dstFile.Close(); err != nil {
		return err
	}
	// OpenFile only applies the mode on create.
	if err := os.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}

	if exists {
		rep.Updated++
	} else {
		rep.Created++
	}
	return nil
}

func sameContent(a, b string) (bool, error) {
	da, err := os.ReadFile(a)
	if err != nil {
		return false, err
	}
	db, err := os.ReadFile(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(da, db), nil
}
