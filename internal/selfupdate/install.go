package selfupdate

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// unpack returns the sppa executable from a release archive.
func unpack(asset string, data []byte) ([]byte, error) {
	if strings.HasSuffix(asset, ".zip") {
		return unzip(data, binaryName+".exe")
	}
	return untar(data, binaryName)
}

func untar(data []byte, name string) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("binary %q not found in archive", name)
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		if hdr.Typeflag == tar.TypeReg && path.Base(hdr.Name) == name {
			return io.ReadAll(tr)
		}
	}
}

func unzip(data []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	for _, f := range zr.File {
		if path.Base(f.Name) != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("binary %q not found in archive", name)
}

// install replaces the executable at target with binary, keeping its
// permissions. The old build is moved aside first and put back if the
// swap fails, so a broken update never leaves the examiner without sppa.
func install(binary []byte, target string) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}

	staged, err := stage(binary, target, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(staged) }()

	previous := target + ".previous"
	_ = os.Remove(previous)
	if err := os.Rename(target, previous); err != nil {
		return fmt.Errorf("move old binary aside: %w", err)
	}
	if err := os.Rename(staged, target); err != nil {
		if rbErr := os.Rename(previous, target); rbErr != nil {
			return fmt.Errorf("install: %w (restoring old binary: %v)", err, rbErr)
		}
		return fmt.Errorf("install: %w", err)
	}
	// Windows keeps the running executable locked; it is cleaned up on the
	// next update instead.
	_ = os.Remove(previous)
	return nil
}

// stage writes binary beside target and checks it reads back intact.
func stage(binary []byte, target string, perm os.FileMode) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(target), "."+binaryName+"-update-*")
	if err != nil {
		return "", fmt.Errorf("create staging file: %w", err)
	}
	name := f.Name()
	fail := func(err error) (string, error) {
		_ = f.Close()
		_ = os.Remove(name)
		return "", err
	}

	if _, err := f.Write(binary); err != nil {
		return fail(fmt.Errorf("write staging file: %w", err))
	}
	if err := f.Sync(); err != nil {
		return fail(fmt.Errorf("sync staging file: %w", err))
	}
	if err := f.Chmod(perm); err != nil {
		return fail(fmt.Errorf("chmod staging file: %w", err))
	}
	if err := f.Close(); err != nil {
		return fail(fmt.Errorf("close staging file: %w", err))
	}

	written, err := os.ReadFile(name)
	if err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("re-read staging file: %w", err)
	}
	if sha256.Sum256(written) != sha256.Sum256(binary) {
		_ = os.Remove(name)
		return "", fmt.Errorf("%w: staging file changed after write", ErrChecksum)
	}
	return name, nil
}
