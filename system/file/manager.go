package file

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/afero"
)

var AppFs = afero.NewOsFs()

func IsPathExist(path string) (bool, error) {
	return afero.Exists(AppFs, path)
}

func IsFile(path string) (bool, error) {
	exists, err := IsPathExist(path)
	if err != nil || !exists {
		return false, err
	}
	info, err := AppFs.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	return info.Mode().IsRegular(), nil
}

func Stat(path string) (os.FileInfo, error) {
	i, err := AppFs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	return i, nil
}

func Create(path string) (afero.File, error) {
	slog.Debug("Creating file: " + path)
	fh, err := AppFs.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file %s: %w", path, err)
	}
	slog.Debug("File created")
	return fh, nil
}

func Open(path string) (afero.File, error) {
	fh, err := AppFs.Open(path)
	if err != nil {
		return nil, err
	}
	return fh, nil
}

// WriteString writes contents to path, creating any missing parent
// directories. Used for repository definition files.
func WriteString(path, contents string, mode os.FileMode) error {
	dir := path[:strings.LastIndex(path, "/")]
	if dir != "" {
		if err := AppFs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory '%s': %w", dir, err)
		}
	}
	if err := afero.WriteFile(AppFs, path, []byte(contents), mode); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	return nil
}

// AppendLine appends line to path, creating the file when missing. The line
// is not appended again if it is already present.
func AppendLine(path, line string) error {
	exists, err := IsPathExist(path)
	if err != nil {
		return err
	}
	if exists {
		contents, err := afero.ReadFile(AppFs, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		for _, l := range strings.Split(string(contents), "\n") {
			if strings.TrimSpace(l) == strings.TrimSpace(line) {
				slog.Debug("Line already present in " + path)
				return nil
			}
		}
	}

	fh, err := AppFs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s for appending: %w", path, err)
	}
	defer fh.Close()

	if _, err := fh.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to append to %s: %w", path, err)
	}
	return nil
}

// OsReleaseValue returns the value of a key from /etc/os-release, e.g.
// VERSION_CODENAME on Debian-based hosts. Missing keys return "".
func OsReleaseValue(key string) (string, error) {
	contents, err := afero.ReadFile(AppFs, "/etc/os-release")
	if err != nil {
		return "", fmt.Errorf("failed to read /etc/os-release: %w", err)
	}
	for _, line := range strings.Split(string(contents), "\n") {
		k, v, found := strings.Cut(line, "=")
		if found && k == key {
			return strings.Trim(v, `"`), nil
		}
	}
	return "", nil
}

func moveFile(src, dest string) error {
	slog.Debug("Moving file from " + src + " to " + dest)
	if err := AppFs.Rename(src, dest); err != nil {
		return fmt.Errorf("failed to move file: %w", err)
	}
	slog.Debug("Move complete")
	return nil
}

func copyFile(src, dest string) error {
	slog.Debug("Copying file from " + src + " to " + dest)

	sourceFileStat, err := AppFs.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat file %s during copy: %w", src, err)
	}

	if !sourceFileStat.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	sourceFh, err := Open(src)
	if err != nil {
		return fmt.Errorf("failed to open copy source file '%s': %w", src, err)
	}
	defer sourceFh.Close()

	destinationFh, err := Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create copy destination file '%s': %w", dest, err)
	}
	defer destinationFh.Close()

	_, err = io.Copy(destinationFh, sourceFh)
	if err != nil {
		return fmt.Errorf("failed to copy '%s' to '%s': %w", src, dest, err)
	}

	slog.Debug("Copy complete")

	return nil
}

func copyDir(src, dest string) error {
	src = strings.TrimSuffix(src, "/")
	dest = strings.TrimSuffix(dest, "/")

	slog.Debug("Copying directory from " + src + " to " + dest)
	err := afero.Walk(AppFs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk directory '%s': %w", src, err)
		}
		relPath := strings.TrimPrefix(path, src)
		destPath := dest + "/" + relPath
		if info.IsDir() {
			err := AppFs.MkdirAll(destPath, info.Mode())
			if err != nil {
				return fmt.Errorf("failed to create directory '%s': %w", destPath, err)
			}
		} else {
			err := copyFile(path, destPath)
			if err != nil {
				return fmt.Errorf("failed to copy file '%s' to '%s': %w", path, destPath, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to copy directory '%s' to '%s': %w", src, dest, err)
	}
	slog.Debug("Copy complete")
	return nil
}

func moveDir(src, dest string) error {
	if err := copyDir(src, dest); err != nil {
		return err
	}
	if err := AppFs.RemoveAll(strings.TrimSuffix(src, "/")); err != nil {
		return fmt.Errorf("failed to remove source directory '%s' after move: %w", src, err)
	}
	return nil
}

func Copy(src, dest string) error {
	srcStat, err := Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source file '%s': %w", src, err)
	}

	if srcStat.IsDir() {
		return copyDir(src, dest)
	}
	return copyFile(src, dest)
}

func Move(src, dest string) error {
	srcStat, err := Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source file '%s': %w", src, err)
	}

	if srcStat.IsDir() {
		return moveDir(src, dest)
	}
	return moveFile(src, dest)
}

func DownloadFile(url string, filepath string) error {
	slog.Debug("Downloading file from " + url + " to " + filepath)

	request, _ := http.NewRequest(http.MethodGet, url, nil)
	client := &http.Client{}

	resp, err := client.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download file with status '%s'", resp.Status)
	}

	newFh, err := Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to save download to file '%s': %w", filepath, err)
	}
	defer newFh.Close()

	_, err = io.Copy(newFh, resp.Body)
	if err != nil {
		return err
	}

	slog.Debug("Download complete")

	return nil
}

func ExtractTarGz(archive, dest string) error {
	slog.Info("Extracting tar.gz file " + archive + " to " + dest)

	fh, err := Open(archive)
	if err != nil {
		return fmt.Errorf("failed to open %s for extraction: %w", archive, err)
	}
	defer fh.Close()
	reader := bufio.NewReader(fh)

	gzr, err := gzip.NewReader(reader)
	if err != nil {
		return fmt.Errorf("failed to create gzip reader for %s: %w", archive, err)
	}

	tr := tar.NewReader(gzr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read tar header for %s: %w", archive, err)
		}

		target := dest + "/" + header.Name
		switch header.Typeflag {
		case tar.TypeDir:
			if err := AppFs.MkdirAll(target, os.FileMode(header.Mode)); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
		case tar.TypeReg:
			fh, err := AppFs.OpenFile(target, os.O_CREATE|os.O_RDWR, os.FileMode(header.Mode))
			if err != nil {
				return fmt.Errorf("failed to create file %s: %w", target, err)
			}
			if _, err := io.Copy(fh, tr); err != nil {
				fh.Close()
				return fmt.Errorf("failed to copy file %s: %w", target, err)
			}
			fh.Close()
		}
	}

	return nil
}

func ExtractZip(archive, dest string) error {
	slog.Info("Extracting zip file " + archive + " to " + dest)

	contents, err := afero.ReadFile(AppFs, archive)
	if err != nil {
		return fmt.Errorf("failed to read %s for extraction: %w", archive, err)
	}

	zr, err := zip.NewReader(bytes.NewReader(contents), int64(len(contents)))
	if err != nil {
		return fmt.Errorf("failed to create zip reader for %s: %w", archive, err)
	}

	for _, entry := range zr.File {
		target := dest + "/" + entry.Name
		if entry.FileInfo().IsDir() {
			if err := AppFs.MkdirAll(target, entry.Mode()); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", target, err)
			}
			continue
		}

		dir := target[:strings.LastIndex(target, "/")]
		if err := AppFs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}

		src, err := entry.Open()
		if err != nil {
			return fmt.Errorf("failed to open zip entry %s: %w", entry.Name, err)
		}
		fh, err := AppFs.OpenFile(target, os.O_CREATE|os.O_RDWR|os.O_TRUNC, entry.Mode())
		if err != nil {
			src.Close()
			return fmt.Errorf("failed to create file %s: %w", target, err)
		}
		if _, err := io.Copy(fh, src); err != nil {
			fh.Close()
			src.Close()
			return fmt.Errorf("failed to copy file %s: %w", target, err)
		}
		fh.Close()
		src.Close()
	}

	return nil
}
