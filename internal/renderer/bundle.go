package renderer

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Bundle writes a zip at zipPath holding each file under its base name, in order.
func Bundle(paths []string, zipPath string) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("failed to create ZIP archive: %w", err)
	}
	defer out.Close()

	zipWriter := zip.NewWriter(out)
	for _, path := range paths {
		if err := addToZip(zipWriter, path); err != nil {
			zipWriter.Close()
			return err
		}
	}

	if err := zipWriter.Close(); err != nil {
		return fmt.Errorf("failed to close ZIP writer: %w", err)
	}
	return out.Close()
}

func addToZip(zipWriter *zip.Writer, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s for ZIP: %w", path, err)
	}
	defer file.Close()

	entry, err := zipWriter.Create(filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to create ZIP entry for %s: %w", path, err)
	}

	if _, err := io.Copy(entry, file); err != nil {
		return fmt.Errorf("failed to write ZIP entry for %s: %w", path, err)
	}
	return nil
}
