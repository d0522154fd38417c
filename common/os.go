package common

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir (and parents) if it does not exist yet.
func EnsureDir(dir string, mode os.FileMode) error {
	if err := os.MkdirAll(dir, mode); err != nil {
		return fmt.Errorf("Could not create directory %v. %v", dir, err)
	}
	return nil
}

// FileExists reports whether filePath exists.
func FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return !os.IsNotExist(err)
}

// WriteFileAtomic writes data to a temp file in the target directory, syncs
// it and renames it over filePath. A previous version is kept as filePath.bak.
func WriteFileAtomic(filePath string, data []byte, mode os.FileMode) error {
	if FileExists(filePath) {
		old, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("Could not read file %v. %v", filePath, err)
		}
		if err := os.WriteFile(filePath+".bak", old, mode); err != nil {
			return fmt.Errorf("Could not write file %v. %v", filePath+".bak", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(filePath), filepath.Base(filePath)+".*.new")
	if err != nil {
		return fmt.Errorf("Could not create temp file for %v. %v", filePath, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return err
	}
	return os.Rename(tmpName, filePath)
}
