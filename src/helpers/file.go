package helpers

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// FileExists checks if a file exists and is not a directory
func FileExists(filename string, logger *zap.SugaredLogger) bool {
	info, err := os.Stat(filename)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Infof("Error checking file %s for existence: %s", filename, err)
		}
		return false
	}

	return !info.IsDir()
}

// DirExists checks if a path exists and is a directory
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// WithMappedFile memory maps a file read-only and hands the bytes to fn.
// The mapping is released when fn returns, so fn must not retain data.
func WithMappedFile(path string, fn func(data []byte) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening file %s: %w", path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("failed to get file stats: %w", err)
	}
	fileSize := int(stat.Size())

	// mmap refuses zero-length mappings
	if fileSize == 0 {
		return fn(nil)
	}

	data, err := unix.Mmap(int(file.Fd()), 0, fileSize, syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		return fmt.Errorf("failed to memory map file: %w", err)
	}
	defer unix.Munmap(data)

	return fn(data)
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never observe a partially written file.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}

func EncodeBSON(document interface{}) ([]byte, error) {
	bsonData, err := bson.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("error encoding BSON: %w", err)
	}

	return bsonData, nil
}

func DecodeBSON(bsonData []byte) (map[string]interface{}, error) {
	var decodedData map[string]interface{}
	if err := bson.Unmarshal(bsonData, &decodedData); err != nil {
		return nil, fmt.Errorf("error decoding BSON: %w", err)
	}

	return decodedData, nil
}
