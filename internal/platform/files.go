package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Directory layout under the base directory
const (
	ScratchDirName = "temp"
	UploadsDirName = "uploads"
	AppDirName     = "video_processor"
)

// AppDownloadsDir returns the application directory inside the user's
// Downloads folder, falling back to ./downloads when the home directory
// cannot be determined.
func AppDownloadsDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "downloads")
	}
	return filepath.Join(homeDir, "Downloads", AppDirName)
}

// ScratchDir returns the exclusive scratch directory for a job:
// {base}/temp/{jobID}
func ScratchDir(baseDir, jobID string) string {
	return filepath.Join(baseDir, ScratchDirName, jobID)
}

// UploadPath returns the final output location for a filename:
// {base}/uploads/{filename}
func UploadPath(baseDir, filename string) string {
	return filepath.Join(baseDir, UploadsDirName, filename)
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// RemoveScratch deletes a job's scratch directory. Safe to call more than
// once; removal of an already-removed directory is not an error.
func RemoveScratch(dir string) error {
	if dir == "" {
		return nil
	}
	return os.RemoveAll(dir)
}

// DirSizeBySuffix sums the sizes of regular files in dir whose names carry
// the given suffix. Used for throughput accounting over downloaded segments;
// a missing directory counts as zero bytes.
func DirSizeBySuffix(dir, suffix string) int64 {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}

	var total int64
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		total += info.Size()
	}
	return total
}

// FileSize returns the size of a file, or 0 if it does not exist
func FileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
