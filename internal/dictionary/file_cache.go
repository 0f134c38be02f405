package dictionary

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileCache stores raw dictionary responses as one JSON file per word.
type FileCache struct {
	rootDir string
}

func NewFileCache(cacheDirectory string) *FileCache {
	return &FileCache{
		rootDir: cacheDirectory,
	}
}

var fileNameReplacer = strings.NewReplacer("/", "_", `\`, "_", string(os.PathSeparator), "_")

func (cache *FileCache) filePath(word string) string {
	name := fileNameReplacer.Replace(strings.ToLower(strings.TrimSpace(word)))
	return filepath.Join(cache.rootDir, name+".json")
}

// fetch returns the cached response for word, calling f and storing its
// result on a miss.
func (cache *FileCache) fetch(word string, f func() ([]byte, error)) ([]byte, error) {
	localFilePath := cache.filePath(word)
	if contents, err := os.ReadFile(localFilePath); err == nil {
		return contents, nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", localFilePath, err)
	}

	contents, err := f()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cache.rootDir, 0755); err != nil {
		return contents, fmt.Errorf("os.MkdirAll(%s) > %w", cache.rootDir, err)
	}
	if err := os.WriteFile(localFilePath, contents, 0644); err != nil {
		return contents, fmt.Errorf("os.WriteFile(%s) > %w", localFilePath, err)
	}
	return contents, nil
}
