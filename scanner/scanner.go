package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/cairoverse/clin/treeio"
)

// FileInfo describes a single file picked up by a scan.
type FileInfo struct {
	Path string
	Size int64
}

// Scanner collects files under a root directory. With no explicit
// extensions it accepts every syntax tree dump treeio can load.
type Scanner struct {
	rootDir    string
	extensions []string
}

func New(rootDir string, extensions ...string) *Scanner {
	return &Scanner{
		rootDir:    rootDir,
		extensions: extensions,
	}
}

func (s *Scanner) Scan() ([]FileInfo, error) {
	var (
		files []FileInfo
		mutex sync.Mutex
		wg    sync.WaitGroup
	)

	err := filepath.Walk(s.rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}

		if s.isTargetFile(path) {
			wg.Add(1)
			go func() {
				defer wg.Done()
				fileInfo := FileInfo{
					Path: path,
					Size: info.Size(),
				}
				mutex.Lock()
				files = append(files, fileInfo)
				mutex.Unlock()
			}()
		}
		return nil
	})

	wg.Wait()
	return files, err
}

// isTargetFile matches on name suffix rather than filepath.Ext so that
// double extensions like .cst.yaml work.
func (s *Scanner) isTargetFile(path string) bool {
	if len(s.extensions) == 0 {
		return treeio.FormatForPath(path) != treeio.FormatUnknown
	}

	name := strings.ToLower(filepath.Base(path))
	for _, targetExt := range s.extensions {
		if strings.HasSuffix(name, strings.ToLower(targetExt)) {
			return true
		}
	}
	return false
}
