package internal

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	tt "github.com/cairoverse/clin/internal/types"
	"github.com/cairoverse/clin/scanner"
	"github.com/cairoverse/clin/treeio"
)

// StartWatching lints every dump already present under the given
// directories, then watches them for rewritten dumps and relints each
// one as the frontend emits it.
func (e *Engine) StartWatching(dirs ...string) error {
	if e.isWatching {
		return fmt.Errorf("already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	e.watcher = watcher
	e.watchDirs = dirs

	for _, dir := range e.watchDirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return e.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			e.watcher.Close()
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	// report the current state before waiting for changes
	for _, dir := range e.watchDirs {
		files, err := scanner.New(dir).Scan()
		if err != nil {
			e.watcher.Close()
			return fmt.Errorf("error scanning %s: %w", dir, err)
		}
		for _, file := range files {
			diags, err := e.Run(file.Path)
			if err != nil {
				log.Printf("error: %v", err)
				continue
			}
			e.reportDiagnostics(file.Path, diags)
		}
	}

	e.isWatching = true
	go e.watchLoop()
	return nil
}

func (e *Engine) StopWatching() error {
	if !e.isWatching {
		log.Println("not watching")
	}

	e.isWatching = false
	return e.watcher.Close()
}

func (e *Engine) watchLoop() {
	for e.isWatching {
		select {
		case event, ok := <-e.watcher.Events:
			if !ok {
				return
			}
			e.handleFileEvent(event)
		case err, ok := <-e.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("error: %v", err)
		}
	}
}

func (e *Engine) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write == fsnotify.Write {
		// process the dump when the frontend rewrites it
		if treeio.FormatForPath(event.Name) != treeio.FormatUnknown {
			// wait for a while after file change to consider multiple changes as one
			time.Sleep(100 * time.Millisecond)
			diags, err := e.Run(event.Name)
			if err != nil {
				log.Printf("error: %v", err)
				return
			}
			e.reportDiagnostics(event.Name, diags)
		}
	}
}

func (e *Engine) reportDiagnostics(filename string, diags []tt.Diagnostic) {
	if len(diags) == 0 {
		log.Printf("no issues found in %s", filename)
		return
	}

	log.Printf("found %d issues in %s", len(diags), filename)
	for _, d := range diags {
		log.Printf("- %s: %s", d.Rule, d.Message)
	}
}
