package lint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/cairoverse/clin/internal"
	"github.com/cairoverse/clin/internal/lints"
	tt "github.com/cairoverse/clin/internal/types"
	"github.com/cairoverse/clin/syntax"
	"github.com/cairoverse/clin/treeio"
)

const maxShowRecentFiles = 25

type LintEngine interface {
	Run(filePath string) ([]tt.Diagnostic, error)
	RunSource(source []byte) ([]tt.Diagnostic, error)
	IgnoreRule(rule string)
	IgnorePath(path string)
}

// Re-exported result types, so hosts never import internal packages.
type (
	Diagnostic = tt.Diagnostic
	LintKind   = tt.LintKind
	Severity   = tt.Severity
	ConfigRule = tt.ConfigRule
)

// Lint kinds, as reported on Diagnostic.Kind.
const (
	LintUnknown             = tt.LintUnknown
	LintDestructuringMatch  = tt.LintDestructuringMatch
	LintMatchForEquality    = tt.LintMatchForEquality
	LintRedundantEnumParens = tt.LintRedundantEnumParens
)

// Severities, as configured per rule.
const (
	SeverityError   = tt.SeverityError
	SeverityWarning = tt.SeverityWarning
	SeverityInfo    = tt.SeverityInfo
	SeverityOff     = tt.SeverityOff
)

// New creates a lint engine backed by a fresh in-memory syntax
// database. An empty configuration path keeps the built-in rule
// defaults.
func New(configurationPath string) (*internal.Engine, error) {
	var rules map[string]tt.ConfigRule
	if configurationPath != "" {
		config, err := parseConfigurationFile(configurationPath)
		if err != nil {
			return nil, err
		}
		rules = config.Rules
	}

	return internal.NewEngine(syntax.NewMemoryDB(), rules)
}

// Classify maps a diagnostic message back to its lint kind. Messages
// that are not produced by any rule classify as LintUnknown.
func Classify(message string) tt.LintKind {
	return lints.ClassifyMessage(message)
}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	sources [][]byte,
	processor func(LintEngine, []byte) ([]tt.Diagnostic, error),
) ([]tt.Diagnostic, error) {
	results := make([][]tt.Diagnostic, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, source := range sources {
		i, source := i, source
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			diags, err := processor(engine, source)
			if err != nil {
				if logger != nil {
					logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
				}
				return err
			}
			results[i] = diags
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var allDiags []tt.Diagnostic
	for _, diags := range results {
		allDiags = append(allDiags, diags...)
	}

	return allDiags, nil
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor func(LintEngine, string) ([]tt.Diagnostic, error),
) ([]tt.Diagnostic, error) {
	var allDiags []tt.Diagnostic
	for _, path := range paths {
		diags, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allDiags = append(allDiags, diags...)
	}

	return allDiags, nil
}

func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor func(LintEngine, string) ([]tt.Diagnostic, error),
) ([]tt.Diagnostic, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	var diags []tt.Diagnostic
	if info.IsDir() {
		var files []string
		err := filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !fileInfo.IsDir() && isTreeDump(filePath) {
				files = append(files, filePath)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error walking %s: %w", path, err)
		}

		// mutex for recent files
		var recentFilesMutex sync.Mutex
		recentFiles := make([]string, maxShowRecentFiles)

		// make space for recent files
		for i := 0; i < maxShowRecentFiles+1; i++ {
			fmt.Println()
		}
		fmt.Printf("\033[%dA", maxShowRecentFiles+1)

		// one result per file, success or failure
		type fileResult struct {
			diags []tt.Diagnostic
			err   error
		}
		resultChan := make(chan fileResult, len(files))

		// limit the number of workers
		maxWorkers := runtime.NumCPU()
		sem := make(chan struct{}, maxWorkers)

		bar := progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription(path),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}))

		// update recent files
		updateRecentFiles := func(filename string) {
			recentFilesMutex.Lock()
			defer recentFilesMutex.Unlock()

			// update the list
			for j := maxShowRecentFiles - 1; j > 0; j-- {
				recentFiles[j] = recentFiles[j-1]
			}
			recentFiles[0] = filename

			// move the cursor up
			fmt.Printf("\033[%dA", maxShowRecentFiles)

			// print the list
			for j := range recentFiles {
				if recentFiles[j] != "" {
					// \033[2k: clear the line
					// \r: move the cursor to the beginning of the line
					fmt.Printf("\033[2K\r%s\n", recentFiles[j])
				} else {
					fmt.Printf("\033[2K\r\n")
				}
			}
		}

		// for each file, run a goroutine
		for _, filePath := range files {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
				sem <- struct{}{}
				go func(fp string) {
					defer func() { <-sem }()

					// show the start of file processing
					updateRecentFiles(filepath.Base(fp))

					fileDiags, err := processor(engine, fp)
					if err != nil {
						if logger != nil {
							logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
						}
						resultChan <- fileResult{err: err}
					} else {
						resultChan <- fileResult{diags: fileDiags}
					}
					bar.Add(1)
				}(filePath)
			}
		}

		// collect all results, skipping files that failed
		for range files {
			result := <-resultChan
			if result.err != nil {
				continue
			}
			diags = append(diags, result.diags...)
		}

		fmt.Println()
		return diags, nil
	} else if isTreeDump(path) {
		fileDiags, err := processor(engine, path)
		if err != nil {
			return nil, err
		}
		diags = append(diags, fileDiags...)
	}

	return diags, nil
}

func ProcessFile(engine LintEngine, filePath string) ([]tt.Diagnostic, error) {
	return engine.Run(filePath)
}

func ProcessSource(engine LintEngine, source []byte) ([]tt.Diagnostic, error) {
	return engine.RunSource(source)
}

func isTreeDump(path string) bool {
	return treeio.FormatForPath(path) != treeio.FormatUnknown
}

// Config represents the overall configuration with a name and a slice of rules.
type Config struct {
	Name  string                   `yaml:"name"`
	Rules map[string]tt.ConfigRule `yaml:"rules"`
}

func parseConfigurationFile(configurationPath string) (Config, error) {
	var config Config

	// Read the configuration file
	f, err := os.Open(configurationPath)
	if err != nil {
		return config, err
	}
	defer f.Close()

	// Parse the configuration file
	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
