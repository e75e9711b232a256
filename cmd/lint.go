package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cairoverse/clin/formatter"
	"github.com/cairoverse/clin/internal"
	tt "github.com/cairoverse/clin/internal/types"
	"github.com/cairoverse/clin/lint"
)

var (
	ignoreRules    string
	ignorePaths    string
	lintJsonOutput bool
	outPath        string
	cacheDir       string
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Run the normal lint process",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		configPath := resolveConfigPath()
		engine, err := lint.New(configPath)
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}

		if cacheDir != "" {
			if err := engine.EnableCache(cacheDir, configPath); err != nil {
				logger.Fatal("Failed to enable result cache", zap.Error(err))
			}
		}

		if ignoreRules != "" {
			rules := strings.Split(ignoreRules, ",")
			for _, rule := range rules {
				engine.IgnoreRule(strings.TrimSpace(rule))
			}
		}

		if ignorePaths != "" {
			paths := strings.Split(ignorePaths, ",")
			for _, path := range paths {
				engine.IgnorePath(strings.TrimSpace(path))
			}
		}

		runNormalLintProcess(ctx, logger, engine, args, lintJsonOutput, outPath)
	},
}

func init() {
	lintCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of lint rules to ignore")
	lintCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths to ignore")
	lintCmd.Flags().BoolVar(&lintJsonOutput, "json", false, "Output diagnostics in JSON format")
	lintCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	lintCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Cache lint results in this directory between runs")
}

func runNormalLintProcess(ctx context.Context, logger *zap.Logger, engine lint.LintEngine, paths []string, isJson bool, jsonOutput string) {
	diags, err := lint.ProcessFiles(ctx, logger, engine, paths, lint.ProcessFile)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		os.Exit(1)
	}

	printDiagnostics(logger, engine, diags, isJson, jsonOutput)

	if len(diags) > 0 {
		os.Exit(1)
	}
}

// sourceProvider is satisfied by engines that cache the source text
// embedded in tree dumps. Dump files carry their module's source, so
// the cache is tried before falling back to the filesystem.
type sourceProvider interface {
	SourceCodeFor(filename string) (*internal.SourceCode, bool)
}

func printDiagnostics(logger *zap.Logger, engine lint.LintEngine, diags []tt.Diagnostic, isJson bool, jsonOutput string) {
	diagsByFile := make(map[string][]tt.Diagnostic)
	for _, diag := range diags {
		diagsByFile[diag.Filename] = append(diagsByFile[diag.Filename], diag)
	}

	sortedFiles := make([]string, 0, len(diagsByFile))
	for filename := range diagsByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	if !isJson {
		// text output
		for _, filename := range sortedFiles {
			fileDiags := diagsByFile[filename]
			sourceCode := lookupSourceCode(engine, filename)
			output := formatter.GenerateFormattedIssue(fileDiags, sourceCode)
			fmt.Println(output)
		}
	} else {
		// JSON output
		d, err := json.Marshal(diagsByFile)
		if err != nil {
			logger.Error("Error marshalling diagnostics to JSON", zap.Error(err))
			return
		}
		if jsonOutput == "" {
			fmt.Println(string(d))
		} else {
			f, err := os.Create(jsonOutput)
			if err != nil {
				logger.Error("Error creating JSON output file", zap.Error(err))
				return
			}
			defer f.Close()
			_, err = f.Write(d)
			if err != nil {
				logger.Error("Error writing JSON output file", zap.Error(err))
				return
			}
		}
	}
}

func lookupSourceCode(engine lint.LintEngine, filename string) *internal.SourceCode {
	if provider, ok := engine.(sourceProvider); ok {
		if sourceCode, ok := provider.SourceCodeFor(filename); ok {
			return sourceCode
		}
	}
	sourceCode, err := internal.ReadSourceCode(filename)
	if err != nil {
		// the formatter degrades to header and message only
		return nil
	}
	return sourceCode
}
