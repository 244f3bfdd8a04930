package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"daofmt/internal/formatter"
	"daofmt/internal/model"
	"daofmt/internal/reporter"
	"daofmt/internal/rewriter"
	"daofmt/internal/scanner"
)

const (
	configBaseName = "daofmt"
	envPrefix      = "DAOFMT"

	srcFlagName          = "src"
	suffixFlagName       = "suffix"
	excludeFlagName      = "exclude"
	indentOffsetFlagName = "indent-offset"
	dryRunFlagName       = "dry-run"
	verboseFlagName      = "verbose"
	logFileFlagName      = "log"

	suffixConfigKey       = "paths.suffixes"
	excludeConfigKey      = "paths.exclude"
	indentOffsetConfigKey = "format.indent_offset"
	logFilenameKey        = "log.filename"
	logMaxSizeKey         = "log.max_size"
	logMaxBackupsKey      = "log.max_backups"
	logMaxAgeKey          = "log.max_age"

	defaultLogFilename   = ".daofmt.log"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
)

var (
	srcPath      string
	suffixes     []string
	excludes     []string
	indentOffset int
	dryRun       bool
	verbose      bool
	logPath      string
)

var rootCmd = &cobra.Command{
	Use:   "daofmt",
	Short: "Reformats inline SQL literals in DAO source files",
	Long: `daofmt scans a source tree for DAO files, finds SQL string literals
passed to createQuery, createUpdate, prepareBatch and commit calls, and
rewrites each literal as a padded, keyword-aligned block of concatenated
string lines matching the call site's indentation. Files are overwritten
in place; failures are reported per file and never abort the run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configureLogger(logPath, verbose)
		return runFormat()
	},
}

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(suffixConfigKey, []string{"Dao.java", "DAO.java"})
	viper.SetDefault(excludeConfigKey, []string{".git", "target", "build"})
	viper.SetDefault(indentOffsetConfigKey, formatter.DefaultIndentOffset)
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: could not read %s.yaml: %v\n", configBaseName, err)
		}
	}

	rootCmd.Flags().StringVarP(&srcPath, srcFlagName, "s", ".", "Path to source tree to scan")

	rootCmd.Flags().StringSliceVar(&suffixes, suffixFlagName, viper.GetStringSlice(suffixConfigKey), "DAO filename suffixes, matched case-sensitively")
	bindFlagToConfig(rootCmd.Flags().Lookup(suffixFlagName), suffixConfigKey)

	rootCmd.Flags().StringSliceVarP(&excludes, excludeFlagName, "e", viper.GetStringSlice(excludeConfigKey), "Glob patterns to exclude from scan")
	bindFlagToConfig(rootCmd.Flags().Lookup(excludeFlagName), excludeConfigKey)

	rootCmd.Flags().IntVar(&indentOffset, indentOffsetFlagName, viper.GetInt(indentOffsetConfigKey), "Columns between call indentation and the literal block")
	bindFlagToConfig(rootCmd.Flags().Lookup(indentOffsetFlagName), indentOffsetConfigKey)

	rootCmd.Flags().BoolVarP(&dryRun, dryRunFlagName, "n", false, "Report files that would change without writing")
	rootCmd.Flags().BoolVarP(&verbose, verboseFlagName, "v", false, "Log debug-level entries to the log file")

	rootCmd.Flags().StringVar(&logPath, logFileFlagName, viper.GetString(logFilenameKey), "Log file path")
	bindFlagToConfig(rootCmd.Flags().Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// configureLogger points the default slog logger at a rotating log file.
func configureLogger(path string, verbose bool) {
	if strings.TrimSpace(path) == "" {
		path = defaultLogFilename
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	logWriter := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runFormat() error {
	// 0. Validate inputs
	if _, err := os.Stat(srcPath); os.IsNotExist(err) {
		return fmt.Errorf("source path does not exist: %s", srcPath)
	}

	fm := formatter.New()
	fm.IndentOffset = indentOffset
	rw := rewriter.New(fm)

	walker := scanner.NewFileWalker(suffixes, excludes)
	var rpt model.Reporter = reporter.NewConsoleReporter()

	ctx := context.Background()
	paths, errChan := walker.Walk(ctx, srcPath)

	go func() {
		for err := range errChan {
			fmt.Fprintf(os.Stderr, "Scanner Error: %v\n", err)
		}
	}()

	slog.Info("formatting started", "src", srcPath, "indent_offset", indentOffset, "dry_run", dryRun)

	// Files are handled strictly one at a time; a failure is terminal
	// for that file only.
	var results []model.FileResult
	for path := range paths {
		rpt.Start(path)
		res := processFile(rw, path, dryRun)
		rpt.Finish(res)
		slog.Debug("processed file",
			"path", res.Path,
			"status", string(res.Status),
			"call_sites", res.CallSites,
			"err", res.Err,
		)
		results = append(results, res)
	}

	return rpt.Summary(results)
}

// processFile runs the read → rewrite → overwrite cycle for one file.
// Every failure mode ends up in the FileResult instead of an early return
// up the driver loop.
func processFile(rw *rewriter.Rewriter, path string, dryRun bool) model.FileResult {
	content, err := os.ReadFile(path)
	if err != nil {
		return model.FileResult{Path: path, Status: model.StatusFailed, Err: err}
	}

	out, sites, err := rw.Rewrite(string(content))
	if err != nil {
		return model.FileResult{Path: path, Status: model.StatusFailed, Err: err}
	}

	status := model.StatusUnchanged
	if out != string(content) {
		status = model.StatusRewritten
	}

	if !dryRun {
		// Files without call sites are still written back byte-identical.
		if err := os.WriteFile(path, []byte(out), 0644); err != nil {
			return model.FileResult{Path: path, Status: model.StatusFailed, Err: err}
		}
	}

	return model.FileResult{Path: path, Status: status, CallSites: sites}
}
