package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"promptcat/pkg/concat"
	"promptcat/pkg/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	extensions      []string
	includeHidden   bool
	ignorePatterns  []string
	ignoreFilesOnly bool
	ignoreGitignore bool
	cxmlFormat      bool
	markdownFormat  bool
	lineNumbers     bool
	outputFile      string
	nullSeparator   bool
	verbose         bool
)

var logger *zap.Logger

// rootCmd is the base command: concatenate the given paths into one stream.
var rootCmd = &cobra.Command{
	Use:   "promptcat [PATHS...]",
	Short: "Concatenate files into a single prompt-ready stream",
	Long: `promptcat takes one or more paths to files or directories and writes the
content of every file found, recursively, to one combined output. It honors
.gitignore rules, supports extension and pattern filters, and renders the
default, Markdown, or CXML document format. With no path arguments it reads
paths from standard input, one per line.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			if dbg, err := logging.New(true); err == nil {
				logger = dbg
			}
		}

		cfg := concat.Config{
			Paths:              args,
			Extensions:         extensions,
			IncludeHidden:      includeHidden,
			RespectGitignore:   !ignoreGitignore,
			RespectIgnoreFiles: !ignoreGitignore,
			IgnorePatterns:     ignorePatterns,
			IgnoreFilesOnly:    ignoreFilesOnly,
			Format:             selectFormat(),
			LineNumbers:        lineNumbers,
			OutputFile:         outputFile,
			NullSeparator:      nullSeparator,
		}
		return concat.Run(cfg, logger)
	},
}

// selectFormat maps the two format flags onto the single format variant.
// CXML takes precedence when both are given.
func selectFormat() concat.Format {
	switch {
	case cxmlFormat:
		return concat.FormatCXML
	case markdownFormat:
		return concat.FormatMarkdown
	default:
		return concat.FormatDefault
	}
}

// Execute runs the root command with the given logger.
func Execute(l *zap.Logger) error {
	logger = l
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.Flags()

	flags.StringArrayVarP(&extensions, "extension", "e", nil, "only include files with this extension (repeatable)")
	viper.BindPFlag("extension", flags.Lookup("extension"))
	flags.BoolVar(&includeHidden, "include-hidden", false, "include hidden files and directories")
	viper.BindPFlag("include_hidden", flags.Lookup("include-hidden"))
	flags.StringArrayVar(&ignorePatterns, "ignore", nil, "ignore paths matching this gitignore-style pattern (repeatable)")
	viper.BindPFlag("ignore", flags.Lookup("ignore"))
	flags.BoolVar(&ignoreFilesOnly, "ignore-files-only", false, "--ignore patterns match bare file names only")
	viper.BindPFlag("ignore_files_only", flags.Lookup("ignore-files-only"))
	flags.BoolVar(&ignoreGitignore, "ignore-gitignore", false, "ignore .gitignore files and include all files found")
	viper.BindPFlag("ignore_gitignore", flags.Lookup("ignore-gitignore"))

	flags.BoolVarP(&cxmlFormat, "cxml", "c", false, "output in CXML document format")
	flags.BoolVarP(&markdownFormat, "markdown", "m", false, "output as Markdown with fenced code blocks")
	flags.BoolVarP(&lineNumbers, "line-numbers", "n", false, "include line numbers in the output")
	viper.BindPFlag("line_numbers", flags.Lookup("line-numbers"))
	flags.StringVarP(&outputFile, "output", "o", "", "write output to a file instead of stdout")
	flags.BoolVarP(&nullSeparator, "null", "0", false, "use NUL instead of newline as the stdin path separator")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// initConfig loads defaults from the optional config file and PROMPTCAT_*
// environment variables. Explicit flags always win: Default < Config < Env < Flag.
func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "promptcat"))
	}
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("toml")

	viper.SetEnvPrefix("PROMPTCAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	}

	// Config and env values become the effective defaults for flags the user
	// did not set on the command line.
	if !rootCmd.Flags().Changed("extension") {
		if v := viper.GetStringSlice("extension"); len(v) > 0 {
			extensions = v
		}
	}
	if !rootCmd.Flags().Changed("ignore") {
		if v := viper.GetStringSlice("ignore"); len(v) > 0 {
			ignorePatterns = v
		}
	}
	if !rootCmd.Flags().Changed("include-hidden") {
		includeHidden = viper.GetBool("include_hidden")
	}
	if !rootCmd.Flags().Changed("ignore-files-only") {
		ignoreFilesOnly = viper.GetBool("ignore_files_only")
	}
	if !rootCmd.Flags().Changed("ignore-gitignore") {
		ignoreGitignore = viper.GetBool("ignore_gitignore")
	}
	if !rootCmd.Flags().Changed("line-numbers") {
		lineNumbers = viper.GetBool("line_numbers")
	}
}
