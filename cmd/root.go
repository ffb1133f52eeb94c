package cmd

import (
	"fmt"
	u "net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tanq16/docgrab/internal/download"
	"github.com/tanq16/docgrab/internal/output"
	"github.com/tanq16/docgrab/internal/utils"
)

var (
	outputDir    string
	maxRetries   int
	timeout      time.Duration
	extensions   string
	userAgent    string
	insecure     bool
	minFileSize  int64
	maxFileSize  int64
	verbose      bool
	pageListFile string
)

var DocgrabVersion = "dev"

var rootCmd = &cobra.Command{
	Use:     "docgrab [URL]",
	Short:   "Docgrab downloads every document linked from a webpage",
	Version: DocgrabVersion,
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		utils.InitLogger(verbose)
		if len(args) == 0 && pageListFile == "" {
			output.PrintError("No URL or page list provided")
			os.Exit(1)
		}
		if pageListFile != "" && len(args) > 0 {
			output.PrintError("Cannot specify url argument and --list together, choose one")
			os.Exit(1)
		}
		if userAgent == "randomize" {
			userAgent = utils.GetRandomUserAgent()
		}
		cfg := utils.Config{
			MaxRetries:        maxRetries,
			Timeout:           timeout,
			MinFileSize:       minFileSize,
			MaxFileSize:       maxFileSize,
			AllowedExtensions: utils.ParseExtensions(extensions),
			VerifySSL:         !insecure,
			UserAgent:         userAgent,
		}
		if err := cfg.Validate(); err != nil {
			output.PrintError(fmt.Sprintf("Error: %v", err))
			os.Exit(1)
		}
		var entries []utils.PageEntry
		if len(args) > 0 {
			pageURL := args[0]
			if _, err := u.Parse(pageURL); err != nil {
				output.PrintError("Invalid URL format")
				os.Exit(1)
			}
			entries = []utils.PageEntry{{URL: pageURL, OutputDir: outputDir}}
		} else {
			var err error
			entries, err = utils.ReadPageList(pageListFile)
			if err != nil {
				output.PrintError("Failed to read page list file")
				os.Exit(1)
			}
		}
		logger := utils.GetLogger("downloader")
		for _, entry := range entries {
			dir := entry.OutputDir
			if dir == "" {
				dir = outputDir
			}
			grabber := download.New(dir, cfg, logger)
			report, err := grabber.DownloadFromURL(entry.URL)
			if err != nil {
				output.PrintError(fmt.Sprintf("Error: %v", err))
				os.Exit(1)
			}
			printReport(report)
		}
	},
}

func printReport(report *download.Report) {
	output.PrintSuccess("Download completed!")
	output.PrintInfo(fmt.Sprintf("Successfully downloaded: %d files", report.SuccessCount))
	output.PrintInfo(fmt.Sprintf("Failed: %d files", report.FailedCount))
	output.PrintInfo(fmt.Sprintf("Skipped: %d files", report.SkippedCount))
	output.PrintInfo(fmt.Sprintf("Total size: %s", output.FormatBytes(uint64(report.TotalSize))))
	output.PrintInfo(fmt.Sprintf("Duration: %.2f seconds", report.Duration()))
	for url, reason := range report.FailedFiles {
		output.PrintWarning(fmt.Sprintf("%s %s: %s", output.StyleSymbols["fail"], url, reason))
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "out", "Output directory for downloaded files")
	rootCmd.Flags().StringVarP(&pageListFile, "list", "l", "", "Path to YAML file containing page URLs and output directories")
	rootCmd.Flags().IntVarP(&maxRetries, "max-retries", "r", 3, "Maximum number of retry attempts per request")
	rootCmd.Flags().DurationVarP(&timeout, "timeout", "t", 30*time.Second, "Request timeout (eg. 5s, 2m)")
	rootCmd.Flags().StringVarP(&extensions, "extensions", "e", ".pdf,.doc,.docx", "Comma-separated list of allowed file extensions")
	rootCmd.Flags().StringVarP(&userAgent, "user-agent", "a", utils.DefaultUserAgent, "User agent ('randomize' picks one)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	// flags without shorthand
	rootCmd.Flags().BoolVar(&insecure, "insecure", false, "Skip TLS certificate verification")
	rootCmd.Flags().Int64Var(&minFileSize, "min-size", 0, "Minimum file size in bytes (0 for no bound)")
	rootCmd.Flags().Int64Var(&maxFileSize, "max-size", 0, "Maximum file size in bytes (0 for no bound)")
}
