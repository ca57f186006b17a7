// skimctl runs the scrape pipeline in-process for one-off URLs, without
// standing up the HTTP service.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gistworks/skim/cleaner"
	"github.com/gistworks/skim/models"
	"github.com/gistworks/skim/scraper"
	"github.com/gistworks/skim/summary"
)

var (
	flagTimeout   time.Duration
	flagRetries   int
	flagUserAgent string
	flagFormat    string
	flagMode      string
	flagSummarize bool
	flagSentences int
	flagJSON      bool
)

var rootCmd = &cobra.Command{
	Use:   "skimctl",
	Short: "skimctl — extract article text from a web page",
	Long: `skimctl fetches a page, strips navigation/ads/scripts, extracts the main
article text, and optionally summarizes it.

Examples:
  skimctl scrape https://example.com/post
  skimctl scrape https://example.com/post --summarize --sentences 5
  skimctl scrape https://example.com/post --format markdown --json`,
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Scrape a URL and print the extracted content",
	Args:  cobra.ExactArgs(1),
	RunE:  runScrape,
}

func init() {
	scrapeCmd.Flags().DurationVar(&flagTimeout, "timeout", 10*time.Second, "per-attempt fetch timeout")
	scrapeCmd.Flags().IntVar(&flagRetries, "retries", 3, "maximum fetch attempts")
	scrapeCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override the default user agent")
	scrapeCmd.Flags().StringVar(&flagFormat, "format", "text", "output format: text or markdown")
	scrapeCmd.Flags().StringVar(&flagMode, "mode", "cascade", "extraction mode: cascade or readability")
	scrapeCmd.Flags().BoolVar(&flagSummarize, "summarize", false, "print a summary instead of full content")
	scrapeCmd.Flags().IntVar(&flagSentences, "sentences", summary.DefaultSentences, "summary length in sentences")
	scrapeCmd.Flags().BoolVar(&flagJSON, "json", false, "print the full result as JSON")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	sc := scraper.New(cleaner.New(), nil)

	opts := &models.ScrapingOptions{
		Timeout:   flagTimeout,
		Retries:   flagRetries,
		UserAgent: flagUserAgent,
	}
	result := sc.ScrapeWith(context.Background(), args[0], opts, scraper.RenderOptions{
		Format:      flagFormat,
		ExtractMode: flagMode,
	})

	if !result.Success {
		return fmt.Errorf("scrape failed: %s", result.Error.Message)
	}

	if flagSummarize {
		result.Summary = summary.Summarize(result.Content, flagSentences)
		result.Translation = summary.Translate(result.Summary)
	}

	if flagJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	if result.Metadata.Title != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n\n", result.Metadata.Title)
	}
	if flagSummarize {
		fmt.Fprintln(cmd.OutOrStdout(), result.Summary)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), result.Content)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
