package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <url>",
	Short: "Summarize a single web page in markdown",
	Long: `Fetch one page, strip it down to its readable text, and ask the
model for a short markdown summary. News and announcements on the page
are summarized too. A scheme-less URL is fetched over https.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func runSummarize(cmd *cobra.Command, args []string) error {
	url := args[0]
	logger := newLogger()

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	generator, err := buildGenerator(cfg, logger, 0)
	if err != nil {
		return err
	}

	s := newSpinner(fmt.Sprintf(" Summarizing %s ...", url))
	s.Start()
	summary, err := generator.Summarize(cmd.Context(), url)
	s.Stop()
	if err != nil {
		return err
	}

	fmt.Println("\n" + banner())
	fmt.Printf("Summary of %s:\n", url)
	fmt.Println(banner())
	fmt.Println(summary)
	fmt.Println(banner() + "\n")
	return nil
}
