package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var maxCharsFlag int

var brochureCmd = &cobra.Command{
	Use:   "brochure <company> <url>",
	Short: "Build a short company brochure from a website",
	Long: `Fetch the landing page, ask the model which of its links belong in
a company brochure (about, careers, and similar pages), fetch those
pages too, and turn the combined text into a short markdown brochure
for prospective customers, investors, and recruits.`,
	Args: cobra.ExactArgs(2),
	RunE: runBrochure,
}

func init() {
	brochureCmd.Flags().IntVar(&maxCharsFlag, "max-chars", 0,
		"cap on combined page text in characters (0 uses SITEBRIEF_MAX_DOCUMENT_CHARS)")
}

func runBrochure(cmd *cobra.Command, args []string) error {
	companyName, url := args[0], args[1]
	logger := newLogger()

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	generator, err := buildGenerator(cfg, logger, maxCharsFlag)
	if err != nil {
		return err
	}

	s := newSpinner(fmt.Sprintf(" Generating brochure for %s (%s) ...", companyName, url))
	s.Start()
	brochure, err := generator.Brochure(cmd.Context(), companyName, url)
	s.Stop()
	if err != nil {
		return err
	}

	fmt.Println(banner())
	fmt.Printf("Brochure for %s\n", companyName)
	fmt.Println(banner())
	fmt.Println(brochure)
	fmt.Println(banner())
	return nil
}
