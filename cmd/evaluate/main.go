// Package main implements the evaluate CLI, which scores PDF résumés against a
// job description from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "evaluate [resume.pdf...]",
	Short: "Score PDF résumés against a job description",
	Long:  "Extracts each résumé, asks Gemini for an ATS-style evaluation against the job description and prints the report.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEvaluate,
}

var (
	jdFile      string
	jdText      string
	extractOnly bool
)

func init() {
	rootCmd.Flags().StringVarP(&jdFile, "jd-file", "f", "", "Path to a job description text file")
	rootCmd.Flags().StringVarP(&jdText, "jd", "j", "", "Job description text")
	rootCmd.Flags().BoolVar(&extractOnly, "extract-only", false, "Print the extracted résumé text without calling the model")
	rootCmd.MarkFlagsMutuallyExclusive("jd-file", "jd")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
