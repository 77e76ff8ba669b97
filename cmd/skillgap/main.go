// Package main provides the entry point for the SkillGap AI HTTP API server
// and CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skillgap",
	Short: "SkillGap AI API Server",
	Long:  "SkillGap AI analyzes resumes and job postings, scores skill gaps against target roles and recommends ranked courses via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
