package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crawlbench/crawlbench/internal/urlgen"
)

// newGenerateCmd creates the 'generate' subcommand, which writes a
// newline-delimited URL list for benchmark runs.
func newGenerateCmd() *cobra.Command {
	var (
		count  int
		output string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a URL list for benchmark runs",
		RunE: func(_ *cobra.Command, _ []string) error {
			urls := urlgen.Generate(count, nil)
			if err := urlgen.WriteList(urls, output); err != nil {
				return err
			}
			fmt.Printf("Generated %d URLs and saved to %s\n", len(urls), output)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 100, "number of URLs to generate")
	cmd.Flags().StringVar(&output, "output", "urls.txt", "output file name")

	return cmd
}
