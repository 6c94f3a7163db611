// Package cli implements the fer-extract command line.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/a3tai/mcp-fer-extract/internal/config"
)

// BuildInfo carries the values stamped into the binary at build time.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

type rootOptions struct {
	info    BuildInfo
	format  string
	timeout time.Duration
}

// NewRootCommand builds the fer-extract command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	opts := &rootOptions{info: info}

	cmd := &cobra.Command{
		Use:   "fer-extract",
		Short: "Extract structured data from Indian patent examination documents",
		Long: `fer-extract reads First Examination Reports, Complete Specifications,
amended claims and cited prior-art documents (PDF or DOCX) and prints
the extracted fields as JSON or YAML.

Every command accepts the same configuration as the MCP server:
flags override MCP_FER_* environment variables, which override the
optional config file.

Example:
  fer-extract parse-fer fer.pdf
  fer-extract formal fer.docx --format yaml
  fer-extract prior-art d1.pdf --profile v3`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	flags := cmd.PersistentFlags()
	config.DefineFlags(flags, config.DefaultConfig(), false)
	flags.StringVarP(&opts.format, "format", "f", formatJSON, "output format (json, yaml)")
	flags.DurationVar(&opts.timeout, "timeout", 2*time.Minute, "overall extraction timeout")

	for _, dc := range documentCommands() {
		cmd.AddCommand(newDocumentCommand(opts, dc))
	}
	cmd.AddCommand(newVersionCommand(opts))

	return cmd
}

// Execute runs the command line with args.
func Execute(ctx context.Context, info BuildInfo, args []string) error {
	cmd := NewRootCommand(info)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func newVersionCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "fer-extract %s\n", opts.info.Version)
			if opts.info.BuildTime != "" {
				fmt.Fprintf(out, "Build time: %s\n", opts.info.BuildTime)
			}
			if opts.info.GitCommit != "" {
				fmt.Fprintf(out, "Git commit: %s\n", opts.info.GitCommit)
			}
			return nil
		},
	}
}
