package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/a3tai/mcp-fer-extract/internal/config"
	"github.com/a3tai/mcp-fer-extract/internal/logging"
	"github.com/a3tai/mcp-fer-extract/internal/service"
)

type operation func(ctx context.Context, svc *service.Service, req service.FileRequest) (any, error)

type documentCommand struct {
	use   string
	short string
	run   operation
}

func documentCommands() []documentCommand {
	return []documentCommand{
		{
			use:   "parse-fer <file>",
			short: "Extract header fields, prior art and objections from a First Examination Report",
			run: func(ctx context.Context, svc *service.Service, req service.FileRequest) (any, error) {
				return svc.ParseFER(ctx, req)
			},
		},
		{
			use:   "formal <file>",
			short: "Reconstruct the PART-III formal requirements of a First Examination Report",
			run: func(ctx context.Context, svc *service.Service, req service.FileRequest) (any, error) {
				return svc.FormalRequirements(ctx, req)
			},
		},
		{
			use:   "claims <file>",
			short: "Split an amended claims document into numbered claims",
			run: func(ctx context.Context, svc *service.Service, req service.FileRequest) (any, error) {
				return svc.ParseClaims(ctx, req)
			},
		},
		{
			use:   "prior-art <file>",
			short: "Recover the abstract of a cited prior-art document",
			run: func(ctx context.Context, svc *service.Service, req service.FileRequest) (any, error) {
				return svc.ParsePriorArt(ctx, req)
			},
		},
		{
			use:   "cover-sheet <file>",
			short: "Resolve applicant, title, background and summary of a Complete Specification",
			run: func(ctx context.Context, svc *service.Service, req service.FileRequest) (any, error) {
				return svc.ParseCoverSheet(ctx, req)
			},
		},
		{
			use:   "inspect <file>",
			short: "Report format, pages, tables, images, text layer and validity of a document",
			run: func(ctx context.Context, svc *service.Service, req service.FileRequest) (any, error) {
				return svc.InspectDocument(ctx, req)
			},
		},
	}
}

func newDocumentCommand(opts *rootOptions, dc documentCommand) *cobra.Command {
	return &cobra.Command{
		Use:   dc.use,
		Short: dc.short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDocument(cmd, opts, args[0], dc.run)
		},
	}
}

// runDocument resolves the configuration, runs op on path and prints the
// result. A relative path is taken from the working directory; without an
// explicit --dir or MCP_FER_DIR the file's own directory is the document
// directory.
func runDocument(cmd *cobra.Command, opts *rootOptions, path string, op operation) error {
	if err := validateFormat(opts.format); err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	flags := cmd.Flags()
	if !flags.Changed("dir") && os.Getenv(config.EnvPrefix+"_DIR") == "" {
		if err := flags.Set("dir", filepath.Dir(abs)); err != nil {
			return err
		}
	}

	cfg, err := config.Resolve(flags)
	if err != nil {
		return err
	}
	cfg.Version = opts.info.Version

	logger := logging.NewConsole(cfg.LogLevel, cmd.ErrOrStderr())
	svc, err := service.NewService(cfg, logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	result, err := op(ctx, svc, service.FileRequest{Path: abs})
	if err != nil {
		return err
	}

	return writeResult(cmd.OutOrStdout(), opts.format, result)
}
