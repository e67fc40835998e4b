package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tgienger/yusra/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export [BOARD_ID...]",
	Short: "Export boards as JSON snapshots",
	Long: `Export boards with their columns and cards as JSON snapshots.

Snapshots go to --out (default: <data_dir>/exports) or, with --s3, to the
bucket configured under export.s3 in the config file.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("out", "", "directory to write snapshots to")
	exportCmd.Flags().Bool("s3", false, "upload to the configured S3 bucket")
	exportCmd.Flags().StringP("workspace", "w", "", "export every board of this workspace")
}

func runExport(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	toS3, _ := cmd.Flags().GetBool("s3")
	workspaceID, _ := cmd.Flags().GetString("workspace")

	if len(args) == 0 && workspaceID == "" {
		return errors.New("give at least one board id or --workspace")
	}
	if toS3 && out != "" {
		return errors.New("--out and --s3 are mutually exclusive")
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()

	var sink export.Sink
	if toS3 {
		s3sink, err := export.NewS3Sink(ctx, e.cfg.Export.S3)
		if err != nil {
			return err
		}
		if err := s3sink.CheckBucket(ctx); err != nil {
			return err
		}
		sink = s3sink
	} else {
		if out == "" {
			out = e.cfg.ExportDir()
		}
		sink = export.FileSink{Dir: out}
	}

	ids := args
	if workspaceID != "" {
		boards, err := e.client.ListBoards(ctx, workspaceID)
		if err != nil {
			return fmt.Errorf("list boards: %w", err)
		}
		for _, b := range boards {
			ids = append(ids, b.ID)
		}
		if len(ids) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to export")
			return nil
		}
	}

	exporter := export.New(e.client, sink, e.cfg.Server.BaseURL, e.log)
	for _, id := range ids {
		loc, err := exporter.Board(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), loc)
	}
	return nil
}
