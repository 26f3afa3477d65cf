package cmd

import (
	"fmt"

	"github.com/chrisdamba/weaning/internal/cloudwriter"
	"github.com/chrisdamba/weaning/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the meal history as json lines, csv, parquet or a postgres table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			ec := a.cfg.Export
			if f.Changed("format") {
				ec.Format, _ = f.GetString("format")
			}
			if f.Changed("out") {
				ec.Path, _ = f.GetString("out")
				ec.Table = ec.Path
			}
			if f.Changed("bucket") {
				ec.Bucket, _ = f.GetString("bucket")
			}
			format, err := export.ParseFormat(ec.Format)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			var opts []export.Option
			if ec.Progress {
				opts = append(opts, export.WithProgress(cmd.ErrOrStderr()))
			}
			target := ec.Path
			switch {
			case format == export.FormatPostgres:
				opts = append(opts, export.WithPostgres(ec.PostgresDSN))
				target = ec.Table
			case ec.Bucket != "":
				factory, err := cloudwriter.NewS3WriterFactory(ctx, ec.Region)
				if err != nil {
					return fmt.Errorf("failed to create cloud writer factory: %w", err)
				}
				opts = append(opts, export.WithCloud(factory, ec.Bucket))
			}

			n, err := export.New(format, a.log, opts...).Export(ctx, export.Rows(a.store.Snapshot()), target)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported %d meals\n", n)
			return nil
		},
	}
	exportCmd.Flags().String("format", "", "json, csv, parquet or postgres (default export.format)")
	exportCmd.Flags().String("out", "", "file path, object key, or table name for postgres")
	exportCmd.Flags().String("bucket", "", "upload to this S3 bucket instead of writing locally")
	return exportCmd
}
