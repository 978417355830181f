package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"propmeta/internal/export"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var outputDir string
	var copyBlobs bool

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert every pack into output_dir",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			opts := export.WriterOptions{
				Dir:       s.cfg.Paths.OutputDir,
				Format:    export.Format(s.cfg.Output.Format),
				CopyBlobs: s.cfg.Output.CopyBlobs || copyBlobs,
				Logger:    s.logger,
			}
			if dir := strings.TrimSpace(outputDir); dir != "" {
				opts.Dir = dir
			}
			w, err := export.NewWriter(opts)
			if err != nil {
				return err
			}

			result, manifest, err := s.runner.Run(cmd.Context(), w)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			statusLine(out, len(result.Skipped) == 0, "Converted %d textures from %d files into %s",
				len(manifest.Entries), len(result.Files), w.Dir())
			fmt.Fprintf(out, "Run ID: %s\n", result.RunID)
			if len(result.Skipped) > 0 {
				rows := make([][]string, 0, len(result.Skipped))
				for _, skip := range result.Skipped {
					rows = append(rows, []string{skip.Subject, skip.Kind, skip.Reason})
				}
				fmt.Fprintf(out, "Skipped %d:\n", len(result.Skipped))
				fmt.Fprintln(out, renderTable(out, []string{"Subject", "Kind", "Reason"}, rows, nil))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory (overrides paths.output_dir)")
	cmd.Flags().BoolVar(&copyBlobs, "copy-blobs", false, "Copy animation source images into the output directory")
	return cmd
}
