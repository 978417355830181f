package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newIndexCommand(ctx *commandContext) *cobra.Command {
	indexCmd := &cobra.Command{
		Use:   "index",
		Short: "Pack catalog maintenance",
	}
	indexCmd.AddCommand(newIndexRebuildCommand(ctx))
	return indexCmd
}

func newIndexRebuildCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild",
		Short: "Rescan every configured pack into the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()
			if s.index == nil {
				return errors.New("pack catalog disabled: set paths.index_path")
			}

			out := cmd.OutOrStdout()
			total := 0
			for _, pack := range s.dirs {
				n, err := s.index.Rebuild(cmd.Context(), pack)
				if err != nil {
					return fmt.Errorf("index %s: %w", pack.Name(), err)
				}
				total += n
				fmt.Fprintf(out, "Indexed %d resources from %s\n", n, pack.Name())
			}
			statusLine(out, true, "Catalog %s holds %d resources across %d packs", s.index.Path(), total, len(s.dirs))
			return nil
		},
	}
}
