package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"propmeta/internal/packindex"
)

func newPacksCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "packs",
		Short: "List configured packs, highest priority first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			summaries := map[string]packindex.Summary{}
			if s.index != nil {
				list, err := s.index.Summaries(cmd.Context())
				if err != nil {
					return err
				}
				for _, summary := range list {
					summaries[summary.Key] = summary
				}
			}

			rows := make([][]string, 0, len(s.dirs))
			for i, pack := range s.dirs {
				resources, indexedAt := "-", "never"
				if summary, ok := summaries[packindex.Key(pack)]; ok {
					resources = strconv.Itoa(summary.ResourceCount)
					indexedAt = summary.IndexedAt.Local().Format(time.DateTime)
				}
				rows = append(rows, []string{strconv.Itoa(i + 1), pack.Name(), pack.Root(), resources, indexedAt})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(out,
				[]string{"#", "Name", "Directory", "Resources", "Indexed"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft}))
			if s.index == nil {
				fmt.Fprintln(out, "Pack catalog disabled (paths.index_path is empty)")
			}
			return nil
		},
	}
}
