package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"propmeta/internal/resource"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "inspect <texture>",
		Short: "Show the combined document for one texture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			value := strings.TrimSpace(args[0])
			if !strings.Contains(value, resource.Separator) {
				value = s.cfg.Resolve.DefaultNamespace + resource.Separator + value
			}
			texture, err := resource.Parse(value)
			if err != nil {
				return fmt.Errorf("texture: %w", err)
			}

			doc, _, err := s.runner.Texture(cmd.Context(), texture)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if raw {
				enc, err := ctx.encoder()
				if err != nil {
					return err
				}
				data, err := enc.Encode(doc)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}
			fmt.Fprintln(out, texture.String())
			fmt.Fprintln(out, renderTable(out, []string{"Key", "Type", "Value"}, flattenRows(doc), nil))
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print the document in the output format instead of a table")
	return cmd
}
