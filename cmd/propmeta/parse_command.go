package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"propmeta/internal/resource"
)

func newParseCommand(ctx *commandContext) *cobra.Command {
	var as string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse one metadata file against the configured packs",
		Long: "Parse reads a single properties file and prints the documents it produces,\n" +
			"keyed by target texture. The file's location is inferred from its position\n" +
			"under a configured pack's assets directory, or given with --as.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.close()

			file := args[0]
			loc, err := s.locate(file, as)
			if err != nil {
				return err
			}

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open metadata file: %w", err)
			}
			defer f.Close()

			views, err := s.parser.Parse(cmd.Context(), loc, f, s.stack)
			if err != nil {
				return err
			}
			enc, err := ctx.encoder()
			if err != nil {
				return err
			}
			return writeDocuments(cmd.OutOrStdout(), enc, views)
		},
	}

	cmd.Flags().StringVar(&as, "as", "", "Location of the file (namespace:path) when it is not inside a configured pack")
	return cmd
}

// locate returns the location for file: the --as value when given, otherwise
// the position of file inside the first configured pack that contains it.
func (s *session) locate(file, as string) (resource.Location, error) {
	if as = strings.TrimSpace(as); as != "" {
		if !strings.Contains(as, resource.Separator) {
			as = s.cfg.Resolve.DefaultNamespace + resource.Separator + as
		}
		loc, err := resource.Parse(as)
		if err != nil {
			return resource.Location{}, fmt.Errorf("--as: %w", err)
		}
		return loc, nil
	}
	for _, pack := range s.dirs {
		if loc, ok := pack.LocationOf(file); ok {
			return loc, nil
		}
	}
	return resource.Location{}, fmt.Errorf("%s is not under assets/ of a configured pack; pass --as namespace:path", file)
}
