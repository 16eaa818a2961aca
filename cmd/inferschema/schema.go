package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/inferschema/openapi"
)

func newSchemaCmd(a *app) *cobra.Command {
	var (
		output   string
		deep     bool
		validate bool
	)
	cmd := &cobra.Command{
		Use:   "schema <sample>",
		Short: "Print the schema derived from a sample file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.sample(args[0], deep)
			if err != nil {
				return err
			}
			sc, err := s.ToSchema()
			if err != nil {
				a.logger.Error("schema derivation failed", "sample", args[0], "error", err)
				return err
			}
			a.logger.Debug("schema derived", "sample", args[0], "kind", s.Kind())
			if validate {
				if err := openapi.Validate(cmd.Context(), s); err != nil {
					return err
				}
				if err := openapi.VisitExample(s); err != nil {
					return err
				}
				a.logger.Info("schema passed OpenAPI validation", "sample", args[0])
			}
			var out []byte
			switch output {
			case "json":
				out, err = sc.JSONIndent()
			case "yaml":
				out, err = sc.YAML()
			default:
				return fmt.Errorf("unknown output %q (want json or yaml)", output)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format (json, yaml)")
	cmd.Flags().BoolVar(&deep, "deep", false, "describe every nested value instead of using placeholders")
	cmd.Flags().BoolVar(&validate, "openapi", false, "validate the schema and its example with kin-openapi")
	return cmd
}
