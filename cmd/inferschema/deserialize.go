package main

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/inferschema/source"
)

func newDeserializeCmd(a *app) *cobra.Command {
	var (
		samplePath string
		deep       bool
	)
	cmd := &cobra.Command{
		Use:   "deserialize --sample <file> [input]",
		Short: "Convert JSON input into the sample's native types",
		Long: `Reads a JSON input document (stdin when no file is given), deserializes it
against the sample and prints the result re-encoded as JSON.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.sample(samplePath, deep)
			if err != nil {
				return err
			}
			r := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			raw, err := source.JSON(r)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			v, err := s.Deserialize(raw)
			if err != nil {
				a.logger.Error("deserialize failed", "sample", samplePath, "error", err)
				return err
			}
			out, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}
	cmd.Flags().StringVar(&samplePath, "sample", "", "sample file (JSON or YAML)")
	cmd.Flags().BoolVar(&deep, "deep", false, "deserialize every nested value against its sample")
	_ = cmd.MarkFlagRequired("sample")
	return cmd
}
