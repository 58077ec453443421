package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get SLUG",
		Short: "Print a stored gift as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, st, err := openService(f.cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			cfg, err := svc.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get %s: %w", args[0], err)
			}
			b, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
}

func newCountCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of stored gifts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, st, err := openService(f.cfg)
			if err != nil {
				return err
			}
			defer st.Close()
			fmt.Fprintln(cmd.OutOrStdout(), svc.Count(cmd.Context()))
			return nil
		},
	}
}
