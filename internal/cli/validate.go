package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/giftbox/internal/gift"
)

// errInvalidDraft is returned after the issues have been printed.
var errInvalidDraft = errors.New("gift draft is invalid")

func newValidateCmd() *cobra.Command {
	var screensOnly bool
	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a gift draft (JSON or YAML)",
		Args:  cobra.ExactArgs(1),
		// Validation needs no config or store.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readDraft(args[0])
			if err != nil {
				return err
			}
			cfg, err := gift.Parse(data)
			if err == nil {
				if screensOnly {
					err = gift.ValidateScreens(cfg)
				} else {
					err = gift.Validate(cfg)
				}
			}
			issues := gift.IssuesOf(err)
			if err != nil && issues == nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(issues) == 0 {
				fmt.Fprintf(out, "ok: %d screen(s)\n", len(cfg.Screens))
				return nil
			}
			for _, msg := range gift.FormatIssues(cfg, issues) {
				fmt.Fprintln(out, msg)
			}
			return errInvalidDraft
		},
	}
	cmd.Flags().BoolVar(&screensOnly, "screens-only", false, "Check screens with a placeholder note")
	return cmd
}

// readDraft loads path as JSON. YAML files (.yaml/.yml) are converted first.
func readDraft(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		return json.Marshal(v)
	}
	return data, nil
}
