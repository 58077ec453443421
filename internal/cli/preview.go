package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/giftbox/internal/play"
)

// newPreviewCmd walks a stored gift the way a recipient sees it, without
// playing the screens.
func newPreviewCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "preview SLUG",
		Short: "Print the recipient's walk through a stored gift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, st, err := openService(f.cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			cfg, err := svc.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("preview %s: %w", args[0], err)
			}
			p := play.NewPlayback(cfg, play.Env{})
			defer p.Close()

			out := cmd.OutOrStdout()
			accent, bg := p.Colors()
			fmt.Fprintf(out, "landing  accent=%s background=%s\n", accent, bg)
			for {
				if err := p.Advance(); err != nil {
					return err
				}
				stage, i, s := p.Position()
				if stage == play.StageNote {
					break
				}
				label := cfg.Screens[i].Kind().Label()
				if s.Empty() {
					label += " (empty, skippable)"
				}
				fmt.Fprintf(out, "screen %d %s\n", i+1, label)
			}
			n := p.Note()
			fmt.Fprintf(out, "note     %q from %q\n", n.Title, n.From)
			return nil
		},
	}
}
