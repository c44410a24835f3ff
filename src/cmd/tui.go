package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/apimgr/homunculus/src/display"
	"github.com/apimgr/homunculus/src/i18n"
	"github.com/apimgr/homunculus/src/tui"
)

// errNotTerminal is returned when the drawer is started without a TTY
var errNotTerminal = errors.New("the theme drawer needs an interactive terminal")

var isInteractive = func() bool {
	return display.Detect().GetMode() != display.ModeHeadless
}

func (a *app) tuiCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "tui",
		Aliases: []string{"drawer"},
		Short:   "Open the interactive theme drawer",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isInteractive() {
				return errNotTerminal
			}

			ctx := cliContext(cmd)
			rt, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			return tui.Run(ctx, rt.provider, i18n.GetTranslations(a.cfg.I18n.DefaultLanguage))
		},
	}
}
