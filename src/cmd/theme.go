package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apimgr/homunculus/src/provider"
	"github.com/apimgr/homunculus/src/theme"
)

func (a *app) themeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Inspect and change the stored theme preferences",
	}
	cmd.AddCommand(
		a.themeGetCommand(),
		a.themeSetCommand(),
		a.themeApplyCommand(),
		a.themeResetCommand(),
		a.themeCSSCommand(),
	)
	return cmd
}

func (a *app) themeGetCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the current scheme and settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.open(cliContext(cmd))
			if err != nil {
				return err
			}
			defer rt.Close()

			snap := rt.provider.Snapshot()
			out := cmd.OutOrStdout()
			switch format {
			case formatJSON:
				return writeJSON(out, snap)
			case formatText:
				return writeSnapshot(out, snap)
			default:
				return fmt.Errorf("unsupported format %q (supported: text, json)", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json")
	return cmd
}

func writeSnapshot(w io.Writer, snap provider.Snapshot) error {
	s := snap.Settings
	_, err := fmt.Fprintf(w, `scheme:        %s (%s)
font family:   %s
font size:     %dpx
font weight:   %d
border radius: %dpx
animations:    %t
contrast:      %s
density:       %s
`, snap.Scheme.Name, snap.Scheme.ID, s.FontFamily, s.FontSize, s.FontWeight,
		s.BorderRadius, s.Animations, s.Contrast, s.Density)
	return err
}

func (a *app) themeSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <scheme>",
		Short: "Select a color scheme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			if id == "" {
				return fmt.Errorf("scheme id is required")
			}

			ctx := cliContext(cmd)
			rt, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			snap := rt.provider.SetColorScheme(ctx, id)
			if snap.Scheme.ID != id {
				fmt.Fprintf(cmd.ErrOrStderr(), "unknown scheme %q, %s will be used\n", id, snap.Scheme.ID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "scheme set to %s\n", snap.Scheme.ID)
			return nil
		},
	}
}

func (a *app) themeApplyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Change theme settings; unspecified settings keep their value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cliContext(cmd)
			rt, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			s, err := settingsFromFlags(cmd, rt.provider.Settings())
			if err != nil {
				return err
			}
			if err := s.Validate(); err != nil {
				return err
			}

			return writeSnapshot(cmd.OutOrStdout(), rt.provider.ApplySettings(ctx, s))
		},
	}

	def := theme.DefaultSettings()
	f := cmd.Flags()
	f.String("font-family", def.FontFamily, "font family: "+strings.Join(fontNames(), ", "))
	f.Int("font-size", def.FontSize, fmt.Sprintf("base font size in px (%d-%d)", theme.MinFontSize, theme.MaxFontSize))
	f.Int("font-weight", def.FontWeight, fmt.Sprintf("font weight (%d-%d, step %d)", theme.MinFontWeight, theme.MaxFontWeight, theme.FontWeightStep))
	f.Int("border-radius", def.BorderRadius, fmt.Sprintf("border radius in px (%d-%d)", theme.MinBorderRadius, theme.MaxBorderRadius))
	f.Bool("animations", def.Animations, "enable transitions")
	f.String("contrast", def.Contrast, "contrast: normal, high")
	f.String("density", def.Density, "density: "+strings.Join(theme.Densities, ", "))
	return cmd
}

func fontNames() []string {
	names := make([]string, 0, len(theme.FontFamilies))
	for _, f := range theme.FontFamilies {
		names = append(names, f.Value)
	}
	return names
}

// settingsFromFlags overlays the flags given on the command line onto cur
func settingsFromFlags(cmd *cobra.Command, cur theme.Settings) (theme.Settings, error) {
	f := cmd.Flags()
	var err error
	if f.Changed("font-family") {
		cur.FontFamily, err = f.GetString("font-family")
	}
	if err == nil && f.Changed("font-size") {
		cur.FontSize, err = f.GetInt("font-size")
	}
	if err == nil && f.Changed("font-weight") {
		cur.FontWeight, err = f.GetInt("font-weight")
	}
	if err == nil && f.Changed("border-radius") {
		cur.BorderRadius, err = f.GetInt("border-radius")
	}
	if err == nil && f.Changed("animations") {
		cur.Animations, err = f.GetBool("animations")
	}
	if err == nil && f.Changed("contrast") {
		cur.Contrast, err = f.GetString("contrast")
	}
	if err == nil && f.Changed("density") {
		cur.Density, err = f.GetString("density")
	}
	return cur, err
}

func (a *app) themeResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings; the scheme is kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cliContext(cmd)
			rt, err := a.open(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			return writeSnapshot(cmd.OutOrStdout(), rt.provider.ResetSettings(ctx))
		},
	}
}

func (a *app) themeCSSCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "css",
		Short: "Print the resolved theme as CSS custom properties",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.open(cliContext(cmd))
			if err != nil {
				return err
			}
			defer rt.Close()

			doc := theme.NewDocument()
			rt.provider.Resolved().ApplyTo(doc)
			_, err = io.WriteString(cmd.OutOrStdout(), doc.CSS())
			return err
		},
	}
}
