package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/apimgr/homunculus/src/display"
	"github.com/apimgr/homunculus/src/theme"
)

// Output formats
const (
	formatTable = "table"
	formatText  = "text"
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatCSS   = "css"
)

// swatchEnabled reports whether color swatches should be drawn
var swatchEnabled = func() bool {
	return display.Detect().HasColor
}

type schemeRow struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Light       bool   `json:"light" yaml:"light"`
	Active      bool   `json:"active" yaml:"active"`
}

func (a *app) schemesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "schemes",
		Aliases: []string{"scheme"},
		Short:   "Browse the color scheme catalog",
	}
	cmd.AddCommand(a.schemesListCommand(), a.schemesShowCommand(), a.schemesExportCommand())
	return cmd
}

func (a *app) schemesListCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every color scheme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := a.open(cliContext(cmd))
			if err != nil {
				return err
			}
			defer rt.Close()

			active := rt.provider.Scheme().ID
			var rows []schemeRow
			for _, s := range theme.ListSchemes() {
				rows = append(rows, schemeRow{
					ID:          s.ID,
					Name:        s.Name,
					Description: s.Description,
					Light:       theme.IsLight(s.ID),
					Active:      s.ID == active,
				})
			}

			out := cmd.OutOrStdout()
			switch format {
			case formatJSON:
				return writeJSON(out, rows)
			case formatTable:
				return writeSchemeTable(out, rows)
			default:
				return fmt.Errorf("unsupported format %q (supported: table, json)", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "output format: table, json")
	return cmd
}

func writeSchemeTable(w io.Writer, rows []schemeRow) error {
	swatch := swatchEnabled()
	headers := []string{"", "ID", "NAME", "MODE"}
	if swatch {
		headers = append(headers, "PALETTE")
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
	for _, r := range rows {
		marker := ""
		if r.Active {
			marker = "*"
		}
		mode := "dark"
		if r.Light {
			mode = "light"
		}
		row := []string{marker, r.ID, r.Name, mode}
		if swatch {
			row = append(row, theme.Swatch(theme.GetSchemeByID(r.ID)))
		}
		t.Row(row...)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func (a *app) schemesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show the color slots of a scheme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			s := theme.GetSchemeByID(id)
			if s.ID != id {
				fmt.Fprintf(cmd.ErrOrStderr(), "unknown scheme %q, showing %s\n", id, s.ID)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n%s\n", s.Name, s.ID, s.Description)
			if swatchEnabled() {
				fmt.Fprintln(out, theme.Swatch(s))
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("SLOT", "HEX", "RGB", "USAGE")
			for _, slot := range s.Slots {
				t.Row(slot.Name, slot.Hex, slot.RGB, slot.Usage)
			}
			_, err := fmt.Fprintln(out, t.Render())
			return err
		},
	}
}

func (a *app) schemesExportCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export [id...]",
		Short: "Export schemes as JSON, YAML or CSS",
		RunE: func(cmd *cobra.Command, args []string) error {
			schemes := theme.ListSchemes()
			if len(args) > 0 {
				schemes = schemes[:0:0]
				for _, id := range args {
					if !theme.HasScheme(id) {
						return fmt.Errorf("unknown scheme %q", id)
					}
					schemes = append(schemes, theme.GetSchemeByID(id))
				}
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case formatJSON:
				return writeJSON(out, schemes)
			case formatYAML:
				return yaml.NewEncoder(out).Encode(schemes)
			case formatCSS:
				if len(args) == 0 {
					_, err := io.WriteString(out, theme.GenerateCatalogCSS(theme.DefaultSettings()))
					return err
				}
				for _, s := range schemes {
					sel := fmt.Sprintf("[%s=%q]", theme.AttrTheme, s.ID)
					if _, err := io.WriteString(out, theme.Resolve(s, theme.DefaultSettings()).GenerateCSSBlock(sel)); err != nil {
						return err
					}
				}
				return nil
			default:
				return fmt.Errorf("unsupported format %q (supported: json, yaml, css)", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatJSON, "output format: json, yaml, css")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
