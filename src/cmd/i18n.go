package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apimgr/homunculus/src/i18n"
)

func (a *app) i18nCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "i18n <lang> [key]",
		Short: "Print UI translations for a language",
		Long: `Print the translation table for a language, or a single key.
"en" selects English; any other language selects Chinese.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr := i18n.GetTranslations(args[0])
			out := cmd.OutOrStdout()

			if len(args) == 2 {
				key := args[1]
				if v, ok := tr[key]; ok {
					_, err := fmt.Fprintln(out, v)
					return err
				}
				items := tr.List(key)
				if len(items) == 0 {
					return fmt.Errorf("no translation for %q", key)
				}
				_, err := fmt.Fprintln(out, strings.Join(items, "\n"))
				return err
			}

			switch format {
			case formatJSON:
				return writeJSON(out, tr)
			case formatText:
				for _, k := range tr.Keys() {
					fmt.Fprintf(out, "%s = %s\n", k, tr[k])
				}
				return nil
			default:
				return fmt.Errorf("unsupported format %q (supported: text, json)", format)
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatText, "output format: text, json")
	return cmd
}
