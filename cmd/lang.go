package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"engagementAPI/internal/i18n"
	"engagementAPI/web"
)

var langCmd = &cobra.Command{
	Use:       "lang [show|toggle]",
	Short:     "Show or switch the saved page language",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"show", "toggle"},
	RunE:      runLang,
}

func init() {
	rootCmd.AddCommand(langCmd)
}

func runLang(cmd *cobra.Command, args []string) error {
	cache, err := openCache()
	if err != nil {
		return err
	}
	defer cache.Close()

	pref := i18n.NewPreference(cache)

	var lang i18n.Lang
	if len(args) == 1 && args[0] == "toggle" {
		lang, err = pref.Toggle(cmd.Context())
	} else {
		lang, err = pref.Current(cmd.Context())
	}
	if err != nil {
		return err
	}

	doc := i18n.Render(lang, web.Elements)
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %s\n", doc.Lang, doc.Dir, doc.Text["hero-title"])
	return nil
}
