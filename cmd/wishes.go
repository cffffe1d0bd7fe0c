package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"engagementAPI/internal/wish"
	"engagementAPI/internal/wishsync"
)

var wishesCmd = &cobra.Command{
	Use:   "wishes",
	Short: "List, add or delete guestbook wishes through the API",
	Long: `Talks to the guestbook API the same way the page does. When the API
cannot be reached, listing falls back to the local cache and new wishes are
kept in it.`,
}

var wishesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every wish, newest first",
	Args:  cobra.NoArgs,
	RunE:  runWishesList,
}

var wishesAddCmd = &cobra.Command{
	Use:   "add <name> <message>",
	Short: "Leave a wish",
	Args:  cobra.ExactArgs(2),
	RunE:  runWishesAdd,
}

var wishesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a wish (needs ADMIN_PASSWORD)",
	Args:  cobra.ExactArgs(1),
	RunE:  runWishesDelete,
}

func init() {
	wishesListCmd.Flags().Bool("json", false, "output wishes as JSON")
	wishesDeleteCmd.Flags().String("password", "", "admin password (defaults to ADMIN_PASSWORD)")

	wishesCmd.AddCommand(wishesListCmd, wishesAddCmd, wishesDeleteCmd)
	rootCmd.AddCommand(wishesCmd)
}

func runWishesList(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	cache, err := openCache()
	if err != nil {
		return err
	}
	defer cache.Close()

	wishes, source := wishsync.New(cfg.APIURL, cache).Load(ctx)

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(wishes)
	}

	if source != wishsync.FromServer {
		fmt.Fprintf(cmd.ErrOrStderr(), "(showing %s copy)\n", source)
	}
	printWishes(cmd.OutOrStdout(), wishes)
	return nil
}

func runWishesAdd(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	cache, err := openCache()
	if err != nil {
		return err
	}
	defer cache.Close()

	w, accepted, err := wishsync.New(cfg.APIURL, cache).Submit(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	if accepted {
		fmt.Fprintf(cmd.OutOrStdout(), "Wish %s added.\n", w.ID)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "API unavailable; wish %s saved locally.\n", w.ID)
	}
	return nil
}

func runWishesDelete(cmd *cobra.Command, args []string) error {
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = cfg.AdminPassword
	}
	if password == "" {
		return fmt.Errorf("an admin password is required (--password or ADMIN_PASSWORD)")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	cache, err := openCache()
	if err != nil {
		return err
	}
	defer cache.Close()

	if err := wishsync.New(cfg.APIURL, cache).Delete(ctx, args[0], password); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wish %s deleted.\n", args[0])
	return nil
}

func printWishes(out io.Writer, wishes []*wish.Wish) {
	for i, w := range wishes {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "[%s] %s · %s\n", w.ID, w.Name, w.Date.Local().Format("2 Jan 2006 15:04"))
		for _, line := range strings.Split(w.Message, "\n") {
			fmt.Fprintf(out, "    %s\n", line)
		}
	}
}
