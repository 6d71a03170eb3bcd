package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vietddude/readflow/internal/control"
	"github.com/vietddude/readflow/internal/reading/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect or clear the local reading history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recently viewed posts, most recent first",
	Run: func(cmd *cobra.Command, args []string) {
		withHistory(func(ctx context.Context, h *history.Store) {
			entries := h.Entries()
			if len(entries) == 0 {
				fmt.Println("No viewed posts recorded.")
				return
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
			_, _ = fmt.Fprintln(w, "CONTENT ID\tVIEWED AT")
			for _, e := range entries {
				_, _ = fmt.Fprintf(w, "%s\t%s\n", e.ContentID, e.ViewedAt.Format("2006-01-02 15:04:05"))
			}
			_ = w.Flush()
		})
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the view history and bookmark set",
	Run: func(cmd *cobra.Command, args []string) {
		withHistory(func(ctx context.Context, h *history.Store) {
			h.ClearAll(ctx)
			fmt.Println("Reading history cleared.")
		})
	},
}

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "Manage bookmarked posts",
}

var bookmarksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarked post ids",
	Run: func(cmd *cobra.Command, args []string) {
		withHistory(func(ctx context.Context, h *history.Store) {
			ids := h.Bookmarks()
			if len(ids) == 0 {
				fmt.Println("No bookmarks.")
				return
			}
			for _, id := range ids {
				fmt.Println(id)
			}
		})
	},
}

var bookmarksAddCmd = &cobra.Command{
	Use:   "add [content_id]",
	Short: "Bookmark a post",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withHistory(func(ctx context.Context, h *history.Store) {
			h.AddBookmark(ctx, args[0])
		})
	},
}

var bookmarksRemoveCmd = &cobra.Command{
	Use:   "remove [content_id]",
	Short: "Remove a bookmark",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withHistory(func(ctx context.Context, h *history.Store) {
			h.RemoveBookmark(ctx, args[0])
		})
	},
}

func init() {
	historyCmd.AddCommand(historyListCmd, historyClearCmd)
	bookmarksCmd.AddCommand(bookmarksListCmd, bookmarksAddCmd, bookmarksRemoveCmd)
	rootCmd.AddCommand(historyCmd, bookmarksCmd)
}

func withHistory(fn func(ctx context.Context, h *history.Store)) {
	cfg := loadConfig()

	app, err := control.NewReader(cfg)
	if err != nil {
		slog.Error("Failed to initialize Reader", "error", err)
		os.Exit(1)
	}
	ctx := context.Background()
	defer func() {
		_ = app.Stop(ctx)
	}()

	fn(ctx, app.History())
}
