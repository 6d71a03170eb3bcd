package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/vietddude/readflow/internal/control"
	"github.com/vietddude/readflow/internal/core/domain"
	"github.com/vietddude/readflow/internal/faults"
	"github.com/vietddude/readflow/internal/reading/paging"
)

var (
	postsPage  int
	postsMode  string
	postsTrack bool
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Fetch a page of blog posts through the pipeline",
	Run:   runPosts,
}

func init() {
	postsCmd.Flags().IntVar(&postsPage, "page", 1, "page number (traditional mode)")
	postsCmd.Flags().StringVar(&postsMode, "mode", "traditional", "pagination mode: traditional, infinite_scroll, load_more")
	postsCmd.Flags().BoolVar(&postsTrack, "track", false, "record fetched posts in the view history")
	rootCmd.AddCommand(postsCmd)
}

func runPosts(cmd *cobra.Command, args []string) {
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

	mode := paging.Mode(postsMode)
	ctrl := app.NewController(mode)

	switch mode {
	case paging.ModeTraditional:
		if err = ctrl.LoadFirst(ctx); err == nil && postsPage > 1 {
			err = ctrl.GoToPage(ctx, postsPage)
		}
	case paging.ModeInfiniteScroll:
		err = ctrl.LoadFirst(ctx)
		for i := 1; i < postsPage && err == nil && ctrl.HasMore(); i++ {
			err = ctrl.SentinelVisible(ctx)
		}
	case paging.ModeLoadMore:
		err = ctrl.LoadFirst(ctx)
		for i := 1; i < postsPage && err == nil && ctrl.HasMore(); i++ {
			err = ctrl.LoadMore(ctx)
		}
	default:
		fmt.Printf("Unknown mode: %s\n", postsMode)
		os.Exit(1)
	}

	if err != nil {
		lang := domain.Lang(cfg.Logging.Lang)
		fmt.Println(faults.Present(err, faults.KindPostList, lang))
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.Debug)
	_, _ = fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tPUBLISHED")
	for _, p := range ctrl.Results() {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Category, p.PublishedAt.Format("2006-01-02"))
		if postsTrack {
			app.History().TrackView(ctx, p.ID)
		}
	}
	_ = w.Flush()

	start, end, total := ctrl.Progress()
	fmt.Printf("\nShowing %d-%d of %d\n", start, end, total)
}
