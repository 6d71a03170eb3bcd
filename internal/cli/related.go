package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/vietddude/readflow/internal/control"
	"github.com/vietddude/readflow/internal/core/domain"
	"github.com/vietddude/readflow/internal/faults"
)

var relatedLimit int

var relatedCmd = &cobra.Command{
	Use:   "related",
	Short: "Fetch recommendations biased by recent views",
	Run:   runRelated,
}

func init() {
	relatedCmd.Flags().IntVar(&relatedLimit, "limit", 5, "maximum number of recommendations")
	rootCmd.AddCommand(relatedCmd)
}

func runRelated(cmd *cobra.Command, args []string) {
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

	posts, err := app.Related(ctx, relatedLimit)
	if err != nil {
		lang := domain.Lang(cfg.Logging.Lang)
		fmt.Println(faults.Present(err, faults.KindRecommendation, lang))
		os.Exit(1)
	}

	if len(posts) == 0 {
		fmt.Println("No recommendations available.")
		return
	}
	for _, p := range posts {
		fmt.Printf("%s  %s\n", p.ID, p.Title)
	}
}
