package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/stephenafamo/bob"

	"github.com/openf1db/openf1-ingest-go/log"
	"github.com/openf1db/openf1-ingest-go/pkg/config"
	"github.com/openf1db/openf1-ingest-go/pkg/db/postgres"
	"github.com/openf1db/openf1-ingest-go/pkg/repository/stats"
	"github.com/openf1db/openf1-ingest-go/pkg/utils"
)

func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "prints the stored document counts per collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showStats()
		},
	}
	cmd.Flags().IntVar(&config.SessionKey,
		"session-key",
		0,
		"restrict the counts to this session")
	return cmd
}

func showStats() error {
	// wait for database
	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = 60 * time.Second
	}
	ctx := context.Background()
	postgresAddr := utils.ExtractFromDBURL(config.DB)
	if err = utils.WaitForTCP(postgresAddr, timeout); err != nil {
		log.Fatal("database  not ready", log.ErrorField(err))
	}
	pool := postgres.InitWithUrl(config.DB)
	defer pool.Close()
	db := bob.NewDB(stdlib.OpenDBFromPool(pool))
	repo := stats.NewRepository(db)
	counts, err := repo.CollectionCounts(ctx, config.SessionKey)
	if err != nil {
		return err
	}
	if config.SessionKey > 0 {
		fmt.Printf("documents for session %d\n", config.SessionKey)
	}
	for _, c := range counts {
		fmt.Printf("%-14s %10d\n", c.Collection, c.Documents)
	}
	total := lo.SumBy(counts,
		func(c stats.CollectionCount) int64 { return c.Documents })
	fmt.Printf("%-14s %10d\n", "total", total)
	return nil
}
