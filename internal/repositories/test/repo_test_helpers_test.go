package repositories_test

import (
	"context"
	"io"
	"testing"

	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func newTxManager(t *testing.T, pool *pgxpool.Pool) txmanager.Manager {
	t.Helper()
	mgr, err := txmanager.NewManager(pool, txmanager.Config{}, txmanager.Dependencies{Logger: log.NewStdLogger(io.Discard)})
	require.NoError(t, err)
	return mgr
}

func seedReferences(ctx context.Context, t *testing.T, pool *pgxpool.Pool, table string, ids ...string) {
	t.Helper()
	for _, id := range ids {
		_, err := pool.Exec(ctx, "insert into media."+table+" (id, name) values ($1, $2)", id, "name-"+id)
		require.NoError(t, err)
	}
}

func sampleVideo() *po.Video {
	return po.NewVideo(po.VideoProps{
		Title:       "Integration Video",
		Description: "integration",
		LaunchYear:  2021,
		Duration:    120.5,
		Opened:      true,
		Rating:      po.RatingAge14,
		Categories:  []string{"cat-1"},
		Genres:      []string{"gen-1"},
		CastMembers: []string{"cast-1", "cast-2"},
	})
}
