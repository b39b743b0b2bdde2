package clients_test

import (
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/bionicotaku/lingo-services-media/internal/clients"
	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// 依赖 fake-gcs-server 等模拟器：GCS_EMULATOR_ENDPOINT=http://localhost:4443/storage/v1/
func TestGCSStorageIntegration(t *testing.T) {
	endpoint := os.Getenv("GCS_EMULATOR_ENDPOINT")
	bucket := os.Getenv("GCS_EMULATOR_BUCKET")
	if endpoint == "" || bucket == "" {
		t.Skip("skip gcs integration test: GCS_EMULATOR_ENDPOINT/GCS_EMULATOR_BUCKET not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	storage, cleanup, err := clients.NewGCSStorage(ctx, clients.GCSConfig{
		Bucket:           bucket,
		Endpoint:         endpoint,
		OperationTimeout: 10 * time.Second,
	}, log.NewStdLogger(io.Discard))
	require.NoError(t, err)
	t.Cleanup(cleanup)
	require.NoError(t, storage.CheckBucket(ctx))

	videoID := uuid.New()
	path := clients.PathOf(videoID, po.MediaTypeBanner)
	resource := po.NewResource("", []byte("banner-bytes"), "image/png", "banner.png")

	require.NoError(t, storage.Store(ctx, path, resource))

	got, err := storage.Get(ctx, path)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, resource.Content, got.Content)
	require.Equal(t, resource.Checksum, got.Checksum)
	require.Equal(t, "banner.png", got.Name)

	paths, err := storage.List(ctx, clients.FolderOf(videoID)+"/")
	require.NoError(t, err)
	require.Equal(t, []string{path}, paths)

	require.NoError(t, storage.DeleteAll(ctx, append(paths, path+"-missing")))

	missing, err := storage.Get(ctx, path)
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestNewGCSStorage_RequiresBucket(t *testing.T) {
	_, _, err := clients.NewGCSStorage(context.Background(), clients.GCSConfig{}, log.NewStdLogger(io.Discard))
	require.Error(t, err)
}
