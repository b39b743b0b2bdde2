package main

import (
	"testing"

	configloader "github.com/bionicotaku/lingo-services-media/internal/infrastructure/configloader"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/require"
)

func TestNewApp_WithoutWorkers(t *testing.T) {
	meta := configloader.ServiceInfo{
		Name:        "media",
		Version:     "test",
		Environment: "test",
		InstanceID:  "media-test-1",
	}

	app := newApp(nil, log.NewStdLogger(&testWriter{t: t}), meta, nil, nil, nil, nil)

	require.NotNil(t, app)
	require.Equal(t, "media-test-1", app.ID())
	require.Equal(t, "media", app.Name())
	require.Equal(t, "test", app.Version())
	require.Equal(t, "test", app.Metadata()["environment"])
}

type testWriter struct{ t *testing.T }

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}
