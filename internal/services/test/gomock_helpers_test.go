package services_test

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/bionicotaku/lingo-services-media/internal/clients"
	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/bionicotaku/lingo-services-media/internal/services"
	"github.com/bionicotaku/lingo-services-media/internal/services/mocks"
	"github.com/bionicotaku/lingo-utils/txmanager"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/golang/mock/gomock"
	"github.com/jackc/pgx/v5"
)

type fakeTxManager struct{}

type fakeSession struct{ ctx context.Context }

func (fakeTxManager) WithinTx(ctx context.Context, _ txmanager.TxOptions, fn func(context.Context, txmanager.Session) error) error {
	return fn(ctx, fakeSession{ctx: ctx})
}

func (fakeTxManager) WithinReadOnlyTx(ctx context.Context, _ txmanager.TxOptions, fn func(context.Context, txmanager.Session) error) error {
	return fn(ctx, fakeSession{ctx: ctx})
}

func (fakeSession) Tx() pgx.Tx { return nil }

func (s fakeSession) Context() context.Context { return s.ctx }

var errBoom = errors.New("boom")

// serviceDeps 汇总 VideoService 的 mock 依赖。
type serviceDeps struct {
	repo        *mocks.MockVideoRepository
	categories  *mocks.MockExistenceGateway
	genres      *mocks.MockExistenceGateway
	castMembers *mocks.MockExistenceGateway
	media       *mocks.MockMediaResourceGateway
	outbox      *mocks.MockOutboxEnqueuer
}

func newServiceDeps(ctrl *gomock.Controller) serviceDeps {
	return serviceDeps{
		repo:        mocks.NewMockVideoRepository(ctrl),
		categories:  mocks.NewMockExistenceGateway(ctrl),
		genres:      mocks.NewMockExistenceGateway(ctrl),
		castMembers: mocks.NewMockExistenceGateway(ctrl),
		media:       mocks.NewMockMediaResourceGateway(ctrl),
		outbox:      mocks.NewMockOutboxEnqueuer(ctrl),
	}
}

func (d serviceDeps) service() *services.VideoService {
	return d.serviceWithMedia(d.media)
}

func (d serviceDeps) serviceWithMedia(media services.MediaResourceGateway) *services.VideoService {
	return services.NewVideoService(
		d.repo,
		services.NewReferenceValidator(d.categories, d.genres, d.castMembers),
		media,
		services.NewEncodeRequestWriter(d.outbox),
		fakeTxManager{},
		log.NewStdLogger(io.Discard),
	)
}

func newRealGateway(storage clients.MediaStorage) *clients.MediaResourceGateway {
	return clients.NewMediaResourceGateway(storage, log.NewStdLogger(io.Discard))
}

func validInput() services.VideoInput {
	return services.VideoInput{
		Title:       "X",
		Description: "desc",
		LaunchYear:  2022,
		Duration:    120,
		Rating:      "L",
	}
}

func resource(content string) *po.Resource {
	r := po.NewResource("", []byte(content), "application/octet-stream", content+".bin")
	return &r
}

// memoryStorage 是 clients.MediaStorage 的内存实现，failOn 按路径后缀注入写入失败。
type memoryStorage struct {
	mu      sync.Mutex
	objects map[string]po.Resource
	failOn  map[string]error
	deleted [][]string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string]po.Resource{}, failOn: map[string]error{}}
}

func (m *memoryStorage) Store(_ context.Context, path string, res po.Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for suffix, err := range m.failOn {
		if strings.HasSuffix(path, suffix) {
			return err
		}
	}
	m.objects[path] = res
	return nil
}

func (m *memoryStorage) Get(_ context.Context, path string) (*po.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res, ok := m.objects[path]
	if !ok {
		return nil, nil
	}
	return &res, nil
}

func (m *memoryStorage) List(_ context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []string{}
	for p := range m.objects {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memoryStorage) DeleteAll(_ context.Context, paths []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, append([]string(nil), paths...))
	for _, p := range paths {
		delete(m.objects, p)
	}
	return nil
}
