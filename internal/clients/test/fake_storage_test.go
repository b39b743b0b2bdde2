package clients_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/bionicotaku/lingo-services-media/internal/models/po"
)

// memoryStorage 是 MediaStorage 的内存实现，记录 DeleteAll 调用。
type memoryStorage struct {
	mu       sync.Mutex
	objects  map[string]po.Resource
	deleted  [][]string
	failOn   map[string]error
	listErr  error
	storeSeq []string
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: map[string]po.Resource{}, failOn: map[string]error{}}
}

func (m *memoryStorage) Store(_ context.Context, path string, resource po.Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failOn[path]; err != nil {
		return err
	}
	m.objects[path] = resource
	m.storeSeq = append(m.storeSeq, path)
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
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []string{}
	for path := range m.objects {
		if strings.HasPrefix(path, prefix) {
			out = append(out, path)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memoryStorage) DeleteAll(_ context.Context, paths []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, append([]string(nil), paths...))
	for _, path := range paths {
		delete(m.objects, path)
	}
	return nil
}

var errBoom = errors.New("boom")
