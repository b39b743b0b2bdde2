package clients

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/bionicotaku/lingo-services-media/internal/models/po"
	"github.com/go-kratos/kratos/v2/log"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const (
	metadataChecksum = "checksum"
	metadataName     = "name"

	defaultOperationTimeout = 2 * time.Minute
)

// GCSConfig 描述对象存储的连接参数。
type GCSConfig struct {
	Bucket           string
	Endpoint         string // 非空时指向本地模拟器，且不做认证
	CredentialsFile  string
	CredentialsJSON  string
	OperationTimeout time.Duration
}

// MediaStorage 是按路径存取原始资源的存储抽象。
type MediaStorage interface {
	Store(ctx context.Context, path string, resource po.Resource) error
	Get(ctx context.Context, path string) (*po.Resource, error)
	List(ctx context.Context, prefix string) ([]string, error)
	DeleteAll(ctx context.Context, paths []string) error
}

// GCSStorage 基于 Cloud Storage 实现 MediaStorage。
type GCSStorage struct {
	client  *storage.Client
	bucket  string
	timeout time.Duration
	log     *log.Helper
}

// NewGCSStorage 创建 Cloud Storage 客户端，返回的 cleanup 负责关闭连接。
func NewGCSStorage(ctx context.Context, cfg GCSConfig, logger log.Logger) (*GCSStorage, func(), error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, nil, fmt.Errorf("gcs storage: bucket is required")
	}
	client, err := storage.NewClient(ctx, clientOptions(cfg)...)
	if err != nil {
		return nil, nil, fmt.Errorf("gcs storage: create client: %w", err)
	}
	helper := log.NewHelper(logger)
	cleanup := func() {
		if err := client.Close(); err != nil {
			helper.Warnf("close gcs client failed: err=%v", err)
		}
	}
	return newGCSStorage(client, cfg, helper), cleanup, nil
}

func newGCSStorage(client *storage.Client, cfg GCSConfig, helper *log.Helper) *GCSStorage {
	timeout := cfg.OperationTimeout
	if timeout <= 0 {
		timeout = defaultOperationTimeout
	}
	return &GCSStorage{client: client, bucket: cfg.Bucket, timeout: timeout, log: helper}
}

func clientOptions(cfg GCSConfig) []option.ClientOption {
	opts := []option.ClientOption{}
	if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
		return append(opts, option.WithEndpoint(endpoint), option.WithoutAuthentication())
	}
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	return append(opts, option.WithScopes(storage.ScopeReadWrite))
}

// CheckBucket 确认 bucket 存在且凭据可访问。
func (s *GCSStorage) CheckBucket(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if _, err := s.client.Bucket(s.bucket).Attrs(ctx); err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Store 写入对象，同一路径重复写入即覆盖。
func (s *GCSStorage) Store(ctx context.Context, path string, resource po.Resource) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(path).NewWriter(ctx)
	w.ContentType = resource.ContentType
	w.Metadata = map[string]string{
		metadataChecksum: resource.Checksum,
		metadataName:     resource.Name,
	}
	if _, err := io.Copy(w, bytes.NewReader(resource.Content)); err != nil {
		_ = w.Close()
		return fmt.Errorf("write object %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close object writer %s: %w", path, err)
	}
	s.log.WithContext(ctx).Debugf("object stored: bucket=%s path=%s size=%d", s.bucket, path, len(resource.Content))
	return nil
}

// Get 读取对象；不存在时返回 (nil, nil)。
func (s *GCSStorage) Get(ctx context.Context, path string) (*po.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	r, err := s.client.Bucket(s.bucket).Object(path).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open object %s: %w", path, err)
	}
	defer r.Close()

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", path, err)
	}

	attrs, err := s.client.Bucket(s.bucket).Object(path).Attrs(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("read object attrs %s: %w", path, err)
	}
	var checksum, name string
	if attrs != nil {
		checksum = attrs.Metadata[metadataChecksum]
		name = attrs.Metadata[metadataName]
	}
	resource := po.NewResource(checksum, content, r.Attrs.ContentType, name)
	return &resource, nil
}

// List 返回 prefix 下全部对象路径。
func (s *GCSStorage) List(ctx context.Context, prefix string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	out := []string{}
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list objects %s: %w", prefix, err)
		}
		out = append(out, attrs.Name)
	}
	return out, nil
}

// DeleteAll 删除全部路径，已不存在的对象视为成功。
func (s *GCSStorage) DeleteAll(ctx context.Context, paths []string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var errs []error
	for _, path := range paths {
		if err := s.client.Bucket(s.bucket).Object(path).Delete(ctx); err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
			errs = append(errs, fmt.Errorf("delete object %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}
