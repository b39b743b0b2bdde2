package configloader

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Bootstrap 对应 configs/config.yaml 的结构，由 kratos config 扫描填充。
type Bootstrap struct {
	Data          Data          `json:"data"`
	Storage       Storage       `json:"storage"`
	Messaging     Messaging     `json:"messaging"`
	Observability Observability `json:"observability"`
}

// Data 持久化相关配置。
type Data struct {
	Postgres Postgres `json:"postgres"`
}

// Postgres 描述连接池与事务默认值。
type Postgres struct {
	DSN                       string      `json:"dsn" validate:"required"`
	MaxOpenConns              int32       `json:"max_open_conns" validate:"gte=0"`
	MinOpenConns              int32       `json:"min_open_conns" validate:"gte=0"`
	MaxConnLifetime           Duration    `json:"max_conn_lifetime"`
	MaxConnIdleTime           Duration    `json:"max_conn_idle_time"`
	HealthCheckPeriod         Duration    `json:"health_check_period"`
	Schema                    string      `json:"schema" validate:"omitempty,max=63"`
	PreparedStatementsEnabled *bool       `json:"prepared_statements_enabled"`
	PoolMetricsEnabled        bool        `json:"pool_metrics_enabled"`
	Transaction               Transaction `json:"transaction"`
}

// Transaction 事务默认配置。
type Transaction struct {
	DefaultIsolation string   `json:"default_isolation"`
	DefaultTimeout   Duration `json:"default_timeout"`
	LockTimeout      Duration `json:"lock_timeout"`
	MaxRetries       int      `json:"max_retries" validate:"gte=0"`
	MetricsEnabled   bool     `json:"metrics_enabled"`
}

// Storage 对象存储配置。
type Storage struct {
	GCS GCS `json:"gcs"`
}

// GCS Cloud Storage 配置。
type GCS struct {
	Bucket           string   `json:"bucket" validate:"required"`
	Endpoint         string   `json:"endpoint" validate:"omitempty,url"`
	CredentialsFile  string   `json:"credentials_file" validate:"omitempty,file"`
	CredentialsJSON  string   `json:"credentials_json" validate:"omitempty,json"`
	OperationTimeout Duration `json:"operation_timeout"`
}

// Messaging 汇总编码回调订阅、编码任务主题与 Outbox 发布器。
type Messaging struct {
	ProjectID        string          `json:"project_id" validate:"required"`
	EmulatorEndpoint string          `json:"emulator_endpoint"`
	EncoderCallback  PubSub          `json:"encoder_callback"`
	EncoderJobs      PubSub          `json:"encoder_jobs"`
	Outbox           OutboxPublisher `json:"outbox"`
}

// PubSub 单个主题/订阅的配置。
type PubSub struct {
	TopicID             string        `json:"topic_id"`
	SubscriptionID      string        `json:"subscription_id"`
	OrderingKeyEnabled  bool          `json:"ordering_key_enabled"`
	LoggingEnabled      bool          `json:"logging_enabled"`
	MetricsEnabled      bool          `json:"metrics_enabled"`
	PublishTimeout      Duration      `json:"publish_timeout"`
	ExactlyOnceDelivery bool          `json:"exactly_once_delivery"`
	Receive             PubSubReceive `json:"receive"`
}

// PubSubReceive 订阅者拉取参数。
type PubSubReceive struct {
	NumGoroutines          int      `json:"num_goroutines" validate:"gte=0"`
	MaxOutstandingMessages int      `json:"max_outstanding_messages" validate:"gte=0"`
	MaxOutstandingBytes    int      `json:"max_outstanding_bytes" validate:"gte=0"`
	MaxExtension           Duration `json:"max_extension"`
	MaxExtensionPeriod     Duration `json:"max_extension_period"`
}

// OutboxPublisher Outbox 发布器参数。
type OutboxPublisher struct {
	BatchSize      int      `json:"batch_size" validate:"gte=0"`
	TickInterval   Duration `json:"tick_interval"`
	InitialBackoff Duration `json:"initial_backoff"`
	MaxBackoff     Duration `json:"max_backoff"`
	MaxAttempts    int      `json:"max_attempts" validate:"gte=0"`
	PublishTimeout Duration `json:"publish_timeout"`
	Workers        int      `json:"workers" validate:"gte=0"`
	LockTTL        Duration `json:"lock_ttl"`
	LoggingEnabled *bool    `json:"logging_enabled"`
	MetricsEnabled *bool    `json:"metrics_enabled"`
}

// Observability OpenTelemetry 导出配置。
type Observability struct {
	GlobalAttributes map[string]string `json:"global_attributes"`
	Tracing          Tracing           `json:"tracing"`
	Metrics          Metrics           `json:"metrics"`
}

// Tracing 追踪导出参数。
type Tracing struct {
	Enabled            bool              `json:"enabled"`
	Exporter           string            `json:"exporter"`
	Endpoint           string            `json:"endpoint"`
	Headers            map[string]string `json:"headers"`
	Insecure           bool              `json:"insecure"`
	SamplingRatio      float64           `json:"sampling_ratio" validate:"gte=0,lte=1"`
	BatchTimeout       Duration          `json:"batch_timeout"`
	ExportTimeout      Duration          `json:"export_timeout"`
	MaxQueueSize       int               `json:"max_queue_size" validate:"gte=0"`
	MaxExportBatchSize int               `json:"max_export_batch_size" validate:"gte=0"`
	Required           bool              `json:"required"`
	Attributes         map[string]string `json:"attributes"`
}

// Metrics 指标导出参数。
type Metrics struct {
	Enabled             bool              `json:"enabled"`
	Exporter            string            `json:"exporter"`
	Endpoint            string            `json:"endpoint"`
	Headers             map[string]string `json:"headers"`
	Insecure            bool              `json:"insecure"`
	Interval            Duration          `json:"interval"`
	DisableRuntimeStats bool              `json:"disable_runtime_stats"`
	Required            bool              `json:"required"`
	ResourceAttributes  map[string]string `json:"resource_attributes"`
}

// Duration 支持 "5s" 形式的字符串或纳秒整数。
type Duration time.Duration

// UnmarshalJSON 实现 json.Unmarshaler。
func (d *Duration) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*d = 0
	case float64:
		*d = Duration(time.Duration(v))
	case string:
		if strings.TrimSpace(v) == "" {
			*d = 0
			return nil
		}
		parsed, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	default:
		return fmt.Errorf("invalid duration %v", raw)
	}
	return nil
}

// Std 返回 time.Duration。
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}
