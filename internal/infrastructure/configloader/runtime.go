// Package configloader 提供配置加载与归一化能力，供 Wire 装配使用。
package configloader

import "time"

// RuntimeConfig 聚合应用在运行期所需的配置片段。
type RuntimeConfig struct {
	Service       ServiceInfo
	Database      DatabaseConfig
	Storage       StorageConfig
	Messaging     MessagingConfig
	Observability ObservabilityConfig
}

// ServiceInfo 描述服务标识与运行环境。
type ServiceInfo struct {
	Name        string
	Version     string
	Environment string
	InstanceID  string
}

// DatabaseConfig 包含 PostgreSQL 连接池及事务默认值。
type DatabaseConfig struct {
	DSN               string
	MaxOpenConns      int32
	MinOpenConns      int32
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
	Schema            string
	PreparedStmts     bool
	PoolMetrics       bool
	Transaction       TransactionConfig
}

// TransactionConfig 指定事务默认隔离级别与超时策略。
type TransactionConfig struct {
	DefaultIsolation string
	DefaultTimeout   time.Duration
	LockTimeout      time.Duration
	MaxRetries       int
	MetricsEnabled   bool
}

// ObservabilityConfig 聚合 tracing 与 metrics 的配置。
type ObservabilityConfig struct {
	GlobalAttributes map[string]string
	Tracing          TracingConfig
	Metrics          MetricsConfig
}

// TracingConfig 描述 OpenTelemetry 追踪导出的行为。
type TracingConfig struct {
	Enabled            bool
	Exporter           string
	Endpoint           string
	Headers            map[string]string
	Insecure           bool
	SamplingRatio      float64
	BatchTimeout       time.Duration
	ExportTimeout      time.Duration
	MaxQueueSize       int
	MaxExportBatchSize int
	Required           bool
	Attributes         map[string]string
}

// MetricsConfig 描述 OpenTelemetry 指标导出的行为。
type MetricsConfig struct {
	Enabled             bool
	Exporter            string
	Endpoint            string
	Headers             map[string]string
	Insecure            bool
	Interval            time.Duration
	DisableRuntimeStats bool
	Required            bool
	ResourceAttributes  map[string]string
}

// StorageConfig 描述原始媒体所在的对象存储。
type StorageConfig struct {
	Bucket           string
	Endpoint         string
	CredentialsFile  string
	CredentialsJSON  string
	OperationTimeout time.Duration
}

// MessagingConfig 汇总消息系统相关配置。
type MessagingConfig struct {
	Schema          string
	EncoderCallback PubSubConfig
	EncoderJobs     PubSubConfig
	Outbox          OutboxPublisherConfig
}

// PubSubConfig 提供与 GCP Pub/Sub 兼容的设置。
type PubSubConfig struct {
	ProjectID           string
	TopicID             string
	SubscriptionID      string
	OrderingKeyEnabled  bool
	LoggingEnabled      bool
	MetricsEnabled      bool
	EmulatorEndpoint    string
	PublishTimeout      time.Duration
	ExactlyOnceDelivery bool
	Receive             PubSubReceiveConfig
}

// PubSubReceiveConfig 控制订阅者拉取行为。
type PubSubReceiveConfig struct {
	NumGoroutines          int
	MaxOutstandingMessages int
	MaxOutstandingBytes    int
	MaxExtension           time.Duration
	MaxExtensionPeriod     time.Duration
}

// OutboxPublisherConfig 配置 Outbox 发布器的运行参数。
type OutboxPublisherConfig struct {
	BatchSize      int
	TickInterval   time.Duration
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	MaxAttempts    int
	PublishTimeout time.Duration
	Workers        int
	LockTTL        time.Duration
	LoggingEnabled *bool
	MetricsEnabled *bool
}

func fromBootstrap(b *Bootstrap) RuntimeConfig {
	if b == nil {
		return RuntimeConfig{}
	}
	pg := b.Data.Postgres
	gcs := b.Storage.GCS
	msg := b.Messaging

	return RuntimeConfig{
		Database: DatabaseConfig{
			DSN:               pg.DSN,
			MaxOpenConns:      pg.MaxOpenConns,
			MinOpenConns:      pg.MinOpenConns,
			MaxConnLifetime:   pg.MaxConnLifetime.Std(),
			MaxConnIdleTime:   pg.MaxConnIdleTime.Std(),
			HealthCheckPeriod: pg.HealthCheckPeriod.Std(),
			Schema:            firstNonEmpty(pg.Schema, defaultSchema),
			PreparedStmts:     pg.PreparedStatementsEnabled == nil || *pg.PreparedStatementsEnabled,
			PoolMetrics:       pg.PoolMetricsEnabled,
			Transaction: TransactionConfig{
				DefaultIsolation: pg.Transaction.DefaultIsolation,
				DefaultTimeout:   pg.Transaction.DefaultTimeout.Std(),
				LockTimeout:      pg.Transaction.LockTimeout.Std(),
				MaxRetries:       pg.Transaction.MaxRetries,
				MetricsEnabled:   pg.Transaction.MetricsEnabled,
			},
		},
		Storage: StorageConfig{
			Bucket:           gcs.Bucket,
			Endpoint:         gcs.Endpoint,
			CredentialsFile:  gcs.CredentialsFile,
			CredentialsJSON:  gcs.CredentialsJSON,
			OperationTimeout: gcs.OperationTimeout.Std(),
		},
		Messaging: MessagingConfig{
			Schema:          firstNonEmpty(pg.Schema, defaultSchema),
			EncoderCallback: pubsubFromBootstrap(msg, msg.EncoderCallback),
			EncoderJobs:     pubsubFromBootstrap(msg, msg.EncoderJobs),
			Outbox: OutboxPublisherConfig{
				BatchSize:      msg.Outbox.BatchSize,
				TickInterval:   msg.Outbox.TickInterval.Std(),
				InitialBackoff: msg.Outbox.InitialBackoff.Std(),
				MaxBackoff:     msg.Outbox.MaxBackoff.Std(),
				MaxAttempts:    msg.Outbox.MaxAttempts,
				PublishTimeout: msg.Outbox.PublishTimeout.Std(),
				Workers:        msg.Outbox.Workers,
				LockTTL:        msg.Outbox.LockTTL.Std(),
				LoggingEnabled: msg.Outbox.LoggingEnabled,
				MetricsEnabled: msg.Outbox.MetricsEnabled,
			},
		},
		Observability: observabilityFromBootstrap(b.Observability),
	}
}

func observabilityFromBootstrap(o Observability) ObservabilityConfig {
	return ObservabilityConfig{
		GlobalAttributes: o.GlobalAttributes,
		Tracing: TracingConfig{
			Enabled:            o.Tracing.Enabled,
			Exporter:           o.Tracing.Exporter,
			Endpoint:           o.Tracing.Endpoint,
			Headers:            o.Tracing.Headers,
			Insecure:           o.Tracing.Insecure,
			SamplingRatio:      o.Tracing.SamplingRatio,
			BatchTimeout:       o.Tracing.BatchTimeout.Std(),
			ExportTimeout:      o.Tracing.ExportTimeout.Std(),
			MaxQueueSize:       o.Tracing.MaxQueueSize,
			MaxExportBatchSize: o.Tracing.MaxExportBatchSize,
			Required:           o.Tracing.Required,
			Attributes:         o.Tracing.Attributes,
		},
		Metrics: MetricsConfig{
			Enabled:             o.Metrics.Enabled,
			Exporter:            o.Metrics.Exporter,
			Endpoint:            o.Metrics.Endpoint,
			Headers:             o.Metrics.Headers,
			Insecure:            o.Metrics.Insecure,
			Interval:            o.Metrics.Interval.Std(),
			DisableRuntimeStats: o.Metrics.DisableRuntimeStats,
			Required:            o.Metrics.Required,
			ResourceAttributes:  o.Metrics.ResourceAttributes,
		},
	}
}

func pubsubFromBootstrap(msg Messaging, ps PubSub) PubSubConfig {
	return PubSubConfig{
		ProjectID:           msg.ProjectID,
		TopicID:             ps.TopicID,
		SubscriptionID:      ps.SubscriptionID,
		OrderingKeyEnabled:  ps.OrderingKeyEnabled,
		LoggingEnabled:      ps.LoggingEnabled,
		MetricsEnabled:      ps.MetricsEnabled,
		EmulatorEndpoint:    msg.EmulatorEndpoint,
		PublishTimeout:      ps.PublishTimeout.Std(),
		ExactlyOnceDelivery: ps.ExactlyOnceDelivery,
		Receive: PubSubReceiveConfig{
			NumGoroutines:          ps.Receive.NumGoroutines,
			MaxOutstandingMessages: ps.Receive.MaxOutstandingMessages,
			MaxOutstandingBytes:    ps.Receive.MaxOutstandingBytes,
			MaxExtension:           ps.Receive.MaxExtension.Std(),
			MaxExtensionPeriod:     ps.Receive.MaxExtensionPeriod.Std(),
		},
	}
}
