package notify

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"cropwatch/internal/types"
)

// Metric and dimension names emitted by the reconciler.
const (
	MetricNamespace = "CropWatch/Notifications"

	metricScheduled = "NotificationScheduled"
	metricFailed    = "NotificationFailed"
	metricPruned    = "RecordsPruned"
	dimKind         = "Kind"
)

// Metrics abstracts telemetry for the notification reconciler. Emission is
// best-effort: failures are logged, never surfaced to callers.
type Metrics interface {
	RecordScheduled(ctx context.Context, kind types.NotificationKind)
	RecordFailure(ctx context.Context, kind types.NotificationKind)
	RecordPruned(ctx context.Context, count int)
}

// NoopMetrics discards all measurements. Used in tests and in deployments
// without a telemetry sink.
type NoopMetrics struct{}

func (NoopMetrics) RecordScheduled(context.Context, types.NotificationKind) {}
func (NoopMetrics) RecordFailure(context.Context, types.NotificationKind)   {}
func (NoopMetrics) RecordPruned(context.Context, int)                       {}

// CloudWatchClient abstracts the CloudWatch PutMetricData operation for
// testability.
type CloudWatchClient interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Compile-time assertion that CloudWatchMetrics implements Metrics.
var _ Metrics = (*CloudWatchMetrics)(nil)

// CloudWatchMetrics implements Metrics by emitting to AWS CloudWatch under
// the CropWatch/Notifications namespace.
type CloudWatchMetrics struct {
	client CloudWatchClient
	logger types.Logger
}

// NewCloudWatchMetrics creates a CloudWatch-backed Metrics sink.
func NewCloudWatchMetrics(client CloudWatchClient, logger types.Logger) *CloudWatchMetrics {
	return &CloudWatchMetrics{client: client, logger: logger}
}

// RecordScheduled emits a NotificationScheduled count with a Kind dimension.
func (m *CloudWatchMetrics) RecordScheduled(ctx context.Context, kind types.NotificationKind) {
	m.put(ctx, metricScheduled, 1, &kind)
}

// RecordFailure emits a NotificationFailed count with a Kind dimension.
func (m *CloudWatchMetrics) RecordFailure(ctx context.Context, kind types.NotificationKind) {
	m.put(ctx, metricFailed, 1, &kind)
}

// RecordPruned emits the number of bookkeeping records removed by a cleanup
// pass.
func (m *CloudWatchMetrics) RecordPruned(ctx context.Context, count int) {
	m.put(ctx, metricPruned, float64(count), nil)
}

func (m *CloudWatchMetrics) put(ctx context.Context, name string, value float64, kind *types.NotificationKind) {
	datum := cwtypes.MetricDatum{
		MetricName: aws.String(name),
		Value:      aws.Float64(value),
		Unit:       cwtypes.StandardUnitCount,
	}
	if kind != nil {
		datum.Dimensions = []cwtypes.Dimension{
			{Name: aws.String(dimKind), Value: aws.String(string(*kind))},
		}
	}

	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(MetricNamespace),
		MetricData: []cwtypes.MetricDatum{datum},
	}
	if _, err := m.client.PutMetricData(ctx, input); err != nil {
		m.logger.Error("failed to emit metric", "metric", name, "error", err.Error())
	}
}
