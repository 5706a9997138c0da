package repository

import (
	"context"
	"strconv"
	"time"

	"qutlas/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the subset of *dynamodb.Client the repositories use.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

var _ DynamoAPI = (*dynamodb.Client)(nil)

// storeError classifies a DynamoDB failure. A failed condition is an
// optimistic-concurrency loss, everything else except caller cancellation is
// reported as unavailable data.
func storeError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	wrapped := errs.Wrapf(err, format, args...)
	if errs.Is(err, context.Canceled) || errs.Is(err, context.DeadlineExceeded) {
		return wrapped
	}
	var cfe *types.ConditionalCheckFailedException
	if errs.As(err, &cfe) {
		return errs.Mark(wrapped, errs.ErrConflict)
	}
	return errs.Mark(wrapped, errs.ErrDataUnavailable)
}

// conditionFailedOnMissingItem reports whether err is a failed condition
// raised against an item that does not exist. It relies on
// ReturnValuesOnConditionCheckFailure ALL_OLD.
func conditionFailedOnMissingItem(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	return errs.As(err, &cfe) && len(cfe.Item) == 0
}

func defaultTable(name, def string) string {
	if name != "" {
		return name
	}
	return def
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func formatOptTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func parseOptTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t := parseTime(s)
	return &t
}

func int64ToString(v int64) string {
	return strconv.FormatInt(v, 10)
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
