package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"qutlas/internal/domain/entities"
	"qutlas/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo records the last request and answers with the configured
// responses.
type fakeDynamo struct {
	putErr  error
	getItem map[string]types.AttributeValue
	getErr  error
	lastPut *dynamodb.PutItemInput
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.lastPut = in
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &dynamodb.GetItemOutput{Item: f.getItem}, nil
}

func (f *fakeDynamo) UpdateItem(context.Context, *dynamodb.UpdateItemInput, ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDynamo) Query(context.Context, *dynamodb.QueryInput, ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDynamo) Scan(context.Context, *dynamodb.ScanInput, ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	return nil, errors.New("not implemented")
}

func TestStoreError_Classification(t *testing.T) {
	conflict := storeError(&types.ConditionalCheckFailedException{Message: aws.String("nope")}, "put")
	assert.True(t, errs.Is(conflict, errs.ErrConflict))

	unavailable := storeError(&types.ProvisionedThroughputExceededException{Message: aws.String("slow down")}, "put")
	assert.True(t, errs.Is(unavailable, errs.ErrDataUnavailable))
	assert.False(t, errs.Is(unavailable, errs.ErrConflict))

	cancelled := storeError(context.Canceled, "put")
	assert.ErrorIs(t, cancelled, context.Canceled)
	assert.False(t, errs.Is(cancelled, errs.ErrDataUnavailable))

	assert.NoError(t, storeError(nil, "put"))
}

func TestJobDynamoRepository_UpdateConditions(t *testing.T) {
	job := entities.NewSubmittedJob("job-1", "cust-1", "hub-a", entities.Quote{ID: "q-1", TotalPrice: 349.6, Currency: "BRL"}, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))

	t.Run("bumps version and guards on the expected one", func(t *testing.T) {
		fake := &fakeDynamo{}
		repo := NewJobDynamoRepository(fake, "")

		updated, err := repo.Update(context.Background(), job, 4)
		require.NoError(t, err)
		assert.EqualValues(t, 5, updated.Version)
		assert.Equal(t, "jobs", aws.ToString(fake.lastPut.TableName))
		assert.Equal(t, "attribute_exists(#id) AND #version = :expected", aws.ToString(fake.lastPut.ConditionExpression))
		assert.Equal(t, &types.AttributeValueMemberN{Value: "4"}, fake.lastPut.ExpressionAttributeValues[":expected"])
		assert.Equal(t, &types.AttributeValueMemberN{Value: "5"}, fake.lastPut.Item["version"])
	})

	t.Run("stale version is a conflict", func(t *testing.T) {
		stale := map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "job-1"}}
		fake := &fakeDynamo{putErr: &types.ConditionalCheckFailedException{Item: stale}}
		_, err := NewJobDynamoRepository(fake, "jobs").Update(context.Background(), job, 1)
		assert.True(t, errs.Is(err, errs.ErrConflict))
	})

	t.Run("missing item is not found", func(t *testing.T) {
		fake := &fakeDynamo{putErr: &types.ConditionalCheckFailedException{}}
		_, err := NewJobDynamoRepository(fake, "jobs").Update(context.Background(), job, 1)
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})
}

func TestJobDynamoRepository_CreateDuplicate(t *testing.T) {
	fake := &fakeDynamo{putErr: &types.ConditionalCheckFailedException{}}
	repo := NewJobDynamoRepository(fake, "jobs")

	_, err := repo.Create(context.Background(), entities.Job{ID: "job-1", CustomerID: "cust-1"})
	assert.True(t, errs.Is(err, errs.ErrConflict))
	assert.Equal(t, "attribute_not_exists(#id)", aws.ToString(fake.lastPut.ConditionExpression))
}

func TestJobDynamoRepository_GetByID(t *testing.T) {
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	job := entities.NewSubmittedJob("job-1", "cust-1", "hub-a", entities.Quote{ID: "q-1", TotalPrice: 349.6, Currency: "BRL"}, at)
	job.Version = 3
	item, err := marshalJob(job)
	require.NoError(t, err)

	t.Run("decodes the item", func(t *testing.T) {
		item["version"] = &types.AttributeValueMemberN{Value: "7"}
		got, err := NewJobDynamoRepository(&fakeDynamo{getItem: item}, "").GetByID(context.Background(), "job-1")
		require.NoError(t, err)
		assert.Equal(t, "cust-1", got.CustomerID)
		assert.Equal(t, entities.JobStatusSubmitted, got.Status)
		assert.EqualValues(t, 7, got.Version)
		require.NotNil(t, got.Quote)
		assert.Equal(t, 349.6, got.Quote.TotalPrice)
		assert.True(t, got.CreatedAt.Equal(at))
	})

	t.Run("missing item returns zero job", func(t *testing.T) {
		got, err := NewJobDynamoRepository(&fakeDynamo{}, "").GetByID(context.Background(), "nope")
		require.NoError(t, err)
		assert.Empty(t, got.ID)
	})

	t.Run("transport failure is data unavailable", func(t *testing.T) {
		_, err := NewJobDynamoRepository(&fakeDynamo{getErr: errors.New("connection reset")}, "").GetByID(context.Background(), "job-1")
		assert.True(t, errs.Is(err, errs.ErrDataUnavailable))
	})

	t.Run("corrupt item is data unavailable", func(t *testing.T) {
		broken, err := attributevalue.MarshalMap(jobItem{ID: "job-1", CustomerID: "cust-1"})
		require.NoError(t, err)
		broken["quote"] = &types.AttributeValueMemberS{Value: "{not a map"}
		_, err = NewJobDynamoRepository(&fakeDynamo{getItem: broken}, "").GetByID(context.Background(), "job-1")
		assert.True(t, errs.Is(err, errs.ErrDataUnavailable))
	})
}

func TestJobItemRoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	verified := at.Add(time.Hour)
	eta := at.Add(5 * 24 * time.Hour)
	job := entities.Job{
		ID:              "job-1",
		CustomerID:      "cust-1",
		Status:          entities.JobStatusManufacturing,
		HubID:           "hub-a",
		HubLoadReserved: 0.02,
		Quote: &entities.Quote{
			ID: "q-1", TemplateID: "bracket-l", Process: "cnc_milling", Material: "Aluminum 6061-T6",
			Quantity: 10, TotalPrice: 349.6, Currency: "BRL", LeadTimeDays: 5,
			ValidUntil: at.Add(24 * time.Hour), CreatedAt: at, Warnings: []string{"thin walls"},
		},
		Design: &entities.DesignLocation{Bucket: "designs", Key: "cust-1/bracket.step"},
		Payment: entities.JobPayment{
			Status: entities.JobPaymentCompleted, Reference: "ref-1", TransactionID: "tx-1",
			Amount: 349.6, Currency: "BRL", VerifiedAt: &verified,
			Events: []entities.PaymentEventRecord{{Reference: "ref-1", TransactionID: "tx-1", Status: entities.PaymentEventSuccessful, Amount: 349.6, Currency: "BRL", AppliedAt: verified}},
		},
		Tracking: entities.Tracking{
			EstimatedCompletion: &eta,
			Carrier:             "Correios",
			TrackingNumber:      "BR123",
			Timeline: []entities.TimelineEntry{
				{Status: entities.JobStatusSubmitted, Timestamp: at, Note: "job submitted"},
				{Status: entities.JobStatusPaid, Timestamp: verified},
			},
		},
		Version:   4,
		CreatedAt: at,
		UpdatedAt: verified,
	}

	av, err := marshalJob(job)
	require.NoError(t, err)
	_, isMap := av["payment"].(*types.AttributeValueMemberM)
	assert.True(t, isMap, "payment is stored as a nested map")

	got, err := unmarshalJob(av)
	require.NoError(t, err)
	assert.Equal(t, job, got)

	bare := entities.NewSubmittedJob("job-2", "cust-1", "hub-a", entities.Quote{ID: "q-2"}, at)
	av, err = marshalJob(bare)
	require.NoError(t, err)
	_, hasDesign := av["design"]
	assert.False(t, hasDesign)
	got, err = unmarshalJob(av)
	require.NoError(t, err)
	assert.Nil(t, got.Design)
	assert.Nil(t, got.Payment.VerifiedAt)
	assert.Nil(t, got.Tracking.EstimatedCompletion)
	assert.Len(t, got.Tracking.Timeline, 1)
}

func TestHubItemRoundTripKeepsLocation(t *testing.T) {
	h := entities.Hub{ID: "hub-a", Name: "Hub A", Processes: []string{"cnc_milling"}, Materials: []string{"Aluminum 6061-T6"}, CurrentLoad: 0.6, QualityRating: 4.9, Certified: true, Location: &entities.GeoPoint{Lat: -23.55, Lng: -46.63}, Version: 2}
	got := fromHubItem(toHubItem(h))
	assert.Equal(t, h.Location, got.Location)
	assert.Equal(t, h.Materials, got.Materials)
	assert.EqualValues(t, 2, got.Version)
}
