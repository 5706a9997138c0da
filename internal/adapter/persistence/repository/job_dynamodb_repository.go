package repository

import (
	"context"
	"sort"

	"qutlas/internal/domain/entities"
	"qutlas/internal/usecase/interfaces"
	"qutlas/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	DefaultJobsTableName = "jobs"
	JobsCustomerIDIndex  = "customer_id-index"
)

type quoteItem struct {
	ID                     string   `dynamodbav:"id"`
	TemplateID             string   `dynamodbav:"template_id"`
	Process                string   `dynamodbav:"process"`
	RequestedMaterial      string   `dynamodbav:"requested_material,omitempty"`
	Material               string   `dynamodbav:"material"`
	MaterialMultiplier     float64  `dynamodbav:"material_multiplier"`
	Quantity               int      `dynamodbav:"quantity"`
	ManufacturabilityScore float64  `dynamodbav:"manufacturability_score"`
	VolumeDiscount         float64  `dynamodbav:"volume_discount"`
	UnitPrice              float64  `dynamodbav:"unit_price"`
	Subtotal               float64  `dynamodbav:"subtotal"`
	PlatformFee            float64  `dynamodbav:"platform_fee"`
	TotalPrice             float64  `dynamodbav:"total_price"`
	Currency               string   `dynamodbav:"currency"`
	LeadTimeDays           int      `dynamodbav:"lead_time_days"`
	ValidUntil             string   `dynamodbav:"valid_until"`
	CreatedAt              string   `dynamodbav:"created_at"`
	Warnings               []string `dynamodbav:"warnings,omitempty"`
}

type designItem struct {
	Bucket string `dynamodbav:"bucket"`
	Key    string `dynamodbav:"key"`
}

type paymentEventItem struct {
	Reference     string  `dynamodbav:"reference"`
	TransactionID string  `dynamodbav:"transaction_id,omitempty"`
	Status        string  `dynamodbav:"status"`
	Amount        float64 `dynamodbav:"amount"`
	Currency      string  `dynamodbav:"currency,omitempty"`
	AppliedAt     string  `dynamodbav:"applied_at"`
}

type paymentItem struct {
	Status        string             `dynamodbav:"status,omitempty"`
	Reference     string             `dynamodbav:"reference,omitempty"`
	TransactionID string             `dynamodbav:"transaction_id,omitempty"`
	Amount        float64            `dynamodbav:"amount"`
	Currency      string             `dynamodbav:"currency,omitempty"`
	VerifiedAt    string             `dynamodbav:"verified_at,omitempty"`
	Events        []paymentEventItem `dynamodbav:"events,omitempty"`
}

type timelineItem struct {
	Status    string `dynamodbav:"status"`
	Timestamp string `dynamodbav:"timestamp"`
	Note      string `dynamodbav:"note,omitempty"`
}

type trackingItem struct {
	EstimatedCompletion string         `dynamodbav:"estimated_completion,omitempty"`
	Carrier             string         `dynamodbav:"carrier,omitempty"`
	TrackingNumber      string         `dynamodbav:"tracking_number,omitempty"`
	Timeline            []timelineItem `dynamodbav:"timeline"`
}

// jobItem is the whole job as one item so a conditional put on version
// replaces it atomically. customer_id and created_at feed the GSI.
type jobItem struct {
	ID              string       `dynamodbav:"id"`
	CustomerID      string       `dynamodbav:"customer_id"`
	Status          string       `dynamodbav:"status"`
	HubID           string       `dynamodbav:"hub_id,omitempty"`
	HubLoadReserved float64      `dynamodbav:"hub_load_reserved"`
	Quote           *quoteItem   `dynamodbav:"quote,omitempty"`
	Design          *designItem  `dynamodbav:"design,omitempty"`
	Payment         paymentItem  `dynamodbav:"payment"`
	Tracking        trackingItem `dynamodbav:"tracking"`
	Version         int64        `dynamodbav:"version"`
	CreatedAt       string       `dynamodbav:"created_at"`
	UpdatedAt       string       `dynamodbav:"updated_at"`
}

// JobDynamoRepository persists Job entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: customer_id-index (PK: customer_id, SK: created_at)
type JobDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IJobRepository = (*JobDynamoRepository)(nil)

func NewJobDynamoRepository(ddb DynamoAPI, tableName string) *JobDynamoRepository {
	return &JobDynamoRepository{
		ddb:       ddb,
		tableName: defaultTable(tableName, DefaultJobsTableName),
	}
}

func (r *JobDynamoRepository) Create(ctx context.Context, job entities.Job) (entities.Job, error) {
	if job.ID == "" {
		return entities.Job{}, errs.Markf(errs.ErrInvalidInput, "job id is required")
	}
	job.Version = 1
	av, err := marshalJob(job)
	if err != nil {
		return entities.Job{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Job{}, storeError(err, "create job %s", job.ID)
	}
	return job, nil
}

func (r *JobDynamoRepository) GetByID(ctx context.Context, id string) (entities.Job, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Job{}, storeError(err, "get job %s", id)
	}
	if len(out.Item) == 0 {
		return entities.Job{}, nil
	}
	return unmarshalJob(out.Item)
}

// Update replaces the stored job when its version still equals
// expectedVersion and returns the job at expectedVersion+1.
func (r *JobDynamoRepository) Update(ctx context.Context, job entities.Job, expectedVersion int64) (entities.Job, error) {
	job.Version = expectedVersion + 1
	av, err := marshalJob(job)
	if err != nil {
		return entities.Job{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id) AND #version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: int64ToString(expectedVersion)},
		},
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		if conditionFailedOnMissingItem(err) {
			return entities.Job{}, errs.Markf(errs.ErrNotFound, "job %s not found", job.ID)
		}
		return entities.Job{}, storeError(err, "update job %s at version %d", job.ID, expectedVersion)
	}
	return job, nil
}

func (r *JobDynamoRepository) ListByCustomerID(ctx context.Context, customerID string) ([]entities.Job, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(JobsCustomerIDIndex),
		KeyConditionExpression: aws.String("customer_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid": &types.AttributeValueMemberS{Value: customerID},
		},
		ScanIndexForward: aws.Bool(true),
	})

	jobs := make([]entities.Job, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, storeError(err, "list jobs of customer %s", customerID)
		}
		for _, raw := range page.Items {
			j, err := unmarshalJob(raw)
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, j)
		}
	}
	sort.SliceStable(jobs, func(i, k int) bool {
		if !jobs[i].CreatedAt.Equal(jobs[k].CreatedAt) {
			return jobs[i].CreatedAt.Before(jobs[k].CreatedAt)
		}
		return jobs[i].ID < jobs[k].ID
	})
	return jobs, nil
}

func marshalJob(j entities.Job) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.MarshalMap(toJobItem(j))
	if err != nil {
		return nil, errs.Wrapf(err, "marshal job %s", j.ID)
	}
	return av, nil
}

func unmarshalJob(raw map[string]types.AttributeValue) (entities.Job, error) {
	var it jobItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Job{}, errs.Mark(errs.Wrap(err, "unmarshal job item"), errs.ErrDataUnavailable)
	}
	return fromJobItem(it), nil
}

func toJobItem(j entities.Job) jobItem {
	it := jobItem{
		ID:              j.ID,
		CustomerID:      j.CustomerID,
		Status:          string(j.Status),
		HubID:           j.HubID,
		HubLoadReserved: j.HubLoadReserved,
		Payment: paymentItem{
			Status:        string(j.Payment.Status),
			Reference:     j.Payment.Reference,
			TransactionID: j.Payment.TransactionID,
			Amount:        j.Payment.Amount,
			Currency:      j.Payment.Currency,
			VerifiedAt:    formatOptTime(j.Payment.VerifiedAt),
		},
		Tracking: trackingItem{
			EstimatedCompletion: formatOptTime(j.Tracking.EstimatedCompletion),
			Carrier:             j.Tracking.Carrier,
			TrackingNumber:      j.Tracking.TrackingNumber,
			Timeline:            make([]timelineItem, 0, len(j.Tracking.Timeline)),
		},
		Version:   j.Version,
		CreatedAt: formatTime(j.CreatedAt),
		UpdatedAt: formatTime(j.UpdatedAt),
	}
	if q := j.Quote; q != nil {
		it.Quote = &quoteItem{
			ID:                     q.ID,
			TemplateID:             q.TemplateID,
			Process:                q.Process,
			RequestedMaterial:      q.RequestedMaterial,
			Material:               q.Material,
			MaterialMultiplier:     q.MaterialMultiplier,
			Quantity:               q.Quantity,
			ManufacturabilityScore: q.ManufacturabilityScore,
			VolumeDiscount:         q.VolumeDiscount,
			UnitPrice:              q.UnitPrice,
			Subtotal:               q.Subtotal,
			PlatformFee:            q.PlatformFee,
			TotalPrice:             q.TotalPrice,
			Currency:               q.Currency,
			LeadTimeDays:           q.LeadTimeDays,
			ValidUntil:             formatTime(q.ValidUntil),
			CreatedAt:              formatTime(q.CreatedAt),
			Warnings:               q.Warnings,
		}
	}
	if d := j.Design; d != nil {
		it.Design = &designItem{Bucket: d.Bucket, Key: d.Key}
	}
	for _, e := range j.Payment.Events {
		it.Payment.Events = append(it.Payment.Events, paymentEventItem{
			Reference:     e.Reference,
			TransactionID: e.TransactionID,
			Status:        string(e.Status),
			Amount:        e.Amount,
			Currency:      e.Currency,
			AppliedAt:     formatTime(e.AppliedAt),
		})
	}
	for _, e := range j.Tracking.Timeline {
		it.Tracking.Timeline = append(it.Tracking.Timeline, timelineItem{Status: string(e.Status), Timestamp: formatTime(e.Timestamp), Note: e.Note})
	}
	return it
}

func fromJobItem(it jobItem) entities.Job {
	j := entities.Job{
		ID:              it.ID,
		CustomerID:      it.CustomerID,
		Status:          entities.JobStatus(it.Status),
		HubID:           it.HubID,
		HubLoadReserved: it.HubLoadReserved,
		Payment: entities.JobPayment{
			Status:        entities.JobPaymentStatus(it.Payment.Status),
			Reference:     it.Payment.Reference,
			TransactionID: it.Payment.TransactionID,
			Amount:        it.Payment.Amount,
			Currency:      it.Payment.Currency,
			VerifiedAt:    parseOptTime(it.Payment.VerifiedAt),
		},
		Tracking: entities.Tracking{
			EstimatedCompletion: parseOptTime(it.Tracking.EstimatedCompletion),
			Carrier:             it.Tracking.Carrier,
			TrackingNumber:      it.Tracking.TrackingNumber,
			Timeline:            make([]entities.TimelineEntry, 0, len(it.Tracking.Timeline)),
		},
		Version:   it.Version,
		CreatedAt: parseTime(it.CreatedAt),
		UpdatedAt: parseTime(it.UpdatedAt),
	}
	if q := it.Quote; q != nil {
		j.Quote = &entities.Quote{
			ID:                     q.ID,
			TemplateID:             q.TemplateID,
			Process:                q.Process,
			RequestedMaterial:      q.RequestedMaterial,
			Material:               q.Material,
			MaterialMultiplier:     q.MaterialMultiplier,
			Quantity:               q.Quantity,
			ManufacturabilityScore: q.ManufacturabilityScore,
			VolumeDiscount:         q.VolumeDiscount,
			UnitPrice:              q.UnitPrice,
			Subtotal:               q.Subtotal,
			PlatformFee:            q.PlatformFee,
			TotalPrice:             q.TotalPrice,
			Currency:               q.Currency,
			LeadTimeDays:           q.LeadTimeDays,
			ValidUntil:             parseTime(q.ValidUntil),
			CreatedAt:              parseTime(q.CreatedAt),
			Warnings:               q.Warnings,
		}
	}
	if d := it.Design; d != nil {
		j.Design = &entities.DesignLocation{Bucket: d.Bucket, Key: d.Key}
	}
	for _, e := range it.Payment.Events {
		j.Payment.Events = append(j.Payment.Events, entities.PaymentEventRecord{
			Reference:     e.Reference,
			TransactionID: e.TransactionID,
			Status:        entities.PaymentEventStatus(e.Status),
			Amount:        e.Amount,
			Currency:      e.Currency,
			AppliedAt:     parseTime(e.AppliedAt),
		})
	}
	for _, e := range it.Tracking.Timeline {
		j.Tracking.Timeline = append(j.Tracking.Timeline, entities.TimelineEntry{Status: entities.JobStatus(e.Status), Timestamp: parseTime(e.Timestamp), Note: e.Note})
	}
	return j
}
