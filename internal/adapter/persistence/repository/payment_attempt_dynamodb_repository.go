package repository

import (
	"context"

	"qutlas/internal/domain/entities"
	"qutlas/internal/usecase/interfaces"
	"qutlas/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	DefaultPaymentsTableName = "payments"
	PaymentsJobIDIndex       = "job_id-index"
)

type paymentAttemptItem struct {
	Reference    string  `dynamodbav:"reference"`
	JobID        string  `dynamodbav:"job_id"`
	CustomerID   string  `dynamodbav:"customer_id"`
	Amount       float64 `dynamodbav:"amount"`
	Currency     string  `dynamodbav:"currency"`
	GatewayID    string  `dynamodbav:"gateway_id,omitempty"`
	RedirectLink string  `dynamodbav:"redirect_link,omitempty"`
	CreatedAt    string  `dynamodbav:"created_at"`
}

// PaymentAttemptDynamoRepository persists PaymentAttempt entities in DynamoDB.
//
// Table requirements:
//   - PK: reference (string)
//   - GSI: job_id-index (PK: job_id)
type PaymentAttemptDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IPaymentAttemptRepository = (*PaymentAttemptDynamoRepository)(nil)

func NewPaymentAttemptDynamoRepository(ddb DynamoAPI, tableName string) *PaymentAttemptDynamoRepository {
	return &PaymentAttemptDynamoRepository{
		ddb:       ddb,
		tableName: defaultTable(tableName, DefaultPaymentsTableName),
	}
}

func (r *PaymentAttemptDynamoRepository) Create(ctx context.Context, a entities.PaymentAttempt) (entities.PaymentAttempt, error) {
	if a.Reference == "" {
		return entities.PaymentAttempt{}, errs.Markf(errs.ErrInvalidInput, "payment reference is required")
	}
	av, err := attributevalue.MarshalMap(toPaymentAttemptItem(a))
	if err != nil {
		return entities.PaymentAttempt{}, errs.Wrapf(err, "marshal payment attempt %s", a.Reference)
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#reference)"),
		ExpressionAttributeNames: map[string]string{
			"#reference": "reference",
		},
	})
	if err != nil {
		return entities.PaymentAttempt{}, storeError(err, "create payment attempt %s", a.Reference)
	}
	return a, nil
}

func (r *PaymentAttemptDynamoRepository) GetByReference(ctx context.Context, reference string) (entities.PaymentAttempt, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"reference": &types.AttributeValueMemberS{Value: reference},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PaymentAttempt{}, storeError(err, "get payment attempt %s", reference)
	}
	if len(out.Item) == 0 {
		return entities.PaymentAttempt{}, nil
	}

	var it paymentAttemptItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PaymentAttempt{}, errs.Mark(errs.Wrapf(err, "unmarshal payment attempt %s", reference), errs.ErrDataUnavailable)
	}
	return fromPaymentAttemptItem(it), nil
}

func (r *PaymentAttemptDynamoRepository) ListByJobID(ctx context.Context, jobID string) ([]entities.PaymentAttempt, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(PaymentsJobIDIndex),
		KeyConditionExpression: aws.String("job_id = :jid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":jid": &types.AttributeValueMemberS{Value: jobID},
		},
	})

	items := make([]entities.PaymentAttempt, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, storeError(err, "list payment attempts of job %s", jobID)
		}
		for _, raw := range page.Items {
			var it paymentAttemptItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, errs.Mark(errs.Wrap(err, "unmarshal payment attempt"), errs.ErrDataUnavailable)
			}
			items = append(items, fromPaymentAttemptItem(it))
		}
	}
	return items, nil
}

func toPaymentAttemptItem(a entities.PaymentAttempt) paymentAttemptItem {
	return paymentAttemptItem{
		Reference:    a.Reference,
		JobID:        a.JobID,
		CustomerID:   a.CustomerID,
		Amount:       a.Amount,
		Currency:     a.Currency,
		GatewayID:    a.GatewayID,
		RedirectLink: a.RedirectLink,
		CreatedAt:    formatTime(a.CreatedAt),
	}
}

func fromPaymentAttemptItem(it paymentAttemptItem) entities.PaymentAttempt {
	return entities.PaymentAttempt{
		Reference:    it.Reference,
		JobID:        it.JobID,
		CustomerID:   it.CustomerID,
		Amount:       it.Amount,
		Currency:     it.Currency,
		GatewayID:    it.GatewayID,
		RedirectLink: it.RedirectLink,
		CreatedAt:    parseTime(it.CreatedAt),
	}
}
