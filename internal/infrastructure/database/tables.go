package database

import (
	"context"
	"log/slog"
	"time"

	"qutlas/internal/adapter/persistence/repository"
	"qutlas/internal/config"
	"qutlas/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const tableActiveTimeout = 2 * time.Minute

// TableDefinitions returns the CreateTable inputs for the jobs, hubs and
// payments tables, named after cfg.
func TableDefinitions(cfg config.DynamoDBConfig) []*dynamodb.CreateTableInput {
	jobs := orDefault(cfg.JobsTable, repository.DefaultJobsTableName)
	hubs := orDefault(cfg.HubsTable, repository.DefaultHubsTableName)
	payments := orDefault(cfg.PaymentsTable, repository.DefaultPaymentsTableName)

	return []*dynamodb.CreateTableInput{
		{
			TableName:   aws.String(jobs),
			BillingMode: types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
				{AttributeName: aws.String("customer_id"), AttributeType: types.ScalarAttributeTypeS},
				{AttributeName: aws.String("created_at"), AttributeType: types.ScalarAttributeTypeS},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
			},
			GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
				{
					IndexName: aws.String(repository.JobsCustomerIDIndex),
					KeySchema: []types.KeySchemaElement{
						{AttributeName: aws.String("customer_id"), KeyType: types.KeyTypeHash},
						{AttributeName: aws.String("created_at"), KeyType: types.KeyTypeRange},
					},
					Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
				},
			},
		},
		{
			TableName:   aws.String(hubs),
			BillingMode: types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
			},
		},
		{
			TableName:   aws.String(payments),
			BillingMode: types.BillingModePayPerRequest,
			AttributeDefinitions: []types.AttributeDefinition{
				{AttributeName: aws.String("reference"), AttributeType: types.ScalarAttributeTypeS},
				{AttributeName: aws.String("job_id"), AttributeType: types.ScalarAttributeTypeS},
			},
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("reference"), KeyType: types.KeyTypeHash},
			},
			GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
				{
					IndexName: aws.String(repository.PaymentsJobIDIndex),
					KeySchema: []types.KeySchemaElement{
						{AttributeName: aws.String("job_id"), KeyType: types.KeyTypeHash},
					},
					Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
				},
			},
		},
	}
}

// EnsureTables creates any missing table and waits until it is active.
// Existing tables are left untouched.
func EnsureTables(ctx context.Context, client *dynamodb.Client, cfg config.DynamoDBConfig, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	waiter := dynamodb.NewTableExistsWaiter(client)
	for _, def := range TableDefinitions(cfg) {
		name := aws.ToString(def.TableName)
		_, err := client.CreateTable(ctx, def)
		if err != nil {
			var inUse *types.ResourceInUseException
			if errs.As(err, &inUse) {
				logger.Debug("dynamodb table already exists", "table", name)
				continue
			}
			return errs.Wrapf(err, "create table %s", name)
		}
		if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(name)}, tableActiveTimeout); err != nil {
			return errs.Wrapf(err, "wait for table %s", name)
		}
		logger.Info("dynamodb table created", "table", name)
	}
	return nil
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
