package repository

import (
	"context"
	"sort"
	"strings"

	"qutlas/internal/domain/entities"
	"qutlas/internal/usecase/interfaces"
	"qutlas/pkg/clock"
	"qutlas/pkg/errs"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const DefaultHubsTableName = "hubs"

type geoPointItem struct {
	Lat float64 `dynamodbav:"lat"`
	Lng float64 `dynamodbav:"lng"`
}

type hubItem struct {
	ID              string        `dynamodbav:"id"`
	Name            string        `dynamodbav:"name"`
	Processes       []string      `dynamodbav:"processes"`
	Materials       []string      `dynamodbav:"materials"`
	CurrentLoad     float64       `dynamodbav:"current_load"`
	QualityRating   float64       `dynamodbav:"quality_rating"`
	BasePrice       float64       `dynamodbav:"base_price"`
	AvgLeadTimeDays int           `dynamodbav:"avg_lead_time_days"`
	Certified       bool          `dynamodbav:"certified"`
	Location        *geoPointItem `dynamodbav:"location,omitempty"`
	Version         int64         `dynamodbav:"version"`
	UpdatedAt       string        `dynamodbav:"updated_at"`
}

// HubDynamoRepository persists the hub registry in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
type HubDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
	clock     clock.Clock
}

var _ interfaces.IHubRepository = (*HubDynamoRepository)(nil)

func NewHubDynamoRepository(ddb DynamoAPI, tableName string, c clock.Clock) *HubDynamoRepository {
	if c == nil {
		c = clock.NewRealClock()
	}
	return &HubDynamoRepository{
		ddb:       ddb,
		tableName: defaultTable(tableName, DefaultHubsTableName),
		clock:     c,
	}
}

func (r *HubDynamoRepository) List(ctx context.Context) ([]entities.Hub, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:      aws.String(r.tableName),
		ConsistentRead: aws.Bool(true),
	})

	hubs := make([]entities.Hub, 0)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, storeError(err, "list hubs")
		}
		for _, raw := range page.Items {
			var it hubItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, errs.Mark(errs.Wrap(err, "unmarshal hub item"), errs.ErrDataUnavailable)
			}
			hubs = append(hubs, fromHubItem(it))
		}
	}
	sort.Slice(hubs, func(i, k int) bool { return hubs[i].ID < hubs[k].ID })
	return hubs, nil
}

func (r *HubDynamoRepository) GetByID(ctx context.Context, id string) (entities.Hub, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Hub{}, storeError(err, "get hub %s", id)
	}
	if len(out.Item) == 0 {
		return entities.Hub{}, nil
	}

	var it hubItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Hub{}, errs.Mark(errs.Wrapf(err, "unmarshal hub %s", id), errs.ErrDataUnavailable)
	}
	return fromHubItem(it), nil
}

// Upsert writes the registry attributes of a hub and bumps its version.
// Registration data wins over concurrent load updates.
func (r *HubDynamoRepository) Upsert(ctx context.Context, hub entities.Hub) (entities.Hub, error) {
	if hub.ID == "" {
		return entities.Hub{}, errs.Markf(errs.ErrInvalidInput, "hub id is required")
	}
	hub.UpdatedAt = r.clock.Now().UTC()
	it := toHubItem(hub)

	attrs, err := attributevalue.MarshalMap(it)
	if err != nil {
		return entities.Hub{}, errs.Wrapf(err, "marshal hub %s", hub.ID)
	}
	delete(attrs, "id")
	delete(attrs, "version")

	keys := make([]string, 0, len(attrs))
	for name := range attrs {
		keys = append(keys, name)
	}
	sort.Strings(keys)

	values := map[string]types.AttributeValue{
		":one": &types.AttributeValueMemberN{Value: "1"},
	}
	names := map[string]string{"#version": "version"}
	assignments := make([]string, 0, len(keys))
	for _, name := range keys {
		assignments = append(assignments, "#"+name+" = :"+name)
		names["#"+name] = name
		values[":"+name] = attrs[name]
	}
	set := "SET " + strings.Join(assignments, ", ") + " ADD #version :one"

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: hub.ID},
		},
		UpdateExpression:          aws.String(set),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		return entities.Hub{}, storeError(err, "upsert hub %s", hub.ID)
	}
	var stored hubItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &stored); err != nil {
		return entities.Hub{}, errs.Mark(errs.Wrapf(err, "unmarshal hub %s", hub.ID), errs.ErrDataUnavailable)
	}
	return fromHubItem(stored), nil
}

func (r *HubDynamoRepository) UpdateLoad(ctx context.Context, id string, load float64, expectedVersion int64) (entities.Hub, error) {
	now := formatTime(r.clock.Now())
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND #version = :expected"),
		UpdateExpression:    aws.String("SET #current_load = :load, #updated_at = :updated_at ADD #version :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":load":       &types.AttributeValueMemberN{Value: floatToString(load)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
			":expected":   &types.AttributeValueMemberN{Value: int64ToString(expectedVersion)},
			":one":        &types.AttributeValueMemberN{Value: "1"},
		},
		ExpressionAttributeNames: mergeNames(map[string]string{
			"#current_load": "current_load",
			"#updated_at":   "updated_at",
			"#version":      "version",
		}, map[string]string{"#id": "id"}),
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		if conditionFailedOnMissingItem(err) {
			return entities.Hub{}, errs.Markf(errs.ErrNotFound, "hub %s not found", id)
		}
		return entities.Hub{}, storeError(err, "update load of hub %s at version %d", id, expectedVersion)
	}
	var it hubItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Hub{}, errs.Mark(errs.Wrapf(err, "unmarshal hub %s", id), errs.ErrDataUnavailable)
	}
	return fromHubItem(it), nil
}

func toHubItem(h entities.Hub) hubItem {
	it := hubItem{
		ID:              h.ID,
		Name:            h.Name,
		Processes:       append([]string{}, h.Processes...),
		Materials:       append([]string{}, h.Materials...),
		CurrentLoad:     h.CurrentLoad,
		QualityRating:   h.QualityRating,
		BasePrice:       h.BasePrice,
		AvgLeadTimeDays: h.AvgLeadTimeDays,
		Certified:       h.Certified,
		Version:         h.Version,
		UpdatedAt:       formatTime(h.UpdatedAt),
	}
	if h.Location != nil {
		it.Location = &geoPointItem{Lat: h.Location.Lat, Lng: h.Location.Lng}
	}
	return it
}

func fromHubItem(it hubItem) entities.Hub {
	h := entities.Hub{
		ID:              it.ID,
		Name:            it.Name,
		Processes:       it.Processes,
		Materials:       it.Materials,
		CurrentLoad:     it.CurrentLoad,
		QualityRating:   it.QualityRating,
		BasePrice:       it.BasePrice,
		AvgLeadTimeDays: it.AvgLeadTimeDays,
		Certified:       it.Certified,
		Version:         it.Version,
		UpdatedAt:       parseTime(it.UpdatedAt),
	}
	if it.Location != nil {
		h.Location = &entities.GeoPoint{Lat: it.Location.Lat, Lng: it.Location.Lng}
	}
	return h
}
