package request

import (
	"testing"

	"qutlas/internal/domain/entities"
	"qutlas/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartRequest_ToEntity(t *testing.T) {
	score := 87.5
	r := PartRequest{
		TemplateID:             " bracket-l ",
		Quantity:               10,
		Material:               "Aluminum 6061-T6",
		ManufacturabilityScore: &score,
		Design:                 &DesignRequest{Bucket: "designs", Key: "cust-1/bracket.step"},
		DeliveryLocation:       &GeoPointRequest{Lat: -23.55, Lng: -46.63},
	}
	got, err := r.ToEntity()
	require.NoError(t, err)
	assert.Equal(t, "bracket-l", got.TemplateID)
	assert.Equal(t, 87.5, got.ManufacturabilityScore)
	require.NotNil(t, got.Design)
	assert.Equal(t, "designs/cust-1/bracket.step", got.Design.String())
	assert.Equal(t, &entities.GeoPoint{Lat: -23.55, Lng: -46.63}, got.DeliveryLocation)
}

func TestPartRequest_ToEntityRejectsTraversal(t *testing.T) {
	score := 50.0
	r := PartRequest{TemplateID: "bracket-l", Quantity: 1, ManufacturabilityScore: &score, Design: &DesignRequest{Bucket: "designs", Key: "../etc/passwd"}}
	_, err := r.ToEntity()
	assert.True(t, errs.Is(err, errs.ErrInvalidInput))
}

func TestUpdateJobRequest_ToPatchNormalizesStatus(t *testing.T) {
	s := " Cancelled "
	p := UpdateJobRequest{Status: &s}.ToPatch()
	require.NotNil(t, p.Status)
	assert.Equal(t, entities.JobStatusCancelled, *p.Status)
	assert.Nil(t, p.Note)
}

func TestJobProgressRequest_ToPatch(t *testing.T) {
	s, carrier := "IN_PROGRESS", "DHL"
	p := JobProgressRequest{Status: &s, Carrier: &carrier}.ToPatch()
	require.NotNil(t, p.Status)
	assert.Equal(t, entities.JobStatusInProgress, *p.Status)
	require.NotNil(t, p.Carrier)
	assert.Equal(t, "DHL", *p.Carrier)
	assert.Nil(t, p.TrackingNumber)
}

func TestPaymentNotificationRequest_ResolvePaymentID(t *testing.T) {
	empty := func(string) string { return "" }
	query := func(values map[string]string) func(string) string {
		return func(k string) string { return values[k] }
	}

	body := PaymentNotificationRequest{Type: "payment"}
	body.Data.ID = "123"
	assert.Equal(t, "123", body.ResolvePaymentID(empty))

	assert.Equal(t, "456", PaymentNotificationRequest{}.ResolvePaymentID(query(map[string]string{"type": "payment", "data.id": "456"})))
	assert.Equal(t, "789", PaymentNotificationRequest{}.ResolvePaymentID(query(map[string]string{"topic": "payment", "id": "789"})))
	assert.Empty(t, PaymentNotificationRequest{}.ResolvePaymentID(query(map[string]string{"topic": "merchant_order", "id": "1"})))
	assert.Empty(t, PaymentNotificationRequest{}.ResolvePaymentID(empty))
}
