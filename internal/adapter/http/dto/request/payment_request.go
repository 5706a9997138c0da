package request

import "strings"

// PaymentNotificationRequest is the Mercado Pago webhook body. Only the
// notification type and payment id are read; the status is always fetched
// from the gateway.
type PaymentNotificationRequest struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// ResolvePaymentID prefers the JSON body and falls back to the query string
// forms the gateway also uses (?type=payment&data.id=1 and ?topic=payment&id=1).
func (r PaymentNotificationRequest) ResolvePaymentID(query func(string) string) string {
	kind := strings.ToLower(strings.TrimSpace(r.Type))
	if kind == "" {
		kind = strings.ToLower(strings.TrimSpace(query("type")))
	}
	if kind == "" {
		kind = strings.ToLower(strings.TrimSpace(query("topic")))
	}
	if kind != "" && kind != "payment" {
		return ""
	}
	for _, v := range []string{r.Data.ID, query("data.id"), query("id")} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
