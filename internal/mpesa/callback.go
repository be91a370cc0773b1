package mpesa

import (
	"fmt"
	"time"
)

// CallbackBody is the inbound callback envelope posted by the gateway.
type CallbackBody struct {
	Body struct {
		STKCallback STKCallback `json:"stkCallback"`
	} `json:"Body"`
}

// STKCallback reports the outcome of a previously initiated push.
// CallbackMetadata is only present on success and may be partial.
type STKCallback struct {
	MerchantRequestID string `json:"MerchantRequestID"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
	ResultCode        int    `json:"ResultCode"`
	ResultDesc        string `json:"ResultDesc"`
	CallbackMetadata  struct {
		Item []MetadataItem `json:"Item"`
	} `json:"CallbackMetadata"`
}

// MetadataItem is one name/value pair in the callback metadata list. Value
// types vary by name (receipt numbers are strings, dates and amounts arrive
// as JSON numbers), so Value stays untyped.
type MetadataItem struct {
	Name  string      `json:"Name"`
	Value interface{} `json:"Value"`
}

// Succeeded reports whether the push completed with a successful charge.
func (c *STKCallback) Succeeded() bool {
	return c.ResultCode == 0
}

// ReceiptNumber extracts the MpesaReceiptNumber metadata item, or "" when
// absent.
func (c *STKCallback) ReceiptNumber() string {
	for _, item := range c.CallbackMetadata.Item {
		if item.Name == "MpesaReceiptNumber" {
			if s, ok := item.Value.(string); ok {
				return s
			}
			return fmt.Sprintf("%v", item.Value)
		}
	}
	return ""
}

// TransactionTime extracts and parses the TransactionDate metadata item,
// which arrives as a numeric YYYYMMDDHHmmss value. The second return is false
// when the item is missing or malformed.
func (c *STKCallback) TransactionTime() (time.Time, bool) {
	for _, item := range c.CallbackMetadata.Item {
		if item.Name != "TransactionDate" {
			continue
		}
		var raw string
		switch v := item.Value.(type) {
		case string:
			raw = v
		case float64:
			raw = fmt.Sprintf("%.0f", v)
		default:
			return time.Time{}, false
		}
		t, err := time.Parse(timestampLayout, raw)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}
