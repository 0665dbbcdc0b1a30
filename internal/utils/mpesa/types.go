package mpesa

type stkPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

// STKPushResponse acknowledges that the prompt was queued; the actual payment
// result arrives later on the callback URL.
type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

// CallbackEnvelope is the payload Daraja POSTs to the callback URL once the
// payer completes or cancels the STK prompt.
type CallbackEnvelope struct {
	Body struct {
		StkCallback StkCallback `json:"stkCallback"`
	} `json:"Body"`
}

type StkCallback struct {
	MerchantRequestID string           `json:"MerchantRequestID"`
	CheckoutRequestID string           `json:"CheckoutRequestID"`
	ResultCode        int              `json:"ResultCode"`
	ResultDesc        string           `json:"ResultDesc"`
	CallbackMetadata  CallbackMetadata `json:"CallbackMetadata"`
}

type CallbackMetadata struct {
	Item []MetadataItem `json:"Item"`
}

// MetadataItem values are untyped in the wire format: amounts and phone
// numbers arrive as JSON numbers, receipt numbers as strings.
type MetadataItem struct {
	Name  string `json:"Name"`
	Value any    `json:"Value"`
}

// Succeeded reports whether the payer completed the payment.
func (c *StkCallback) Succeeded() bool {
	return c.ResultCode == 0
}

func (c *StkCallback) item(name string) any {
	for _, it := range c.CallbackMetadata.Item {
		if it.Name == name {
			return it.Value
		}
	}
	return nil
}

// ReceiptNumber returns the MpesaReceiptNumber metadata item, or "" when the
// callback carries none (failed payments omit the metadata block).
func (c *StkCallback) ReceiptNumber() string {
	if v, ok := c.item("MpesaReceiptNumber").(string); ok {
		return v
	}
	return ""
}

// Amount returns the paid amount, or 0 when absent.
func (c *StkCallback) Amount() float64 {
	switch v := c.item("Amount").(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	}
	return 0
}

// PayerPhone returns the paying MSISDN as a string, or "" when absent.
func (c *StkCallback) PayerPhone() string {
	switch v := c.item("PhoneNumber").(type) {
	case float64:
		// JSON numbers decode as float64; MSISDNs fit in the 53-bit mantissa.
		return formatMSISDN(int64(v))
	case string:
		return v
	}
	return ""
}

func formatMSISDN(n int64) string {
	if n == 0 {
		return ""
	}
	digits := make([]byte, 0, 12)
	for n > 0 {
		digits = append(digits, byte('0'+n%10))
		n /= 10
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return string(digits)
}
