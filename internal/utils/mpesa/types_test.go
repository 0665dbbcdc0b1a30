package mpesa

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

const successCallbackJSON = `{
  "Body": {
    "stkCallback": {
      "MerchantRequestID": "29115-34620561-1",
      "CheckoutRequestID": "ws_CO_191220191020363925",
      "ResultCode": 0,
      "ResultDesc": "The service request is processed successfully.",
      "CallbackMetadata": {
        "Item": [
          {"Name": "Amount", "Value": 15000.00},
          {"Name": "MpesaReceiptNumber", "Value": "NLJ7RT61SV"},
          {"Name": "TransactionDate", "Value": 20191219102115},
          {"Name": "PhoneNumber", "Value": 254708374149}
        ]
      }
    }
  }
}`

const cancelledCallbackJSON = `{
  "Body": {
    "stkCallback": {
      "MerchantRequestID": "29115-34620561-1",
      "CheckoutRequestID": "ws_CO_191220191020363925",
      "ResultCode": 1032,
      "ResultDesc": "Request cancelled by user."
    }
  }
}`

func TestCallbackEnvelopeSuccess(t *testing.T) {
	var env CallbackEnvelope
	require.NoError(t, json.Unmarshal([]byte(successCallbackJSON), &env))

	cb := env.Body.StkCallback
	require.True(t, cb.Succeeded())
	require.Equal(t, "ws_CO_191220191020363925", cb.CheckoutRequestID)
	require.Equal(t, "NLJ7RT61SV", cb.ReceiptNumber())
	require.Equal(t, 15000.0, cb.Amount())
	require.Equal(t, "254708374149", cb.PayerPhone())
}

func TestCallbackEnvelopeCancelled(t *testing.T) {
	var env CallbackEnvelope
	require.NoError(t, json.Unmarshal([]byte(cancelledCallbackJSON), &env))

	cb := env.Body.StkCallback
	require.False(t, cb.Succeeded())
	// Failed callbacks omit the metadata block entirely.
	require.Empty(t, cb.ReceiptNumber())
	require.Zero(t, cb.Amount())
	require.Empty(t, cb.PayerPhone())
}
