package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	"github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gateway talks to Razorpay: intent creation at checkout and HMAC signature
// verification of the payment callback.
type Gateway struct {
	client *razorpay.Client
	secret string
}

func New(keyID, keySecret string) *Gateway {
	return &Gateway{
		client: razorpay.NewClient(keyID, keySecret),
		secret: keySecret,
	}
}

// CreateIntent creates a remote order for the amount converted to the minor
// currency unit, tagged with the local order id in its notes.
func (g *Gateway) CreateIntent(_ context.Context, amount float64, currency string, orderID primitive.ObjectID) (string, error) {
	minor := decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	data := map[string]interface{}{
		"amount":   minor,
		"currency": currency,
		"receipt":  "rcpt_" + uuid.NewString(),
		"notes": map[string]interface{}{
			"orderId": orderID.Hex(),
		},
	}
	remote, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order create: %w", err)
	}
	id, ok := remote["id"].(string)
	if !ok {
		return "", fmt.Errorf("razorpay order create: response missing id")
	}
	return id, nil
}

// VerifySignature recomputes the HMAC-SHA256 of "{orderId}|{paymentId}" with
// the shared secret and compares it with the supplied signature. The field
// order and the pipe delimiter are fixed by the gateway contract.
func (g *Gateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.secret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
