package service

import (
	"errors"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
)

// Gateway creates hosted payment pages and reports their settlement.
type Gateway interface {
	CreateTransaction(orderID string, amount int64, name, email string) (token, redirectURL string, err error)
	IsSettled(orderID string) (bool, error)
}

// MidtransGateway issues Snap transactions and checks them through the
// core API.
type MidtransGateway struct {
	client snap.Client
	core   coreapi.Client
}

// NewMidtransGateway returns nil when no server key is configured.
func NewMidtransGateway(serverKey string, production bool) *MidtransGateway {
	if serverKey == "" {
		return nil
	}
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	g := &MidtransGateway{}
	g.client.New(serverKey, env)
	g.core.New(serverKey, env)
	return g
}

func (g *MidtransGateway) CreateTransaction(orderID string, amount int64, name, email string) (string, string, error) {
	if amount <= 0 {
		return "", "", errors.New("invalid gross amount")
	}
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: name,
			Email: email,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:       orderID,
			Price:    amount,
			Qty:      1,
			Name:     truncate("School fee "+name, 50),
			Category: "FEE",
		}},
	}
	resp, merr := g.client.CreateTransaction(req)
	if merr != nil {
		return "", "", merr
	}
	return resp.Token, resp.RedirectURL, nil
}

// IsSettled asks Midtrans for the authoritative status; notification bodies
// are never trusted on their own.
func (g *MidtransGateway) IsSettled(orderID string) (bool, error) {
	resp, merr := g.core.CheckTransaction(orderID)
	if merr != nil {
		return false, merr
	}
	switch resp.TransactionStatus {
	case "settlement":
		return true, nil
	case "capture":
		return resp.FraudStatus == "accept", nil
	default:
		return false, nil
	}
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
