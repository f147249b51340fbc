package service

import (
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

var SnapClient snap.Client

// InitMidtrans is called once at bootstrap (sandbox).
func InitMidtrans(serverKey string) {
	SnapClient.New(serverKey, midtrans.Sandbox)
}

// GenerateSnapToken creates a checkout token + redirect URL for one
// subscription order.
func GenerateSnapToken(orderID, plan, email string, amount int64) (string, string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: email,
		},
		Items: &[]midtrans.ItemDetails{{
			ID:    plan,
			Name:  "ClearProof " + plan + " plan (monthly)",
			Price: amount,
			Qty:   1,
		}},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}
