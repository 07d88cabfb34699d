package configs

import (
	"log"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// MidtransClient is the shared Snap client. Valid after InitMidtransClient.
var MidtransClient snap.Client

// InitMidtransClient configures the Snap client from the environment.
// Anything other than APP_ENV=production talks to the sandbox.
func InitMidtransClient() {
	payEnv := midtrans.Sandbox
	if LoadENV.AppEnv == "production" {
		payEnv = midtrans.Production
	}

	midtrans.ServerKey = LoadENV.MidtransServerKey
	midtrans.ClientKey = LoadENV.MidtransClientKey
	midtrans.Environment = payEnv

	MidtransClient.New(LoadENV.MidtransServerKey, payEnv)
	log.Printf("✅ Midtrans Snap client ready (%s).", paymentEnvName(payEnv))
}

func paymentEnvName(env midtrans.EnvironmentType) string {
	if env == midtrans.Production {
		return "production"
	}
	return "sandbox"
}
