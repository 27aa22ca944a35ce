package config

import (
	"os"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr        string
	DatabaseURL string
	// MailFrom is the sender address stamped on onboarding and agreement
	// emails. Delivery mechanics live behind the Notifier capability.
	MailFrom string
	// AgreementBaseURL prefixes synthesized agreement document references.
	AgreementBaseURL string
}

// TxTimeout bounds multi-row household transactions when the caller supplies
// no deadline of its own.
var TxTimeout = 5 * time.Second

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("LEASEHOLD_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	mailFrom := os.Getenv("LEASEHOLD_MAIL_FROM")
	if mailFrom == "" {
		mailFrom = "no-reply@leasehold.local"
	}

	agreementBase := os.Getenv("LEASEHOLD_AGREEMENT_BASE_URL")
	if agreementBase == "" {
		agreementBase = "/documents/agreements"
	}

	return Server{
		Addr:             addr,
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		MailFrom:         mailFrom,
		AgreementBaseURL: agreementBase,
	}
}
