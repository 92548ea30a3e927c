package kafka

import "strings"

// SASL mechanisms understood by NewProducer.
const (
	MechanismPlain       = "PLAIN"
	MechanismScramSHA256 = "SCRAM-SHA-256"
	MechanismScramSHA512 = "SCRAM-SHA-512"
)

// Config holds the broker connection settings for the guest risk producer.
type Config struct {
	ClientID string
	Brokers  []string

	SASLMechanism string
	SASLUsername  string
	SASLPassword  string

	TLS         bool
	SASLEnabled bool
}

// Enabled reports whether any broker is configured.
func (c Config) Enabled() bool { return len(c.Brokers) > 0 }

// ParseBrokers splits a comma-separated broker list, dropping blanks.
func ParseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
