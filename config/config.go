// Package config centralises the configuration surface every binary needs:
// field modulus, per-party host/port/client id, and the path to a
// serialised ProtocolSpec. cmd/broker, cmd/dealer and cmd/party each build
// one of these from flags and environment variables via viper; cmd/driver
// takes its own flags and does not use this package.
package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Party holds everything cmd/party needs to run one participant.
type Party struct {
	ClientID     string
	BrokerAddr   string
	DealerAddr   string
	SpecPath     string
	ValuesPath   string
	FieldModulus int64
}

// BindPartyFlags registers the flags cmd/party accepts and binds them to v,
// following the cobra+viper pairing the pack's luxfi-threshold CLI uses.
func BindPartyFlags(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("client-id", "", "this party's client id (must match an entry in the protocol spec)")
	flags.String("broker-addr", "http://localhost:9000", "broker base URL")
	flags.String("dealer-addr", "http://localhost:9100", "dealer base URL")
	flags.String("spec", "", "path to a serialised ProtocolSpec")
	flags.String("values", "", "path to this party's ValueDict (JSON: secret id -> integer)")
	flags.Int64("field-modulus", 2003, "prime modulus p of the field Z/pZ")

	_ = v.BindPFlags(flags)
}

// LoadParty reads bound flags/env into a Party, validating the required
// fields are present.
func LoadParty(v *viper.Viper) (*Party, error) {
	p := &Party{
		ClientID:     v.GetString("client-id"),
		BrokerAddr:   v.GetString("broker-addr"),
		DealerAddr:   v.GetString("dealer-addr"),
		SpecPath:     v.GetString("spec"),
		ValuesPath:   v.GetString("values"),
		FieldModulus: v.GetInt64("field-modulus"),
	}

	if p.ClientID == "" {
		return nil, fmt.Errorf("config: --client-id is required")
	}
	if p.SpecPath == "" {
		return nil, fmt.Errorf("config: --spec is required")
	}

	return p, nil
}

// Broker holds everything cmd/broker needs.
type Broker struct {
	ListenAddr string
	DataDir    string
}

// BindBrokerFlags registers cmd/broker's flags.
func BindBrokerFlags(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("listen-addr", ":9000", "address the broker listens on")
	flags.String("data-dir", "", "badger data directory (empty uses an in-memory store)")
	_ = v.BindPFlags(flags)
}

// LoadBroker reads bound flags/env into a Broker.
func LoadBroker(v *viper.Viper) *Broker {
	return &Broker{
		ListenAddr: v.GetString("listen-addr"),
		DataDir:    v.GetString("data-dir"),
	}
}

// Dealer holds everything cmd/dealer needs.
type Dealer struct {
	ListenAddr string
	DataDir    string
}

// BindDealerFlags registers cmd/dealer's flags.
func BindDealerFlags(flags *pflag.FlagSet, v *viper.Viper) {
	flags.String("listen-addr", ":9100", "address the dealer listens on")
	flags.String("data-dir", "", "badger data directory for the triple audit log (empty disables auditing)")
	_ = v.BindPFlags(flags)
}

// LoadDealer reads bound flags/env into a Dealer.
func LoadDealer(v *viper.Viper) *Dealer {
	return &Dealer{
		ListenAddr: v.GetString("listen-addr"),
		DataDir:    v.GetString("data-dir"),
	}
}
