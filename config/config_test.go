package config_test

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquarelle-tech/smc/config"
)

func TestLoadPartyRequiresClientIDAndSpec(t *testing.T) {
	flags := pflag.NewFlagSet("party", pflag.ContinueOnError)
	v := viper.New()
	config.BindPartyFlags(flags, v)

	_, err := config.LoadParty(v)
	assert.Error(t, err)
}

func TestLoadPartyReadsBoundFlags(t *testing.T) {
	flags := pflag.NewFlagSet("party", pflag.ContinueOnError)
	v := viper.New()
	config.BindPartyFlags(flags, v)

	require.NoError(t, flags.Parse([]string{
		"--client-id=Alice",
		"--spec=/tmp/spec.json",
		"--field-modulus=97",
	}))

	p, err := config.LoadParty(v)
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.ClientID)
	assert.Equal(t, "/tmp/spec.json", p.SpecPath)
	assert.Equal(t, int64(97), p.FieldModulus)
	assert.Equal(t, "http://localhost:9000", p.BrokerAddr)
}

func TestLoadBrokerDefaultsToInMemoryStore(t *testing.T) {
	flags := pflag.NewFlagSet("broker", pflag.ContinueOnError)
	v := viper.New()
	config.BindBrokerFlags(flags, v)
	require.NoError(t, flags.Parse(nil))

	b := config.LoadBroker(v)
	assert.Equal(t, ":9000", b.ListenAddr)
	assert.Equal(t, "", b.DataDir)
}

func TestLoadDealerReadsDataDir(t *testing.T) {
	flags := pflag.NewFlagSet("dealer", pflag.ContinueOnError)
	v := viper.New()
	config.BindDealerFlags(flags, v)
	require.NoError(t, flags.Parse([]string{"--data-dir=/var/lib/smc/dealer"}))

	d := config.LoadDealer(v)
	assert.Equal(t, "/var/lib/smc/dealer", d.DataDir)
}
