// Command party runs one SMCParty against a broker+dealer pair, given a
// serialised ProtocolSpec and this party's ValueDict.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aquarelle-tech/smc/config"
	"github.com/aquarelle-tech/smc/expr"
	"github.com/aquarelle-tech/smc/field"
	"github.com/aquarelle-tech/smc/party"
	"github.com/aquarelle-tech/smc/protocol"
	"github.com/aquarelle-tech/smc/transport"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Str("service", "party").Logger()
	v := viper.New()
	v.SetEnvPrefix("smc_party")
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "party",
		Short: "Run one SMC participant",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadParty(v)
			if err != nil {
				return err
			}
			return run(cfg, log)
		},
	}
	config.BindPartyFlags(root.Flags(), v)

	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("party run failed")
	}
}

func run(cfg *config.Party, log zerolog.Logger) error {
	field.Modulus = cfg.FieldModulus

	specBytes, err := os.ReadFile(cfg.SpecPath)
	if err != nil {
		return fmt.Errorf("reading protocol spec: %w", err)
	}
	spec, err := protocol.Unmarshal(specBytes)
	if err != nil {
		return fmt.Errorf("parsing protocol spec: %w", err)
	}

	values, err := loadValueDict(cfg.ValuesPath)
	if err != nil {
		return fmt.Errorf("reading value dict: %w", err)
	}

	plog := log.With().Str("client_id", cfg.ClientID).Logger()
	client := transport.NewClient(cfg.ClientID, cfg.BrokerAddr, cfg.DealerAddr, plog)
	p := party.New(cfg.ClientID, spec, values, client, plog)

	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("protocol run failed: %w", err)
	}

	fmt.Printf("%d\n", result.Int64())
	return nil
}

func loadValueDict(path string) (party.ValueDict, error) {
	if path == "" {
		return party.ValueDict{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var asStrings map[string]int64
	if err := json.Unmarshal(raw, &asStrings); err != nil {
		return nil, err
	}
	out := make(party.ValueDict, len(asStrings))
	for id, v := range asStrings {
		out[expr.ID(id)] = v
	}
	return out, nil
}
