// Command dealer starts the trusted-third-party HTTP server that hands out
// Beaver triples.
package main

import (
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aquarelle-tech/smc/config"
	"github.com/aquarelle-tech/smc/storage"
	"github.com/aquarelle-tech/smc/transport"
	"github.com/aquarelle-tech/smc/ttp"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Str("service", "dealer").Logger()
	v := viper.New()
	v.SetEnvPrefix("smc_dealer")
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "dealer",
		Short: "Run the SMC trusted triple dealer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadDealer(v)
			return run(cfg, log)
		},
	}
	config.BindDealerFlags(root.Flags(), v)

	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("dealer exited")
	}
}

func run(cfg *config.Dealer, log zerolog.Logger) error {
	var auditor ttp.Auditor
	if cfg.DataDir != "" {
		bs, err := storage.NewBadgerStore(cfg.DataDir)
		if err != nil {
			return err
		}
		defer bs.Close()
		auditor = storage.NewTripleAuditor(bs, log)
		log.Info().Str("data_dir", cfg.DataDir).Msg("triple audit log persisted to badger")
	}

	dealer := ttp.New(auditor, log)
	server := transport.NewDealerServer(dealer, log)
	log.Info().Str("listen_addr", cfg.ListenAddr).Msg("dealer listening")
	return http.ListenAndServe(cfg.ListenAddr, server.Handler())
}
