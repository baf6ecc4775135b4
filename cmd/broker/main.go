// Command broker starts the HTTP mailbox/pubsub server parties and the
// dealer talk to.
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
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Str("service", "broker").Logger()
	v := viper.New()
	v.SetEnvPrefix("smc_broker")
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:   "broker",
		Short: "Run the SMC transport broker",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadBroker(v)
			return run(cfg, log)
		},
	}
	config.BindBrokerFlags(root.Flags(), v)

	if err := root.Execute(); err != nil {
		log.Fatal().Err(err).Msg("broker exited")
	}
}

func run(cfg *config.Broker, log zerolog.Logger) error {
	var store storage.Store
	if cfg.DataDir != "" {
		bs, err := storage.NewBadgerStore(cfg.DataDir)
		if err != nil {
			return err
		}
		defer bs.Close()
		store = bs
		log.Info().Str("data_dir", cfg.DataDir).Msg("mailbox persisted to badger")
	} else {
		store = storage.NewMemoryStore()
		log.Info().Msg("mailbox held in memory only")
	}

	broker := transport.NewBroker(store, log)
	log.Info().Str("listen_addr", cfg.ListenAddr).Msg("broker listening")
	return http.ListenAndServe(cfg.ListenAddr, broker.Handler())
}
