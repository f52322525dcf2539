package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"code.wagernet.io/wager/broker"
	"code.wagernet.io/wager/config"
	"code.wagernet.io/wager/ledger"
	"code.wagernet.io/wager/logging"
	"code.wagernet.io/wager/match"
	"code.wagernet.io/wager/store"
	"code.wagernet.io/wager/subscribers"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the node until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := newLogger()
			defer log.AtExit()

			cfg, err := config.Read(rootFlags.home)
			if err != nil {
				log.Error("could not load configuration", logging.Error(err))
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			bkr := broker.New(ctx, log, cfg.Broker)
			bkr.Subscribe(subscribers.NewLogSub(ctx, log))

			// construction order matters: the ledger exists first, the
			// store binds onto it, the match engine comes last
			ldgr := ledger.New(log, cfg.Ledger, cfg.Owner)
			pegAsset := newDevPegAsset()
			str := store.New(log, cfg.Store, cfg.Owner, pegAsset, ldgr, bkr)
			pegAsset.bindStore(str.Party())
			if err := ldgr.SetStore(cfg.Owner, str.Party()); err != nil {
				log.Error("could not bind store on ledger", logging.Error(err))
				return err
			}
			eng := match.New(log, cfg.Match, ldgr, bkr, cfg.Owner, cfg.Gateway)

			log.Info("node ready",
				logging.Party("owner", cfg.Owner),
				logging.Party("gateway", cfg.Gateway),
				logging.Party("store", str.Party()),
				logging.Party("escrow", eng.EscrowParty()),
			)

			<-ctx.Done()
			log.Info("shutting down")
			return nil
		},
	}
}
