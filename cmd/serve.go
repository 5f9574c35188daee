package cmd

import (
	"context"
	"fmt"
	"github.com/lordralex/ballot/api/database"
	"github.com/lordralex/ballot/api/env"
	"github.com/lordralex/ballot/api/logger"
	"github.com/lordralex/ballot/chain"
	"github.com/lordralex/ballot/ledger"
	"github.com/lordralex/ballot/ledger/gormstore"
	"github.com/lordralex/ballot/modules"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"os"
	"os/signal"
	"strings"
	"syscall"
)

var serveCmd = &cobra.Command{
	Use:   "serve [modules...]",
	Short: "Start the node and the given modules",
	Long: "Start the node and the given modules. Use \"all\" to load every module. Available modules: " +
		strings.Join(modules.Available(), ", "),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, args []string) error {
	defer func() {
		if err := logger.Close(); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error closing logger: %s", err.Error())
		}
	}()

	db, err := database.Get()
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Err().Printf("Error closing database: %s\n", err)
		}
	}()

	store, err := gormstore.New(db)
	if err != nil {
		return errors.Wrap(err, "preparing ledger store")
	}

	l := ledger.New(ledger.NewCachedStore(store, env.GetIntOr("ledger.cache.size", 256)))
	node := chain.NewNode(l, env.GetIntOr("pool.queue.size", 1024),
		chain.WithReceiptStore(store),
		chain.WithReceiptCache(env.GetIntOr("pool.receipts.cache", 4096)))
	node.Start()
	defer node.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err = modules.Load(ctx, node, args); err != nil {
		return err
	}

	// Wait for a CTRL-C
	logger.Out().Println("Now running. Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.Out().Println("Shutting down")
	return nil
}
