// Command order-watch follows the authenticated user's orders and prints a
// line for every status transition, the way the storefront's order status
// page tracks them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xenking/eats-storefront/internal/client"
	"github.com/xenking/eats-storefront/internal/domain/order"
	"github.com/xenking/eats-storefront/internal/poller"
)

func main() {
	var (
		backendURL string
		token      string
		interval   time.Duration
	)

	flag.StringVar(&backendURL, "backend-url", "", "ordering backend base URL (or BACKEND_URL env)")
	flag.StringVar(&token, "token", "", "bearer token for the backend (or BACKEND_TOKEN env)")
	flag.DurationVar(&interval, "interval", 5*time.Second, "poll interval")
	flag.Parse()

	if backendURL == "" {
		backendURL = os.Getenv("BACKEND_URL")
	}
	if token == "" {
		token = os.Getenv("BACKEND_TOKEN")
	}
	if backendURL == "" || token == "" {
		slog.Error("backend URL and token are required")
		os.Exit(1)
	}

	backend, err := client.New(client.Config{
		BaseURL: backendURL,
		Tokens:  client.StaticToken(token),
	})
	if err != nil {
		slog.Error("create backend client", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	lg, err := zap.NewProduction()
	if err != nil {
		slog.Error("create logger", "err", err)
		os.Exit(1)
	}
	defer func() { _ = lg.Sync() }()

	var printInitial sync.Once
	p := poller.New(backend, poller.Config{Interval: interval}, lg,
		func(orders []order.Order) {
			// Print the full list once so the watcher starts with context.
			printInitial.Do(func() {
				for _, o := range orders {
					printOrder(o, order.InfoFor(o.Status))
				}
			})
		},
		func(ch poller.Change) {
			info := order.InfoFor(ch.To)
			fmt.Printf("%s: %s -> %s\n", ch.Order.ID, ch.From, ch.To)
			printOrder(ch.Order, info)
		},
	)

	slog.Info("watching orders", "backend", backendURL, "interval", interval.String())
	p.Run(ctx)
}

func printOrder(o order.Order, info order.StatusInfo) {
	fmt.Printf("  %s  %-32s  %3d%%  eta %s\n",
		o.ID, info.Label, info.Progress, o.ExpectedDeliveryClock())
}
