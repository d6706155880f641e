// Command combatfeed serves a simulated combat event stream for the bingo
// overlay. Clients trade the configured password for a JWT at /token and
// subscribe at /feed.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(err)
	}
	hash, err := cfg.hash()
	if err != nil {
		log.Fatal(err)
	}
	if hash == nil {
		log.Println("no FEED_PASSWORD set, /token is disabled")
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	feed := NewServer(cfg.secret(), hash, cfg.TokenTTL)
	sim := NewSimulator(seed, cfg.MineRatio)
	s := &http.Server{
		Addr:         cfg.Addr,
		Handler:      feed.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Println("combatfeed listening on", cfg.Addr)
		if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdown)
	})
	g.Go(func() error { return sim.Run(ctx, cfg.Tick, feed) })
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}
