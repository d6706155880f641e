//go:build !android

package main

import (
	"context"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/j3kstrum/runelite-bingo/internal/app"
	"github.com/j3kstrum/runelite-bingo/internal/assets"
	"github.com/j3kstrum/runelite-bingo/internal/audio"
	"github.com/j3kstrum/runelite-bingo/internal/audio/device"
	"github.com/j3kstrum/runelite-bingo/internal/config"
	"github.com/j3kstrum/runelite-bingo/internal/game"
	"github.com/j3kstrum/runelite-bingo/internal/overlay"
	"github.com/j3kstrum/runelite-bingo/internal/store"
	"github.com/j3kstrum/runelite-bingo/internal/tasks"
)

func main() {
	log.Println("Desktop main() starting...")
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	st, err := store.Open(cfg)
	if err != nil {
		log.Fatal(err)
	}

	sprites := assets.New(cfg.AssetDir)
	sprites.Preload(overlay.UISprites...)
	for _, t := range tasks.Targets() {
		sprites.Preload(t.Icon)
	}

	var sink audio.Sink
	var spk *device.Speaker
	if cfg.Sound {
		if spk, err = device.Open(audio.SampleRate); err != nil {
			log.Printf("audio disabled: %v", err)
		} else {
			sink = spk
		}
	}

	sess, err := app.New(context.Background(), app.Options{
		Store:             st,
		Sprites:           sprites,
		Sink:              sink,
		Sound:             cfg.Sound,
		MinDamageFraction: tasks.Fraction(cfg.MinDamageFraction),
		Seed:              cfg.Seed,
	})
	if err != nil {
		_ = st.Close()
		log.Fatal(err)
	}
	sess.Overlay().Show()

	g := game.New(game.Options{
		Session:   sess,
		FeedURL:   cfg.FeedURL,
		FeedToken: cfg.FeedToken,
		OnClose: func() {
			if spk != nil {
				spk.Close()
			}
		},
	})
	defer g.Close()
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
