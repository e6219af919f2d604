// Command silo runs the turning-grille cracking benchmark: it selects one
// of sixteen concurrency variants from its single command-line argument,
// brute-forces every grille for the cipher text in encrypted_msg.txt, and
// exits 0 if decrypted_msg.txt's clear text turns up among the reported
// candidates.
package main

import (
	"os"

	"code.hybscloud.com/silo/internal/app"
	"code.hybscloud.com/silo/internal/errs"
	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()

	cfg, err := app.ParseArgs(os.Args[1:])
	if err != nil {
		ev := log.Error()
		if kind, ok := errs.KindOf(err); ok {
			ev = ev.Str("kind", string(kind))
		}
		ev.Msg(err.Error())
		os.Exit(1)
	}

	os.Exit(app.Run(cfg, log))
}
