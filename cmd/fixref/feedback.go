package main

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 userFeedback provides user-friendly feedback about the batch run
type userFeedback struct {
	log zerolog.Logger // for debug/error logging
}

// 🎯 newUserFeedback creates a new feedback printer
func newUserFeedback(ctx context.Context) *userFeedback {
	return &userFeedback{
		log: *zerolog.Ctx(ctx),
	}
}

// 📊 Summary prints the end-of-run totals
func (u *userFeedback) Summary(rewritten, unchanged, failed int, dryRun bool) {
	verb := "rewritten"
	if dryRun {
		verb = "would be rewritten"
	}

	msg := fmt.Sprintf("%d %s, %d unchanged, %d failed", rewritten, verb, unchanged, failed)
	if failed > 0 {
		pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️"}).Println(msg)
		u.log.Warn().Msg(msg)
		return
	}

	pterm.Success.WithPrefix(pterm.Prefix{Text: "✅"}).Println(msg)
	u.log.Info().Msg(msg)
}

// ❌ Failure prints a fatal setup failure
func (u *userFeedback) Failure(description string, err error) {
	pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(description)
	if err != nil {
		pterm.Error.Println(err)
	}
	u.log.Error().Err(err).Msg(description)
}
