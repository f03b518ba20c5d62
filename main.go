package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/robalobadob/wordle/apps/go-term/internal/canvas"
	"github.com/robalobadob/wordle/apps/go-term/internal/config"
	"github.com/robalobadob/wordle/apps/go-term/internal/daily"
	"github.com/robalobadob/wordle/apps/go-term/internal/session"
	"github.com/robalobadob/wordle/apps/go-term/internal/store"
	"github.com/robalobadob/wordle/apps/go-term/internal/words"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, canvas.Paint(canvas.RedBold, err.Error()))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var offline bool
	cmd := &cobra.Command{
		Use:           "wordle-term",
		Short:         "Guess the hidden five-letter word in six tries",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), offline)
		},
	}
	cmd.Flags().BoolVar(&offline, "offline", false, "play a random local word instead of today's solution")
	// --OFFLINE and --Offline are accepted too.
	cmd.SetGlobalNormalizationFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ToLower(name))
	})
	return cmd
}

func run(ctx context.Context, offline bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	closeLog, err := cfg.ConfigureLogging()
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	list, err := words.Load(cfg.WordsFile)
	if err != nil {
		log.Error().Err(err).Msg("failed to load word list")
		return err
	}
	log.Debug().Int("words", list.Len()).Msg("word list loaded")

	var cache daily.Cache = store.NewMemory()
	if cfg.SolutionCache != config.NoCache {
		sc, err := daily.OpenSQLiteCache(cfg.SolutionCache)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.SolutionCache).Msg("solution cache unavailable, keeping it in memory")
		} else {
			defer sc.Close()
			cache = sc
		}
	}

	res, err := daily.Resolve(ctx, daily.Sources{
		Provider: daily.NewHTTPProvider(cfg.SolutionURL, cfg.SolutionTimeout, cfg.SolutionRetries),
		Cache:    cache,
		Words:    list,
	}, offline)
	if err != nil {
		return err
	}
	if res.Reason != nil {
		fmt.Println(canvas.Paint(canvas.RedBold, res.Reason.Error()+". A random solution will be used."))
	}

	term, err := canvas.NewStdTerminal(os.Stdout, os.Stdin)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize terminal")
		return err
	}
	c := canvas.New(term)
	release := cfg.HoldConsoleLogs(os.Stderr)
	if err := c.Initialize(res.Offline); err != nil {
		release()
		log.Error().Err(err).Msg("failed to initialize terminal")
		return err
	}

	result, err := session.New(res.Solution, list, c, os.Stdin).Run(ctx)
	release()
	if err != nil {
		log.Error().Err(err).Int("attempts", result.Attempts).Msg("session aborted")
		return err
	}
	log.Debug().Bool("won", result.Won).Int("attempts", result.Attempts).Bool("offline", res.Offline).Msg("session finished")
	return nil
}
