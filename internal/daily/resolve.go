package daily

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Picker chooses a local solution.
type Picker interface {
	Random() (string, error)
}

// Sources are the collaborators Resolve consults.
type Sources struct {
	Provider Provider
	Cache    Cache
	Words    Picker
	Now      func() time.Time
}

// Resolution is the solution chosen for a session.
type Resolution struct {
	Solution string
	// Offline is true when the solution is a local random pick.
	Offline bool
	// Reason is the provider failure that forced offline play, if any.
	Reason error
}

// Resolve picks the session's solution.
//
// With offline set, a local random word is used. Otherwise a cached solution
// for today wins, then the provider; a successful fetch is cached. When the
// provider fails the session falls back to a local random word and is
// flagged offline, with the failure in Reason.
func Resolve(ctx context.Context, src Sources, offline bool) (Resolution, error) {
	if offline || src.Provider == nil {
		return local(src, nil)
	}

	now := time.Now
	if src.Now != nil {
		now = src.Now
	}
	day := now()
	key := DateKey(day)

	if src.Cache != nil {
		word, ok, err := src.Cache.Get(ctx, key)
		switch {
		case err != nil:
			log.Warn().Err(err).Str("date", key).Msg("solution cache read failed")
		case ok:
			log.Debug().Str("date", key).Msg("solution from cache")
			return Resolution{Solution: word}, nil
		}
	}

	word, err := src.Provider.Solution(ctx, day)
	if err != nil {
		log.Warn().Err(err).Str("date", key).Msg("remote solution unavailable, playing offline")
		return local(src, err)
	}
	if src.Cache != nil {
		if err := src.Cache.Put(ctx, key, word); err != nil {
			log.Warn().Err(err).Str("date", key).Msg("solution cache write failed")
		}
	}
	return Resolution{Solution: word}, nil
}

func local(src Sources, reason error) (Resolution, error) {
	word, err := src.Words.Random()
	if err != nil {
		return Resolution{}, fmt.Errorf("daily: local solution: %w", err)
	}
	return Resolution{Solution: word, Offline: true, Reason: reason}, nil
}
