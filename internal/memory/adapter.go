package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"insight-engine/pkg/log"
)

const sessionCacheSize = 512

// Adapter fronts the two storage classes with one interface. Reads
// degrade to "no context" instead of failing the caller; writes must be
// acknowledged by the store before Adapter reports success. Expiry is
// applied on write, never enforced by callers.
type Adapter struct {
	kv      KVStore
	durable DurableStore
	cache   *expirable.LRU[string, []Turn]
	cfg     Config
	l       log.Logger
}

// New creates the memory adapter. Either store may be nil; the adapter
// degrades accordingly.
func New(kv KVStore, durable DurableStore, cfg Config, l log.Logger) *Adapter {
	def := DefaultConfig()
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = def.MaxTurns
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = def.SessionTTL
	}
	if cfg.PreferenceTTL <= 0 {
		cfg.PreferenceTTL = def.PreferenceTTL
	}
	if cfg.MaxTurnAge <= 0 {
		cfg.MaxTurnAge = def.MaxTurnAge
	}
	return &Adapter{
		kv:      kv,
		durable: durable,
		cache:   expirable.NewLRU[string, []Turn](sessionCacheSize, nil, cfg.SessionTTL),
		cfg:     cfg,
		l:       l,
	}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

func userKey(userID string) string {
	return "user:" + userID
}

// LoadContext returns the session's bounded conversation window with a
// continuity score against the current query. A store failure returns an
// empty context together with the error so the caller can record a
// diagnostic; it never blocks the pipeline.
func (a *Adapter) LoadContext(ctx context.Context, sessionID, queryText string) (ConversationContext, error) {
	turns, err := a.loadTurns(ctx, sessionID)
	if err != nil {
		return ConversationContext{}, err
	}

	turns = a.trimWindow(turns)
	return ConversationContext{
		Turns:      turns,
		Continuity: continuityScore(queryText, turns),
	}, nil
}

func (a *Adapter) loadTurns(ctx context.Context, sessionID string) ([]Turn, error) {
	if cached, ok := a.cache.Get(sessionKey(sessionID)); ok {
		return cached, nil
	}

	if a.kv == nil {
		return nil, nil
	}

	raw, err := a.kv.Get(ctx, sessionKey(sessionID))
	if err == ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session read failed: %w", err)
	}

	var turns []Turn
	if err := json.Unmarshal(raw, &turns); err != nil {
		// A corrupt session entry is treated as no context.
		a.l.Warnf(ctx, "LoadContext: dropping corrupt session %s: %v", sessionID, err)
		return nil, nil
	}
	return turns, nil
}

// trimWindow applies the retention window: newest MaxTurns entries no
// older than MaxTurnAge.
func (a *Adapter) trimWindow(turns []Turn) []Turn {
	cutoff := time.Now().Add(-a.cfg.MaxTurnAge)
	kept := make([]Turn, 0, len(turns))
	for _, t := range turns {
		if t.At.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) > a.cfg.MaxTurns {
		kept = kept[len(kept)-a.cfg.MaxTurns:]
	}
	return kept
}

// SaveTurn appends the finished turn to the session window and persists
// a durable history record plus the learned preference signal for the
// user. Write failures are returned for diagnostics but leave any
// already-acknowledged writes in place.
func (a *Adapter) SaveTurn(ctx context.Context, sessionID, userID string, turn Turn) error {
	turns, _ := a.loadTurns(ctx, sessionID)
	turns = a.trimWindow(append(turns, turn))

	a.cache.Add(sessionKey(sessionID), turns)

	var firstErr error
	if a.kv != nil {
		raw, err := json.Marshal(turns)
		if err == nil {
			err = a.kv.Put(ctx, sessionKey(sessionID), raw, a.cfg.SessionTTL)
		}
		if err != nil {
			firstErr = fmt.Errorf("session write failed: %w", err)
		}
	}

	if a.durable != nil && userID != "" {
		if err := a.appendHistory(ctx, userID, turn); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

func (a *Adapter) appendHistory(ctx context.Context, userID string, turn Turn) error {
	payload, err := json.Marshal(turn)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	rec := Record{
		Key:       userKey(userID),
		Kind:      KindSessionSummary,
		Payload:   payload,
		CreatedAt: now,
		ExpiresAt: now.Add(a.cfg.PreferenceTTL),
	}
	if err := a.durable.Append(ctx, rec); err != nil {
		return fmt.Errorf("history append failed: %w", err)
	}
	return nil
}

// Preferences derives the user's learned profile from their durable
// history. Unavailable history degrades to an empty profile.
func (a *Adapter) Preferences(ctx context.Context, userID string) (PreferenceProfile, error) {
	profile := PreferenceProfile{CategoryCounts: make(map[string]int)}
	if a.durable == nil || userID == "" {
		return profile, nil
	}

	records, err := a.durable.Query(ctx, userKey(userID), 100)
	if err != nil {
		return profile, fmt.Errorf("preference read failed: %w", err)
	}

	for _, rec := range records {
		if rec.Kind != KindSessionSummary {
			continue
		}
		var turn Turn
		if err := json.Unmarshal(rec.Payload, &turn); err != nil {
			continue
		}
		if turn.Category != "" {
			profile.CategoryCounts[turn.Category]++
		}
	}
	return profile, nil
}
