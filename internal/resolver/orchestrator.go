package resolver

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ent0n29/lexassist/internal/conversation"
	"github.com/ent0n29/lexassist/internal/legal"
	"github.com/ent0n29/lexassist/internal/observability"
	"github.com/ent0n29/lexassist/internal/policy"
	"github.com/ent0n29/lexassist/internal/reliability"
)

// DefaultUserID is used for queries that arrive without a user.
const DefaultUserID = "anonymous"

// Answer is what the orchestrator produced for a query. Tier and Category are
// for logs and metrics; callers only ever show Text.
type Answer struct {
	Text     string
	Tier     Tier
	Category legal.Category
}

// Options tune orchestrator behavior.
type Options struct {
	DefaultUserID string
	// RecordTiers lists the tiers whose answers are appended to history.
	// Empty means local only. The ultimate tier is never recorded.
	RecordTiers []Tier
	RedactPII   bool
}

// Orchestrator runs resolvers in order and falls back to the persona-aware
// heuristic when all of them fail. Queries from the same user are serialized so
// each one sees the history written by the previous one.
type Orchestrator struct {
	resolvers     []Resolver
	store         conversation.Store
	logger        *zap.Logger
	metrics       *observability.Metrics
	locks         *keyedMutex
	defaultUserID string
	record        map[Tier]bool
	redactPII     bool
}

func New(
	store conversation.Store,
	resolvers []Resolver,
	logger *zap.Logger,
	metrics *observability.Metrics,
	opts Options,
) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	defaultUserID := strings.TrimSpace(opts.DefaultUserID)
	if defaultUserID == "" {
		defaultUserID = DefaultUserID
	}
	record := map[Tier]bool{TierLocal: true}
	if len(opts.RecordTiers) > 0 {
		record = make(map[Tier]bool, len(opts.RecordTiers))
		for _, t := range opts.RecordTiers {
			if t != TierUltimate {
				record[t] = true
			}
		}
	}
	return &Orchestrator{
		resolvers:     resolvers,
		store:         store,
		logger:        logger.Named("resolver"),
		metrics:       metrics,
		locks:         newKeyedMutex(),
		defaultUserID: defaultUserID,
		record:        record,
		redactPII:     opts.RedactPII,
	}
}

// Respond always returns an answer; tier failures are logged and absorbed.
func (o *Orchestrator) Respond(ctx context.Context, q Query) Answer {
	q.UserID = o.normalizeUserID(q.UserID)
	unlock := o.locks.Lock(q.UserID)
	defer unlock()

	start := time.Now()
	log := o.logger.With(zap.String("user_id", q.UserID), zap.Int("message_len", len(q.Message)))

	for _, r := range o.resolvers {
		tier := r.Tier()
		res, err := r.Resolve(ctx, q)
		if err == nil && strings.TrimSpace(res.Text) == "" {
			err = errEmptyAnswer
		}
		if err != nil {
			reason := failureReason(tier, err)
			o.metrics.ObserveTierFailure(string(tier), reason)
			log.Warn("tier failed, falling through",
				zap.String("tier", string(tier)),
				zap.String("reason", reason),
				zap.Bool("retryable", tier == TierRemote && reliability.IsRetryable(err)),
				zap.Error(err),
			)
			continue
		}

		if o.record[tier] {
			o.recordExchange(ctx, log, q, res.Text)
		}
		if res.Category != "" {
			o.metrics.ObserveCategory(string(res.Category))
		}
		o.metrics.ObserveResolution(string(tier), time.Since(start))
		log.Debug("query resolved",
			zap.String("tier", string(tier)),
			zap.String("category", string(res.Category)),
		)
		return Answer{Text: res.Text, Tier: tier, Category: res.Category}
	}

	text := legal.UltimateFallback(q.Persona, q.Message)
	o.metrics.ObserveResolution(string(TierUltimate), time.Since(start))
	log.Info("query resolved by ultimate fallback", zap.String("persona", string(q.Persona)))
	return Answer{Text: text, Tier: TierUltimate}
}

// History returns a copy of the user's recent exchanges, oldest first.
func (o *Orchestrator) History(ctx context.Context, userID string, n int) ([]conversation.Exchange, error) {
	return o.store.Recent(ctx, o.normalizeUserID(userID), n)
}

func (o *Orchestrator) normalizeUserID(userID string) string {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return o.defaultUserID
	}
	return userID
}

func (o *Orchestrator) recordExchange(ctx context.Context, log *zap.Logger, q Query, responseText string) {
	exchange := conversation.Exchange{
		UserText:     q.Message,
		ResponseText: responseText,
	}
	if o.redactPII {
		exchange.UserText, exchange.PIIRedacted = policy.RedactPII(q.Message)
	}
	if err := o.store.Append(ctx, q.UserID, exchange); err != nil {
		log.Warn("history append failed", zap.Error(err))
		return
	}
	if counter, ok := o.store.(interface{ Users() int }); ok {
		o.metrics.SetTrackedUsers(counter.Users())
	}
}

func failureReason(tier Tier, err error) string {
	switch {
	case errors.Is(err, errLocalPanic), errors.Is(err, errEmptyAnswer):
		return reliability.ReasonInternal
	case tier == TierRemote:
		return reliability.ClassifyRemoteFailure(err)
	case errors.Is(err, context.DeadlineExceeded):
		return reliability.ReasonTimeout
	case errors.Is(err, context.Canceled):
		return reliability.ReasonCanceled
	default:
		return reliability.ReasonInternal
	}
}
