package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ent0n29/lexassist/internal/conversation"
	"github.com/ent0n29/lexassist/internal/inference"
	"github.com/ent0n29/lexassist/internal/legal"
	"github.com/ent0n29/lexassist/internal/observability"
)

// Tier names one stage of the fallback chain.
type Tier string

const (
	TierRemote   Tier = "remote"
	TierLocal    Tier = "local"
	TierUltimate Tier = "ultimate"
)

var (
	errEmptyAnswer = errors.New("resolver returned an empty answer")
	errLocalPanic  = errors.New("local synthesis panicked")
)

// Query is one normalized inbound question.
type Query struct {
	UserID  string
	Message string
	Persona legal.Persona
}

// Resolution is a tier's answer. Category is empty when the tier does not classify.
type Resolution struct {
	Text     string
	Category legal.Category
}

// Resolver is one tier of the fallback chain. An error means "try the next tier".
type Resolver interface {
	Tier() Tier
	Resolve(ctx context.Context, q Query) (Resolution, error)
}

// RemoteResolver asks the hosted inference endpoint.
type RemoteResolver struct {
	generator inference.Generator
	metrics   *observability.Metrics
}

func NewRemoteResolver(generator inference.Generator, metrics *observability.Metrics) *RemoteResolver {
	return &RemoteResolver{generator: generator, metrics: metrics}
}

func (r *RemoteResolver) Tier() Tier { return TierRemote }

func (r *RemoteResolver) Resolve(ctx context.Context, q Query) (Resolution, error) {
	if r.generator == nil {
		return Resolution{}, inference.ErrNotConfigured
	}
	start := time.Now()
	text, err := r.generator.Generate(ctx, q.Message)
	r.metrics.ObserveRemoteLatency(time.Since(start))
	if err != nil {
		return Resolution{}, fmt.Errorf("remote inference: %w", err)
	}
	return Resolution{Text: text}, nil
}

// LocalResolver classifies the query and answers from the canned topic table,
// using the user's recent history for continuity.
type LocalResolver struct {
	store conversation.Store
}

func NewLocalResolver(store conversation.Store) *LocalResolver {
	return &LocalResolver{store: store}
}

func (r *LocalResolver) Tier() Tier { return TierLocal }

func (r *LocalResolver) Resolve(ctx context.Context, q Query) (res Resolution, err error) {
	defer func() {
		if p := recover(); p != nil {
			res, err = Resolution{}, fmt.Errorf("%w: %v", errLocalPanic, p)
		}
	}()

	history, err := r.store.Recent(ctx, q.UserID, legal.ContinuityWindow)
	if err != nil {
		return Resolution{}, fmt.Errorf("load history: %w", err)
	}
	category := legal.Classify(q.Message)
	text := legal.Respond(category, q.Message, history)
	if strings.TrimSpace(text) == "" {
		return Resolution{}, errEmptyAnswer
	}
	return Resolution{Text: text, Category: category}, nil
}
