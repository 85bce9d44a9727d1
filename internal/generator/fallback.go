package generator

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/reefatlas/reefatlas-cli/pkg/gemini"
)

// ErrExhausted signals that every candidate model (and every credential,
// for quota failures) was tried without producing a usable result. The work
// unit is skipped for this run, never marked failed: under append mode its
// children stay absent, so the next invocation retries it.
var ErrExhausted = eris.New("generator: all models exhausted")

// Sequencer drives the model-then-credential fallback strategy for one
// generation request at a time.
type Sequencer struct {
	client    gemini.Client
	keys      *KeyRing
	models    []string
	quotaWait time.Duration
}

// NewSequencer creates a sequencer over a fixed, priority-ordered model list.
func NewSequencer(client gemini.Client, keys *KeyRing, models []string, quotaWait time.Duration) *Sequencer {
	return &Sequencer{
		client:    client,
		keys:      keys,
		models:    models,
		quotaWait: quotaWait,
	}
}

// generateRecords runs the fallback loop for one work unit's prompt and
// parses the winning response into records.
//
// Per model, up to 2×len(keys) attempts are made. Quota failures rotate the
// key and retry the same model; with a single key there is nothing to rotate
// to, so a short fixed wait precedes the retry (the fallback across models
// provides the real retry diversity — no exponential backoff here). An
// unknown model or any other failure abandons the model immediately. A
// response that parses to a non-empty record list wins and short-circuits
// everything else; a well-formed but empty list burns the attempt and
// retries within the model's budget.
func generateRecords[T any](ctx context.Context, s *Sequencer, prompt string) ([]T, error) {
	log := zap.L()

	for _, model := range s.models {
		budget := 2 * s.keys.Len()

	attempts:
		for attempt := 0; attempt < budget; attempt++ {
			resp, err := s.client.GenerateContent(ctx, gemini.GenerateRequest{
				Model:  model,
				APIKey: s.keys.Current(),
				Prompt: prompt,
			})

			if err == nil {
				records, perr := parseRecords[T](resp.Text)
				if perr != nil {
					// Malformed output is handled like any other failure:
					// abandon this model, try the next one.
					log.Warn("generator: malformed response",
						zap.String("model", model),
						zap.Error(perr),
					)
					break attempts
				}
				if len(records) > 0 {
					log.Info("generator: success",
						zap.String("model", model),
						zap.Int("records", len(records)),
					)
					return records, nil
				}
				// Empty but valid: retry the same model within budget.
				continue
			}

			switch {
			case gemini.IsQuota(err):
				log.Warn("generator: quota exceeded",
					zap.String("model", model),
					zap.Int("key", s.keys.Position()),
					zap.Int("keys", s.keys.Len()),
				)
				if s.keys.Advance() {
					continue
				}
				if werr := wait(ctx, s.quotaWait); werr != nil {
					return nil, werr
				}
			case gemini.IsModelNotFound(err):
				log.Info("generator: model not available, skipping",
					zap.String("model", model),
				)
				break attempts
			default:
				log.Warn("generator: request failed",
					zap.String("model", model),
					zap.Error(err),
				)
				break attempts
			}
		}
	}

	return nil, ErrExhausted
}

// wait sleeps for d unless the context ends first.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
