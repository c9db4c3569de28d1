package comments

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"storefront/internal/domain"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// commentInput is re-validated defensively even though the UI driving the
// ledger is expected to have checked both fields already.
type commentInput struct {
	Author string `validate:"required"`
	Text   string `validate:"required"`
}

// Ledger is the per-product append-only comment log. Each slug owns an
// independent sequence persisted under the key comments_{slug}; appends are
// write-through, and comments are never edited or deleted here.
type Ledger struct {
	storage  Storage
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// NewLedger creates a comment ledger over the given durable storage.
func NewLedger(storage Storage, logger *zap.Logger) *Ledger {
	return &Ledger{
		storage:  storage,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// Key returns the storage key owning slug's comments. The comments_{slug}
// partitioning rule is what keeps one product's comments from leaking into
// another's; it must not change.
func Key(slug string) string {
	return fmt.Sprintf("comments_%s", slug)
}

// Load reads the comment sequence for slug. An absent key and a malformed
// stored value both yield an empty sequence, never an error.
func (l *Ledger) Load(ctx context.Context, slug string) ([]domain.Comment, error) {
	raw, err := l.storage.Get(ctx, Key(slug))
	if err != nil {
		if err == ErrKeyNotFound {
			return []domain.Comment{}, nil
		}
		return nil, fmt.Errorf("failed to load comments for %s: %w", slug, err)
	}

	var sequence []domain.Comment
	if err := json.Unmarshal([]byte(raw), &sequence); err != nil {
		// Corrupt data is treated as absence, not a fatal condition.
		l.logger.Warn("Discarding malformed comment data",
			zap.String("slug", slug),
			zap.Error(err),
		)
		return []domain.Comment{}, nil
	}

	if sequence == nil {
		sequence = []domain.Comment{}
	}
	return sequence, nil
}

// Append validates author and text, appends a timestamped comment to slug's
// sequence, and writes the whole sequence back before returning it. An
// invalid submission is a no-op that returns the sequence unchanged.
func (l *Ledger) Append(ctx context.Context, slug, author, text string) ([]domain.Comment, error) {
	sequence, err := l.Load(ctx, slug)
	if err != nil {
		return nil, err
	}

	input := commentInput{
		Author: strings.TrimSpace(author),
		Text:   strings.TrimSpace(text),
	}
	if err := l.validate.Struct(input); err != nil {
		l.logger.Debug("Rejected comment submission",
			zap.String("slug", slug),
			zap.Error(err),
		)
		return sequence, nil
	}

	sequence = append(sequence, domain.Comment{
		Author:    input.Author,
		Text:      input.Text,
		CreatedAt: l.now(),
	})

	encoded, err := json.Marshal(sequence)
	if err != nil {
		return nil, fmt.Errorf("failed to encode comments for %s: %w", slug, err)
	}

	if err := l.storage.Set(ctx, Key(slug), string(encoded)); err != nil {
		return nil, fmt.Errorf("failed to persist comments for %s: %w", slug, err)
	}

	return sequence, nil
}
