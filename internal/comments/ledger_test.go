package comments

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newTestLedger(t *testing.T) (*Ledger, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewLedger(NewRedisStorage(client), zap.NewNop()), mr
}

func TestLoad_UnknownSlugYieldsEmptySequence(t *testing.T) {
	ledger, _ := newTestLedger(t)

	sequence, err := ledger.Load(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(sequence) != 0 {
		t.Errorf("Expected empty sequence, got %d comments", len(sequence))
	}
}

func TestLoad_MalformedDataTreatedAsEmpty(t *testing.T) {
	ledger, mr := newTestLedger(t)

	mr.Set(Key("story-one"), "{not json at all")

	sequence, err := ledger.Load(context.Background(), "story-one")
	if err != nil {
		t.Fatalf("Load failed on malformed data: %v", err)
	}
	if len(sequence) != 0 {
		t.Errorf("Expected malformed data to read as empty, got %d comments", len(sequence))
	}
}

func TestAppend_PreservesSubmissionOrder(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	if _, err := ledger.Append(ctx, "story-one", "Ann", "Great story"); err != nil {
		t.Fatalf("First append failed: %v", err)
	}
	if _, err := ledger.Append(ctx, "story-one", "Bo", "Loved it"); err != nil {
		t.Fatalf("Second append failed: %v", err)
	}

	sequence, err := ledger.Load(ctx, "story-one")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(sequence) != 2 {
		t.Fatalf("Expected 2 comments, got %d", len(sequence))
	}
	if sequence[0].Author != "Ann" || sequence[0].Text != "Great story" {
		t.Errorf("Unexpected first comment: %+v", sequence[0])
	}
	if sequence[1].Author != "Bo" || sequence[1].Text != "Loved it" {
		t.Errorf("Unexpected second comment: %+v", sequence[1])
	}
	if sequence[1].CreatedAt.Before(sequence[0].CreatedAt) {
		t.Error("Comment timestamps are not monotonically non-decreasing")
	}
}

func TestAppend_InvalidSubmissionIsNoOp(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	if _, err := ledger.Append(ctx, "story-one", "Ann", "First"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	cases := []struct {
		name   string
		author string
		text   string
	}{
		{"empty author", "", "text"},
		{"empty text", "author", ""},
		{"whitespace author", "   ", "text"},
		{"whitespace text", "author", "\t\n "},
		{"both empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sequence, err := ledger.Append(ctx, "story-one", tc.author, tc.text)
			if err != nil {
				t.Fatalf("Append returned error: %v", err)
			}
			if len(sequence) != 1 {
				t.Errorf("Invalid submission changed the ledger: %d comments", len(sequence))
			}
		})
	}
}

func TestAppend_TrimsAuthorAndText(t *testing.T) {
	ledger, _ := newTestLedger(t)

	sequence, err := ledger.Append(context.Background(), "story-one", "  Ann  ", "  padded  ")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if sequence[0].Author != "Ann" || sequence[0].Text != "padded" {
		t.Errorf("Expected trimmed fields, got %+v", sequence[0])
	}
}

func TestLedger_SlugsAreIsolated(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	if _, err := ledger.Append(ctx, "slug-a", "Ann", "Comment on A"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	sequence, err := ledger.Load(ctx, "slug-b")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(sequence) != 0 {
		t.Errorf("Write under slug-a leaked into slug-b: %d comments", len(sequence))
	}
}

// Property: any sequence of valid submissions is reproduced by Load in
// submission order.
func TestProperty_ValidAppendsReproduceInOrder(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("appended comments load back in order", prop.ForAll(
		func(texts []string) bool {
			ledger, _ := newTestLedger(t)
			ctx := context.Background()

			valid := make([]string, 0, len(texts))
			for _, text := range texts {
				if _, err := ledger.Append(ctx, "prop-slug", "author", text); err != nil {
					t.Logf("FAIL: append error: %v", err)
					return false
				}
				if strings.TrimSpace(text) != "" {
					valid = append(valid, strings.TrimSpace(text))
				}
			}

			sequence, err := ledger.Load(ctx, "prop-slug")
			if err != nil {
				t.Logf("FAIL: load error: %v", err)
				return false
			}

			if len(sequence) != len(valid) {
				t.Logf("FAIL: expected %d comments, got %d", len(valid), len(sequence))
				return false
			}
			for i, text := range valid {
				if sequence[i].Text != text {
					t.Logf("FAIL: comment %d mismatch: expected %q, got %q", i, text, sequence[i].Text)
					return false
				}
				if i > 0 && sequence[i].CreatedAt.Before(sequence[i-1].CreatedAt) {
					t.Logf("FAIL: timestamps went backwards at index %d", i)
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

func TestAppend_TimestampUsesInjectedClock(t *testing.T) {
	ledger, _ := newTestLedger(t)

	fixed := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)
	ledger.now = func() time.Time { return fixed }

	sequence, err := ledger.Append(context.Background(), "story-one", "Ann", "timed")
	if err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if !sequence[0].CreatedAt.Equal(fixed) {
		t.Errorf("Expected CreatedAt %v, got %v", fixed, sequence[0].CreatedAt)
	}
}
