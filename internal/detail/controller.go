package detail

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"storefront/internal/client"
	"storefront/internal/comments"
	"storefront/internal/domain"
	"storefront/internal/export"
	"storefront/internal/speech"
	"storefront/internal/summarizer"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ViewState is the terminal state of a product detail load.
type ViewState int

const (
	StateLoading ViewState = iota
	StateLoaded
	StateNotFound
	StateFailed
)

// View is the presentation snapshot for one product slug. Presentation state
// (expansion, summary) is reset on every load.
type View struct {
	Slug           string
	State          ViewState
	Product        *domain.Product
	Related        []*domain.Product
	Comments       []domain.Comment
	Expanded       bool
	Summary        string
	SummaryLoading bool
	Notice         string
}

// Options bounds how the controller presents a product.
type Options struct {
	RelatedLimit       int // cap on the related-products strip
	DescriptionPreview int // characters shown before the expand affordance
	SpeechLang         string
}

// Controller orchestrates a single product detail page: product fetch,
// related-products fetch, the comment ledger, and the summarize/export/speech
// hooks. Collaborators are injected at construction; their lifecycles belong
// to the hosting shell.
type Controller struct {
	catalog    client.CatalogClient
	ledger     *comments.Ledger
	summarizer summarizer.Summarizer
	exporter   export.Exporter
	speech     speech.Engine
	logger     *zap.Logger
	opts       Options

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	view   View
}

// NewController creates a detail controller with the given collaborators.
func NewController(
	catalog client.CatalogClient,
	ledger *comments.Ledger,
	sum summarizer.Summarizer,
	exporter export.Exporter,
	engine speech.Engine,
	logger *zap.Logger,
	opts Options,
) *Controller {
	if opts.RelatedLimit == 0 {
		opts.RelatedLimit = 3
	}
	if opts.DescriptionPreview <= 0 {
		opts.DescriptionPreview = 200
	}
	if opts.SpeechLang == "" {
		opts.SpeechLang = "en-US"
	}

	return &Controller{
		catalog:    catalog,
		ledger:     ledger,
		summarizer: sum,
		exporter:   exporter,
		speech:     engine,
		logger:     logger,
		opts:       opts,
	}
}

// Load navigates the controller to slug. It fetches the product, then its
// related set, then the comment ledger for the same slug. A later Load
// supersedes this one: cancelling its context and discarding any result that
// arrives after the supersession.
func (c *Controller) Load(ctx context.Context, slug string) View {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	if c.cancel != nil {
		c.cancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.view = View{Slug: slug, State: StateLoading}
	c.mu.Unlock()

	view := View{Slug: slug}

	product, err := c.catalog.GetProduct(loadCtx, slug)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			view.State = StateNotFound
		} else {
			c.logger.Error("Product fetch failed",
				zap.String("slug", slug),
				zap.Error(err),
			)
			view.State = StateFailed
		}
		return c.commit(gen, view)
	}

	view.State = StateLoaded
	view.Product = product
	view.Related = c.loadRelated(loadCtx, product)
	view.Comments = c.loadComments(loadCtx, slug)

	return c.commit(gen, view)
}

// loadRelated degrades to an empty strip on any failure; the main product
// view is never blocked by it.
func (c *Controller) loadRelated(ctx context.Context, product *domain.Product) []*domain.Product {
	if c.opts.RelatedLimit <= 0 {
		return []*domain.Product{}
	}

	related, err := c.catalog.GetRelatedProducts(ctx, product.ID, product.Category.ID)
	if err != nil {
		c.logger.Warn("Related products fetch failed",
			zap.String("slug", product.Slug),
			zap.Error(err),
		)
		return []*domain.Product{}
	}

	if len(related) > c.opts.RelatedLimit {
		related = related[:c.opts.RelatedLimit]
	}
	return related
}

func (c *Controller) loadComments(ctx context.Context, slug string) []domain.Comment {
	sequence, err := c.ledger.Load(ctx, slug)
	if err != nil {
		c.logger.Warn("Comment load failed",
			zap.String("slug", slug),
			zap.Error(err),
		)
		return []domain.Comment{}
	}
	return sequence
}

// commit installs view only if no later Load has started since gen.
func (c *Controller) commit(gen uint64, view View) View {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// A newer navigation owns the controller; drop this result.
		return c.view
	}
	c.view = view
	return view
}

// View returns the current presentation snapshot.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// DisplayDescription returns the description as it should be shown: the full
// text when expanded or short enough, otherwise the preview prefix followed
// by an ellipsis.
func (c *Controller) DisplayDescription() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view.Product == nil {
		return ""
	}

	description := c.view.Product.Description
	runes := []rune(description)
	if c.view.Expanded || len(runes) <= c.opts.DescriptionPreview {
		return description
	}
	return string(runes[:c.opts.DescriptionPreview]) + "..."
}

// CanExpand reports whether the expand affordance should be offered.
func (c *Controller) CanExpand() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view.Product != nil &&
		len([]rune(c.view.Product.Description)) > c.opts.DescriptionPreview &&
		!c.view.Expanded
}

// Expand shows the full description.
func (c *Controller) Expand() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Expanded = true
}

// Collapse returns to the truncated description.
func (c *Controller) Collapse() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Expanded = false
}

// DisplayPrice renders the price in fixed en-US USD format.
func (c *Controller) DisplayPrice() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.view.Product == nil {
		return ""
	}
	return FormatUSD(c.view.Product.Price)
}

// AddComment appends a comment to the current slug's ledger and refreshes the
// view's comment list. Invalid submissions leave both unchanged.
func (c *Controller) AddComment(ctx context.Context, author, text string) ([]domain.Comment, error) {
	c.mu.Lock()
	slug := c.view.Slug
	gen := c.gen
	c.mu.Unlock()

	if slug == "" {
		return nil, errors.New("no product loaded")
	}

	sequence, err := c.ledger.Append(ctx, slug, author, text)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if gen == c.gen {
		c.view.Comments = sequence
	}
	c.mu.Unlock()

	return sequence, nil
}

// Summarize forwards the current description to the summarization
// collaborator and stores the result. Failure leaves the summary unset and is
// logged; it never reaches the product view as an error state.
func (c *Controller) Summarize(ctx context.Context) {
	c.mu.Lock()
	if c.view.Product == nil || c.view.Product.Description == "" {
		c.mu.Unlock()
		return
	}
	description := c.view.Product.Description
	slug := c.view.Slug
	gen := c.gen
	c.view.SummaryLoading = true
	c.mu.Unlock()

	summary, err := c.summarizer.Summarize(ctx, description)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.view.SummaryLoading = false
	if err != nil {
		c.logger.Warn("Summarization failed",
			zap.String("slug", slug),
			zap.Error(err),
		)
		return
	}
	c.view.Summary = summary
}

// ExportDocument renders the current product's name and description through
// the document exporter. The controller's only formatting duty is splitting
// the description into lines.
func (c *Controller) ExportDocument(w io.Writer) error {
	c.mu.Lock()
	product := c.view.Product
	c.mu.Unlock()

	if product == nil {
		return errors.New("no product loaded")
	}

	lines := strings.Split(product.Description, "\n")
	return c.exporter.Export(product.Name, lines, w)
}

// Speak dictates the current description through the speech collaborator.
// When the engine is unavailable or there is nothing to read, it is a no-op
// that leaves a user-visible notice on the view.
func (c *Controller) Speak(ctx context.Context) error {
	c.mu.Lock()
	product := c.view.Product
	c.mu.Unlock()

	if c.speech == nil || !c.speech.Available() || product == nil || product.Description == "" {
		c.mu.Lock()
		c.view.Notice = "Speech is not available or there is no description to read."
		c.mu.Unlock()
		return speech.ErrUnavailable
	}

	return c.speech.Speak(ctx, product.Description, c.opts.SpeechLang)
}

var usdPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatUSD renders amount as a US-locale dollar string, e.g. 1234.5 ->
// "$1,234.50".
func FormatUSD(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + "$" + usdPrinter.Sprintf("%.2f", amount)
}
