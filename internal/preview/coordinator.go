package preview

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/openobserve/alertquery/internal/sqlgen"
	"github.com/openobserve/alertquery/internal/tree"
	"github.com/openobserve/alertquery/internal/wire"
)

// DefaultDebounce is how long a burst of edits must settle before a
// remote compile call goes out.
const DefaultDebounce = time.Second

// Source records which compiler produced the displayed SQL. Save logic
// downstream trusts remote-compiled SQL without revalidation, so the
// distinction must survive alongside the text.
type Source int

const (
	// SourceNone means no SQL has been produced yet.
	SourceNone Source = iota
	// SourceLocal means the preview came from the local compiler.
	SourceLocal
	// SourceRemote means the preview came from the backend compiler.
	SourceRemote
)

// String returns the source name for logs.
func (s Source) String() string {
	switch s {
	case SourceLocal:
		return "local"
	case SourceRemote:
		return "remote"
	default:
		return "none"
	}
}

// Result is the currently displayable preview.
type Result struct {
	SQL    string
	Source Source
}

// Stream identifies the alert's target stream on the backend.
type Stream struct {
	Name string
	Type string
}

// Config configures a Coordinator.
type Config struct {
	// Debounce is the settle window for remote calls. Zero means
	// DefaultDebounce.
	Debounce time.Duration

	// OnUpdate, when set, is invoked with every new displayable result.
	// Called without internal locks held; may arrive from a timer
	// goroutine.
	OnUpdate func(Result)

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Coordinator orchestrates local and remote SQL compilation for one
// editing session.
//
// The tree itself stays owned by the session; Edited snapshots it via
// Clone, so later mutations never race the in-flight remote call.
type Coordinator struct {
	remote   RemoteCompiler
	local    *sqlgen.Compiler
	stream   Stream
	debounce time.Duration
	onUpdate func(Result)
	logger   *slog.Logger

	// gen tags outbound remote calls. Only the response matching the
	// newest issued generation is applied - last write wins by issue
	// order, not completion order.
	gen atomic.Int64

	mu        sync.Mutex
	timer     *time.Timer
	current   Result
	lastLocal string // last successfully locally-compiled SQL
	closed    bool

	ctx    context.Context
	cancel context.CancelFunc
}

// NewCoordinator creates a coordinator for one editing session.
func NewCoordinator(remote RemoteCompiler, local *sqlgen.Compiler, stream Stream, cfg Config) *Coordinator {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		remote:   remote,
		local:    local,
		stream:   stream,
		debounce: cfg.Debounce,
		onUpdate: cfg.OnUpdate,
		logger:   cfg.Logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Edited is called on every change to the tree, the target stream's
// settings, or aggregation. It recompiles locally right away and schedules
// a debounced remote call.
//
// An incomplete tree (some leaf still missing its column or value) updates
// nothing and skips the remote call entirely: mid-typing state must never
// produce nonsense SQL, and "not ready" is not an error.
func (c *Coordinator) Edited(root *tree.Group, agg *sqlgen.Aggregation) {
	if !sqlgen.Ready(root) {
		c.logger.Debug("preview skipped", "reason", "incomplete conditions")
		return
	}

	out, err := c.local.Compile(root, agg)
	if err != nil {
		// Ready() was checked above, so this is a real compile bug,
		// not mid-typing state. Keep the previous preview.
		c.logger.Error("local compile failed", "error", err)
		return
	}
	localSQL := renderPreview(out)

	snapshot := tree.CloneGroup(root)
	var aggCopy *sqlgen.Aggregation
	if agg != nil {
		dup := *agg
		dup.GroupBy = append([]string(nil), agg.GroupBy...)
		aggCopy = &dup
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.lastLocal = localSQL
	c.current = Result{SQL: localSQL, Source: SourceLocal}
	notify := c.onUpdate
	result := c.current

	if c.timer != nil {
		c.timer.Stop()
	}
	if c.remote != nil {
		c.timer = time.AfterFunc(c.debounce, func() {
			c.issueRemote(snapshot, aggCopy)
		})
	}
	c.mu.Unlock()

	if notify != nil {
		notify(result)
	}
}

// issueRemote fires one remote compile call tagged with a fresh
// generation number.
func (c *Coordinator) issueRemote(root *tree.Group, agg *sqlgen.Aggregation) {
	generation := c.gen.Add(1)

	req := CompileRequest{
		StreamName: c.stream.Name,
		StreamType: c.stream.Type,
		QueryCondition: QueryCondition{
			Type:        "custom",
			Conditions:  wire.NewEnvelope(root),
			Aggregation: agg,
		},
	}

	sql, err := c.remote.CompileSQL(c.ctx, req)

	c.mu.Lock()
	if c.closed || generation != c.gen.Load() {
		// Superseded by a newer call (or the session ended) while we
		// were in flight. A stale response must never overwrite a
		// newer result.
		c.mu.Unlock()
		c.logger.Debug("dropping stale compile response", "generation", generation)
		return
	}

	if err != nil {
		// Fall back to the last locally-compiled SQL. Remote failure
		// is recoverable and never blocks the user.
		c.current = Result{SQL: c.lastLocal, Source: SourceLocal}
		notify := c.onUpdate
		result := c.current
		c.mu.Unlock()

		c.logger.Warn("remote compile failed, using local SQL", "error", err)
		if notify != nil {
			notify(result)
		}
		return
	}

	c.current = Result{SQL: strings.TrimSpace(sql), Source: SourceRemote}
	notify := c.onUpdate
	result := c.current
	c.mu.Unlock()

	if notify != nil {
		notify(result)
	}
}

// Current returns the result on display.
func (c *Coordinator) Current() Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Flush cancels any pending debounce and issues the remote call now.
// Intended for tests and for "compile immediately" UI affordances.
func (c *Coordinator) Flush() {
	c.mu.Lock()
	timer := c.timer
	c.timer = nil
	c.mu.Unlock()

	if timer != nil && timer.Stop() {
		// The debounced closure never ran; there is nothing buffered
		// to flush beyond what Edited scheduled, so re-firing it
		// immediately is done by resetting to zero.
		timer.Reset(0)
	}
}

// Close ends the session: pending timers are stopped and any in-flight
// response is discarded.
func (c *Coordinator) Close() {
	c.mu.Lock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
	c.cancel()
}

// renderPreview joins the WHERE text and aggregation fragment the way the
// preview pane shows them.
func renderPreview(out sqlgen.Output) string {
	if out.GroupByHaving == "" {
		return out.Where
	}
	return out.Where + " " + out.GroupByHaving
}
