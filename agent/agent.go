// Package agent runs the posting and engagement control loops: scheduled
// content on a timer, replies to mentions and direct messages as they
// arrive, and one-shot actions dispatched from the command line. All
// platform and content access goes through narrow interfaces so the loops
// can be driven against fakes.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/RussellLuo/slidingwindow"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hyperfeather/magpie/agent/cursor"
	"github.com/hyperfeather/magpie/agent/gate"
	"github.com/hyperfeather/magpie/history"
)

const (
	ModeAutonomous = "autonomous"
	ModeManual     = "manual"
)

const (
	mentionCursor = "mentions"
	dmCursor      = "dms"

	// remembers which inbound items were already answered this run
	handledCacheSize = 10000
)

type Config struct {
	// Mode selects between autonomous (timed loops) and manual (one-shot
	// actions only).
	Mode string

	PostingInterval time.Duration
	MentionInterval time.Duration

	// DMInterval of zero disables the direct-message loop.
	DMInterval time.Duration

	// EngagePerHour caps search-and-engage writes over a sliding hour.
	// Zero disables the cap.
	EngagePerHour int

	// ReplyPace is the minimum spacing between consecutive outbound
	// writes within a loop iteration.
	ReplyPace time.Duration

	// SearchPageSize is the default result count for search-and-engage.
	SearchPageSize int

	Logger *slog.Logger
}

func DefaultConfig() Config {
	return Config{
		Mode:            ModeAutonomous,
		PostingInterval: 2 * time.Hour,
		MentionInterval: 5 * time.Minute,
		DMInterval:      5 * time.Minute,
		EngagePerHour:   30,
		ReplyPace:       2 * time.Second,
		SearchPageSize:  10,
	}
}

type Agent struct {
	content     ContentProvider
	platform    PlatformClient
	gate        *gate.Gate
	cursorStore cursor.Store
	recorder    *history.Recorder
	logger      *slog.Logger
	config      Config

	startedAt time.Time

	// paces consecutive writes so a burst of mentions doesn't turn into
	// a burst of replies
	replyLimiter *rate.Limiter

	// sliding-hour cap on engagement writes; nil means uncapped
	engageLim *slidingwindow.Limiter

	handled *lru.Cache[string, bool]

	selfMu sync.Mutex
	self   *Account

	curMu   sync.Mutex
	cursors map[string]string
}

// New validates the configuration and assembles an agent. The recorder may
// be nil to run without a durable action log.
func New(content ContentProvider, platform PlatformClient, g *gate.Gate, cursors cursor.Store, recorder *history.Recorder, config Config) (*Agent, error) {
	if content == nil {
		return nil, fmt.Errorf("content provider is required")
	}
	if platform == nil {
		return nil, fmt.Errorf("platform client is required")
	}
	if g == nil {
		return nil, fmt.Errorf("rate gate is required")
	}
	if cursors == nil {
		cursors = cursor.NewMemStore()
	}
	switch config.Mode {
	case ModeAutonomous, ModeManual:
	case "":
		config.Mode = ModeAutonomous
	default:
		return nil, fmt.Errorf("unknown mode: %s", config.Mode)
	}
	if config.Mode == ModeAutonomous {
		if config.PostingInterval <= 0 {
			return nil, fmt.Errorf("posting interval must be positive")
		}
		if config.MentionInterval <= 0 {
			return nil, fmt.Errorf("mention interval must be positive")
		}
	}
	if config.SearchPageSize <= 0 {
		config.SearchPageSize = 10
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	handled, err := lru.New[string, bool](handledCacheSize)
	if err != nil {
		return nil, err
	}

	replyEvery := rate.Inf
	if config.ReplyPace > 0 {
		replyEvery = rate.Every(config.ReplyPace)
	}

	var engageLim *slidingwindow.Limiter
	if config.EngagePerHour > 0 {
		engageLim, _ = slidingwindow.NewLimiter(time.Hour, int64(config.EngagePerHour), func() (slidingwindow.Window, slidingwindow.StopFunc) {
			return slidingwindow.NewLocalWindow()
		})
	}

	return &Agent{
		content:      content,
		platform:     platform,
		gate:         g,
		cursorStore:  cursors,
		recorder:     recorder,
		logger:       logger,
		config:       config,
		startedAt:    time.Now(),
		replyLimiter: rate.NewLimiter(replyEvery, 1),
		engageLim:    engageLim,
		handled:      handled,
		cursors:      make(map[string]string),
	}, nil
}

// Run drives the timed loops until the context is cancelled. In manual mode
// no loops start and Run just waits for shutdown. A clean shutdown returns
// nil.
func (a *Agent) Run(ctx context.Context) error {
	if a.config.Mode == ModeManual {
		a.logger.Info("manual mode: automatic loops disabled, waiting for shutdown")
		<-ctx.Done()
		return nil
	}

	a.logger.Info("starting agent loops",
		"postingInterval", a.config.PostingInterval,
		"mentionInterval", a.config.MentionInterval,
		"dmInterval", a.config.DMInterval,
		"maxPostsPerDay", a.gate.DailyMax,
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return a.runPostingLoop(ctx) })
	eg.Go(func() error { return a.runMentionLoop(ctx) })
	if a.config.DMInterval > 0 {
		eg.Go(func() error { return a.runDMLoop(ctx) })
	}
	return eg.Wait()
}

// runPostingLoop publishes a scheduled post immediately and then on every
// tick. A tick that arrives while the previous attempt is still in flight
// is coalesced by the ticker, so attempts never overlap.
func (a *Agent) runPostingLoop(ctx context.Context) error {
	log := a.logger.With("loop", "post")
	a.postOnce(ctx)

	ticker := time.NewTicker(a.config.PostingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("posting loop shut down")
			return nil
		case <-ticker.C:
			a.postOnce(ctx)
		}
	}
}

func (a *Agent) postOnce(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "postOnce")
	defer span.End()
	log := a.logger.With("loop", "post")

	allowed, err := a.gate.Allow(ctx)
	if err != nil {
		// fail closed: better to miss a slot than to blow the budget
		log.Error("rate gate unavailable, skipping tick", "err", err)
		loopErrorsCounter.WithLabelValues("post").Inc()
		return
	}
	if !allowed {
		log.Info("daily post budget spent, skipping tick", "budget", a.gate.DailyMax)
		postsDeniedCounter.Inc()
		return
	}

	text, err := a.content.GeneratePost(ctx)
	if err != nil {
		log.Warn("content generation failed, will try next tick", "err", err)
		postsCounter.WithLabelValues("error").Inc()
		loopErrorsCounter.WithLabelValues("post").Inc()
		a.record(ctx, "post", "", "", err)
		return
	}

	id, err := a.platform.Post(ctx, text)
	if err != nil {
		log.Warn("post failed, will try next tick", "err", err)
		postsCounter.WithLabelValues("error").Inc()
		loopErrorsCounter.WithLabelValues("post").Inc()
		a.record(ctx, "post", "", text, err)
		return
	}
	log.Info("posted scheduled content", "id", id, "chars", len(text))
	postsCounter.WithLabelValues("ok").Inc()
	a.record(ctx, "post", id, text, nil)
}

func (a *Agent) runMentionLoop(ctx context.Context) error {
	log := a.logger.With("loop", "mentions")
	a.restoreCursor(ctx, mentionCursor)
	a.checkMentionsOnce(ctx)

	ticker := time.NewTicker(a.config.MentionInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("mention loop shut down")
			return nil
		case <-ticker.C:
			a.checkMentionsOnce(ctx)
		}
	}
}

func (a *Agent) checkMentionsOnce(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "checkMentions")
	defer span.End()
	log := a.logger.With("loop", "mentions")
	pollsCounter.WithLabelValues("mentions").Inc()

	mentions, err := a.platform.MentionsSince(ctx, a.cursorValue(mentionCursor))
	if err != nil {
		log.Warn("mention fetch failed, will retry next tick", "err", err)
		loopErrorsCounter.WithLabelValues("mentions").Inc()
		return
	}
	if len(mentions) == 0 {
		log.Debug("no new mentions")
		return
	}

	// advance past everything fetched before processing anything, so a
	// mention that keeps failing is not refetched forever
	maxID := ""
	for _, m := range mentions {
		if idLess(maxID, m.ID) {
			maxID = m.ID
		}
	}
	a.advanceCursor(ctx, mentionCursor, maxID)
	log.Info("handling mentions", "count", len(mentions), "cursor", maxID)

	// oldest first
	sort.Slice(mentions, func(i, j int) bool { return idLess(mentions[i].ID, mentions[j].ID) })

	for _, m := range mentions {
		if !a.firstSeen("mention/" + m.ID) {
			continue
		}
		a.replyToMention(ctx, m)
	}
}

func (a *Agent) replyToMention(ctx context.Context, m Mention) {
	log := a.logger.With("loop", "mentions", "mention", m.ID)

	text, err := a.content.GenerateReply(ctx, m)
	if err != nil {
		log.Warn("reply generation failed", "err", err)
		repliesCounter.WithLabelValues("mention", "error").Inc()
		a.record(ctx, "reply", m.ID, "", err)
		return
	}
	if err := a.replyLimiter.Wait(ctx); err != nil {
		return
	}
	id, err := a.platform.Reply(ctx, m.ID, text)
	if err != nil {
		log.Warn("reply failed", "err", err)
		repliesCounter.WithLabelValues("mention", "error").Inc()
		a.record(ctx, "reply", m.ID, text, err)
		return
	}
	log.Info("replied to mention", "reply", id)
	repliesCounter.WithLabelValues("mention", "ok").Inc()
	a.record(ctx, "reply", id, text, nil)
}

func (a *Agent) runDMLoop(ctx context.Context) error {
	log := a.logger.With("loop", "dms")
	a.restoreCursor(ctx, dmCursor)
	a.checkDMsOnce(ctx)

	ticker := time.NewTicker(a.config.DMInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("dm loop shut down")
			return nil
		case <-ticker.C:
			a.checkDMsOnce(ctx)
		}
	}
}

func (a *Agent) checkDMsOnce(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "checkDMs")
	defer span.End()
	log := a.logger.With("loop", "dms")
	pollsCounter.WithLabelValues("dms").Inc()

	self, err := a.selfAccount(ctx)
	if err != nil {
		log.Warn("could not resolve own account, will retry next tick", "err", err)
		loopErrorsCounter.WithLabelValues("dms").Inc()
		return
	}

	events, err := a.platform.DMEventsSince(ctx, a.cursorValue(dmCursor))
	if err != nil {
		log.Warn("dm fetch failed, will retry next tick", "err", err)
		loopErrorsCounter.WithLabelValues("dms").Inc()
		return
	}
	if len(events) == 0 {
		log.Debug("no new dms")
		return
	}

	maxID := ""
	for _, ev := range events {
		if idLess(maxID, ev.ID) {
			maxID = ev.ID
		}
	}
	a.advanceCursor(ctx, dmCursor, maxID)

	sort.Slice(events, func(i, j int) bool { return idLess(events[i].ID, events[j].ID) })

	for _, ev := range events {
		// never answer our own outbound messages
		if ev.SenderID == self.ID {
			continue
		}
		if !a.firstSeen("dm/" + ev.ID) {
			continue
		}
		a.replyToDM(ctx, ev)
	}
}

func (a *Agent) replyToDM(ctx context.Context, ev DMEvent) {
	log := a.logger.With("loop", "dms", "event", ev.ID)

	text, err := a.content.GenerateDirectReply(ctx, ev)
	if err != nil {
		log.Warn("dm reply generation failed", "err", err)
		repliesCounter.WithLabelValues("dm", "error").Inc()
		a.record(ctx, "dm", ev.ID, "", err)
		return
	}
	if err := a.replyLimiter.Wait(ctx); err != nil {
		return
	}
	id, err := a.platform.SendDM(ctx, ev.SenderID, text)
	if err != nil {
		log.Warn("dm reply failed", "err", err)
		repliesCounter.WithLabelValues("dm", "error").Inc()
		a.record(ctx, "dm", ev.ID, text, err)
		return
	}
	log.Info("replied to dm", "sent", id)
	repliesCounter.WithLabelValues("dm", "ok").Inc()
	a.record(ctx, "dm", id, text, nil)
}

func (a *Agent) selfAccount(ctx context.Context) (*Account, error) {
	a.selfMu.Lock()
	defer a.selfMu.Unlock()
	if a.self != nil {
		return a.self, nil
	}
	acct, err := a.platform.Self(ctx)
	if err != nil {
		return nil, err
	}
	a.self = acct
	return acct, nil
}

// firstSeen reports whether key has not been handled yet this run, marking
// it handled as a side effect.
func (a *Agent) firstSeen(key string) bool {
	if a.handled.Contains(key) {
		return false
	}
	a.handled.Add(key, true)
	return true
}

func (a *Agent) restoreCursor(ctx context.Context, name string) {
	val, err := a.cursorStore.Get(ctx, name)
	if err != nil {
		a.logger.Warn("failed to read cursor, starting fresh", "cursor", name, "err", err)
		return
	}
	if val == "" {
		return
	}
	a.curMu.Lock()
	a.cursors[name] = val
	a.curMu.Unlock()
	a.logger.Info("restored cursor", "cursor", name, "value", val)
}

func (a *Agent) cursorValue(name string) string {
	a.curMu.Lock()
	defer a.curMu.Unlock()
	return a.cursors[name]
}

// advanceCursor moves a cursor forward, never backward, and persists the new
// position. Persistence failures are logged and tolerated; the in-memory
// position still advances.
func (a *Agent) advanceCursor(ctx context.Context, name, id string) {
	if id == "" {
		return
	}
	a.curMu.Lock()
	if !idLess(a.cursors[name], id) {
		a.curMu.Unlock()
		return
	}
	a.cursors[name] = id
	a.curMu.Unlock()

	if err := a.cursorStore.Set(ctx, name, id); err != nil {
		a.logger.Warn("failed to persist cursor", "cursor", name, "err", err)
	}
}

func (a *Agent) record(ctx context.Context, kind, subject, detail string, actErr error) {
	if a.recorder == nil {
		return
	}
	act := history.Action{Kind: kind, Subject: subject, Detail: detail, OK: actErr == nil}
	if actErr != nil {
		act.Err = actErr.Error()
	}
	if err := a.recorder.Record(ctx, &act); err != nil {
		a.logger.Warn("failed to record action", "kind", kind, "err", err)
	}
}

// idLess compares two decimal post IDs numerically. IDs of different length
// compare by length, since snowflake IDs carry no leading zeros. The empty
// string sorts before everything.
func idLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// Status is a point-in-time summary of the agent for humans and monitors.
type Status struct {
	Mode           string            `json:"mode"`
	StartedAt      time.Time         `json:"started_at"`
	UptimeSeconds  int64             `json:"uptime_seconds"`
	PostsToday     int               `json:"posts_today"`
	DailyBudget    int               `json:"daily_budget"`
	PostsRemaining int               `json:"posts_remaining"`
	Cursors        map[string]string `json:"cursors"`
	ActionsLastDay map[string]int64  `json:"actions_last_day,omitempty"`
}

func (a *Agent) Status(ctx context.Context) (*Status, error) {
	used, err := a.gate.Used(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading post counter: %w", err)
	}
	remaining, err := a.gate.Remaining(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading post counter: %w", err)
	}
	actions, err := a.recorder.CountsSince(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("reading action log: %w", err)
	}

	a.curMu.Lock()
	cursors := make(map[string]string, len(a.cursors))
	for k, v := range a.cursors {
		cursors[k] = v
	}
	a.curMu.Unlock()

	return &Status{
		Mode:           a.config.Mode,
		StartedAt:      a.startedAt,
		UptimeSeconds:  int64(time.Since(a.startedAt).Seconds()),
		PostsToday:     used,
		DailyBudget:    a.gate.DailyMax,
		PostsRemaining: remaining,
		Cursors:        cursors,
		ActionsLastDay: actions,
	}, nil
}
