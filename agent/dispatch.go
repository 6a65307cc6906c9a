package agent

import (
	"context"
	"fmt"
	"strings"
)

// EngageAction selects what to do with each post matched by a search.
type EngageAction string

const (
	ActionReply   EngageAction = "reply"
	ActionRetweet EngageAction = "retweet"
	ActionLike    EngageAction = "like"
	ActionAll     EngageAction = "all"
)

func ParseEngageAction(s string) (EngageAction, error) {
	switch EngageAction(strings.ToLower(s)) {
	case ActionReply:
		return ActionReply, nil
	case ActionRetweet:
		return ActionRetweet, nil
	case ActionLike:
		return ActionLike, nil
	case ActionAll:
		return ActionAll, nil
	}
	return "", fmt.Errorf("unknown engagement action: %s (expected reply, retweet, like, or all)", s)
}

// expand lists the concrete platform writes an action stands for.
func (ea EngageAction) expand() []EngageAction {
	if ea == ActionAll {
		return []EngageAction{ActionReply, ActionRetweet, ActionLike}
	}
	return []EngageAction{ea}
}

type EngageRequest struct {
	Query  string
	Action EngageAction

	// Limit caps how many search results are engaged; zero uses the
	// configured default page size.
	Limit int
}

// EngageResult is the outcome of one write against one matched post.
type EngageResult struct {
	PostID string `json:"post_id"`
	Action string `json:"action"`
	OK     bool   `json:"ok"`
	Err    string `json:"err,omitempty"`
}

type EngageReport struct {
	Query   string         `json:"query"`
	Matched int            `json:"matched"`
	Results []EngageResult `json:"results"`
}

func (r *EngageReport) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK {
			n++
		}
	}
	return n
}

// PostSingle publishes text verbatim, outside the scheduler and its daily
// budget.
func (a *Agent) PostSingle(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("post text must not be empty")
	}
	id, err := a.platform.Post(ctx, text)
	if err != nil {
		postsCounter.WithLabelValues("error").Inc()
		a.record(ctx, "post", "", text, err)
		return "", err
	}
	postsCounter.WithLabelValues("ok").Inc()
	a.record(ctx, "post", id, text, nil)
	return id, nil
}

// ReplySingle publishes text as a reply to the given post.
func (a *Agent) ReplySingle(ctx context.Context, toID, text string) (string, error) {
	if toID == "" {
		return "", fmt.Errorf("reply target ID must not be empty")
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("reply text must not be empty")
	}
	id, err := a.platform.Reply(ctx, toID, text)
	if err != nil {
		repliesCounter.WithLabelValues("mention", "error").Inc()
		a.record(ctx, "reply", toID, text, err)
		return "", err
	}
	repliesCounter.WithLabelValues("mention", "ok").Inc()
	a.record(ctx, "reply", id, text, nil)
	return id, nil
}

// SendDirectMessage delivers text privately to the given recipient.
func (a *Agent) SendDirectMessage(ctx context.Context, recipientID, text string) (string, error) {
	if recipientID == "" {
		return "", fmt.Errorf("recipient ID must not be empty")
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("message text must not be empty")
	}
	id, err := a.platform.SendDM(ctx, recipientID, text)
	if err != nil {
		repliesCounter.WithLabelValues("dm", "error").Inc()
		a.record(ctx, "dm", recipientID, text, err)
		return "", err
	}
	repliesCounter.WithLabelValues("dm", "ok").Inc()
	a.record(ctx, "dm", id, text, nil)
	return id, nil
}

// SearchAndEngage finds recent posts matching the query and performs the
// requested action on each. A failed search aborts with an error; failures
// against individual posts are captured per-result and do not stop the
// rest. Writes count against the sliding-hour engagement cap.
func (a *Agent) SearchAndEngage(ctx context.Context, req EngageRequest) (*EngageReport, error) {
	ctx, span := tracer.Start(ctx, "searchAndEngage")
	defer span.End()

	if strings.TrimSpace(req.Query) == "" {
		return nil, fmt.Errorf("search query must not be empty")
	}
	if _, err := ParseEngageAction(string(req.Action)); err != nil {
		return nil, err
	}
	limit := req.Limit
	if limit <= 0 {
		limit = a.config.SearchPageSize
	}

	log := a.logger.With("query", req.Query, "action", req.Action)

	posts, err := a.platform.Search(ctx, req.Query, limit)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	report := &EngageReport{Query: req.Query, Matched: len(posts)}
	if len(posts) == 0 {
		log.Info("no posts matched query")
		return report, nil
	}

	for _, p := range posts {
		for _, action := range req.Action.expand() {
			if a.engageLim != nil && !a.engageLim.Allow() {
				report.Results = append(report.Results, EngageResult{
					PostID: p.ID,
					Action: string(action),
					Err:    "hourly engagement cap reached",
				})
				engageActionsCounter.WithLabelValues(string(action), "capped").Inc()
				continue
			}
			if err := a.replyLimiter.Wait(ctx); err != nil {
				return report, err
			}
			res := EngageResult{PostID: p.ID, Action: string(action)}
			actErr := a.engageOne(ctx, p, action)
			if actErr != nil {
				log.Warn("engagement action failed", "post", p.ID, "engageAction", action, "err", actErr)
				res.Err = actErr.Error()
				engageActionsCounter.WithLabelValues(string(action), "error").Inc()
			} else {
				res.OK = true
				engageActionsCounter.WithLabelValues(string(action), "ok").Inc()
			}
			a.record(ctx, "engage:"+string(action), p.ID, "", actErr)
			report.Results = append(report.Results, res)
		}
	}
	log.Info("engagement pass complete", "matched", report.Matched, "failed", report.Failed())
	return report, nil
}

func (a *Agent) engageOne(ctx context.Context, p Post, action EngageAction) error {
	switch action {
	case ActionReply:
		text, err := a.content.GenerateReply(ctx, Mention{
			ID:             p.ID,
			Text:           p.Text,
			AuthorID:       p.AuthorID,
			AuthorUsername: p.AuthorUsername,
		})
		if err != nil {
			return fmt.Errorf("generating reply: %w", err)
		}
		_, err = a.platform.Reply(ctx, p.ID, text)
		return err
	case ActionRetweet:
		return a.platform.Retweet(ctx, p.ID)
	case ActionLike:
		return a.platform.Like(ctx, p.ID)
	}
	return fmt.Errorf("unknown engagement action: %s", action)
}
