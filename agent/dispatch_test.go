package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEngageAction(t *testing.T) {
	assert := assert.New(t)

	for _, good := range []string{"reply", "retweet", "like", "all", "Reply", "ALL"} {
		action, err := ParseEngageAction(good)
		assert.NoError(err)
		assert.NotEmpty(action)
	}

	_, err := ParseEngageAction("boost")
	assert.ErrorContains(err, "unknown engagement action")

	_, err = ParseEngageAction("")
	assert.Error(err)
}

func TestPostSingleBypassesDailyBudget(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	// budget of zero: the scheduler could never post, but a manual
	// dispatch still can
	a, _, platform, _ := testAgent(t, 0, DefaultConfig())

	id, err := a.PostSingle(ctx, "announcement: maintenance window tonight")
	assert.NoError(err)
	assert.NotEmpty(id)
	assert.Equal(1, platform.postCount())

	_, err = a.PostSingle(ctx, "   ")
	assert.Error(err)
}

func TestReplyAndDMSingleValidate(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	a, _, platform, _ := testAgent(t, 0, DefaultConfig())

	_, err := a.ReplySingle(ctx, "", "text")
	assert.Error(err)
	_, err = a.ReplySingle(ctx, "55", "")
	assert.Error(err)

	id, err := a.ReplySingle(ctx, "55", "good point!")
	assert.NoError(err)
	assert.NotEmpty(id)
	assert.Equal(1, platform.replyCount("55"))

	_, err = a.SendDirectMessage(ctx, "", "text")
	assert.Error(err)

	_, err = a.SendDirectMessage(ctx, "777", "here are the details")
	assert.NoError(err)
	platform.mu.Lock()
	assert.Equal(1, len(platform.dms["777"]))
	platform.mu.Unlock()
}

func TestSearchAndEngageAll(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	cfg := DefaultConfig()
	cfg.ReplyPace = 0
	a, _, platform, _ := testAgent(t, 0, cfg)
	platform.searchPosts = []Post{
		{ID: "601", Text: "what's driving the rally?", AuthorID: "41"},
		{ID: "602", Text: "L2 fees are wild today", AuthorID: "42"},
	}

	report, err := a.SearchAndEngage(ctx, EngageRequest{Query: "crypto", Action: ActionAll})
	assert.NoError(err)
	assert.Equal(2, report.Matched)
	assert.Equal(6, len(report.Results)) // reply+retweet+like per post
	assert.Equal(0, report.Failed())

	platform.mu.Lock()
	defer platform.mu.Unlock()
	assert.Equal([]string{"echo: what's driving the rally?"}, platform.replies["601"])
	assert.Equal([]string{"echo: L2 fees are wild today"}, platform.replies["602"])
	assert.Equal([]string{"601", "602"}, platform.retweets)
	assert.Equal([]string{"601", "602"}, platform.likes)
}

func TestSearchAndEngagePartialFailure(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	cfg := DefaultConfig()
	cfg.ReplyPace = 0
	a, _, platform, _ := testAgent(t, 0, cfg)
	platform.searchPosts = []Post{
		{ID: "701", Text: "first"},
		{ID: "702", Text: "second"},
		{ID: "703", Text: "third"},
	}
	platform.likeFails = 1

	report, err := a.SearchAndEngage(ctx, EngageRequest{Query: "defi", Action: ActionLike})
	assert.NoError(err)
	assert.Equal(3, report.Matched)
	assert.Equal(1, report.Failed())

	// the failure was isolated; the other two likes landed
	platform.mu.Lock()
	assert.Equal(2, len(platform.likes))
	platform.mu.Unlock()
}

func TestSearchAndEngageHourlyCap(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	cfg := DefaultConfig()
	cfg.ReplyPace = 0
	cfg.EngagePerHour = 2
	a, _, platform, _ := testAgent(t, 0, cfg)
	platform.searchPosts = []Post{
		{ID: "801", Text: "a"},
		{ID: "802", Text: "b"},
		{ID: "803", Text: "c"},
	}

	report, err := a.SearchAndEngage(ctx, EngageRequest{Query: "nft", Action: ActionLike})
	assert.NoError(err)
	assert.Equal(2, len(platform.likes))
	assert.Equal(1, report.Failed())

	capped := 0
	for _, res := range report.Results {
		if res.Err == "hourly engagement cap reached" {
			capped++
		}
	}
	assert.Equal(1, capped)
}

func TestSearchAndEngageValidation(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	a, _, _, _ := testAgent(t, 0, DefaultConfig())

	_, err := a.SearchAndEngage(ctx, EngageRequest{Query: "", Action: ActionLike})
	assert.Error(err)

	_, err = a.SearchAndEngage(ctx, EngageRequest{Query: "crypto", Action: "boost"})
	assert.Error(err)
}

func TestSearchAndEngageEmptyResults(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	a, _, _, _ := testAgent(t, 0, DefaultConfig())

	report, err := a.SearchAndEngage(ctx, EngageRequest{Query: "obscure topic", Action: ActionReply})
	assert.NoError(err)
	assert.Equal(0, report.Matched)
	assert.Empty(report.Results)
}
