package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecorder(t *testing.T) *Recorder {
	t.Helper()
	db, err := SetupDatabase("sqlite://:memory:", 1)
	require.NoError(t, err)
	rec, err := NewRecorder(db)
	require.NoError(t, err)
	return rec
}

func TestRecorderRoundtrip(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	rec := testRecorder(t)

	assert.NoError(rec.Record(ctx, &Action{Kind: "post", Subject: "1001", Detail: "hello world", OK: true}))
	assert.NoError(rec.Record(ctx, &Action{Kind: "reply", Subject: "1002", OK: true}))
	assert.NoError(rec.Record(ctx, &Action{Kind: "post", Subject: "", OK: false, Err: "remote unavailable"}))

	recent, err := rec.Recent(ctx, 2)
	assert.NoError(err)
	if assert.Equal(2, len(recent)) {
		// newest first
		assert.Equal("post", recent[0].Kind)
		assert.False(recent[0].OK)
		assert.Equal("remote unavailable", recent[0].Err)
		assert.Equal("reply", recent[1].Kind)
	}

	all, err := rec.Recent(ctx, 0)
	assert.NoError(err)
	assert.Equal(3, len(all))
}

func TestRecorderCountSince(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	rec := testRecorder(t)

	for i := 0; i < 4; i++ {
		assert.NoError(rec.Record(ctx, &Action{Kind: "post", OK: true}))
	}
	assert.NoError(rec.Record(ctx, &Action{Kind: "dm", OK: true}))

	since := time.Now().Add(-time.Minute)

	posts, err := rec.CountSince(ctx, "post", since)
	assert.NoError(err)
	assert.Equal(int64(4), posts)

	all, err := rec.CountSince(ctx, "", since)
	assert.NoError(err)
	assert.Equal(int64(5), all)

	future, err := rec.CountSince(ctx, "post", time.Now().Add(time.Minute))
	assert.NoError(err)
	assert.Equal(int64(0), future)

	byKind, err := rec.CountsSince(ctx, since)
	assert.NoError(err)
	assert.Equal(map[string]int64{"post": 4, "dm": 1}, byKind)
}

func TestNilRecorderIsNoop(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	var rec *Recorder
	assert.NoError(rec.Record(ctx, &Action{Kind: "post"}))

	recent, err := rec.Recent(ctx, 10)
	assert.NoError(err)
	assert.Empty(recent)

	count, err := rec.CountSince(ctx, "post", time.Now())
	assert.NoError(err)
	assert.Equal(int64(0), count)

	counts, err := rec.CountsSince(ctx, time.Now())
	assert.NoError(err)
	assert.Empty(counts)
}

func TestSetupDatabaseRejectsUnknownScheme(t *testing.T) {
	assert := assert.New(t)
	_, err := SetupDatabase("mysql://root@localhost/magpie", 1)
	assert.Error(err)
}
