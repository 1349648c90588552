package copyflag

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitToken(t *testing.T, ch <-chan Token) Token {
	t.Helper()
	select {
	case tok := <-ch:
		return tok
	case <-time.After(time.Second):
		t.Fatal("expiry callback did not fire")
		return 0
	}
}

func TestIndicator_MarkAndExpire(t *testing.T) {
	clock := clockwork.NewFakeClock()
	ind := New(2*time.Second, WithClock(clock))
	fired := make(chan Token, 1)

	assert.Equal(t, "", ind.Current())

	tok := ind.Mark("auth", func(t Token) { fired <- t })
	assert.Equal(t, "auth", ind.Current())
	assert.True(t, ind.IsCopied("auth"))
	assert.False(t, ind.IsCopied("payload"))

	clock.Advance(1999 * time.Millisecond)
	select {
	case <-fired:
		t.Fatal("fired before the delay")
	case <-time.After(20 * time.Millisecond):
	}
	assert.Equal(t, "auth", ind.Current())

	clock.Advance(time.Millisecond)
	got := waitToken(t, fired)
	assert.Equal(t, tok, got)

	assert.True(t, ind.Expire(got))
	assert.Equal(t, "", ind.Current())
	assert.False(t, ind.Expire(got), "second expire is a no-op")
}

func TestIndicator_NewerMarkSurvivesOlderTimer(t *testing.T) {
	clock := clockwork.NewFakeClock()
	ind := New(2*time.Second, WithClock(clock))
	fired := make(chan Token, 4)
	onExpire := func(t Token) { fired <- t }

	first := ind.Mark("endpoint-0", onExpire)
	clock.Advance(time.Second)
	second := ind.Mark("endpoint-1", onExpire)
	require.NotEqual(t, first, second)

	// A stale token delivered late must not clear the newer key.
	assert.False(t, ind.Expire(first))
	assert.Equal(t, "endpoint-1", ind.Current())

	clock.Advance(time.Second)
	select {
	case tok := <-fired:
		t.Fatalf("stopped timer fired with token %d", tok)
	case <-time.After(20 * time.Millisecond):
	}

	clock.Advance(time.Second)
	assert.Equal(t, second, waitToken(t, fired))
	assert.True(t, ind.Expire(second))
	assert.Equal(t, "", ind.Current())
}

func TestIndicator_Stop(t *testing.T) {
	clock := clockwork.NewFakeClock()
	ind := New(time.Second, WithClock(clock))
	fired := make(chan Token, 1)

	ind.Mark("payload", func(t Token) { fired <- t })
	ind.Stop()
	clock.Advance(2 * time.Second)

	select {
	case <-fired:
		t.Fatal("stopped indicator fired")
	case <-time.After(20 * time.Millisecond):
	}
	assert.Equal(t, "payload", ind.Current())
}

func TestNew_DefaultDelay(t *testing.T) {
	assert.Equal(t, DefaultDelay, New(0).Delay())
	assert.Equal(t, 3*time.Second, New(3*time.Second).Delay())
}

func TestIndicator_Properties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("only the latest token clears the key", prop.ForAll(
		func(keys []string) bool {
			ind := New(time.Second, WithClock(clockwork.NewFakeClock()))
			tokens := make([]Token, 0, len(keys))
			for _, k := range keys {
				tokens = append(tokens, ind.Mark(k, nil))
			}
			last := keys[len(keys)-1]
			for _, tok := range tokens[:len(tokens)-1] {
				if ind.Expire(tok) || ind.Current() != last {
					return false
				}
			}
			return ind.Expire(tokens[len(tokens)-1]) && ind.Current() == ""
		},
		gen.SliceOf(gen.Identifier()).
			SuchThat(func(ks []string) bool { return len(ks) > 0 }),
	))

	properties.TestingRun(t)
}
