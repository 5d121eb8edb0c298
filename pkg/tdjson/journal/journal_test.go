package journal_test

import (
	"bytes"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdjson-go/tdjson/pkg/tdjson"
	"github.com/tdjson-go/tdjson/pkg/tdjson/journal"
	"github.com/tdjson-go/tdjson/pkg/tdjson/nativetest"
	"github.com/tdjson-go/tdjson/pkg/tdjson/tdapi"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w, err := journal.NewWriter(&buf)
	require.NoError(t, err)

	before := time.Now().UTC()
	require.NoError(t, w.Append(1, journal.Sent, []byte(`{"@type":"getMe"}`)))
	require.NoError(t, w.Append(1, journal.Received, []byte("\xff not utf-8")))
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.Error(t, w.Append(1, journal.Sent, nil))

	r, err := journal.NewReader(&buf)
	require.NoError(t, err)
	defer r.Close()

	first, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), first.Seq)
	assert.Equal(t, uint32(1), first.Client)
	assert.Equal(t, journal.Sent, first.Dir)
	assert.Equal(t, `{"@type":"getMe"}`, string(first.Payload))
	assert.False(t, first.At.Before(before.Truncate(time.Second)))

	second, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), second.Seq)
	assert.Equal(t, "received", second.Dir.String())
	assert.Equal(t, []byte("\xff not utf-8"), second.Payload)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestWriterConcurrentAppend(t *testing.T) {
	var buf bytes.Buffer
	w, err := journal.NewWriter(&buf)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(client uint32) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if err := w.Append(client, journal.Sent, []byte(`{}`)); err != nil {
					t.Errorf("append: %v", err)
					return
				}
			}
		}(uint32(i + 1))
	}
	wg.Wait()
	require.NoError(t, w.Close())

	entries, err := journal.ReadAll(&buf)
	require.NoError(t, err)
	require.Len(t, entries, 800)
	for i, e := range entries {
		assert.Equal(t, uint64(i+1), e.Seq)
	}
}

func TestRecordAndReplay(t *testing.T) {
	const (
		update = `{"@type":"updateAuthorizationState","authorization_state":{"@type":"authorizationStateWaitTdlibParameters"}}`
		me     = `{"@type":"user","id":42,"first_name":"Echo"}`
		reply  = `{"@type":"logVerbosityLevel","verbosity_level":1}`
	)
	fakes := nativetest.New(
		nativetest.WithResponder(func(req string) []string { return []string{me} }),
		nativetest.WithExecute(func(string) (string, bool) { return reply, true }),
	)

	var buf bytes.Buffer
	w, err := journal.NewWriter(&buf)
	require.NoError(t, err)

	c, err := tdjson.NewTypedClient(tdapi.Schema, tdjson.WithNative(journal.Recording(fakes.Native, w)))
	require.NoError(t, err)
	require.NoError(t, fakes.Last().Push(update))

	level, err := tdjson.Execute[tdapi.LogVerbosityLevel](c, tdapi.GetLogVerbosityLevel{})
	require.NoError(t, err)
	assert.Equal(t, int32(1), level.VerbosityLevel)
	require.NoError(t, c.Send(tdapi.GetMe{}))

	var recorded []string
	for i := 0; i < 2; i++ {
		v, err := c.Untyped().Receive(0)
		require.NoError(t, err)
		recorded = append(recorded, v.String())
	}
	require.NoError(t, c.Close())
	require.NoError(t, w.Close())
	require.NoError(t, w.Err())

	entries, err := journal.ReadAll(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	var dirs []journal.Dir
	for _, e := range entries {
		dirs = append(dirs, e.Dir)
	}
	assert.Equal(t, []journal.Dir{journal.Executed, journal.Reply, journal.Sent, journal.Received, journal.Received}, dirs)

	replayed, err := tdjson.NewTypedClient(tdapi.Schema, tdjson.WithNative(journal.Replay(entries)))
	require.NoError(t, err)
	defer replayed.Close()

	level, err = tdjson.Execute[tdapi.LogVerbosityLevel](replayed, tdapi.GetLogVerbosityLevel{})
	require.NoError(t, err)
	assert.Equal(t, int32(1), level.VerbosityLevel)

	require.NoError(t, replayed.Send(tdapi.GetMe{}))
	var got []string
	for i := 0; i < 2; i++ {
		v, err := replayed.Untyped().Receive(0)
		require.NoError(t, err)
		got = append(got, v.String())
	}
	assert.Equal(t, recorded, got)
	assert.Equal(t, []string{update, me}, got)

	v, err := replayed.Untyped().Receive(0)
	require.NoError(t, err)
	assert.True(t, v.Empty())
}

type countingNative struct {
	tdjson.Native
	receives atomic.Int32
}

func (n *countingNative) Receive(timeout time.Duration) ([]byte, bool) {
	n.receives.Add(1)
	return n.Native.Receive(timeout)
}

func TestReplayWaitsOutTimeoutWhenExhausted(t *testing.T) {
	const update = `{"@type":"updateOption","name":"version"}`
	entries := []journal.Entry{{Seq: 1, Client: 1, Dir: journal.Received, Payload: []byte(update)}}

	var n *countingNative
	replay := journal.Replay(entries)
	c, err := tdjson.NewClient(tdjson.WithTimeout(50*time.Millisecond), tdjson.WithNative(func() (tdjson.Native, error) {
		inner, err := replay()
		if err != nil {
			return nil, err
		}
		n = &countingNative{Native: inner}
		return n, nil
	}))
	require.NoError(t, err)
	sender, receiver, err := c.Split()
	require.NoError(t, err)
	defer sender.Close()

	var got []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range receiver.Updates() {
			got = append(got, update)
		}
	}()

	time.Sleep(250 * time.Millisecond)
	require.NoError(t, receiver.Close())
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Updates did not end after Close")
	}

	assert.Equal(t, []string{update}, got)
	// One receive for the event, then about one per timeout.
	assert.LessOrEqual(t, n.receives.Load(), int32(10))
}
