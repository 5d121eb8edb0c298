package tdjson_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdjson-go/tdjson/pkg/tdjson"
	"github.com/tdjson-go/tdjson/pkg/tdjson/nativetest"
	"github.com/tdjson-go/tdjson/pkg/tdjson/tdapi"
)

const textEntitiesReply = `{"@type":"textEntities","entities":[{"@type":"textEntity","offset":0,"length":9,"type":{"@type":"textEntityTypeMention"}}]}`

func newTypedClient(t *testing.T, opts ...nativetest.Option) (*tdjson.TypedClient, *nativetest.Fakes) {
	t.Helper()
	fakes := nativetest.New(opts...)
	c, err := tdjson.NewTypedClient(tdapi.Schema, tdjson.WithNative(fakes.Native))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, c.Close())
		assert.Empty(t, fakes.Violations())
	})
	return c, fakes
}

func TestTag(t *testing.T) {
	tests := []struct {
		name string
		typ  string
		v    any
		want string
	}{
		{name: "no fields", typ: "getMe", v: struct{}{}, want: `{"@type":"getMe"}`},
		{name: "fields kept in order", typ: "getTextEntities", v: tdapi.GetTextEntities{Text: "hi"}, want: `{"@type":"getTextEntities","text":"hi"}`},
		{name: "map", typ: "x", v: map[string]int{"a": 1}, want: `{"@type":"x","a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tdjson.Tag(tt.typ, tt.v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}

	_, err := tdjson.Tag("x", []int{1})
	assert.Error(t, err)
	_, err = tdjson.Tag("x", (*tdapi.GetMe)(nil))
	assert.Error(t, err)
}

func TestTypedExecuteMatchesDirectDecode(t *testing.T) {
	c, fakes := newTypedClient(t, nativetest.WithExecute(func(req string) (string, bool) {
		return textEntitiesReply, true
	}))

	got, err := tdjson.Execute[tdapi.TextEntities](c, &tdapi.GetTextEntities{Text: "@telegram"})
	require.NoError(t, err)

	var want tdapi.TextEntities
	require.NoError(t, json.Unmarshal([]byte(textEntitiesReply), &want))
	assert.Equal(t, &want, got)
	require.Len(t, got.Entities, 1)
	assert.Equal(t, int32(9), got.Entities[0].Length)

	assert.Equal(t, []string{`{"@type":"getTextEntities","text":"@telegram"}`}, fakes.Last().Executed())
}

func TestTypedExecuteWrongReplyType(t *testing.T) {
	const reply = `{"@type":"error","code":400,"message":"Request can't be executed synchronously"}`
	c, _ := newTypedClient(t, nativetest.WithExecute(func(string) (string, bool) { return reply, true }))

	got, err := tdjson.Execute[tdapi.User](c, tdapi.GetMe{})
	require.ErrorIs(t, err, tdjson.ErrDeserialization)
	assert.Nil(t, got)

	var te *tdjson.Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, reply, te.Raw)

	tdErr, ok := tdapi.ReplyError(err)
	require.True(t, ok)
	assert.Equal(t, int32(400), tdErr.Code)
}

func TestTypedExecuteNoReply(t *testing.T) {
	c, _ := newTypedClient(t)

	got, err := tdjson.Execute[tdapi.User](c, tdapi.GetMe{})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTypedReceive(t *testing.T) {
	c, fakes := newTypedClient(t)
	require.NoError(t, fakes.Last().Push(
		`{"@type":"updateAuthorizationState","authorization_state":{"@type":"authorizationStateWaitTdlibParameters"}}`,
		`{"@type":"updateOption","name":"version","value":{"@type":"optionValueString","value":"1.8.0"}}`,
		`{"@type":"updateNewMessage","message":{"@type":"message","id":7,"sender_user_id":3,"chat_id":5,"content":{"@type":"messageText","text":{"@type":"formattedText","text":"hello","entities":[]}}}}`,
		`{"no_type":true}`,
	))

	resp, err := c.Receive(0)
	require.NoError(t, err)
	auth, ok := resp.(*tdapi.UpdateAuthorizationState)
	require.True(t, ok, "got %T", resp)
	assert.IsType(t, &tdapi.AuthorizationStateWaitTdlibParameters{}, auth.AuthorizationState)

	resp, err = c.Receive(0)
	require.NoError(t, err)
	unknown, ok := resp.(*tdjson.Unrecognized)
	require.True(t, ok, "got %T", resp)
	assert.Equal(t, "updateOption", unknown.Type())
	assert.JSONEq(t, `{"@type":"updateOption","name":"version","value":{"@type":"optionValueString","value":"1.8.0"}}`, string(unknown.Raw))

	resp, err = c.Receive(0)
	require.NoError(t, err)
	msg, ok := resp.(*tdapi.UpdateNewMessage)
	require.True(t, ok, "got %T", resp)
	assert.Equal(t, int64(3), msg.Message.SenderUserID)
	text, ok := msg.Message.Content.(*tdapi.MessageText)
	require.True(t, ok, "got %T", msg.Message.Content)
	assert.Equal(t, "hello", text.Text.Text)

	_, err = c.Receive(0)
	assert.ErrorIs(t, err, tdjson.ErrDeserialization)

	resp, err = c.Receive(0)
	require.NoError(t, err)
	assert.Nil(t, resp)
}

type unencodable struct {
	Ch chan int `json:"ch"`
}

func (unencodable) Type() string { return "unencodable" }

func TestTypedSendSerializationError(t *testing.T) {
	c, fakes := newTypedClient(t)

	err := c.Send(unencodable{Ch: make(chan int)})
	require.ErrorIs(t, err, tdjson.ErrSerialization)
	assert.ErrorIs(t, c.Send(nil), tdjson.ErrSerialization)
	assert.Zero(t, fakes.Last().Sends())
}

func TestTypedAndUntypedShareNative(t *testing.T) {
	c, fakes := newTypedClient(t)

	require.NoError(t, c.Send(tdapi.GetMe{}))
	require.NoError(t, c.Untyped().Send(`{"@type":"getOption","name":"version"}`))

	assert.Equal(t, 1, fakes.Created())
	assert.Equal(t, []string{`{"@type":"getMe"}`, `{"@type":"getOption","name":"version"}`}, fakes.Last().Sent())
}

func TestTypedSplit(t *testing.T) {
	fakes := nativetest.New(nativetest.WithResponder(func(req string) []string {
		return []string{`{"@type":"user","id":42,"first_name":"Echo","username":"echo_bot"}`}
	}))
	c, err := tdjson.NewTypedClient(tdapi.Schema, tdjson.WithNative(fakes.Native))
	require.NoError(t, err)

	sender, receiver, err := c.Split()
	require.NoError(t, err)
	assert.ErrorIs(t, c.Send(tdapi.GetMe{}), tdjson.ErrClosed)

	require.NoError(t, sender.Send(tdapi.GetMe{}))
	var me *tdapi.User
	for resp := range receiver.Updates() {
		if u, ok := resp.(*tdapi.User); ok {
			me = u
			break
		}
	}
	require.NotNil(t, me)
	assert.Equal(t, int64(42), me.ID)

	require.NoError(t, sender.Close())
	require.NoError(t, receiver.Close())
	assert.Equal(t, 1, fakes.Destroyed())
	assert.Empty(t, fakes.Violations())
}

func TestSendMessageEncoding(t *testing.T) {
	data, err := tdjson.Tag(tdapi.SendMessage{}.Type(), tdapi.SendMessage{
		ChatID:           5,
		ReplyToMessageID: 7,
		InputMessageContent: tdapi.InputMessageText{
			Text:       tdapi.FormattedText{Text: "olleh"},
			ClearDraft: true,
		},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"@type": "sendMessage",
		"chat_id": 5,
		"reply_to_message_id": 7,
		"input_message_content": {
			"@type": "inputMessageText",
			"text": {"text": "olleh", "entities": null},
			"disable_web_page_preview": false,
			"clear_draft": true
		}
	}`, string(data))
}

func TestTypedRequiresSchema(t *testing.T) {
	fakes := nativetest.New()
	_, err := tdjson.NewTypedClient(nil, tdjson.WithNative(fakes.Native))
	require.Error(t, err)
	assert.Zero(t, fakes.Created())

	c, err := tdjson.NewClient(tdjson.WithNative(fakes.Native))
	require.NoError(t, err)
	defer c.Close()
	assert.PanicsWithValue(t, "tdjson: nil schema", func() { tdjson.Typed(c, nil) })

	typed := tdjson.Typed(c, tdapi.Schema)
	assert.Same(t, c, typed.Untyped())
}
