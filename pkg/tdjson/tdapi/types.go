package tdapi

import (
	"encoding/json"
	"fmt"

	"github.com/tdjson-go/tdjson/pkg/tdjson"
)

// Ok is the empty success reply.
type Ok struct{}

func (Ok) Type() string { return "ok" }

// Error is TDLib's error reply. It also satisfies the error interface.
type Error struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

func (Error) Type() string { return "error" }

func (e *Error) Error() string {
	return fmt.Sprintf("tdlib error %d: %s", e.Code, e.Message)
}

type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

func (User) Type() string { return "user" }

type TextEntity struct {
	Offset int32 `json:"offset"`
	Length int32 `json:"length"`
	// Type of the entity, kept undecoded.
	Kind json.RawMessage `json:"type"`
}

func (TextEntity) Type() string { return "textEntity" }

type TextEntities struct {
	Entities []TextEntity `json:"entities"`
}

func (TextEntities) Type() string { return "textEntities" }

type LogVerbosityLevel struct {
	VerbosityLevel int32 `json:"verbosity_level"`
}

func (LogVerbosityLevel) Type() string { return "logVerbosityLevel" }

type FormattedText struct {
	Text     string       `json:"text"`
	Entities []TextEntity `json:"entities"`
}

func (FormattedText) Type() string { return "formattedText" }

// MessageContent is the content of a message. Contents this package does
// not model decode to *tdjson.Unrecognized.
type MessageContent interface {
	Type() string
}

type MessageText struct {
	Text FormattedText `json:"text"`
}

func (MessageText) Type() string { return "messageText" }

type Message struct {
	ID           int64          `json:"id"`
	SenderUserID int64          `json:"sender_user_id"`
	ChatID       int64          `json:"chat_id"`
	Date         int32          `json:"date"`
	Content      MessageContent `json:"content"`
}

func (Message) Type() string { return "message" }

func (m *Message) UnmarshalJSON(data []byte) error {
	type plain Message
	var aux struct {
		plain
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*m = Message(aux.plain)
	if len(aux.Content) == 0 || string(aux.Content) == "null" {
		return nil
	}
	content, err := messageContents.Decode(aux.Content)
	if err != nil {
		return fmt.Errorf("message content: %w", err)
	}
	m.Content = content
	return nil
}

// InputMessageContent is the content of a message being sent.
type InputMessageContent interface {
	Type() string
}

type InputMessageText struct {
	Text                  FormattedText `json:"text"`
	DisableWebPagePreview bool          `json:"disable_web_page_preview"`
	ClearDraft            bool          `json:"clear_draft"`
}

func (InputMessageText) Type() string { return "inputMessageText" }

// MarshalJSON tags the object, since TDLib cannot infer which
// InputMessageContent it is.
func (t InputMessageText) MarshalJSON() ([]byte, error) {
	type plain InputMessageText
	return tdjson.Tag(t.Type(), plain(t))
}

// AuthorizationState is the state of user authorization.
type AuthorizationState interface {
	Type() string
}

type AuthorizationStateWaitTdlibParameters struct{}

func (AuthorizationStateWaitTdlibParameters) Type() string {
	return "authorizationStateWaitTdlibParameters"
}

type AuthorizationStateWaitEncryptionKey struct {
	IsEncrypted bool `json:"is_encrypted"`
}

func (AuthorizationStateWaitEncryptionKey) Type() string {
	return "authorizationStateWaitEncryptionKey"
}

type AuthorizationStateWaitPhoneNumber struct{}

func (AuthorizationStateWaitPhoneNumber) Type() string { return "authorizationStateWaitPhoneNumber" }

type AuthorizationStateReady struct{}

func (AuthorizationStateReady) Type() string { return "authorizationStateReady" }

type AuthorizationStateClosing struct{}

func (AuthorizationStateClosing) Type() string { return "authorizationStateClosing" }

type AuthorizationStateClosed struct{}

func (AuthorizationStateClosed) Type() string { return "authorizationStateClosed" }

type UpdateAuthorizationState struct {
	AuthorizationState AuthorizationState `json:"authorization_state"`
}

func (UpdateAuthorizationState) Type() string { return "updateAuthorizationState" }

func (u *UpdateAuthorizationState) UnmarshalJSON(data []byte) error {
	var aux struct {
		AuthorizationState json.RawMessage `json:"authorization_state"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	state, err := authorizationStates.Decode(aux.AuthorizationState)
	if err != nil {
		return fmt.Errorf("authorization state: %w", err)
	}
	u.AuthorizationState = state
	return nil
}

type UpdateNewMessage struct {
	Message Message `json:"message"`
}

func (UpdateNewMessage) Type() string { return "updateNewMessage" }
