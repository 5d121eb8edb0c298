package tdapi

import "github.com/tdjson-go/tdjson/pkg/tdjson"

// TdlibParameters configures a TDLib instance.
type TdlibParameters struct {
	UseTestDC              bool   `json:"use_test_dc"`
	DatabaseDirectory      string `json:"database_directory"`
	FilesDirectory         string `json:"files_directory"`
	UseFileDatabase        bool   `json:"use_file_database"`
	UseChatInfoDatabase    bool   `json:"use_chat_info_database"`
	UseMessageDatabase     bool   `json:"use_message_database"`
	UseSecretChats         bool   `json:"use_secret_chats"`
	APIID                  int32  `json:"api_id"`
	APIHash                string `json:"api_hash"`
	SystemLanguageCode     string `json:"system_language_code"`
	DeviceModel            string `json:"device_model"`
	SystemVersion          string `json:"system_version"`
	ApplicationVersion     string `json:"application_version"`
	EnableStorageOptimizer bool   `json:"enable_storage_optimizer"`
	IgnoreFileNames        bool   `json:"ignore_file_names"`
}

type SetTdlibParameters struct {
	tdjson.Returns[Ok] `json:"-"`
	Parameters         TdlibParameters `json:"parameters"`
}

func (SetTdlibParameters) Type() string { return "setTdlibParameters" }

type CheckDatabaseEncryptionKey struct {
	tdjson.Returns[Ok] `json:"-"`
	EncryptionKey      string `json:"encryption_key"`
}

func (CheckDatabaseEncryptionKey) Type() string { return "checkDatabaseEncryptionKey" }

type CheckAuthenticationBotToken struct {
	tdjson.Returns[Ok] `json:"-"`
	Token              string `json:"token"`
}

func (CheckAuthenticationBotToken) Type() string { return "checkAuthenticationBotToken" }

// GetMe returns the current user.
type GetMe struct {
	tdjson.Returns[User] `json:"-"`
}

func (GetMe) Type() string { return "getMe" }

// SendMessage sends a message. Only the fields the example bot needs are
// modelled.
type SendMessage struct {
	tdjson.Returns[Message] `json:"-"`
	ChatID                  int64               `json:"chat_id"`
	ReplyToMessageID        int64               `json:"reply_to_message_id,omitempty"`
	InputMessageContent     InputMessageContent `json:"input_message_content"`
}

func (SendMessage) Type() string { return "sendMessage" }

// GetTextEntities finds mentions, hashtags, URLs and the like in text. It
// can be executed synchronously.
type GetTextEntities struct {
	tdjson.Returns[TextEntities] `json:"-"`
	Text                         string `json:"text"`
}

func (GetTextEntities) Type() string { return "getTextEntities" }

// SetLogVerbosityLevel can be executed synchronously.
type SetLogVerbosityLevel struct {
	tdjson.Returns[Ok] `json:"-"`
	NewVerbosityLevel  int32 `json:"new_verbosity_level"`
}

func (SetLogVerbosityLevel) Type() string { return "setLogVerbosityLevel" }

// GetLogVerbosityLevel can be executed synchronously.
type GetLogVerbosityLevel struct {
	tdjson.Returns[LogVerbosityLevel] `json:"-"`
}

func (GetLogVerbosityLevel) Type() string { return "getLogVerbosityLevel" }

// Close closes the TDLib instance. An updateAuthorizationState with
// authorizationStateClosed follows once it is done.
type Close struct {
	tdjson.Returns[Ok] `json:"-"`
}

func (Close) Type() string { return "close" }
