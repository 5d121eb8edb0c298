package tdapi

import "github.com/tdjson-go/tdjson/pkg/tdjson"

// Schema decodes the responses and updates defined in this package.
var Schema = tdjson.NewRegistry()

var (
	authorizationStates = tdjson.NewRegistry()
	messageContents     = tdjson.NewRegistry()
)

func init() {
	tdjson.RegisterType[Ok](Schema)
	tdjson.RegisterType[Error](Schema)
	tdjson.RegisterType[User](Schema)
	tdjson.RegisterType[TextEntities](Schema)
	tdjson.RegisterType[LogVerbosityLevel](Schema)
	tdjson.RegisterType[FormattedText](Schema)
	tdjson.RegisterType[Message](Schema)
	tdjson.RegisterType[UpdateAuthorizationState](Schema)
	tdjson.RegisterType[UpdateNewMessage](Schema)

	tdjson.RegisterType[AuthorizationStateWaitTdlibParameters](authorizationStates)
	tdjson.RegisterType[AuthorizationStateWaitEncryptionKey](authorizationStates)
	tdjson.RegisterType[AuthorizationStateWaitPhoneNumber](authorizationStates)
	tdjson.RegisterType[AuthorizationStateReady](authorizationStates)
	tdjson.RegisterType[AuthorizationStateClosing](authorizationStates)
	tdjson.RegisterType[AuthorizationStateClosed](authorizationStates)

	tdjson.RegisterType[MessageText](messageContents)
}
