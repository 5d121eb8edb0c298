// Package tdapi is the part of the TDLib API schema used by the tdjson
// command and the example bot.
//
// Requests embed tdjson.Returns with their reply type, so
// tdjson.Execute[tdapi.TextEntities](c, &tdapi.GetTextEntities{...}) only
// compiles for the right pairing. Schema decodes every object defined here;
// anything else decodes to *tdjson.Unrecognized.
package tdapi
