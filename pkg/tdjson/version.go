package tdjson

import "encoding/json"

// Version is the wrapper version, set at build time via ldflags.
var Version = "v0.0.0-in-progress"

// versionRequest can be executed synchronously and reports the linked
// TDLib version.
const versionRequest = `{"@type":"getOption","name":"version"}`

// WrapperVersion returns the semantic version populated at build time via
// ldflags. In development it defaults to v0.0.0-in-progress.
func WrapperVersion() string {
	return Version
}

// NativeVersion asks c for the version of the TDLib it runs. It returns ""
// when TDLib does not answer.
func NativeVersion(c *Client) (string, error) {
	var out string
	err := c.executeWith(versionRequest, func(v View) error {
		if v.Empty() {
			return nil
		}
		var opt struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal(v.Bytes(), &opt); err != nil {
			return decodeError("version", v.Bytes(), err)
		}
		out = opt.Value
		return nil
	})
	return out, err
}
