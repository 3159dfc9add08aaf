package provider

import "net/url"

// Request is a fully shaped provider request: method, URL, headers and
// parameters. Descriptors produce these; the requester package executes
// them. No network activity happens in this package.
type Request struct {
	Method string
	URL    string
	Header map[string]string
	// Query is appended to the URL by the transport.
	Query url.Values
	// Form is sent as an x-www-form-urlencoded body when non-empty.
	Form url.Values
	// JSON is sent as a JSON body when non-nil. Mutually exclusive with
	// Form; only GitHub's revocation endpoint uses it.
	JSON map[string]any
	// BasicAuth carries client credentials for providers that demand
	// HTTP Basic client authentication on the token endpoint.
	BasicAuth *BasicAuth
}

// BasicAuth holds an HTTP Basic credential pair.
type BasicAuth struct {
	Username string
	Password string
}

func (r *Request) setHeader(key, value string) {
	if r.Header == nil {
		r.Header = map[string]string{}
	}
	r.Header[key] = value
}
