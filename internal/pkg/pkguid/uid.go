package pkguid

// StringID generates unique string identifiers (HTTP correlation ids).
type StringID interface {
	Generate() string
}

// NumberID generates unique numeric identifiers (websocket request ids).
type NumberID interface {
	Generate() int64
}
