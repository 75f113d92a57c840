package pkgconfig

import "github.com/fsnotify/fsnotify"

// Config is the read-only view of configuration used by the application.
type Config interface {
	GetInt(key string) int64
	GetBool(key string) bool
	GetString(key string) string
	GetArray(key string) []string
	Close() error
}

// Watcher is implemented by configs that reload when their source changes.
type Watcher interface {
	OnChange(fn func(event fsnotify.Event))
}
