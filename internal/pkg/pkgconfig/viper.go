package pkgconfig

import (
	"log/slog"
	"path"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Viper is a Config implementation backed by github.com/spf13/viper.
type Viper struct {
	v *viper.Viper

	mu        sync.RWMutex
	listeners []func(event fsnotify.Event)
}

// NewViper loads configuration from the given file path and watches it for changes.
//
// The config file type is inferred by Viper from the filename extension.
// Environment variables override file values, with "." replaced by "_"
// (for example WHALE_FEED_URL overrides whale.feed.url).
func NewViper(pathFile string, defaults ...map[string]any) (*Viper, error) {
	v := viper.New()

	for _, d := range defaults {
		for key, value := range d {
			v.SetDefault(key, value)
		}
	}

	filename := path.Base(pathFile)
	filePath := path.Dir(pathFile)

	configName := path.Base(filename[:len(filename)-len(path.Ext(filename))])

	v.AddConfigPath(filePath)
	v.SetConfigName(configName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	vc := &Viper{v: v}

	v.OnConfigChange(vc.notify)
	v.WatchConfig()

	return vc, nil
}

// OnChange registers fn to be called after the config file is reloaded.
func (vc *Viper) OnChange(fn func(event fsnotify.Event)) {
	vc.mu.Lock()
	defer vc.mu.Unlock()

	vc.listeners = append(vc.listeners, fn)
}

func (vc *Viper) notify(event fsnotify.Event) {
	slog.Info("config reloaded", "file", event.Name, "op", event.Op.String())

	vc.mu.RLock()
	listeners := append([]func(fsnotify.Event){}, vc.listeners...)
	vc.mu.RUnlock()

	for _, fn := range listeners {
		fn(event)
	}
}

// GetInt returns the value for key as int64.
func (vc *Viper) GetInt(key string) int64 {
	return vc.v.GetInt64(key)
}

// GetBool returns the value for key as bool.
func (vc *Viper) GetBool(key string) bool {
	return vc.v.GetBool(key)
}

// GetString returns the value for key as string.
func (vc *Viper) GetString(key string) string {
	return vc.v.GetString(key)
}

// GetArray returns the value for key. A YAML list is returned as is, a
// string is split by commas. Empty items are dropped.
func (vc *Viper) GetArray(key string) []string {
	var items []string
	if raw, ok := vc.v.Get(key).(string); ok {
		items = strings.Split(raw, ",")
	} else {
		items = vc.v.GetStringSlice(key)
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Close implements io.Closer; Viper holds no resources of its own.
func (vc *Viper) Close() error {
	return nil
}
