package gesture

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// BaseRecognizerID identifies the stock BaseRecognizer in the registry.
const BaseRecognizerID = "base"

// ErrUnknownRecognizer is returned when no factory is registered under an
// identifier.
var ErrUnknownRecognizer = errors.New("gesture: unknown recognizer")

// RecognizerFactory builds a recognizer from the shared config and logger.
type RecognizerFactory func(cfg Config, log *zap.Logger) Recognizer

var registry = struct {
	sync.RWMutex
	factories map[string]RecognizerFactory
}{
	factories: map[string]RecognizerFactory{
		BaseRecognizerID: func(cfg Config, log *zap.Logger) Recognizer {
			return NewBaseRecognizer(cfg, log)
		},
	},
}

// RegisterRecognizer makes a recognizer available under id. Registering an
// identifier that is already taken is a no-op and reports false.
func RegisterRecognizer(id string, factory RecognizerFactory) bool {
	registry.Lock()
	defer registry.Unlock()
	if _, ok := registry.factories[id]; ok {
		return false
	}
	registry.factories[id] = factory
	return true
}

// NewRecognizer builds the recognizer registered under id.
func NewRecognizer(id string, cfg Config, log *zap.Logger) (Recognizer, error) {
	registry.RLock()
	factory, ok := registry.factories[id]
	registry.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRecognizer, id)
	}
	return factory(cfg, log), nil
}

// Recognizers returns the registered identifiers in sorted order.
func Recognizers() []string {
	registry.RLock()
	defer registry.RUnlock()
	ids := make([]string, 0, len(registry.factories))
	for id := range registry.factories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
