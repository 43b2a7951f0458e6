package dictionary

import (
	"sync"
)

// Lazy builds an index on first use. Every caller, concurrent or not,
// gets the same index and the same load error.
type Lazy struct {
	once sync.Once
	load func() (*Index, error)
	idx  *Index
	err  error
}

// NewLazy wraps load so it runs at most once.
func NewLazy(load func() (*Index, error)) *Lazy {
	return &Lazy{load: load}
}

// Get returns the index, building it on the first call.
func (l *Lazy) Get() (*Index, error) {
	l.once.Do(func() {
		l.idx, l.err = l.load()
	})
	return l.idx, l.err
}

var (
	sharedMu   sync.Mutex
	sharedLazy *Lazy
)

// Shared returns the process-wide index. The first call decides the
// source; later calls reuse the index built from it whatever path they pass.
func Shared(path string, format FileFormat) (*Index, error) {
	sharedMu.Lock()
	if sharedLazy == nil {
		sharedLazy = NewLazy(func() (*Index, error) {
			return Open(path, format)
		})
	}
	lazy := sharedLazy
	sharedMu.Unlock()
	return lazy.Get()
}
