package view

import (
	"sync"

	"github.com/ChainSafe/mzview/profile"
	"github.com/pkg/errors"
)

var (
	ErrDuplicateView = errors.New("view already registered")
	ErrNoView        = errors.New("no view accepts the data")
)

// Definition is a view type a host can open files with.
type Definition interface {
	Name() string
	LongName() string
	IsValidForData(data []byte) bool
	Init(data []byte, sink Sink) (*Report, error)
}

// Registrar is the host side of view registration.
type Registrar interface {
	RegisterView(def Definition) error
}

// Register builds the MSDOS view from prof and registers it with reg.
func Register(reg Registrar, prof *profile.LoaderProfile) error {
	v, err := New(prof)
	if err != nil {
		return err
	}
	return reg.RegisterView(v)
}

// Registry is an in-process Registrar. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	views []Definition
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) RegisterView(def Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.views {
		if v.Name() == def.Name() {
			return errors.Wrapf(ErrDuplicateView, "%q", def.Name())
		}
	}
	r.views = append(r.views, def)
	return nil
}

// Lookup returns the view registered under name.
func (r *Registry) Lookup(name string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, v := range r.views {
		if v.Name() == name {
			return v, true
		}
	}
	return nil, false
}

// Open returns the first registered view whose probe accepts data.
func (r *Registry) Open(data []byte) (Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, v := range r.views {
		if v.IsValidForData(data) {
			return v, nil
		}
	}
	return nil, ErrNoView
}

// Views lists the registered views in registration order.
func (r *Registry) Views() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Definition(nil), r.views...)
}
