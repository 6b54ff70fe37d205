// Package module defines what the API mounts and the set it mounts them from
package module

import (
	"fmt"
	"reflect"

	phttp "minishop/internal/platform/net/http"

	"github.com/samber/lo"
)

// Module is one mountable slice of the API
// Ports is nil or the collaborators it offers other modules
type Module interface {
	Name() string
	MountRoutes(r phttp.Router)
	Ports() any
}

// Set keeps modules in mount order under unique names
type Set struct {
	order  []Module
	byName map[string]Module
}

// NewSet fails on an empty or repeated name
func NewSet(mods ...Module) (*Set, error) {
	s := &Set{byName: make(map[string]Module, len(mods))}
	for _, m := range mods {
		name := m.Name()
		if name == "" {
			return nil, fmt.Errorf("module: %T has no name", m)
		}
		if _, dup := s.byName[name]; dup {
			return nil, fmt.Errorf("module: %q registered twice", name)
		}
		s.byName[name] = m
		s.order = append(s.order, m)
	}
	return s, nil
}

// Get returns the module called name
func (s *Set) Get(name string) (Module, bool) {
	m, ok := s.byName[name]
	return m, ok
}

// Names in mount order
func (s *Set) Names() []string {
	return lo.Map(s.order, func(m Module, _ int) string { return m.Name() })
}

// Mount mounts every module on r in order
func (s *Set) Mount(r phttp.Router) {
	for _, m := range s.order {
		m.MountRoutes(r)
	}
}

// Lookup finds a T among the ports of the module called name
func Lookup[T any](s *Set, name string) (T, bool) {
	m, ok := s.Get(name)
	if !ok {
		var zero T
		return zero, false
	}
	return Find[T](m)
}

// Find returns m's ports as T, or the first exported field of a ports struct that is a T
func Find[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return zero, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustFind panics naming the module and the wanted type
func MustFind[T any](m Module) T {
	v, ok := Find[T](m)
	if !ok {
		panic(fmt.Sprintf("module %s offers no %s", m.Name(), reflect.TypeFor[T]()))
	}
	return v
}
