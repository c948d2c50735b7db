package http

import (
	"net/http"
	"sort"

	"github.com/km-arc/go-beans/framework/container"
	"github.com/km-arc/go-beans/framework/routing"
)

// BeanInfo describes one bean as reported by BeanHandler.
type BeanInfo struct {
	Name      string `json:"name"`
	Type      string `json:"type,omitempty"`
	Singleton bool   `json:"singleton"`
}

// BeanHandler serves a read-only view of a container. It never builds a bean.
//
//	GET /beans          → {"data": [BeanInfo...]}
//	GET /beans/{name}   → {"data": BeanInfo} or 404
type BeanHandler struct {
	beans *container.Container
}

// NewBeanHandler creates a handler over c.
func NewBeanHandler(c *container.Container) *BeanHandler {
	return &BeanHandler{beans: c}
}

// Routes mounts the handler under prefix.
func (h *BeanHandler) Routes(r *routing.Router, prefix string) {
	r.Prefix(prefix, func(sub *routing.Router) {
		sub.Get("/", h.Index)
		sub.Get("/{name}", h.Show)
	})
}

// Index lists every bean that has a definition or a singleton, sorted by name.
func (h *BeanHandler) Index(w http.ResponseWriter, r *http.Request) {
	seen := make(map[string]bool)
	for _, n := range h.beans.BeanDefinitionNames() {
		seen[n] = true
	}
	for _, n := range h.beans.SingletonNames() {
		seen[n] = true
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)

	out := make([]BeanInfo, 0, len(names))
	for _, n := range names {
		out = append(out, h.describe(n))
	}
	writeData(w, out)
}

// Show describes a single bean.
func (h *BeanHandler) Show(w http.ResponseWriter, r *http.Request) {
	name := routing.Param(r, "name")
	if !h.beans.ContainsBean(name) {
		writeUnknownBean(w, name)
		return
	}
	writeData(w, h.describe(name))
}

func (h *BeanHandler) describe(name string) BeanInfo {
	info := BeanInfo{Name: name, Singleton: h.beans.ContainsSingleton(name)}
	if def, err := h.beans.BeanDefinition(name); err == nil {
		if bp := def.Blueprint(); bp != nil {
			info.Type = bp.TypeName()
		}
	}
	return info
}
