package router

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Module describes a feature module that can register its routes on a RouterGroup
type Module interface {
	Register(rg *gin.RouterGroup)
}

// ModuleFunc lets a plain function act as a Module.
type ModuleFunc func(rg *gin.RouterGroup)

func (f ModuleFunc) Register(rg *gin.RouterGroup) { f(rg) }

// Registry collects modules and the middleware shared by all of them.
type Registry struct {
	Engine      *gin.Engine
	Root        *gin.RouterGroup
	Logger      logrus.FieldLogger
	middlewares []gin.HandlerFunc
	modules     []Module
}

// NewRegistry mounts modules under prefix; "" serves them from the root.
func NewRegistry(engine *gin.Engine, prefix string, logger logrus.FieldLogger) *Registry {
	return &Registry{Engine: engine, Root: engine.Group("/" + prefix), Logger: logger}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

// Add queues modules for registration. Nil modules are ignored so optional
// features can be passed unconditionally.
func (r *Registry) Add(mods ...Module) {
	for _, m := range mods {
		if m != nil {
			r.modules = append(r.modules, m)
		}
	}
}

// RegisterAll applies shared middleware, registers every module in the order
// added, and logs the resulting route table at debug level.
func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.Root.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.Root)
	}
	if r.Logger == nil {
		return
	}
	for _, rt := range r.Engine.Routes() {
		r.Logger.WithFields(logrus.Fields{"method": rt.Method, "path": rt.Path}).Debug("route registered")
	}
}
