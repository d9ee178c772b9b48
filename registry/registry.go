// Package registry holds named factories for services and hosted
// desktop applications. Binaries register what they ship at startup;
// the desktop resolves spawn requests by name at runtime.
package registry

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/termdesk/event"
	"github.com/lixenwraith/termdesk/geom"
	"github.com/lixenwraith/termdesk/layout"
	"github.com/lixenwraith/termdesk/service"
	"github.com/lixenwraith/termdesk/terminal"
)

// RenderInfo is a per-frame snapshot the desktop exposes to hosted
// apps (the monitor window renders it live)
type RenderInfo struct {
	Frame     uint64
	Stats     terminal.FrameStats
	FrameTime time.Duration
	Strategy  terminal.DiffStrategy
	Windows   int
	FPS       int
}

// Host is the surface a hosted app sees of the desktop: it can post
// frame-boundary ops and read render diagnostics. Apps never touch
// window state directly.
type Host interface {
	// Post enqueues a desktop op applied at the next frame boundary
	Post(op event.Op)

	// Render returns the latest per-frame snapshot
	Render() RenderInfo

	// Bell rings the desktop bell: audio when available, a visual
	// flash otherwise
	Bell()
}

// AppSpec describes one hosted application window
type AppSpec struct {
	Title string
	Size  geom.Size // Outer size including chrome; zero uses defaults
	Root  layout.Control

	// Run, when set, is launched on a recovered goroutine after the
	// window spawns. ctx ends when the window closes.
	Run func(ctx context.Context, win uuid.UUID)

	// HandleKey, when set, receives key events while the window has
	// focus, before desktop bindings. Return true to consume.
	HandleKey func(ev terminal.Event) bool
}

// AppFactory builds a fresh app instance per spawned window
type AppFactory func(h Host) AppSpec

// ServiceFactory creates a service instance
type ServiceFactory func() service.Service

var (
	appsMu     sync.RWMutex
	apps       = make(map[string]AppFactory)
	servicesMu sync.RWMutex
	services   = make(map[string]ServiceFactory)
)

// RegisterApp adds an app factory by name, replacing any previous one
func RegisterApp(name string, factory AppFactory) {
	appsMu.Lock()
	defer appsMu.Unlock()
	apps[name] = factory
}

// GetApp retrieves an app factory by name
func GetApp(name string) (AppFactory, bool) {
	appsMu.RLock()
	defer appsMu.RUnlock()
	f, ok := apps[name]
	return f, ok
}

// AppNames returns all registered app names
func AppNames() []string {
	appsMu.RLock()
	defer appsMu.RUnlock()
	names := make([]string, 0, len(apps))
	for name := range apps {
		names = append(names, name)
	}
	return names
}

// RegisterService adds a service factory by name
func RegisterService(name string, factory ServiceFactory) {
	servicesMu.Lock()
	defer servicesMu.Unlock()
	services[name] = factory
}

// GetService retrieves a service factory by name
func GetService(name string) (ServiceFactory, bool) {
	servicesMu.RLock()
	defer servicesMu.RUnlock()
	f, ok := services[name]
	return f, ok
}

// ServiceNames returns all registered service names
func ServiceNames() []string {
	servicesMu.RLock()
	defer servicesMu.RUnlock()
	names := make([]string, 0, len(services))
	for name := range services {
		names = append(names, name)
	}
	return names
}
