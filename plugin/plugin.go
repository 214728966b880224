package plugin

import (
	"sync"

	"github.com/playmesh/plugbridge/abi"
)

// Plugin is the unit a plugin module exports: a set of game and
// frontend method tables plus the fixed protocol entry points. Tables
// are built once, on Init, mirroring the load-time initialization the
// protocol prescribes.
type Plugin struct {
	buildGames     func() []*abi.GameMethods
	buildFrontends func() []*abi.FrontendMethods

	once      sync.Once
	games     []*abi.GameMethods
	frontends []*abi.FrontendMethods
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithGames registers the game-table build function.
func WithGames(build func() []*abi.GameMethods) Option {
	return func(p *Plugin) { p.buildGames = build }
}

// WithFrontends registers the frontend-table build function.
func WithFrontends(build func() []*abi.FrontendMethods) Option {
	return func(p *Plugin) { p.buildFrontends = build }
}

// New assembles a plugin from its build functions.
func New(opts ...Option) *Plugin {
	p := &Plugin{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Init builds the static tables. The host invokes it once at load;
// further calls are no-ops.
func (p *Plugin) Init() {
	p.once.Do(func() {
		if p.buildGames != nil {
			p.games = p.buildGames()
		}
		if p.buildFrontends != nil {
			p.frontends = p.buildFrontends()
		}
	})
}

// GameCount reports how many game implementations are exported.
func (p *Plugin) GameCount() uint32 {
	return uint32(len(p.games))
}

// FillGames copies up to len(dst) game-table pointers into dst and
// returns the number written. A nil dst only reports the count.
func (p *Plugin) FillGames(dst []*abi.GameMethods) uint32 {
	if dst == nil {
		return p.GameCount()
	}
	n := copy(dst, p.games)
	return uint32(n)
}

// FrontendCount reports how many frontend implementations are exported.
func (p *Plugin) FrontendCount() uint32 {
	return uint32(len(p.frontends))
}

// FillFrontends copies up to len(dst) frontend-table pointers into dst
// and returns the number written. A nil dst only reports the count.
func (p *Plugin) FillFrontends(dst []*abi.FrontendMethods) uint32 {
	if dst == nil {
		return p.FrontendCount()
	}
	n := copy(dst, p.frontends)
	return uint32(n)
}

// GameAPIVersion reports the game ABI version this plugin was built
// against.
func (p *Plugin) GameAPIVersion() uint64 { return abi.GameAPIVersion }

// FrontendAPIVersion reports the frontend ABI version this plugin was
// built against.
func (p *Plugin) FrontendAPIVersion() uint64 { return abi.FrontendAPIVersion }

// Cleanup is the protocol's unload hook. The static tables need no
// teardown.
func (p *Plugin) Cleanup() {}
