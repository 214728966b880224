package plugin

import (
	"sort"
	"sync"

	"github.com/coreos/go-semver/semver"

	"github.com/playmesh/plugbridge/abi"
	"github.com/playmesh/plugbridge/errors"
)

// Registry is the host-side index of loaded method tables, keyed by
// game (name, variant, implementation) and frontend name. Registering a
// strictly newer version of an existing key replaces it; anything else
// is rejected as a duplicate.
type Registry struct {
	mu        sync.RWMutex
	games     map[string]*abi.GameMethods
	frontends map[string]*abi.FrontendMethods
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		games:     make(map[string]*abi.GameMethods),
		frontends: make(map[string]*abi.FrontendMethods),
	}
}

// LoadPlugin verifies the plugin's ABI versions, initializes it, and
// registers everything it exports.
func (r *Registry) LoadPlugin(p *Plugin) error {
	if v := p.GameAPIVersion(); v != abi.GameAPIVersion {
		return errors.VersionMismatch(errors.PhaseRegistration, abi.GameAPIVersion, v)
	}
	if v := p.FrontendAPIVersion(); v != abi.FrontendAPIVersion {
		return errors.VersionMismatch(errors.PhaseRegistration, abi.FrontendAPIVersion, v)
	}
	p.Init()

	games := make([]*abi.GameMethods, p.GameCount())
	p.FillGames(games)
	for _, m := range games {
		if err := r.RegisterGame(m); err != nil {
			return err
		}
	}

	frontends := make([]*abi.FrontendMethods, p.FrontendCount())
	p.FillFrontends(frontends)
	for _, m := range frontends {
		if err := r.RegisterFrontend(m); err != nil {
			return err
		}
	}
	return nil
}

// RegisterGame adds one game method table.
func (r *Registry) RegisterGame(m *abi.GameMethods) error {
	if m == nil || m.GameName == "" || m.ImplName == "" {
		return errors.New(errors.PhaseRegistration, errors.KindRegistration).
			Detail("game table must carry a game name and an implementation name").
			Build()
	}
	ver, err := parseVersion(m.Version)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	key := gameKey(m)
	if old, ok := r.games[key]; ok {
		oldVer, err := parseVersion(old.Version)
		if err != nil {
			return err
		}
		if !oldVer.LessThan(*ver) {
			return errors.New(errors.PhaseRegistration, errors.KindRegistration).
				Path(key).
				Detail("already registered at version %s (offered %s)", oldVer, ver).
				Build()
		}
	}
	r.games[key] = m
	return nil
}

// RegisterFrontend adds one frontend method table.
func (r *Registry) RegisterFrontend(m *abi.FrontendMethods) error {
	if m == nil || m.FrontendName == "" {
		return errors.New(errors.PhaseRegistration, errors.KindRegistration).
			Detail("frontend table must carry a name").
			Build()
	}
	ver, err := parseVersion(m.Version)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.frontends[m.FrontendName]; ok {
		oldVer, err := parseVersion(old.Version)
		if err != nil {
			return err
		}
		if !oldVer.LessThan(*ver) {
			return errors.New(errors.PhaseRegistration, errors.KindRegistration).
				Path(m.FrontendName).
				Detail("already registered at version %s (offered %s)", oldVer, ver).
				Build()
		}
	}
	r.frontends[m.FrontendName] = m
	return nil
}

// Game returns the table registered under the exact
// (name, variant, impl) triple.
func (r *Registry) Game(name, variant, impl string) (*abi.GameMethods, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.games[name+"/"+variant+"/"+impl]
	return m, ok
}

// FindGame returns any table whose game name matches.
func (r *Registry) FindGame(name string) (*abi.GameMethods, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, m := range r.games {
		if m.GameName == name {
			return m, true
		}
	}
	return nil, false
}

// Games lists all registered game tables, sorted by key.
func (r *Registry) Games() []*abi.GameMethods {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*abi.GameMethods, 0, len(r.games))
	for _, m := range r.games {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return gameKey(out[i]) < gameKey(out[j]) })
	return out
}

// Frontend returns the table registered under the frontend name.
func (r *Registry) Frontend(name string) (*abi.FrontendMethods, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.frontends[name]
	return m, ok
}

// Frontends lists all registered frontend tables, sorted by name.
func (r *Registry) Frontends() []*abi.FrontendMethods {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*abi.FrontendMethods, 0, len(r.frontends))
	for _, m := range r.frontends {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FrontendName < out[j].FrontendName })
	return out
}

// CompatibleFrontends filters the registered frontends through their
// compatibility probe for the given game.
func (r *Registry) CompatibleFrontends(game *abi.GameMethods) []*abi.FrontendMethods {
	var out []*abi.FrontendMethods
	for _, f := range r.Frontends() {
		if f.IsGameCompatible != nil && f.IsGameCompatible(game).IsOK() {
			out = append(out, f)
		}
	}
	return out
}

func gameKey(m *abi.GameMethods) string {
	return m.GameName + "/" + m.VariantName + "/" + m.ImplName
}

func parseVersion(v abi.Semver) (*semver.Version, error) {
	ver, err := semver.NewVersion(v.String())
	if err != nil {
		return nil, errors.New(errors.PhaseRegistration, errors.KindRegistration).
			Cause(err).
			Detail("invalid version %q", v.String()).
			Build()
	}
	return ver, nil
}
