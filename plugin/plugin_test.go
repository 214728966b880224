package plugin_test

import (
	"testing"

	"github.com/playmesh/plugbridge/abi"
	"github.com/playmesh/plugbridge/plugin"
)

func gameTable(name, impl string, ver abi.Semver) *abi.GameMethods {
	return &abi.GameMethods{
		GameName:    name,
		VariantName: "Standard",
		ImplName:    impl,
		Version:     ver,
	}
}

func frontendTable(name string, ver abi.Semver) *abi.FrontendMethods {
	return &abi.FrontendMethods{FrontendName: name, Version: ver}
}

func testPlugin() *plugin.Plugin {
	return plugin.New(
		plugin.WithGames(func() []*abi.GameMethods {
			return []*abi.GameMethods{
				gameTable("Nim", "test", abi.Semver{Minor: 1}),
				gameTable("Takeaway", "test", abi.Semver{Minor: 1}),
			}
		}),
		plugin.WithFrontends(func() []*abi.FrontendMethods {
			return []*abi.FrontendMethods{frontendTable("Sketch", abi.Semver{Minor: 1})}
		}),
	)
}

func TestInitOnce(t *testing.T) {
	calls := 0
	p := plugin.New(plugin.WithGames(func() []*abi.GameMethods {
		calls++
		return nil
	}))
	p.Init()
	p.Init()
	if calls != 1 {
		t.Fatalf("build ran %d times, want 1", calls)
	}
}

func TestFillGames(t *testing.T) {
	p := testPlugin()
	p.Init()

	if n := p.GameCount(); n != 2 {
		t.Fatalf("got %d games, want 2", n)
	}
	// Nil dst only reports the count.
	if n := p.FillGames(nil); n != 2 {
		t.Fatalf("nil fill reported %d, want 2", n)
	}

	dst := make([]*abi.GameMethods, 2)
	if n := p.FillGames(dst); n != 2 {
		t.Fatalf("filled %d, want 2", n)
	}
	if dst[0].GameName != "Nim" || dst[1].GameName != "Takeaway" {
		t.Fatalf("got %s, %s", dst[0].GameName, dst[1].GameName)
	}

	short := make([]*abi.GameMethods, 1)
	if n := p.FillGames(short); n != 1 {
		t.Fatalf("short fill wrote %d, want 1", n)
	}
}

func TestAPIVersions(t *testing.T) {
	p := testPlugin()
	if p.GameAPIVersion() != abi.GameAPIVersion {
		t.Fatalf("got game API version %d", p.GameAPIVersion())
	}
	if p.FrontendAPIVersion() != abi.FrontendAPIVersion {
		t.Fatalf("got frontend API version %d", p.FrontendAPIVersion())
	}
}

func TestLoadPlugin(t *testing.T) {
	reg := plugin.NewRegistry()
	if err := reg.LoadPlugin(testPlugin()); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if _, ok := reg.Game("Nim", "Standard", "test"); !ok {
		t.Fatalf("Nim not registered")
	}
	if _, ok := reg.FindGame("Takeaway"); !ok {
		t.Fatalf("Takeaway not found by name")
	}
	if _, ok := reg.Frontend("Sketch"); !ok {
		t.Fatalf("Sketch not registered")
	}
	if got := len(reg.Games()); got != 2 {
		t.Fatalf("got %d games", got)
	}
}

func TestRegisterRejectsAnonymousTable(t *testing.T) {
	reg := plugin.NewRegistry()
	if err := reg.RegisterGame(&abi.GameMethods{GameName: "NoImpl"}); err == nil {
		t.Fatalf("table without impl name accepted")
	}
	if err := reg.RegisterFrontend(&abi.FrontendMethods{}); err == nil {
		t.Fatalf("frontend without name accepted")
	}
}

func TestRegisterHigherVersionReplaces(t *testing.T) {
	reg := plugin.NewRegistry()
	if err := reg.RegisterGame(gameTable("Nim", "test", abi.Semver{Minor: 1})); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Equal and lower versions are duplicates.
	if err := reg.RegisterGame(gameTable("Nim", "test", abi.Semver{Minor: 1})); err == nil {
		t.Fatalf("equal version accepted")
	}
	if err := reg.RegisterGame(gameTable("Nim", "test", abi.Semver{})); err == nil {
		t.Fatalf("lower version accepted")
	}

	newer := gameTable("Nim", "test", abi.Semver{Minor: 2})
	if err := reg.RegisterGame(newer); err != nil {
		t.Fatalf("newer version rejected: %v", err)
	}
	got, ok := reg.Game("Nim", "Standard", "test")
	if !ok || got != newer {
		t.Fatalf("newer version did not replace")
	}
}

func TestCompatibleFrontends(t *testing.T) {
	reg := plugin.NewRegistry()
	picky := frontendTable("Picky", abi.Semver{Minor: 1})
	picky.IsGameCompatible = func(g *abi.GameMethods) abi.ErrorCode {
		if g.GameName == "Nim" {
			return abi.ErrOK
		}
		return abi.ErrFeatureUnsupported
	}
	if err := reg.RegisterFrontend(picky); err != nil {
		t.Fatalf("register: %v", err)
	}

	nim := gameTable("Nim", "test", abi.Semver{Minor: 1})
	other := gameTable("Chess", "test", abi.Semver{Minor: 1})
	if got := reg.CompatibleFrontends(nim); len(got) != 1 {
		t.Fatalf("got %d frontends for Nim, want 1", len(got))
	}
	if got := reg.CompatibleFrontends(other); len(got) != 0 {
		t.Fatalf("got %d frontends for Chess, want 0", len(got))
	}
}
