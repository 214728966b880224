package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/playmesh/plugbridge/abi"
	"github.com/playmesh/plugbridge/examples/nim"
	"github.com/playmesh/plugbridge/examples/sketch"
	"github.com/playmesh/plugbridge/frontend"
	"github.com/playmesh/plugbridge/game"
	"github.com/playmesh/plugbridge/host"
	"github.com/playmesh/plugbridge/plugin"
	"github.com/playmesh/plugbridge/wasmhost"
)

// config carries environment defaults; flags override them.
type config struct {
	Game    string `env:"PLUGRUN_GAME" envDefault:"Nim"`
	Verbose bool   `env:"PLUGRUN_VERBOSE"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var (
		gameName    = flag.String("game", cfg.Game, "Game to play, by name")
		wasmFile    = flag.String("wasm", "", "Path to a wasm game plugin to load")
		opts        = flag.String("opts", "", "Options string passed to game creation")
		state       = flag.String("state", "", "Initial state string")
		moves       = flag.String("moves", "", "Moves to apply (comma-separated move strings)")
		list        = flag.Bool("list", false, "List registered games and frontends and exit")
		verbose     = flag.Bool("v", cfg.Verbose, "Verbose bridge logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			game.SetLogger(l)
			frontend.SetLogger(l)
			host.SetLogger(l)
			wasmhost.SetLogger(l)
		}
	}

	reg, err := buildRegistry(*wasmFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *list {
		listTables(reg)
		return
	}

	methods, ok := reg.FindGame(*gameName)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: game %q not registered (try -list)\n", *gameName)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(methods, *opts, *state); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(methods, *opts, *state, *moves); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// buildRegistry registers the built-in plugin and, when given, a wasm
// game module.
func buildRegistry(wasmFile string) (*plugin.Registry, error) {
	reg := plugin.NewRegistry()
	builtin := plugin.New(
		plugin.WithGames(func() []*abi.GameMethods {
			return []*abi.GameMethods{nim.Methods()}
		}),
		plugin.WithFrontends(func() []*abi.FrontendMethods {
			return []*abi.FrontendMethods{sketch.Methods()}
		}),
	)
	if err := reg.LoadPlugin(builtin); err != nil {
		return nil, err
	}

	if wasmFile != "" {
		data, err := os.ReadFile(wasmFile)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		ctx := context.Background()
		rt := wasmhost.NewRuntime(ctx)
		mod, err := rt.Load(ctx, data, wasmFile)
		if err != nil {
			return nil, err
		}
		if err := reg.RegisterGame(mod.Methods()); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func listTables(reg *plugin.Registry) {
	fmt.Println("Games:")
	for _, g := range reg.Games() {
		fmt.Printf("  %s/%s/%s v%s", g.GameName, g.VariantName, g.ImplName, g.Version)
		var tags []string
		if g.Features.Options {
			tags = append(tags, "options")
		}
		if g.Features.Print {
			tags = append(tags, "print")
		}
		if g.Features.RandomMoves {
			tags = append(tags, "random")
		}
		if g.Features.HiddenInformation {
			tags = append(tags, "hidden")
		}
		if g.Features.BigMoves {
			tags = append(tags, "bigmoves")
		}
		if len(tags) > 0 {
			fmt.Printf("  [%s]", strings.Join(tags, " "))
		}
		fmt.Println()

		for _, f := range reg.CompatibleFrontends(g) {
			fmt.Printf("    frontend: %s v%s\n", f.FrontendName, f.Version)
		}
	}
	fmt.Println("Frontends:")
	for _, f := range reg.Frontends() {
		fmt.Printf("  %s v%s\n", f.FrontendName, f.Version)
	}
}

func run(methods *abi.GameMethods, opts, state, moves string) error {
	d, err := host.New(methods, abi.StandardInit(opts, state))
	if err != nil {
		return err
	}
	defer d.Close()

	if methods.Features.Options {
		o, err := d.ExportOptions(abi.PlayerNone)
		if err != nil {
			return err
		}
		fmt.Printf("Options: %s\n", o)
	}

	if err := printPosition(d); err != nil {
		return err
	}

	if moves != "" {
		for _, str := range strings.Split(moves, ",") {
			str = strings.TrimSpace(str)
			if str == "" {
				continue
			}
			if err := applyMove(d, str); err != nil {
				return err
			}
			if err := printPosition(d); err != nil {
				return err
			}
		}
	}

	toMove, err := d.PlayersToMove()
	if err != nil {
		return err
	}
	if len(toMove) == 0 {
		results, err := d.Results()
		if err != nil {
			return err
		}
		fmt.Printf("Game over, winners: %v\n", results)
	}
	return nil
}

// applyMove parses the move string for the player to move, checks it,
// and applies it.
func applyMove(d *host.Driver, str string) error {
	toMove, err := d.PlayersToMove()
	if err != nil {
		return err
	}
	if len(toMove) == 0 {
		return fmt.Errorf("no player to move, cannot apply %q", str)
	}
	player := toMove[0]

	mov, err := d.ParseMove(player, str)
	if err != nil {
		return err
	}
	if err := d.IsLegal(player, mov); err != nil {
		return err
	}
	if err := d.MakeMove(player, mov); err != nil {
		return err
	}
	fmt.Printf("Player %d played %s\n", player, str)
	return nil
}

func printPosition(d *host.Driver) error {
	state, err := d.ExportState(abi.PlayerNone)
	if err != nil {
		return err
	}
	fmt.Printf("State: %s\n", state)

	if d.Methods().Features.Print {
		board, err := d.Print(abi.PlayerNone)
		if err != nil {
			return err
		}
		fmt.Print(board)
	}
	return nil
}
