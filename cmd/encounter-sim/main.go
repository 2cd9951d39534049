// Package main provides the encounter simulator binary: it loads weapon and
// character definitions, builds a world, and runs a scripted skirmish until
// one side falls.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/config"
	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/dice"
	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/encounter"
	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/grid"
	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/sheet"
	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/game/weapon"
	"github.com/tothuylinh14259-oss/rhodes-resonance-sub000/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	var src dice.Source
	if cfg.Sim.Seed != 0 {
		src = dice.NewSeededSource(cfg.Sim.Seed)
		logger.Info("using seeded dice source", zap.Int64("seed", cfg.Sim.Seed))
	} else {
		src = dice.NewCryptoSource()
	}

	world := encounter.NewWorld(src, logger)

	// Load content.
	contentStart := time.Now()
	weapons, err := weapon.LoadDir(cfg.Content.WeaponsDir)
	if err != nil {
		logger.Fatal("loading weapon definitions", zap.Error(err))
	}
	if res := world.DefineWeapons(weapons...); !res.OK {
		logger.Fatal("registering weapons", zap.Any("meta", res.Meta))
	}
	characters, err := sheet.LoadDir(cfg.Content.CharactersDir)
	if err != nil {
		logger.Fatal("loading character definitions", zap.Error(err))
	}
	for _, def := range characters {
		report(world.DefineCharacter(def))
	}
	logger.Info("content loaded",
		zap.Int("weapons", len(weapons)),
		zap.Int("characters", len(characters)),
		zap.Duration("elapsed", time.Since(contentStart)),
	)
	if len(characters) < 2 {
		logger.Fatal("need at least two characters for a skirmish",
			zap.Int("count", len(characters)))
	}

	// Arm everyone with the first loaded weapon and scatter them on a line.
	weaponID := weapons[0].ID
	names := make([]string, 0, len(characters))
	for i, def := range characters {
		names = append(names, def.Name)
		report(world.GrantItem(def.Name, weaponID, 1))
		report(world.SetPosition(def.Name, i*4, 0))
	}

	report(world.SetScene("a dusty crossroads"))
	report(world.RollInitiative(names...))

	// Each actor closes on the nearest living rival and swings until only
	// one side stands or the round cap is hit.
	for round := 1; round <= cfg.Sim.MaxRounds; round++ {
		cur := world.CurrentActor()
		if !cur.OK {
			break
		}
		actor := cur.Meta["actor"].(string)
		target := nearestRival(world, names, actor)
		if target == "" {
			break
		}

		if pos := world.GetPosition(target); pos.OK {
			xy := pos.Meta["position"].([]int)
			report(world.MoveTowards(actor, grid.Point{X: xy[0], Y: xy[1]}, 6))
		}
		report(world.UseAction(actor, "action"))
		report(world.AttackWithWeapon(actor, target, weaponID))

		if standing(world, names) <= 1 {
			break
		}
		if next := world.NextTurn(); !next.OK {
			break
		}
	}

	report(world.EndCombat())

	snap := world.Snapshot()
	logger.Info("skirmish complete",
		zap.Any("characters", snap["characters"]),
		zap.Duration("elapsed", time.Since(start)),
	)
	for _, name := range names {
		res := world.StatBlock(name)
		fmt.Fprintf(os.Stdout, "%s: hp=%v dead=%v\n", name, res.Meta["hp"], res.Meta["dead"])
	}
}

// report prints an operation's trace lines to stdout.
func report(res encounter.Result) {
	for _, line := range res.Trace {
		fmt.Fprintln(os.Stdout, line)
	}
}

// nearestRival picks the closest living character other than actor, by range
// band then name.
func nearestRival(w *encounter.World, names []string, actor string) string {
	best := ""
	bestDist := -1
	for _, name := range names {
		if name == actor {
			continue
		}
		sb := w.StatBlock(name)
		if !sb.OK || sb.Meta["dead"] == true {
			continue
		}
		ap := w.GetPosition(actor)
		np := w.GetPosition(name)
		if !ap.OK || !np.OK {
			continue
		}
		axy := ap.Meta["position"].([]int)
		nxy := np.Meta["position"].([]int)
		d := grid.Distance(
			grid.Point{X: axy[0], Y: axy[1]},
			grid.Point{X: nxy[0], Y: nxy[1]},
		)
		if bestDist < 0 || d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// standing counts characters above 0 HP.
func standing(w *encounter.World, names []string) int {
	n := 0
	for _, name := range names {
		sb := w.StatBlock(name)
		if sb.OK && sb.Meta["dead"] != true {
			n++
		}
	}
	return n
}
