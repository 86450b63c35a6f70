package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/milkrun/internal/config"
	"github.com/vovakirdan/milkrun/internal/profile"
	"github.com/vovakirdan/milkrun/internal/runstate"
)

var hangarCmd = &cobra.Command{
	Use:   "hangar",
	Short: "Show the pilot profile and the ship catalog",
	Long: `The hangar spends the milk you bank at the end of every run.

Ships change speed, beam size, starting lives and shield time. Items are
one-shot boosts queued for the next run only.

Examples:
  milkrun hangar
  milkrun hangar buy swift
  milkrun hangar equip swift
  milkrun hangar item double_milk`,
	Args: cobra.NoArgs,
	RunE: runHangarList,
}

var hangarBuyCmd = &cobra.Command{
	Use:   "buy <ship>",
	Short: "Buy a ship with banked milk",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withProfile(func(m *profile.Manager) error {
			if err := m.BuyShip(args[0]); err != nil {
				return explain(err)
			}
			fmt.Printf("Bought %s. Milk left: %d\n", args[0], m.Profile().Milk)
			return nil
		})
	},
}

var hangarEquipCmd = &cobra.Command{
	Use:   "equip <ship>",
	Short: "Fly an owned ship on the next run",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withProfile(func(m *profile.Manager) error {
			if err := m.Equip(args[0]); err != nil {
				return explain(err)
			}
			fmt.Printf("Equipped %s.\n", args[0])
			return nil
		})
	},
}

var hangarItemCmd = &cobra.Command{
	Use:   "item <item>",
	Short: "Queue a one-shot item for the next run",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		return withProfile(func(m *profile.Manager) error {
			if err := m.BuyItem(args[0]); err != nil {
				return explain(err)
			}
			fmt.Printf("Queued %s for the next run. Milk left: %d\n", args[0], m.Profile().Milk)
			return nil
		})
	},
}

func init() {
	hangarCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	hangarCmd.AddCommand(hangarBuyCmd, hangarEquipCmd, hangarItemCmd)
}

// withProfile opens the saved profile, runs fn and reports storage problems.
func withProfile(fn func(*profile.Manager) error) error {
	cfg, err := config.LoadMilkrun(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger, closeLog, err := newLogger(os.Stderr, "hangar")
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := profile.OpenStorage(profile.AppName)
	if err != nil {
		return err
	}
	return fn(profile.NewManager(st, cfg, logger))
}

// explain turns profile errors into short messages for the terminal.
func explain(err error) error {
	switch {
	case errors.Is(err, profile.ErrNotEnoughMilk):
		return fmt.Errorf("not enough milk: %w", err)
	case errors.Is(err, profile.ErrUnknownShip), errors.Is(err, profile.ErrUnknownItem):
		return fmt.Errorf("%w (run 'milkrun hangar' for the catalog)", err)
	}
	return err
}

func runHangarList(_ *cobra.Command, _ []string) error {
	return withProfile(func(m *profile.Manager) error {
		p := m.Profile()
		ships, items := m.Catalog()

		fmt.Println("Pilot")
		fmt.Printf("  Milk: %d  Runs: %d  Best score: %d  Best wave: %d\n\n",
			p.Milk, p.RunsPlayed, p.BestScore, p.BestWave)

		fmt.Println("Ships")
		fmt.Printf("  %-2s %-10s %-14s %6s  %5s  %4s  %4s  %5s  %s\n",
			"", "ID", "Name", "Price", "Speed", "Beam", "Milk", "Lives", "Shield")
		for _, s := range ships {
			mark := ""
			switch {
			case s.ID == p.EquippedShip:
				mark = "*"
			case p.Owns(s.ID):
				mark = "+"
			}
			lo := s.Loadout.Resolved()
			fmt.Printf("  %-2s %-10s %-14s %6d  %5.1f  %4.0f  x%.1f  %5d  +%.0fs\n",
				mark, s.ID, s.Name, s.Price, lo.Speed(), lo.TractorBeamSize, lo.MilkBonus,
				lo.InitialLives(runstate.Flags{}), lo.ShieldDurationBonus)
		}
		fmt.Println("  (* equipped, + owned)")
		fmt.Println()

		fmt.Println("Items for the next run")
		for _, it := range items {
			mark := ""
			if queued(p.NextRun, it.ID) {
				mark = "  (queued)"
			}
			fmt.Printf("  %-18s %-22s %6d%s\n", it.ID, it.Name, it.Price, mark)
		}
		return nil
	})
}

// queued reports whether the item's flag is already set for the next run.
func queued(f runstate.Flags, itemID string) bool {
	switch itemID {
	case "double_milk":
		return f.DoubleMilk
	case "golden_cow_charm":
		return f.GoldenCowCharm
	case "anti_gravity":
		return f.AntiGravity
	case "joker_blessing":
		return f.JokerBlessing
	case "lucky_jam":
		return f.LuckyJam
	case "bonus_life":
		return f.BonusLife
	}
	return false
}
