// Package profile keeps the pilot's persistent record: the milk wallet,
// the hangar of owned ships, the equipped ship and the one-shot items
// queued for the next run. Records are stored as YAML through gdata.
package profile

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/milkrun/internal/config"
	"github.com/vovakirdan/milkrun/internal/runstate"
)

// AppName is the gdata application directory.
const AppName = "milkrun"

const (
	pilotObject   = "pilot"
	pilotProperty = "profile"
)

var (
	ErrUnknownShip   = errors.New("profile: unknown ship")
	ErrUnknownItem   = errors.New("profile: unknown item")
	ErrNotEnoughMilk = errors.New("profile: not enough milk")
	ErrNotOwned      = errors.New("profile: ship not owned")
	ErrAlreadyOwned  = errors.New("profile: ship already owned")
	ErrAlreadyQueued = errors.New("profile: item already queued for the next run")
)

// Storage is the part of *gdata.Manager the profile uses.
type Storage interface {
	ObjectPropExists(object, prop string) bool
	LoadObjectProp(object, prop string) ([]byte, error)
	SaveObjectProp(object, prop string, data []byte) error
}

// Profile is the persisted pilot record.
type Profile struct {
	Milk         int            `yaml:"milk"`
	OwnedShips   []string       `yaml:"owned_ships"`
	EquippedShip string         `yaml:"equipped_ship"`
	NextRun      runstate.Flags `yaml:"next_run"`
	BestScore    int            `yaml:"best_score"`
	BestWave     int            `yaml:"best_wave"`
	RunsPlayed   int            `yaml:"runs_played"`
}

func newProfile() Profile {
	return Profile{
		OwnedShips:   []string{config.DefaultShipID},
		EquippedShip: config.DefaultShipID,
	}
}

// Owns reports whether the ship is in the hangar.
func (p Profile) Owns(shipID string) bool {
	return slices.Contains(p.OwnedShips, shipID)
}

// OpenStorage opens the per-user gdata directory for the given app name.
func OpenStorage(appName string) (*gdata.Manager, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("profile: open storage: %w", err)
	}
	return m, nil
}

// Manager owns the profile and hands out run state for each run.
// A nil Storage runs in memory only.
type Manager struct {
	mu      sync.Mutex
	storage Storage
	cfg     config.MilkrunConfig
	log     *log.Logger
	profile Profile

	current *runstate.Store
	hooks   []func(*runstate.Store)
}

// NewManager creates a manager and loads the saved profile. A load failure
// is logged and the manager continues with a fresh profile.
func NewManager(storage Storage, cfg config.MilkrunConfig, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Manager{
		storage: storage,
		cfg:     cfg,
		log:     logger,
		profile: newProfile(),
	}
	if err := m.Load(); err != nil {
		m.log.Warn("using a fresh pilot profile", "err", err)
	}
	return m
}

// Load reads the profile from storage. Missing data leaves a fresh profile.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.profile = newProfile()
	if m.storage == nil || !m.storage.ObjectPropExists(pilotObject, pilotProperty) {
		return nil
	}
	data, err := m.storage.LoadObjectProp(pilotObject, pilotProperty)
	if err != nil {
		return fmt.Errorf("profile: load: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("profile: decode: %w", err)
	}
	m.profile = m.sanitize(p)
	return nil
}

// sanitize drops ships the catalog no longer has and guarantees the
// default ship is owned and something is equipped.
func (m *Manager) sanitize(p Profile) Profile {
	owned := []string{config.DefaultShipID}
	for _, id := range p.OwnedShips {
		if _, ok := m.cfg.Ship(id); ok && !slices.Contains(owned, id) {
			owned = append(owned, id)
		}
	}
	p.OwnedShips = owned
	if !slices.Contains(owned, p.EquippedShip) {
		p.EquippedShip = config.DefaultShipID
	}
	if p.Milk < 0 {
		p.Milk = 0
	}
	return p
}

// Save writes the profile to storage.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveLocked()
}

func (m *Manager) saveLocked() error {
	if m.storage == nil {
		return nil
	}
	data, err := yaml.Marshal(m.profile)
	if err != nil {
		return fmt.Errorf("profile: encode: %w", err)
	}
	if err := m.storage.SaveObjectProp(pilotObject, pilotProperty, data); err != nil {
		return fmt.Errorf("profile: save: %w", err)
	}
	return nil
}

// Profile returns a copy of the current profile.
func (m *Manager) Profile() Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.profile
	p.OwnedShips = slices.Clone(p.OwnedShips)
	return p
}

// Loadout returns the equipped ship's loadout.
func (m *Manager) Loadout() runstate.Loadout {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadoutLocked()
}

func (m *Manager) loadoutLocked() runstate.Loadout {
	ship, ok := m.cfg.Ship(m.profile.EquippedShip)
	if !ok {
		return runstate.Loadout{Skin: config.DefaultShipID}
	}
	lo := ship.Loadout
	if lo.Skin == "" {
		lo.Skin = ship.ID
	}
	return lo
}

// BuyShip spends milk on a ship and adds it to the hangar.
func (m *Manager) BuyShip(shipID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ship, ok := m.cfg.Ship(shipID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownShip, shipID)
	}
	if m.profile.Owns(shipID) {
		return fmt.Errorf("%w: %q", ErrAlreadyOwned, shipID)
	}
	if m.profile.Milk < ship.Price {
		return fmt.Errorf("%w: %s costs %d, wallet has %d", ErrNotEnoughMilk, ship.Name, ship.Price, m.profile.Milk)
	}
	m.profile.Milk -= ship.Price
	m.profile.OwnedShips = append(m.profile.OwnedShips, shipID)
	m.log.Info("ship bought", "ship", shipID, "milk", m.profile.Milk)
	return m.saveLocked()
}

// Equip selects an owned ship for the next run.
func (m *Manager) Equip(shipID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.cfg.Ship(shipID); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownShip, shipID)
	}
	if !m.profile.Owns(shipID) {
		return fmt.Errorf("%w: %q", ErrNotOwned, shipID)
	}
	m.profile.EquippedShip = shipID
	return m.saveLocked()
}

// BuyItem spends milk on a one-shot item for the next run.
func (m *Manager) BuyItem(itemID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.cfg.Item(itemID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, itemID)
	}
	flags := m.profile.NextRun
	set, known := setFlag(&flags, itemID)
	if !known {
		return fmt.Errorf("%w: %q", ErrUnknownItem, itemID)
	}
	if set {
		return fmt.Errorf("%w: %q", ErrAlreadyQueued, itemID)
	}
	if m.profile.Milk < item.Price {
		return fmt.Errorf("%w: %s costs %d, wallet has %d", ErrNotEnoughMilk, item.Name, item.Price, m.profile.Milk)
	}
	m.profile.Milk -= item.Price
	m.profile.NextRun = flags
	return m.saveLocked()
}

// setFlag turns on the flag named by its yaml key. It reports whether the
// flag was already set and whether the key is known.
func setFlag(f *runstate.Flags, key string) (wasSet, known bool) {
	var p *bool
	switch key {
	case "double_milk":
		p = &f.DoubleMilk
	case "golden_cow_charm":
		p = &f.GoldenCowCharm
	case "anti_gravity":
		p = &f.AntiGravity
	case "joker_blessing":
		p = &f.JokerBlessing
	case "lucky_jam":
		p = &f.LuckyJam
	case "bonus_life":
		p = &f.BonusLife
	default:
		return false, false
	}
	wasSet = *p
	*p = true
	return wasSet, true
}

// OnRunStart registers fn to be called with the store of every new run.
func (m *Manager) OnRunStart(fn func(*runstate.Store)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, fn)
}

// StartRun consumes the queued items and returns the state store for a new
// run, which serves as both the engine's source and sink.
func (m *Manager) StartRun() (runstate.Source, runstate.Sink) {
	m.mu.Lock()
	if m.current != nil {
		m.current.Close()
	}
	ext := runstate.External{Loadout: m.loadoutLocked(), Flags: m.profile.NextRun}
	m.profile.NextRun = runstate.Flags{}
	if err := m.saveLocked(); err != nil {
		m.log.Warn("could not save profile", "err", err)
	}
	store := runstate.NewStore(ext)
	m.current = store
	hooks := slices.Clone(m.hooks)
	m.mu.Unlock()

	for _, fn := range hooks {
		fn(store)
	}
	m.log.Debug("run started", "ship", ext.Loadout.Skin, "flags", fmt.Sprintf("%+v", ext.Flags))
	return store, store
}

// FinishRun banks the run's milk and updates the pilot's records.
func (m *Manager) FinishRun(final runstate.State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.profile.Milk += max(final.Milk, 0)
	m.profile.RunsPlayed++
	m.profile.BestScore = max(m.profile.BestScore, final.Score)
	m.profile.BestWave = max(m.profile.BestWave, final.Wave)
	if err := m.saveLocked(); err != nil {
		m.log.Warn("could not save profile", "err", err)
	}
	if m.current != nil {
		m.current.Close()
		m.current = nil
	}
	m.log.Info("run banked", "milk", final.Milk, "wallet", m.profile.Milk, "score", final.Score)
}

// Catalog returns the ship and item catalog the manager sells from.
func (m *Manager) Catalog() ([]config.ShipConfig, []config.ItemConfig) {
	return slices.Clone(m.cfg.Ships), slices.Clone(m.cfg.Items)
}
