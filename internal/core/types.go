package core

import (
	"errors"
	"fmt"
	"sort"
)

// NoCharge is the charge type that disables charge placement.
const NoCharge = -1

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Simulation is the contract a render surface forwards clicks to. Grid
// coordinates place row 0 at the bottom of the surface.
type Simulation interface {
	XRes() int
	YRes() int
	ChargeType() int
	SetCharge(x, y int)
}

// Sim is a Simulation that can also be stepped and painted by the hosts.
type Sim interface {
	Simulation
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
	SetChargeType(t int)
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

// ErrUnknownSim is returned by Lookup for unregistered names.
var ErrUnknownSim = errors.New("unknown sim")

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	f, ok := sims[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownSim, name, Names())
	}
	return f, nil
}

// Names lists registered simulations in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
