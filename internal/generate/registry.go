package generate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vancomm/mazes/internal/maze"
)

// Chain runs several generators in order on the same grid. Each step gets
// its own seed derived from the chain seed.
type Chain []Generator

func (c Chain) Name() string {
	names := make([]string, len(c))
	for i, gen := range c {
		names[i] = gen.Name()
	}
	return strings.Join(names, "+")
}

func (c Chain) Lossy() bool {
	return slices.ContainsFunc(c, isLossy)
}

func (c Chain) Generate(g *maze.Grid, seed uint64) (Result, error) {
	var res Result
	for i, gen := range c {
		step, err := gen.Generate(g, seed+uint64(i))
		if err != nil {
			return res, fmt.Errorf("%s: %w", gen.Name(), err)
		}
		res = res.add(step)
	}
	return res, nil
}

var registry = map[string]func() Generator{
	"dfs":                func() Generator { return DFS{} },
	"hunt-and-kill":      func() Generator { return HuntAndKill{} },
	"kruskal":            func() Generator { return Kruskal{} },
	"aldous-broder":      func() Generator { return AldousBroder{} },
	"wilson":             func() Generator { return Wilson{} },
	"binary-tree":        func() Generator { return BinaryTree{} },
	"recursive-division": func() Generator { return RecursiveDivision{MinSize: 1} },
	"random-carving": func() Generator {
		return RandomCarving{Chance: DefaultCarvingChance, Multicell: true, Adaptive: true}
	},
	"cellular": func() Generator { return Cellular{} },
}

// ByName returns a generator with default settings. Names joined with '+'
// build a [Chain], e.g. "kruskal+random-carving".
func ByName(name string) (Generator, error) {
	parts := strings.Split(name, "+")
	chain := make(Chain, 0, len(parts))
	for _, part := range parts {
		newGen, ok := registry[strings.TrimSpace(part)]
		if !ok {
			return nil, fmt.Errorf("%q: %w", part, ErrUnknownAlgorithm)
		}
		chain = append(chain, newGen())
	}
	if len(chain) == 1 {
		return chain[0], nil
	}
	return chain, nil
}

// Names lists the registered algorithms in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
