// Package seed populates a fresh store with an administrator and sample
// orders.
package seed

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/xenking/juicebar/internal/domain/order"
)

var (
	firstNames = []string{"John", "Alana", "Jane", "Will", "Tom", "Leon", "Jack", "Kris", "Lenny", "Lucas"}
	lastNames  = []string{"May", "Riley", "Rees", "Smith", "Walker", "Allen", "Hill", "Byrne", "Murray", "Perry"}
)

// maxQuantity bounds generated juice quantities (exclusive).
const maxQuantity = 10

// Generator produces random sample orders. Output depends only on the
// random source, so a fixed seed yields the same orders.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator returns a Generator drawing from src.
func NewGenerator(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Orders returns n orders with name, phone and quantities filled in.
// ID and CreatedAt are left for the caller.
func (g *Generator) Orders(n int) []order.Order {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]order.Order, n)
	for i := range out {
		out[i] = order.Order{
			Name:        firstNames[g.rnd.IntN(len(firstNames))] + " " + lastNames[g.rnd.IntN(len(lastNames))],
			Phone:       g.phone(),
			MangoJuices: g.rnd.IntN(maxQuantity),
			BerryJuices: g.rnd.IntN(maxQuantity),
			AppleJuices: g.rnd.IntN(maxQuantity),
		}
	}
	return out
}

// phone returns a number in NPA-NXX-XXXX form so seeded orders pass the
// same validation as submitted ones.
func (g *Generator) phone() string {
	return fmt.Sprintf("%d%02d-%d%02d-%04d",
		2+g.rnd.IntN(8), g.rnd.IntN(100),
		2+g.rnd.IntN(8), g.rnd.IntN(100),
		g.rnd.IntN(10000),
	)
}
