// Package idgen produces the opaque identifiers stored inside game documents.
package idgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mrand "math/rand/v2"
	"sync"
	"time"
)

const (
	lowerAlnum = "abcdefghijklmnopqrstuvwxyz0123456789"
	upperAlnum = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	creatureRandLen     = 10
	questRandLen        = 8
	referralCodeLen     = 8
	creatureMillisRange = 100000
)

// Generator creates creature ids, quest ids and referral codes
type Generator interface {
	CreatureID(now time.Time) string
	QuestID() string
	ReferralCode() string
	// Perm returns a pseudo-random permutation of [0, n)
	Perm(n int) []int
}

type generator struct {
	mu  sync.Mutex
	rnd *mrand.Rand
}

// New returns a generator backed by a randomly seeded source
func New() Generator {
	return &generator{rnd: mrand.New(mrand.NewPCG(mrand.Uint64(), mrand.Uint64()))} //nolint:gosec
}

// NewSeeded returns a reproducible generator for tests and simulations.
// Referral codes stay cryptographically random regardless of seed.
func NewSeeded(seed uint64) Generator {
	return &generator{rnd: mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))} //nolint:gosec
}

// CreatureID returns "c_" + 10 lowercase alphanumerics + "_" + (unix ms mod 100000)
func (g *generator) CreatureID(now time.Time) string {
	return fmt.Sprintf("c_%s_%d", g.randomString(lowerAlnum, creatureRandLen), now.UnixMilli()%creatureMillisRange)
}

// QuestID returns "q_" + 8 lowercase alphanumerics
func (g *generator) QuestID() string {
	return "q_" + g.randomString(lowerAlnum, questRandLen)
}

// ReferralCode returns 8 uppercase alphanumerics from a crypto source
func (g *generator) ReferralCode() string {
	buf := make([]byte, referralCodeLen)
	limit := big.NewInt(int64(len(upperAlnum)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic(fmt.Sprintf("idgen: crypto source unavailable: %v", err))
		}
		buf[i] = upperAlnum[n.Int64()]
	}
	return string(buf)
}

// Perm draws from the same source as the ids, so seeded generators repeat it
func (g *generator) Perm(n int) []int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rnd.Perm(n)
}

func (g *generator) randomString(alphabet string, n int) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alphabet[g.rnd.IntN(len(alphabet))]
	}
	return string(buf)
}
