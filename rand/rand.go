// rand/rand.go
// Copyright(c) 2026 thermal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rand

import (
	_ "embed"
	"strings"
	"time"

	"github.com/MichaelTJones/pcg"
)

///////////////////////////////////////////////////////////////////////////
// Random numbers.

type Rand struct {
	r *pcg.PCG32
}

// Make returns a Rand seeded from the current time; generators are passed
// explicitly so that callers that need reproducible output can inject a
// fixed-seed one.
func Make() Rand {
	r := Rand{r: pcg.NewPCG32()}
	r.Seed(time.Now().UnixNano())
	return r
}

func MakeWithSeed(s int64) Rand {
	r := Rand{r: pcg.NewPCG32()}
	r.Seed(s)
	return r
}

func (r Rand) Seed(s int64) {
	r.r.Seed(uint64(s), 0xda3e39cb94b95bdb)
}

func (r Rand) Intn(n int) int {
	return int(r.r.Bounded(uint32(n)))
}

// Int31 returns a uniformly-distributed non-negative int32.
func (r Rand) Int31() int32 {
	return int32(r.r.Random() & 0x7fffffff)
}

func (r Rand) Uint32() uint32 {
	return r.r.Random()
}

// SampleSlice uniformly randomly samples an element of a non-empty slice.
func SampleSlice[T any](r Rand, slice []T) T {
	return slice[r.Intn(len(slice))]
}

var (
	//go:embed nouns.txt
	nounsFile string
	nounList  []string

	//go:embed adjectives.txt
	adjectivesFile string
	adjectiveList  []string
)

func AdjectiveNoun(r Rand) string {
	if nounList == nil {
		nounList = strings.Split(strings.TrimSpace(nounsFile), "\n")
	}
	if adjectiveList == nil {
		adjectiveList = strings.Split(strings.TrimSpace(adjectivesFile), "\n")
	}

	return strings.TrimSpace(SampleSlice(r, adjectiveList)) + "-" +
		strings.TrimSpace(SampleSlice(r, nounList))
}
