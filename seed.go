package strata

import (
	"encoding/binary"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

const (
	SeedModeRandom = "random"
	SeedModeFixed  = "fixed"
	SeedModeGUID   = "guid"
)

// RNGState is derived once at startup and shared by every generation run,
// so all chunks sample the same noise fields.
type RNGState struct {
	seed int64
}

func (r *RNGState) Seed() int64 {
	return r.seed
}

// NewRNGState resolves the configured seed mode into a concrete seed. A
// nil block means a fresh random seed. Malformed GUIDs and unknown modes
// are configuration errors; generation must not proceed past them.
func NewRNGState(cfg *SeedConfigBlock) (*RNGState, error) {
	if cfg == nil {
		return &RNGState{seed: rand.Int63()}, nil
	}

	switch cfg.Mode {
	case SeedModeRandom:
		return &RNGState{seed: rand.Int63()}, nil
	case SeedModeFixed:
		return &RNGState{seed: cfg.Value}, nil
	case SeedModeGUID:
		id, err := uuid.Parse(cfg.GUID)
		if err != nil {
			return nil, fmt.Errorf("invalid seed guid %q: %v", cfg.GUID, err)
		}
		return &RNGState{seed: seedFromGUID(id)}, nil
	default:
		return nil, fmt.Errorf("unknown seed mode %q", cfg.Mode)
	}
}

func seedFromGUID(id uuid.UUID) int64 {
	hi := binary.BigEndian.Uint64(id[:8])
	lo := binary.BigEndian.Uint64(id[8:])
	return int64(hi ^ lo)
}
