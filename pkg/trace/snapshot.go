package trace

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/retrogo/z80emu/pkg/cpu"
)

// Snapshot is a point-in-time dump of a Cpu and the memory array
// behind its Bus, sufficient to resume a run exactly where it left
// off. The Bus itself (and any peripheral state it owns, like the
// BASIC shell's ACIA registers) is not captured — only the Cpu and
// raw memory, matching the scope of a --snapshot/--resume cycle
// around a single run.
type Snapshot struct {
	Cpu cpu.Cpu
	Mem []uint8
}

func init() {
	gob.Register(Snapshot{})
}

// Save writes a Snapshot of c and its backing memory to path.
func Save(path string, c *cpu.Cpu, mem []uint8) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("trace: %w", err)
	}
	defer f.Close()

	cpuCopy := *c
	cpuCopy.Bus = nil // the Bus interface isn't gob-safe; the caller keeps its own
	snap := Snapshot{Cpu: cpuCopy, Mem: mem}
	if err := gob.NewEncoder(f).Encode(&snap); err != nil {
		return fmt.Errorf("trace: %w", err)
	}
	return nil
}

// Load reads a Snapshot from path. Callers restore it into a live Cpu
// by copying Snapshot.Cpu's fields (preserving their own Bus) and
// Snapshot.Mem into their Bus's backing array.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	defer f.Close()

	var snap Snapshot
	if err := gob.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("trace: %w", err)
	}
	return &snap, nil
}

// Restore copies a snapshot's register state into c, keeping c's
// existing Bus (the snapshot's Cpu value has no usable Bus of its
// own — it was never gob-encoded, since Bus is an interface).
func (s *Snapshot) Restore(c *cpu.Cpu) {
	bus := c.Bus
	*c = s.Cpu
	c.Bus = bus
}
