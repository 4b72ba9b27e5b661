package jit

import "fmt"

// Value is the code generator's value handle: an opaque token for the result
// of a generated subexpression, backed by a virtual floating-point register.
// The allocator assigns and reassigns the physical location behind a Value
// as code is emitted; a Value has no meaning once its function is finalized.
type Value struct {
	id int
}

// Location states for a virtual register.
const (
	liveReg   uint8 = iota // held in a physical register
	liveSpill              // held in a stack spill slot
	dead                   // released; any further use is a bug
)

type location struct {
	state uint8
	reg   int // physical register, valid when state == liveReg
	slot  int // spill slot, valid when state == liveSpill
}

// spillEmitter is the instruction sink the allocator uses for spill traffic.
type spillEmitter interface {
	emitSpill(reg, slot int)  // store physical register to stack slot
	emitReload(reg, slot int) // load stack slot into physical register
}

// allocator maps virtual floating-point registers to physical ones,
// spilling the oldest live value to a stack slot when the register file is
// exhausted. Frame size is the high-water slot count, known after the whole
// expression has been emitted.
type allocator struct {
	em       spillEmitter
	maxSlots int

	regs     []int      // physical register -> virtual id, -1 when free
	locs     []location // virtual id -> current location
	order    []int      // live virtual ids, oldest first
	slotFree []int      // recycled spill slots
	slots    int        // high-water spill slot count
}

func newAllocator(numRegs, maxSlots int, em spillEmitter) *allocator {
	regs := make([]int, numRegs)
	for i := range regs {
		regs[i] = -1
	}
	return &allocator{em: em, maxSlots: maxSlots, regs: regs}
}

// alloc creates a fresh value in a physical register and returns both.
func (ra *allocator) alloc() (Value, int, error) {
	reg, err := ra.takeReg(-1)
	if err != nil {
		return Value{}, 0, err
	}
	id := len(ra.locs)
	ra.locs = append(ra.locs, location{state: liveReg, reg: reg})
	ra.regs[reg] = id
	ra.order = append(ra.order, id)
	return Value{id: id}, reg, nil
}

// ensure places v in a physical register, reloading it from its spill slot
// if necessary, and returns the register. The pinned value (if any) is
// protected from eviction, so two operands can be kept resident at once.
func (ra *allocator) ensure(v Value, pinned Value) (int, error) {
	if v.id >= len(ra.locs) {
		return 0, fmt.Errorf("jit: use of unknown value %d", v.id)
	}
	l := &ra.locs[v.id]
	switch l.state {
	case liveReg:
		return l.reg, nil
	case liveSpill:
		reg, err := ra.takeReg(pinned.id)
		if err != nil {
			return 0, err
		}
		ra.em.emitReload(reg, l.slot)
		ra.releaseSlot(l.slot)
		l.state = liveReg
		l.reg = reg
		ra.regs[reg] = v.id
		return reg, nil
	default:
		return 0, fmt.Errorf("jit: use of dead value %d", v.id)
	}
}

// free releases v's register or spill slot. Freeing an already-dead value
// is a bug in the operation table, reported as an error by callers.
func (ra *allocator) free(v Value) {
	if v.id >= len(ra.locs) {
		return
	}
	l := &ra.locs[v.id]
	switch l.state {
	case liveReg:
		ra.regs[l.reg] = -1
	case liveSpill:
		ra.releaseSlot(l.slot)
	}
	l.state = dead
	for i, id := range ra.order {
		if id == v.id {
			ra.order = append(ra.order[:i], ra.order[i+1:]...)
			break
		}
	}
}

// takeReg returns a free physical register, spilling the oldest live value
// (except the pinned one) when none is free.
func (ra *allocator) takeReg(pinnedID int) (int, error) {
	for r, id := range ra.regs {
		if id == -1 {
			return r, nil
		}
	}

	for _, id := range ra.order {
		if id == pinnedID {
			continue
		}
		l := &ra.locs[id]
		if l.state != liveReg {
			continue
		}
		slot, err := ra.takeSlot()
		if err != nil {
			return 0, err
		}
		ra.em.emitSpill(l.reg, slot)
		reg := l.reg
		ra.regs[reg] = -1
		l.state = liveSpill
		l.slot = slot
		return reg, nil
	}
	return 0, fmt.Errorf("jit: no spillable register available")
}

func (ra *allocator) takeSlot() (int, error) {
	if n := len(ra.slotFree); n > 0 {
		s := ra.slotFree[n-1]
		ra.slotFree = ra.slotFree[:n-1]
		return s, nil
	}
	if ra.slots >= ra.maxSlots {
		return 0, fmt.Errorf("jit: expression requires more than %d spill slots", ra.maxSlots)
	}
	s := ra.slots
	ra.slots++
	return s, nil
}

func (ra *allocator) releaseSlot(slot int) {
	ra.slotFree = append(ra.slotFree, slot)
}

// frameSlots returns the high-water spill slot count for the emitted code.
func (ra *allocator) frameSlots() int {
	return ra.slots
}
