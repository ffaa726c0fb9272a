package trace

import (
	"github.com/retroenv/retrochip8/internal/engine"
	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Compile-time check to ensure Tracer implements engine.Observer.
var _ engine.Observer = (*Tracer)(nil)

// Tracer is an engine observer that logs every n-th executed instruction at
// debug level and records the distinct instruction addresses executed.
type Tracer struct {
	logger *log.Logger
	every  uint64

	visited set.Set[uint16]
}

// New returns a tracer logging every n-th step, 0 disables step logging.
func New(logger *log.Logger, every uint64) *Tracer {
	return &Tracer{
		logger:  logger,
		every:   every,
		visited: set.New[uint16](),
	}
}

// Observe records the executed step.
func (t *Tracer) Observe(state *machine.State, result engine.Result) {
	t.visited.Add(result.PC)

	if t.every == 0 || state.Cycles%t.every != 0 {
		return
	}

	t.logger.Debug("Step",
		log.Int("cycle", int(state.Cycles)),
		log.Hex("pc", result.PC),
		log.String("opcode", Mnemonic(result.Instruction.Word)),
		log.Stringer("instruction", result.Instruction),
		log.Hex("i", state.I))
}

// Visited returns the number of distinct instruction addresses executed.
func (t *Tracer) Visited() int {
	return t.visited.Size()
}

// Summary logs the execution statistics.
func (t *Tracer) Summary(state *machine.State) {
	t.logger.Info("Execution finished",
		log.Int("cycles", int(state.Cycles)),
		log.Int("addresses", t.Visited()),
		log.Hex("pc", state.PC))
}
