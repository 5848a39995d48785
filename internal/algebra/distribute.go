package algebra

import "go.uber.org/zap"

// Distribute hands every operator to its host unit (see Op.Host) and clears
// the registry's op set. Afterwards AddOp fails with ErrDistributed; calling
// Distribute again finds no ops and does nothing.
func (r *Registry) Distribute() {
	for _, o := range r.ops {
		h := o.Host()
		h.hosted = append(h.hosted, o)
	}
	if len(r.ops) > 0 {
		r.log.Debug("distributed operators", zap.Int("ops", len(r.ops)))
	}
	r.ops = nil
	clear(r.opIndex)
	r.distributed = true
}
