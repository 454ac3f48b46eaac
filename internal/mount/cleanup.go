package mount

import "github.com/bornholm/mountns/internal/metrics"

// Cleanup is the exit hook of the table. It drops the remaining entries
// without notifying their backends and takes no lock: it runs once every
// other access has ceased.
func (r *Registry) Cleanup() {
	remaining := r.count

	for i := 0; i < remaining; i++ {
		r.entries[i] = Entry{}
	}

	r.count = 0

	metrics.Mounts.Sub(float64(remaining))
}
