package engine

// Hospital is a finite pool of beds with a drug catalog. Remaining capacity
// stays within [0, MaxCapacity].
type Hospital struct {
	ID      int
	Catalog Catalog

	capacity    int
	maxCapacity int
}

// NewHospital creates a hospital with all beds free.
func NewHospital(id, capacity int, c Catalog) *Hospital {
	if capacity < 0 {
		capacity = 0
	}
	return &Hospital{ID: id, Catalog: c, capacity: capacity, maxCapacity: capacity}
}

// Capacity is the number of free beds.
func (h *Hospital) Capacity() int { return h.capacity }

// MaxCapacity is the configured number of beds.
func (h *Hospital) MaxCapacity() int { return h.maxCapacity }

// Occupied is the number of beds in use.
func (h *Hospital) Occupied() int { return h.maxCapacity - h.capacity }

func (h *Hospital) admit(p *Person) bool {
	if h.capacity <= 0 || p.ward != nil || p.Dead {
		return false
	}
	h.capacity--
	p.ward = h
	p.Hospitalized = true
	return true
}

func (h *Hospital) release() {
	if h.capacity < h.maxCapacity {
		h.capacity++
	}
}

// TreatPatients runs one round of treatment for every patient admitted here, in
// population order, and returns how many were discharged.
func (h *Hospital) TreatPatients(population []*Person) int {
	discharged := 0
	for _, p := range population {
		if !p.Hospitalized || p.ward != h {
			continue
		}
		if h.treat(p) {
			discharged++
		}
	}
	return discharged
}

// treat identifies the disease, doses by vitals, applies the prescription and
// discharges the patient once the pathogen is cleared. Discharge frees the bed.
func (h *Hospital) treat(p *Person) bool {
	if p.Pathogen == nil {
		return false
	}
	kind := p.Pathogen.Kind
	for _, drug := range Prescribe(kind, h.Catalog, DosesFor(p)) {
		drug.Apply(p)
	}
	return p.ResolveIfCleared(true)
}
