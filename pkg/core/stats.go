package core

// Stats counts the entities of a project.
type Stats struct {
	Floors          int `json:"floors"`
	Axes            int `json:"axes"`
	Columns         int `json:"columns"`
	Beams           int `json:"beams"`
	Panels          int `json:"panels"`
	Slabs           int `json:"slabs"`
	FoundationSlabs int `json:"foundationSlabs"`

	// OrphanBeams and OrphanPanels count elements with no floor.
	OrphanBeams  int `json:"orphanBeams"`
	OrphanPanels int `json:"orphanPanels"`
}

// FloorStats counts the elements placed on one floor.
type FloorStats struct {
	Name           string `json:"name"`
	OriginalNumber int    `json:"originalNumber"`
	Columns        int    `json:"columns"`
	Beams          int    `json:"beams"`
	Panels         int    `json:"panels"`
	Slabs          int    `json:"slabs"`
}

// Stats returns entity totals for the project.
func (p *Project) Stats() Stats {
	s := Stats{
		Floors:          len(p.Floors),
		Axes:            len(p.Axes),
		Columns:         len(p.Columns),
		Beams:           len(p.Beams),
		Panels:          len(p.Panels),
		FoundationSlabs: len(p.FoundationSlabs),
	}
	for _, f := range p.Floors {
		s.Slabs += len(f.Slabs)
	}
	for _, b := range p.Beams {
		if b.FloorID == 0 {
			s.OrphanBeams++
		}
	}
	for _, pn := range p.Panels {
		if pn.FloorID == 0 {
			s.OrphanPanels++
		}
	}
	return s
}

// FloorStats returns per-floor element counts in floor order.
func (p *Project) FloorStats() []FloorStats {
	out := make([]FloorStats, 0, len(p.Floors))
	for _, f := range p.Floors {
		out = append(out, FloorStats{
			Name:           f.Name,
			OriginalNumber: f.OriginalNumber,
			Columns:        len(f.Columns),
			Beams:          len(f.Beams),
			Panels:         len(f.Panels),
			Slabs:          len(f.Slabs),
		})
	}
	return out
}
