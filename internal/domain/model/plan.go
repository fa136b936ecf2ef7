package model

// CutRequest is one distinct piece type the user wants produced.
//
// @Description Requested cut length and quantity
// @Example {"length": 1500, "quantity": 6}
type CutRequest struct {
	// Length is the nominal piece length, always positive.
	Length float64 `json:"length" example:"1500"`
	// Quantity is the number of pieces wanted. Zero is inert, never an error.
	Quantity int `json:"quantity" example:"6"`
}

// StockSpec describes the physical bar length and the ceiling on how many
// bars may be used and reported, even when demand exceeds what fits.
type StockSpec struct {
	Length  float64 `json:"length" example:"2000"`
	MaxBars int     `json:"max_bars" example:"10"`
}

// Kerf is the material width consumed by the blade per cut.
type Kerf struct {
	Width float64 `json:"width" example:"3.2"`
}

// CutPlan is the plan for one stock bar: the cuts placed on it in cutting
// order and the leftover waste. Kerf is charged to every placed cut,
// including the bar's last one; that conservative policy slightly inflates
// reported waste and is part of the output contract, so
// sum(cuts) + kerf*len(cuts) + waste == stock length.
//
// @Description Per-bar cutting plan
// @Example {"cuts": [1500], "waste": 496.8}
type CutPlan struct {
	// Cuts holds the nominal lengths placed on this bar, in cutting order.
	Cuts []float64 `json:"cuts"`
	// Waste is the unusable remainder after all cuts and kerf losses.
	Waste float64 `json:"waste"`
}

// EmptyPlan returns the plan for a bar with nothing placed on it.
func EmptyPlan(stockLength float64) CutPlan {
	return CutPlan{Cuts: []float64{}, Waste: stockLength}
}

// PlanInput is the immutable snapshot of user inputs for one planning run,
// in display units. Primary lengths (stock, cuts) and kerf carry independent
// unit selections.
type PlanInput struct {
	StockCount  int          `json:"stock_count"`
	StockLength float64      `json:"stock_length"`
	LengthUnit  Unit         `json:"length_unit"`
	KerfWidth   float64      `json:"kerf_width"`
	KerfUnit    Unit         `json:"kerf_unit"`
	Cuts        []CutRequest `json:"cuts"`
}

// CutTally reports demand satisfaction for one distinct requested length.
type CutTally struct {
	Length    float64 `json:"length"`
	Requested int     `json:"requested"`
	Placed    int     `json:"placed"`
}

// PlanSummary aggregates a plan sequence for display. It is derived purely
// by reducing over the plans; the allocator carries no summary state.
//
// @Description Aggregate statistics for the whole plan
type PlanSummary struct {
	CutsNeeded int        `json:"cuts_needed"`
	CutsMade   int        `json:"cuts_made"`
	BarsUsed   int        `json:"bars_used"`
	TotalWaste float64    `json:"total_waste"`
	Tallies    []CutTally `json:"tallies"`
}

// PlanResult is the complete outcome of one planning run. All lengths are in
// the request's display unit.
//
// @Description Cut plan computation result
type PlanResult struct {
	Unit    Unit        `json:"unit" example:"mm"`
	Plans   []CutPlan   `json:"plans"`
	Summary PlanSummary `json:"summary"`
}

// EmptyResult returns a result with one empty plan per requested bar.
// A negative bar count yields no plans.
func EmptyResult(input PlanInput) PlanResult {
	count := input.StockCount
	if count < 0 {
		count = 0
	}
	plans := make([]CutPlan, count)
	for i := range plans {
		plans[i] = EmptyPlan(input.StockLength)
	}
	return PlanResult{
		Unit:  input.LengthUnit,
		Plans: plans,
		Summary: PlanSummary{
			TotalWaste: input.StockLength * float64(count),
			Tallies:    []CutTally{},
		},
	}
}
