package service

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chasecee/cut-calc/internal/domain/model"
	"github.com/chasecee/cut-calc/internal/service/cache"
)

// workItem is one entry of the allocator's mutable working list. The
// quantity field is decremented during a single allocation pass; the
// caller's request slice is never touched.
type workItem struct {
	length    float64 // nominal length, what gets recorded in the plan
	effective float64 // length + kerf, what gets charged against the bar
	quantity  int
}

// workState holds the working list for reuse via sync.Pool to reduce
// allocations under per-keystroke recomputation traffic.
type workState struct {
	items []workItem
}

var workPool = sync.Pool{
	New: func() interface{} {
		return &workState{items: make([]workItem, 0, 64)}
	},
}

func getWorkState(size int) *workState {
	state, _ := workPool.Get().(*workState)
	if state == nil {
		state = &workState{}
	}
	if cap(state.items) < size {
		state.items = make([]workItem, 0, size)
	} else {
		state.items = state.items[:0]
	}
	return state
}

func putWorkState(state *workState) {
	if cap(state.items) > 4096 {
		state.items = make([]workItem, 0, 64)
	}
	workPool.Put(state)
}

// PlanCalculator defines the interface for cut plan computation.
type PlanCalculator interface {
	// ComputePlan allocates cuts to bars. All inputs are canonical (mm).
	ComputePlan(stock model.StockSpec, kerf model.Kerf, requests []model.CutRequest) []model.CutPlan
	// Compute runs the full unit-aware pipeline: normalize, allocate,
	// denormalize, summarize.
	Compute(input model.PlanInput) model.PlanResult
	// InvalidateCache clears the memoized results (useful when stock
	// profiles change).
	InvalidateCache()
}

// Option configures a PlanCalculatorService.
type Option func(*PlanCalculatorService)

// PlanCalculatorService implements PlanCalculator with a deterministic
// first-fit-decreasing heuristic. It is not an optimal bin packer: the
// working list is sorted once by effective length and the same fixed
// priority order is reused for every bar, trading packing optimality for
// reproducible output.
type PlanCalculatorService struct {
	cache cache.Cache
}

// NewPlanCalculatorService creates a new PlanCalculatorService with the given options.
func NewPlanCalculatorService(opts ...Option) *PlanCalculatorService {
	s := &PlanCalculatorService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithCache enables result memoization with the specified capacity and TTL.
func WithCache(capacity int, ttl time.Duration) Option {
	return func(s *PlanCalculatorService) {
		if capacity > 0 {
			s.cache = newTTLCache(capacity, ttl)
		}
	}
}

// WithCacheInterface allows injecting a custom cache implementation.
func WithCacheInterface(c cache.Cache) Option {
	return func(s *PlanCalculatorService) {
		s.cache = c
	}
}

// ComputePlan assigns cuts to a bounded sequence of stock bars.
//
// Kerf is charged to every placed cut, including the last cut of a bar.
// That conservatively overstates waste by one kerf width on bars whose last
// cut is followed by nothing; the approximation is part of the output
// contract (sum(cuts) + kerf*len(cuts) + waste == stock length) and is kept
// so that all reported numbers stay self-consistent.
//
// The returned sequence always has exactly stock.MaxBars entries; bars that
// receive no cuts report waste equal to the full stock length. Requests
// whose nominal length exceeds the stock length are never placed and never
// rejected: the deficit shows up in the caller's summary instead.
func (s *PlanCalculatorService) ComputePlan(stock model.StockSpec, kerf model.Kerf, requests []model.CutRequest) []model.CutPlan {
	plans := make([]model.CutPlan, 0, stock.MaxBars)

	state := getWorkState(len(requests))
	defer putWorkState(state)

	items := state.items
	demand := 0
	for _, r := range requests {
		items = append(items, workItem{
			length:    r.Length,
			effective: r.Length + kerf.Width,
			quantity:  r.Quantity,
		})
		demand += r.Quantity
	}

	// Largest effective length first; stable so ties keep input order and
	// the output is reproducible across runs.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].effective > items[j].effective
	})

	for bar := 0; bar < stock.MaxBars; bar++ {
		if demand == 0 {
			plans = append(plans, model.EmptyPlan(stock.Length))
			continue
		}

		remaining := stock.Length
		cuts := []float64{}
		for idx := range items {
			it := &items[idx]
			for it.quantity > 0 && remaining >= it.effective {
				cuts = append(cuts, it.length)
				remaining -= it.effective
				it.quantity--
				demand--
			}
		}
		plans = append(plans, model.CutPlan{Cuts: cuts, Waste: remaining})
	}

	state.items = items
	return plans
}

// Compute runs a full planning invocation from display-unit inputs.
// It is a pure function of its input snapshot; repeated calls with identical
// inputs are served from the memoization cache when one is configured.
func (s *PlanCalculatorService) Compute(input model.PlanInput) model.PlanResult {
	if input.StockCount < 1 || input.StockLength <= 0 {
		return model.EmptyResult(input)
	}

	var key string
	if s.cache != nil {
		key = planKey(input)
		if result, ok := s.cache.Get(key); ok {
			return result
		}
	}

	lengthUnit := input.LengthUnit
	kerfUnit := input.KerfUnit

	stock := model.StockSpec{
		Length:  lengthUnit.ToCanonical(input.StockLength),
		MaxBars: input.StockCount,
	}
	kerf := model.Kerf{Width: kerfUnit.ToCanonical(input.KerfWidth)}

	requests := make([]model.CutRequest, len(input.Cuts))
	for i, c := range input.Cuts {
		requests[i] = model.CutRequest{
			Length:   lengthUnit.ToCanonical(c.Length),
			Quantity: c.Quantity,
		}
	}

	plans := s.ComputePlan(stock, kerf, requests)

	// Denormalize back to the display unit. Requested lengths go through
	// the same round trip so that summary tallies can match placed cuts by
	// exact value.
	display := make([]model.CutPlan, len(plans))
	for i, p := range plans {
		cuts := make([]float64, len(p.Cuts))
		for j, c := range p.Cuts {
			cuts[j] = lengthUnit.FromCanonical(c)
		}
		display[i] = model.CutPlan{Cuts: cuts, Waste: lengthUnit.FromCanonical(p.Waste)}
	}

	requested := make([]model.CutTally, 0, len(input.Cuts))
	index := make(map[float64]int, len(input.Cuts))
	for i, r := range requests {
		length := lengthUnit.FromCanonical(r.Length)
		if at, ok := index[length]; ok {
			requested[at].Requested += input.Cuts[i].Quantity
			continue
		}
		index[length] = len(requested)
		requested = append(requested, model.CutTally{Length: length, Requested: input.Cuts[i].Quantity})
	}

	result := model.PlanResult{
		Unit:    lengthUnit,
		Plans:   display,
		Summary: summarize(display, requested, index),
	}

	if s.cache != nil {
		s.cache.Set(key, result)
	}
	return result
}

// summarize reduces a plan sequence into aggregate statistics. This is a
// pure fold over the plans: the allocator carries no summary state.
func summarize(plans []model.CutPlan, tallies []model.CutTally, index map[float64]int) model.PlanSummary {
	summary := model.PlanSummary{Tallies: tallies}
	for _, t := range tallies {
		summary.CutsNeeded += t.Requested
	}
	for _, p := range plans {
		summary.TotalWaste += p.Waste
		if len(p.Cuts) > 0 {
			summary.BarsUsed++
		}
		for _, c := range p.Cuts {
			summary.CutsMade++
			if at, ok := index[c]; ok {
				tallies[at].Placed++
			}
		}
	}
	return summary
}

// planKey builds the structural memoization key for an input snapshot.
// Two inputs produce the same key iff they are field-for-field identical,
// so cached hits can never serve a stale or colliding result.
func planKey(in model.PlanInput) string {
	var b strings.Builder
	b.Grow(48 + 24*len(in.Cuts))
	b.WriteString(strconv.Itoa(in.StockCount))
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(in.StockLength, 'g', -1, 64))
	b.WriteByte('|')
	b.WriteString(string(in.LengthUnit))
	b.WriteByte('|')
	b.WriteString(strconv.FormatFloat(in.KerfWidth, 'g', -1, 64))
	b.WriteByte('|')
	b.WriteString(string(in.KerfUnit))
	for _, c := range in.Cuts {
		b.WriteByte('|')
		b.WriteString(strconv.FormatFloat(c.Length, 'g', -1, 64))
		b.WriteByte('x')
		b.WriteString(strconv.Itoa(c.Quantity))
	}
	return b.String()
}

// InvalidateCache clears the memoization cache.
func (s *PlanCalculatorService) InvalidateCache() {
	if s.cache != nil {
		if cacheWithClear, ok := s.cache.(interface{ Clear() }); ok {
			cacheWithClear.Clear()
		}
	}
}
