// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs decouple the HTTP layer from the domain model, providing validation
// and serialization for API communication. All input clamping and unit
// validation happens here: the allocator itself never re-validates.
package dto

import "github.com/chasecee/cut-calc/internal/domain/model"

// CutRow is one requested piece type in a calculate request.
type CutRow struct {
	// Length is the nominal piece length in the request's length unit.
	Length float64 `json:"length" binding:"required,gt=0" example:"1500" minimum:"0"`
	// Quantity is the number of pieces wanted. Zero is accepted and inert.
	Quantity int `json:"quantity" binding:"gte=0" example:"6" minimum:"0"`
} // @name CutRow

// CalculatePlanRequest represents the JSON request body for the plan
// calculation endpoint.
//
// Stock parameters may be omitted when an active stock profile is
// configured; the handler fills them from the profile before validation.
// The profile's kerf is inherited only when both kerf_width and kerf_unit
// are absent. Set kerf_unit explicitly to request a zero kerf while still
// taking the stock dimensions from the profile.
//
// @Description Request to compute a cutting plan for a set of cut lengths
// @Example {"stock_count": 10, "stock_length": 2000, "length_unit": "mm", "kerf_width": 3.2, "kerf_unit": "mm", "cuts": [{"length": 1500, "quantity": 6}]}
type CalculatePlanRequest struct {
	// StockCount is the number of stock bars available. Coerced to 1 when below 1.
	StockCount int `json:"stock_count" example:"10" minimum:"1"`
	// StockLength is the length of one stock bar in LengthUnit.
	StockLength float64 `json:"stock_length" example:"2000" minimum:"0"`
	// LengthUnit is the unit for stock length and cut lengths (mm, cm, m, in, ft, yd).
	LengthUnit string `json:"length_unit" example:"mm"`
	// KerfWidth is the blade width lost per cut, in KerfUnit.
	KerfWidth float64 `json:"kerf_width" example:"3.2" minimum:"0"`
	// KerfUnit is the unit for the kerf width; it may differ from LengthUnit.
	KerfUnit string `json:"kerf_unit" example:"mm"`
	// Cuts is the list of requested piece lengths and quantities.
	Cuts []CutRow `json:"cuts" binding:"required,min=1"`
} // @name CalculatePlanRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	// ErrInvalidStockLength is returned when stock_length is not positive.
	ErrInvalidStockLength = &ValidationError{
		Field:   "stock_length",
		Message: "must be a positive number",
	}
	// ErrInvalidKerfWidth is returned when kerf_width is negative.
	ErrInvalidKerfWidth = &ValidationError{
		Field:   "kerf_width",
		Message: "must not be negative",
	}
	// ErrInvalidLengthUnit is returned when length_unit is not a supported unit.
	ErrInvalidLengthUnit = &ValidationError{
		Field:   "length_unit",
		Message: "must be one of mm, cm, m, in, ft, yd",
	}
	// ErrInvalidKerfUnit is returned when kerf_unit is not a supported unit.
	ErrInvalidKerfUnit = &ValidationError{
		Field:   "kerf_unit",
		Message: "must be one of mm, cm, m, in, ft, yd",
	}
	// ErrInvalidCutLength is returned when a cut row has a non-positive length.
	ErrInvalidCutLength = &ValidationError{
		Field:   "cuts",
		Message: "every cut length must be a positive number",
	}
	// ErrInvalidCutQuantity is returned when a cut row has a negative quantity.
	ErrInvalidCutQuantity = &ValidationError{
		Field:   "cuts",
		Message: "cut quantities must not be negative",
	}
)

// Normalize applies the boundary clamping contract: quantities below their
// minimum are coerced upward so the core never receives invalid counts.
// Empty unit strings default to millimeters.
func (r *CalculatePlanRequest) Normalize() {
	if r.StockCount < 1 {
		r.StockCount = 1
	}
	if r.LengthUnit == "" {
		r.LengthUnit = string(model.UnitMillimeter)
	}
	if r.KerfUnit == "" {
		r.KerfUnit = string(model.UnitMillimeter)
	}
}

// Validate performs custom validation on the request. Call Normalize first.
func (r *CalculatePlanRequest) Validate() error {
	if r.StockLength <= 0 {
		return ErrInvalidStockLength
	}
	if r.KerfWidth < 0 {
		return ErrInvalidKerfWidth
	}
	if !model.Unit(r.LengthUnit).Valid() {
		return ErrInvalidLengthUnit
	}
	if !model.Unit(r.KerfUnit).Valid() {
		return ErrInvalidKerfUnit
	}
	for _, c := range r.Cuts {
		if c.Length <= 0 {
			return ErrInvalidCutLength
		}
		if c.Quantity < 0 {
			return ErrInvalidCutQuantity
		}
	}
	return nil
}

// ToPlanInput converts the validated request into a domain plan input.
func (r *CalculatePlanRequest) ToPlanInput() model.PlanInput {
	cuts := make([]model.CutRequest, len(r.Cuts))
	for i, c := range r.Cuts {
		cuts[i] = model.CutRequest{Length: c.Length, Quantity: c.Quantity}
	}
	return model.PlanInput{
		StockCount:  r.StockCount,
		StockLength: r.StockLength,
		LengthUnit:  model.Unit(r.LengthUnit),
		KerfWidth:   r.KerfWidth,
		KerfUnit:    model.Unit(r.KerfUnit),
		Cuts:        cuts,
	}
}

// StockProfileRequest represents the JSON request body for creating or
// updating a stock profile.
type StockProfileRequest struct {
	// Name is the human-readable profile name.
	Name string `json:"name" binding:"required" example:"80/20 rail 2m"`
	// StockLength is the bar length in LengthUnit.
	StockLength float64 `json:"stock_length" binding:"required,gt=0" example:"2000"`
	// LengthUnit is the unit for stock and cut lengths.
	LengthUnit string `json:"length_unit" example:"mm"`
	// KerfWidth is the default blade width in KerfUnit.
	KerfWidth float64 `json:"kerf_width" binding:"gte=0" example:"3.2"`
	// KerfUnit is the unit for the kerf width.
	KerfUnit string `json:"kerf_unit" example:"mm"`
	// MaxBars is the default ceiling on bars per plan.
	MaxBars int `json:"max_bars" binding:"required,gte=1" example:"10"`
} // @name StockProfileRequest

// Validate performs custom validation on the stock profile request.
func (r *StockProfileRequest) Validate() error {
	if r.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if r.StockLength <= 0 {
		return ErrInvalidStockLength
	}
	if r.KerfWidth < 0 {
		return ErrInvalidKerfWidth
	}
	if r.LengthUnit != "" && !model.Unit(r.LengthUnit).Valid() {
		return ErrInvalidLengthUnit
	}
	if r.KerfUnit != "" && !model.Unit(r.KerfUnit).Valid() {
		return ErrInvalidKerfUnit
	}
	if r.MaxBars < 1 {
		return &ValidationError{Field: "max_bars", Message: "must be at least 1"}
	}
	return nil
}

// LoginRequest represents the JSON request body for the login endpoint.
//
// @Description Request to authenticate as the service administrator
type LoginRequest struct {
	// Username is the admin username.
	Username string `json:"username" binding:"required" example:"admin"`
	// Password is the admin password.
	Password string `json:"password" binding:"required,min=6" example:"password123"`
} // @name LoginRequest

// LoginResponse represents the JSON response body for the login endpoint.
//
// @Description Successful authentication response with a JWT access token
type LoginResponse struct {
	// Token is the JWT access token.
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn int64 `json:"expires_in" example:"900"`
} // @name LoginResponse
