package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vepsplus/fieldops/internal/repo"
	"github.com/vepsplus/fieldops/internal/response"
)

type fuelCreateRequest struct {
	Date         string  `json:"date"`         // Wire format 2006-01-02.
	Volume       float64 `json:"volume"`       // Litres refuelled.
	Mileage      int     `json:"mileage"`      // Odometer reading, km.
	FuelType     string  `json:"fuelType"`     //
	CarModel     string  `json:"carModel"`     //
	LicensePlate string  `json:"licensePlate"` //
}

type fuelUpdateRequest struct {
	Date         *string  `json:"date"`
	Volume       *float64 `json:"volume"`
	Mileage      *int     `json:"mileage"`
	FuelType     *string  `json:"fuelType"`
	CarModel     *string  `json:"carModel"`
	LicensePlate *string  `json:"licensePlate"`
}

// ListFuel returns the caller's own fuel records, newest first, optionally
// bounded by a date range.
func (h *Handler) ListFuel(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	var startDate, endDate *time.Time
	if raw := c.Query("startDate"); raw != "" {
		t, errParse := parseDate(raw)
		if errParse != nil {
			response.Fail(c, 400, "invalid startDate")
			return
		}
		startDate = &t
	}
	if raw := c.Query("endDate"); raw != "" {
		t, errParse := parseDate(raw)
		if errParse != nil {
			response.Fail(c, 400, "invalid endDate")
			return
		}
		endDate = &t
	}
	views, err := h.fuel.List(c.Request.Context(), p, startDate, endDate)
	if err != nil {
		failRepo(c, err)
		return
	}
	response.OK(c, 200, views, "ok")
}

// CreateFuel records a refuelling owned by the caller. The cost is computed
// server-side from the fuel type's unit price.
func (h *Handler) CreateFuel(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	var req fuelCreateRequest
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		response.Fail(c, 400, "invalid request body")
		return
	}
	date, errParse := parseDate(req.Date)
	if errParse != nil {
		response.Fail(c, 400, "invalid date")
		return
	}
	view, err := h.fuel.Create(c.Request.Context(), p, repo.FuelCreateInput{
		Date:         date,
		Volume:       req.Volume,
		Mileage:      req.Mileage,
		FuelType:     req.FuelType,
		CarModel:     req.CarModel,
		LicensePlate: req.LicensePlate,
	})
	if err != nil {
		failRepo(c, err)
		return
	}
	response.OK(c, 201, view, "fuel record created")
}

// UpdateFuel applies a sparse update to one of the caller's fuel records.
// Absent fields are untouched; present but invalid fields are rejected.
func (h *Handler) UpdateFuel(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req fuelUpdateRequest
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		response.Fail(c, 400, "invalid request body")
		return
	}
	input := repo.FuelUpdateInput{
		Volume:       req.Volume,
		Mileage:      req.Mileage,
		FuelType:     req.FuelType,
		CarModel:     req.CarModel,
		LicensePlate: req.LicensePlate,
	}
	if req.Date != nil {
		date, errParse := parseDate(*req.Date)
		if errParse != nil {
			response.Fail(c, 400, "invalid date")
			return
		}
		input.Date = &date
	}
	view, err := h.fuel.Update(c.Request.Context(), p, id, input)
	if err != nil {
		failRepo(c, err)
		return
	}
	response.OK(c, 200, view, "fuel record updated")
}

// DeleteFuel removes one of the caller's own fuel records.
func (h *Handler) DeleteFuel(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.fuel.Delete(c.Request.Context(), p, id); err != nil {
		failRepo(c, err)
		return
	}
	response.OK(c, 200, nil, "fuel record deleted")
}
