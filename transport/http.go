package transport

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	analyticsapp "github.com/muhammadheryan/picking-engine/application/analytics"
	pickingapp "github.com/muhammadheryan/picking-engine/application/picking"
	"github.com/muhammadheryan/picking-engine/application/strategy"
	"github.com/muhammadheryan/picking-engine/constant"
	"github.com/muhammadheryan/picking-engine/model"
	utilsContext "github.com/muhammadheryan/picking-engine/utils/context"
	"github.com/muhammadheryan/picking-engine/utils/errors"
	validatorx "github.com/muhammadheryan/picking-engine/utils/validator"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	PickingApp   pickingapp.PickingApp
	AnalyticsApp analyticsapp.AnalyticsApp
}

func NewTransport(PickingApp pickingapp.PickingApp, AnalyticsApp analyticsapp.AnalyticsApp, jwtSecret string) http.Handler {
	mux := mux.NewRouter()

	rh := &RestHandler{
		PickingApp:   PickingApp,
		AnalyticsApp: AnalyticsApp,
	}

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeSuccess(w, nil)
	}).Methods(http.MethodGet)

	mux.HandleFunc("/strategies", rh.ListStrategies).Methods(http.MethodGet)

	mux.HandleFunc("/sessions", rh.CreateSession).Methods(http.MethodPost)
	mux.HandleFunc("/sessions/{id}", rh.GetSession).Methods(http.MethodGet)
	mux.HandleFunc("/sessions/{id}/scan", rh.Scan).Methods(http.MethodPost)
	mux.HandleFunc("/sessions/{id}/manual-pick", rh.ManualPick).Methods(http.MethodPost)
	mux.HandleFunc("/sessions/{id}/shortage", rh.ReportShortage).Methods(http.MethodPost)
	mux.HandleFunc("/sessions/{id}/pause", rh.Pause).Methods(http.MethodPost)
	mux.HandleFunc("/sessions/{id}/resume", rh.Resume).Methods(http.MethodPost)
	mux.HandleFunc("/sessions/{id}/cancel", rh.Cancel).Methods(http.MethodPost)
	mux.HandleFunc("/sessions/{id}/complete", rh.Complete).Methods(http.MethodPost)
	mux.HandleFunc("/sessions/{id}/errors", rh.SessionErrors).Methods(http.MethodGet)

	mux.HandleFunc("/analytics/pickers/{id}", rh.PickerPerformance).Methods(http.MethodGet)
	mux.HandleFunc("/analytics/warehouses/{id}/daily", rh.WarehouseDailyStats).Methods(http.MethodGet)

	// middleware
	mux.Use(LoggingMiddleware())
	mux.Use(AuthMiddleware(jwtSecret))

	return mux
}

// ListStrategies handler
// @Summary List picking strategies
// @Tags Strategy
// @Produce json
// @Success 200 {array} model.PickingStrategy
// @Router /strategies [get]
func (s *RestHandler) ListStrategies(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, strategy.List())
}

// CreateSession handler
// @Summary Create a picking session
// @Description Selects orders, builds and optimizes the picking list, claims the orders
// @Tags Session
// @Accept json
// @Produce json
// @Param request body model.CreateSessionRequest true "Create Session Request"
// @Success 200 {object} model.SessionResponse
// @Failure 400 {object} errors.CustomError
// @Router /sessions [post]
func (s *RestHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	orgID, ok := utilsContext.GetOrgID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}
	pickerID, _ := utilsContext.GetPickerID(ctx)

	res, err := s.PickingApp.CreateSession(ctx, orgID, pickerID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, model.SessionResponse{Session: res})
}

// GetSession handler
// @Summary Get a picking session
// @Tags Session
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} model.SessionResponse
// @Failure 404 {object} errors.CustomError
// @Router /sessions/{id} [get]
func (s *RestHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	res, err := s.PickingApp.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, model.SessionResponse{Session: res})
}

// Scan handler
// @Summary Validate a barcode scan
// @Description Validates a scan against the route and records the pick; validation failures are returned in the body, not as HTTP errors
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body model.ScanRequest true "Scan Request"
// @Success 200 {object} model.ScanResponse
// @Failure 409 {object} errors.CustomError
// @Router /sessions/{id}/scan [post]
func (s *RestHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req model.ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.PickingApp.ValidateScan(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ManualPick handler
// @Summary Record a manual pick
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body model.ManualPickRequest true "Manual Pick Request"
// @Success 200 {object} model.ScanResponse
// @Failure 400 {object} errors.CustomError
// @Router /sessions/{id}/manual-pick [post]
func (s *RestHandler) ManualPick(w http.ResponseWriter, r *http.Request) {
	var req model.ManualPickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.PickingApp.ManualPick(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ReportShortage handler
// @Summary Report a stock shortage
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body model.ShortageRequest true "Shortage Request"
// @Success 200 {object} nil
// @Failure 400 {object} errors.CustomError
// @Router /sessions/{id}/shortage [post]
func (s *RestHandler) ReportShortage(w http.ResponseWriter, r *http.Request) {
	var req model.ShortageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.PickingApp.ReportShortage(r.Context(), mux.Vars(r)["id"], &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// Pause handler
// @Summary Pause a picking session
// @Tags Session
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} model.SessionResponse
// @Failure 409 {object} errors.CustomError
// @Router /sessions/{id}/pause [post]
func (s *RestHandler) Pause(w http.ResponseWriter, r *http.Request) {
	res, err := s.PickingApp.PauseSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, model.SessionResponse{Session: res})
}

// Resume handler
// @Summary Resume a paused picking session
// @Tags Session
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} model.SessionResponse
// @Failure 409 {object} errors.CustomError
// @Router /sessions/{id}/resume [post]
func (s *RestHandler) Resume(w http.ResponseWriter, r *http.Request) {
	res, err := s.PickingApp.ResumeSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, model.SessionResponse{Session: res})
}

// Cancel handler
// @Summary Cancel a picking session and release its orders
// @Tags Session
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body model.CancelSessionRequest true "Cancel Request"
// @Success 200 {object} nil
// @Failure 409 {object} errors.CustomError
// @Router /sessions/{id}/cancel [post]
func (s *RestHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var req model.CancelSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.PickingApp.CancelSession(r.Context(), mux.Vars(r)["id"], req.Reason); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// Complete handler
// @Summary Complete a picking session
// @Tags Session
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} model.SessionResponse
// @Failure 409 {object} errors.CustomError
// @Router /sessions/{id}/complete [post]
func (s *RestHandler) Complete(w http.ResponseWriter, r *http.Request) {
	res, err := s.PickingApp.CompleteSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, model.SessionResponse{Session: res})
}

// SessionErrors handler
// @Summary Scan errors and shortages recorded for a session
// @Tags Session
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {array} model.SessionError
// @Router /sessions/{id}/errors [get]
func (s *RestHandler) SessionErrors(w http.ResponseWriter, r *http.Request) {
	res, err := s.AnalyticsApp.SessionErrors(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// PickerPerformance handler
// @Summary Picker throughput and accuracy over a date range
// @Tags Analytics
// @Produce json
// @Param id path int true "Picker ID"
// @Param from query string true "From date (RFC3339 or YYYY-MM-DD)"
// @Param to query string true "To date (RFC3339 or YYYY-MM-DD)"
// @Success 200 {object} model.PickerPerformance
// @Failure 400 {object} errors.CustomError
// @Router /analytics/pickers/{id} [get]
func (s *RestHandler) PickerPerformance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orgID, ok := utilsContext.GetOrgID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	pickerID, err := parseUintVar(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	from, to, err := parseDateRange(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.AnalyticsApp.PickerPerformance(ctx, orgID, pickerID, from, to)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// WarehouseDailyStats handler
// @Summary Per-day warehouse picking stats
// @Tags Analytics
// @Produce json
// @Param id path int true "Warehouse ID"
// @Param from query string true "From date (RFC3339 or YYYY-MM-DD)"
// @Param to query string true "To date (RFC3339 or YYYY-MM-DD)"
// @Success 200 {array} model.WarehouseDailyStats
// @Failure 400 {object} errors.CustomError
// @Router /analytics/warehouses/{id}/daily [get]
func (s *RestHandler) WarehouseDailyStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orgID, ok := utilsContext.GetOrgID(ctx)
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	warehouseID, err := parseUintVar(r, "id")
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}
	from, to, err := parseDateRange(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.AnalyticsApp.WarehouseDailyStats(ctx, orgID, warehouseID, from, to)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	from, err := parseDate(r.URL.Query().Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDate(r.URL.Query().Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
