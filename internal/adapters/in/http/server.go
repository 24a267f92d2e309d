// Package http provides the inbound HTTP adapter: hand-written echo routes
// that translate between JSON payloads and the application's commands and
// queries. Stage and pipeline names in requests are resolved through the
// pipeline registry, so each variant only accepts its own namespace.
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/parcel"
	"fulfillment/internal/core/domain/model/pipeline"
	"fulfillment/internal/core/domain/model/settlement"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createParcelHandler      commands.CreateParcelCommandHandler
	transitionParcelHandler  commands.TransitionParcelCommandHandler
	reassignParcelHandler    commands.ReassignParcelCommandHandler
	bulkPrepareHandler       commands.BulkPrepareCommandHandler
	scanLineHandler          commands.ScanLineCommandHandler
	markReadyToSettleHandler commands.MarkReadyToSettleCommandHandler
	requestSettlementHandler commands.RequestSettlementCommandHandler
	approveSettlementHandler commands.ApproveSettlementCommandHandler

	parcelByIDHandler      queries.ParcelByIDQueryHandler
	packagingGroupsHandler queries.PackagingGroupsQueryHandler
	parcelsByStageHandler  queries.ParcelsByStageQueryHandler
	driverBalanceHandler   queries.DriverBalanceQueryHandler
	dueRemindersHandler    queries.DueRemindersQueryHandler
}

// NewServer creates the HTTP server with all command and query handlers.
func NewServer(
	createParcelHandler commands.CreateParcelCommandHandler,
	transitionParcelHandler commands.TransitionParcelCommandHandler,
	reassignParcelHandler commands.ReassignParcelCommandHandler,
	bulkPrepareHandler commands.BulkPrepareCommandHandler,
	scanLineHandler commands.ScanLineCommandHandler,
	markReadyToSettleHandler commands.MarkReadyToSettleCommandHandler,
	requestSettlementHandler commands.RequestSettlementCommandHandler,
	approveSettlementHandler commands.ApproveSettlementCommandHandler,
	parcelByIDHandler queries.ParcelByIDQueryHandler,
	packagingGroupsHandler queries.PackagingGroupsQueryHandler,
	parcelsByStageHandler queries.ParcelsByStageQueryHandler,
	driverBalanceHandler queries.DriverBalanceQueryHandler,
	dueRemindersHandler queries.DueRemindersQueryHandler,
) *Server {
	return &Server{
		createParcelHandler:      createParcelHandler,
		transitionParcelHandler:  transitionParcelHandler,
		reassignParcelHandler:    reassignParcelHandler,
		bulkPrepareHandler:       bulkPrepareHandler,
		scanLineHandler:          scanLineHandler,
		markReadyToSettleHandler: markReadyToSettleHandler,
		requestSettlementHandler: requestSettlementHandler,
		approveSettlementHandler: approveSettlementHandler,
		parcelByIDHandler:        parcelByIDHandler,
		packagingGroupsHandler:   packagingGroupsHandler,
		parcelsByStageHandler:    parcelsByStageHandler,
		driverBalanceHandler:     driverBalanceHandler,
		dueRemindersHandler:      dueRemindersHandler,
	}
}

// RegisterRoutes wires every route onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/parcels", s.CreateParcel)
	api.GET("/parcels/:id", s.GetParcel)
	api.POST("/parcels/:id/transition", s.TransitionParcel)
	api.POST("/parcels/:id/reassign", s.ReassignParcel)
	api.POST("/parcels/:id/scan", s.ScanLine)

	api.GET("/pipelines/:variant/packaging-groups", s.GetPackagingGroups)
	api.POST("/pipelines/:variant/prepare", s.BulkPrepare)
	api.GET("/pipelines/:variant/stages/:stage/parcels", s.GetParcelsByStage)

	api.POST("/drivers/:id/ready-to-settle", s.MarkReadyToSettle)
	api.POST("/drivers/:id/settlement-requests", s.RequestSettlement)
	api.GET("/drivers/:id/balance", s.GetDriverBalance)
	api.POST("/settlements/approve", s.ApproveSettlement)

	api.GET("/reminders/due", s.GetDueReminders)
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// httpError maps domain errors onto HTTP status codes.
func httpError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrIllegalTransition),
		errors.Is(err, errs.ErrIncompleteScan),
		errors.Is(err, errs.ErrTerminalState),
		errors.Is(err, errs.ErrNotPending):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrNothingToSettle):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrUnknownPipeline),
		errors.Is(err, kernel.ErrUUIDIsNotConstructed):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, ErrorResponse{Code: status, Message: err.Error()})
}

// ParcelResponse is the JSON rendering of a parcel aggregate.
type ParcelResponse struct {
	ID         string              `json:"id"`
	Pipeline   string              `json:"pipeline"`
	Stage      string              `json:"stage"`
	ClientName string              `json:"clientName"`
	Phone      string              `json:"phone"`
	City       string              `json:"city"`
	District   string              `json:"district"`
	ProductRef string              `json:"productRef"`
	SKU        string              `json:"sku"`
	UnitCount  int                 `json:"unitCount"`
	Price      string              `json:"price"`
	Comment    string              `json:"comment,omitempty"`
	EmployeeID *string             `json:"employeeId,omitempty"`
	ReminderAt *time.Time          `json:"reminderAt,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
	Lines      []PackagingLineBody `json:"lines,omitempty"`
}

// PackagingLineBody is the JSON rendering of one scan-tracking line.
type PackagingLineBody struct {
	SKU     string `json:"sku"`
	Scanned bool   `json:"scanned"`
}

func parcelResponse(p *parcel.Parcel) ParcelResponse {
	resp := ParcelResponse{
		ID:         p.ID().String(),
		Pipeline:   p.Variant().String(),
		Stage:      p.StageName(),
		ClientName: p.ClientName(),
		Phone:      p.Phone(),
		City:       p.City(),
		District:   p.District(),
		ProductRef: p.ProductRef(),
		SKU:        p.SKU(),
		UnitCount:  p.UnitCount(),
		Price:      p.Price().String(),
		Comment:    p.Comment(),
		ReminderAt: p.ReminderAt(),
		CreatedAt:  p.CreatedAt(),
	}

	if employee := p.Employee(); employee != nil {
		id := employee.String()
		resp.EmployeeID = &id
	}

	for _, line := range p.PackagingLines() {
		resp.Lines = append(resp.Lines, PackagingLineBody{
			SKU:     line.SKU(),
			Scanned: line.Scanned(),
		})
	}

	return resp
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// NewParcelBody is the request payload for parcel registration.
type NewParcelBody struct {
	Pipeline   string `json:"pipeline"`
	ClientName string `json:"clientName"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	District   string `json:"district"`
	ProductRef string `json:"productRef"`
	SKU        string `json:"sku"`
	UnitCount  int    `json:"unitCount"`
	Price      string `json:"price"`
	Comment    string `json:"comment"`
}

// CreateParcel handles POST /api/v1/parcels.
func (s *Server) CreateParcel(ctx echo.Context) error {
	var body NewParcelBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	variant, err := pipeline.VariantFromString(body.Pipeline)
	if err != nil {
		return httpError(ctx, err)
	}

	price := kernel.ZeroMoney()
	if body.Price != "" {
		price, err = kernel.NewMoneyFromString(body.Price)
		if err != nil {
			return httpError(ctx, err)
		}
	}

	draft := parcel.Draft{
		ClientName: body.ClientName,
		Phone:      body.Phone,
		City:       body.City,
		District:   body.District,
		ProductRef: body.ProductRef,
		SKU:        body.SKU,
		UnitCount:  body.UnitCount,
		Price:      price,
		Comment:    body.Comment,
	}

	cmd, err := commands.NewCreateParcelCommand(kernel.NewUUID(), variant, draft)
	if err != nil {
		return httpError(ctx, err)
	}

	created, err := s.createParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return httpError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, parcelResponse(created))
}

// ParcelDetailBody is the JSON rendering of the parcel detail view.
type ParcelDetailBody struct {
	ID               string              `json:"id"`
	Stage            string              `json:"stage"`
	ClientName       string              `json:"clientName"`
	Phone            string              `json:"phone"`
	City             string              `json:"city"`
	District         string              `json:"district"`
	ProductRef       string              `json:"productRef"`
	SKU              string              `json:"sku"`
	UnitCount        int                 `json:"unitCount"`
	Price            string              `json:"price"`
	Comment          string              `json:"comment,omitempty"`
	EmployeeID       *string             `json:"employeeId,omitempty"`
	ReminderAt       *time.Time          `json:"reminderAt,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	Lines            []PackagingLineBody `json:"lines,omitempty"`
	ReadyForDispatch bool                `json:"readyForDispatch"`
}

// GetParcel handles GET /api/v1/parcels/:id.
func (s *Server) GetParcel(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return httpError(ctx, err)
	}

	query, err := queries.NewParcelByIDQuery(parcelID)
	if err != nil {
		return httpError(ctx, err)
	}

	detail, err := s.parcelByIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return httpError(ctx, err)
	}

	body := ParcelDetailBody{
		ID:               detail.ID.String(),
		Stage:            detail.StageName,
		ClientName:       detail.ClientName,
		Phone:            detail.Phone,
		City:             detail.City,
		District:         detail.District,
		ProductRef:       detail.ProductRef,
		SKU:              detail.SKU,
		UnitCount:        detail.UnitCount,
		Price:            detail.Price.String(),
		Comment:          detail.Comment,
		ReminderAt:       detail.ReminderAt,
		CreatedAt:        detail.CreatedAt,
		ReadyForDispatch: detail.ReadyForDispatch,
	}
	if detail.EmployeeID != nil {
		id := detail.EmployeeID.String()
		body.EmployeeID = &id
	}
	for _, line := range detail.Lines {
		body.Lines = append(body.Lines, PackagingLineBody{
			SKU:     line.SKU,
			Scanned: line.Scanned,
		})
	}

	return ctx.JSON(http.StatusOK, body)
}

// TransitionBody is the request payload for a stage transition. Stage carries
// the display name in the parcel's own pipeline namespace.
type TransitionBody struct {
	Stage      string     `json:"stage"`
	ReminderAt *time.Time `json:"reminderAt"`
}

// TransitionParcel handles POST /api/v1/parcels/:id/transition.
func (s *Server) TransitionParcel(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return httpError(ctx, err)
	}

	var body TransitionBody
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	// The name identifies both the semantic stage and the namespace it was
	// addressed in; the handler rejects a namespace that is not the parcel's.
	stage, variant, err := resolveStageName(body.Stage)
	if err != nil {
		return httpError(ctx, err)
	}

	cmd, err := commands.NewTransitionParcelCommand(parcelID, variant, stage, body.ReminderAt)
	if err != nil {
		return httpError(ctx, err)
	}

	updated, err := s.transitionParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return httpError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelResponse(updated))
}

// resolveStageName finds the stage and variant a display name belongs to.
func resolveStageName(name string) (pipeline.Stage, pipeline.Variant, error) {
	for _, variant := range []pipeline.Variant{pipeline.Default, pipeline.Regional} {
		if stage, err := pipeline.StageForName(variant, name); err == nil {
			return stage, variant, nil
		}
	}
	return pipeline.Unknown, pipeline.UnknownVariant, errs.NewValueIsInvalidError("stage")
}

// ReassignBody is the request payload for employee reassignment.
type ReassignBody struct {
	EmployeeID string `json:"employeeId"`
}

// ReassignParcel handles POST /api/v1/parcels/:id/reassign.
func (s *Server) ReassignParcel(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return httpError(ctx, err)
	}

	var body ReassignBody
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	employeeID, err := kernel.UUIDFromString(body.EmployeeID)
	if err != nil {
		return httpError(ctx, err)
	}

	cmd, err := commands.NewReassignParcelCommand(parcelID, employeeID)
	if err != nil {
		return httpError(ctx, err)
	}

	updated, err := s.reassignParcelHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return httpError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, parcelResponse(updated))
}

// ScanBody is the request payload for a packaging scan.
type ScanBody struct {
	SKU string `json:"sku"`
}

// ScanResponse reports the outcome of one scan back to the station.
type ScanResponse struct {
	Result           string         `json:"result"`
	ReadyForDispatch bool           `json:"readyForDispatch"`
	Parcel           ParcelResponse `json:"parcel"`
}

// ScanLine handles POST /api/v1/parcels/:id/scan.
func (s *Server) ScanLine(ctx echo.Context) error {
	parcelID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return httpError(ctx, err)
	}

	var body ScanBody
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewScanLineCommand(parcelID, body.SKU)
	if err != nil {
		return httpError(ctx, err)
	}

	result, err := s.scanLineHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return httpError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ScanResponse{
		Result:           result.Result.String(),
		ReadyForDispatch: result.ReadyForDispatch,
		Parcel:           parcelResponse(result.Parcel),
	})
}

// PackagingGroupBody is one product run in the packaging queue response.
type PackagingGroupBody struct {
	ProductRef string   `json:"productRef"`
	SKU        string   `json:"sku"`
	TotalUnits int      `json:"totalUnits"`
	ParcelIDs  []string `json:"parcelIds"`
}

// GetPackagingGroups handles GET /api/v1/pipelines/:variant/packaging-groups.
func (s *Server) GetPackagingGroups(ctx echo.Context) error {
	variant, err := pipeline.VariantFromString(ctx.Param("variant"))
	if err != nil {
		return httpError(ctx, err)
	}

	query, err := queries.NewPackagingGroupsQuery(variant)
	if err != nil {
		return httpError(ctx, err)
	}

	groups, err := s.packagingGroupsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return httpError(ctx, err)
	}

	response := make([]PackagingGroupBody, 0, len(groups))
	for _, group := range groups {
		ids := make([]string, 0, len(group.ParcelIDs))
		for _, id := range group.ParcelIDs {
			ids = append(ids, id.String())
		}
		response = append(response, PackagingGroupBody{
			ProductRef: group.ProductRef,
			SKU:        group.SKU,
			TotalUnits: group.TotalUnits,
			ParcelIDs:  ids,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// BulkPrepareBody is the request payload for bulk preparation.
type BulkPrepareBody struct {
	ProductRef string `json:"productRef"`
}

// BulkPrepareResponse reports the per-parcel outcome of a prepare batch.
type BulkPrepareResponse struct {
	Prepared int                   `json:"prepared"`
	Results  []BulkPrepareItemBody `json:"results"`
}

// BulkPrepareItemBody is one parcel's outcome within a prepare batch.
type BulkPrepareItemBody struct {
	ParcelID string `json:"parcelId"`
	Error    string `json:"error,omitempty"`
}

// BulkPrepare handles POST /api/v1/pipelines/:variant/prepare.
func (s *Server) BulkPrepare(ctx echo.Context) error {
	variant, err := pipeline.VariantFromString(ctx.Param("variant"))
	if err != nil {
		return httpError(ctx, err)
	}

	var body BulkPrepareBody
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewBulkPrepareCommand(variant, body.ProductRef)
	if err != nil {
		return httpError(ctx, err)
	}

	result, err := s.bulkPrepareHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return httpError(ctx, err)
	}

	response := BulkPrepareResponse{Prepared: result.Prepared}
	for _, item := range result.Results {
		itemBody := BulkPrepareItemBody{ParcelID: item.ParcelID.String()}
		if item.Err != nil {
			itemBody.Error = item.Err.Error()
		}
		response.Results = append(response.Results, itemBody)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ParcelCardBody is one kanban card in a stage listing.
type ParcelCardBody struct {
	ID         string     `json:"id"`
	Stage      string     `json:"stage"`
	ClientName string     `json:"clientName"`
	Phone      string     `json:"phone"`
	City       string     `json:"city"`
	District   string     `json:"district"`
	ProductRef string     `json:"productRef"`
	SKU        string     `json:"sku"`
	UnitCount  int        `json:"unitCount"`
	Price      string     `json:"price"`
	Comment    string     `json:"comment,omitempty"`
	EmployeeID *string    `json:"employeeId,omitempty"`
	ReminderAt *time.Time `json:"reminderAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// GetParcelsByStage handles GET /api/v1/pipelines/:variant/stages/:stage/parcels.
func (s *Server) GetParcelsByStage(ctx echo.Context) error {
	variant, err := pipeline.VariantFromString(ctx.Param("variant"))
	if err != nil {
		return httpError(ctx, err)
	}

	stage, err := pipeline.StageForName(variant, ctx.Param("stage"))
	if err != nil {
		return httpError(ctx, err)
	}

	query, err := queries.NewParcelsByStageQuery(variant, stage)
	if err != nil {
		return httpError(ctx, err)
	}

	parcels, err := s.parcelsByStageHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return httpError(ctx, err)
	}

	response := make([]ParcelCardBody, 0, len(parcels))
	for _, card := range parcels {
		cardBody := ParcelCardBody{
			ID:         card.ID.String(),
			Stage:      card.StageName,
			ClientName: card.ClientName,
			Phone:      card.Phone,
			City:       card.City,
			District:   card.District,
			ProductRef: card.ProductRef,
			SKU:        card.SKU,
			UnitCount:  card.UnitCount,
			Price:      card.Price.String(),
			Comment:    card.Comment,
			ReminderAt: card.ReminderAt,
			CreatedAt:  card.CreatedAt,
		}
		if card.EmployeeID != nil {
			id := card.EmployeeID.String()
			cardBody.EmployeeID = &id
		}
		response = append(response, cardBody)
	}

	return ctx.JSON(http.StatusOK, response)
}

// ReadyToSettleResponse reports how many records a route return advanced.
type ReadyToSettleResponse struct {
	Advanced int `json:"advanced"`
}

// MarkReadyToSettle handles POST /api/v1/drivers/:id/ready-to-settle.
func (s *Server) MarkReadyToSettle(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return httpError(ctx, err)
	}

	cmd, err := commands.NewMarkReadyToSettleCommand(driverID)
	if err != nil {
		return httpError(ctx, err)
	}

	advanced, err := s.markReadyToSettleHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return httpError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ReadyToSettleResponse{Advanced: advanced})
}

// VoucherResponse is the settlement voucher handed back to the cashier.
type VoucherResponse struct {
	DriverID        string    `json:"driverId"`
	RequestedAt     time.Time `json:"requestedAt"`
	RecordIDs       []string  `json:"recordIds"`
	CashTotal       string    `json:"cashTotal"`
	CommissionTotal string    `json:"commissionTotal"`
	Net             string    `json:"net"`
	RecordCount     int       `json:"recordCount"`
}

// RequestSettlement handles POST /api/v1/drivers/:id/settlement-requests.
func (s *Server) RequestSettlement(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return httpError(ctx, err)
	}

	cmd, err := commands.NewRequestSettlementCommand(driverID)
	if err != nil {
		return httpError(ctx, err)
	}

	voucher, err := s.requestSettlementHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return httpError(ctx, err)
	}

	recordIDs := make([]string, 0, len(voucher.RecordIDs))
	for _, id := range voucher.RecordIDs {
		recordIDs = append(recordIDs, id.String())
	}

	return ctx.JSON(http.StatusOK, VoucherResponse{
		DriverID:        voucher.DriverID.String(),
		RequestedAt:     voucher.RequestedAt,
		RecordIDs:       recordIDs,
		CashTotal:       voucher.Totals.CashTotal.String(),
		CommissionTotal: voucher.Totals.CommissionTotal.String(),
		Net:             voucher.Totals.Net().String(),
		RecordCount:     voucher.Totals.RecordCount,
	})
}

// ApproveBody is the request payload for a cash-desk approval batch.
type ApproveBody struct {
	RecordIDs []string `json:"recordIds"`
}

// ApproveResponse splits the batch into applied and rejected records.
type ApproveResponse struct {
	Approved []string           `json:"approved"`
	Rejected []RejectedItemBody `json:"rejected"`
}

// RejectedItemBody is one record that could not be approved.
type RejectedItemBody struct {
	RecordID string `json:"recordId"`
	Error    string `json:"error"`
}

// ApproveSettlement handles POST /api/v1/settlements/approve.
func (s *Server) ApproveSettlement(ctx echo.Context) error {
	var body ApproveBody
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	recordIDs := make([]kernel.UUID, 0, len(body.RecordIDs))
	for _, raw := range body.RecordIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return httpError(ctx, err)
		}
		recordIDs = append(recordIDs, id)
	}

	cmd, err := commands.NewApproveSettlementCommand(recordIDs)
	if err != nil {
		return httpError(ctx, err)
	}

	result, err := s.approveSettlementHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return httpError(ctx, err)
	}

	response := ApproveResponse{Approved: make([]string, 0, len(result.Approved))}
	for _, id := range result.Approved {
		response.Approved = append(response.Approved, id.String())
	}
	for _, rejected := range result.Rejected {
		response.Rejected = append(response.Rejected, RejectedItemBody{
			RecordID: rejected.RecordID.String(),
			Error:    rejected.Err.Error(),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// BalanceResponse is the driver's aggregated cash position.
type BalanceResponse struct {
	DriverID        string `json:"driverId"`
	CashTotal       string `json:"cashTotal"`
	CommissionTotal string `json:"commissionTotal"`
	Net             string `json:"net"`
	RecordCount     int    `json:"recordCount"`
}

// GetDriverBalance handles GET /api/v1/drivers/:id/balance.
// The statuses query parameter narrows the view; it defaults to the
// outstanding statuses.
func (s *Server) GetDriverBalance(ctx echo.Context) error {
	driverID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return httpError(ctx, err)
	}

	statuses := []settlement.Status{settlement.InTransit, settlement.ToSettle, settlement.PendingApproval}
	if raw := ctx.QueryParams()["status"]; len(raw) > 0 {
		statuses = statuses[:0]
		for _, name := range raw {
			status, statusErr := settlement.StatusFromString(name)
			if statusErr != nil {
				return httpError(ctx, statusErr)
			}
			statuses = append(statuses, status)
		}
	}

	query, err := queries.NewDriverBalanceQuery(driverID, statuses)
	if err != nil {
		return httpError(ctx, err)
	}

	balance, err := s.driverBalanceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return httpError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, BalanceResponse{
		DriverID:        balance.DriverID.String(),
		CashTotal:       balance.CashTotal.String(),
		CommissionTotal: balance.CommissionTotal.String(),
		Net:             balance.Net().String(),
		RecordCount:     balance.RecordCount,
	})
}

// DueReminderBody is one entry of the urgency feed.
type DueReminderBody struct {
	ID         string    `json:"id"`
	Stage      string    `json:"stage"`
	ClientName string    `json:"clientName"`
	Phone      string    `json:"phone"`
	ReminderAt time.Time `json:"reminderAt"`
	Overdue    bool      `json:"overdue"`
}

// GetDueReminders handles GET /api/v1/reminders/due.
func (s *Server) GetDueReminders(ctx echo.Context) error {
	query, err := queries.NewDueRemindersQuery(time.Now().UTC())
	if err != nil {
		return httpError(ctx, err)
	}

	reminders, err := s.dueRemindersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return httpError(ctx, err)
	}

	response := make([]DueReminderBody, 0, len(reminders))
	for _, reminder := range reminders {
		response = append(response, DueReminderBody{
			ID:         reminder.ID.String(),
			Stage:      reminder.StageName,
			ClientName: reminder.ClientName,
			Phone:      reminder.Phone,
			ReminderAt: reminder.ReminderAt,
			Overdue:    reminder.Overdue,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}
