package stocktake

import (
	"fmt"
	"net/http"

	"stocktake/core/apperror"
	"stocktake/core/logger"
	"stocktake/core/middleware/auth"
	"stocktake/feature/stocktake/counting"
	"stocktake/feature/stocktake/differences"
	"stocktake/feature/stocktake/session"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for stock-taking.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the stock-take routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	sessions := app.Group("/sessions")
	sessions.Post("/", h.HandleCreateSession)
	sessions.Get("/", h.HandleListSessions)
	sessions.Get("/:id", h.HandleGetSession)
	sessions.Delete("/:id", h.HandleDeleteSession)
	sessions.Post("/:id/status", h.HandleSetStatus)
	sessions.Post("/:id/scan", h.HandleScan)
	sessions.Post("/:id/scan/batch", h.HandleScanBatch)
	sessions.Put("/:id/counts/:toolId", h.HandleSetCount)
	sessions.Get("/:id/counts", h.HandleListCounts)
	sessions.Get("/:id/differences", h.HandleDifferences)
	sessions.Get("/:id/export", h.HandleExport)
	sessions.Get("/:id/exports", h.HandleListExports)
	sessions.Get("/:id/corrections", h.HandleListCorrections)
	sessions.Post("/:id/corrections", h.HandleProposeCorrection)
	sessions.Post("/:id/corrections/bulk", h.HandleBulkPropose)
	sessions.Get("/:id/recent", h.HandleRecentlyCorrected)

	corrections := app.Group("/corrections")
	corrections.Post("/:id/accept", h.HandleAcceptCorrection)
	corrections.Delete("/:id", h.HandleDeleteCorrection)

	app.Get("/settings/auto-accept", h.HandleGetAutoAccept)
	app.Put("/settings/auto-accept", h.HandleSetAutoAccept)
	app.Get("/resolve", h.HandleResolve)
}

// fail maps err onto the API error response.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := apperror.HTTPStatus(err)
	l := logger.WithActor(logger.WithRayID(h.service.logger, c), auth.ActorFrom(c))
	if status >= http.StatusInternalServerError {
		l.Error("Request failed", zap.String("path", c.Path()), zap.Error(err))
	} else {
		l.Debug("Request rejected", zap.String("path", c.Path()), zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// bind parses and validates the request body into out.
func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: malformed body: %v", apperror.ErrInvalidInput, err)
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrInvalidInput, err)
	}
	return nil
}

func filterFrom(c *fiber.Ctx) differences.Filter {
	return differences.Filter{
		Query:            c.Query("q"),
		MinAbs:           c.QueryInt("min_abs", 0),
		IncludeUncounted: c.QueryBool("include_uncounted", false),
	}
}

// HandleCreateSession opens a new session.
// @Summary Create Session
// @Description Opens a new active stock-take session. Admin only.
// @Tags sessions
// @Accept json
// @Produce json
// @Param body body createSessionRequest true "Session"
// @Success 201 {object} models.Session
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Insufficient permission"
// @Security BearerAuth
// @Router /sessions [post]
func (h *Handler) HandleCreateSession(c *fiber.Ctx) error {
	var req createSessionRequest
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	s, err := h.service.Sessions.Create(c.UserContext(), auth.ActorFrom(c), req.Name, req.Notes)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(s)
}

// HandleListSessions lists sessions.
// @Summary List Sessions
// @Description Lists all sessions, newest first, with counted item totals.
// @Tags sessions
// @Produce json
// @Success 200 {array} models.Session
// @Security BearerAuth
// @Router /sessions [get]
func (h *Handler) HandleListSessions(c *fiber.Ctx) error {
	list, err := h.service.Sessions.List(c.UserContext(), auth.ActorFrom(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(list)
}

// HandleGetSession returns one session.
// @Summary Get Session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} models.Session
// @Failure 404 {object} map[string]string "Not found"
// @Security BearerAuth
// @Router /sessions/{id} [get]
func (h *Handler) HandleGetSession(c *fiber.Ctx) error {
	s, err := h.service.Sessions.Get(c.UserContext(), auth.ActorFrom(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(s)
}

// HandleDeleteSession deletes an ended session.
// @Summary Delete Session
// @Description Deletes an ended session and its counts. Corrections are kept unless purge_corrections=true. Admin only.
// @Tags sessions
// @Param id path string true "Session ID"
// @Param purge_corrections query bool false "Also delete corrections"
// @Success 204
// @Failure 412 {object} map[string]string "Session not ended"
// @Security BearerAuth
// @Router /sessions/{id} [delete]
func (h *Handler) HandleDeleteSession(c *fiber.Ctx) error {
	purge := c.QueryBool("purge_corrections", false)
	if err := h.service.Sessions.Delete(c.UserContext(), auth.ActorFrom(c), c.Params("id"), purge); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleSetStatus pauses, resumes or ends a session.
// @Summary Change Session Status
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body statusRequest true "Action: pause, resume or end"
// @Success 200 {object} models.Session
// @Failure 409 {object} map[string]string "Invalid transition"
// @Security BearerAuth
// @Router /sessions/{id}/status [post]
func (h *Handler) HandleSetStatus(c *fiber.Ctx) error {
	var req statusRequest
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	s, err := h.service.Sessions.SetStatus(c.UserContext(), auth.ActorFrom(c), c.Params("id"), session.Action(req.Action))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(s)
}

// HandleScan counts one scanned code.
// @Summary Scan
// @Description Resolves a code and adds quantity to its count. The session must be active.
// @Tags counting
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body scanRequest true "Scan"
// @Success 200 {object} counting.ScanResult
// @Failure 404 {object} map[string]string "Unknown code"
// @Failure 409 {object} map[string]string "Session not active"
// @Security BearerAuth
// @Router /sessions/{id}/scan [post]
func (h *Handler) HandleScan(c *fiber.Ctx) error {
	var req scanRequest
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	res, err := h.service.Counting.Scan(c.UserContext(), auth.ActorFrom(c), c.Params("id"), req.Code, counting.DefaultQuantity(req.Quantity))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(res)
}

// HandleScanBatch counts several scans.
// @Summary Scan Batch
// @Description Processes scans in order. Unknown codes are reported per item.
// @Tags counting
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body batchRequest true "Scans"
// @Success 200 {object} counting.BatchResult
// @Security BearerAuth
// @Router /sessions/{id}/scan/batch [post]
func (h *Handler) HandleScanBatch(c *fiber.Ctx) error {
	var req batchRequest
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	res, err := h.service.Counting.ScanBatch(c.UserContext(), auth.ActorFrom(c), c.Params("id"), req.Events)
	if err != nil {
		status := apperror.HTTPStatus(err)
		return c.Status(status).JSON(fiber.Map{"error": err.Error(), "partial": res})
	}
	return c.JSON(res)
}

// HandleSetCount overwrites a count.
// @Summary Set Count
// @Tags counting
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param toolId path string true "Tool ID"
// @Param body body setCountRequest true "Quantity"
// @Success 200 {object} models.CountRecord
// @Security BearerAuth
// @Router /sessions/{id}/counts/{toolId} [put]
func (h *Handler) HandleSetCount(c *fiber.Ctx) error {
	var req setCountRequest
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	rec, err := h.service.Counting.SetCount(c.UserContext(), auth.ActorFrom(c), c.Params("id"), c.Params("toolId"), *req.Quantity)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(rec)
}

// HandleListCounts lists the counts of a session.
// @Summary List Counts
// @Tags counting
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {array} models.CountRecord
// @Security BearerAuth
// @Router /sessions/{id}/counts [get]
func (h *Handler) HandleListCounts(c *fiber.Ctx) error {
	records, err := h.service.Counting.Counts(c.UserContext(), auth.ActorFrom(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(records)
}

// HandleDifferences returns the difference view.
// @Summary Differences
// @Description Counted minus system quantity, ordered by magnitude. Recomputed on every call.
// @Tags reporting
// @Produce json
// @Param id path string true "Session ID"
// @Param q query string false "Free text filter"
// @Param min_abs query int false "Minimum absolute difference"
// @Param include_uncounted query bool false "Include registry tools without a count"
// @Success 200 {object} differences.Report
// @Security BearerAuth
// @Router /sessions/{id}/differences [get]
func (h *Handler) HandleDifferences(c *fiber.Ctx) error {
	report, err := h.service.Differences.Differences(c.UserContext(), auth.ActorFrom(c), c.Params("id"), filterFrom(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(report)
}

// HandleExport downloads the difference view as CSV.
// @Summary Export CSV
// @Tags reporting
// @Produce text/csv
// @Param id path string true "Session ID"
// @Param q query string false "Free text filter"
// @Param min_abs query int false "Minimum absolute difference"
// @Param include_uncounted query bool false "Include registry tools without a count"
// @Param delimiter query string false "; or ,"
// @Param archive query bool false "Also store the export in object storage"
// @Success 200 {string} string "CSV"
// @Security BearerAuth
// @Router /sessions/{id}/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	req := ExportRequest{Filter: filterFrom(c), Archive: c.QueryBool("archive", false)}
	switch d := c.Query("delimiter"); d {
	case "":
	case ";", ",":
		req.Delimiter = rune(d[0])
	default:
		return h.fail(c, fmt.Errorf("%w: delimiter must be ';' or ','", apperror.ErrInvalidInput))
	}

	res, err := h.service.Export(c.UserContext(), auth.ActorFrom(c), c.Params("id"), req)
	if err != nil {
		return h.fail(c, err)
	}
	if res.Object != "" {
		c.Set("X-Export-Object", res.Object)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="stocktake-%s.csv"`, c.Params("id")))
	return c.SendString(res.Content)
}

// HandleListExports lists the archived exports of a session.
// @Summary List Archived Exports
// @Tags reporting
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {array} string
// @Failure 412 {object} map[string]string "Archive not configured"
// @Security BearerAuth
// @Router /sessions/{id}/exports [get]
func (h *Handler) HandleListExports(c *fiber.Ctx) error {
	keys, err := h.service.Exports(c.UserContext(), auth.ActorFrom(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	if keys == nil {
		keys = []string{}
	}
	return c.JSON(keys)
}

// HandleListCorrections lists the corrections of a session.
// @Summary List Corrections
// @Tags corrections
// @Produce json
// @Param id path string true "Session ID"
// @Param pending query bool false "Only pending corrections"
// @Success 200 {array} models.Correction
// @Security BearerAuth
// @Router /sessions/{id}/corrections [get]
func (h *Handler) HandleListCorrections(c *fiber.Ctx) error {
	list, err := h.service.Corrections.List(c.UserContext(), auth.ActorFrom(c), c.Params("id"), c.QueryBool("pending", false))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(list)
}

// HandleProposeCorrection proposes a correction.
// @Summary Propose Correction
// @Description Proposes a correction. difference_qty defaults to the current difference. With auto-accept on, admin proposals are accepted at once.
// @Tags corrections
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body proposeRequest true "Correction"
// @Success 201 {object} models.Correction
// @Failure 412 {object} map[string]string "Zero difference"
// @Security BearerAuth
// @Router /sessions/{id}/corrections [post]
func (h *Handler) HandleProposeCorrection(c *fiber.Ctx) error {
	var req proposeRequest
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	corr, err := h.service.Propose(c.UserContext(), auth.ActorFrom(c), c.Params("id"), req.ToolID, req.DifferenceQty, req.Reason)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(corr)
}

// HandleBulkPropose proposes corrections for a filtered difference view.
// @Summary Propose Corrections In Bulk
// @Tags corrections
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param body body bulkProposeRequest true "Filter"
// @Success 201 {array} models.Correction
// @Security BearerAuth
// @Router /sessions/{id}/corrections/bulk [post]
func (h *Handler) HandleBulkPropose(c *fiber.Ctx) error {
	var req bulkProposeRequest
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	f := differences.Filter{Query: req.Query, MinAbs: req.MinAbs, IncludeUncounted: req.IncludeUncounted}
	list, err := h.service.ProposeAll(c.UserContext(), auth.ActorFrom(c), c.Params("id"), f, req.Reason)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(list)
}

// HandleRecentlyCorrected lists tools corrected a moment ago.
// @Summary Recently Corrected Tools
// @Tags corrections
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {array} string
// @Security BearerAuth
// @Router /sessions/{id}/recent [get]
func (h *Handler) HandleRecentlyCorrected(c *fiber.Ctx) error {
	ids, err := h.service.Corrections.RecentlyCorrected(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(ids)
}

// HandleAcceptCorrection accepts a pending correction.
// @Summary Accept Correction
// @Description Applies the correction to the tool registry. Admin only.
// @Tags corrections
// @Produce json
// @Param id path string true "Correction ID"
// @Success 200 {object} models.Correction
// @Failure 412 {object} map[string]string "Already accepted"
// @Security BearerAuth
// @Router /corrections/{id}/accept [post]
func (h *Handler) HandleAcceptCorrection(c *fiber.Ctx) error {
	corr, err := h.service.Corrections.Accept(c.UserContext(), auth.ActorFrom(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(corr)
}

// HandleDeleteCorrection deletes a pending correction.
// @Summary Delete Correction
// @Tags corrections
// @Param id path string true "Correction ID"
// @Success 204
// @Failure 412 {object} map[string]string "Already accepted"
// @Security BearerAuth
// @Router /corrections/{id} [delete]
func (h *Handler) HandleDeleteCorrection(c *fiber.Ctx) error {
	if err := h.service.Corrections.Delete(c.UserContext(), auth.ActorFrom(c), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetAutoAccept returns the auto-accept setting.
// @Summary Get Auto-Accept
// @Tags settings
// @Produce json
// @Success 200 {object} map[string]bool
// @Security BearerAuth
// @Router /settings/auto-accept [get]
func (h *Handler) HandleGetAutoAccept(c *fiber.Ctx) error {
	enabled, err := h.service.AutoAccept(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"enabled": enabled})
}

// HandleSetAutoAccept changes the auto-accept setting.
// @Summary Set Auto-Accept
// @Tags settings
// @Accept json
// @Produce json
// @Param body body autoAcceptRequest true "Setting"
// @Success 200 {object} map[string]bool
// @Security BearerAuth
// @Router /settings/auto-accept [put]
func (h *Handler) HandleSetAutoAccept(c *fiber.Ctx) error {
	var req autoAcceptRequest
	if err := bind(c, &req); err != nil {
		return h.fail(c, err)
	}
	if err := h.service.SetAutoAccept(c.UserContext(), auth.ActorFrom(c), *req.Enabled); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"enabled": *req.Enabled})
}

// HandleResolve resolves a code without counting it.
// @Summary Resolve Code
// @Tags counting
// @Produce json
// @Param code query string true "Scanned code"
// @Success 200 {object} resolver.Resolution
// @Security BearerAuth
// @Router /resolve [get]
func (h *Handler) HandleResolve(c *fiber.Ctx) error {
	res, err := h.service.Resolve(c.UserContext(), auth.ActorFrom(c), c.Query("code"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(res)
}
