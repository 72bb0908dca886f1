package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/carteira-backend/internal/domain/ports"
	"github.com/rafabene/carteira-backend/internal/handlers/dto"
	"github.com/rafabene/carteira-backend/internal/handlers/middleware"
	"github.com/rafabene/carteira-backend/internal/services"
)

const downloadPath = "/api/reports/download/"

// ReportHandler expõe dashboard e exportação de extratos
type ReportHandler struct {
	reports *services.ReportService
	baseURL string
	logger  ports.Logger
}

func NewReportHandler(reports *services.ReportService, baseURL string, logger ports.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, baseURL: baseURL, logger: logger}
}

// Dashboard nunca falha por erro de agregação; os números viram zero
//
//	@Summary	Dashboard
//	@Tags		reports
//	@Success	200	{object}	dto.DashboardResponse
//	@Router		/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)

	dashboard, err := h.reports.Dashboard(c.Request.Context(), p.User.ID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDashboardResponse(dashboard))
}

// Statement gera o extrato em CSV e devolve a URL de download
//
//	@Summary	Exporta extrato
//	@Tags		reports
//	@Param		body	body		dto.StatementRequest	false	"Período"
//	@Success	201		{object}	dto.StatementResponse
//	@Router		/reports/statement [post]
func (h *ReportHandler) Statement(c *gin.Context) {
	var req dto.StatementRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
	}

	p := middleware.CurrentPrincipal(c)
	file, err := h.reports.Statement(c.Request.Context(), p.User.ID, services.StatementInput{
		From: req.DataInicio,
		To:   req.DataFim,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToStatementResponse(file, h.baseURL+downloadPath+file.Name))
}

// Download só serve arquivos gerados pelo próprio usuário
func (h *ReportHandler) Download(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)
	name := c.Param("filename")

	path, err := h.reports.Download(c.Request.Context(), p.User.ID, name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.FileAttachment(path, name)
}
