package handler

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"shorturl-service/internal/click"
	"shorturl-service/internal/model"
	"shorturl-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// URLService 短链接业务接口
type URLService interface {
	Create(ctx context.Context, in service.CreateInput) (*model.ShortURL, error)
	GetStats(ctx context.Context, code string) (*model.ShortURL, error)
	Redirect(ctx context.Context, code string, rc click.RequestContext) (string, error)
	ListAll(ctx context.Context) ([]service.Summary, error)
	Delete(ctx context.Context, code string) error
}

// ShortURLHandler 处理器
type ShortURLHandler struct {
	service URLService
	logger  *zap.SugaredLogger
}

// NewShortURLHandler 创建处理器实例
func NewShortURLHandler(svc URLService, logger *zap.SugaredLogger) *ShortURLHandler {
	return &ShortURLHandler{
		service: svc,
		logger:  logger.Named("handler"),
	}
}

// Register 注册路由
func (h *ShortURLHandler) Register(router gin.IRouter) {
	router.GET("/health", h.HealthCheck)
	router.GET("/:code", h.RedirectToOriginal)

	api := router.Group("/api")
	{
		api.POST("/shorten", h.CreateShortURL)
		api.GET("/stats/:code", h.GetStats)
		api.GET("/links", h.GetAllLinks)
		api.DELETE("/links/:code", h.DeleteLink)
	}
}

// HealthCheck godoc
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *ShortURLHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now().UTC().Format(time.RFC3339)})
}

// CreateShortURL godoc
// @Summary 创建短链接
// @Description 为一个长 URL 创建短链接，可指定有效期（分钟）和自定义短码
// @Tags ShortURL
// @Accept json
// @Produce json
// @Param body body CreateShortURLRequest true "创建参数"
// @Success 201 {object} CreateShortURLResponse
// @Failure 400 {object} ErrorResponse "参数错误"
// @Failure 409 {object} ErrorResponse "短码已存在"
// @Failure 500 {object} ErrorResponse "服务器内部错误"
// @Router /api/shorten [post]
func (h *ShortURLHandler) CreateShortURL(c *gin.Context) {
	var req CreateShortURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "无效的请求数据: " + err.Error(), Code: "invalid_request"})
		return
	}

	validity, err := parseValidity(req.Validity)
	if err != nil {
		// 无法解析的有效期按非法值交给服务层，保证先校验 URL
		invalid := math.NaN()
		validity = &invalid
	}

	record, err := h.service.Create(c.Request.Context(), service.CreateInput{
		OriginalURL:     req.URL,
		ValidityMinutes: validity,
		CustomCode:      req.Shortcode,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateShortURLResponse{
		ShortCode:   record.ShortCode,
		ShortLink:   shortLink(c, record.ShortCode),
		OriginalURL: record.OriginalURL,
		Expiry:      formatOptionalTime(record.ExpiresAt),
	})
}

// GetStats godoc
// @Summary 短链接统计
// @Description 返回短链接的完整信息和点击历史
// @Tags ShortURL
// @Produce json
// @Param code path string true "短码"
// @Success 200 {object} StatsResponse
// @Failure 404 {object} ErrorResponse "不存在"
// @Failure 410 {object} ErrorResponse "已过期"
// @Router /api/stats/{code} [get]
func (h *ShortURLHandler) GetStats(c *gin.Context) {
	record, err := h.service.GetStats(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStatsResponse(record))
}

// RedirectToOriginal godoc
// @Summary 短链接跳转
// @Tags ShortURL
// @Param code path string true "短码"
// @Success 302
// @Failure 404 {object} ErrorResponse "不存在"
// @Failure 410 {object} ErrorResponse "已过期"
// @Router /{code} [get]
func (h *ShortURLHandler) RedirectToOriginal(c *gin.Context) {
	rc := click.RequestContext{
		Referer:    c.Request.Referer(),
		UserAgent:  c.Request.UserAgent(),
		RemoteAddr: c.RemoteIP(),
	}

	target, err := h.service.Redirect(c.Request.Context(), c.Param("code"), rc)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.Redirect(http.StatusFound, target)
}

// GetAllLinks godoc
// @Summary 短链接列表
// @Description 列出存储中的全部短链接，包括已过期但尚未清理的
// @Tags ShortURL
// @Produce json
// @Success 200 {array} SummaryResponse
// @Failure 500 {object} ErrorResponse "服务器内部错误"
// @Router /api/links [get]
func (h *ShortURLHandler) GetAllLinks(c *gin.Context) {
	links, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	out := make([]SummaryResponse, len(links))
	for i, l := range links {
		out[i] = toSummaryResponse(l)
	}
	c.JSON(http.StatusOK, out)
}

// DeleteLink godoc
// @Summary 删除短链接
// @Tags ShortURL
// @Produce json
// @Param code path string true "短码"
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse "不存在"
// @Router /api/links/{code} [delete]
func (h *ShortURLHandler) DeleteLink(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("code")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// respondError 把业务错误映射为 HTTP 状态码
func (h *ShortURLHandler) respondError(c *gin.Context, err error) {
	switch {
	case model.IsValidation(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: validationCode(err)})
	case errors.Is(err, model.ErrCodeConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: "code_conflict"})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: "not_found"})
	case errors.Is(err, model.ErrGone):
		c.JSON(http.StatusGone, ErrorResponse{Error: err.Error(), Code: "gone"})
	case errors.Is(err, model.ErrGenerationExhausted):
		h.logger.Errorf("短码生成失败: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: "generation_exhausted"})
	default:
		h.logger.Errorw("请求处理失败", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "服务器内部错误", Code: "internal_error"})
	}
}

func validationCode(err error) string {
	switch {
	case errors.Is(err, model.ErrMissingURL):
		return "missing_url"
	case errors.Is(err, model.ErrInvalidURL):
		return "invalid_url"
	case errors.Is(err, model.ErrInvalidValidity):
		return "invalid_validity"
	default:
		return "invalid_shortcode"
	}
}

func shortLink(c *gin.Context, code string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + "/" + code
}
