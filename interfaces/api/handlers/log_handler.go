package handlers

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"newsletter-backend/pkg/config"
	"newsletter-backend/pkg/logger"
	"newsletter-backend/pkg/utils"
)

// LogHandler handles log-related API requests
type LogHandler struct {
	adminToken string
}

func NewLogHandler(cfg *config.Config) *LogHandler {
	adminToken := cfg.Admin.Token
	if adminToken == "" {
		adminToken = cfg.JWT.Secret
	}
	return &LogHandler{
		adminToken: adminToken,
	}
}

func (h *LogHandler) checkAdminToken(c *fiber.Ctx) bool {
	token := c.Get("X-Admin-Token")
	if token == "" {
		token = c.Query("token")
	}
	return token == h.adminToken
}

// GetLogs godoc
// @Summary Get application logs
// @Tags Admin
// @Security AdminToken
// @Produce json
// @Param lines query int false "Number of lines" default(100)
// @Param level query string false "Filter by level (DEBUG, INFO, WARN, ERROR)"
// @Param category query string false "Filter by category (auth, generation, api, db, scheduler, websocket)"
// @Param search query string false "Search in message/action"
// @Success 200 {object} utils.Response
// @Router /admin/logs [get]
func (h *LogHandler) GetLogs(c *fiber.Ctx) error {
	if !h.checkAdminToken(c) {
		return utils.UnauthorizedResponse(c, "Invalid admin token")
	}

	opts := logger.ReadLogsOptions{
		Lines:    c.QueryInt("lines", 100),
		Level:    logger.Level(c.Query("level")),
		Category: logger.Category(c.Query("category")),
		Search:   c.Query("search"),
	}

	entries, err := logger.ReadLogs(opts)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to read logs", err)
	}

	return utils.SuccessResponse(c, "Logs retrieved", fiber.Map{
		"entries": entries,
		"count":   len(entries),
		"filters": fiber.Map{
			"lines":    opts.Lines,
			"level":    opts.Level,
			"category": opts.Category,
			"search":   opts.Search,
		},
	})
}

// GetLogFiles godoc
// @Summary List log files
// @Tags Admin
// @Security AdminToken
// @Produce json
// @Success 200 {object} utils.Response
// @Router /admin/logs/files [get]
func (h *LogHandler) GetLogFiles(c *fiber.Ctx) error {
	if !h.checkAdminToken(c) {
		return utils.UnauthorizedResponse(c, "Invalid admin token")
	}

	files, err := logger.ListLogFiles()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to list log files", err)
	}

	return utils.SuccessResponse(c, "Log files retrieved", fiber.Map{
		"files":  files,
		"logDir": logger.GetLogDir(),
	})
}

// GetLogStats godoc
// @Summary Get log statistics
// @Tags Admin
// @Security AdminToken
// @Produce json
// @Success 200 {object} utils.Response
// @Router /admin/logs/stats [get]
func (h *LogHandler) GetLogStats(c *fiber.Ctx) error {
	if !h.checkAdminToken(c) {
		return utils.UnauthorizedResponse(c, "Invalid admin token")
	}

	allLogs, _ := logger.ReadLogs(logger.ReadLogsOptions{Lines: 1000})

	levelCounts := map[string]int{
		"DEBUG": 0,
		"INFO":  0,
		"WARN":  0,
		"ERROR": 0,
	}
	categoryCounts := map[string]int{}

	for _, entry := range allLogs {
		levelCounts[string(entry.Level)]++
		categoryCounts[string(entry.Category)]++
	}

	var totalSize int64
	files, _ := logger.ListLogFiles()
	logDir := logger.GetLogDir()
	for _, f := range files {
		if info, err := os.Stat(filepath.Join(logDir, f)); err == nil {
			totalSize += info.Size()
		}
	}

	return utils.SuccessResponse(c, "Log stats retrieved", fiber.Map{
		"total_entries":    len(allLogs),
		"by_level":         levelCounts,
		"by_category":      categoryCounts,
		"total_files":      len(files),
		"total_size_bytes": totalSize,
	})
}
