package controllers

import (
	"context"
	"fmt"
	"time"

	"cazinoureview/config"
	"cazinoureview/dto"
	"cazinoureview/models"
	"cazinoureview/response"
	"cazinoureview/services"
	"cazinoureview/services/hr"
	"cazinoureview/services/logger"
	"cazinoureview/services/sheets"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const monthlyDataCacheTTL = 5 * time.Minute

// HRController serves the import/calculation triggers and the monthly
// read view.
type HRController struct {
	db     *gorm.DB
	rdb    *redis.Client
	events *melody.Melody
	log    logger.Logger
	cfg    hr.ProfitConfig
}

func NewHRController(db *gorm.DB, rdb *redis.Client, events *melody.Melody) *HRController {
	return &HRController{
		db:     db,
		rdb:    rdb,
		events: events,
		log:    logger.NewDefaultLogger(logger.InfoLevel),
		cfg:    hr.DefaultProfitConfig(),
	}
}

func monthlyDataCacheKey(month string) string {
	return fmt.Sprintf("hr:monthly:%s", month)
}

// driveStore builds the document-store adapter from the persisted Google
// token, or reports that re-authorization is needed.
func (ctl *HRController) driveStore(ctx context.Context) (sheets.Store, error) {
	ts, err := sheets.NewDBTokenSource(ctx, ctl.db, config.GoogleOAuthConfig())
	if err != nil {
		return nil, err
	}
	return sheets.NewGoogleStore(ctx, ts, config.DriveRootFolderID())
}

// DriveStatus probes the Drive connection: root folder name and the
// employee folders visible under it.
func (ctl *HRController) DriveStatus(c *gin.Context) {
	ctx := c.Request.Context()

	store, err := ctl.driveStore(ctx)
	if err != nil {
		if sheets.IsReauthError(err) {
			response.NeedsReauth(c, "/api/v1/auth/google")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	folderName, err := store.RootFolder(ctx)
	if err != nil {
		if sheets.IsReauthError(err) {
			response.NeedsReauth(c, "/api/v1/auth/google")
			return
		}
		response.BadRequest(c, "Authorized, but the shared folder is not accessible")
		return
	}

	folders, err := store.ListEmployeeFolders(ctx)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	preview := make([]string, 0, 5)
	for _, f := range folders {
		if len(preview) == 5 {
			break
		}
		preview = append(preview, f.Handle)
	}

	response.Success(c, gin.H{
		"status":          "authenticated",
		"folderName":      folderName,
		"employeeFolders": len(folders),
		"employees":       preview,
	})
}

// TriggerImport runs the month import.
func (ctl *HRController) TriggerImport(c *gin.Context) {
	var req dto.MonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Month is required")
		return
	}

	month, err := hr.ParseMonth(req.Month)
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	store, err := ctl.driveStore(ctx)
	if err != nil {
		if sheets.IsReauthError(err) {
			response.NeedsReauth(c, "/api/v1/auth/google")
			return
		}
		response.ServerError(c)
		return
	}

	importer := hr.NewImporter(hr.ImporterOptions{
		DB:     ctl.db,
		Store:  store,
		Logger: ctl.log,
		Config: hr.DefaultImportConfig(config.TesterSpreadsheetID()),
	})

	summary, err := importer.Run(ctx, month)
	if err != nil {
		if sheets.IsReauthError(err) {
			response.NeedsReauth(c, "/api/v1/auth/google")
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	ctl.invalidateMonthly(month.Key())
	services.BroadcastAdminEvent(ctl.events, "import_completed", month.Key(), gin.H{
		"imported": summary.Imported,
		"testRows": summary.TestRows,
		"errors":   len(summary.Errors),
	})

	response.Success(c, summary)
}

// TriggerCalculate runs the month's profit distribution.
func (ctl *HRController) TriggerCalculate(c *gin.Context) {
	var req dto.MonthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Month is required")
		return
	}

	month, err := hr.ParseMonth(req.Month)
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	calculator := hr.NewCalculator(hr.CalculatorOptions{
		DB:     ctl.db,
		Logger: ctl.log,
		Config: ctl.cfg,
	})

	result, err := calculator.Calculate(c.Request.Context(), month)
	if err != nil {
		response.ServerError(c)
		return
	}

	ctl.invalidateMonthly(month.Key())
	services.BroadcastAdminEvent(ctl.events, "calculation_completed", month.Key(), gin.H{
		"totalBase":   result.TotalBase,
		"totalProfit": result.TotalProfit,
	})

	response.Success(c, result)
}

// GetMonthlyData serves the derived month view, cached for a few minutes.
func (ctl *HRController) GetMonthlyData(c *gin.Context) {
	monthParam := c.Query("month")
	month, err := hr.ParseMonth(monthParam)
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	key := month.Key()

	cacheKey := monthlyDataCacheKey(key)
	var cached dto.MonthlyData
	if err := services.GetFromRedis(config.Ctx, ctl.rdb, cacheKey, &cached); err == nil && cached.Month != "" {
		response.Success(c, cached)
		return
	}

	rate := ctl.cfg.DefaultRate
	var acc models.MonthlyAccounting
	if err := ctl.db.Where("month = ?", key).First(&acc).Error; err == nil && acc.GbpUsdRate > 0 {
		rate = acc.GbpUsdRate
	}

	var work []models.WorkRecord
	if err := ctl.db.Preload("Employee").Where("month = ?", key).Order("id asc").Find(&work).Error; err != nil {
		response.ServerError(c)
		return
	}

	var tests []models.TestRecord
	if err := ctl.db.Where("month = ?", key).Order("id asc").Find(&tests).Error; err != nil {
		response.ServerError(c)
		return
	}

	data := hr.BuildMonthlyData(work, tests, rate, ctl.cfg)
	data.Month = key

	if err := services.SetToRedis(config.Ctx, ctl.rdb, cacheKey, data, monthlyDataCacheTTL); err != nil {
		ctl.log.Error("monthly data cache write failed: %v", err)
	}

	response.Success(c, data)
}

func (ctl *HRController) invalidateMonthly(month string) {
	if ctl.rdb == nil {
		return
	}
	if err := services.DeleteFromRedis(config.Ctx, ctl.rdb, monthlyDataCacheKey(month)); err != nil {
		ctl.log.Error("monthly data cache invalidation failed: %v", err)
	}
}
