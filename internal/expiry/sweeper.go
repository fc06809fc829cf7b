// oceanoscuba-admin/internal/expiry/sweeper.go
package expiry

import (
	"log/slog"
	"time"

	"oceanoscuba-admin/internal/handlers"
	"oceanoscuba-admin/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Start programa el barrido de vencimientos cada cinco minutos y devuelve
// el cron para poder detenerlo en el apagado.
func Start(db *gorm.DB) *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc("@every 5m", func() { Sweep(db) }); err != nil {
		slog.Error("No se pudo programar el barrido de vencimientos", "error", err)
		return c
	}
	c.Start()
	slog.Info("Barrido de vencimientos programado")
	return c
}

// Sweep marca como EXPIRED todo contrato pendiente de firma cuyo plazo
// venció y publica el evento correspondiente.
func Sweep(db *gorm.DB) {
	var expired []models.Contract
	if err := db.Select("id", "company_id", "code", "access_token").
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?",
			models.ContractStatusPendingSign, time.Now()).
		Find(&expired).Error; err != nil {
		slog.Error("Fallo el barrido de vencimientos", "error", err)
		return
	}
	if len(expired) == 0 {
		return
	}

	now := time.Now()
	for _, contract := range expired {
		if err := db.Model(&models.Contract{}).
			Where("id = ? AND status = ?", contract.ID, models.ContractStatusPendingSign).
			Update("status", models.ContractStatusExpired).Error; err != nil {
			slog.Error("No se pudo expirar el contrato", "error", err, "code", contract.Code)
			continue
		}
		handlers.InvalidateStatusCache(contract.AccessToken)
		handlers.GlobalHub.Broadcast(contract.CompanyID, handlers.ContractEvent{
			Type:       "contract.expired",
			ContractID: contract.ID,
			Code:       contract.Code,
			Status:     models.ContractStatusExpired,
			OccurredAt: now,
		})
		slog.Info("Contrato expirado", "code", contract.Code)
	}
}
