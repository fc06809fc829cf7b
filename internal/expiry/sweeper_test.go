package expiry_test

import (
	"path/filepath"
	"testing"
	"time"

	"oceanoscuba-admin/config"
	"oceanoscuba-admin/internal/expiry"
	"oceanoscuba-admin/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.MigrateDB(db))
	return db
}

func seedContract(t *testing.T, db *gorm.DB, token, status string, expiresAt *time.Time) models.Contract {
	t.Helper()
	contract := models.Contract{
		CompanyID:   1,
		TemplateID:  1,
		Sku:         "WAIVER-01",
		Code:        "CT-2026-" + token,
		AccessToken: token,
		Status:      status,
		ExpiresAt:   expiresAt,
	}
	require.NoError(t, db.Create(&contract).Error)
	return contract
}

func TestSweepExpiresOverduePendingContracts(t *testing.T) {
	db := setupDB(t)
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)

	vencido := seedContract(t, db, "t1", models.ContractStatusPendingSign, &past)
	vigente := seedContract(t, db, "t2", models.ContractStatusPendingSign, &future)
	sinPlazo := seedContract(t, db, "t3", models.ContractStatusPendingSign, nil)
	borrador := seedContract(t, db, "t4", models.ContractStatusDraft, &past)
	firmado := seedContract(t, db, "t5", models.ContractStatusSigned, &past)

	expiry.Sweep(db)

	status := func(id uint) string {
		var contract models.Contract
		require.NoError(t, db.First(&contract, id).Error)
		return contract.Status
	}

	assert.Equal(t, models.ContractStatusExpired, status(vencido.ID))
	assert.Equal(t, models.ContractStatusPendingSign, status(vigente.ID))
	assert.Equal(t, models.ContractStatusPendingSign, status(sinPlazo.ID))
	// Solo lo pendiente de firma expira: un borrador no circuló y un
	// contrato firmado es inmutable.
	assert.Equal(t, models.ContractStatusDraft, status(borrador.ID))
	assert.Equal(t, models.ContractStatusSigned, status(firmado.ID))
}

// Al expirar un contrato, el estado cacheado de la vía pública se borra:
// la página de firma no puede seguir viendo PENDING_SIGN.
func TestSweepInvalidatesStatusCache(t *testing.T) {
	db := setupDB(t)
	mr := miniredis.RunT(t)
	config.RDB = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { config.RDB = nil })

	past := time.Now().Add(-time.Hour)
	contract := seedContract(t, db, "t1", models.ContractStatusPendingSign, &past)

	cacheKey := "contract:status:" + contract.AccessToken
	require.NoError(t, mr.Set(cacheKey, models.ContractStatusPendingSign))

	expiry.Sweep(db)

	assert.False(t, mr.Exists(cacheKey))
}

func TestSweepIsIdempotent(t *testing.T) {
	db := setupDB(t)
	past := time.Now().Add(-time.Hour)
	contract := seedContract(t, db, "t1", models.ContractStatusPendingSign, &past)

	expiry.Sweep(db)
	expiry.Sweep(db)

	var reloaded models.Contract
	require.NoError(t, db.First(&reloaded, contract.ID).Error)
	assert.Equal(t, models.ContractStatusExpired, reloaded.Status)
}
