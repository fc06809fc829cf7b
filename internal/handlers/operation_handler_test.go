package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"oceanoscuba-admin/config"
	"oceanoscuba-admin/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedOperation arma una operación diaria mínima: una embarcación con cupo
// para uno y un grupo sin cupo propio.
func seedOperation(t *testing.T, groupCapacity int) (models.OperationGroup, models.Person) {
	t.Helper()

	vessel := models.Vessel{CompanyID: 1, Name: "Nautilus I", Capacity: 1, IsActive: true}
	require.NoError(t, config.DB.Create(&vessel).Error)

	op := models.DailyOperation{CompanyID: 1, OperationDate: time.Now(), Status: "PLANNED"}
	require.NoError(t, config.DB.Create(&op).Error)

	group := models.OperationGroup{
		DailyOperationID: op.ID,
		Name:             "Salida de la mañana",
		DepartureTime:    "08:00",
		Capacity:         groupCapacity,
		VesselID:         &vessel.ID,
	}
	require.NoError(t, config.DB.Create(&group).Error)

	person := models.Person{CompanyID: 1, FirstName: "Ana", LastName: "Pérez", Kind: "CLIENT"}
	require.NoError(t, config.DB.Create(&person).Error)

	return group, person
}

func addParticipant(t *testing.T, r *gin.Engine, token string, groupID, personID uint) *httptest.ResponseRecorder {
	t.Helper()
	return doJSON(t, r, http.MethodPost, "/api/v1/operation-participants", token, M{
		"operation_group_id": groupID, "person_id": personID,
	})
}

func TestParticipantCapacityFromVessel(t *testing.T) {
	r, token := setupAuthed(t)
	group, person := seedOperation(t, 0)

	w := addParticipant(t, r, token, group.ID, person.ID)
	require.Equal(t, http.StatusCreated, w.Code)

	otra := models.Person{CompanyID: 1, FirstName: "Luis", LastName: "Gómez"}
	require.NoError(t, config.DB.Create(&otra).Error)

	// El grupo no define cupo: manda la capacidad de la embarcación (1).
	w = addParticipant(t, r, token, group.ID, otra.ID)
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Cupo completo para el grupo", decodeBody(t, w)["error"])
}

func TestParticipantCapacityFromGroupOverridesVessel(t *testing.T) {
	r, token := setupAuthed(t)
	group, person := seedOperation(t, 2)

	w := addParticipant(t, r, token, group.ID, person.ID)
	require.Equal(t, http.StatusCreated, w.Code)

	otra := models.Person{CompanyID: 1, FirstName: "Luis", LastName: "Gómez"}
	require.NoError(t, config.DB.Create(&otra).Error)

	w = addParticipant(t, r, token, group.ID, otra.ID)
	require.Equal(t, http.StatusCreated, w.Code)

	tercera := models.Person{CompanyID: 1, FirstName: "Sara", LastName: "Ruiz"}
	require.NoError(t, config.DB.Create(&tercera).Error)

	w = addParticipant(t, r, token, group.ID, tercera.ID)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestCancelledParticipantFreesSlot(t *testing.T) {
	r, token := setupAuthed(t)
	group, person := seedOperation(t, 0)

	w := addParticipant(t, r, token, group.ID, person.ID)
	require.Equal(t, http.StatusCreated, w.Code)
	participantID := decodeBody(t, w)["id"].(float64)

	w = doJSON(t, r, http.MethodPut,
		fmt.Sprintf("/api/v1/operation-participants/%.0f", participantID), token, M{
			"status": "CANCELLED",
		})
	require.Equal(t, http.StatusOK, w.Code)

	otra := models.Person{CompanyID: 1, FirstName: "Luis", LastName: "Gómez"}
	require.NoError(t, config.DB.Create(&otra).Error)

	w = addParticipant(t, r, token, group.ID, otra.ID)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestParticipantValidation(t *testing.T) {
	r, token := setupAuthed(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/operation-participants", token, M{
		"person_id": 1,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Grupo y persona son obligatorios", decodeBody(t, w)["error"])
}

func TestParticipantGroupOtherCompany(t *testing.T) {
	r, token := setupAuthed(t)
	group, person := seedOperation(t, 0)

	// El grupo pertenece a otra compañía: para el usuario no existe.
	require.NoError(t, config.DB.Model(&models.DailyOperation{}).
		Where("id = ?", group.DailyOperationID).
		Update("company_id", 2).Error)

	w := addParticipant(t, r, token, group.ID, person.ID)
	require.Equal(t, http.StatusNotFound, w.Code)
}

// Mover un participante a un grupo de otra compañía no existe como
// operación: el destino se valida igual que el origen.
func TestParticipantCannotMoveToForeignGroup(t *testing.T) {
	r, token := setupAuthed(t)
	group, person := seedOperation(t, 0)

	w := addParticipant(t, r, token, group.ID, person.ID)
	require.Equal(t, http.StatusCreated, w.Code)
	participantID := decodeBody(t, w)["id"].(float64)

	foreignOp := models.DailyOperation{CompanyID: 2, OperationDate: time.Now()}
	require.NoError(t, config.DB.Create(&foreignOp).Error)
	foreignGroup := models.OperationGroup{DailyOperationID: foreignOp.ID, Name: "Ajeno"}
	require.NoError(t, config.DB.Create(&foreignGroup).Error)

	w = doJSON(t, r, http.MethodPut,
		fmt.Sprintf("/api/v1/operation-participants/%.0f", participantID), token, M{
			"operation_group_id": foreignGroup.ID,
		})
	require.Equal(t, http.StatusNotFound, w.Code)

	var reloaded models.OperationParticipant
	require.NoError(t, config.DB.First(&reloaded, uint(participantID)).Error)
	assert.Equal(t, group.ID, reloaded.OperationGroupID)
}

// El cupo también rige al mover un participante entre grupos de la misma
// compañía.
func TestParticipantMoveRespectsCapacity(t *testing.T) {
	r, token := setupAuthed(t)
	group, person := seedOperation(t, 5)

	w := addParticipant(t, r, token, group.ID, person.ID)
	require.Equal(t, http.StatusCreated, w.Code)
	participantID := decodeBody(t, w)["id"].(float64)

	// Un segundo grupo de la misma operación, con cupo para uno y ya lleno.
	fullGroup := models.OperationGroup{
		DailyOperationID: group.DailyOperationID,
		Name:             "Salida de la tarde",
		Capacity:         1,
	}
	require.NoError(t, config.DB.Create(&fullGroup).Error)
	ocupante := models.Person{CompanyID: 1, FirstName: "Luis", LastName: "Gómez"}
	require.NoError(t, config.DB.Create(&ocupante).Error)
	w = addParticipant(t, r, token, fullGroup.ID, ocupante.ID)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPut,
		fmt.Sprintf("/api/v1/operation-participants/%.0f", participantID), token, M{
			"operation_group_id": fullGroup.ID,
		})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Cupo completo para el grupo", decodeBody(t, w)["error"])

	// Con espacio disponible el traslado procede.
	openGroup := models.OperationGroup{
		DailyOperationID: group.DailyOperationID,
		Name:             "Salida nocturna",
		Capacity:         3,
	}
	require.NoError(t, config.DB.Create(&openGroup).Error)
	w = doJSON(t, r, http.MethodPut,
		fmt.Sprintf("/api/v1/operation-participants/%.0f", participantID), token, M{
			"operation_group_id": openGroup.ID,
		})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(openGroup.ID), decodeBody(t, w)["operation_group_id"])
}

func TestOperationGroupKeepsDailyOperation(t *testing.T) {
	r, token := setupAuthed(t)
	group, _ := seedOperation(t, 0)

	otherOp := models.DailyOperation{CompanyID: 2, OperationDate: time.Now()}
	require.NoError(t, config.DB.Create(&otherOp).Error)

	// Intento de mover el grupo a una operación ajena: el id se conserva.
	w := doJSON(t, r, http.MethodPut,
		fmt.Sprintf("/api/v1/operation-groups/%d", group.ID), token, M{
			"name": "Salida de la tarde", "daily_operation_id": otherOp.ID,
		})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Salida de la tarde", body["name"])
	assert.Equal(t, float64(group.DailyOperationID), body["daily_operation_id"])
}
