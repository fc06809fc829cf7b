// oceanoscuba-admin/internal/handlers/operation_handler.go
package handlers

import (
	"fmt"
	"net/http"

	"oceanoscuba-admin/config"
	"oceanoscuba-admin/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// --- OPERACIONES DIARIAS ---

func ListDailyOperationsHandler(c *gin.Context) {
	var operations []models.DailyOperation
	var totalRows int64

	baseQuery := config.DB.Model(&models.DailyOperation{}).Where("company_id = ?", companyID(c))
	if status := c.Query("status"); status != "" {
		baseQuery = baseQuery.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		baseQuery = baseQuery.Where("DATE(operation_date) = ?", date)
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron contar las operaciones"})
		return
	}
	if err := baseQuery.Scopes(Paginate(c)).
		Preload("Marina").Preload("Groups").
		Order("operation_date DESC").Find(&operations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de operaciones"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, operations, totalRows))
}

func GetDailyOperationHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var operation models.DailyOperation
	if err := config.DB.
		Preload("Marina").
		Preload("Groups").
		Preload("Groups.Vessel").
		Preload("Groups.Activity").
		Preload("Groups.Participants").
		Preload("Groups.Participants.Person").
		Where("company_id = ?", companyID(c)).First(&operation, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Operación no encontrada"})
		return
	}
	c.JSON(http.StatusOK, operation)
}

func CreateDailyOperationHandler(c *gin.Context) {
	var operation models.DailyOperation
	if err := c.ShouldBindJSON(&operation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	if operation.OperationDate.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La fecha de operación es obligatoria"})
		return
	}
	operation.ID = 0
	operation.CompanyID = companyID(c)
	operation.Marina = nil
	operation.Groups = nil
	if operation.Status == "" {
		operation.Status = "PLANNED"
	}

	if err := config.DB.Create(&operation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear la operación"})
		return
	}
	c.JSON(http.StatusCreated, operation)
}

func UpdateDailyOperationHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var operation models.DailyOperation
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&operation, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Operación no encontrada"})
		return
	}
	if err := c.ShouldBindJSON(&operation); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	operation.ID = id
	operation.CompanyID = companyID(c)
	operation.Marina = nil
	operation.Groups = nil

	if err := config.DB.Save(&operation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar la operación"})
		return
	}
	c.JSON(http.StatusOK, operation)
}

func DeleteDailyOperationHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var operation models.DailyOperation
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&operation, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Operación no encontrada"})
		return
	}
	if err := config.DB.Delete(&operation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar la operación"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Operación eliminada"})
}

// --- GRUPOS DE OPERACIÓN ---

// findOperationGroup localiza un grupo verificando que su operación diaria
// pertenezca a la compañía del usuario.
func findOperationGroup(c *gin.Context, id uint) (*models.OperationGroup, bool) {
	var group models.OperationGroup
	err := config.DB.
		Joins("JOIN daily_operations ON daily_operations.id = operation_groups.daily_operation_id").
		Where("daily_operations.company_id = ? AND daily_operations.deleted_at IS NULL", companyID(c)).
		Preload("Vessel").
		First(&group, "operation_groups.id = ?", id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grupo no encontrado"})
		return nil, false
	}
	return &group, true
}

func ListOperationGroupsHandler(c *gin.Context) {
	var groups []models.OperationGroup

	query := config.DB.Model(&models.OperationGroup{}).
		Joins("JOIN daily_operations ON daily_operations.id = operation_groups.daily_operation_id").
		Where("daily_operations.company_id = ? AND daily_operations.deleted_at IS NULL", companyID(c))
	if opID := c.Query("daily_operation_id"); opID != "" {
		query = query.Where("operation_groups.daily_operation_id = ?", opID)
	}

	if err := query.Preload("Vessel").Preload("Activity").Preload("Participants").
		Order("operation_groups.departure_time").Find(&groups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de grupos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": groups})
}

func CreateOperationGroupHandler(c *gin.Context) {
	var group models.OperationGroup
	if err := c.ShouldBindJSON(&group); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	if group.DailyOperationID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La operación diaria es obligatoria"})
		return
	}

	var operation models.DailyOperation
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&operation, group.DailyOperationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Operación no encontrada"})
		return
	}

	group.ID = 0
	group.Vessel, group.Activity, group.Participants = nil, nil, nil

	if err := config.DB.Create(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear el grupo"})
		return
	}
	c.JSON(http.StatusCreated, group)
}

func UpdateOperationGroupHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	group, ok := findOperationGroup(c, id)
	if !ok {
		return
	}
	// La operación diaria de un grupo no se reasigna por esta vía.
	dailyOpID := group.DailyOperationID
	group.Vessel = nil
	if err := c.ShouldBindJSON(group); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	group.ID = id
	group.DailyOperationID = dailyOpID
	group.Vessel, group.Activity, group.Participants = nil, nil, nil

	if err := config.DB.Save(group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar el grupo"})
		return
	}
	c.JSON(http.StatusOK, group)
}

func DeleteOperationGroupHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	group, ok := findOperationGroup(c, id)
	if !ok {
		return
	}
	if err := config.DB.Delete(group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar el grupo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Grupo eliminado"})
}

// --- PARTICIPANTES ---

// groupCapacity resuelve el cupo efectivo de un grupo: su propio cupo, o la
// capacidad de la embarcación cuando el grupo no define uno. Cero en ambos
// significa sin límite.
func groupCapacity(group *models.OperationGroup) int {
	if group.Capacity > 0 {
		return group.Capacity
	}
	if group.Vessel != nil {
		return group.Vessel.Capacity
	}
	return 0
}

// ensureGroupCapacity verifica el cupo efectivo del grupo contra los
// participantes no cancelados. Escribe la respuesta de error y devuelve
// false cuando el cupo está completo o la verificación falla.
func ensureGroupCapacity(c *gin.Context, group *models.OperationGroup) bool {
	capacity := groupCapacity(group)
	if capacity == 0 {
		return true
	}
	var occupied int64
	if err := config.DB.Model(&models.OperationParticipant{}).
		Where("operation_group_id = ? AND status <> ?", group.ID, "CANCELLED").
		Count(&occupied).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo verificar el cupo"})
		return false
	}
	if occupied >= int64(capacity) {
		c.JSON(http.StatusConflict, gin.H{"error": "Cupo completo para el grupo"})
		return false
	}
	return true
}

func CreateOperationParticipantHandler(c *gin.Context) {
	var participant models.OperationParticipant
	if err := c.ShouldBindJSON(&participant); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	if participant.OperationGroupID == 0 || participant.PersonID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Grupo y persona son obligatorios"})
		return
	}

	group, ok := findOperationGroup(c, participant.OperationGroupID)
	if !ok {
		return
	}
	if !ensureGroupCapacity(c, group) {
		return
	}

	participant.ID = 0
	participant.Person, participant.Contract = nil, nil
	if participant.Status == "" {
		participant.Status = "CONFIRMED"
	}

	if err := config.DB.Create(&participant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo registrar el participante"})
		return
	}
	c.JSON(http.StatusCreated, participant)
}

func UpdateOperationParticipantHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var participant models.OperationParticipant
	if err := config.DB.First(&participant, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Participante no encontrado"})
		return
	}
	if _, ok := findOperationGroup(c, participant.OperationGroupID); !ok {
		return
	}

	previousGroupID := participant.OperationGroupID
	if err := c.ShouldBindJSON(&participant); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	participant.ID = id
	participant.Person, participant.Contract = nil, nil

	// Mover el participante de grupo exige que el destino pertenezca a la
	// misma compañía y tenga cupo disponible.
	if participant.OperationGroupID != previousGroupID {
		target, ok := findOperationGroup(c, participant.OperationGroupID)
		if !ok {
			return
		}
		if participant.Status != "CANCELLED" && !ensureGroupCapacity(c, target) {
			return
		}
	}

	if err := config.DB.Save(&participant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar el participante"})
		return
	}
	c.JSON(http.StatusOK, participant)
}

func DeleteOperationParticipantHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var participant models.OperationParticipant
	if err := config.DB.First(&participant, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Participante no encontrado"})
		return
	}
	if _, ok := findOperationGroup(c, participant.OperationGroupID); !ok {
		return
	}
	if err := config.DB.Delete(&participant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar el participante"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Participante eliminado"})
}

// --- MANIFIESTO ---

// ExportOperationManifestHandler genera el manifiesto de zarpe del día en
// formato xlsx: un renglón por participante con su grupo, embarcación y
// código de contrato.
func ExportOperationManifestHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var operation models.DailyOperation
	if err := config.DB.
		Preload("Marina").
		Preload("Groups").
		Preload("Groups.Vessel").
		Preload("Groups.Participants").
		Preload("Groups.Participants.Person").
		Preload("Groups.Participants.Contract").
		Where("company_id = ?", companyID(c)).First(&operation, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Operación no encontrada"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Manifiesto"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Grupo", "Embarcación", "Zarpe", "Participante", "Documento", "Estado", "Contrato"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	row := 2
	for _, group := range operation.Groups {
		vesselName := ""
		if group.Vessel != nil {
			vesselName = group.Vessel.Name
		}
		for _, p := range group.Participants {
			personName, document := "", ""
			if p.Person != nil {
				personName = p.Person.LastName + " " + p.Person.FirstName
				document = p.Person.IdentityNumber
			}
			contractCode := ""
			if p.Contract != nil {
				contractCode = p.Contract.Code
			}
			f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), group.Name)
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), vesselName)
			f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), group.DepartureTime)
			f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), personName)
			f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), document)
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), p.Status)
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), contractCode)
			row++
		}
	}

	fileName := fmt.Sprintf("manifiesto_%s.xlsx", operation.OperationDate.Format("20060102"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo generar el manifiesto"})
	}
}
