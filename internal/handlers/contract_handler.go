// oceanoscuba-admin/internal/handlers/contract_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"oceanoscuba-admin/config"
	"oceanoscuba-admin/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// --- Estructuras de entrada ---

type ContractCreateInput struct {
	TemplateID  uint            `json:"template_id"`
	Sku         string          `json:"sku"`
	Fields      json.RawMessage `json:"fields"`
	RelatedType string          `json:"related_type"`
	RelatedID   *uint           `json:"related_id"`
	ExpiresAt   *time.Time      `json:"expires_at"`
	Draft       bool            `json:"draft"`
}

type ContractSignInput struct {
	Fields map[string]interface{} `json:"fields"`
}

type ContractInvalidateInput struct {
	Reason string `json:"reason"`
}

var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// --- Auxiliares de campos ---

// coerceFields normaliza el cuerpo "fields" a un objeto JSON. Cualquier
// cosa que no sea un objeto (ausente, null, arreglo, escalar) se convierte
// en {}: indulgencia heredada del contrato de la API.
func coerceFields(raw json.RawMessage) datatypes.JSON {
	if len(raw) == 0 {
		return datatypes.JSON([]byte("{}"))
	}
	var obj map[string]interface{}
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return datatypes.JSON([]byte("{}"))
	}
	return datatypes.JSON(raw)
}

func decodeFields(data datatypes.JSON) map[string]interface{} {
	fields := map[string]interface{}{}
	if len(data) > 0 {
		_ = json.Unmarshal(data, &fields)
	}
	return fields
}

func encodeFields(fields map[string]interface{}) datatypes.JSON {
	data, _ := json.Marshal(fields)
	return datatypes.JSON(data)
}

func fieldString(fields map[string]interface{}, key string) string {
	if v, ok := fields[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// generateContractCode produce un consecutivo legible por compañía y año.
func generateContractCode(db *gorm.DB, companyID uint) string {
	year := time.Now().Year()
	var count int64
	db.Model(&models.Contract{}).Unscoped().
		Where("company_id = ? AND code LIKE ?", companyID, fmt.Sprintf("CT-%d-%%", year)).
		Count(&count)
	return fmt.Sprintf("CT-%d-%05d", year, count+1)
}

// renderContract sustituye los marcadores {{clave}} del snapshot con los
// valores del contrato. Las variables de tipo SIGNATURE se insertan como
// imagen; los marcadores sin valor quedan vacíos.
func renderContract(contract *models.Contract, variables []models.TemplateVariable) string {
	fields := decodeFields(contract.Fields)

	signatureKeys := map[string]bool{"signature": true}
	for _, v := range variables {
		if v.DataType == models.VariableTypeSignature {
			signatureKeys[v.Key] = true
		}
		if _, ok := fields[v.Key]; !ok && v.DefaultValue != "" {
			fields[v.Key] = v.DefaultValue
		}
	}

	return placeholderRe.ReplaceAllStringFunc(contract.HTMLSnapshot, func(match string) string {
		key := placeholderRe.FindStringSubmatch(match)[1]
		value := fieldString(fields, key)
		if value == "" {
			return ""
		}
		if signatureKeys[key] && strings.HasPrefix(value, "data:image/") {
			return fmt.Sprintf(`<img src="%s" alt="firma" class="contract-signature"/>`, value)
		}
		return value
	})
}

func statusCacheKey(token string) string {
	return "contract:status:" + token
}

// InvalidateStatusCache borra el estado cacheado del contrato. Toda
// transición de estado debe pasar por aquí para que la vía pública no sirva
// un estado viejo durante el TTL.
func InvalidateStatusCache(token string) {
	if config.RDB != nil && token != "" {
		config.RDB.Del(config.Ctx, statusCacheKey(token))
	}
}

// --- CRUD ---

func ListContractsHandler(c *gin.Context) {
	var contracts []models.Contract
	var totalRows int64

	baseQuery := config.DB.Model(&models.Contract{}).Where("company_id = ?", companyID(c))
	if status := c.Query("status"); status != "" {
		baseQuery = baseQuery.Where("status = ?", status)
	}
	if relatedType := c.Query("related_type"); relatedType != "" {
		baseQuery = baseQuery.Where("related_type = ?", relatedType)
		if relatedID := c.Query("related_id"); relatedID != "" {
			baseQuery = baseQuery.Where("related_id = ?", relatedID)
		}
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		baseQuery = baseQuery.Where(
			"LOWER(code) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(signed_by_name) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	if err := baseQuery.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron contar los contratos"})
		return
	}
	if err := baseQuery.Scopes(Paginate(c)).
		Omit("html_snapshot").
		Order("created_at DESC").Find(&contracts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de contratos"})
		return
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, contracts, totalRows))
}

func GetContractHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var contract models.Contract
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&contract, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contrato no encontrado"})
		return
	}
	c.JSON(http.StatusOK, contract)
}

// CreateContractHandler emite un contrato a partir de una plantilla. El HTML
// de la plantilla se congela aquí: ediciones posteriores de la plantilla no
// tocan el contrato emitido.
func CreateContractHandler(c *gin.Context) {
	var input ContractCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	if input.TemplateID == 0 || input.Sku == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "template_id y sku son obligatorios"})
		return
	}

	var template models.ContractTemplate
	if err := config.DB.Preload("Variables").
		Where("company_id = ?", companyID(c)).First(&template, input.TemplateID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plantilla no encontrada"})
		return
	}
	if !template.IsActive {
		c.JSON(http.StatusConflict, gin.H{"error": "La plantilla está desactivada"})
		return
	}

	status := models.ContractStatusPendingSign
	if input.Draft {
		status = models.ContractStatusDraft
	}

	contract := models.Contract{
		CompanyID:    companyID(c),
		TemplateID:   template.ID,
		Sku:          input.Sku,
		Code:         generateContractCode(config.DB, companyID(c)),
		AccessToken:  uuid.NewString(),
		Status:       status,
		HTMLSnapshot: template.HTMLContent,
		RelatedType:  input.RelatedType,
		RelatedID:    input.RelatedID,
		Fields:       coerceFields(input.Fields),
		ExpiresAt:    input.ExpiresAt,
	}

	if err := config.DB.Create(&contract).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo emitir el contrato"})
		return
	}
	c.JSON(http.StatusCreated, contract)
}

// UpdateContractHandler permite ajustar campos y vencimiento mientras el
// contrato no esté firmado. Los campos entrantes se fusionan sobre los
// existentes.
func UpdateContractHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var contract models.Contract
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&contract, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contrato no encontrado"})
		return
	}
	if !contract.Signable() {
		c.JSON(http.StatusConflict, gin.H{"error": "El contrato ya no admite cambios", "details": contract.Status})
		return
	}

	var input struct {
		Fields    map[string]interface{} `json:"fields"`
		ExpiresAt *time.Time             `json:"expires_at"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}

	if input.Fields != nil {
		fields := decodeFields(contract.Fields)
		for k, v := range input.Fields {
			fields[k] = v
		}
		contract.Fields = encodeFields(fields)
	}
	if input.ExpiresAt != nil {
		contract.ExpiresAt = input.ExpiresAt
	}

	if err := config.DB.Save(&contract).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar el contrato"})
		return
	}
	c.JSON(http.StatusOK, contract)
}

func DeleteContractHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var contract models.Contract
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&contract, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contrato no encontrado"})
		return
	}
	if err := config.DB.Delete(&contract).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar el contrato"})
		return
	}
	InvalidateStatusCache(contract.AccessToken)
	c.JSON(http.StatusOK, gin.H{"message": "Contrato eliminado"})
}

// --- Firma ---

// applySignature ejecuta la transición a SIGNED: valida el firmante, fusiona
// los campos, verifica las variables obligatorias de la plantilla y publica
// el evento. Devuelve el código HTTP y el mensaje de error si la firma no
// procede.
func applySignature(contract *models.Contract, input *ContractSignInput) (int, gin.H) {
	if input.Fields == nil {
		return http.StatusBadRequest, gin.H{"error": "fields es obligatorio"}
	}
	signerName := fieldString(input.Fields, "signer_name")
	signerEmail := fieldString(input.Fields, "email")
	if signerName == "" || signerEmail == "" {
		return http.StatusBadRequest, gin.H{"error": "signer_name y email son obligatorios"}
	}
	if !contract.Signable() {
		return http.StatusConflict, gin.H{"error": "El contrato no admite firma", "details": contract.Status}
	}
	if contract.ExpiresAt != nil && contract.ExpiresAt.Before(time.Now()) {
		return http.StatusConflict, gin.H{"error": "El contrato está vencido"}
	}

	fields := decodeFields(contract.Fields)
	for k, v := range input.Fields {
		fields[k] = v
	}

	var variables []models.TemplateVariable
	config.DB.Where("template_id = ?", contract.TemplateID).Find(&variables)
	var missing []string
	for _, v := range variables {
		if !v.Required {
			continue
		}
		if value, ok := fields[v.Key]; !ok || value == nil || value == "" {
			if v.DefaultValue != "" {
				fields[v.Key] = v.DefaultValue
				continue
			}
			missing = append(missing, v.Key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return http.StatusBadRequest, gin.H{
			"error":   "Faltan variables obligatorias de la plantilla",
			"details": strings.Join(missing, ", "),
		}
	}

	now := time.Now()
	contract.Fields = encodeFields(fields)
	contract.SignedByName = signerName
	contract.SignedByEmail = signerEmail
	contract.SignedAt = &now
	contract.Status = models.ContractStatusSigned

	if err := config.DB.Save(contract).Error; err != nil {
		return http.StatusInternalServerError, gin.H{"error": "No se pudo guardar la firma"}
	}

	InvalidateStatusCache(contract.AccessToken)
	GlobalHub.Broadcast(contract.CompanyID, ContractEvent{
		Type:       "contract.signed",
		ContractID: contract.ID,
		Code:       contract.Code,
		Status:     contract.Status,
		OccurredAt: now,
	})
	return 0, nil
}

func SignContractHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var contract models.Contract
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&contract, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contrato no encontrado"})
		return
	}

	var input ContractSignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	if code, body := applySignature(&contract, &input); code != 0 {
		c.JSON(code, body)
		return
	}
	c.JSON(http.StatusOK, contract)
}

// PublicSignContractHandler es la vía de firma sin autenticación: el token
// opaco del contrato es la única credencial.
func PublicSignContractHandler(c *gin.Context) {
	var contract models.Contract
	if err := config.DB.Where("access_token = ?", c.Param("token")).First(&contract).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contrato no encontrado"})
		return
	}
	// Por el enlace público solo se firma lo que está pendiente; un
	// borrador aún no fue enviado a nadie.
	if contract.Status == models.ContractStatusDraft {
		c.JSON(http.StatusConflict, gin.H{"error": "El contrato no admite firma", "details": contract.Status})
		return
	}

	var input ContractSignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos inválidos", "details": err.Error()})
		return
	}
	if code, body := applySignature(&contract, &input); code != 0 {
		c.JSON(code, body)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"code":      contract.Code,
		"status":    contract.Status,
		"signed_at": contract.SignedAt,
	}})
}

// InvalidateContractHandler saca el contrato de circulación. Un contrato
// firmado es inmutable; uno vencido ya es terminal.
func InvalidateContractHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var contract models.Contract
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&contract, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contrato no encontrado"})
		return
	}
	if !contract.Signable() {
		c.JSON(http.StatusConflict, gin.H{"error": "El contrato no se puede invalidar", "details": contract.Status})
		return
	}

	var input ContractInvalidateInput
	_ = c.ShouldBindJSON(&input)

	if input.Reason != "" {
		fields := decodeFields(contract.Fields)
		fields["cancellation_reason"] = input.Reason
		contract.Fields = encodeFields(fields)
	}
	contract.Status = models.ContractStatusCancelled

	if err := config.DB.Save(&contract).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo invalidar el contrato"})
		return
	}

	InvalidateStatusCache(contract.AccessToken)
	GlobalHub.Broadcast(contract.CompanyID, ContractEvent{
		Type:       "contract.cancelled",
		ContractID: contract.ID,
		Code:       contract.Code,
		Status:     contract.Status,
		OccurredAt: time.Now(),
	})
	c.JSON(http.StatusOK, contract)
}

// --- Render y descarga ---

// GenerateContractDocumentHandler materializa el documento del contrato en
// disco (snapshot + campos) y registra la ruta en pdf_path.
func GenerateContractDocumentHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var contract models.Contract
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&contract, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contrato no encontrado"})
		return
	}

	var variables []models.TemplateVariable
	config.DB.Where("template_id = ?", contract.TemplateID).Find(&variables)
	rendered := renderContract(&contract, variables)

	outDir := filepath.Join(config.UploadsDir(), "contracts")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo preparar el directorio de salida"})
		return
	}
	outPath := filepath.Join(outDir, contract.Code+".html")
	if err := os.WriteFile(outPath, []byte(rendered), 0o644); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo escribir el documento"})
		return
	}

	contract.PDFPath = outPath
	if err := config.DB.Save(&contract).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo registrar el documento"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"pdf_path": contract.PDFPath}})
}

func DownloadContractHandler(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var contract models.Contract
	if err := config.DB.Where("company_id = ?", companyID(c)).First(&contract, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contrato no encontrado"})
		return
	}

	if contract.PDFPath != "" {
		if _, err := os.Stat(contract.PDFPath); err == nil {
			c.FileAttachment(contract.PDFPath, contract.Code+".html")
			return
		}
	}

	// Sin documento en disco se renderiza al vuelo.
	var variables []models.TemplateVariable
	config.DB.Where("template_id = ?", contract.TemplateID).Find(&variables)
	rendered := renderContract(&contract, variables)

	c.Header("Content-Disposition", "attachment; filename="+contract.Code+".html")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(rendered))
}

// --- Vía pública de lectura ---

func PublicGetContractHandler(c *gin.Context) {
	var contract models.Contract
	if err := config.DB.Where("access_token = ?", c.Param("token")).First(&contract).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contrato no encontrado"})
		return
	}

	var variables []models.TemplateVariable
	config.DB.Where("template_id = ?", contract.TemplateID).Order("sort_order").Find(&variables)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
		"code":          contract.Code,
		"sku":           contract.Sku,
		"status":        contract.Status,
		"expires_at":    contract.ExpiresAt,
		"rendered_html": renderContract(&contract, variables),
		"variables":     variables,
	}})
}

// PublicContractStatusHandler responde solo el estado, con caché corto en
// Redis: la página de firma lo consulta en bucle.
func PublicContractStatusHandler(c *gin.Context) {
	token := c.Param("token")

	if config.RDB != nil {
		if cached, err := config.RDB.Get(config.Ctx, statusCacheKey(token)).Result(); err == nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"status": cached}})
			return
		}
	}

	var contract models.Contract
	if err := config.DB.Select("id", "status").Where("access_token = ?", token).First(&contract).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Contrato no encontrado"})
		return
	}

	if config.RDB != nil {
		config.RDB.Set(config.Ctx, statusCacheKey(token), contract.Status, 30*time.Second)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"status": contract.Status}})
}

// --- Exportación ---

func ExportContractsHandler(c *gin.Context) {
	var contracts []models.Contract
	if err := config.DB.Omit("html_snapshot").
		Where("company_id = ?", companyID(c)).
		Order("created_at DESC").Find(&contracts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo obtener la lista de contratos"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Contratos"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Código", "SKU", "Estado", "Firmante", "Correo", "Firmado", "Vence"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i, ct := range contracts {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), ct.Code)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), ct.Sku)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), ct.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), ct.SignedByName)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), ct.SignedByEmail)
		if ct.SignedAt != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), ct.SignedAt.Format("02/01/2006 15:04"))
		}
		if ct.ExpiresAt != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), ct.ExpiresAt.Format("02/01/2006"))
		}
	}

	fileName := fmt.Sprintf("contratos_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo generar el archivo"})
	}
}
