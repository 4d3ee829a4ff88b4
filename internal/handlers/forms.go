package handlers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/clubworks/clubhub/internal/forms"
	"github.com/clubworks/clubhub/internal/models"
	"github.com/clubworks/clubhub/internal/services"
	"github.com/clubworks/clubhub/internal/storage"
	"github.com/clubworks/clubhub/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// FormHandler handles form definition and response routes
type FormHandler struct {
	DB    *gorm.DB
	Store storage.Store
}

const maxFormUploadBytes = 10 * 1024 * 1024

// formView is a definition plus its normalized schema, the shape clients
// render from.
type formView struct {
	ID          string       `json:"id"`
	ClubName    string       `json:"clubName"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Schema      forms.Schema `json:"schema"`
	Settings    interface{}  `json:"settings"`
	CreatedAt   string       `json:"createdAt"`
	UpdatedAt   string       `json:"updatedAt"`
}

func newFormView(form *models.FormDefinition) formView {
	var settings interface{}
	if len(form.Settings) > 0 {
		_ = json.Unmarshal(form.Settings, &settings)
	}
	return formView{
		ID:          form.ID,
		ClubName:    form.ClubName,
		Title:       form.Title,
		Description: form.Description,
		Schema:      forms.Normalize(form.Fields),
		Settings:    settings,
		CreatedAt:   form.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   form.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
}

// Save handles POST /api/forms
// @Summary Create or update a form
// @Description Create a form, or update it when an id is supplied
// @Tags Forms
// @Accept json
// @Produce json
// @Param body body services.FormInput true "Form definition"
// @Success 200 {object} models.FormDefinition
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Router /forms [post]
func (h *FormHandler) Save(c *fiber.Ctx) error {
	club, err := clubFromCtx(c)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "forms.save")
	}

	var input services.FormInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "portal.validation.input")
	}
	if input.Title == "" {
		return utils.ErrorResponse(c, "Title is required", fiber.StatusBadRequest, "portal.validation.input")
	}

	form, err := services.SaveForm(h.DB, club, &input)
	if err != nil {
		return serviceErrorResponse(c, err, "forms.save", "")
	}
	return utils.SuccessResponse(c, form, fiber.StatusOK)
}

// List handles GET /api/forms
// @Summary List the club's forms
// @Tags Forms
// @Produce json
// @Success 200 {array} models.FormDefinition
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /forms [get]
func (h *FormHandler) List(c *fiber.Ctx) error {
	club, err := clubFromCtx(c)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "forms.list")
	}

	formsList, err := services.ListForms(h.DB, club.ID)
	if err != nil {
		return serviceErrorResponse(c, err, "forms.list", "")
	}
	return utils.SuccessResponse(c, formsList, fiber.StatusOK)
}

// Get handles GET /api/forms/:formId
// @Summary Get one of the club's forms with its normalized schema
// @Tags Forms
// @Produce json
// @Param formId path string true "Form id"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /forms/{formId} [get]
func (h *FormHandler) Get(c *fiber.Ctx) error {
	club, err := clubFromCtx(c)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "forms.get")
	}
	formID := c.Params("formId")

	form, err := services.GetForm(h.DB, club, formID)
	if err != nil {
		return serviceErrorResponse(c, err, "forms.get", fmt.Sprintf("Form '%s' not found", formID))
	}
	return utils.SuccessResponse(c, newFormView(form), fiber.StatusOK)
}

// GetPublic handles GET /api/forms/public/:formId
// @Summary Get any form's normalized schema for the public submission page
// @Tags Forms
// @Produce json
// @Param formId path string true "Form id"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /forms/public/{formId} [get]
func (h *FormHandler) GetPublic(c *fiber.Ctx) error {
	formID := c.Params("formId")

	form, err := services.GetFormByID(h.DB, formID)
	if err != nil {
		return serviceErrorResponse(c, err, "forms.public", fmt.Sprintf("Form '%s' not found", formID))
	}
	return utils.SuccessResponse(c, newFormView(form), fiber.StatusOK)
}

// Submit handles POST /submit-form/:formId, the public submission endpoint.
// The body is multipart so file questions can ride along with plain values.
// @Summary Submit a form response
// @Tags Forms
// @Accept mpfd
// @Produce json
// @Param formId path string true "Form id"
// @Success 200 {object} models.FormResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /submit-form/{formId} [post]
func (h *FormHandler) Submit(c *fiber.Ctx) error {
	formID := c.Params("formId")

	// Reject unknown forms before touching blob storage, so a bad link
	// cannot be used to park files. SubmitResponse re-checks under the
	// same id when it writes the row.
	if _, err := services.GetFormByID(h.DB, formID); err != nil {
		return serviceErrorResponse(c, err, "forms.submit", fmt.Sprintf("Form '%s' not found", formID))
	}

	mf, err := c.MultipartForm()
	if err != nil {
		return utils.ErrorResponse(c, "Expected multipart form data", fiber.StatusBadRequest, "portal.validation.input")
	}

	data := make(map[string]interface{}, len(mf.Value)+len(mf.File))

	// Plain values first. A repeated field (checkbox groups) stays a list,
	// a single value collapses to a scalar.
	for field, values := range mf.Value {
		if len(values) == 1 {
			data[field] = values[0]
		} else {
			data[field] = values
		}
	}

	// File fields overwrite any plain value posted under the same name.
	for field, headers := range mf.File {
		metas := make([]map[string]interface{}, 0, len(headers))
		for _, fh := range headers {
			if fh.Size > maxFormUploadBytes {
				return utils.ErrorResponse(c, fmt.Sprintf("File '%s' exceeds the 10MB limit", fh.Filename), fiber.StatusBadRequest, "portal.validation.upload")
			}
			meta, err := h.storeUpload(formID, field, fh)
			if err != nil {
				return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "forms.submit")
			}
			metas = append(metas, meta)
		}
		if len(metas) == 1 {
			data[field] = metas[0]
		} else {
			data[field] = metas
		}
	}

	response, err := services.SubmitResponse(h.DB, formID, data)
	if err != nil {
		return serviceErrorResponse(c, err, "forms.submit", fmt.Sprintf("Form '%s' not found", formID))
	}
	return utils.SuccessResponse(c, response, fiber.StatusOK)
}

// storeUpload writes one submitted file to blob storage and returns its
// metadata record.
func (h *FormHandler) storeUpload(formID, field string, fh *multipart.FileHeader) (map[string]interface{}, error) {
	data, err := readMultipartFile(fh)
	if err != nil {
		return nil, err
	}

	token, err := services.RandomToken(services.ShortIDLength)
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("%s_%s%s", field, token, filepath.Ext(fh.Filename))
	contentType := fh.Header.Get("Content-Type")

	url, err := h.Store.Upload(fmt.Sprintf("form-uploads/%s/%s", formID, name), data, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	return map[string]interface{}{
		"filename":     name,
		"originalName": fh.Filename,
		"size":         fh.Size,
		"mimeType":     contentType,
		"url":          url,
	}, nil
}

// Responses handles GET /api/forms/:formId/responses
// @Summary List a form's responses with the normalized schema
// @Tags Forms
// @Produce json
// @Param formId path string true "Form id"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /forms/{formId}/responses [get]
func (h *FormHandler) Responses(c *fiber.Ctx) error {
	club, err := clubFromCtx(c)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "forms.responses")
	}
	formID := c.Params("formId")

	form, responses, err := services.ListResponses(h.DB, club, formID)
	if err != nil {
		return serviceErrorResponse(c, err, "forms.responses", fmt.Sprintf("Form '%s' not found", formID))
	}

	out := make([]map[string]interface{}, 0, len(responses))
	for _, r := range responses {
		var values map[string]interface{}
		_ = json.Unmarshal(r.Data, &values)
		out = append(out, map[string]interface{}{
			"id":          r.ID,
			"submittedAt": r.SubmittedAt,
			"data":        values,
		})
	}

	return utils.SuccessResponse(c, fiber.Map{
		"form":      newFormView(form),
		"responses": out,
	}, fiber.StatusOK)
}

// DeleteResponse handles DELETE /api/forms/:formId/responses/:responseId
// @Summary Delete one response
// @Tags Forms
// @Produce json
// @Param formId path string true "Form id"
// @Param responseId path string true "Response id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /forms/{formId}/responses/{responseId} [delete]
func (h *FormHandler) DeleteResponse(c *fiber.Ctx) error {
	club, err := clubFromCtx(c)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "forms.deleteResponse")
	}
	formID := c.Params("formId")

	if err := services.DeleteResponse(h.DB, club, formID, c.Params("responseId")); err != nil {
		return serviceErrorResponse(c, err, "forms.deleteResponse", fmt.Sprintf("Form '%s' not found", formID))
	}
	return utils.MutationSuccessResponse(c, "Response deleted")
}

// Delete handles DELETE /api/forms/:formId
// @Summary Delete a form and all of its responses
// @Tags Forms
// @Produce json
// @Param formId path string true "Form id"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /forms/{formId} [delete]
func (h *FormHandler) Delete(c *fiber.Ctx) error {
	club, err := clubFromCtx(c)
	if err != nil {
		return utils.ForbiddenResponse(c, err.Error(), "forms.delete")
	}
	formID := c.Params("formId")

	if err := services.DeleteForm(h.DB, club, formID); err != nil {
		return serviceErrorResponse(c, err, "forms.delete", fmt.Sprintf("Form '%s' not found", formID))
	}
	return utils.MutationSuccessResponse(c, "Form deleted")
}
