package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/student-records/internal/api/dto"
	"github.com/spec-kit/student-records/internal/service"
	apperrors "github.com/spec-kit/student-records/pkg/util"
)

// AdminHandler serves admin-only record endpoints. Routes are mounted behind
// the gate plus the RequireAdmin guard.
type AdminHandler struct {
	records *service.RecordsService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(recordsService *service.RecordsService) *AdminHandler {
	return &AdminHandler{records: recordsService}
}

// ListStudents handles GET /university/.
func (h *AdminHandler) ListStudents(c *fiber.Ctx) error {
	records, err := h.records.ListRecords(c.UserContext())
	if err != nil {
		return err
	}

	items := make([]dto.StudentRecordResponse, 0, len(records))
	for i := range records {
		items = append(items, recordResponse(&records[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetStudent handles GET /university/admin/:id.
func (h *AdminHandler) GetStudent(c *fiber.Ctx) error {
	record, err := h.records.GetRecord(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": recordResponse(record)})
}

// UpdateStudent handles PATCH /university/admin/:id.
func (h *AdminHandler) UpdateStudent(c *fiber.Ctx) error {
	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	student, err := h.records.UpdateStudent(c.UserContext(), c.Params("id"), service.StudentUpdateInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.StudentSummary{
			ID:         student.ID,
			Username:   student.Username,
			Email:      student.Email,
			RollNumber: student.RollNumber,
			Field:      student.Field,
		},
	})
}

// UpdateMark handles PATCH /university/admin/marks/:studentID/:subjectID.
func (h *AdminHandler) UpdateMark(c *fiber.Ctx) error {
	var req dto.UpdateMarkRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Marks == nil {
		return apperrors.NewValidationError("marks field is required", nil)
	}

	mark, err := h.records.SetSubjectMarks(c.UserContext(), c.Params("studentID"), c.Params("subjectID"), *req.Marks)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"subjectId": mark.SubjectID,
			"marks":     mark.Marks,
		},
	})
}

// BulkUpdateMarks handles PATCH /university/admin/marks/:studentID.
func (h *AdminHandler) BulkUpdateMarks(c *fiber.Ctx) error {
	var req dto.BulkMarksRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(req.Subjects) == 0 {
		return apperrors.NewValidationError("subjects array is required", nil)
	}

	updates := make([]service.MarkUpdate, 0, len(req.Subjects))
	for _, entry := range req.Subjects {
		updates = append(updates, service.MarkUpdate{SubjectID: entry.SubjectID, Marks: entry.Marks})
	}

	results, err := h.records.BulkSetMarks(c.UserContext(), c.Params("studentID"), updates)
	if err != nil {
		return err
	}

	items := make([]dto.BulkMarkResult, 0, len(results))
	for _, result := range results {
		items = append(items, dto.BulkMarkResult{
			SubjectID: result.SubjectID,
			Marks:     result.Marks,
			Updated:   result.Updated,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
