package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/student-records/internal/api/dto"
	"github.com/spec-kit/student-records/internal/auth"
	"github.com/spec-kit/student-records/internal/service"
	apperrors "github.com/spec-kit/student-records/pkg/util"
)

// StudentsHandler serves student-facing record endpoints.
type StudentsHandler struct {
	records *service.RecordsService
}

// NewStudentsHandler constructs handler.
func NewStudentsHandler(recordsService *service.RecordsService) *StudentsHandler {
	return &StudentsHandler{records: recordsService}
}

// GetOwnRecord handles GET /university/:studentID. A student may only read
// their own record; the 403 is decided here from the attached principal, not
// by the gate.
func (h *StudentsHandler) GetOwnRecord(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated(apperrors.CodeNoToken, "no token")
	}

	studentID := c.Params("studentID")
	if principal.StudentID != studentID {
		return apperrors.NewForbidden("not authorized to view this record")
	}

	record, err := h.records.GetRecord(c.UserContext(), studentID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": recordResponse(record)})
}

func recordResponse(record *service.StudentRecord) dto.StudentRecordResponse {
	resp := dto.StudentRecordResponse{
		Student: dto.StudentSummary{
			ID:         record.Student.ID,
			Username:   record.Student.Username,
			Email:      record.Student.Email,
			RollNumber: record.Student.RollNumber,
			Field:      record.Student.Field,
		},
		Subjects: make([]dto.SubjectMarksEntry, 0, len(record.Subjects)),
	}
	for _, subject := range record.Subjects {
		resp.Subjects = append(resp.Subjects, dto.SubjectMarksEntry{
			SubjectID: subject.SubjectID,
			Subject:   subject.Name,
			Marks:     subject.Marks,
		})
	}
	return resp
}
