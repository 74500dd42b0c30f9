package claim

import (
	"bytes"
	"fmt"
	"time"

	"github.com/frahmantamala/claim-management/internal"
	"github.com/frahmantamala/claim-management/internal/auth"
	"github.com/xuri/excelize/v2"
)

// ExportPaidClaims renders every claim paid within the given month as an xlsx
// workbook for the finance team.
func (s *Service) ExportPaidClaims(actor *auth.User, month time.Time) (*bytes.Buffer, string, error) {
	if !actor.CanPayClaims() {
		return nil, "", internal.ErrNotAuthorized
	}

	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	claims, err := s.repo.PaidBetween(from, to)
	if err != nil {
		s.logger.Error("failed to load paid claims for export", "error", err,
			"from", from, "to", to)
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Paid Claims"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Claim ID", "Staff", "Project", "Working Hours", "Amount", "Remark", "Paid At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	userNames := map[int64]string{}
	projectNames := map[int64]string{}

	for row, c := range claims {
		staffName, ok := userNames[c.UserID]
		if !ok {
			if u, err := s.users.GetByID(c.UserID); err == nil {
				staffName = u.Name
			}
			userNames[c.UserID] = staffName
		}
		projectName, ok := projectNames[c.ProjectID]
		if !ok {
			if p, err := s.projects.GetByID(c.ProjectID); err == nil {
				projectName = p.Name
			}
			projectNames[c.ProjectID] = projectName
		}

		values := []interface{}{
			c.ID,
			staffName,
			projectName,
			c.TotalWorkingHours,
			c.TotalClaimAmount,
			c.Remark,
			c.UpdatedAt.Format("2006-01-02"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("failed to write paid claims workbook", "error", err)
		return nil, "", internal.NewInternalError("failed to generate export", err)
	}

	filename := fmt.Sprintf("paid-claims-%s.xlsx", from.Format("2006-01"))
	s.logger.Info("paid claims exported", "month", from.Format("2006-01"), "rows", len(claims))
	return buf, filename, nil
}
