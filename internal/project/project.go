package project

import (
	"time"

	projectDatamodel "github.com/frahmantamala/claim-management/internal/core/datamodel/project"
)

const (
	StatusActive   = "active"
	StatusOnHold   = "on_hold"
	StatusFinished = "finished"
)

type Project struct {
	ID            int64     `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Budget        int64     `json:"budget"`
	ProjectStatus string    `json:"project_status"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusOnHold, StatusFinished:
		return true
	}
	return false
}

func ToDataModel(p *Project) *projectDatamodel.Project {
	return &projectDatamodel.Project{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Budget:        p.Budget,
		ProjectStatus: p.ProjectStatus,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func FromDataModel(p *projectDatamodel.Project) *Project {
	return &Project{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Budget:        p.Budget,
		ProjectStatus: p.ProjectStatus,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func FromDataModelSlice(projects []*projectDatamodel.Project) []*Project {
	result := make([]*Project, len(projects))
	for i, p := range projects {
		result[i] = FromDataModel(p)
	}
	return result
}
