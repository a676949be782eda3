package http

import (
	"time"

	"github.com/nordiccodeworks/portfolio-backend/internal/projects/domain"
	"github.com/nordiccodeworks/portfolio-backend/internal/projects/service"
)

// Handler bundles the dependencies for project HTTP endpoints.
type Handler struct {
	svc *service.ProjectService
}

func New(svc *service.ProjectService) *Handler {
	return &Handler{svc: svc}
}

const dateLayout = "2006-01-02"

type createReq struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Technologies   []string `json:"technologies"`
	Status         string   `json:"status"`
	StartDate      string   `json:"start_date"`
	CompletionDate *string  `json:"completion_date"`
	GithubLink     *string  `json:"github_link"`
	LiveLink       *string  `json:"live_link"`
	ImageURL       *string  `json:"image_url"`
	Featured       bool     `json:"featured"`
	DisplayOrder   int      `json:"display_order"`
}

type updateReq struct {
	Title          *string   `json:"title"`
	Description    *string   `json:"description"`
	Technologies   *[]string `json:"technologies"`
	Status         *string   `json:"status"`
	StartDate      *string   `json:"start_date"`
	CompletionDate *string   `json:"completion_date"`
	GithubLink     *string   `json:"github_link"`
	LiveLink       *string   `json:"live_link"`
	ImageURL       *string   `json:"image_url"`
	Featured       *bool     `json:"featured"`
	DisplayOrder   *int      `json:"display_order"`
}

func (r createReq) toDomain() (*domain.Project, map[string]string) {
	bad := map[string]string{}

	start, err := time.Parse(dateLayout, r.StartDate)
	if err != nil {
		bad["start_date"] = "expected YYYY-MM-DD"
	}

	var completion *time.Time
	if r.CompletionDate != nil && *r.CompletionDate != "" {
		t, err := time.Parse(dateLayout, *r.CompletionDate)
		if err != nil {
			bad["completion_date"] = "expected YYYY-MM-DD"
		} else {
			completion = &t
		}
	}

	if len(bad) > 0 {
		return nil, bad
	}

	return &domain.Project{
		Title:          r.Title,
		Description:    r.Description,
		Technologies:   r.Technologies,
		Status:         domain.Status(r.Status),
		StartDate:      start,
		CompletionDate: completion,
		GithubLink:     r.GithubLink,
		LiveLink:       r.LiveLink,
		ImageURL:       r.ImageURL,
		Featured:       r.Featured,
		DisplayOrder:   r.DisplayOrder,
	}, nil
}

func (r updateReq) toPatch() (domain.Patch, map[string]string) {
	bad := map[string]string{}
	patch := domain.Patch{
		Title:        r.Title,
		Description:  r.Description,
		Technologies: r.Technologies,
		GithubLink:   r.GithubLink,
		LiveLink:     r.LiveLink,
		ImageURL:     r.ImageURL,
		Featured:     r.Featured,
		DisplayOrder: r.DisplayOrder,
	}

	if r.Status != nil {
		s := domain.Status(*r.Status)
		patch.Status = &s
	}
	if r.StartDate != nil {
		t, err := time.Parse(dateLayout, *r.StartDate)
		if err != nil {
			bad["start_date"] = "expected YYYY-MM-DD"
		} else {
			patch.StartDate = &t
		}
	}
	if r.CompletionDate != nil {
		t, err := time.Parse(dateLayout, *r.CompletionDate)
		if err != nil {
			bad["completion_date"] = "expected YYYY-MM-DD"
		} else {
			patch.CompletionDate = &t
		}
	}

	return patch, bad
}
