package service

import (
	"context"
	"net/url"
	"strings"

	"github.com/nordiccodeworks/portfolio-backend/internal/projects/cache"
	"github.com/nordiccodeworks/portfolio-backend/internal/projects/domain"
	"github.com/nordiccodeworks/portfolio-backend/internal/projects/repository"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ProjectService handles project business logic: input validation, the
// read-through cache in front of the repository, and cache invalidation on
// every mutation.
type ProjectService struct {
	repo  *repository.ProjectRepository
	cache *cache.ProjectCache
}

// NewProjectService creates a new project service.
func NewProjectService(repo *repository.ProjectRepository, cache *cache.ProjectCache) *ProjectService {
	return &ProjectService{repo: repo, cache: cache}
}

// Create validates and persists a new project.
func (s *ProjectService) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	if p.Status == "" {
		p.Status = domain.StatusPlanned
	}
	// A nil slice would reach the store as SQL NULL, which the schema
	// rejects; an omitted technologies field means "none".
	if p.Technologies == nil {
		p.Technologies = []string{}
	}

	if err := validateProject(p); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return created, nil
}

// Get returns a project by id, serving from cache when possible.
func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	if p, ok := s.cache.GetProject(ctx, id); ok {
		return p, nil
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetProject(ctx, p)
	return p, nil
}

// List returns projects matching the filter, serving from cache when possible.
func (s *ProjectService) List(ctx context.Context, f domain.Filter) ([]domain.Project, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.NewValidationError(map[string]string{"status": "unknown status"})
	}
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	if items, ok := s.cache.GetList(ctx, f); ok {
		return items, nil
	}
	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	s.cache.SetList(ctx, f, items)
	return items, nil
}

// Update applies a partial update after validating the resulting record.
func (s *ProjectService) Update(ctx context.Context, id string, patch domain.Patch) (*domain.Project, error) {
	if patch.Empty() {
		return nil, domain.NewValidationError(map[string]string{"body": "no fields to update"})
	}

	// The date invariant spans fields the patch may only partially touch,
	// so validate against the merged record.
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	merged := *current
	applyPatch(&merged, patch)
	if err := validateProject(&merged); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx)
	return updated, nil
}

// Delete removes a project and evicts cached results.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func applyPatch(p *domain.Project, patch domain.Patch) {
	if patch.Title != nil {
		p.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Technologies != nil {
		p.Technologies = *patch.Technologies
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.StartDate != nil {
		p.StartDate = *patch.StartDate
	}
	if patch.CompletionDate != nil {
		p.CompletionDate = patch.CompletionDate
	}
	if patch.GithubLink != nil {
		p.GithubLink = patch.GithubLink
	}
	if patch.LiveLink != nil {
		p.LiveLink = patch.LiveLink
	}
	if patch.ImageURL != nil {
		p.ImageURL = patch.ImageURL
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
	if patch.DisplayOrder != nil {
		p.DisplayOrder = *patch.DisplayOrder
	}
}

func validateProject(p *domain.Project) error {
	fields := map[string]string{}

	if p.Title == "" {
		fields["title"] = "required"
	}
	if p.Description == "" {
		fields["description"] = "required"
	}
	if !p.Status.Valid() {
		fields["status"] = "unknown status"
	}
	if p.StartDate.IsZero() {
		fields["start_date"] = "required"
	}
	if p.CompletionDate != nil && !p.StartDate.IsZero() && p.CompletionDate.Before(p.StartDate) {
		fields["completion_date"] = "must not precede start_date"
	}
	if p.GithubLink != nil && !validURL(*p.GithubLink) {
		fields["github_link"] = "must be a valid http(s) URL"
	}
	if p.LiveLink != nil && !validURL(*p.LiveLink) {
		fields["live_link"] = "must be a valid http(s) URL"
	}
	if p.ImageURL != nil && !validURL(*p.ImageURL) {
		fields["image_url"] = "must be a valid http(s) URL"
	}

	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
