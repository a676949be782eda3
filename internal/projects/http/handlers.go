package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nordiccodeworks/portfolio-backend/internal/projects/domain"
)

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, bad := req.toDomain()
	if bad != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "validation failed", "fields": bad})
		return
	}

	created, err := h.svc.Create(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": created})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) list(c *gin.Context) {
	f, bad := filterFromQuery(c)
	if bad != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "validation failed", "fields": bad})
		return
	}

	items, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items, "count": len(items)})
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	patch, bad := req.toPatch()
	if len(bad) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "validation failed", "fields": bad})
		return
	}

	p, err := h.svc.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func respondError(c *gin.Context, err error) {
	if ve, ok := domain.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "validation failed", "fields": ve.Fields})
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal error"})
}

func filterFromQuery(c *gin.Context) (domain.Filter, map[string]string) {
	bad := map[string]string{}
	f := domain.Filter{
		Status:     domain.Status(c.Query("status")),
		Technology: c.Query("technology"),
	}

	if v := c.Query("started_after"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			bad["started_after"] = "expected YYYY-MM-DD"
		} else {
			f.StartedAfter = &t
		}
	}
	if v := c.Query("started_before"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			bad["started_before"] = "expected YYYY-MM-DD"
		} else {
			f.StartedBefore = &t
		}
	}
	if v := c.Query("featured"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			bad["featured"] = "expected true or false"
		} else {
			f.Featured = &b
		}
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			bad["limit"] = "expected a non-negative integer"
		} else {
			f.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			bad["offset"] = "expected a non-negative integer"
		} else {
			f.Offset = n
		}
	}

	if len(bad) > 0 {
		return f, bad
	}
	return f, nil
}
