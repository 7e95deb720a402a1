package main

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/live"
)

// typewriterStream pushes hero typewriter frames as server-sent events until
// the client goes away.
func (s *server) typewriterStream(c *gin.Context) {
	ctx := c.Request.Context()
	frames := s.hub.Typewriter(ctx, s.portfolio.Personal.Roles, s.typewriterOptions())

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case f := <-frames:
			html, err := renderFragment(s.tmpl, "typewriter-frame", f)
			if err != nil {
				logRenderError("typewriter frame", err)
				return false
			}
			c.SSEvent("typewriter", html)
			return true
		}
	})
}

// cyclerStream pushes a project thumbnail's frames for this viewer. Hover
// signals arrive separately on the hover endpoint.
func (s *server) cyclerStream(c *gin.Context) {
	p, ok := s.projectOr404(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	frames, err := s.hub.Cycler(ctx, viewerID(c), p.Slug, p.Thumbnails(), s.cyclerOptions())
	if errors.Is(err, live.ErrStreamExists) {
		c.Status(http.StatusConflict)
		return
	}

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case f := <-frames:
			html, err := renderFragment(s.tmpl, "cycler-frame", cyclerView{Slug: p.Slug, Title: p.Title, Frame: f})
			if err != nil {
				logRenderError("cycler frame", err)
				return false
			}
			c.SSEvent("frame", html)
			return true
		}
	})
}

// hover receives pointer enter/leave for a project card.
func (s *server) hover(c *gin.Context) {
	active, err := strconv.ParseBool(c.PostForm("active"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "active must be true or false"})
		return
	}
	s.signal(c, s.hub.Hover(viewerID(c), c.Param("slug"), active))
}

// imageFailed receives a broken image report for a project card.
func (s *server) imageFailed(c *gin.Context) {
	i, err := strconv.Atoi(c.PostForm("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}
	s.signal(c, s.hub.Fail(viewerID(c), c.Param("slug"), i))
}

func (s *server) signal(c *gin.Context, err error) {
	switch {
	case errors.Is(err, live.ErrNoStream):
		c.JSON(http.StatusNotFound, gin.H{"error": "no open stream for this card"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.Status(http.StatusNoContent)
	}
}
