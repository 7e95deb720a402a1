package main

import (
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/folio/internal/config"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/live"
	"github.com/Zachkp/folio/internal/store"
	"github.com/Zachkp/folio/internal/widget"
)

const (
	viewerCookie = "folio_viewer"
	themeCookie  = "theme"
)

type server struct {
	cfg       config.Config
	portfolio *content.Portfolio
	store     *store.Store
	hub       *live.Hub
	mailer    mailer
	tmpl      *template.Template
	admin     *adminAuth
	now       func() time.Time
}

func newServer(cfg config.Config, p *content.Portfolio, st *store.Store, hub *live.Hub, m mailer) (*server, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	return &server{
		cfg:       cfg,
		portfolio: p,
		store:     st,
		hub:       hub,
		mailer:    m,
		tmpl:      tmpl,
		admin:     newAdminAuth(cfg.Admin),
		now:       time.Now,
	}, nil
}

func (s *server) routes() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(s.tmpl)

	r.Static("/images", "./images")
	r.Static("/static", "./static")

	r.Use(s.visitorTrackingMiddleware())
	r.Use(viewerMiddleware())

	r.GET("/", s.home)
	r.GET("/projects", s.projectGrid)
	r.GET("/projects/:slug/gallery", s.gallery)
	r.POST("/theme", s.toggleTheme)
	r.POST("/contact", s.contact)

	r.GET("/live/typewriter", s.typewriterStream)
	r.GET("/live/projects/:slug", s.cyclerStream)
	r.POST("/live/projects/:slug/hover", s.hover)
	r.POST("/live/projects/:slug/failed", s.imageFailed)

	s.setupAdminRoutes(r)

	r.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "not-found.html", gin.H{"Message": "Page not found."})
	})
	return r
}

// viewerMiddleware gives every browser an opaque id so live widget streams
// and their hover signals can be paired.
func viewerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(viewerCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetCookie(viewerCookie, id, 0, "/", "", false, true)
		}
		c.Set(viewerCookie, id)
		c.Next()
	}
}

func viewerID(c *gin.Context) string { return c.GetString(viewerCookie) }

// Preferences is the visitor's explicit, cookie-backed presentation state.
type Preferences struct {
	Theme string // "light" or "dark"
}

func preferencesFrom(c *gin.Context) Preferences {
	theme, _ := c.Cookie(themeCookie)
	if theme != "dark" {
		theme = "light"
	}
	return Preferences{Theme: theme}
}

func (p Preferences) save(c *gin.Context) {
	c.SetCookie(themeCookie, p.Theme, 365*24*3600, "/", "", false, false)
}

func (s *server) toggleTheme(c *gin.Context) {
	prefs := preferencesFrom(c)
	if prefs.Theme == "dark" {
		prefs.Theme = "light"
	} else {
		prefs.Theme = "dark"
	}
	prefs.save(c)

	if c.GetHeader("HX-Request") == "true" {
		c.Header("HX-Refresh", "true")
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

type navLink struct {
	Name string
	Href string
}

var navLinks = []navLink{
	{"About", "#about"},
	{"Skills", "#skills"},
	{"Projects", "#projects"},
	{"Experience", "#experience"},
	{"Resume", "#resume"},
	{"Contact", "#contact"},
}

// cyclerView is the data behind the cycler-frame template.
type cyclerView struct {
	Slug  string
	Title string
	Frame widget.CyclerFrame
}

type projectCard struct {
	Project content.Project
	Live    bool // more than one image: rotates on hover
	Frame   cyclerView
}

func cardsFor(projects []content.Project) []projectCard {
	cards := make([]projectCard, 0, len(projects))
	for _, p := range projects {
		thumbs := p.Thumbnails()
		frame := widget.CyclerFrame{Count: len(thumbs), Placeholder: len(thumbs) == 0}
		if len(thumbs) > 0 {
			frame.Image = thumbs[0]
		}
		cards = append(cards, projectCard{
			Project: p,
			Live:    len(thumbs) > 1,
			Frame:   cyclerView{Slug: p.Slug, Title: p.Title, Frame: frame},
		})
	}
	return cards
}

func (s *server) home(c *gin.Context) {
	p := s.portfolio
	category := c.Query("category")
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Personal":        p.Personal,
		"Prefs":           preferencesFrom(c),
		"Nav":             navLinks,
		"Typewriter":      widget.TypewriterFrame{CursorVisible: true},
		"Category":        category,
		"Categories":      p.Categories(),
		"Cards":           cardsFor(p.ByCategory(category)),
		"SkillCategories": p.SkillCategories,
		"Timeline":        p.Timeline(),
		"Hackathons":      p.Hackathons,
		"Certifications":  p.Certifications,
		"Year":            s.now().Year(),
	})
}

// HTMX project grid fragment
func (s *server) projectGrid(c *gin.Context) {
	c.HTML(http.StatusOK, "project-grid", cardsFor(s.portfolio.ByCategory(c.Query("category"))))
}

func (s *server) projectOr404(c *gin.Context) (content.Project, bool) {
	slug := c.Param("slug")
	p, ok := s.portfolio.ProjectBySlug(slug)
	if ok {
		return p, true
	}
	data := gin.H{"Message": "No project called " + strconv.Quote(slug) + "."}
	if suggestion, ok := s.portfolio.SuggestSlug(slug); ok {
		data["Suggestion"] = suggestion
	}
	c.HTML(http.StatusNotFound, "not-found.html", data)
	return content.Project{}, false
}

// Lightbox gallery fragment
func (s *server) gallery(c *gin.Context) {
	p, ok := s.projectOr404(c)
	if !ok {
		return
	}
	i, _ := strconv.Atoi(c.Query("i"))
	carousel := widget.NewCarousel(p.Thumbnails(), i)
	img, ok := carousel.Current()
	if !ok {
		c.HTML(http.StatusNotFound, "not-found.html", gin.H{"Message": p.Title + " has no images."})
		return
	}
	c.HTML(http.StatusOK, "gallery.html", gin.H{
		"Slug":  p.Slug,
		"Title": p.Title,
		"Image": img,
		"Index": carousel.Index(),
		"Count": carousel.Len(),
		"Prev":  carousel.PrevIndex(),
		"Next":  carousel.NextIndex(),
	})
}

func (s *server) typewriterOptions() widget.TextRotatorOptions {
	t := s.cfg.Typewriter
	return widget.TextRotatorOptions{
		TypeInterval:   t.TypeInterval,
		DeleteInterval: t.DeleteInterval,
		Pause:          t.Pause,
		CursorBlink:    t.CursorBlink,
	}
}

func (s *server) cyclerOptions() widget.ImageCyclerOptions {
	return widget.ImageCyclerOptions{
		Cycle:      s.cfg.Cycler.Interval,
		StartDelay: s.cfg.Cycler.StartDelay,
	}
}

func logRenderError(name string, err error) {
	log.Printf("Error rendering %s: %v", name, err)
}
