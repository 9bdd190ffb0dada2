package web

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/notify"
	"github.com/Zachkp/portfolio/internal/page"
)

// Template names rendered by the handlers.
const (
	tmplIndex    = "index.html"
	tmplProjects = "projects"
	tmplContact  = "contact-form"
)

// ClientKeyer maps a client address to the key the cooldown is tracked by.
type ClientKeyer interface {
	Key(ip string) string
}

// Resume is the downloadable resume file.
type Resume struct {
	Path string
	Name string
}

type Handler struct {
	composer *page.Composer
	contact  *contact.Service
	keyer    ClientKeyer
	resume   Resume
	timeout  time.Duration
	logger   *slog.Logger
}

// NewHandler wires the page routes. keyer may be nil when no cooldown runs;
// timeout bounds each contact submission.
func NewHandler(composer *page.Composer, svc *contact.Service, keyer ClientKeyer, resume Resume, timeout time.Duration, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		composer: composer,
		contact:  svc,
		keyer:    keyer,
		resume:   resume,
		timeout:  timeout,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.index)
	r.GET("/projects", h.projects)
	r.GET("/contact-form", h.contactForm)
	r.POST("/contact", h.submitContact)
	r.GET("/resume.pdf", h.downloadResume)
	r.GET("/healthz", h.health)
}

func (h *Handler) index(c *gin.Context) {
	reduced := reducedMotion(c)
	view := h.composer.Compose(c.Request.Context(), page.Request{
		Page:          queryPage(c),
		ShowAll:       queryBool(c, "all"),
		ReducedMotion: reduced,
	})
	c.HTML(http.StatusOK, tmplIndex, view)
}

func (h *Handler) projects(c *gin.Context) {
	_, toggled := c.GetQuery("all")
	view, notice := h.composer.Projects(page.ProjectsRequest{
		Page:          queryPage(c),
		ShowAll:       queryBool(c, "all"),
		Toggled:       toggled,
		ReducedMotion: reducedMotion(c),
	})

	h.trigger(c, notice)
	c.HTML(http.StatusOK, tmplProjects, view)
}

func (h *Handler) contactForm(c *gin.Context) {
	c.HTML(http.StatusOK, tmplContact, h.composer.ContactForm(contact.NewFormID(), contact.Input{}, nil))
}

func (h *Handler) submitContact(c *gin.Context) {
	var in contact.Input
	if err := c.ShouldBindWith(&in, binding.Form); err != nil {
		h.logger.Warn("failed to bind contact form", "error", err)
	}

	req := contact.Request{
		FormID: c.PostForm("form_id"),
		Input:  in,
	}
	if h.keyer != nil {
		req.ClientKey = h.keyer.Key(c.ClientIP())
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	out := h.contact.Submit(ctx, req)

	form := h.composer.ContactForm(out.FormID, out.Input, out.Errors)

	if !isHTMX(c) {
		var notices []notify.Notice
		if !out.Notice.IsZero() {
			notices = append(notices, out.Notice)
		}
		view := h.composer.Compose(c.Request.Context(), page.Request{
			ReducedMotion: reducedMotion(c),
			Notices:       notices,
			Contact:       &form,
		})
		c.HTML(http.StatusOK, tmplIndex, view)
		return
	}

	h.trigger(c, out.Notice)
	c.HTML(http.StatusOK, tmplContact, form)
}

func (h *Handler) downloadResume(c *gin.Context) {
	info, err := os.Stat(h.resume.Path)
	if err != nil || info.IsDir() {
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			h.logger.Warn("failed to stat resume", "path", h.resume.Path, "error", err)
		}
		c.String(http.StatusNotFound, "resume not found")
		return
	}
	c.FileAttachment(h.resume.Path, h.resume.Name)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// trigger attaches notices as an HX-Trigger header for the notify script.
func (h *Handler) trigger(c *gin.Context, notices ...notify.Notice) {
	v, err := notify.Trigger(notices...)
	if err != nil {
		h.logger.Error("failed to encode notices", "error", err)
		return
	}
	if v != "" {
		c.Header("HX-Trigger", v)
	}
}

func isHTMX(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("HX-Request"), "true")
}

// reducedMotion reads the client hint. Browsers that do not send it get
// hidden-until-revealed markup and the script checks the media query itself.
func reducedMotion(c *gin.Context) bool {
	c.Header("Accept-CH", "Sec-CH-Prefers-Reduced-Motion")
	c.Header("Vary", "Sec-CH-Prefers-Reduced-Motion")
	return strings.EqualFold(c.GetHeader("Sec-CH-Prefers-Reduced-Motion"), "reduce")
}

// queryPage parses ?page; anything unparsable is page 1 and the paginator
// clamps the rest.
func queryPage(c *gin.Context) int {
	n, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		return 1
	}
	return n
}

func queryBool(c *gin.Context, key string) bool {
	switch strings.ToLower(c.Query(key)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
