// Package page assembles the portfolio's single page from static content,
// reveal bindings and the current pagination and form state.
package page

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/notify"
	"github.com/Zachkp/portfolio/internal/paginate"
	"github.com/Zachkp/portfolio/internal/reveal"
)

// ProjectsPerPage is the projects grid page size.
const ProjectsPerPage = 4

// Section anchors in render order.
const (
	SectionHero     = "hero"
	SectionAbout    = "about"
	SectionProjects = "projects"
	SectionSkills   = "skills"
	SectionContact  = "contact"
)

// Sections is the fixed order of the page.
var Sections = []string{SectionHero, SectionAbout, SectionProjects, SectionSkills, SectionContact}

const resumeProbeTimeout = 500 * time.Millisecond

const msgResumeMissing = "Resume file not found. Add a resume.pdf file for the download functionality to work."

type NavLink struct {
	Label string
	Href  string
}

// Reveal is an element's reveal binding and the state it renders with.
type Reveal struct {
	Attrs   template.HTMLAttr
	Visible bool
}

type ProjectCard struct {
	content.Project
	Reveal Reveal
}

type ProjectsView struct {
	Page    paginate.Page[content.Project]
	Cards   []ProjectCard
	Section Reveal
}

type SkillBar struct {
	content.Skill
	Reveal Reveal
	// TransitionDelay staggers the width animation, in milliseconds.
	TransitionDelay int
}

type SkillGroupView struct {
	Category content.Category
	Bars     []SkillBar
	Reveal   Reveal
}

type SkillsView struct {
	Groups  []SkillGroupView
	Section Reveal
}

type ContactView struct {
	FormID string
	Input  contact.Input
	Errors contact.FieldErrors
	Reveal Reveal
}

type View struct {
	Profile       content.Profile
	Brand         NavLink
	Nav           []NavLink
	Sections      []string
	About         Reveal
	Projects      ProjectsView
	Skills        SkillsView
	Contact       ContactView
	Notices       []notify.Notice
	SmoothScroll  bool
	ReducedMotion bool
	ResumeURL     string
	ResumeFound   bool
	Year          int
	Dev           bool
}

// Request carries the per-request inputs of a full page render.
type Request struct {
	Page          int
	ShowAll       bool
	ReducedMotion bool
	Notices       []notify.Notice
	Contact       *ContactView
}

// ProjectsRequest is a page change or show-all toggle.
type ProjectsRequest struct {
	Page          int
	ShowAll       bool
	Toggled       bool
	ReducedMotion bool
}

type Composer struct {
	portfolio *content.Portfolio
	probe     ResumeProbe
	resumeURL string
	dev       bool
	logger    *slog.Logger
	now       func() time.Time

	// Last resume probe result. Renders only read these.
	resumeChecked atomic.Bool
	resumeFound   atomic.Bool
}

// NewComposer builds a composer. probe may be nil to skip the resume check.
// The resume is reported missing until RefreshResume or WatchResume has run.
func NewComposer(p *content.Portfolio, probe ResumeProbe, resumeURL string, dev bool, logger *slog.Logger) *Composer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Composer{
		portfolio: p,
		probe:     probe,
		resumeURL: resumeURL,
		dev:       dev,
		logger:    logger,
		now:       time.Now,
	}
}

// Compose renders the whole page model. It never waits on the resume probe.
func (c *Composer) Compose(_ context.Context, req Request) View {
	reduced := req.ReducedMotion

	v := View{
		Profile:       c.portfolio.Profile,
		Brand:         NavLink{Label: "Portfolio", Href: "#" + SectionHero},
		Nav:           navLinks(),
		Sections:      Sections,
		About:         bind(reveal.Configure(), reduced),
		SmoothScroll:  true,
		ReducedMotion: reduced,
		ResumeURL:     c.resumeURL,
		Year:          c.now().Year(),
		Dev:           c.dev,
		Notices:       append([]notify.Notice(nil), req.Notices...),
	}

	v.Projects, _ = c.Projects(ProjectsRequest{Page: req.Page, ShowAll: req.ShowAll, ReducedMotion: reduced})
	v.Skills = c.Skills(reduced)

	if req.Contact != nil {
		v.Contact = *req.Contact
	} else {
		v.Contact = c.ContactForm(contact.NewFormID(), contact.Input{}, nil)
	}
	v.Contact.Reveal = bind(reveal.Configure(), reduced)

	v.ResumeFound = c.resumeFound.Load()
	if !v.ResumeFound && c.dev && c.resumeChecked.Load() {
		v.Notices = append(v.Notices, notify.Warning(msgResumeMissing))
	}
	return v
}

// Projects returns the grid for req and the notice describing the change.
func (c *Composer) Projects(req ProjectsRequest) (ProjectsView, notify.Notice) {
	pg := paginate.New(c.portfolio.Projects, req.Page, ProjectsPerPage, req.ShowAll)

	view := ProjectsView{
		Page:    pg,
		Section: bind(reveal.Configure(), req.ReducedMotion),
		Cards:   make([]ProjectCard, 0, len(pg.Items)),
	}
	for i, p := range pg.Items {
		opts := reveal.Configure(reveal.WithDelay(time.Duration(i*150) * time.Millisecond))
		view.Cards = append(view.Cards, ProjectCard{Project: p, Reveal: bind(opts, req.ReducedMotion)})
	}

	var notice notify.Notice
	switch {
	case req.Toggled && req.ShowAll:
		notice = notify.Success("Showing all projects")
	case req.Toggled:
		notice = notify.Success("Showing paginated projects")
	default:
		notice = notify.Success(fmt.Sprintf("Showing page %d of projects", pg.Number))
	}
	return view, notice
}

// Skills groups the skill bars by category.
func (c *Composer) Skills(reduced bool) SkillsView {
	groups := content.GroupSkills(c.portfolio.Categories, c.portfolio.Skills)

	view := SkillsView{
		Section: bind(reveal.Configure(), reduced),
		Groups:  make([]SkillGroupView, 0, len(groups)),
	}
	for gi, g := range groups {
		gv := SkillGroupView{
			Category: g.Category,
			Reveal:   bind(reveal.Configure(reveal.WithDelay(time.Duration(gi*100)*time.Millisecond)), reduced),
			Bars:     make([]SkillBar, 0, len(g.Skills)),
		}
		for i, s := range g.Skills {
			opts := reveal.Configure(reveal.WithDelay(time.Duration(150+i*50) * time.Millisecond))
			gv.Bars = append(gv.Bars, SkillBar{
				Skill:           s,
				Reveal:          bind(opts, reduced),
				TransitionDelay: 200 + i*50,
			})
		}
		view.Groups = append(view.Groups, gv)
	}
	return view
}

// ContactForm builds the form model for a fragment or full render.
func (c *Composer) ContactForm(formID string, in contact.Input, errs contact.FieldErrors) ContactView {
	return ContactView{
		FormID: formID,
		Input:  in,
		Errors: errs,
		Reveal: bind(reveal.Configure(), true),
	}
}

// RefreshResume runs the probe once and caches the result. Probe failures
// count as missing and are logged.
func (c *Composer) RefreshResume(ctx context.Context) bool {
	if c.probe == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, resumeProbeTimeout)
	defer cancel()

	ok, err := c.probe.Exists(ctx)
	if err != nil {
		c.logger.Warn("failed to check resume file", "error", err)
		ok = false
	}

	wasChecked := c.resumeChecked.Swap(true)
	wasFound := c.resumeFound.Swap(ok)
	if !ok && err == nil && (!wasChecked || wasFound) {
		c.logger.Warn("resume file not found")
	}
	return ok
}

// WatchResume refreshes the resume state now and then every interval until
// ctx is done.
func (c *Composer) WatchResume(ctx context.Context, interval time.Duration) {
	c.RefreshResume(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.RefreshResume(ctx)
		}
	}
}

func navLinks() []NavLink {
	return []NavLink{
		{Label: "About", Href: "#" + SectionAbout},
		{Label: "Projects", Href: "#" + SectionProjects},
		{Label: "Skills", Href: "#" + SectionSkills},
		{Label: "Contact", Href: "#" + SectionContact},
	}
}

// bind renders opts and the state the server ships: visible straight away
// when the client asked for reduced motion, hidden until revealed otherwise.
func bind(opts reveal.Options, reduced bool) Reveal {
	return Reveal{Attrs: opts.Attrs(), Visible: reveal.Initial(opts, reduced)}
}
