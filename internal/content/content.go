// Package content holds the portfolio's build-time data: projects, skills and
// profile copy.
package content

import (
	"errors"
	"fmt"
	"html/template"
)

type Project struct {
	ID          int
	Title       string
	Description string
	Tags        []string
	Image       string
	LiveURL     string
	SourceURL   string
}

type Category string

const (
	Frontend Category = "Frontend"
	Backend  Category = "Backend"
	Tools    Category = "Tools"
)

// Categories is the fixed display order of skill groups.
var Categories = []Category{Frontend, Backend, Tools}

type Skill struct {
	Name     string
	Level    int
	Category Category
}

// Percent is the level clamped to 0..100.
func (s Skill) Percent() int {
	switch {
	case s.Level < 0:
		return 0
	case s.Level > 100:
		return 100
	}
	return s.Level
}

type Link struct {
	Label string
	URL   string
}

// Profile is everything the hero, about and contact sections print about the owner.
type Profile struct {
	Name       string
	Headline   string
	Tagline    string
	AboutTitle string
	About      template.HTML
	Highlights []string
	Email      string
	Location   string
	Socials    []Link
	ResumeName string
}

// Portfolio bundles the static content served by the page.
type Portfolio struct {
	Profile    Profile
	Projects   []Project
	Skills     []Skill
	Categories []Category
}

// Default returns the built-in portfolio after validating it.
func Default() (*Portfolio, error) {
	p := &Portfolio{
		Profile: Profile{
			Name:       OwnerName,
			Headline:   Headline,
			Tagline:    Tagline,
			AboutTitle: AboutTitle,
			About:      RenderMarkdown(AboutMe),
			Highlights: append([]string(nil), Highlights...),
			Email:      ContactEmail,
			Location:   ContactLocation,
			Socials:    append([]Link(nil), Socials...),
			ResumeName: ResumeFileName,
		},
		Projects:   append([]Project(nil), projects...),
		Skills:     append([]Skill(nil), skills...),
		Categories: append([]Category(nil), Categories...),
	}

	if err := Validate(p.Projects, p.Skills, p.Categories); err != nil {
		return nil, err
	}
	return p, nil
}

var (
	ErrDuplicateProject = errors.New("duplicate project id")
	ErrDuplicateSkill   = errors.New("duplicate skill name")
	ErrSkillLevel       = errors.New("skill level out of range")
	ErrUnknownCategory  = errors.New("unknown skill category")
)

// Validate checks the identifier and range invariants of the static lists.
func Validate(projects []Project, skills []Skill, categories []Category) error {
	seenProjects := make(map[int]bool, len(projects))
	for _, p := range projects {
		if seenProjects[p.ID] {
			return fmt.Errorf("%w: %d", ErrDuplicateProject, p.ID)
		}
		seenProjects[p.ID] = true
	}

	known := make(map[Category]bool, len(categories))
	for _, c := range categories {
		known[c] = true
	}

	seenSkills := make(map[string]bool, len(skills))
	for _, s := range skills {
		if seenSkills[s.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateSkill, s.Name)
		}
		seenSkills[s.Name] = true

		if s.Level < 0 || s.Level > 100 {
			return fmt.Errorf("%w: %q has %d", ErrSkillLevel, s.Name, s.Level)
		}
		if !known[s.Category] {
			return fmt.Errorf("%w: %q for %q", ErrUnknownCategory, s.Category, s.Name)
		}
	}
	return nil
}

type SkillGroup struct {
	Category Category
	Skills   []Skill
}

// GroupSkills partitions skills by category. Groups follow the order of
// categories and skills keep their declaration order inside a group. Skills
// whose category is not listed are left out.
func GroupSkills(categories []Category, skills []Skill) []SkillGroup {
	groups := make([]SkillGroup, len(categories))
	index := make(map[Category]int, len(categories))
	for i, c := range categories {
		groups[i] = SkillGroup{Category: c}
		index[c] = i
	}

	for _, s := range skills {
		i, ok := index[s.Category]
		if !ok {
			continue
		}
		groups[i].Skills = append(groups[i].Skills, s)
	}
	return groups
}
