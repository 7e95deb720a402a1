// Package content holds the static portfolio document and the queries the
// site and terminal views run against it.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var defaultDocument []byte

type Portfolio struct {
	Personal        Personal        `yaml:"personal"`
	Projects        []Project       `yaml:"projects"`
	SkillCategories []SkillCategory `yaml:"skill_categories"`
	Work            []Experience    `yaml:"work"`
	Education       []Education     `yaml:"education"`
	Hackathons      []Hackathon     `yaml:"hackathons"`
	Certifications  []Certification `yaml:"certifications"`
}

type Personal struct {
	Name            string   `yaml:"name"`
	FirstName       string   `yaml:"first_name"`
	LastName        string   `yaml:"last_name"`
	Roles           []string `yaml:"roles"` // hero typewriter phrases
	Tagline         string   `yaml:"tagline"`
	HeroDescription string   `yaml:"hero_description"`
	ProfileImage    string   `yaml:"profile_image"`
	ResumePath      string   `yaml:"resume_path"`
	ResumeSummary   string   `yaml:"resume_summary"`
	Social          Social   `yaml:"social"`
	About           About    `yaml:"about"`
	Contact         Contact  `yaml:"contact"`
}

type Social struct {
	GitHub   string `yaml:"github"`
	LinkedIn string `yaml:"linkedin"`
	Twitter  string `yaml:"twitter"`
	Email    string `yaml:"email"`
}

type About struct {
	Title       string   `yaml:"title"`
	Description []string `yaml:"description"`
	Highlights  []string `yaml:"highlights"`
}

type Contact struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Email       string `yaml:"email"`
	Location    string `yaml:"location"`
}

type Project struct {
	ID           int      `yaml:"id"`
	Title        string   `yaml:"title"`
	Slug         string   `yaml:"slug"`
	Featured     bool     `yaml:"featured"`
	Problem      string   `yaml:"problem"`
	Description  string   `yaml:"description"`
	Features     []string `yaml:"features"`
	Impact       string   `yaml:"impact"`
	Technologies []string `yaml:"technologies"`
	LiveURL      string   `yaml:"live_url"`
	GitHubURL    string   `yaml:"github_url"`
	Image        string   `yaml:"image"`
	Images       []string `yaml:"images"`
	Category     string   `yaml:"category"`
}

// Thumbnails returns the images a project card cycles through: the gallery
// when present, otherwise the single hero image.
func (p Project) Thumbnails() []string {
	if len(p.Images) > 0 {
		return p.Images
	}
	if p.Image != "" {
		return []string{p.Image}
	}
	return nil
}

type SkillCategory struct {
	ID          int     `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Icon        string  `yaml:"icon"`
	Skills      []Skill `yaml:"skills"`
}

type Skill struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
	Icon  string `yaml:"icon"`
}

type Experience struct {
	ID           int      `yaml:"id"`
	Title        string   `yaml:"title"`
	Company      string   `yaml:"company"`
	Location     string   `yaml:"location"`
	Period       string   `yaml:"period"`
	Current      bool     `yaml:"current"`
	Description  string   `yaml:"description"`
	Achievements []string `yaml:"achievements"`
	Technologies []string `yaml:"technologies"`
	Logo         string   `yaml:"logo"`
}

type Education struct {
	ID           int      `yaml:"id"`
	Degree       string   `yaml:"degree"`
	Institution  string   `yaml:"institution"`
	Location     string   `yaml:"location"`
	Period       string   `yaml:"period"`
	GPA          string   `yaml:"gpa"`
	Achievements []string `yaml:"achievements"`
	Coursework   []string `yaml:"coursework"`
	Logo         string   `yaml:"logo"`
}

type Hackathon struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	Position string `yaml:"position"`
	Project  string `yaml:"project"`
	Date     string `yaml:"date"`
}

type Certification struct {
	ID            int    `yaml:"id"`
	Name          string `yaml:"name"`
	Issuer        string `yaml:"issuer"`
	Date          string `yaml:"date"`
	CredentialURL string `yaml:"credential_url"`
}

// Default parses the embedded portfolio document.
func Default() (*Portfolio, error) {
	return Parse(defaultDocument)
}

// Load reads a portfolio document from path. An empty path loads the
// embedded default.
func Load(path string) (*Portfolio, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML portfolio document.
func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate checks that every project has a unique, non-empty slug.
func (p *Portfolio) Validate() error {
	seen := make(map[string]bool, len(p.Projects))
	var errs []error
	for i, pr := range p.Projects {
		switch {
		case strings.TrimSpace(pr.Slug) == "":
			errs = append(errs, fmt.Errorf("project %d (%q): empty slug", i, pr.Title))
		case seen[pr.Slug]:
			errs = append(errs, fmt.Errorf("project %d: duplicate slug %q", i, pr.Slug))
		}
		seen[pr.Slug] = true
	}
	return errors.Join(errs...)
}

func (p *Portfolio) Featured() []Project {
	var out []Project
	for _, pr := range p.Projects {
		if pr.Featured {
			out = append(out, pr)
		}
	}
	return out
}

// ByCategory returns the projects in category. An empty category matches all.
func (p *Portfolio) ByCategory(category string) []Project {
	if category == "" {
		return p.Projects
	}
	var out []Project
	for _, pr := range p.Projects {
		if pr.Category == category {
			out = append(out, pr)
		}
	}
	return out
}

// Categories returns the distinct project categories in first-seen order.
func (p *Portfolio) Categories() []string {
	var out []string
	seen := map[string]bool{}
	for _, pr := range p.Projects {
		if pr.Category == "" || seen[pr.Category] {
			continue
		}
		seen[pr.Category] = true
		out = append(out, pr.Category)
	}
	return out
}

func (p *Portfolio) AllSkills() []Skill {
	var out []Skill
	for _, c := range p.SkillCategories {
		out = append(out, c.Skills...)
	}
	return out
}

// SkillByName looks a skill up case-insensitively.
func (p *Portfolio) SkillByName(name string) (Skill, bool) {
	for _, s := range p.AllSkills() {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Skill{}, false
}

func (p *Portfolio) ProjectBySlug(slug string) (Project, bool) {
	for _, pr := range p.Projects {
		if pr.Slug == slug {
			return pr, true
		}
	}
	return Project{}, false
}

// SuggestSlug returns the project slug closest to slug by edit distance, if
// any is close enough to be a plausible typo.
func (p *Portfolio) SuggestSlug(slug string) (string, bool) {
	best, bestDist := "", -1
	for _, pr := range p.Projects {
		d := levenshtein.ComputeDistance(strings.ToLower(slug), pr.Slug)
		if bestDist < 0 || d < bestDist {
			best, bestDist = pr.Slug, d
		}
	}
	if bestDist < 0 || bestDist > len(best)/2+1 {
		return "", false
	}
	return best, true
}

// TimelineItem is one entry of the combined work and education timeline.
type TimelineItem struct {
	Category     string // "work" or "education"
	Title        string
	Organization string
	Location     string
	Period       string
	Year         int
	Current      bool
	Achievements []string
	Tags         []string
}

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// startYear returns the first year mentioned in period, or 0.
func startYear(period string) int {
	m := yearPattern.FindString(period)
	if m == "" {
		return 0
	}
	y, _ := strconv.Atoi(m)
	return y
}

// Timeline merges work and education, newest start year first.
func (p *Portfolio) Timeline() []TimelineItem {
	items := make([]TimelineItem, 0, len(p.Work)+len(p.Education))
	for _, w := range p.Work {
		items = append(items, TimelineItem{
			Category:     "work",
			Title:        w.Title,
			Organization: w.Company,
			Location:     w.Location,
			Period:       w.Period,
			Year:         startYear(w.Period),
			Current:      w.Current,
			Achievements: w.Achievements,
			Tags:         w.Technologies,
		})
	}
	for _, e := range p.Education {
		items = append(items, TimelineItem{
			Category:     "education",
			Title:        e.Degree,
			Organization: e.Institution,
			Location:     e.Location,
			Period:       e.Period,
			Year:         startYear(e.Period),
			Achievements: e.Achievements,
			Tags:         e.Coursework,
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Year > items[j].Year })
	return items
}
