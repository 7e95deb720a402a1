package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultDocumentLoads(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)
	require.NotEmpty(t, p.Personal.Roles)
	require.NotEmpty(t, p.Projects)
	require.Len(t, p.Featured(), 3)
}

func TestLoadOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	doc := `
personal:
  name: Test Person
  roles: [One, Two]
projects:
  - {title: A, slug: a, category: X, images: [a1, a2]}
  - {title: B, slug: b, category: Y, image: b1}
  - {title: C, slug: c, category: X}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "Test Person", p.Personal.Name)
	require.Equal(t, []string{"X", "Y"}, p.Categories())
	require.Len(t, p.ByCategory("X"), 2)
	require.Len(t, p.ByCategory(""), 3)

	a, ok := p.ProjectBySlug("a")
	require.True(t, ok)
	require.Equal(t, []string{"a1", "a2"}, a.Thumbnails())
	b, _ := p.ProjectBySlug("b")
	require.Equal(t, []string{"b1"}, b.Thumbnails())
	c, _ := p.ProjectBySlug("c")
	require.Nil(t, c.Thumbnails())
}

func TestValidateRejectsBadSlugs(t *testing.T) {
	_, err := Parse([]byte(`
projects:
  - {title: A, slug: a}
  - {title: B, slug: a}
  - {title: C}
`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate slug")
	require.Contains(t, err.Error(), "empty slug")
}

func TestSkillByNameIgnoresCase(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	s, ok := p.SkillByName("go")
	require.True(t, ok)
	require.Equal(t, "Go", s.Name)

	_, ok = p.SkillByName("cobol")
	require.False(t, ok)
	require.NotEmpty(t, p.AllSkills())
}

func TestSuggestSlug(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	s, ok := p.SuggestSlug("mail-tiu")
	require.True(t, ok)
	require.Equal(t, "mail-tui", s)

	_, ok = p.SuggestSlug("completely-unrelated-thing")
	require.False(t, ok)
}

func TestTimelineNewestFirst(t *testing.T) {
	p := &Portfolio{
		Work: []Experience{
			{Title: "Old job", Period: "Aug 2016 – Present"},
			{Title: "New job", Period: "June 2025 – July 2025"},
		},
		Education: []Education{{Degree: "Degree", Period: "Sept 2019 – May 2023"}},
	}

	items := p.Timeline()
	require.Len(t, items, 3)
	require.Equal(t, "New job", items[0].Title)
	require.Equal(t, 2025, items[0].Year)
	require.Equal(t, "education", items[1].Category)
	require.Equal(t, "Old job", items[2].Title)
}
