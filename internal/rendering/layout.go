package rendering

import "github.com/jonathan/resume-builder/internal/typst"

// Layout is the column structure of a template.
type Layout string

const (
	LayoutSingleColumn Layout = "single-column"
	LayoutTwoColumn    Layout = "two-column"
)

// Spacing decides how adjacent items inside a section are concatenated.
type Spacing string

const (
	// SpacingBlock wraps each item in its own spaced block.
	SpacingBlock Spacing = "block"
	// SpacingJoined concatenates items with a literal separator.
	SpacingJoined Spacing = "joined"
)

// Orientation of the social links list.
type Orientation string

const (
	OrientationVertical   Orientation = "vertical"
	OrientationHorizontal Orientation = "horizontal"
)

// LinksPlacement is where social links are shown.
type LinksPlacement string

const (
	LinksInHeader  LinksPlacement = "header"
	LinksInSidebar LinksPlacement = "sidebar"
	LinksInSection LinksPlacement = "section"
)

// SectionsConfig controls item spacing inside sections.
type SectionsConfig struct {
	Spacing       Spacing
	ItemSpacing   string
	JoinSeparator string
}

// SocialLinksConfig controls how social links are laid out.
type SocialLinksConfig struct {
	Orientation Orientation
	Placement   LinksPlacement
	Separator   string
}

// HeaderConfig describes the name/contact header.
type HeaderConfig struct {
	Style          string // "simple" or "grid"
	IncludeContact bool
}

// ProjectsConfig controls spacing between project entries.
type ProjectsConfig struct {
	ItemSpacing string
}

// LayoutConfig is the visual grammar of a template.
type LayoutConfig struct {
	Layout      Layout
	Sections    SectionsConfig
	SocialLinks SocialLinksConfig
	Header      HeaderConfig
	Projects    ProjectsConfig
}

// IsTwoColumn reports whether the layout splits content into two columns.
func (c LayoutConfig) IsTwoColumn() bool {
	return c.Layout == LayoutTwoColumn
}

// DefaultLayoutConfig returns the two-column layout with a vertical sidebar of links.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Layout: LayoutTwoColumn,
		Sections: SectionsConfig{
			Spacing:       SpacingBlock,
			ItemSpacing:   typst.ItemsSpacing,
			JoinSeparator: "",
		},
		SocialLinks: SocialLinksConfig{
			Orientation: OrientationVertical,
			Placement:   LinksInSidebar,
			Separator:   "",
		},
		Header: HeaderConfig{
			Style:          "simple",
			IncludeContact: false,
		},
		Projects: ProjectsConfig{
			ItemSpacing: typst.HeaderSpacing,
		},
	}
}

// CompactLayoutConfig returns the single-column layout with horizontal header links.
func CompactLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Layout: LayoutSingleColumn,
		Sections: SectionsConfig{
			Spacing:       SpacingJoined,
			ItemSpacing:   "",
			JoinSeparator: "\n\n",
		},
		SocialLinks: SocialLinksConfig{
			Orientation: OrientationHorizontal,
			Placement:   LinksInHeader,
			Separator:   " • ",
		},
		Header: HeaderConfig{
			Style:          "grid",
			IncludeContact: true,
		},
		Projects: ProjectsConfig{
			ItemSpacing: "",
		},
	}
}
