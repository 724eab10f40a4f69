// Package types provides type definitions for structured data used throughout the resume-builder system.
package types

import (
	"time"

	"github.com/google/uuid"
)

// Section keys used by sectionOrder, sectionHeaders and sectionPlacement.
const (
	SectionSummary      = "summary"
	SectionProfile      = "profile"
	SectionPersonalInfo = "personalInfo"
	SectionInfo         = "info"
	SectionExperience   = "experience"
	SectionInternships  = "internships"
	SectionEducation    = "education"
	SectionSkills       = "skills"
	SectionVolunteering = "volunteering"
	SectionSocialLinks  = "socialLinks"
	SectionProjects     = "projects"
	SectionLanguages    = "languages"
	SectionCertificates = "certificates"
)

// CanonicalSectionOrder is the fixed key list used to break ties between equal sectionOrder ranks.
var CanonicalSectionOrder = []string{
	SectionSummary,
	SectionExperience,
	SectionInternships,
	SectionEducation,
	SectionSkills,
	SectionVolunteering,
	SectionSocialLinks,
	SectionProjects,
	SectionLanguages,
	SectionCertificates,
}

// MovableSections lists sections whose column is user-configurable in two-column templates.
var MovableSections = []string{
	SectionSkills,
	SectionProjects,
	SectionLanguages,
	SectionVolunteering,
	SectionCertificates,
}

// Placement is the column a movable section is rendered in.
type Placement string

const (
	PlacementLeft  Placement = "left"
	PlacementRight Placement = "right"
)

// Achievement is a single bullet under a position-based entry.
type Achievement struct {
	Text string `json:"text"`
}

// Experience is an employment entry. Internships share the same shape.
type Experience struct {
	Company      string        `json:"company"`
	Position     string        `json:"position"`
	Location     string        `json:"location"`
	CompanyURL   string        `json:"companyUrl,omitempty"`
	StartDate    string        `json:"startDate"`
	EndDate      string        `json:"endDate"`
	IsPresent    bool          `json:"isPresent,omitempty"`
	Achievements []Achievement `json:"achievements"`
}

// Education is a degree or course of study.
type Education struct {
	Institution     string `json:"institution"`
	Degree          string `json:"degree"`
	FieldOfStudy    string `json:"fieldOfStudy"`
	Location        string `json:"location"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	IsPresent       bool   `json:"isPresent,omitempty"`
	Description     string `json:"description"`
	GraduationScore string `json:"graduationScore,omitempty"`
}

// Volunteering is an unpaid position.
type Volunteering struct {
	Organization string        `json:"organization"`
	Position     string        `json:"position"`
	Location     string        `json:"location"`
	StartDate    string        `json:"startDate"`
	EndDate      string        `json:"endDate"`
	IsPresent    bool          `json:"isPresent,omitempty"`
	Achievements []Achievement `json:"achievements"`
}

// SkillItem is a titled skill group, e.g. "Languages: Go, Rust".
type SkillItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SocialLink is a profile URL on a known platform, or "other" with a custom label.
type SocialLink struct {
	Platform    string `json:"platform"`
	URL         string `json:"url"`
	CustomLabel string `json:"customLabel,omitempty"`
}

// Project is a personal or professional project.
type Project struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Language is a spoken language and the holder's proficiency.
type Language struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency"`
}

// Certificate is a credential issued by an organization.
type Certificate struct {
	Title       string `json:"title"`
	Issuer      string `json:"issuer"`
	Date        string `json:"date"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
}

// ResumeData is the root resume document consumed by the rendering pipeline.
type ResumeData struct {
	Version   string `json:"version"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Position  string `json:"position"`
	Location  string `json:"location"`
	Summary   string `json:"summary"`

	Experiences  []Experience   `json:"experiences"`
	Internships  []Experience   `json:"internships"`
	Education    []Education    `json:"education"`
	Volunteering []Volunteering `json:"volunteering"`
	Skills       []SkillItem    `json:"skills"`
	SocialLinks  []SocialLink   `json:"socialLinks"`
	Projects     []Project      `json:"projects"`
	Languages    []Language     `json:"languages"`
	Certificates []Certificate  `json:"certificates"`

	// Legacy free-text skill fields kept for documents created before structured skills.
	TechnicalSkills string `json:"technicalSkills,omitempty"`
	SoftSkills      string `json:"softSkills,omitempty"`

	SectionOrder       map[string]int               `json:"sectionOrder,omitempty"`
	SectionHeaders     map[string]string            `json:"sectionHeaders,omitempty"`
	SectionHeadersI18n map[string]map[string]string `json:"sectionHeadersI18n,omitempty"`
	SectionPlacement   map[string]Placement         `json:"sectionPlacement,omitempty"`

	Language string `json:"language,omitempty"`
}

// Rank returns the sectionOrder rank of a section and whether it was set.
// A rank of 0 is a valid explicit rank.
func (d *ResumeData) Rank(section string) (int, bool) {
	if d == nil || d.SectionOrder == nil {
		return 0, false
	}
	rank, ok := d.SectionOrder[section]
	return rank, ok
}

// PlacementOf returns the column for a movable section, defaulting to right.
func (d *ResumeData) PlacementOf(section string) Placement {
	if d != nil && d.SectionPlacement != nil {
		if p, ok := d.SectionPlacement[section]; ok && p == PlacementLeft {
			return PlacementLeft
		}
	}
	return PlacementRight
}

// DefaultSectionOrder returns the rank table assigned to newly created documents.
func DefaultSectionOrder() map[string]int {
	return map[string]int{
		SectionSummary:      0,
		SectionEducation:    1,
		SectionExperience:   2,
		SectionInternships:  3,
		SectionSkills:       4,
		SectionVolunteering: 5,
		SectionSocialLinks:  6,
		SectionProjects:     7,
		SectionLanguages:    8,
		SectionCertificates: 9,
	}
}

// DefaultSectionPlacement returns the placement table assigned to newly created documents.
func DefaultSectionPlacement() map[string]Placement {
	placement := make(map[string]Placement, len(MovableSections))
	for _, s := range MovableSections {
		placement[s] = PlacementRight
	}
	return placement
}

// NewResumeData returns an empty document at the current schema version.
func NewResumeData() ResumeData {
	return ResumeData{
		Version:          CurrentVersion,
		Experiences:      []Experience{},
		Internships:      []Experience{},
		Education:        []Education{},
		Volunteering:     []Volunteering{},
		Skills:           []SkillItem{},
		SocialLinks:      []SocialLink{},
		Projects:         []Project{},
		Languages:        []Language{},
		Certificates:     []Certificate{},
		SectionOrder:     DefaultSectionOrder(),
		SectionPlacement: DefaultSectionPlacement(),
	}
}

// CurrentVersion is the document schema version produced by migrations.
const CurrentVersion = "v2"

// Resume is a named, persisted resume document.
type Resume struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Data      ResumeData `json:"data"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	ServerID  string     `json:"serverId,omitempty"`
}
