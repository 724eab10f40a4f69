package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/typst"
	"github.com/jonathan/resume-builder/internal/types"
)

// SectionContent is the intermediate unit produced by generators and consumed by formatters.
// A blank (whitespace-only) field is absent; use the Has* methods rather than comparing to "".
type SectionContent struct {
	Title          string
	Date           string
	Content        string
	Achievements   []string
	AdditionalInfo string
}

func (s SectionContent) HasTitle() bool          { return !isBlank(s.Title) }
func (s SectionContent) HasDate() bool           { return !isBlank(s.Date) }
func (s SectionContent) HasContent() bool        { return !isBlank(s.Content) }
func (s SectionContent) HasAchievements() bool   { return len(s.Achievements) > 0 }
func (s SectionContent) HasAdditionalInfo() bool { return !isBlank(s.AdditionalInfo) }

// IsEmpty reports whether every display field is absent.
func (s SectionContent) IsEmpty() bool {
	return !s.HasTitle() && !s.HasDate() && !s.HasContent() && !s.HasAchievements() && !s.HasAdditionalInfo()
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// SocialPlatformLabels maps platform codes to display labels.
var SocialPlatformLabels = map[string]string{
	"linkedin":  "LinkedIn",
	"github":    "GitHub",
	"twitter":   "Twitter",
	"portfolio": "Portfolio",
	"dribbble":  "Dribbble",
	"medium":    "Medium",
	"devto":     "Dev.to",
	"personal":  "Personal",
}

// SocialLinkLabel resolves the display label for a link. "other" uses the custom label,
// unknown platforms show the raw code.
func SocialLinkLabel(link types.SocialLink) string {
	if link.Platform == "other" && !isBlank(link.CustomLabel) {
		return link.CustomLabel
	}
	if label, ok := SocialPlatformLabels[link.Platform]; ok {
		return label
	}
	return link.Platform
}

// positionTitle composes "{role}{at}{org}{separator}{location}", omitting blank parts.
func positionTitle(ctx *Context, role, org, location string) string {
	role = strings.TrimSpace(role)
	org = strings.TrimSpace(org)
	location = strings.TrimSpace(location)

	title := role
	if org != "" {
		if title != "" {
			title += ctx.Phrase(KeyAt, " at ")
		}
		title += org
	}
	if location != "" {
		if title != "" {
			title += ctx.Phrase(KeySeparator, ", ")
		}
		title += location
	}
	return title
}

func dateRange(ctx *Context, start, end string, isPresent bool) string {
	return typst.DateRange(start, end, isPresent, ctx.Phrase(KeyPresent, typst.DefaultPresentLabel))
}

func linkIcon(url string) string {
	if isBlank(url) {
		return ""
	}
	return typst.ExternalLinkIcon(url)
}

func achievementTexts(achievements []types.Achievement) []string {
	var out []string
	for _, a := range achievements {
		if isBlank(a.Text) {
			continue
		}
		out = append(out, a.Text)
	}
	return out
}

func appendNonEmpty(out []SectionContent, item SectionContent) []SectionContent {
	if item.IsEmpty() {
		return out
	}
	return append(out, item)
}

// GenerateExperienceContent builds entries for employment or internship records.
// Achievements are passed through raw; the formatter escapes them.
func GenerateExperienceContent(experiences []types.Experience, ctx *Context) []SectionContent {
	var out []SectionContent
	for _, exp := range experiences {
		out = appendNonEmpty(out, SectionContent{
			Title:        positionTitle(ctx, exp.Position, exp.Company, exp.Location),
			Date:         dateRange(ctx, exp.StartDate, exp.EndDate, exp.IsPresent),
			Content:      linkIcon(exp.CompanyURL),
			Achievements: achievementTexts(exp.Achievements),
		})
	}
	return out
}

// GenerateInternshipsContent builds entries for internships.
func GenerateInternshipsContent(internships []types.Experience, ctx *Context) []SectionContent {
	return GenerateExperienceContent(internships, ctx)
}

// GenerateVolunteeringContent builds entries for volunteering records.
func GenerateVolunteeringContent(volunteering []types.Volunteering, ctx *Context) []SectionContent {
	var out []SectionContent
	for _, vol := range volunteering {
		out = appendNonEmpty(out, SectionContent{
			Title:        positionTitle(ctx, vol.Position, vol.Organization, vol.Location),
			Date:         dateRange(ctx, vol.StartDate, vol.EndDate, vol.IsPresent),
			Achievements: achievementTexts(vol.Achievements),
		})
	}
	return out
}

// GenerateEducationContent builds entries for education records. The additional info
// carries the bold grade label and score, then the description, separated by a blank line.
func GenerateEducationContent(education []types.Education, ctx *Context) []SectionContent {
	gradeLabel := typst.EscapeContentText(ctx.Phrase(KeyGrade, "Grade:"))

	var out []SectionContent
	for _, edu := range education {
		var info []string
		if !isBlank(edu.GraduationScore) {
			info = append(info, fmt.Sprintf("*%s* %s", gradeLabel, typst.EscapeContentText(edu.GraduationScore)))
		}
		if !isBlank(edu.Description) {
			info = append(info, typst.EscapeContentText(edu.Description))
		}

		out = appendNonEmpty(out, SectionContent{
			Title:          positionTitle(ctx, edu.Degree, edu.Institution, edu.Location),
			Date:           dateRange(ctx, edu.StartDate, edu.EndDate, edu.IsPresent),
			AdditionalInfo: strings.Join(info, "\n\n"),
		})
	}
	return out
}

// GenerateProjectsContent keeps projects with a title or a description.
// The title is a bold name followed by a link icon when the project has a URL.
func GenerateProjectsContent(projects []types.Project) []SectionContent {
	var out []SectionContent
	for _, p := range projects {
		if isBlank(p.Title) && isBlank(p.Description) {
			continue
		}

		var title string
		if !isBlank(p.Title) {
			title = fmt.Sprintf(`#block(below: 0.6em)[#text("%s", weight: "bold")`, typst.EscapeStringLiteral(p.Title))
			if !isBlank(p.URL) {
				title += " • " + typst.ExternalLinkIcon(p.URL)
			}
			title += "]"
		}

		out = append(out, SectionContent{
			Title:   title,
			Content: typst.EscapeContentText(p.Description),
		})
	}
	return out
}

// GenerateSkillsContent renders "*title:* description", "*title*" or "description".
func GenerateSkillsContent(skills []types.SkillItem) []SectionContent {
	var out []SectionContent
	for _, s := range skills {
		title := typst.EscapeContentText(s.Title)
		description := typst.EscapeContentText(s.Description)

		var content string
		switch {
		case title == "" && description == "":
			continue
		case title == "":
			content = description
		case description == "":
			content = fmt.Sprintf("*%s*", title)
		default:
			content = fmt.Sprintf("*%s:* %s", title, description)
		}
		out = append(out, SectionContent{Content: content})
	}
	return out
}

// GenerateLanguagesContent renders "*name* - proficiency" for languages with a name.
// Proficiency goes through the translator under "proficiency.<value>", falling back to the literal.
func GenerateLanguagesContent(languages []types.Language, ctx *Context) []SectionContent {
	var out []SectionContent
	for _, lang := range languages {
		if isBlank(lang.Name) {
			continue
		}

		content := fmt.Sprintf("*%s*", typst.EscapeContentText(lang.Name))
		if !isBlank(lang.Proficiency) {
			proficiency := ctx.Phrase(proficiencyKey(lang.Proficiency), lang.Proficiency)
			content += " - " + typst.EscapeContentText(proficiency)
		}
		out = append(out, SectionContent{Content: content})
	}
	return out
}

// GenerateCertificatesContent builds "{title}{from}{issuer}" entries for certificates
// having a title or an issuer.
func GenerateCertificatesContent(certificates []types.Certificate, ctx *Context) []SectionContent {
	from := ctx.Phrase(KeyFrom, " from ")

	var out []SectionContent
	for _, cert := range certificates {
		if isBlank(cert.Title) && isBlank(cert.Issuer) {
			continue
		}

		title := strings.TrimSpace(cert.Title)
		if issuer := strings.TrimSpace(cert.Issuer); issuer != "" {
			if title != "" {
				title += from
			}
			title += issuer
		}

		out = append(out, SectionContent{
			Title:          title,
			Date:           dateRange(ctx, cert.Date, "", false),
			Content:        linkIcon(cert.URL),
			AdditionalInfo: typst.EscapeContentText(cert.Description),
		})
	}
	return out
}

// GenerateContactContent emits up to three fragments: email, phone and location.
// The phone is forced left to right so it never reverses in RTL documents.
func GenerateContactContent(data *types.ResumeData) []SectionContent {
	if data == nil {
		return nil
	}

	var out []SectionContent
	if !isBlank(data.Email) {
		out = append(out, SectionContent{Content: typst.EmailLink(data.Email)})
	}
	if !isBlank(data.Phone) {
		out = append(out, SectionContent{Content: typst.LeftToRight(typst.EscapeContentText(data.Phone))})
	}
	if !isBlank(data.Location) {
		out = append(out, SectionContent{Content: typst.EscapeContentText(data.Location)})
	}
	return out
}

// GenerateSocialLinksContent emits one link per social link with a platform and URL.
func GenerateSocialLinksContent(data *types.ResumeData) []SectionContent {
	if data == nil {
		return nil
	}

	var out []SectionContent
	for _, link := range data.SocialLinks {
		if isBlank(link.Platform) || isBlank(link.URL) {
			continue
		}
		out = appendNonEmpty(out, SectionContent{Content: typst.Link(link.URL, SocialLinkLabel(link))})
	}
	return out
}
