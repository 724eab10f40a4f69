package rendering

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/typst"
	"github.com/jonathan/resume-builder/internal/types"
)

// SectionRenderer renders one section of a document, or "" when it has nothing to show.
type SectionRenderer func(data *types.ResumeData, ctx *Context) string

// Renderer keys returned by SectionRenderers.
const (
	RendererExperience   = "experience"
	RendererInternships  = "internships"
	RendererEducation    = "education"
	RendererVolunteering = "volunteering"
	RendererProjects     = "projects"
	RendererSkills       = "skills"
	RendererLanguages    = "languages"
	RendererContactInfo  = "contactInfo"
	RendererSocialLinks  = "socialLinks"
	RendererProfile      = "profile"
	RendererCertificates = "certificates"
)

// SectionTranslationKeys maps section header keys to their default translation key.
var SectionTranslationKeys = map[string]string{
	types.SectionPersonalInfo: "forms.personalInfo.title",
	types.SectionProfile:      "forms.personalInfo.summary",
	types.SectionInfo:         "forms.personalInfo.title",
	types.SectionSocialLinks:  "forms.personalInfo.socialLinks",
	types.SectionProjects:     "forms.projects.title",
	types.SectionLanguages:    "forms.languages.title",
	types.SectionExperience:   "forms.experience.title",
	types.SectionInternships:  "forms.internships.title",
	types.SectionEducation:    "forms.education.title",
	types.SectionSkills:       "forms.skills.title",
	types.SectionVolunteering: "forms.volunteering.title",
	types.SectionCertificates: "forms.certificates.title",
}

// ResolveHeader returns the header text for section in this order:
// the custom header for the context locale, the legacy single-locale custom header,
// then the translated default label.
func ResolveHeader(data *types.ResumeData, section string, ctx *Context) string {
	if data != nil {
		if h := localizedHeader(data.SectionHeadersI18n, ctx.Locale(), section); h != "" {
			return h
		}
		if h := strings.TrimSpace(data.SectionHeaders[section]); h != "" {
			return h
		}
	}
	key, ok := SectionTranslationKeys[section]
	if !ok {
		return ""
	}
	return ctx.T(key)
}

func localizedHeader(headers map[string]map[string]string, locale, section string) string {
	if headers == nil {
		return ""
	}
	if h := strings.TrimSpace(headers[locale][section]); h != "" {
		return h
	}
	// "fr-CA" documents may carry headers under "fr".
	if base, _, found := strings.Cut(strings.ReplaceAll(locale, "_", "-"), "-"); found {
		return strings.TrimSpace(headers[base][section])
	}
	return ""
}

// RenderExperience renders the employment history section.
func RenderExperience(data *types.ResumeData, ctx *Context) string {
	if data == nil || len(data.Experiences) == 0 {
		return ""
	}
	content := GenerateExperienceContent(data.Experiences, ctx)
	body := FormatExperienceItems(content, ctx.Layout(), ctx.FontSize())
	return WrapSection(ResolveHeader(data, types.SectionExperience, ctx), body, ctx.FontSize())
}

// RenderInternships renders the internships section.
func RenderInternships(data *types.ResumeData, ctx *Context) string {
	if data == nil || len(data.Internships) == 0 {
		return ""
	}
	content := GenerateInternshipsContent(data.Internships, ctx)
	body := FormatExperienceItems(content, ctx.Layout(), ctx.FontSize())
	return WrapSection(ResolveHeader(data, types.SectionInternships, ctx), body, ctx.FontSize())
}

// RenderEducation renders the education section.
func RenderEducation(data *types.ResumeData, ctx *Context) string {
	if data == nil || len(data.Education) == 0 {
		return ""
	}
	content := GenerateEducationContent(data.Education, ctx)
	body := FormatEducationItems(content, ctx.Layout(), ctx.FontSize())
	return WrapSection(ResolveHeader(data, types.SectionEducation, ctx), body, ctx.FontSize())
}

// RenderVolunteering renders the volunteering section.
func RenderVolunteering(data *types.ResumeData, ctx *Context) string {
	if data == nil || len(data.Volunteering) == 0 {
		return ""
	}
	content := GenerateVolunteeringContent(data.Volunteering, ctx)
	body := FormatExperienceItems(content, ctx.Layout(), ctx.FontSize())
	return WrapSection(ResolveHeader(data, types.SectionVolunteering, ctx), body, ctx.FontSize())
}

// RenderProjects renders the projects section.
func RenderProjects(data *types.ResumeData, ctx *Context) string {
	if data == nil || len(data.Projects) == 0 {
		return ""
	}
	content := GenerateProjectsContent(data.Projects)
	if len(content) == 0 {
		return ""
	}
	body := FormatProjectsItems(content, ctx.Layout())
	return WrapSection(ResolveHeader(data, types.SectionProjects, ctx), body, ctx.FontSize())
}

// itemsConfig is the spacing used for one-line items such as skills and languages.
var itemsConfig = SectionsConfig{Spacing: SpacingBlock, ItemSpacing: typst.ItemsSpacing}

// RenderSkills renders structured skills, falling back to the legacy technicalSkills text.
func RenderSkills(data *types.ResumeData, ctx *Context) string {
	if data == nil {
		return ""
	}
	header := ResolveHeader(data, types.SectionSkills, ctx)

	if len(data.Skills) > 0 {
		content := GenerateSkillsContent(data.Skills)
		if len(content) == 0 {
			return ""
		}
		return WrapSection(header, FormatSectionItems(contents(content), itemsConfig), ctx.FontSize())
	}

	return WrapSection(header, typst.EscapeContentText(data.TechnicalSkills), ctx.FontSize())
}

// RenderLanguages renders the languages section.
func RenderLanguages(data *types.ResumeData, ctx *Context) string {
	if data == nil || len(data.Languages) == 0 {
		return ""
	}
	content := GenerateLanguagesContent(data.Languages, ctx)
	if len(content) == 0 {
		return ""
	}
	body := FormatSectionItems(contents(content), itemsConfig)
	return WrapSection(ResolveHeader(data, types.SectionLanguages, ctx), body, ctx.FontSize())
}

// RenderContactInfo renders email, phone and location under the personal information header.
func RenderContactInfo(data *types.ResumeData, ctx *Context) string {
	content := GenerateContactContent(data)
	if len(content) == 0 {
		return ""
	}
	body := FormatSimpleItems(content, ctx.Layout())
	return WrapSection(ResolveHeader(data, types.SectionPersonalInfo, ctx), body, ctx.FontSize())
}

// RenderSocialLinks renders social links. Horizontal links placed in the header are
// returned bare, without a section header.
func RenderSocialLinks(data *types.ResumeData, ctx *Context) string {
	content := GenerateSocialLinksContent(data)
	if len(content) == 0 {
		return ""
	}
	cfg := ctx.Layout().SocialLinks
	body := FormatSocialLinks(content, cfg)

	if cfg.Placement == LinksInHeader && cfg.Orientation == OrientationHorizontal {
		return body
	}
	return WrapSection(ResolveHeader(data, types.SectionSocialLinks, ctx), body, ctx.FontSize())
}

// RenderProfile renders the summary paragraph.
func RenderProfile(data *types.ResumeData, ctx *Context) string {
	if data == nil || isBlank(data.Summary) {
		return ""
	}
	return WrapSection(ResolveHeader(data, types.SectionProfile, ctx), typst.EscapeContentText(data.Summary), ctx.FontSize())
}

// RenderCertificates renders the certificates section.
func RenderCertificates(data *types.ResumeData, ctx *Context) string {
	if data == nil || len(data.Certificates) == 0 {
		return ""
	}
	content := GenerateCertificatesContent(data.Certificates, ctx)
	if len(content) == 0 {
		return ""
	}
	body := FormatCertificatesItems(content, ctx.Layout(), ctx.FontSize())
	return WrapSection(ResolveHeader(data, types.SectionCertificates, ctx), body, ctx.FontSize())
}

// SectionRenderers returns every section renderer keyed by name.
func SectionRenderers() map[string]SectionRenderer {
	return map[string]SectionRenderer{
		RendererExperience:   RenderExperience,
		RendererInternships:  RenderInternships,
		RendererEducation:    RenderEducation,
		RendererVolunteering: RenderVolunteering,
		RendererProjects:     RenderProjects,
		RendererSkills:       RenderSkills,
		RendererLanguages:    RenderLanguages,
		RendererContactInfo:  RenderContactInfo,
		RendererSocialLinks:  RenderSocialLinks,
		RendererProfile:      RenderProfile,
		RendererCertificates: RenderCertificates,
	}
}
