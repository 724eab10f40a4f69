// Package migrate upgrades persisted resume documents to the current schema version
// before they reach the rendering pipeline.
package migrate

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// Step upgrades a document from one version to the next.
type Step struct {
	From  string
	To    string
	Name  string
	Apply func(data *types.ResumeData)
}

// Steps is the ordered upgrade chain.
var Steps = []Step{
	{
		From:  "v1",
		To:    "v2",
		Name:  "introduce-internships-and-trailing-sections",
		Apply: upgradeV1ToV2,
	},
}

// VersionError reports a document version with no upgrade path.
type VersionError struct {
	Version string
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("unsupported resume version %q (current is %s)", e.Version, types.CurrentVersion)
}

// NeedsUpgrade reports whether data is older than types.CurrentVersion.
func NeedsUpgrade(data *types.ResumeData) bool {
	return data != nil && version(data) != types.CurrentVersion
}

func version(data *types.ResumeData) string {
	if data.Version == "" {
		return "v1"
	}
	return data.Version
}

// Upgrade applies every step needed to bring data to types.CurrentVersion, in place,
// and returns the names of the applied steps.
func Upgrade(data *types.ResumeData) ([]string, error) {
	if data == nil {
		return nil, nil
	}

	var applied []string
	for version(data) != types.CurrentVersion {
		step, ok := stepFrom(version(data))
		if !ok {
			return applied, &VersionError{Version: data.Version}
		}
		step.Apply(data)
		data.Version = step.To
		applied = append(applied, step.Name)
	}
	return applied, nil
}

// UpgradeResume upgrades the document held by r.
func UpgradeResume(r *types.Resume) ([]string, error) {
	if r == nil {
		return nil, nil
	}
	applied, err := Upgrade(&r.Data)
	if err != nil {
		return applied, fmt.Errorf("resume %s: %w", r.ID, err)
	}
	return applied, nil
}

func stepFrom(version string) (Step, bool) {
	for _, s := range Steps {
		if s.From == version {
			return s, true
		}
	}
	return Step{}, false
}

// upgradeV1ToV2 inserts internships at rank 3 in an existing sectionOrder, shifting the
// sections that followed it, and ranks projects, languages and certificates last.
// A missing sectionOrder stays missing so templates apply their own default ranks.
// Section headers are left alone: sections without a custom header use the translated title.
func upgradeV1ToV2(data *types.ResumeData) {
	if order := data.SectionOrder; order != nil {
		if _, ok := order[types.SectionInternships]; !ok {
			order[types.SectionInternships] = 3
			shift := []struct {
				section  string
				from, to int
			}{
				{types.SectionSkills, 3, 4},
				{types.SectionVolunteering, 4, 5},
				{types.SectionSocialLinks, 5, 6},
				{types.SectionProjects, 6, 7},
				{types.SectionLanguages, 7, 8},
				{types.SectionCertificates, 8, 9},
			}
			for _, s := range shift {
				if rank, ok := order[s.section]; ok && rank == s.from {
					order[s.section] = s.to
				}
			}
		}
		setDefault(order, types.SectionProjects, 7)
		setDefault(order, types.SectionLanguages, 8)
		setDefault(order, types.SectionCertificates, 9)
	}

	if data.SectionPlacement == nil {
		data.SectionPlacement = types.DefaultSectionPlacement()
	} else {
		for _, section := range types.MovableSections {
			if _, ok := data.SectionPlacement[section]; !ok {
				data.SectionPlacement[section] = types.PlacementRight
			}
		}
	}

	if data.Internships == nil {
		data.Internships = []types.Experience{}
	}
	if data.Certificates == nil {
		data.Certificates = []types.Certificate{}
	}
}

func setDefault(order map[string]int, section string, rank int) {
	if _, ok := order[section]; !ok {
		order[section] = rank
	}
}

// CurrentVersion is the version every successful Upgrade leaves a document at.
const CurrentVersion = types.CurrentVersion
