package model

import (
	"github.com/google/uuid"
)

// DefaultProfile returns the profile a fresh tenant starts with. The same
// values back the column defaults in the migrations.
func DefaultProfile(tenantID uuid.UUID) *Profile {
	return &Profile{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     "Your Name",
		Greeting: "Hi, I am",
		HeroBio:  "A web designer & backend developer.",
	}
}

func DefaultContactInfo(tenantID uuid.UUID) *ContactInfo {
	return &ContactInfo{
		ID:       uuid.New(),
		TenantID: tenantID,
		Heading:  "I love to hear from you. Whether you have a question or just want to chat about design, tech & art, shoot me a message.",
	}
}

func DefaultSiteSettings(tenantID uuid.UUID) *SiteSettings {
	return &SiteSettings{
		ID:       uuid.New(),
		TenantID: tenantID,

		PrimaryColor:       "#eabe7c",
		SecondaryColor:     "#23967f",
		BackgroundColor:    "#0a0a0a",
		HeroAboutTextColor: "#ffffff",
		GeneralTextColor:   "#a0a0a0",

		NameFontSize:           11.0,
		GreetingFontSize:       2.0,
		NameFontSizeMobile:     4.0,
		GreetingFontSizeMobile: 1.5,

		HeadingFont: "DM Serif Display",
		BodyFont:    "Public Sans",

		SectionHeadingColor:          "#ffffff",
		SectionHeadingFontSize:       1.6,
		SectionHeadingFontSizeMobile: 1.4,

		ShowIntroSection:   true,
		ShowAboutSection:   true,
		ShowSkillsSection:  true,
		ShowWorksSection:   true,
		ShowContactSection: true,

		BackgroundStyle: "circles",
		CircleColor:     "#6366f1",

		ActiveTheme: ThemeClassic,
		ButtonStyle: "rounded",
	}
}

// DefaultSections are the system sections seeded at registration, in their
// default order.
func DefaultSections(tenantID uuid.UUID) []CustomSection {
	seed := []struct {
		title string
		slug  string
		icon  string
	}{
		{"Profile", "profile", "fas fa-user"},
		{"About", "about", "fas fa-info-circle"},
		{"Education", "education", "fas fa-graduation-cap"},
		{"Appearance", "appearance", "fas fa-palette"},
		{"Expertise", "expertise", "fas fa-star"},
		{"Experience", "experience", "fas fa-briefcase"},
		{"Skills", "skills", "fas fa-code"},
		{"Projects", "projects", "fas fa-folder-open"},
		{"Contact & Social", "social", "fas fa-envelope"},
	}

	sections := make([]CustomSection, 0, len(seed))

	for i, s := range seed {
		sections = append(sections, CustomSection{
			ID:        uuid.New(),
			TenantID:  tenantID,
			Title:     s.title,
			Slug:      s.slug,
			Icon:      s.icon,
			Position:  i + 1,
			IsVisible: true,
			IsSystem:  true,

			ShowImage:      true,
			ShowLinkButton: true,
			ButtonText:     "View Details",
			CardLayout:     CardLayoutGrid,
		})
	}

	return sections
}
