package aggregator

import (
	"fmt"
	"strings"
)

// TerminalFS is the virtual file-system document consumed by the terminal_x
// theme's front end. Content rows become named text blobs under /home/user.
type TerminalFS struct {
	User       string         `json:"user"`
	Hostname   string         `json:"hostname"`
	BootConfig map[string]any `json:"boot_config"`
	FileSystem map[string]any `json:"file_system"`
	RawData    TerminalRaw    `json:"raw_data"`
}

// TerminalRaw feeds the theme's rich formatters (cards, bars) that need
// structured data rather than rendered text.
type TerminalRaw struct {
	Skills      []map[string]string `json:"skills"`
	Projects    []map[string]string `json:"projects"`
	Experiences []map[string]string `json:"experience"`
}

func defaultBootConfig() map[string]any {
	return map[string]any{
		"show_boot_sequence": true,
		"matrix_effect":      false,
		"enable_scanlines":   true,
		"enabled_commands": []string{
			"help", "ls", "cd", "cat", "whoami",
			"skills", "projects", "experience", "contact", "links",
		},
	}
}

func buildTerminalFS(pc *PortfolioContext) *TerminalFS {
	fs := &TerminalFS{
		User:       terminalUser(pc.Profile.Name),
		Hostname:   "portfolio",
		BootConfig: pc.Settings.GetThemeConfig(),
	}

	if fs.BootConfig == nil {
		fs.BootConfig = defaultBootConfig()
	}

	about := pc.Profile.AboutText
	if about == "" {
		about = "No description available."
	}

	phone := pc.Contact.Phone
	if phone == "" {
		phone = "N/A"
	}

	links := make([]string, 0, len(pc.SocialLinks))
	for _, link := range pc.SocialLinks {
		links = append(links, fmt.Sprintf("%s: %s", link.Platform, link.URL))
	}

	skills := map[string]any{}

	for _, skill := range pc.Skills {
		description := skill.Description
		if description == "" {
			description = "No details."
		}

		skills[skill.Name] = fmt.Sprintf("Level: %s\n---\n%s", skill.Category, description)
	}

	projects := map[string]any{}

	for _, project := range pc.Projects {
		url := project.URL
		if url == "" {
			url = "N/A"
		}

		projects[fileName(project.Title)+".txt"] = fmt.Sprintf(
			"Title: %s\nCategory: %s\nURL: %s\n---\n%s",
			project.Title, project.Category, url, project.Description,
		)
	}

	experiences := map[string]any{}

	for _, exp := range pc.Experiences {
		experiences[fileName(exp.Company)+".log"] = fmt.Sprintf(
			"[%s]\nRole: %s\nCompany: %s\n---\n%s",
			exp.Timeframe, exp.Role, exp.Company, exp.Description,
		)
	}

	educations := map[string]any{}

	for _, edu := range pc.Educations {
		educations[fileName(edu.Institution)+".txt"] = fmt.Sprintf(
			"[%s]\nDegree: %s\nInstitution: %s\n---\n%s",
			edu.Timeframe, edu.Degree, edu.Institution, edu.Description,
		)
	}

	custom := map[string]any{}

	for _, section := range pc.CustomSections {
		var doc strings.Builder

		fmt.Fprintf(&doc, "# %s\n", section.Title)

		for _, item := range section.Items {
			fmt.Fprintf(&doc, "\n## %s\n%s\n%s\nLink: %s\n",
				item.Title, item.Subtitle, item.Description, item.Link)
		}

		custom[fileName(section.Title)+".md"] = doc.String()
	}

	fs.FileSystem = map[string]any{
		"home": map[string]any{
			"user": map[string]any{
				"about.txt": about,
				"contact.txt": fmt.Sprintf("Email: %s\nPhone: %s\nHeading: %s",
					pc.Contact.Email, phone, pc.Contact.Heading),
				"links.txt":  strings.Join(links, "\n"),
				"skills":     skills,
				"projects":   projects,
				"experience": experiences,
				"education":  educations,
				"custom":     custom,
			},
		},
	}

	for _, skill := range pc.Skills {
		fs.RawData.Skills = append(fs.RawData.Skills, map[string]string{
			"name":        skill.Name,
			"category":    skill.Category,
			"description": skill.Description,
		})
	}

	for _, project := range pc.Projects {
		fs.RawData.Projects = append(fs.RawData.Projects, map[string]string{
			"title":       project.Title,
			"category":    project.Category,
			"description": project.Description,
			"url":         project.URL,
		})
	}

	for _, exp := range pc.Experiences {
		fs.RawData.Experiences = append(fs.RawData.Experiences, map[string]string{
			"company":     exp.Company,
			"position":    exp.Role,
			"timeframe":   exp.Timeframe,
			"description": exp.Description,
		})
	}

	return fs
}

func terminalUser(name string) string {
	user := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	if user == "" {
		return "guest"
	}

	return user
}

func fileName(title string) string {
	name := strings.ToLower(strings.ReplaceAll(title, " ", "_"))
	return strings.ReplaceAll(name, "'", "")
}
