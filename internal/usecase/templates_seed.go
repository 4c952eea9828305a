package usecase

import "go-posting-workflow/internal/domain"

// Pre-built templates shipped with the system. Immutable seed data: they are
// listed alongside user templates but never persisted or deleted.
var preBuiltTemplates = []domain.Template{
	{
		ID:          "prebuilt-software-engineer",
		Name:        "Software Engineer",
		Category:    "Engineering",
		Description: "General-purpose software engineering role",
		IsPreBuilt:  true,
		Data: domain.PostingPatch{
			Title:          strPtr("Software Engineer"),
			EmploymentType: employmentPtr(domain.EmploymentFullTime),
			RemoteType:     remotePtr(domain.RemoteHybrid),
			Responsibilities: listPtr(
				"Design, build and maintain backend services",
				"Review code and mentor junior engineers",
				"Collaborate with product on requirements",
			),
			Requirements: listPtr(
				"3+ years of professional software development",
				"Solid grasp of data structures and API design",
			),
			Skills:       listPtr("Go", "PostgreSQL", "Docker", "REST APIs"),
			SalaryPeriod: periodPtr(domain.SalaryPerYear),
		},
	},
	{
		ID:          "prebuilt-account-executive",
		Name:        "Account Executive",
		Category:    "Sales",
		Description: "Quota-carrying sales role",
		IsPreBuilt:  true,
		Data: domain.PostingPatch{
			Title:          strPtr("Account Executive"),
			EmploymentType: employmentPtr(domain.EmploymentFullTime),
			RemoteType:     remotePtr(domain.RemoteFull),
			Responsibilities: listPtr(
				"Own the full sales cycle from prospect to close",
				"Maintain an accurate pipeline and forecast",
			),
			Requirements: listPtr(
				"2+ years of B2B sales experience",
				"Track record of meeting or exceeding quota",
			),
			Skills:   listPtr("Prospecting", "Negotiation", "CRM", "Forecasting"),
			Benefits: listPtr("Commission plan", "Health insurance"),
		},
	},
	{
		ID:          "prebuilt-marketing-intern",
		Name:        "Marketing Intern",
		Category:    "Marketing",
		Description: "Entry-level marketing internship",
		IsPreBuilt:  true,
		Data: domain.PostingPatch{
			Title:          strPtr("Marketing Intern"),
			EmploymentType: employmentPtr(domain.EmploymentInternship),
			RemoteType:     remotePtr(domain.RemoteOnsite),
			SeniorityLevel: seniorityPtr(domain.SeniorityEntry),
			Responsibilities: listPtr(
				"Support campaign planning and reporting",
				"Draft social media content",
			),
			Requirements: listPtr(
				"Currently enrolled in a related degree program",
			),
			Skills:       listPtr("Copywriting", "Social media", "Analytics"),
			SalaryPeriod: periodPtr(domain.SalaryPerMonth),
		},
	},
}

func strPtr(s string) *string { return &s }
func listPtr(items ...string) *[]string { return &items }
func employmentPtr(t domain.EmploymentType) *domain.EmploymentType { return &t }
func remotePtr(t domain.RemoteType) *domain.RemoteType { return &t }
func seniorityPtr(l domain.SeniorityLevel) *domain.SeniorityLevel { return &l }
func periodPtr(p domain.SalaryPeriod) *domain.SalaryPeriod { return &p }
