// Package types provides type definitions for structured data used throughout the resume wizard.
package types

import "time"

// ResumeDocument is the root aggregate authored through the wizard.
// JSON names are camelCase so snapshots match what the browser wizard stores.
type ResumeDocument struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
	TemplateID   string    `json:"templateId"`
	IsPublic     bool      `json:"isPublic"`

	PersonalInfo PersonalInfo `json:"personalInfo"`
	Experience   []Experience `json:"experience"`
	Education    []Education  `json:"education"`
	Skills       []Skill      `json:"skills"`

	Projects           []Project           `json:"projects,omitempty"`
	Certifications     []Certification     `json:"certifications,omitempty"`
	Languages          []Language          `json:"languages,omitempty"`
	References         []Reference         `json:"references,omitempty"`
	AdditionalSections []AdditionalSection `json:"additionalSections,omitempty"`
}

// PersonalInfo holds contact details. FirstName, LastName, Email and Phone are required.
type PersonalInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	Address        string `json:"address,omitempty"`
	City           string `json:"city,omitempty"`
	State          string `json:"state,omitempty"`
	ZipCode        string `json:"zipCode,omitempty"`
	Country        string `json:"country,omitempty"`
	Website        string `json:"website,omitempty"`
	LinkedIn       string `json:"linkedin,omitempty"`
	GitHub         string `json:"github,omitempty"`
	JobTitle       string `json:"jobTitle,omitempty"`
	Summary        string `json:"summary,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// FullName joins first and last name.
func (p PersonalInfo) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// Experience is a single work history entry.
// When Current is true EndDate is ignored; otherwise EndDate is required.
type Experience struct {
	ID           string   `json:"id"`
	Company      string   `json:"company"`
	JobTitle     string   `json:"jobTitle"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate,omitempty"`
	Current      bool     `json:"current"`
	Description  string   `json:"description"`
	Achievements []string `json:"achievements"`
	Keywords     []string `json:"keywords,omitempty"`
}

// Education follows the same start/end/current rule as Experience.
type Education struct {
	ID           string   `json:"id"`
	Institution  string   `json:"institution"`
	Degree       string   `json:"degree"`
	Field        string   `json:"field"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate,omitempty"`
	Current      bool     `json:"current"`
	Description  string   `json:"description,omitempty"`
	GPA          string   `json:"gpa,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Skill groups skill names under a category. Names are unique within the category.
type Skill struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

// Project is a portfolio entry. Dates are optional.
type Project struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	StartDate    string   `json:"startDate,omitempty"`
	EndDate      string   `json:"endDate,omitempty"`
	Current      bool     `json:"current,omitempty"`
	URL          string   `json:"url,omitempty"`
	Technologies []string `json:"technologies"`
	Achievements []string `json:"achievements,omitempty"`
}

// Certification is an earned credential.
type Certification struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Issuer      string `json:"issuer"`
	Date        string `json:"date"`
	Expiry      string `json:"expiry,omitempty"`
	URL         string `json:"url,omitempty"`
	Description string `json:"description,omitempty"`
}

// Proficiency levels for spoken languages.
const (
	ProficiencyNative       = "Native"
	ProficiencyFluent       = "Fluent"
	ProficiencyProficient   = "Proficient"
	ProficiencyIntermediate = "Intermediate"
	ProficiencyBasic        = "Basic"
)

// Proficiencies lists the accepted proficiency values in display order.
var Proficiencies = []string{
	ProficiencyNative,
	ProficiencyFluent,
	ProficiencyProficient,
	ProficiencyIntermediate,
	ProficiencyBasic,
}

// Language is a spoken language with a proficiency level.
type Language struct {
	ID          string `json:"id"`
	Language    string `json:"language"`
	Proficiency string `json:"proficiency"`
}

// Reference is a professional reference.
type Reference struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Company      string `json:"company"`
	Position     string `json:"position"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

// AdditionalSection is a free-form titled section.
type AdditionalSection struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}
