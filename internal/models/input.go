package models

// CitizenshipStatus is the applicant's citizenship standing.
type CitizenshipStatus string

const (
	CitizenshipKenyan          CitizenshipStatus = "kenyan_citizen"
	CitizenshipResident        CitizenshipStatus = "resident"
	CitizenshipForeignNational CitizenshipStatus = "foreign_national"
)

func (c CitizenshipStatus) Valid() bool {
	switch c {
	case CitizenshipKenyan, CitizenshipResident, CitizenshipForeignNational:
		return true
	}
	return false
}

// ApplicationType distinguishes first-time, renewal and replacement applications.
type ApplicationType string

const (
	ApplicationFirstTime   ApplicationType = "first_time"
	ApplicationRenewal     ApplicationType = "renewal"
	ApplicationReplacement ApplicationType = "replacement"
)

func (a ApplicationType) Valid() bool {
	switch a {
	case ApplicationFirstTime, ApplicationRenewal, ApplicationReplacement:
		return true
	}
	return false
}

type UrgencyLevel string

const (
	UrgencyNormal UrgencyLevel = "normal"
	UrgencyUrgent UrgencyLevel = "urgent"
)

func (u UrgencyLevel) Valid() bool {
	return u == UrgencyNormal || u == UrgencyUrgent
}

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSwahili Language = "sw"
)

func (l Language) Valid() bool {
	return l == LanguageEnglish || l == LanguageSwahili
}

type DeviceType string

const (
	DeviceMobile  DeviceType = "mobile"
	DeviceDesktop DeviceType = "desktop"
)

func (d DeviceType) Valid() bool {
	return d == DeviceMobile || d == DeviceDesktop
}

// UserProfile describes the applicant. Immutable once validated by the guardrail.
type UserProfile struct {
	County            string            `json:"county"`
	SubCounty         string            `json:"sub_county,omitempty"`
	Age               int               `json:"age"`
	CitizenshipStatus CitizenshipStatus `json:"citizenship_status"`
	ApplicationType   ApplicationType   `json:"application_type"`
}

// ServiceRequest names the government service being asked about.
type ServiceRequest struct {
	ServiceCategory string       `json:"service_category"`
	ServiceName     string       `json:"service_name"`
	UrgencyLevel    UrgencyLevel `json:"urgency_level"`
}

type SessionContext struct {
	LanguagePreference Language   `json:"language_preference"`
	DeviceType         DeviceType `json:"device_type"`
	Timestamp          string     `json:"timestamp"`
}

// AgentInput is the pipeline entry contract.
type AgentInput struct {
	UserProfile    UserProfile    `json:"user_profile"`
	ServiceRequest ServiceRequest `json:"service_request"`
	SessionContext SessionContext `json:"session_context"`
	// UserQuery is an optional free-text question or follow-up.
	UserQuery string `json:"user_query,omitempty"`
}

// SearchHint is one live-search result from the external lookup collaborator.
type SearchHint struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Source  string `json:"source"`
}
