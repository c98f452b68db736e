package rules

import "github.com/Dadukaka/MFIPPA-Tracker/internal/ir"

// Rule ids referenced outside the table (report recommendations).
const (
	PersonalInformation = "personal_information"
	CollectionAuthority = "collection_authority"
	UseLimitation       = "use_limitation"
	Disclosure          = "disclosure"
	Retention           = "retention"
	AccessRequest       = "access_request"
	Exemptions          = "exemptions"
)

// Builtin returns the MFIPPA rule table (R.S.O. 1990, c. M.56).
// The returned slice is a fresh copy.
func Builtin() []Definition {
	return []Definition{
		{
			ID:       PersonalInformation,
			Name:     "Personal Information Detection",
			Citation: "Section 2(1)",
			Severity: ir.SeverityElevated,
			Patterns: []string{
				// phone, email, SIN-like and 9-digit identifiers
				`\b\d{3}-\d{3}-\d{4}\b`,
				`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`,
				`\b\d{3}-\d{2}-\d{4}\b`,
				`\b\d{9}\b`,
				`\bdate of birth\b`,
				`\bDOB\b`,
				`\bmedical\b`,
				`\bhealth\b`,
				`\bcriminal\b`,
				`\bemployment history\b`,
				`\bfinancial\b`,
				`\bincome\b`,
				`\brace\b`,
				`\bethnic origin\b`,
				`\bsexual orientation\b`,
				`\breligion\b`,
			},
			Description: "Personal information includes recorded information about an identifiable individual",
		},
		{
			ID:       CollectionAuthority,
			Name:     "Collection Authority & Notice",
			Citation: "Section 28, 29",
			Severity: ir.SeverityInformational,
			Patterns: []string{
				`\bcollected\b`,
				`\bcollecting\b`,
				`\bauthorized by\b`,
				`\blegal authority\b`,
				`\bstatute\b`,
				`\blaw enforcement\b`,
				`\bnotice\b`,
				`\binformed\b`,
			},
			Description: "Collection must be authorized and individuals must be notified",
		},
		{
			ID:       UseLimitation,
			Name:     "Use Limitation",
			Citation: "Section 31",
			Severity: ir.SeverityInformational,
			Patterns: []string{
				`\buse\b`,
				`\bused for\b`,
				`\bpurpose\b`,
				`\bconsent\b`,
				`\bagreed\b`,
				`\bauthorization\b`,
			},
			Description: "Personal information must be used only for the purpose collected or with consent",
		},
		{
			ID:       Disclosure,
			Name:     "Disclosure Rules",
			Citation: "Section 32",
			Severity: ir.SeverityElevated,
			Patterns: []string{
				`\bdisclose\b`,
				`\bdisclosed\b`,
				`\bshare\b`,
				`\bshared\b`,
				`\btransfer\b`,
				`\bprovide to\b`,
				`\bsent to\b`,
				`\bthird party\b`,
			},
			Description: "Disclosure of personal information is restricted under Section 32",
		},
		{
			ID:       Retention,
			Name:     "Retention Requirements",
			Citation: "Section 30",
			Severity: ir.SeverityInformational,
			Patterns: []string{
				`\bretain\b`,
				`\bretention\b`,
				`\bdelete\b`,
				`\bdestroy\b`,
				`\bdispose\b`,
				`\bremove\b`,
			},
			Description: "Personal information must be retained for at least one year after use",
		},
		{
			ID:       AccessRequest,
			Name:     "Access Request Procedures",
			Citation: "Section 17, 19",
			Severity: ir.SeverityInformational,
			Patterns: []string{
				`\baccess request\b`,
				`\bFOI request\b`,
				`\brequest for information\b`,
				`\b30 days\b`,
				`\bthirty days\b`,
			},
			Description: "Access requests must be processed within 30 days",
		},
		{
			ID:       Exemptions,
			Name:     "Exemptions",
			Citation: "Sections 6-15",
			Severity: ir.SeverityInformational,
			Patterns: []string{
				`\blaw enforcement\b`,
				`\bsolicitor-client\b`,
				`\bprivilege\b`,
				`\bconfidential\b`,
				`\btrade secret\b`,
				`\bcommercial\b`,
			},
			Description: "Certain exemptions apply to disclosure",
		},
	}
}

// defaultRegistry is compiled at package init so a broken built-in table
// stops the process before it serves anything.
var defaultRegistry = MustNewRegistry(Builtin(), Options{})

// Default returns the registry compiled from Builtin with default options.
func Default() *Registry { return defaultRegistry }
