package compliance

import (
	"github.com/sangkips/bizhub-api/internal/domain/enum"
)

// Document categories used to group slots in listings.
const (
	CategoryRegistration = "registration"
	CategoryTax          = "tax"
	CategoryLabour       = "labour"
	CategoryBanking      = "banking"
	CategoryIndustry     = "industry"
	CategoryCustom       = "custom"
)

// Template describes a document slot a business is expected to fill.
type Template struct {
	Slot        string `json:"slot"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

var baseTemplates = []Template{
	{
		Slot:        "cipc-registration",
		Name:        "CIPC Registration Certificate",
		Description: "Company registration documents issued by CIPC",
		Category:    CategoryRegistration,
	},
	{
		Slot:        "tax-clearance",
		Name:        "SARS Tax Compliance Status",
		Description: "Tax compliance status PIN or certificate from SARS",
		Category:    CategoryTax,
	},
	{
		Slot:        "bbbee-certificate",
		Name:        "B-BBEE Certificate",
		Description: "B-BBEE certificate or sworn affidavit",
		Category:    CategoryRegistration,
	},
	{
		Slot:        "coida-letter",
		Name:        "COIDA Letter of Good Standing",
		Description: "Compensation Fund letter of good standing",
		Category:    CategoryLabour,
	},
	{
		Slot:        "uif-registration",
		Name:        "UIF Registration",
		Description: "Unemployment Insurance Fund registration confirmation",
		Category:    CategoryLabour,
	},
	{
		Slot:        "bank-confirmation",
		Name:        "Bank Confirmation Letter",
		Description: "Letter from the bank confirming the business account",
		Category:    CategoryBanking,
	},
}

// industryTemplates holds the extra slots required per business type. Types
// without an entry only need the base set.
var industryTemplates = map[enum.BusinessType][]Template{
	enum.BusinessTypeConstruction: {
		{
			Slot:        "cidb-registration",
			Name:        "CIDB Registration",
			Description: "Construction Industry Development Board grading certificate",
			Category:    CategoryIndustry,
		},
		{
			Slot:        "health-safety-plan",
			Name:        "Health and Safety Plan",
			Description: "Site health and safety plan under the OHS Act",
			Category:    CategoryIndustry,
		},
	},
	enum.BusinessTypeFoodService: {
		{
			Slot:        "certificate-of-acceptability",
			Name:        "Certificate of Acceptability",
			Description: "Municipal certificate of acceptability for food premises",
			Category:    CategoryIndustry,
		},
	},
	enum.BusinessTypeTransport: {
		{
			Slot:        "operating-licence",
			Name:        "Operating Licence",
			Description: "Public transport operating licence or permit",
			Category:    CategoryIndustry,
		},
	},
	enum.BusinessTypeHealthcare: {
		{
			Slot:        "practice-number",
			Name:        "Practice Number Registration",
			Description: "BHF practice number and professional council registration",
			Category:    CategoryIndustry,
		},
	},
}

// RequiredFor returns the document templates a business of type bt must
// hold, base set first. The returned slice is a copy.
func RequiredFor(bt enum.BusinessType) []Template {
	extra := industryTemplates[bt]
	out := make([]Template, 0, len(baseTemplates)+len(extra))
	out = append(out, baseTemplates...)
	return append(out, extra...)
}

// Lookup finds the catalog template for slot among those required for bt.
func Lookup(bt enum.BusinessType, slot string) (Template, bool) {
	for _, t := range RequiredFor(bt) {
		if t.Slot == slot {
			return t, true
		}
	}
	return Template{}, false
}
