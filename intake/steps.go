// Package intake implements the four-step "start your journey" form.
package intake

type Kind string

const (
	KindText     Kind = "text"
	KindEmail    Kind = "email"
	KindTel      Kind = "tel"
	KindDate     Kind = "date"
	KindTextarea Kind = "textarea"
	KindSelect   Kind = "select"
	KindRadio    Kind = "radio"
	KindCheckbox Kind = "checkbox"
	// KindBool is a yes/no radio pair.
	KindBool Kind = "bool"
)

const TotalSteps = 4

// Answer length limits, in characters.
const (
	MaxTextLength     = 200
	MaxTextareaLength = 1000
)

type Field struct {
	Name        string
	Label       string
	Kind        Kind
	Required    bool
	Placeholder string
	Options     []string
	// Group is the sub-heading the field is shown under, if any.
	Group string
}

// MaxLength is the longest answer the field accepts.
func (f Field) MaxLength() int {
	if f.Kind == KindTextarea {
		return MaxTextareaLength
	}
	return MaxTextLength
}

type Step struct {
	Number      int
	Title       string
	Description string
	Fields      []Field
}

var countries = []string{"United Kingdom", "Ireland", "United States", "Canada", "Australia", "Other"}

var steps = []Step{
	{
		Number:      1,
		Title:       "Personal Details",
		Description: "Let's start with your basic information. This helps us understand your background and ensures we can provide you with the most appropriate legal guidance.",
		Fields: []Field{
			{Name: "fullName", Label: "Full Name", Kind: KindText, Required: true, Placeholder: "Enter your full name"},
			{Name: "dateOfBirth", Label: "Date of Birth", Kind: KindDate, Required: true},
			{Name: "emailAddress", Label: "Email Address", Kind: KindEmail, Required: true, Placeholder: "your.email@example.com"},
			{Name: "mobileNumber", Label: "Mobile Number", Kind: KindTel, Required: true, Placeholder: "+44 7XXX XXXXXX"},
			{Name: "address", Label: "Address", Kind: KindTextarea, Required: true, Placeholder: "Enter your full address"},
			{Name: "city", Label: "City", Kind: KindText, Required: true, Placeholder: "City"},
			{Name: "countyState", Label: "County/State", Kind: KindText, Required: true, Placeholder: "County/State"},
			{Name: "postalCode", Label: "Postal Code", Kind: KindText, Required: true, Placeholder: "SW1A 1AA"},
			{Name: "country", Label: "Country", Kind: KindSelect, Required: true, Options: countries},
			{Name: "partnerFullName", Label: "Partner's Full Name", Kind: KindText, Placeholder: "Partner's full name", Group: "Partner Information (Optional)"},
			{Name: "partnerEmail", Label: "Partner's Email", Kind: KindEmail, Placeholder: "partner.email@example.com", Group: "Partner Information (Optional)"},
			{Name: "emergencyContactName", Label: "Emergency Contact Name", Kind: KindText, Required: true, Group: "Emergency Contact"},
			{Name: "emergencyContactPhone", Label: "Emergency Contact Phone", Kind: KindTel, Required: true, Group: "Emergency Contact"},
		},
	},
	{
		Number:      2,
		Title:       "Relationship Status",
		Description: "Understanding your relationship status helps us provide the most appropriate legal guidance for your situation.",
		Fields: []Field{
			{Name: "relationshipStatus", Label: "What is your current relationship status?", Kind: KindRadio, Required: true, Options: []string{
				"Single",
				"Married",
				"Civil Partnership",
				"In a relationship (not married)",
				"Divorced",
				"Widowed",
				"Prefer not to say",
			}},
			{Name: "partnerInvolved", Label: "Will your partner be involved in the surrogacy process?", Kind: KindBool},
		},
	},
	{
		Number:      3,
		Title:       "Surrogacy Details",
		Description: "Tell us about your surrogacy preferences and timeline to help us provide the most relevant guidance.",
		Fields: []Field{
			{Name: "surrogacyType", Label: "What type of surrogacy arrangement are you considering?", Kind: KindRadio, Required: true, Options: []string{
				"Traditional surrogacy (surrogate uses her own egg)",
				"Gestational surrogacy (using your egg/donor egg)",
				"Not sure yet - need guidance",
				"Prefer to discuss with legal advisor",
			}},
			{Name: "previousExperience", Label: "Do you have any previous experience with surrogacy?", Kind: KindRadio, Options: []string{
				"This is my first time considering surrogacy",
				"I have researched surrogacy but not proceeded before",
				"I have attempted surrogacy previously (unsuccessful)",
				"I have successfully had a child through surrogacy before",
			}},
			{Name: "timeframe", Label: "What is your preferred timeframe to begin the process?", Kind: KindRadio, Options: []string{
				"Immediately (within 1-2 months)",
				"Within 3-6 months",
				"Within 6-12 months",
				"More than 12 months",
				"Just exploring options for now",
			}},
		},
	},
	{
		Number:      4,
		Title:       "Legal & Final Details",
		Description: "Just a few final questions to ensure we can provide you with the most comprehensive legal support.",
		Fields: []Field{
			{Name: "legalRepresentation", Label: "Do you currently have legal representation for surrogacy matters?", Kind: KindRadio, Options: []string{
				"No, I need legal representation",
				"Yes, but looking for a second opinion",
				"Yes, but not satisfied with current representation",
				"Not sure if I need legal representation",
			}},
			{Name: "additionalInfo", Label: "Is there anything else you'd like us to know about your situation?", Kind: KindTextarea, Placeholder: "Please share any additional information that might help us understand your situation better..."},
			{Name: "agreeToTerms", Label: "I agree to the Terms and Conditions and Privacy Policy", Kind: KindCheckbox, Required: true},
		},
	},
}

// Steps returns the form steps in order.
func Steps() []Step {
	return steps
}

// StepAt returns step n (1-based).
func StepAt(n int) (Step, bool) {
	if n < 1 || n > len(steps) {
		return Step{}, false
	}
	return steps[n-1], true
}

// IsBool reports whether the field holds "true"/"false".
func (f Field) IsBool() bool {
	return f.Kind == KindBool || f.Kind == KindCheckbox
}
