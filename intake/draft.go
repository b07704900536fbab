package intake

import (
	"encoding/json"
	"fmt"
	"math"
	"net/mail"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/westbourne-advisory/website/models"
)

const dateLayout = "2006-01-02"

// Draft is an in-progress application. Answers are keyed by field name;
// boolean fields hold "true" or "false".
type Draft struct {
	Step    int               `json:"step"`
	Answers map[string]string `json:"answers"`
}

func NewDraft() *Draft {
	return &Draft{Step: 1, Answers: map[string]string{}}
}

// FieldErrors maps a field name to a message shown next to it.
type FieldErrors map[string]string

func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}

func (fe FieldErrors) Error() string {
	names := make([]string, 0, len(fe))
	for name := range fe {
		names = append(names, name)
	}
	slices.Sort(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+fe[name])
	}
	return strings.Join(parts, "; ")
}

func (d *Draft) Value(name string) string {
	return d.Answers[name]
}

func (d *Draft) Bool(name string) bool {
	b, _ := strconv.ParseBool(d.Answers[name])
	return b
}

// Apply copies the fields of step from form, leaving other steps untouched.
func (d *Draft) Apply(step int, form url.Values) {
	s, ok := StepAt(step)
	if !ok {
		return
	}
	if d.Answers == nil {
		d.Answers = map[string]string{}
	}

	for _, f := range s.Fields {
		raw := strings.TrimSpace(form.Get(f.Name))
		switch f.Kind {
		case KindCheckbox:
			d.Answers[f.Name] = strconv.FormatBool(raw != "" && raw != "false")
		case KindBool:
			d.Answers[f.Name] = strconv.FormatBool(raw == "yes" || raw == "true")
		default:
			d.Answers[f.Name] = raw
		}
	}
}

// Validate checks the answers of step.
func (d *Draft) Validate(step int) FieldErrors {
	s, ok := StepAt(step)
	if !ok {
		return FieldErrors{"step": fmt.Sprintf("step must be between 1 and %d", TotalSteps)}
	}

	fe := d.CheckLengths(step)
	for _, f := range s.Fields {
		v := d.Value(f.Name)
		if _, tooLong := fe[f.Name]; tooLong {
			continue
		}

		if f.Kind == KindCheckbox {
			if f.Required && !d.Bool(f.Name) {
				fe[f.Name] = "You must accept to continue"
			}
			continue
		}
		if f.IsBool() {
			continue
		}

		if v == "" {
			if f.Required {
				fe[f.Name] = f.Label + " is required"
			}
			continue
		}

		switch f.Kind {
		case KindEmail:
			if _, err := mail.ParseAddress(v); err != nil {
				fe[f.Name] = "Enter a valid email address"
			}
		case KindDate:
			t, err := time.Parse(dateLayout, v)
			if err != nil {
				fe[f.Name] = "Enter a valid date"
			} else if t.After(time.Now()) {
				fe[f.Name] = "Date cannot be in the future"
			}
		case KindSelect, KindRadio:
			if !slices.Contains(f.Options, v) {
				fe[f.Name] = "Choose one of the listed options"
			}
		}
	}
	return fe
}

// CheckLengths reports the answers of step that are longer than their field allows.
func (d *Draft) CheckLengths(step int) FieldErrors {
	fe := FieldErrors{}
	s, ok := StepAt(step)
	if !ok {
		return fe
	}
	for _, f := range s.Fields {
		if utf8.RuneCountInString(d.Value(f.Name)) > f.MaxLength() {
			fe[f.Name] = fmt.Sprintf("Use at most %d characters", f.MaxLength())
		}
	}
	return fe
}

// LongestAnswer names the field of step holding the most bytes.
func (d *Draft) LongestAnswer(step int) string {
	s, ok := StepAt(step)
	if !ok {
		return ""
	}
	longest, size := "", -1
	for _, f := range s.Fields {
		if n := len(d.Value(f.Name)); n > size {
			longest, size = f.Name, n
		}
	}
	return longest
}

// ValidateAll returns the first step with errors, or 0 and nil.
func (d *Draft) ValidateAll() (int, FieldErrors) {
	for _, s := range steps {
		if fe := d.Validate(s.Number); !fe.Empty() {
			return s.Number, fe
		}
	}
	return 0, nil
}

// Next advances when the current step is valid; it never passes the last step.
func (d *Draft) Next() FieldErrors {
	d.clampStep()
	if fe := d.Validate(d.Step); !fe.Empty() {
		return fe
	}
	if d.Step < TotalSteps {
		d.Step++
	}
	return nil
}

// Prev moves back one step, never below the first.
func (d *Draft) Prev() {
	d.clampStep()
	if d.Step > 1 {
		d.Step--
	}
}

// Progress is the completed percentage shown above the form.
func (d *Draft) Progress() int {
	d.clampStep()
	return int(math.Round(float64(d.Step) / TotalSteps * 100))
}

func (d *Draft) IsLastStep() bool {
	return d.Step >= TotalSteps
}

func (d *Draft) clampStep() {
	if d.Step < 1 {
		d.Step = 1
	}
	if d.Step > TotalSteps {
		d.Step = TotalSteps
	}
}

// Application converts a complete draft into the persisted record.
func (d *Draft) Application(now time.Time) (*models.IntakeApplication, error) {
	answers, err := json.Marshal(d.Answers)
	if err != nil {
		return nil, fmt.Errorf("marshal answers: %w", err)
	}

	return &models.IntakeApplication{
		ID:        uuid.New(),
		FullName:  d.Value("fullName"),
		Email:     d.Value("emailAddress"),
		Phone:     d.Value("mobileNumber"),
		Country:   d.Value("country"),
		Timeframe: d.Value("timeframe"),
		Answers:   datatypes.JSON(answers),
		Status:    models.IntakeStatusNew,
		CreatedAt: now.UTC(),
	}, nil
}
