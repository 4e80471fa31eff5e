package helper

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"msns_backend/internals/constants"
)

// custom validation tags
const (
	TagHHMM      = "hhmm"
	TagYMD       = "ymd"
	TagCNIC      = "cnic"
	TagHexColor6 = "hexcolor6"
	TagMobile    = "mobile"
	TagTimeAfter = "timeafter"
	TagUpload    = "uploadtype"
)

var (
	reHHMM   = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	reYMD    = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reCNIC   = regexp.MustCompile(`^\d{5}-\d{7}-\d$`)
	reHex    = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	reMobile = regexp.MustCompile(`^\+?[0-9-]{11,15}$`)
)

// Validator wraps validator.Validate with English messages keyed by the
// json field path.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	_en := en.New()
	uni := ut.New(_en, _en)
	trans, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(TagHHMM, matchString(reHHMM))
	_ = v.RegisterValidation(TagYMD, validateYMD)
	_ = v.RegisterValidation(TagCNIC, matchString(reCNIC))
	_ = v.RegisterValidation(TagHexColor6, matchString(reHex))
	_ = v.RegisterValidation(TagMobile, matchString(reMobile))
	_ = v.RegisterValidation(TagTimeAfter, validateTimeAfter)
	_ = v.RegisterValidation(TagUpload, matchString(constants.UploadContentType))

	out := &Validator{validate: v, trans: trans}
	out.registerCustomTranslations()
	return out
}

// Struct validates s and returns field errors, or nil when valid.
func (v *Validator) Struct(s any) map[string][]string {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string][]string{"_": {err.Error()}}
	}
	out := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		key := fieldPath(fe.Namespace())
		out[key] = append(out[key], fe.Translate(v.trans))
	}
	return out
}

// "CreateEventInput.reminders[0].value" → "reminders[0].value"
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func (v *Validator) registerCustomTranslations() {
	messages := map[string]string{
		TagHHMM:      "{0} must be a 24-hour time in HH:MM format",
		TagYMD:       "{0} must be a date in YYYY-MM-DD format",
		TagCNIC:      "{0} must match the format 12345-1234567-1",
		TagHexColor6: "{0} must be a hex color like #1A2B3C",
		TagMobile:    "{0} must be a phone number of 11 to 15 digits",
		TagTimeAfter: "{0} must be after {1}",
		TagUpload:    "{0} must be an image, PDF or Word document type",
	}
	for tag, msg := range messages {
		tag, msg := tag, msg
		_ = v.validate.RegisterTranslation(tag, v.trans,
			func(t ut.Translator) error { return t.Add(tag, msg, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				s, err := t.T(tag, fe.Field(), lowerFirst(fe.Param()))
				if err != nil {
					return fe.Error()
				}
				return s
			},
		)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

/* ===============================
   Custom validators
=================================*/

func matchString(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

func validateYMD(fl validator.FieldLevel) bool {
	_, ok := ParseYMD(fl.Field().String())
	return ok
}

// validateTimeAfter compares two HH:MM strings; the param names the sibling
// field holding the start time. A missing sibling is left to "required".
func validateTimeAfter(fl validator.FieldLevel) bool {
	other, kind, _, found := fl.GetStructFieldOK2()
	if !found || kind != reflect.String {
		return true
	}
	start, ok1 := MinutesOfDay(other.String())
	end, ok2 := MinutesOfDay(fl.Field().String())
	if !ok1 || !ok2 {
		return true
	}
	return end > start
}

/* ===============================
   Date / time strings
=================================*/

const DateLayout = "2006-01-02"

// ParseYMD accepts strict YYYY-MM-DD strings that name a real calendar day.
func ParseYMD(s string) (time.Time, bool) {
	if !reYMD.MatchString(s) {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// MinutesOfDay converts "HH:MM" to minutes past midnight.
func MinutesOfDay(s string) (int, bool) {
	if !reHHMM.MatchString(s) {
		return 0, false
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	return h*60 + m, true
}

func IsHHMM(s string) bool     { return reHHMM.MatchString(s) }
func IsHexColor(s string) bool { return reHex.MatchString(s) }
