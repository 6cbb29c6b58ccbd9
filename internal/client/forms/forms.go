// Package forms holds the typed state of the client's input forms and their
// validation. Validate never performs I/O: it maps field values to an error
// map keyed by the field's JSON name, empty when the form is valid.
package forms

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	MsgNameRequired     = "Name is required."
	MsgEmailRequired    = "Email is required."
	MsgEmailInvalid     = "Invalid email address."
	MsgPasswordRequired = "Password is required."
	MsgPasswordWeak     = "Password must be at least 8 characters long and contain letters and numbers."
	MsgConfirmRequired  = "Password confirmation is required."
	MsgPasswordMismatch = "The passwords do not match."
	MsgLocationRequired = "Location is required."
	MsgRiskRange        = "Risk Level must be between 1 and 100."
	MsgDateInvalid      = "Last checked must be a date in YYYY-MM-DD form."
)

const DateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`^\S+@\S+$`)

type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f LoginForm) Validate() map[string]string {
	return toMap(validation.ValidateStruct(&f,
		validation.Field(&f.Email, emailRules()...),
		validation.Field(&f.Password, validation.Required.Error(MsgPasswordRequired)),
	))
}

type RegisterForm struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (f RegisterForm) Validate() map[string]string {
	return toMap(validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required.Error(MsgNameRequired)),
		validation.Field(&f.Email, emailRules()...),
		validation.Field(&f.Password,
			validation.Required.Error(MsgPasswordRequired),
			validation.By(strongPassword),
		),
		validation.Field(&f.ConfirmPassword,
			validation.Required.Error(MsgConfirmRequired),
			validation.By(equals(f.Password, MsgPasswordMismatch)),
		),
	))
}

// DestinationForm is the add/edit form of a tracked destination.
// LastChecked is optional.
type DestinationForm struct {
	Location    string `json:"location"`
	RiskLevel   int    `json:"riskLevel"`
	LastChecked string `json:"lastChecked"`
}

func (f DestinationForm) Validate() map[string]string {
	return toMap(validation.ValidateStruct(&f,
		validation.Field(&f.Location, validation.Required.Error(MsgLocationRequired)),
		validation.Field(&f.RiskLevel,
			validation.Required.Error(MsgRiskRange),
			validation.Min(1).Error(MsgRiskRange),
			validation.Max(100).Error(MsgRiskRange),
		),
		validation.Field(&f.LastChecked, validation.Date(DateLayout).Error(MsgDateInvalid)),
	))
}

func emailRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error(MsgEmailRequired),
		validation.Match(emailPattern).Error(MsgEmailInvalid),
	}
}

// strongPassword accepts 8 or more ASCII letters and digits with at least
// one of each.
func strongPassword(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	var letter, digit bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			return errors.New(MsgPasswordWeak)
		}
	}
	if len(s) < 8 || !letter || !digit {
		return errors.New(MsgPasswordWeak)
	}
	return nil
}

func equals(want, msg string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != want {
			return errors.New(msg)
		}
		return nil
	}
}

func toMap(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for field, ferr := range verrs {
			out[field] = ferr.Error()
		}
		return out
	}
	out["form"] = err.Error()
	return out
}
