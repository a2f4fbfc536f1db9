package validation

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/resumedash/internal/model"
)

var (
	engineOnce    sync.Once
	defaultEngine *validator.Validate
)

// Engine returns the shared validator with the dashboard's custom rules registered.
func Engine() *validator.Validate {
	engineOnce.Do(func() {
		defaultEngine = NewEngine(time.Now)
	})
	return defaultEngine
}

// NewEngine builds a validator whose "notfuture" rule compares against now.
func NewEngine(now func() time.Time) *validator.Validate {
	if now == nil {
		now = time.Now
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		t, ok := fieldTime(fl)
		return ok && !t.IsZero()
	})
	v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		t, ok := fieldTime(fl)
		if !ok || t.IsZero() {
			return true
		}
		return !t.After(now())
	})
	v.RegisterValidation("experiencetype", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		for _, candidate := range model.ExperienceTypes() {
			if string(candidate) == value {
				return true
			}
		}
		return false
	})
	v.RegisterValidation("socialnetwork", func(fl validator.FieldLevel) bool {
		_, err := model.ParseSocialMediaNetwork(fl.Field().String())
		return err == nil && fl.Field().String() != ""
	})

	v.RegisterStructValidation(experienceStructValidation, model.ExperienceInput{})

	return v
}

func experienceStructValidation(sl validator.StructLevel) {
	experience := sl.Current().Interface().(model.ExperienceInput)

	if experience.EndDate == nil || experience.EndDate.IsZero() || experience.StartDate.IsZero() {
		return
	}

	if !experience.EndDate.After(experience.StartDate) {
		sl.ReportError(experience.EndDate, "endDate", "EndDate", "endafterstart", "")
	}
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

func fieldTime(fl validator.FieldLevel) (time.Time, bool) {
	field := fl.Field()
	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			return time.Time{}, false
		}
		field = field.Elem()
	}
	t, ok := field.Interface().(time.Time)
	return t, ok
}
