package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/logger"
	"car-rental-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// maxMoney is the first value a NUMERIC(10,2) column cannot hold.
var maxMoney = decimal.New(1, 8)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkStruct runs the struct tags of in and converts the first failure into
// an InvalidArgument error naming the field.
func checkStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return domain.InvalidArgument(fe.Field(), "%s", describeFieldError(fe))
	}
	return domain.Internal(fmt.Errorf("validate %T: %w", in, err))
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(strings.Fields(fe.Param()), ", "))
	case "datetime":
		return field + " must be a date in YYYY-MM-DD format"
	case "email":
		return field + " must be a valid email address"
	}
	return field + " is invalid"
}

// requireFields returns an InvalidArgument error listing every missing
// field, or nil when all are present.
func requireFields(fields ...requiredField) error {
	var missing []string
	for _, f := range fields {
		if !f.present {
			missing = append(missing, f.name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return domain.InvalidArgument(missing[0], "missing required fields: %s", strings.Join(missing, ", "))
}

type requiredField struct {
	name    string
	present bool
}

func field[T any](name string, v *T) requiredField {
	return requiredField{name: name, present: v != nil}
}

func checkMoney(name string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return domain.InvalidArgument(name, "%s must be a positive number", name)
	}
	if v.GreaterThanOrEqual(maxMoney) {
		return domain.InvalidArgument(name, "%s must be less than %s", name, maxMoney)
	}
	if !v.Equal(v.Truncate(2)) {
		return domain.InvalidArgument(name, "%s must have at most two decimal places", name)
	}
	return nil
}

func checkID(id int64) error {
	if id <= 0 {
		return domain.InvalidArgument("id", "id must be a positive integer")
	}
	return nil
}

// translateStoreError maps repository failures onto the domain taxonomy.
// Errors that already are *domain.Error pass through unchanged.
func translateStoreError(err error) error {
	if err == nil {
		return nil
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	if cv, ok := repository.AsConstraintViolation(err); ok {
		switch cv.Kind {
		case repository.ConstraintExclusion:
			return domain.Conflict("car is not available for the selected dates").Wrap(err)
		case repository.ConstraintForeignKey:
			return domain.InvalidReference(cv.Field, "%s does not reference an existing record", cv.Field).Wrap(err)
		case repository.ConstraintUnique:
			return domain.Conflict("%s already exists", cv.Field).Wrap(err)
		case repository.ConstraintCheck, repository.ConstraintNotNull:
			return domain.InvalidArgument(cv.Field, "%s is invalid", cv.Field).Wrap(err)
		}
	}
	return domain.Internal(err)
}

// exitWithError logs the failed exit of method and returns err. Client
// errors are routine and stay at debug level.
func exitWithError(method string, err error, args ...any) error {
	if domain.KindOf(err) == domain.KindInternal {
		if errors.Is(err, repository.ErrAmbiguous) {
			args = append(args, "ambiguous", true)
		}
		logger.ExitMethodWithError(method, err, args...)
		return err
	}
	logger.ExitMethod(method, append(args, "outcome", domain.KindOf(err).String(), "reason", err.Error())...)
	return err
}
