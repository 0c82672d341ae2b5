package chi

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator"
	"github.com/oapi-codegen/runtime"
)

// unsetPrice is the wire value for an absent price bound.
const unsetPrice = -1.0

var errInvalidParams = errors.New("invalid query parameters")

// paramValidator checks bound parameters and reports fields by their wire names.
type paramValidator struct {
	v *validator.Validate
}

func newParamValidator() *paramValidator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	return &paramValidator{v: v}
}

func (p *paramValidator) validate(i any) error {
	err := p.v.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fmt.Errorf("%w: missing required parameter '%s'", errInvalidParams, fe.Field())
		case "gte", "min":
			return fmt.Errorf("%w: parameter '%s' must be >= %s", errInvalidParams, fe.Field(), fe.Param())
		}
	}
	return fmt.Errorf("%w: %w", errInvalidParams, err)
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// bindSearchParams reads q, minPrice, maxPrice, offset and limit from the URL.
// q must be present (it may be empty); absent prices are unset.
func bindSearchParams(r *http.Request) (searchParams, error) {
	values := r.URL.Query()
	p := searchParams{MinPrice: unsetPrice, MaxPrice: unsetPrice}

	if err := runtime.BindQueryParameter("form", true, true, "q", values, &p.Query); err != nil {
		return p, fmt.Errorf("%w: %w", errInvalidParams, err)
	}

	var minPrice, maxPrice *float64
	var offset, limit *int
	optional := []struct {
		name string
		dest any
	}{
		{"minPrice", &minPrice},
		{"maxPrice", &maxPrice},
		{"offset", &offset},
		{"limit", &limit},
	}
	for _, o := range optional {
		if err := runtime.BindQueryParameter("form", true, false, o.name, values, o.dest); err != nil {
			return p, fmt.Errorf("%w: %w", errInvalidParams, err)
		}
	}

	if minPrice != nil {
		p.MinPrice = *minPrice
	}
	if maxPrice != nil {
		p.MaxPrice = *maxPrice
	}
	if offset != nil {
		p.Offset = *offset
	}
	if limit != nil {
		p.Limit = *limit
	}
	return p, nil
}
