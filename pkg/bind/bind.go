// Package bind decodes an HTML form submission into a struct and runs
// validation. Field mapping uses the `form` struct tag.
package bind

import (
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/ordercrm/pkg/validate"
)

const maxFormBytes = 4 << 20 // uploads go through multipart, forms stay small

// Form parses r's body as a form (urlencoded or multipart) into dest and
// validates it. Returns (errs, nil) on validation failure and (nil, err)
// on a malformed request.
func Form(r *http.Request, dest interface{}) (validate.Errors, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxFormBytes)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxFormBytes); err != nil {
			return nil, fmt.Errorf("invalid form: %w", err)
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("invalid form: %w", err)
	}

	if err := Values(r.Form, dest); err != nil {
		return nil, err
	}

	if errs := validate.Struct(dest); errs.HasErrors() {
		return errs, nil
	}

	return nil, nil
}

// Values fills dest's `form`-tagged fields from vals without validating.
// Used by batch forms that validate rows as a unit.
func Values(vals url.Values, dest interface{}) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("bind: dest must be a struct pointer, got %T", dest)
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		tag := rt.Field(i).Tag.Get("form")
		if tag == "" || tag == "-" {
			continue
		}
		if idx := strings.Index(tag, ","); idx != -1 {
			tag = tag[:idx]
		}
		if !vals.Has(tag) {
			continue
		}
		if err := setField(rv.Field(i), vals.Get(tag)); err != nil {
			return fmt.Errorf("bind: field %q: %w", tag, err)
		}
	}

	return nil
}

func setField(f reflect.Value, raw string) error {
	if !f.CanSet() {
		return nil
	}

	switch f.Kind() {
	case reflect.String:
		f.SetString(strings.TrimSpace(raw))
	case reflect.Bool:
		// checkbox semantics: present and not "off"/"false"/"0" means true
		f.SetBool(raw != "" && raw != "off" && raw != "false" && raw != "0")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if raw == "" {
			f.SetInt(0)
			return nil
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		f.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if raw == "" {
			f.SetUint(0)
			return nil
		}
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return err
		}
		f.SetUint(n)
	case reflect.Float32, reflect.Float64:
		if raw == "" {
			f.SetFloat(0)
			return nil
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		f.SetFloat(n)
	case reflect.Ptr:
		if raw == "" {
			f.Set(reflect.Zero(f.Type())) // empty select option → nil
			return nil
		}
		elem := reflect.New(f.Type().Elem())
		if err := setField(elem.Elem(), raw); err != nil {
			return err
		}
		f.Set(elem)
	default:
		return fmt.Errorf("unsupported kind %s", f.Kind())
	}

	return nil
}
