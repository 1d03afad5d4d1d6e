package sanitize

import (
	"path"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	entityReplacer = strings.NewReplacer(
		"&", "&amp;",
		`"`, "&quot;",
		"'", "&apos;",
		"<", "&lt;",
		">", "&gt;",
	)

	controlReplacer = strings.NewReplacer(
		"\x00", "", "\x01", "", "\x02", "", "\x03", "", "\x04", "", "\x05", "",
		"\x06", "", "\x07", "", "\x08", "", "\x0b", "", "\x0c", "", "\x0e", "",
		"\x0f", "", "\x10", "", "\x11", "", "\x12", "", "\x13", "",
	)

	tagPattern      = regexp.MustCompile(`</?([A-Za-z][A-Za-z0-9]*)\b[^>]*>`)
	filenamePattern = regexp.MustCompile(`[^A-Za-z0-9._-]`)

	validate = validator.New()
)

// Sanitizer cleans request payloads. The zero value strips every tag.
type Sanitizer struct {
	allowedTags map[string]struct{}
}

// New returns a Sanitizer that keeps the given tags when stripping markup.
// Tags may be written bare ("p") or bracketed ("<p>").
func New(allowedTags ...string) *Sanitizer {
	s := &Sanitizer{}
	s.SetAllowedTags(allowedTags)
	return s
}

// SetAllowedTags replaces the tag allow-list. It must be called before the
// Sanitizer is shared between goroutines.
func (s *Sanitizer) SetAllowedTags(tags []string) {
	allowed := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		name := strings.ToLower(strings.Trim(strings.TrimSpace(tag), "<>/"))
		if name != "" {
			allowed[name] = struct{}{}
		}
	}
	s.allowedTags = allowed
}

// Clean returns a sanitized copy of value. Strings, maps, slices, structs and
// pointers to them are handled; for structs only exported fields are cleaned.
// Numbers, booleans, nil and json.Number are returned as they are.
func (s *Sanitizer) Clean(value any, strip bool) any {
	switch v := value.(type) {
	case string:
		return s.String(v, strip)
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[s.String(key, strip)] = s.Clean(item, strip)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = s.Clean(item, strip)
		}
		return out
	case nil:
		return nil
	}
	return s.cleanReflect(reflect.ValueOf(value), strip)
}

// String sanitizes a single string.
func (s *Sanitizer) String(value string, strip bool) string {
	value = entityReplacer.Replace(value)
	if strip {
		value = s.stripTags(value)
	}
	value = controlReplacer.Replace(value)
	return strings.TrimSpace(value)
}

// cleanReflect handles named map and slice types such as store.Record or
// []string, structs and pointers, rebuilding a value of the same type.
func (s *Sanitizer) cleanReflect(v reflect.Value, strip bool) any {
	switch v.Kind() {
	case reflect.String:
		if v.Type().PkgPath() != "" {
			// Named string types (json.Number) carry non-text data.
			return v.Interface()
		}
		return s.String(v.String(), strip)
	case reflect.Map:
		if v.IsNil() {
			return v.Interface()
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			key := iter.Key()
			if key.Kind() == reflect.String {
				key = reflect.ValueOf(s.String(key.String(), strip)).Convert(v.Type().Key())
			}
			out.SetMapIndex(key, s.convert(iter.Value(), v.Type().Elem(), strip))
		}
		return out.Interface()
	case reflect.Slice:
		if v.IsNil() || v.Type().Elem().Kind() == reflect.Uint8 {
			return v.Interface()
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(s.convert(v.Index(i), v.Type().Elem(), strip))
		}
		return out.Interface()
	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()
		out.Set(v)
		for i := 0; i < v.NumField(); i++ {
			field := v.Type().Field(i)
			if !field.IsExported() || !out.Field(i).CanSet() {
				continue
			}
			out.Field(i).Set(s.convert(v.Field(i), field.Type, strip))
		}
		return out.Interface()
	case reflect.Pointer:
		if v.IsNil() {
			return v.Interface()
		}
		out := reflect.New(v.Type().Elem())
		out.Elem().Set(s.convert(v.Elem(), v.Type().Elem(), strip))
		return out.Interface()
	}
	return v.Interface()
}

func (s *Sanitizer) convert(item reflect.Value, to reflect.Type, strip bool) reflect.Value {
	if item.Kind() == reflect.Interface {
		if item.IsNil() {
			return reflect.Zero(to)
		}
		item = item.Elem()
	}
	cleaned := s.Clean(item.Interface(), strip)
	if cleaned == nil {
		return reflect.Zero(to)
	}
	cv := reflect.ValueOf(cleaned)
	if cv.Type().AssignableTo(to) {
		return cv
	}
	if cv.Type().ConvertibleTo(to) {
		return cv.Convert(to)
	}
	return item
}

func (s *Sanitizer) stripTags(value string) string {
	return tagPattern.ReplaceAllStringFunc(value, func(tag string) string {
		name := strings.ToLower(tagPattern.FindStringSubmatch(tag)[1])
		if _, ok := s.allowedTags[name]; ok {
			return tag
		}
		return ""
	})
}

// Filename reduces name to a bare file name made of [A-Za-z0-9._-].
func Filename(name string) string {
	if name == "" {
		return ""
	}
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.NewReplacer("../", "", "./", "", "\\", "", "\x00", "").Replace(name)
	return filenamePattern.ReplaceAllString(name, "")
}

// URL drops characters that cannot appear in a URL and returns the result,
// or nil when it is not a valid absolute URL.
func URL(value string) *string {
	value = keepOnly(value, "$-_.+!*'(),{}|\\^~[]`<>#%\";/?:@&=")
	if validate.Var(value, "required,url") != nil {
		return nil
	}
	return &value
}

// Email drops characters that cannot appear in an address and returns the
// result, or nil when it is not a valid email.
func Email(value string) *string {
	value = keepOnly(value, "!#$%&'*+-=?^_`{|}~@.[]")
	if validate.Var(value, "required,email") != nil {
		return nil
	}
	return &value
}

func keepOnly(value, extra string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case strings.ContainsRune(extra, r):
			return r
		}
		return -1
	}, value)
}
