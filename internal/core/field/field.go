// Package field exposes named get/set access to the exported fields of a
// configuration struct. Scripting and tooling use it to move values in and
// out of component configs without knowing their Go types.
package field

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"unicode"
	"unicode/utf8"
)

var (
	ErrNotStruct    = errors.New("field: value is not a pointer to a struct")
	ErrUnknownField = errors.New("field: unknown field")
	ErrTypeMismatch = errors.New("field: value type mismatch")
)

// Object reflects over one struct instance.
type Object struct {
	v      reflect.Value
	fields map[string]int
}

// Of wraps ptr, which must be a non-nil pointer to a struct. Field names come
// from the `field` tag, else the Go name with its first letter lowered.
// Fields tagged `field:"-"` are hidden.
func Of(ptr any) (*Object, error) {
	rv := reflect.ValueOf(ptr)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T", ErrNotStruct, ptr)
	}
	elem := rv.Elem()
	rt := elem.Type()
	o := &Object{v: elem, fields: make(map[string]int, rt.NumField())}
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Tag.Get("field")
		if name == "-" {
			continue
		}
		if name == "" {
			r, size := utf8.DecodeRuneInString(sf.Name)
			name = string(unicode.ToLower(r)) + sf.Name[size:]
		}
		o.fields[name] = i
	}
	return o, nil
}

// Names returns the field names in sorted order.
func (o *Object) Names() []string {
	names := make([]string, 0, len(o.fields))
	for n := range o.fields {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (o *Object) Get(name string) (any, error) {
	f, err := o.lookup(name)
	if err != nil {
		return nil, err
	}
	return f.Interface(), nil
}

// Set assigns value to the named field. Numeric values convert between
// numeric kinds; anything else must be assignable as is.
func (o *Object) Set(name string, value any) error {
	f, err := o.lookup(name)
	if err != nil {
		return err
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		f.SetZero()
		return nil
	}
	switch {
	case rv.Type().AssignableTo(f.Type()):
		f.Set(rv)
	case isNumeric(rv.Kind()) && isNumeric(f.Kind()):
		f.Set(rv.Convert(f.Type()))
	default:
		return fmt.Errorf("%w: %s is %s, got %s", ErrTypeMismatch, name, f.Type(), rv.Type())
	}
	return nil
}

// TypeName returns the Go type name of the named field.
func (o *Object) TypeName(name string) (string, error) {
	f, err := o.lookup(name)
	if err != nil {
		return "", err
	}
	return f.Type().String(), nil
}

func (o *Object) lookup(name string) (reflect.Value, error) {
	i, ok := o.fields[name]
	if !ok {
		return reflect.Value{}, fmt.Errorf("%w: %s.%s", ErrUnknownField, o.v.Type().Name(), name)
	}
	return o.v.Field(i), nil
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
