package convert

import (
	"reflect"
	"strconv"
)

func registerBuiltins(r *Registry) {
	mustIn(r, func(v string) string { return v }, func(s string) (string, error) { return s, nil })
	mustIn(r, strconv.FormatBool, strconv.ParseBool)

	mustIn(r, itoa[int], atoi[int])
	mustIn(r, itoa[int8], atoi[int8])
	mustIn(r, itoa[int16], atoi[int16])
	mustIn(r, itoa[int32], atoi[int32])
	mustIn(r, itoa[int64], atoi[int64])
	mustIn(r, utoa[uint], atou[uint])
	mustIn(r, utoa[uint8], atou[uint8])
	mustIn(r, utoa[uint16], atou[uint16])
	mustIn(r, utoa[uint32], atou[uint32])
	mustIn(r, utoa[uint64], atou[uint64])

	mustIn(r, ftoa[float32], atof[float32])
	mustIn(r, ftoa[float64], atof[float64])
}

func mustIn[T any](r *Registry, to func(T) string, from func(string) (T, error)) {
	if err := RegisterIn(r, to, from); err != nil {
		panic(err)
	}
}

type signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

type float interface {
	~float32 | ~float64
}

func itoa[T signed](v T) string {
	return strconv.FormatInt(int64(v), 10)
}

func atoi[T signed](s string) (T, error) {
	var zero T
	i, err := strconv.ParseInt(s, 10, int(reflect.TypeFor[T]().Size())*8)
	if err != nil {
		return zero, err
	}
	return T(i), nil
}

func utoa[T unsigned](v T) string {
	return strconv.FormatUint(uint64(v), 10)
}

func atou[T unsigned](s string) (T, error) {
	var zero T
	u, err := strconv.ParseUint(s, 10, int(reflect.TypeFor[T]().Size())*8)
	if err != nil {
		return zero, err
	}
	return T(u), nil
}

func ftoa[T float](v T) string {
	bits := int(reflect.TypeFor[T]().Size()) * 8
	return strconv.FormatFloat(float64(v), 'g', -1, bits)
}

func atof[T float](s string) (T, error) {
	var zero T
	f, err := strconv.ParseFloat(s, int(reflect.TypeFor[T]().Size())*8)
	if err != nil {
		return zero, err
	}
	return T(f), nil
}
