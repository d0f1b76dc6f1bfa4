package sink

import (
	"bytes"
	"cmp"
	"fmt"
	"math/big"
	"slices"
	"time"
)

// SortRows orders rows lexicographically, comparing values column by column.
// The sort is stable so equal rows keep their relative order.
func SortRows(rows [][]any) {
	slices.SortStableFunc(rows, CompareRows)
}

// SortRowsDesc is SortRows reversed.
func SortRowsDesc(rows [][]any) {
	slices.SortStableFunc(rows, func(a, b []any) int {
		return CompareRows(b, a)
	})
}

// CompareRows compares two tuples lexicographically; a shorter prefix sorts first.
func CompareRows(a, b []any) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := CompareValues(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

// value classes, in sort order between classes
const (
	classNull = iota
	classBool
	classNumber
	classTime
	classString
	classBytes
	classOther
)

// CompareValues orders driver values. Values of one class compare naturally;
// values of different classes order by class, NULL first.
func CompareValues(a, b any) int {
	ca, cb := class(a), class(b)
	if ca != cb {
		return cmp.Compare(ca, cb)
	}

	switch ca {
	case classNull:
		return 0
	case classBool:
		x, y := a.(bool), b.(bool)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	case classNumber:
		return toRat(a).Cmp(toRat(b))
	case classTime:
		return a.(time.Time).Compare(b.(time.Time))
	case classString:
		return cmp.Compare(a.(string), b.(string))
	case classBytes:
		return bytes.Compare(a.([]byte), b.([]byte))
	default:
		return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
	}
}

func class(v any) int {
	switch v.(type) {
	case nil:
		return classNull
	case bool:
		return classBool
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return classNumber
	case time.Time:
		return classTime
	case string:
		return classString
	case []byte:
		return classBytes
	default:
		return classOther
	}
}

func toRat(v any) *big.Rat {
	r := new(big.Rat)
	switch n := v.(type) {
	case int:
		r.SetInt64(int64(n))
	case int8:
		r.SetInt64(int64(n))
	case int16:
		r.SetInt64(int64(n))
	case int32:
		r.SetInt64(int64(n))
	case int64:
		r.SetInt64(n)
	case uint:
		r.SetUint64(uint64(n))
	case uint8:
		r.SetUint64(uint64(n))
	case uint16:
		r.SetUint64(uint64(n))
	case uint32:
		r.SetUint64(uint64(n))
	case uint64:
		r.SetUint64(n)
	case float32:
		r.SetFloat64(float64(n))
	case float64:
		// NaN and infinities leave r at zero
		r.SetFloat64(n)
	}
	return r
}
