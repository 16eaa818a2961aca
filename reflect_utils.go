package inferschema

import (
	"reflect"
	"sort"
)

// asDescribed reports whether v implements Described. Nil pointers do not.
func asDescribed(v any) (Described, bool) {
	d, ok := v.(Described)
	if !ok {
		return nil, false
	}
	if rv := reflect.ValueOf(d); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, false
	}
	return d, true
}

// eachField visits the entries of a Mapping value. Ordered maps are visited in
// insertion order, plain maps in sorted key order.
func eachField(m any, fn func(key string, v any) error) error {
	if om, ok := m.(*OrderedMap); ok {
		if om == nil {
			return nil
		}
		for p := om.Oldest(); p != nil; p = p.Next() {
			if err := fn(p.Key, p.Value); err != nil {
				return err
			}
		}
		return nil
	}
	rv := reflect.ValueOf(m)
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	for _, k := range keys {
		if err := fn(k.String(), rv.MapIndex(k).Interface()); err != nil {
			return err
		}
	}
	return nil
}

// eachItem visits the elements of a Sequence value in order.
func eachItem(seq any, fn func(i int, v any) error) error {
	rv := reflect.ValueOf(seq)
	for i := 0; i < rv.Len(); i++ {
		if err := fn(i, rv.Index(i).Interface()); err != nil {
			return err
		}
	}
	return nil
}
